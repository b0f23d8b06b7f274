// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package xrbridge

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gogpu/xrbridge/driver"
	"github.com/gogpu/xrbridge/xrmath"
)

// TestStatusTransitions drives every session state through the pump and
// checks the latched bits.
func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name   string
		states []driver.SessionState
		want   SessionStatus
	}{
		{
			"idle",
			[]driver.SessionState{driver.StateIdle},
			SessionStatus{HmdPresent: true},
		},
		{
			"ready",
			[]driver.SessionState{driver.StateReady},
			SessionStatus{IsVisible: true, HmdMounted: true},
		},
		{
			"synchronized clears mounted",
			[]driver.SessionState{driver.StateReady, driver.StateSynchronized},
			SessionStatus{IsVisible: true},
		},
		{
			"visible clears focus",
			[]driver.SessionState{driver.StateFocused, driver.StateVisible},
			SessionStatus{HmdMounted: true},
		},
		{
			"focused",
			[]driver.SessionState{driver.StateVisible, driver.StateFocused},
			SessionStatus{HmdMounted: true, HasInputFocus: true},
		},
		{
			"stopping clears visible",
			[]driver.SessionState{driver.StateReady, driver.StateStopping},
			SessionStatus{HmdMounted: true},
		},
		{
			"loss pending",
			[]driver.SessionState{driver.StateLossPending},
			SessionStatus{DisplayLost: true},
		},
		{
			"exiting",
			[]driver.SessionState{driver.StateExiting},
			SessionStatus{ShouldQuit: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, inst := newTestSession(t, 43)
			for _, st := range tt.states {
				inst.PushEvent(driver.SessionStateEvent{State: st})
			}
			status, err := s.GetSessionStatus()
			require.NoError(t, err)
			require.Equal(t, tt.want, status)
		})
	}
}

// TestStatusInstanceLoss latches ShouldQuit on instance loss.
func TestStatusInstanceLoss(t *testing.T) {
	s, _, inst := newTestSession(t, 43)
	inst.PushEvent(driver.InstanceLossEvent{})

	status, err := s.GetSessionStatus()
	require.NoError(t, err)
	require.True(t, status.ShouldQuit)
}

// TestStatusLatchesAreSticky verifies ShouldQuit stays set across
// subsequent polls with an empty queue.
func TestStatusLatchesAreSticky(t *testing.T) {
	s, _, inst := newTestSession(t, 43)
	inst.PushEvent(driver.SessionStateEvent{State: driver.StateExiting})

	status, err := s.GetSessionStatus()
	require.NoError(t, err)
	require.True(t, status.ShouldQuit)

	status, err = s.GetSessionStatus()
	require.NoError(t, err)
	require.True(t, status.ShouldQuit)
}

// TestStatusDrainsQueue verifies the pump consumes every queued event in
// one poll.
func TestStatusDrainsQueue(t *testing.T) {
	s, _, inst := newTestSession(t, 43)
	inst.PushEvent(driver.SessionStateEvent{State: driver.StateIdle})
	inst.PushEvent(driver.SessionStateEvent{State: driver.StateReady})
	inst.PushEvent(driver.SessionStateEvent{State: driver.StateFocused})

	status, err := s.GetSessionStatus()
	require.NoError(t, err)
	require.True(t, status.HmdPresent)
	require.True(t, status.IsVisible)
	require.True(t, status.HasInputFocus)

	_, ok := inst.PollEvent()
	require.False(t, ok, "queue should be empty after a status poll")
}

// TestStatusIgnoresForeignSessionEvents drops state events addressed to
// another session.
func TestStatusIgnoresForeignSessionEvents(t *testing.T) {
	s, _, inst := newTestSession(t, 43)
	foreign, err := inst.CreateSession()
	require.NoError(t, err)
	inst.PushEvent(driver.SessionStateEvent{Session: foreign, State: driver.StateExiting})

	status, err := s.GetSessionStatus()
	require.NoError(t, err)
	require.False(t, status.ShouldQuit)
}

// TestStatusSpaceChangeSetsRecenter verifies a local-space change asks
// the client to recenter and composes a valid pose into the origin.
func TestStatusSpaceChangeSetsRecenter(t *testing.T) {
	s, _, inst := newTestSession(t, 43)

	shift := xrmath.Posef{
		Orientation: xrmath.QuatAxisY(0.25),
		Position:    xrmath.Vector3f{X: 0.5},
	}
	inst.PushEvent(driver.ReferenceSpaceChangeEvent{
		Space:               driver.SpaceLocal,
		PoseValid:           true,
		PoseInPreviousSpace: shift,
	})

	status, err := s.GetSessionStatus()
	require.NoError(t, err)
	require.True(t, status.ShouldRecenter)
	require.Equal(t, shift, s.CalibratedOrigin())
}

// TestStatusSpaceChangeInvalidPose still requests a recenter but leaves
// the origin alone.
func TestStatusSpaceChangeInvalidPose(t *testing.T) {
	s, _, inst := newTestSession(t, 43)
	inst.PushEvent(driver.ReferenceSpaceChangeEvent{Space: driver.SpaceLocal})

	status, err := s.GetSessionStatus()
	require.NoError(t, err)
	require.True(t, status.ShouldRecenter)
	require.Equal(t, xrmath.PoseIdentity(), s.CalibratedOrigin())
}

// TestStatusIgnoresStageSpaceChange only reacts to the local space.
func TestStatusIgnoresStageSpaceChange(t *testing.T) {
	s, _, inst := newTestSession(t, 43)
	inst.PushEvent(driver.ReferenceSpaceChangeEvent{Space: driver.SpaceStage, PoseValid: true})

	status, err := s.GetSessionStatus()
	require.NoError(t, err)
	require.False(t, status.ShouldRecenter)
}
