// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package xrbridge

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gogpu/xrbridge/xrmath"
)

// scriptedInput returns a fixed input state and records device-pose
// queries.
type scriptedInput struct {
	NopInputProvider
	state   InputState
	devices [][]TrackedDeviceType
	poses   map[TrackedDeviceType]xrmath.Vector3f
}

func (p *scriptedInput) GetInputState(*Session, ControllerType) (InputState, error) {
	return p.state, nil
}

func (p *scriptedInput) DevicePoses(_ *Session, devices []TrackedDeviceType, _ float64) ([]PoseStatef, error) {
	p.devices = append(p.devices, devices)
	out := make([]PoseStatef, len(devices))
	for i, d := range devices {
		out[i].ThePose = xrmath.Posef{Orientation: xrmath.QuatIdentity(), Position: p.poses[d]}
	}
	return out, nil
}

// TestInputStateTruncation writes exactly the layout size of each
// version profile and nothing beyond.
func TestInputStateTruncation(t *testing.T) {
	tests := []struct {
		minor int
		size  int
	}{
		{5, inputStateSizeV1},
		{7, inputStateSizeV2},
		{11, inputStateSizeV3},
		{43, inputStateSizeV3},
	}
	for _, tt := range tests {
		s, _, _ := newTestSession(t, tt.minor)
		s.SetInputProvider(&scriptedInput{state: InputState{
			TimeInSeconds:   2.5,
			Buttons:         0xA5,
			IndexTrigger:    [2]float32{0.25, 0.75},
			ControllerType:  ControllerTouch,
			IndexTriggerRaw: [2]float32{0.3, 0.4},
		}})

		const sentinel = 0xAB
		buf := bytes.Repeat([]byte{sentinel}, inputStateSizeV3+32)
		require.NoError(t, s.GetInputStateRaw(ControllerTouch, buf))

		for i := tt.size; i < len(buf); i++ {
			require.Equalf(t, byte(sentinel), buf[i],
				"minor %d: byte %d past the %d-byte layout was written", tt.minor, i, tt.size)
		}

		// The leading members land at their legacy offsets.
		require.Equal(t, 2.5, float64frombytes(buf[0:8]))
		require.Equal(t, uint32(0xA5), binary.LittleEndian.Uint32(buf[8:12]))
	}
}

func float64frombytes(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}

// TestInputStateRawShortBuffer rejects buffers smaller than the profile's
// layout.
func TestInputStateRawShortBuffer(t *testing.T) {
	s, _, _ := newTestSession(t, 43)

	buf := make([]byte, inputStateSizeV3-1)
	require.ErrorIs(t, s.GetInputStateRaw(ControllerTouch, buf), ErrInvalidParameter)
}

// TestGetInputStateDelegates returns the provider's state unmodified.
func TestGetInputStateDelegates(t *testing.T) {
	s, _, _ := newTestSession(t, 43)
	want := InputState{Buttons: 7, ControllerType: ControllerRTouch}
	s.SetInputProvider(&scriptedInput{state: want})

	got, err := s.GetInputState(ControllerRTouch)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// TestGetTrackingStateCarriesOrigin stamps the calibrated origin into the
// tracking state.
func TestGetTrackingStateCarriesOrigin(t *testing.T) {
	s, _, _ := newTestSession(t, 43)

	origin := xrmath.Posef{Orientation: xrmath.QuatAxisY(0.3), Position: xrmath.Vector3f{X: 1}}
	require.NoError(t, s.SpecifyTrackingOrigin(origin))

	state := s.GetTrackingState(0, false)
	require.Equal(t, s.CalibratedOrigin(), state.CalibratedOrigin)
}

// TestConnectedControllerTypes reports the fixed claim.
func TestConnectedControllerTypes(t *testing.T) {
	s, _, _ := newTestSession(t, 43)
	got := s.GetConnectedControllerTypes()
	require.Equal(t, ControllerTouch|ControllerXBox|ControllerRemote, got)
}
