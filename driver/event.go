// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package driver

import "github.com/gogpu/xrbridge/xrmath"

// SessionState is a runtime session lifecycle state.
type SessionState int

const (
	StateIdle SessionState = iota
	StateReady
	StateSynchronized
	StateVisible
	StateFocused
	StateStopping
	StateLossPending
	StateExiting
)

// String returns the state name.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReady:
		return "ready"
	case StateSynchronized:
		return "synchronized"
	case StateVisible:
		return "visible"
	case StateFocused:
		return "focused"
	case StateStopping:
		return "stopping"
	case StateLossPending:
		return "loss-pending"
	case StateExiting:
		return "exiting"
	}
	return "unknown"
}

// Event is a runtime event delivered through Instance.PollEvent.
type Event interface {
	event()
}

// SessionStateEvent reports a session lifecycle transition.
type SessionStateEvent struct {
	Session Session
	State   SessionState
}

// InstanceLossEvent reports that the instance is about to be lost.
type InstanceLossEvent struct{}

// ReferenceSpaceChangeEvent reports that a reference space is about to be
// reconfigured by the runtime.
type ReferenceSpaceChangeEvent struct {
	Space ReferenceSpaceType

	// PoseValid reports whether PoseInPreviousSpace carries the new
	// origin's pose expressed in the space being replaced.
	PoseValid           bool
	PoseInPreviousSpace xrmath.Posef
}

func (SessionStateEvent) event()         {}
func (InstanceLossEvent) event()         {}
func (ReferenceSpaceChangeEvent) event() {}
