// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package xrbridge

import "github.com/gogpu/xrbridge/driver"

// SessionStatus is the denormalized status bit-set the client polls. The
// bits are latched by the event pump, not derived on read; ShouldQuit and
// DisplayLost stay set once set.
type SessionStatus struct {
	IsVisible      bool
	HmdPresent     bool
	HmdMounted     bool
	DisplayLost    bool
	ShouldQuit     bool
	ShouldRecenter bool
	HasInputFocus  bool
	OverlayPresent bool
}

// GetSessionStatus drains the runtime event queue without blocking,
// applies every queued transition to the latched status bits and returns a
// copy of them.
func (s *Session) GetSessionStatus() (SessionStatus, error) {
	if !s.alive() {
		return SessionStatus{}, ErrInvalidSession
	}

	for {
		ev, ok := s.bridge.inst.PollEvent()
		if !ok {
			break
		}
		s.applyEvent(ev)
	}

	return s.status, nil
}

// applyEvent latches one runtime event into the status bits.
func (s *Session) applyEvent(ev driver.Event) {
	switch ev := ev.(type) {
	case driver.SessionStateEvent:
		if ev.Session != nil && ev.Session != s.drv {
			return
		}
		switch ev.State {
		case driver.StateIdle:
			s.status.HmdPresent = true
		case driver.StateReady:
			s.status.IsVisible = true
			s.status.HmdMounted = true
		case driver.StateSynchronized:
			s.status.HmdMounted = false
		case driver.StateVisible:
			s.status.HmdMounted = true
			s.status.HasInputFocus = false
		case driver.StateFocused:
			s.status.HasInputFocus = true
		case driver.StateStopping:
			s.status.IsVisible = false
		case driver.StateLossPending:
			s.status.DisplayLost = true
		case driver.StateExiting:
			s.status.ShouldQuit = true
		}
	case driver.InstanceLossEvent:
		s.status.ShouldQuit = true
	case driver.ReferenceSpaceChangeEvent:
		if ev.Space != driver.SpaceLocal {
			return
		}
		s.referenceSpaceChanged(ev)
	}
}

// ClearShouldRecenterFlag acknowledges a pending recenter request.
func (s *Session) ClearShouldRecenterFlag() {
	if !s.alive() {
		return
	}
	s.status.ShouldRecenter = false
}
