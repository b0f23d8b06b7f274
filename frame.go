// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package xrbridge

import (
	"github.com/gogpu/xrbridge/driver"
)

// WaitToBeginFrame blocks until the runtime wants frame frameIndex
// started. The pacing prediction lands in a fresh slot of the frame ring,
// stamped one ahead of the client's index to model the pipelining gap, and
// the slot becomes current.
func (s *Session) WaitToBeginFrame(frameIndex int64) error {
	if !s.alive() {
		return ErrInvalidSession
	}

	next := (s.current + 1) % maxFrameSlots
	state, err := s.drv.WaitFrame()
	if err != nil {
		return s.bridge.setLastError(&RuntimeError{err})
	}
	s.frames[next] = frameSlot{state: state, frameIndex: frameIndex + 1}
	s.current = next
	return nil
}

// BeginFrame marks the start of rendering for the waited frame. All
// swapchains committed since the previous frame are drained from the
// acquired queue with a non-blocking image wait first.
func (s *Session) BeginFrame(frameIndex int64) error {
	if !s.alive() {
		return ErrInvalidSession
	}

	s.chainMu.Lock()
	for len(s.acquired) > 0 {
		chain := s.acquired[0]
		if err := chain.drv.Wait(driver.NoDuration); err != nil {
			s.chainMu.Unlock()
			return s.bridge.setLastError(&RuntimeError{err})
		}
		s.acquired = s.acquired[1:]
	}
	s.chainMu.Unlock()

	if err := s.drv.BeginFrame(); err != nil {
		return s.bridge.setLastError(&RuntimeError{err})
	}
	return nil
}

// EndFrame submits the frame's layer list to the compositor. Nil and
// disabled entries are skipped; each remaining layer is translated into
// the runtime's composition-layer form. The frame is presented at the
// current slot's predicted display time with opaque blending.
func (s *Session) EndFrame(frameIndex int64, viewScale *ViewScaleDesc, layers []Layer) error {
	if !s.alive() {
		return ErrInvalidSession
	}

	translated := s.translateLayers(viewScale, layers)

	err := s.drv.EndFrame(driver.EndFrameInfo{
		DisplayTime: s.currentFrame().state.PredictedDisplayTime,
		Blend:       driver.BlendOpaque,
		Layers:      translated,
	})
	if err != nil {
		return s.bridge.setLastError(&RuntimeError{err})
	}
	return nil
}

// SubmitFrame is the legacy one-shot submission: End of the given frame,
// then Wait and Begin of the next, atomic from the client's viewpoint.
// A frameIndex of zero or less means the current frame.
func (s *Session) SubmitFrame(frameIndex int64, viewScale *ViewScaleDesc, layers []Layer) error {
	if !s.alive() {
		return ErrInvalidSession
	}

	if frameIndex <= 0 {
		frameIndex = s.currentFrame().frameIndex
	}

	if err := s.EndFrame(frameIndex, viewScale, layers); err != nil {
		return err
	}
	if err := s.WaitToBeginFrame(frameIndex + 1); err != nil {
		return err
	}
	return s.BeginFrame(frameIndex + 1)
}

// SubmitFrameLegacy matches the submission entry point from before the
// view-scale descriptor changed shape. The old descriptor carried only eye
// offsets the bridge never uses, so it is dropped.
func (s *Session) SubmitFrameLegacy(frameIndex int64, layers []Layer) error {
	return s.SubmitFrame(frameIndex, nil, layers)
}

// GetPredictedDisplayTime returns the wall-clock display time predicted
// for an arbitrary frame index, extrapolated from the current slot by
// whole display periods. Returns 0 when the runtime cannot convert its
// timestamps to wall-clock time.
func (s *Session) GetPredictedDisplayTime(frameIndex int64) float64 {
	if !s.alive() {
		return 0
	}

	cur := s.currentFrame()
	displayTime := cur.state.PredictedDisplayTime
	if frameIndex > 0 {
		displayTime += driver.Time(int64(cur.state.PredictedDisplayPeriod) * (cur.frameIndex - frameIndex))
	}

	seconds, err := s.bridge.inst.ConvertTimeToSeconds(displayTime)
	if err != nil {
		return 0
	}
	return seconds
}
