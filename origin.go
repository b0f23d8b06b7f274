// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package xrbridge

import (
	"github.com/gogpu/xrbridge/driver"
	"github.com/gogpu/xrbridge/xrmath"
)

// RecenterTrackingOrigin moves the tracking origin to the current head
// position and yaw. Pitch and roll are discarded so the recentered space
// stays gravity-aligned.
//
// Fails with ErrInvalidHeadsetOrientation when the head pose carries
// neither a valid orientation nor a valid position.
func (s *Session) RecenterTrackingOrigin() error {
	if !s.alive() {
		return ErrInvalidSession
	}

	relation, err := s.locateHead()
	if err != nil {
		return s.bridge.setLastError(&RuntimeError{err})
	}

	const anyValid = driver.LocationOrientationValid | driver.LocationPositionValid
	if relation.Flags&anyValid == 0 {
		return s.bridge.setLastError(ErrInvalidHeadsetOrientation)
	}

	return s.SpecifyTrackingOrigin(relation.Pose)
}

// SpecifyTrackingOrigin moves the tracking origin to the given pose,
// keeping only the yaw component of its orientation. The calibrated origin
// accumulates across calls; the local reference space is recreated so the
// runtime always sees the calibrated origin as the space's pose.
func (s *Session) SpecifyTrackingOrigin(origin xrmath.Posef) error {
	if !s.alive() {
		return ErrInvalidSession
	}

	yaw := origin.Orientation.Yaw()
	shift := xrmath.Posef{Orientation: xrmath.QuatAxisY(yaw), Position: origin.Position}
	s.calibratedOrigin = s.calibratedOrigin.Mul(shift).Normalized()

	if err := s.recreateLocalSpace(); err != nil {
		return err
	}

	s.ClearShouldRecenterFlag()
	return nil
}

// recreateLocalSpace replaces the local reference space with one carrying
// the calibrated origin.
func (s *Session) recreateLocalSpace() error {
	oldSpace := s.localSpace
	space, err := s.drv.CreateReferenceSpace(driver.SpaceLocal, s.calibratedOrigin)
	if err != nil {
		return s.bridge.setLastError(&RuntimeError{err})
	}
	s.localSpace = space
	if err := oldSpace.Destroy(); err != nil {
		return s.bridge.setLastError(&RuntimeError{err})
	}
	return nil
}

// referenceSpaceChanged folds a runtime-initiated local-space
// reconfiguration into the calibrated origin and asks the client to
// recenter, so its next explicit recenter re-synchronizes both sides.
func (s *Session) referenceSpaceChanged(ev driver.ReferenceSpaceChangeEvent) {
	if ev.PoseValid {
		s.calibratedOrigin = s.calibratedOrigin.Mul(ev.PoseInPreviousSpace)
	}
	s.status.ShouldRecenter = true
}

// CalibratedOrigin returns the cumulative recentered origin pose in the
// runtime's local space.
func (s *Session) CalibratedOrigin() xrmath.Posef {
	if !s.alive() {
		return xrmath.PoseIdentity()
	}
	return s.calibratedOrigin
}
