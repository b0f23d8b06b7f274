// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package xrbridge

import (
	"math"

	"github.com/gogpu/xrbridge/xrmath"
)

// BoundaryType selects which boundary surface to query. Both map to the
// runtime's single stage rectangle.
type BoundaryType int32

const (
	BoundaryOuter    BoundaryType = 0x0001
	BoundaryPlayArea BoundaryType = 0x0100
)

// TrackedDeviceType is a bitmask of tracked devices.
type TrackedDeviceType uint32

const (
	TrackedDeviceHMD    TrackedDeviceType = 0x0001
	TrackedDeviceLTouch TrackedDeviceType = 0x0002
	TrackedDeviceRTouch TrackedDeviceType = 0x0004
	TrackedDeviceTouch  TrackedDeviceType = TrackedDeviceLTouch | TrackedDeviceRTouch
	TrackedDeviceAll    TrackedDeviceType = 0xFFFF
)

// BoundaryTestResult reports the distance from a point or device to the
// boundary.
type BoundaryTestResult struct {
	IsTriggering       bool
	ClosestDistance    float32
	ClosestPoint       xrmath.Vector3f
	ClosestPointNormal xrmath.Vector3f
}

// GetBoundaryDimensions returns the axis-aligned extents of the play
// area. Height is not modeled.
func (s *Session) GetBoundaryDimensions(boundaryType BoundaryType) (xrmath.Vector3f, error) {
	if !s.alive() {
		return xrmath.Vector3f{}, ErrInvalidSession
	}

	width, depth, err := s.drv.StageBounds()
	if err != nil {
		return xrmath.Vector3f{}, s.bridge.setLastError(&RuntimeError{err})
	}
	return xrmath.Vector3f{X: width, Y: 0, Z: depth}, nil
}

// TestBoundaryPoint reports the closest boundary point to an arbitrary
// position. The query works on the XZ plane: the point is clamped to the
// half-extents rectangle, and a point inside the rectangle projects to
// the nearest wall. The result keeps the query's height.
func (s *Session) TestBoundaryPoint(point xrmath.Vector3f, boundaryType BoundaryType) (BoundaryTestResult, error) {
	if !s.alive() {
		return BoundaryTestResult{}, ErrInvalidSession
	}

	bounds, err := s.GetBoundaryDimensions(boundaryType)
	if err != nil {
		return BoundaryTestResult{}, err
	}

	p := xrmath.Vector2f{X: point.X, Y: point.Z}
	halfExtents := xrmath.Vector2f{X: bounds.X / 2, Y: bounds.Z / 2}
	clamped := p.Max(xrmath.Vector2f{X: -halfExtents.X, Y: -halfExtents.Y}).Min(halfExtents)

	// Inside the rectangle the clamp is a no-op; project to the nearest
	// wall instead.
	if clamped == p {
		if abs32(p.X) > abs32(p.Y) {
			clamped.X = float32(math.Copysign(float64(halfExtents.X), float64(p.X)))
		} else {
			clamped.Y = float32(math.Copysign(float64(halfExtents.Y), float64(p.Y)))
		}
	}

	normal := p.Sub(clamped)
	result := BoundaryTestResult{
		ClosestPoint:    xrmath.Vector3f{X: clamped.X, Y: point.Y, Z: clamped.Y},
		ClosestDistance: normal.Length(),
	}
	normal = normal.Normalized()
	result.ClosestPointNormal = xrmath.Vector3f{X: normal.X, Y: 0, Z: normal.Y}
	return result, nil
}

// TestBoundary reports the closest boundary point over every device in
// the bitmask.
func (s *Session) TestBoundary(deviceBitmask TrackedDeviceType, boundaryType BoundaryType) (BoundaryTestResult, error) {
	if !s.alive() {
		return BoundaryTestResult{}, ErrInvalidSession
	}

	var devices []TrackedDeviceType
	for i := TrackedDeviceType(1); i&TrackedDeviceAll != 0; i <<= 1 {
		if i&deviceBitmask != 0 {
			devices = append(devices, i)
		}
	}

	poses, err := s.input.DevicePoses(s, devices, 0)
	if err != nil {
		return BoundaryTestResult{}, s.bridge.setLastError(err)
	}

	best := BoundaryTestResult{ClosestDistance: float32(math.Inf(1))}
	for i := range poses {
		result, err := s.TestBoundaryPoint(poses[i].ThePose.Position, boundaryType)
		if err == nil && result.ClosestDistance < best.ClosestDistance {
			best = result
		}
	}
	return best, nil
}

// GetBoundaryGeometry returns the four floor corners of the play-area
// rectangle.
func (s *Session) GetBoundaryGeometry(boundaryType BoundaryType) ([]xrmath.Vector3f, error) {
	if !s.alive() {
		return nil, ErrInvalidSession
	}

	bounds, err := s.GetBoundaryDimensions(boundaryType)
	if err != nil {
		return nil, err
	}

	points := make([]xrmath.Vector3f, 4)
	for i := range points {
		points[i] = bounds.Scale(0.5)
		if i%2 == 0 {
			points[i].X *= -1
		}
		if i/2 == 0 {
			points[i].Z *= -1
		}
	}
	return points, nil
}

// GetBoundaryVisible reports whether the boundary is drawn. The runtime
// owns boundary rendering, so the state is unavailable.
func (s *Session) GetBoundaryVisible() (bool, error) {
	return false, ErrUnsupported
}

// RequestBoundaryVisible asks for the boundary to be drawn. The runtime
// owns boundary rendering.
func (s *Session) RequestBoundaryVisible(visible bool) error {
	return ErrUnsupported
}

func abs32(f float32) float32 {
	return float32(math.Abs(float64(f)))
}
