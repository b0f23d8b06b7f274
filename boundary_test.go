// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package xrbridge

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gogpu/xrbridge/xrmath"
)

// TestBoundaryDimensions exposes the stage rectangle with zero height.
func TestBoundaryDimensions(t *testing.T) {
	s, fs, _ := newTestSession(t, 43)
	fs.BoundsW, fs.BoundsD = 3, 4

	bounds, err := s.GetBoundaryDimensions(BoundaryPlayArea)
	require.NoError(t, err)
	require.Equal(t, xrmath.Vector3f{X: 3, Y: 0, Z: 4}, bounds)
}

// TestBoundaryPointOutside clamps an exterior point to the rectangle and
// points the normal back at the query.
func TestBoundaryPointOutside(t *testing.T) {
	s, fs, _ := newTestSession(t, 43)
	fs.BoundsW, fs.BoundsD = 4, 4

	result, err := s.TestBoundaryPoint(xrmath.Vector3f{X: 5, Y: 1.3, Z: 0}, BoundaryOuter)
	require.NoError(t, err)

	require.InDelta(t, 3, float64(result.ClosestDistance), 1e-5)
	require.Equal(t, xrmath.Vector3f{X: 2, Y: 1.3, Z: 0}, result.ClosestPoint)
	require.InDelta(t, 1, float64(result.ClosestPointNormal.X), 1e-5)
	require.Zero(t, result.ClosestPointNormal.Y)
}

// TestBoundaryPointInsidePicksNearestWall projects an interior point to
// the wall chosen by comparing |x| against |z|.
func TestBoundaryPointInsidePicksNearestWall(t *testing.T) {
	s, fs, _ := newTestSession(t, 43)
	fs.BoundsW, fs.BoundsD = 4, 4

	// |x| > |z|: the x wall wins.
	result, err := s.TestBoundaryPoint(xrmath.Vector3f{X: 1.5, Z: 0.5}, BoundaryOuter)
	require.NoError(t, err)
	require.InDelta(t, 2, float64(result.ClosestPoint.X), 1e-5)
	require.InDelta(t, 0.5, float64(result.ClosestPoint.Z), 1e-5)
	require.InDelta(t, 0.5, float64(result.ClosestDistance), 1e-5)

	// |z| >= |x|: the z wall wins.
	result, err = s.TestBoundaryPoint(xrmath.Vector3f{X: 0.5, Z: -1.5}, BoundaryOuter)
	require.NoError(t, err)
	require.InDelta(t, 0.5, float64(result.ClosestPoint.X), 1e-5)
	require.InDelta(t, -2, float64(result.ClosestPoint.Z), 1e-5)
}

// TestBoundaryClampSymmetry verifies mirrored points report the same
// distance.
func TestBoundaryClampSymmetry(t *testing.T) {
	s, fs, _ := newTestSession(t, 43)
	fs.BoundsW, fs.BoundsD = 3, 5

	points := []xrmath.Vector3f{
		{X: 4, Y: 0.2, Z: 1},
		{X: 0.5, Y: 1.8, Z: 0.25},
		{X: 1.4, Z: 2.4},
	}
	for _, p := range points {
		a, err := s.TestBoundaryPoint(p, BoundaryOuter)
		require.NoError(t, err)
		b, err := s.TestBoundaryPoint(xrmath.Vector3f{X: -p.X, Y: p.Y, Z: -p.Z}, BoundaryOuter)
		require.NoError(t, err)
		require.InDelta(t, float64(a.ClosestDistance), float64(b.ClosestDistance), 1e-5)
	}
}

// TestBoundaryDevices iterates the bitmask and reports the minimum
// distance across devices.
func TestBoundaryDevices(t *testing.T) {
	s, fs, _ := newTestSession(t, 43)
	fs.BoundsW, fs.BoundsD = 4, 4

	input := &scriptedInput{poses: map[TrackedDeviceType]xrmath.Vector3f{
		TrackedDeviceHMD:    {X: 5},   // 3m out
		TrackedDeviceLTouch: {X: 2.5}, // 0.5m out
		TrackedDeviceRTouch: {Z: 10},  // 8m out
	}}
	s.SetInputProvider(input)

	result, err := s.TestBoundary(TrackedDeviceHMD|TrackedDeviceTouch, BoundaryOuter)
	require.NoError(t, err)
	require.InDelta(t, 0.5, float64(result.ClosestDistance), 1e-5)

	// The bitmask decomposed into the three single-device queries.
	require.Equal(t, [][]TrackedDeviceType{{
		TrackedDeviceHMD, TrackedDeviceLTouch, TrackedDeviceRTouch,
	}}, input.devices)
}

// TestBoundaryGeometry returns the four floor corners.
func TestBoundaryGeometry(t *testing.T) {
	s, fs, _ := newTestSession(t, 43)
	fs.BoundsW, fs.BoundsD = 2, 6

	points, err := s.GetBoundaryGeometry(BoundaryPlayArea)
	require.NoError(t, err)
	require.Len(t, points, 4)

	seen := map[xrmath.Vector3f]bool{}
	for _, p := range points {
		require.InDelta(t, 1, float64(abs32(p.X)), 1e-6)
		require.InDelta(t, 3, float64(abs32(p.Z)), 1e-6)
		seen[p] = true
	}
	require.Len(t, seen, 4, "corners must be distinct")
}

// TestBoundaryVisibility is owned by the runtime.
func TestBoundaryVisibility(t *testing.T) {
	s, _, _ := newTestSession(t, 43)

	_, err := s.GetBoundaryVisible()
	require.ErrorIs(t, err, ErrUnsupported)
	require.ErrorIs(t, s.RequestBoundaryVisible(true), ErrUnsupported)
}
