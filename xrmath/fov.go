// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package xrmath

import "math"

// FovPort describes a view frustum by the positive tangents of its four
// half-angles.
type FovPort struct {
	UpTan, DownTan, LeftTan, RightTan float32
}

// MaxSideTan returns the largest of the four tangents.
func (f FovPort) MaxSideTan() float32 {
	return max(f.UpTan, f.DownTan, f.LeftTan, f.RightTan)
}

// Angles converts the tangents to a signed-angle field of view.
func (f FovPort) Angles() Fovf {
	return Fovf{
		AngleLeft:  -float32(math.Atan(float64(f.LeftTan))),
		AngleRight: float32(math.Atan(float64(f.RightTan))),
		AngleUp:    float32(math.Atan(float64(f.UpTan))),
		AngleDown:  -float32(math.Atan(float64(f.DownTan))),
	}
}

// Uncant folds a canted eye orientation into the frustum so the result is a
// forward-facing frustum covering the same view volume. The four corner rays
// of the frustum are rotated by cant and the enclosing tangents recomputed.
func (f FovPort) Uncant(cant Quatf) FovPort {
	corners := [4]Vector3f{
		{-f.LeftTan, f.UpTan, -1},
		{f.RightTan, f.UpTan, -1},
		{-f.LeftTan, -f.DownTan, -1},
		{f.RightTan, -f.DownTan, -1},
	}
	var out FovPort
	for _, c := range corners {
		r := cant.Rotate(c)
		if r.Z >= 0 {
			// Degenerate cant, keep the original frustum.
			return f
		}
		tx := r.X / -r.Z
		ty := r.Y / -r.Z
		out.LeftTan = max(out.LeftTan, -tx)
		out.RightTan = max(out.RightTan, tx)
		out.UpTan = max(out.UpTan, ty)
		out.DownTan = max(out.DownTan, -ty)
	}
	return out
}

// Fovf describes a view frustum by four signed angles in radians.
// AngleLeft and AngleDown are negative for a frustum containing the center.
type Fovf struct {
	AngleLeft, AngleRight, AngleUp, AngleDown float32
}

// SwapUpDown returns f with its vertical angles exchanged, flipping the
// image vertically.
func (f Fovf) SwapUpDown() Fovf {
	f.AngleUp, f.AngleDown = f.AngleDown, f.AngleUp
	return f
}

// Port converts the signed angles back to positive tangents.
func (f Fovf) Port() FovPort {
	return FovPort{
		LeftTan:  float32(math.Tan(float64(-f.AngleLeft))),
		RightTan: float32(math.Tan(float64(f.AngleRight))),
		UpTan:    float32(math.Tan(float64(f.AngleUp))),
		DownTan:  float32(math.Tan(float64(-f.AngleDown))),
	}
}

// Matrix4f is a row-major 4x4 matrix.
type Matrix4f struct {
	M [4][4]float32
}

// FovFromProjection extracts the frustum tangents from a projection matrix.
// For an asymmetric projection P the horizontal scale and offset satisfy
// P00 = 2/(tanR+tanL) and P02 = (tanR-tanL)/(tanR+tanL), and likewise
// vertically, which inverts to the expressions below.
func FovFromProjection(m Matrix4f) FovPort {
	p00, p02 := m.M[0][0], m.M[0][2]
	p11, p12 := m.M[1][1], m.M[1][2]
	if p00 == 0 || p11 == 0 {
		return FovPort{}
	}
	return FovPort{
		LeftTan:  (1 - p02) / p00,
		RightTan: (1 + p02) / p00,
		UpTan:    (1 + p12) / p11,
		DownTan:  (1 - p12) / p11,
	}
}

// ProjectionFromFov builds the projection matrix whose frustum is f, the
// inverse of FovFromProjection for valid frusta.
func ProjectionFromFov(f FovPort) Matrix4f {
	var m Matrix4f
	m.M[0][0] = 2 / (f.RightTan + f.LeftTan)
	m.M[0][2] = (f.RightTan - f.LeftTan) / (f.RightTan + f.LeftTan)
	m.M[1][1] = 2 / (f.UpTan + f.DownTan)
	m.M[1][2] = (f.UpTan - f.DownTan) / (f.UpTan + f.DownTan)
	m.M[3][2] = -1
	return m
}
