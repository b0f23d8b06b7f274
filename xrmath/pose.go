// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package xrmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Quatf is a rotation quaternion with float32 components.
type Quatf struct {
	X, Y, Z, W float32
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quatf {
	return Quatf{W: 1}
}

// QuatAxisY returns a rotation of angle radians about the +Y axis.
func QuatAxisY(angle float32) Quatf {
	half := float64(angle) / 2
	return Quatf{Y: float32(math.Sin(half)), W: float32(math.Cos(half))}
}

func (q Quatf) num() quat.Number {
	return quat.Number{
		Real: float64(q.W),
		Imag: float64(q.X),
		Jmag: float64(q.Y),
		Kmag: float64(q.Z),
	}
}

func fromNum(n quat.Number) Quatf {
	return Quatf{
		W: float32(n.Real),
		X: float32(n.Imag),
		Y: float32(n.Jmag),
		Z: float32(n.Kmag),
	}
}

// Mul returns the Hamilton product q*o, the rotation o followed by q.
func (q Quatf) Mul(o Quatf) Quatf {
	return fromNum(quat.Mul(q.num(), o.num()))
}

// Normalized returns q scaled to unit length. A zero quaternion normalizes
// to the identity.
func (q Quatf) Normalized() Quatf {
	n := q.num()
	a := quat.Abs(n)
	if a == 0 {
		return QuatIdentity()
	}
	return fromNum(quat.Scale(1/a, n))
}

// Rotate returns v rotated by q. q must be unit length.
func (q Quatf) Rotate(v Vector3f) Vector3f {
	return fromR3(r3.Rotation(q.num()).Rotate(v.r3()))
}

// Conj returns the conjugate of q, the inverse rotation for unit q.
func (q Quatf) Conj() Quatf {
	return Quatf{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Yaw extracts the rotation about +Y using the Y-X-Z Euler order.
func (q Quatf) Yaw() float32 {
	x, y, z, w := float64(q.X), float64(q.Y), float64(q.Z), float64(q.W)
	return float32(math.Atan2(2*(w*y+x*z), 1-2*(x*x+y*y)))
}

// IsZero reports whether every component of q is zero.
func (q Quatf) IsZero() bool {
	return q == Quatf{}
}

// Posef is a rigid transform: a rotation followed by a translation.
type Posef struct {
	Orientation Quatf
	Position    Vector3f
}

// PoseIdentity returns the identity transform.
func PoseIdentity() Posef {
	return Posef{Orientation: QuatIdentity()}
}

// Mul composes two transforms. The result applies o first, then p:
// rotation p.R*o.R, translation p.T + p.R*o.T.
func (p Posef) Mul(o Posef) Posef {
	return Posef{
		Orientation: p.Orientation.Mul(o.Orientation),
		Position:    p.Position.Add(p.Orientation.Rotate(o.Position)),
	}
}

// Normalized returns p with its orientation renormalized.
func (p Posef) Normalized() Posef {
	p.Orientation = p.Orientation.Normalized()
	return p
}

// Inverse returns the transform mapping p back to the identity.
func (p Posef) Inverse() Posef {
	inv := p.Orientation.Conj()
	return Posef{
		Orientation: inv,
		Position:    inv.Rotate(p.Position).Scale(-1),
	}
}

// Transform applies p to a point.
func (p Posef) Transform(v Vector3f) Vector3f {
	return p.Position.Add(p.Orientation.Rotate(v))
}

// Leveled returns p with pitch and roll removed, keeping only the yaw
// component of the orientation.
func (p Posef) Leveled() Posef {
	return Posef{Orientation: QuatAxisY(p.Orientation.Yaw()), Position: p.Position}
}

// IsZero reports whether p carries neither orientation nor position.
func (p Posef) IsZero() bool {
	return p == Posef{}
}
