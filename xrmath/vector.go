// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package xrmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vector2f is a 2D vector with float32 components.
type Vector2f struct {
	X, Y float32
}

// Add returns the component-wise sum of v and o.
func (v Vector2f) Add(o Vector2f) Vector2f {
	return Vector2f{v.X + o.X, v.Y + o.Y}
}

// Sub returns the component-wise difference of v and o.
func (v Vector2f) Sub(o Vector2f) Vector2f {
	return Vector2f{v.X - o.X, v.Y - o.Y}
}

// Length returns the Euclidean length of v.
func (v Vector2f) Length() float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

// Normalized returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vector2f) Normalized() Vector2f {
	l := v.Length()
	if l == 0 {
		return v
	}
	return Vector2f{v.X / l, v.Y / l}
}

// Min returns the component-wise minimum of v and o.
func (v Vector2f) Min(o Vector2f) Vector2f {
	return Vector2f{min(v.X, o.X), min(v.Y, o.Y)}
}

// Max returns the component-wise maximum of v and o.
func (v Vector2f) Max(o Vector2f) Vector2f {
	return Vector2f{max(v.X, o.X), max(v.Y, o.Y)}
}

// Vector3f is a 3D vector with float32 components.
type Vector3f struct {
	X, Y, Z float32
}

// Add returns the component-wise sum of v and o.
func (v Vector3f) Add(o Vector3f) Vector3f {
	return Vector3f{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns the component-wise difference of v and o.
func (v Vector3f) Sub(o Vector3f) Vector3f {
	return Vector3f{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by f.
func (v Vector3f) Scale(f float32) Vector3f {
	return Vector3f{v.X * f, v.Y * f, v.Z * f}
}

// Length returns the Euclidean length of v.
func (v Vector3f) Length() float32 {
	return float32(r3.Norm(v.r3()))
}

// Distance returns the Euclidean distance between v and o.
func (v Vector3f) Distance(o Vector3f) float32 {
	return v.Sub(o).Length()
}

func (v Vector3f) r3() r3.Vec {
	return r3.Vec{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

func fromR3(v r3.Vec) Vector3f {
	return Vector3f{float32(v.X), float32(v.Y), float32(v.Z)}
}

// Vector2i is a 2D vector with integer components.
type Vector2i struct {
	X, Y int32
}

// Max returns the component-wise maximum of v and o.
func (v Vector2i) Max(o Vector2i) Vector2i {
	return Vector2i{max(v.X, o.X), max(v.Y, o.Y)}
}

// Sizei is an integer width/height pair.
type Sizei struct {
	W, H int32
}

// Min returns the component-wise minimum of s and o.
func (s Sizei) Min(o Sizei) Sizei {
	return Sizei{min(s.W, o.W), min(s.H, o.H)}
}

// Recti is an integer rectangle with position and size.
type Recti struct {
	Pos  Vector2i
	Size Sizei
}

// ClampRect clamps a viewport rectangle against a texture chain extent.
// The position is clamped to be non-negative. A non-positive size on either
// axis selects the full chain extent; otherwise the size is clamped to the
// chain extent. Clamping is idempotent.
func ClampRect(rect Recti, chain Sizei) Recti {
	pos := rect.Pos.Max(Vector2i{})
	if rect.Size.W <= 0 || rect.Size.H <= 0 {
		return Recti{Pos: pos, Size: chain}
	}
	return Recti{Pos: pos, Size: rect.Size.Min(chain)}
}
