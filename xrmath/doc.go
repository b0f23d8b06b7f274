// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package xrmath provides the pose, quaternion and field-of-view math used
// by the runtime bridge.
//
// The public types carry float32 components to match the wire layout of VR
// runtime APIs; the computations are performed in float64 through gonum's
// quaternion and 3-space packages and rounded once at the end.
//
// Conventions:
//
//   - Right-handed coordinate system, -Z forward, +Y up (VR convention).
//   - Yaw is the rotation about +Y, extracted with the Y-X-Z Euler order.
//   - FovPort stores positive half-angle tangents; Fovf stores signed angles
//     in radians with AngleLeft and AngleDown negative.
package xrmath
