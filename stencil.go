// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package xrbridge

import (
	"github.com/gogpu/xrbridge/driver"
	"github.com/gogpu/xrbridge/xrmath"
)

// FovStencilType selects the kind of stencil mesh to query.
type FovStencilType int32

const (
	FovStencilHiddenArea FovStencilType = iota
	FovStencilVisibleArea
	FovStencilBorderLine
	FovStencilVisibleRectangle
)

// FovStencilFlags modify stencil mesh generation.
type FovStencilFlags uint32

const (
	// FovStencilMeshOriginAtBottomLeft requests vertices with a
	// bottom-left texture origin instead of the default top-left.
	FovStencilMeshOriginAtBottomLeft FovStencilFlags = 1 << iota
)

// FovStencilDesc describes a stencil mesh query.
type FovStencilDesc struct {
	StencilType      FovStencilType
	StencilFlags     FovStencilFlags
	Eye              int
	Fov              xrmath.FovPort
	HmdToEyeRotation xrmath.Quatf
}

// FovStencilMesh is a stencil mesh in normalized view coordinates.
type FovStencilMesh struct {
	Vertices []xrmath.Vector2f
	Indices  []uint16
}

// visibleRectangle is the trivial full-view mesh returned for the
// rectangle stencil type.
var visibleRectangle = FovStencilMesh{
	Vertices: []xrmath.Vector2f{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
	Indices:  []uint16{0, 1, 2, 0, 2, 3},
}

// GetFovStencil returns the hidden-area stencil mesh for one eye. The
// rectangle type has a fixed answer; the triangle and line types query
// the runtime's visibility mask.
func (s *Session) GetFovStencil(desc FovStencilDesc) (FovStencilMesh, error) {
	if !s.alive() {
		return FovStencilMesh{}, ErrInvalidSession
	}
	if !s.bridge.inst.Extensions().Has(driver.ExtVisibilityMask) {
		return FovStencilMesh{}, s.bridge.setLastError(ErrUnsupported)
	}

	if desc.StencilType == FovStencilVisibleRectangle {
		return visibleRectangle, nil
	}

	var maskType driver.VisibilityMaskType
	switch desc.StencilType {
	case FovStencilHiddenArea:
		maskType = driver.MaskHiddenTriangle
	case FovStencilVisibleArea:
		maskType = driver.MaskVisibleTriangle
	case FovStencilBorderLine:
		maskType = driver.MaskVisibleLine
	default:
		return FovStencilMesh{}, s.bridge.setLastError(ErrInvalidParameter)
	}

	mask, err := s.drv.VisibilityMask(desc.Eye, maskType)
	if err != nil {
		return FovStencilMesh{}, s.bridge.setLastError(&RuntimeError{err})
	}

	mesh := FovStencilMesh{
		Vertices: make([]xrmath.Vector2f, len(mask.Vertices)),
		Indices:  make([]uint16, len(mask.Indices)),
	}
	flip := desc.StencilFlags&FovStencilMeshOriginAtBottomLeft == 0
	for i, v := range mask.Vertices {
		if flip {
			v.Y = 1 - v.Y
		}
		mesh.Vertices[i] = v
	}
	for i, idx := range mask.Indices {
		mesh.Indices[i] = uint16(idx)
	}
	return mesh, nil
}

// GetViewportStencil is the historical alias taking the pre-flags
// descriptor shape.
func (s *Session) GetViewportStencil(stencilType FovStencilType, eye int, fov xrmath.FovPort, hmdToEyeRotation xrmath.Quatf) (FovStencilMesh, error) {
	return s.GetFovStencil(FovStencilDesc{
		StencilType:      stencilType,
		Eye:              eye,
		Fov:              fov,
		HmdToEyeRotation: hmdToEyeRotation,
	})
}
