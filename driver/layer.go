// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package driver

import "github.com/gogpu/xrbridge/xrmath"

// LayerFlags control how a composition layer is blended.
type LayerFlags uint32

const (
	// LayerBlendTextureSourceAlpha blends the layer using its texture's
	// alpha channel.
	LayerBlendTextureSourceAlpha LayerFlags = 1 << iota
)

// EyeVisibility selects which eyes a layer is shown to.
type EyeVisibility int

const (
	EyeBoth EyeVisibility = iota
	EyeLeft
	EyeRight
)

// SubImage selects a rectangle within one swapchain image.
type SubImage struct {
	Swapchain  Swapchain
	Rect       xrmath.Recti
	ArrayIndex int32
}

// DepthInfo is auxiliary depth data chained to a projection view, letting
// the compositor reproject with real depth.
type DepthInfo struct {
	SubImage SubImage

	// MinDepth and MaxDepth bound the depth values in the sub-image.
	MinDepth, MaxDepth float32

	// NearZ and FarZ are the view-space clip distances in meters.
	NearZ, FarZ float32
}

// ProjectionView is one eye of a projection layer.
type ProjectionView struct {
	Pose     xrmath.Posef
	Fov      xrmath.Fovf
	SubImage SubImage

	// Depth is an optional chained depth-info block.
	Depth *DepthInfo
}

// CompositionLayer is one element of the compositor's layer list.
type CompositionLayer interface {
	compositionLayer()

	// Header returns the flags and space common to all layer kinds.
	Header() (LayerFlags, Space)
}

// LayerHeader carries the fields shared by every composition layer kind.
type LayerHeader struct {
	Flags LayerFlags
	Space Space
}

// Header implements CompositionLayer.
func (h LayerHeader) Header() (LayerFlags, Space) {
	return h.Flags, h.Space
}

// ProjectionLayer is a stereo projection rendered from the tracked head
// pose, one view per eye.
type ProjectionLayer struct {
	LayerHeader
	Views [2]ProjectionView
}

// QuadLayer is a textured quad placed in world or view space.
type QuadLayer struct {
	LayerHeader
	EyeVisibility EyeVisibility
	SubImage      SubImage
	Pose          xrmath.Posef
	Size          xrmath.Vector2f
}

// CylinderLayer is a texture projected onto the inside of a cylinder arc.
type CylinderLayer struct {
	LayerHeader
	EyeVisibility EyeVisibility
	SubImage      SubImage
	Pose          xrmath.Posef
	Radius        float32
	CentralAngle  float32
	AspectRatio   float32
}

// CubeLayer is a cube-map rendered at infinity around the user.
type CubeLayer struct {
	LayerHeader
	EyeVisibility EyeVisibility
	Swapchain     Swapchain
	ArrayIndex    int32
	Orientation   xrmath.Quatf
}

func (*ProjectionLayer) compositionLayer() {}
func (*QuadLayer) compositionLayer()       {}
func (*CylinderLayer) compositionLayer()   {}
func (*CubeLayer) compositionLayer()       {}
