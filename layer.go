// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package xrbridge

import (
	"github.com/gogpu/xrbridge/driver"
	"github.com/gogpu/xrbridge/xrmath"
)

// LayerType tags a legacy layer description.
type LayerType int32

const (
	LayerTypeDisabled    LayerType = 0
	LayerTypeEyeFov      LayerType = 1
	LayerTypeEyeFovDepth LayerType = 2
	LayerTypeQuad        LayerType = 3
	LayerTypeCylinder    LayerType = 4
	LayerTypeEyeMatrix   LayerType = 5
	LayerTypeCube        LayerType = 10
)

// LayerFlags modify how a legacy layer is interpreted.
type LayerFlags uint32

const (
	// LayerFlagHighQuality requests higher-quality sampling; the runtime
	// compositor decides on its own, so the flag is accepted and ignored.
	LayerFlagHighQuality LayerFlags = 1 << iota

	// LayerFlagTextureOriginAtBottomLeft marks the layer's textures as
	// vertically flipped.
	LayerFlagTextureOriginAtBottomLeft

	// LayerFlagHeadLocked pins the layer to the user's head instead of
	// the world.
	LayerFlagHeadLocked
)

// LayerHeader is the tag and flag set common to every legacy layer.
type LayerHeader struct {
	Type  LayerType
	Flags LayerFlags
}

// Layer is one entry of the legacy layer list.
type Layer interface {
	layerHeader() *LayerHeader
}

// TimewarpProjectionDesc carries the projection terms needed to
// reconstruct depth clip planes.
type TimewarpProjectionDesc struct {
	Projection22 float32
	Projection23 float32
	Projection32 float32
}

// ViewScaleDesc scales view units to world meters.
type ViewScaleDesc struct {
	HmdToEyePose                 [eyeCount]xrmath.Posef
	HmdSpaceToWorldScaleInMeters float32
}

// LayerEyeFov is a stereo projection layer described by explicit frusta.
type LayerEyeFov struct {
	Header           LayerHeader
	ColorTexture     [eyeCount]*TextureSwapChain
	Viewport         [eyeCount]xrmath.Recti
	Fov              [eyeCount]xrmath.FovPort
	RenderPose       [eyeCount]xrmath.Posef
	SensorSampleTime float64
}

// LayerEyeFovDepth is LayerEyeFov plus per-eye depth textures for
// compositor reprojection.
type LayerEyeFovDepth struct {
	LayerEyeFov
	DepthTexture   [eyeCount]*TextureSwapChain
	ProjectionDesc TimewarpProjectionDesc
}

// LayerEyeMatrix is a stereo projection layer whose frusta come from
// texture-coordinate matrices.
type LayerEyeMatrix struct {
	Header           LayerHeader
	ColorTexture     [eyeCount]*TextureSwapChain
	RenderPose       [eyeCount]xrmath.Posef
	Matrix           [eyeCount]xrmath.Matrix4f
	Viewport         [eyeCount]xrmath.Recti
	SensorSampleTime float64
}

// LayerQuad is a textured quad.
type LayerQuad struct {
	Header         LayerHeader
	ColorTexture   *TextureSwapChain
	Viewport       xrmath.Recti
	QuadPoseCenter xrmath.Posef
	QuadSize       xrmath.Vector2f
}

// LayerCylinder is a texture on the inside of a cylinder arc.
type LayerCylinder struct {
	Header              LayerHeader
	ColorTexture        *TextureSwapChain
	Viewport            xrmath.Recti
	CylinderPoseCenter  xrmath.Posef
	CylinderRadius      float32
	CylinderAngle       float32
	CylinderAspectRatio float32
}

// LayerCube is a cube-map at infinity.
type LayerCube struct {
	Header         LayerHeader
	Orientation    xrmath.Quatf
	CubeMapTexture *TextureSwapChain
}

func (l *LayerEyeFov) layerHeader() *LayerHeader      { return &l.Header }
func (l *LayerEyeFovDepth) layerHeader() *LayerHeader { return &l.Header }
func (l *LayerEyeMatrix) layerHeader() *LayerHeader   { return &l.Header }
func (l *LayerQuad) layerHeader() *LayerHeader        { return &l.Header }
func (l *LayerCylinder) layerHeader() *LayerHeader    { return &l.Header }
func (l *LayerCube) layerHeader() *LayerHeader        { return &l.Header }

// translateLayers converts the flat legacy layer list into the runtime's
// composition layers. Nil entries, disabled layers and layers failing
// their per-type validity checks are dropped.
func (s *Session) translateLayers(viewScale *ViewScaleDesc, layers []Layer) []driver.CompositionLayer {
	exts := s.bridge.inst.Extensions()

	out := make([]driver.CompositionLayer, 0, len(layers))
	for _, l := range layers {
		if l == nil {
			continue
		}
		hdr := l.layerHeader()
		if hdr.Type == LayerTypeDisabled {
			continue
		}
		upsideDown := hdr.Flags&LayerFlagTextureOriginAtBottomLeft != 0
		headLocked := hdr.Flags&LayerFlagHeadLocked != 0

		var translated driver.CompositionLayer
		switch l := l.(type) {
		case *LayerEyeFov:
			translated = s.translateProjection(l, nil, viewScale, upsideDown, exts)
		case *LayerEyeFovDepth:
			translated = s.translateProjection(&l.LayerEyeFov, l, viewScale, upsideDown, exts)
		case *LayerEyeMatrix:
			translated = s.translateEyeMatrix(l, upsideDown)
		case *LayerQuad:
			translated = s.translateQuad(l)
		case *LayerCylinder:
			if exts.Has(driver.ExtCylinder) {
				translated = s.translateCylinder(l)
			}
		case *LayerCube:
			if exts.Has(driver.ExtCube) {
				translated = s.translateCube(l)
			}
		}
		if translated == nil {
			continue
		}

		s.finalizeHeader(translated, headLocked)
		out = append(out, translated)
	}
	return out
}

// finalizeHeader fills the flags and space shared by every layer kind.
func (s *Session) finalizeHeader(layer driver.CompositionLayer, headLocked bool) {
	hdr := driver.LayerHeader{Flags: driver.LayerBlendTextureSourceAlpha}
	if headLocked {
		hdr.Space = s.viewSpace
	} else {
		hdr.Space = s.baseSpace()
	}
	switch l := layer.(type) {
	case *driver.ProjectionLayer:
		l.LayerHeader = hdr
	case *driver.QuadLayer:
		l.LayerHeader = hdr
	case *driver.CylinderLayer:
		l.LayerHeader = hdr
	case *driver.CubeLayer:
		l.LayerHeader = hdr
	}
}

// flipFov exchanges the vertical frustum angles when the layer's vertical
// orientation disagrees with the chain's texture origin. OpenGL chains
// have an inverted origin by convention, so the check inverts for them.
func flipFov(fov xrmath.Fovf, upsideDown bool, chain *TextureSwapChain) xrmath.Fovf {
	if upsideDown != chain.isGL() {
		return fov.SwapUpDown()
	}
	return fov
}

// translateProjection converts an eye-FOV layer, with depth auxiliary
// blocks when depth is the layer's variant and the runtime supports depth
// composition. An eye without a chain reuses the previous eye's chain; the
// whole layer is dropped when the first eye has no chain or any eye carries
// a degenerate frustum.
func (s *Session) translateProjection(l *LayerEyeFov, depth *LayerEyeFovDepth, viewScale *ViewScaleDesc, upsideDown bool, exts driver.Extensions) driver.CompositionLayer {
	proj := &driver.ProjectionLayer{}

	var texture *TextureSwapChain
	for eye := 0; eye < eyeCount; eye++ {
		if l.ColorTexture[eye] != nil {
			texture = l.ColorTexture[eye]
		}
		if texture == nil {
			return nil
		}

		view := &proj.Views[eye]
		view.Pose = l.RenderPose[eye]

		// Some titles submit an all-zero frustum on their first frame;
		// the legacy runtime silently dropped the layer.
		fov := l.Fov[eye]
		if fov.MaxSideTan() <= 0 {
			return nil
		}
		view.Fov = flipFov(fov.Angles(), upsideDown, texture)

		if depth != nil && exts.Has(driver.ExtDepth) && depth.DepthTexture[eye] != nil {
			depthTexture := depth.DepthTexture[eye]
			info := &driver.DepthInfo{
				SubImage: driver.SubImage{
					Swapchain: depthTexture.drv,
					Rect:      xrmath.ClampRect(depth.Viewport[eye], depthTexture.chainSize()),
				},
				MinDepth: 0,
				MaxDepth: 1,
				NearZ:    depth.ProjectionDesc.Projection23 / depth.ProjectionDesc.Projection22,
				FarZ:     depth.ProjectionDesc.Projection23 / (1 + depth.ProjectionDesc.Projection22),
			}
			if viewScale != nil {
				info.NearZ *= viewScale.HmdSpaceToWorldScaleInMeters
				info.FarZ *= viewScale.HmdSpaceToWorldScaleInMeters
			}
			view.Depth = info
		}

		view.SubImage = driver.SubImage{
			Swapchain: texture.drv,
			Rect:      xrmath.ClampRect(l.Viewport[eye], texture.chainSize()),
		}
	}

	return proj
}

// translateEyeMatrix converts a matrix-described projection layer,
// deriving each frustum from its texture-coordinate matrix.
func (s *Session) translateEyeMatrix(l *LayerEyeMatrix, upsideDown bool) driver.CompositionLayer {
	proj := &driver.ProjectionLayer{}

	var texture *TextureSwapChain
	for eye := 0; eye < eyeCount; eye++ {
		if l.ColorTexture[eye] != nil {
			texture = l.ColorTexture[eye]
		}
		if texture == nil {
			return nil
		}

		view := &proj.Views[eye]
		view.Pose = l.RenderPose[eye]
		view.Fov = flipFov(xrmath.FovFromProjection(l.Matrix[eye]).Angles(), upsideDown, texture)
		view.SubImage = driver.SubImage{
			Swapchain: texture.drv,
			Rect:      xrmath.ClampRect(l.Viewport[eye], texture.chainSize()),
		}
	}

	return proj
}

func (s *Session) translateQuad(l *LayerQuad) driver.CompositionLayer {
	if l.ColorTexture == nil {
		return nil
	}
	return &driver.QuadLayer{
		EyeVisibility: driver.EyeBoth,
		SubImage: driver.SubImage{
			Swapchain: l.ColorTexture.drv,
			Rect:      xrmath.ClampRect(l.Viewport, l.ColorTexture.chainSize()),
		},
		Pose: l.QuadPoseCenter,
		Size: l.QuadSize,
	}
}

func (s *Session) translateCylinder(l *LayerCylinder) driver.CompositionLayer {
	if l.ColorTexture == nil {
		return nil
	}
	return &driver.CylinderLayer{
		EyeVisibility: driver.EyeBoth,
		SubImage: driver.SubImage{
			Swapchain: l.ColorTexture.drv,
			Rect:      xrmath.ClampRect(l.Viewport, l.ColorTexture.chainSize()),
		},
		Pose:         l.CylinderPoseCenter,
		Radius:       l.CylinderRadius,
		CentralAngle: l.CylinderAngle,
		AspectRatio:  l.CylinderAspectRatio,
	}
}

func (s *Session) translateCube(l *LayerCube) driver.CompositionLayer {
	if l.CubeMapTexture == nil {
		return nil
	}
	return &driver.CubeLayer{
		EyeVisibility: driver.EyeBoth,
		Swapchain:     l.CubeMapTexture.drv,
		Orientation:   l.Orientation,
	}
}
