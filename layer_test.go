// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package xrbridge

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/xrbridge/driver"
	"github.com/gogpu/xrbridge/xrmath"
)

// TestEndFrameSkipsNilAndDisabled emits exactly the valid subset.
func TestEndFrameSkipsNilAndDisabled(t *testing.T) {
	s, fs, _ := newTestSession(t, 43)
	chain := newTestChain(t, s)

	disabled := eyeFovLayer(chain)
	disabled.Header.Type = LayerTypeDisabled

	layers := []Layer{nil, eyeFovLayer(chain), disabled, nil, eyeFovLayer(chain)}
	require.NoError(t, s.WaitToBeginFrame(1))
	require.NoError(t, s.BeginFrame(1))
	require.NoError(t, s.EndFrame(1, nil, layers))

	require.Len(t, fs.LastEnd.Layers, 2)
}

// TestEndFrameDropsInvalidFov drops the whole layer when every tangent is
// zero, the first-frame workaround some titles need.
func TestEndFrameDropsInvalidFov(t *testing.T) {
	s, fs, _ := newTestSession(t, 43)
	chain := newTestChain(t, s)

	bad := eyeFovLayer(chain)
	bad.Fov[1] = xrmath.FovPort{}

	require.NoError(t, s.WaitToBeginFrame(1))
	require.NoError(t, s.BeginFrame(1))
	require.NoError(t, s.EndFrame(1, nil, []Layer{bad}))

	require.Empty(t, fs.LastEnd.Layers)
}

// TestProjectionReusesPreviousEyeChain fills the right eye from the left
// eye's chain when the right chain is nil.
func TestProjectionReusesPreviousEyeChain(t *testing.T) {
	s, fs, _ := newTestSession(t, 43)
	chain := newTestChain(t, s)

	l := eyeFovLayer(chain)
	l.ColorTexture[1] = nil

	require.NoError(t, s.WaitToBeginFrame(1))
	require.NoError(t, s.BeginFrame(1))
	require.NoError(t, s.EndFrame(1, nil, []Layer{l}))

	require.Len(t, fs.LastEnd.Layers, 1)
	proj := fs.LastEnd.Layers[0].(*driver.ProjectionLayer)
	require.Equal(t, proj.Views[0].SubImage.Swapchain, proj.Views[1].SubImage.Swapchain)
}

// TestProjectionMissingLeftChainDropsLayer drops the layer when the first
// eye has no chain to fall back on.
func TestProjectionMissingLeftChainDropsLayer(t *testing.T) {
	s, fs, _ := newTestSession(t, 43)
	chain := newTestChain(t, s)

	l := eyeFovLayer(chain)
	l.ColorTexture[0] = nil
	l.ColorTexture[1] = nil

	require.NoError(t, s.WaitToBeginFrame(1))
	require.NoError(t, s.BeginFrame(1))
	require.NoError(t, s.EndFrame(1, nil, []Layer{l}))
	require.Empty(t, fs.LastEnd.Layers)
}

// TestFovFlipRules covers the upside-down/OpenGL exclusive-or.
func TestFovFlipRules(t *testing.T) {
	tests := []struct {
		name       string
		api        driver.GraphicsAPI
		upsideDown bool
		flipped    bool
	}{
		{"d3d upright", driver.GraphicsD3D11, false, false},
		{"d3d upside down", driver.GraphicsD3D11, true, true},
		{"gl upright", driver.GraphicsOpenGL, false, true},
		{"gl upside down", driver.GraphicsOpenGL, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, fs, _ := newTestSession(t, 43)
			chain, err := s.CreateTextureSwapChain(TextureSwapChainDesc{
				Format: FormatR8G8B8A8Unorm, Width: 1280, Height: 1440,
			}, tt.api)
			require.NoError(t, err)

			l := eyeFovLayer(chain)
			l.Fov[0] = xrmath.FovPort{UpTan: 1.2, DownTan: 0.8, LeftTan: 1, RightTan: 1}
			l.Fov[1] = l.Fov[0]
			if tt.upsideDown {
				l.Header.Flags |= LayerFlagTextureOriginAtBottomLeft
			}

			require.NoError(t, s.WaitToBeginFrame(1))
			require.NoError(t, s.BeginFrame(1))
			require.NoError(t, s.EndFrame(1, nil, []Layer{l}))

			proj := fs.LastEnd.Layers[0].(*driver.ProjectionLayer)
			want := l.Fov[0].Angles()
			if tt.flipped {
				want = want.SwapUpDown()
			}
			if diff := cmp.Diff(want, proj.Views[0].Fov); diff != "" {
				t.Errorf("fov mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestProjectionViewportClamped submits the clamped rectangle.
func TestProjectionViewportClamped(t *testing.T) {
	s, fs, _ := newTestSession(t, 43)
	chain := newTestChain(t, s)

	l := eyeFovLayer(chain)
	l.Viewport[0] = xrmath.Recti{Pos: xrmath.Vector2i{X: -10, Y: 5}, Size: xrmath.Sizei{W: 99999, H: 10}}
	l.Viewport[1] = xrmath.Recti{}

	require.NoError(t, s.WaitToBeginFrame(1))
	require.NoError(t, s.BeginFrame(1))
	require.NoError(t, s.EndFrame(1, nil, []Layer{l}))

	proj := fs.LastEnd.Layers[0].(*driver.ProjectionLayer)
	require.Equal(t, xrmath.Recti{
		Pos:  xrmath.Vector2i{X: 0, Y: 5},
		Size: xrmath.Sizei{W: 1280, H: 10},
	}, proj.Views[0].SubImage.Rect)
	require.Equal(t, xrmath.Recti{
		Size: xrmath.Sizei{W: 1280, H: 1440},
	}, proj.Views[1].SubImage.Rect)
}

// TestEyeMatrixDerivesFov recovers the frustum from the projection
// matrix.
func TestEyeMatrixDerivesFov(t *testing.T) {
	s, fs, _ := newTestSession(t, 43)
	chain := newTestChain(t, s)

	fov := xrmath.FovPort{UpTan: 1.1, DownTan: 0.9, LeftTan: 1, RightTan: 1.05}
	l := &LayerEyeMatrix{Header: LayerHeader{Type: LayerTypeEyeMatrix}}
	for eye := 0; eye < eyeCount; eye++ {
		l.ColorTexture[eye] = chain
		l.Matrix[eye] = xrmath.ProjectionFromFov(fov)
		l.RenderPose[eye] = xrmath.PoseIdentity()
		l.Viewport[eye] = xrmath.Recti{Size: chain.chainSize()}
	}

	require.NoError(t, s.WaitToBeginFrame(1))
	require.NoError(t, s.BeginFrame(1))
	require.NoError(t, s.EndFrame(1, nil, []Layer{l}))

	proj := fs.LastEnd.Layers[0].(*driver.ProjectionLayer)
	want := fov.Angles()
	require.InDelta(t, float64(want.AngleUp), float64(proj.Views[0].Fov.AngleUp), 1e-5)
	require.InDelta(t, float64(want.AngleLeft), float64(proj.Views[0].Fov.AngleLeft), 1e-5)
}

// TestDepthLayerChainsDepthInfo derives clip planes from the projection
// terms and scales them by the world scale.
func TestDepthLayerChainsDepthInfo(t *testing.T) {
	s, fs, _ := newTestSession(t, 43)
	color := newTestChain(t, s)
	depthChain := newTestChain(t, s)

	l := &LayerEyeFovDepth{LayerEyeFov: *eyeFovLayer(color)}
	l.Header.Type = LayerTypeEyeFovDepth
	for eye := 0; eye < eyeCount; eye++ {
		l.DepthTexture[eye] = depthChain
	}
	// A standard reversed-Z style projection: near = P23/P22, far =
	// P23/(1+P22).
	l.ProjectionDesc = TimewarpProjectionDesc{Projection22: -1.5, Projection23: -0.3}

	scale := &ViewScaleDesc{HmdSpaceToWorldScaleInMeters: 2}
	require.NoError(t, s.WaitToBeginFrame(1))
	require.NoError(t, s.BeginFrame(1))
	require.NoError(t, s.EndFrame(1, scale, []Layer{l}))

	proj := fs.LastEnd.Layers[0].(*driver.ProjectionLayer)
	depth := proj.Views[0].Depth
	require.NotNil(t, depth)
	require.InDelta(t, 2*(-0.3)/(-1.5), float64(depth.NearZ), 1e-6)
	require.InDelta(t, 2*(-0.3)/(1+(-1.5)), float64(depth.FarZ), 1e-6)
	require.Equal(t, float32(0), depth.MinDepth)
	require.Equal(t, float32(1), depth.MaxDepth)
}

// TestQuadLayer copies pose, size and the clamped viewport.
func TestQuadLayer(t *testing.T) {
	s, fs, _ := newTestSession(t, 43)
	chain := newTestChain(t, s)

	pose := xrmath.Posef{Orientation: xrmath.QuatAxisY(0.2), Position: xrmath.Vector3f{Z: -1.5}}
	l := &LayerQuad{
		Header:         LayerHeader{Type: LayerTypeQuad},
		ColorTexture:   chain,
		Viewport:       xrmath.Recti{Size: xrmath.Sizei{W: 300, H: 200}},
		QuadPoseCenter: pose,
		QuadSize:       xrmath.Vector2f{X: 0.6, Y: 0.4},
	}

	require.NoError(t, s.WaitToBeginFrame(1))
	require.NoError(t, s.BeginFrame(1))
	require.NoError(t, s.EndFrame(1, nil, []Layer{l}))

	quad := fs.LastEnd.Layers[0].(*driver.QuadLayer)
	require.Equal(t, pose, quad.Pose)
	require.Equal(t, xrmath.Vector2f{X: 0.6, Y: 0.4}, quad.Size)
	require.Equal(t, driver.EyeBoth, quad.EyeVisibility)
	require.Equal(t, xrmath.Sizei{W: 300, H: 200}, quad.SubImage.Rect.Size)
}

// TestQuadWithoutChainDropped requires a color chain.
func TestQuadWithoutChainDropped(t *testing.T) {
	s, fs, _ := newTestSession(t, 43)

	l := &LayerQuad{Header: LayerHeader{Type: LayerTypeQuad}}
	require.NoError(t, s.WaitToBeginFrame(1))
	require.NoError(t, s.BeginFrame(1))
	require.NoError(t, s.EndFrame(1, nil, []Layer{l}))
	require.Empty(t, fs.LastEnd.Layers)
}

// TestCylinderAndCubeGatedOnExtensions drops the exotic layer kinds when
// the runtime lacks the matching extension.
func TestCylinderAndCubeGatedOnExtensions(t *testing.T) {
	s, fs, inst := newTestSession(t, 43)
	chain := newTestChain(t, s)
	cube := &LayerCube{
		Header:         LayerHeader{Type: LayerTypeCube},
		Orientation:    xrmath.QuatIdentity(),
		CubeMapTexture: chain,
	}
	cylinder := &LayerCylinder{
		Header:              LayerHeader{Type: LayerTypeCylinder},
		ColorTexture:        chain,
		CylinderPoseCenter:  xrmath.PoseIdentity(),
		CylinderRadius:      1.2,
		CylinderAngle:       0.8,
		CylinderAspectRatio: 2,
	}

	require.NoError(t, s.WaitToBeginFrame(1))
	require.NoError(t, s.BeginFrame(1))
	require.NoError(t, s.EndFrame(1, nil, []Layer{cylinder, cube}))
	require.Len(t, fs.LastEnd.Layers, 2)

	cyl := fs.LastEnd.Layers[0].(*driver.CylinderLayer)
	require.Equal(t, float32(1.2), cyl.Radius)
	require.Equal(t, float32(0.8), cyl.CentralAngle)
	require.Equal(t, float32(2), cyl.AspectRatio)

	inst.Exts &^= driver.ExtCylinder | driver.ExtCube
	require.NoError(t, s.WaitToBeginFrame(2))
	require.NoError(t, s.BeginFrame(2))
	require.NoError(t, s.EndFrame(2, nil, []Layer{cylinder, cube}))
	require.Empty(t, fs.LastEnd.Layers)
}

// TestLayerSpaceSelection pins head-locked layers to the view space and
// world layers to the tracking space.
func TestLayerSpaceSelection(t *testing.T) {
	s, fs, _ := newTestSession(t, 43)
	chain := newTestChain(t, s)

	locked := eyeFovLayer(chain)
	locked.Header.Flags |= LayerFlagHeadLocked
	world := eyeFovLayer(chain)

	require.NoError(t, s.SetTrackingOriginType(TrackingOriginFloorLevel))
	require.NoError(t, s.WaitToBeginFrame(1))
	require.NoError(t, s.BeginFrame(1))
	require.NoError(t, s.EndFrame(1, nil, []Layer{locked, world}))

	require.Len(t, fs.LastEnd.Layers, 2)
	_, lockedSpace := fs.LastEnd.Layers[0].Header()
	_, worldSpace := fs.LastEnd.Layers[1].Header()
	require.Same(t, s.viewSpace, lockedSpace)
	require.Same(t, s.stageSpace, worldSpace)

	flags, _ := fs.LastEnd.Layers[0].Header()
	require.Equal(t, driver.LayerBlendTextureSourceAlpha, flags)
}
