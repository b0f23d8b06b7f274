// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package driver

import (
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/xrbridge/xrmath"
)

// Time is a runtime timestamp in nanoseconds on the runtime's own clock.
// It is not comparable to wall-clock time; use Instance.ConvertTimeToSeconds.
type Time int64

// NoDuration requests a non-blocking poll from Swapchain.Wait.
const NoDuration time.Duration = 0

// FrameState is the pacing information returned by Session.WaitFrame.
type FrameState struct {
	PredictedDisplayTime   Time
	PredictedDisplayPeriod time.Duration
}

// ReferenceSpaceType selects a runtime-defined frame of reference.
type ReferenceSpaceType int

const (
	// SpaceView tracks the user's head.
	SpaceView ReferenceSpaceType = iota

	// SpaceLocal is a seated-scale space with its origin at session start.
	SpaceLocal

	// SpaceStage is a standing-scale space with its origin on the floor.
	SpaceStage
)

// LocationFlags qualifies the validity of a located pose.
type LocationFlags uint32

const (
	LocationOrientationValid LocationFlags = 1 << iota
	LocationPositionValid
	LocationOrientationTracked
	LocationPositionTracked
)

// SpaceLocation is the result of locating one space relative to another.
type SpaceLocation struct {
	Flags LocationFlags
	Pose  xrmath.Posef
}

// View is a per-eye pose and field of view located at a point in time.
type View struct {
	Pose xrmath.Posef
	Fov  xrmath.Fovf
}

// ViewConfig describes one eye's render target recommendations.
type ViewConfig struct {
	RecommendedWidth  int32
	RecommendedHeight int32
	MaxWidth          int32
	MaxHeight         int32
	RecommendedFov    xrmath.FovPort
	MaxFov            xrmath.FovPort
}

// SystemProperties describes the headset system backing an instance.
type SystemProperties struct {
	SystemName          string
	OrientationTracking bool
	PositionTracking    bool
	Views               [2]ViewConfig
}

// Extensions is the set of optional runtime capabilities an instance
// negotiated.
type Extensions uint32

const (
	// ExtDepth enables depth-info blocks chained to projection views.
	ExtDepth Extensions = 1 << iota

	// ExtCylinder enables cylinder composition layers.
	ExtCylinder

	// ExtCube enables cube-map composition layers.
	ExtCube

	// ExtVisibilityMask enables hidden-area mesh queries.
	ExtVisibilityMask

	// ExtTimeConversion enables converting runtime time to wall-clock time.
	ExtTimeConversion
)

// Has reports whether every capability in mask is present.
func (e Extensions) Has(mask Extensions) bool {
	return e&mask == mask
}

// GraphicsAPI identifies the graphics backend a swapchain's images belong to.
type GraphicsAPI int

const (
	GraphicsD3D11 GraphicsAPI = iota
	GraphicsD3D12
	GraphicsVulkan
	GraphicsOpenGL
)

// SwapchainDesc describes an image chain to create.
type SwapchainDesc struct {
	Format      gputypes.TextureFormat
	Width       int32
	Height      int32
	MipCount    int32
	SampleCount int32
	ArraySize   int32
	FaceCount   int32
	Static      bool
	API         GraphicsAPI
}

// EnvironmentBlendMode selects how rendered layers blend with the user's
// environment.
type EnvironmentBlendMode int

const (
	BlendOpaque EnvironmentBlendMode = iota
	BlendAdditive
	BlendAlphaBlend
)

// EndFrameInfo carries a finished frame to the runtime compositor.
type EndFrameInfo struct {
	DisplayTime Time
	Blend       EnvironmentBlendMode
	Layers      []CompositionLayer
}

// VisibilityMaskType selects the kind of hidden-area mesh to query.
type VisibilityMaskType int

const (
	MaskHiddenTriangle VisibilityMaskType = iota
	MaskVisibleTriangle
	MaskVisibleLine
)

// VisibilityMask is a hidden-area mesh in normalized view coordinates.
type VisibilityMask struct {
	Vertices []xrmath.Vector2f
	Indices  []uint32
}

// InstanceOptions configures instance creation.
type InstanceOptions struct {
	// ApplicationName identifies the client to the runtime.
	ApplicationName string

	// Profile is the client version profile the bridge was initialized with.
	Profile Profile
}

// Driver creates runtime instances. Implementations are registered through
// Register.
type Driver interface {
	CreateInstance(opts InstanceOptions) (Instance, error)
}

// Instance is a live connection to a runtime.
type Instance interface {
	// RuntimeName returns the runtime's self-reported name.
	RuntimeName() string

	// Extensions returns the negotiated capability set.
	Extensions() Extensions

	// System returns the properties of the attached headset system.
	System() (SystemProperties, error)

	// PollEvent returns the next queued event, or ok == false when the
	// queue is empty. It never blocks.
	PollEvent() (ev Event, ok bool)

	// ConvertTimeToSeconds converts a runtime timestamp to wall-clock
	// seconds. Requires ExtTimeConversion.
	ConvertTimeToSeconds(t Time) (float64, error)

	// CreateSession connects to the headset.
	CreateSession() (Session, error)

	// Destroy releases the instance.
	Destroy() error
}

// Session is a live headset connection with explicit frame pacing.
type Session interface {
	// WaitFrame blocks until the runtime wants the next frame started and
	// returns its pacing prediction.
	WaitFrame() (FrameState, error)

	// BeginFrame marks the start of rendering for the waited frame.
	BeginFrame() error

	// EndFrame submits the frame's composition layers.
	EndFrame(info EndFrameInfo) error

	// CreateReferenceSpace creates a space of the given type whose origin
	// is offset by pose within the runtime's space.
	CreateReferenceSpace(t ReferenceSpaceType, pose xrmath.Posef) (Space, error)

	// CreateSwapchain creates an image chain.
	CreateSwapchain(desc SwapchainDesc) (Swapchain, error)

	// LocateViews returns the per-eye views predicted for time t.
	LocateViews(t Time) ([2]View, error)

	// StageBounds returns the extents of the stage play area in meters.
	StageBounds() (width, depth float32, err error)

	// VisibilityMask returns the hidden-area mesh for one eye.
	// Requires ExtVisibilityMask.
	VisibilityMask(eye int, t VisibilityMaskType) (VisibilityMask, error)

	// End requests an orderly session stop.
	End() error

	// Destroy releases the session.
	Destroy() error
}

// Space is a created reference space.
type Space interface {
	// Locate returns this space's pose relative to base at time t.
	Locate(base Space, t Time) (SpaceLocation, error)

	// Destroy releases the space.
	Destroy() error
}

// Swapchain is a runtime image chain with strict acquire/wait/release
// ordering: at most one image is acquired but unreleased at a time.
type Swapchain interface {
	// Acquire reserves the next image and returns its index.
	Acquire() (int32, error)

	// Wait blocks until the most recently acquired image is usable, or
	// polls when timeout is NoDuration.
	Wait(timeout time.Duration) error

	// Release hands the acquired image back to the compositor.
	Release() error

	// Length returns the number of images in the chain.
	Length() int

	// Images returns the backend texture for each image in the chain.
	Images() []gpucontext.Texture

	// Destroy releases the chain.
	Destroy() error
}
