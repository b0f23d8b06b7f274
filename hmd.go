// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package xrbridge

import (
	"math"

	"github.com/gogpu/xrbridge/driver"
	"github.com/gogpu/xrbridge/xrmath"
)

// HmdType identifies the headset model reported to the client.
type HmdType int32

const (
	HmdNone  HmdType = 0
	HmdCV1   HmdType = 6
	HmdRiftS HmdType = 11
)

// TrackingCaps is the tracking capability bit-set.
type TrackingCaps uint32

const (
	TrackingCapOrientation TrackingCaps = 1 << (4 + iota)
	TrackingCapMagYawCorrection
	TrackingCapPosition
)

// HmdDesc describes the headset to the client.
type HmdDesc struct {
	Type                  HmdType
	ProductName           string
	Manufacturer          string
	AvailableTrackingCaps TrackingCaps
	DefaultTrackingCaps   TrackingCaps
	DefaultEyeFov         [eyeCount]xrmath.FovPort
	MaxEyeFov             [eyeCount]xrmath.FovPort
	Resolution            xrmath.Sizei
	DisplayRefreshRate    float32
}

// GetHmdDesc describes the headset backing the session. With a nil
// session only the model type is filled, matching the legacy behavior
// clients probe with before creating a session.
func (b *Bridge) GetHmdDesc(s *Session) HmdDesc {
	desc := HmdDesc{Type: HmdRiftS}
	if b.profile.AssumedHmdIsLegacyCV1() {
		desc.Type = HmdCV1
	}
	if !s.alive() {
		return desc
	}

	desc.ProductName = "Oculus Rift S"
	desc.Manufacturer = b.inst.RuntimeName()

	if s.system.OrientationTracking {
		desc.AvailableTrackingCaps |= TrackingCapOrientation
	}
	if s.system.PositionTracking {
		// Kept as shipped: the legacy library set the orientation bit
		// here as well.
		desc.AvailableTrackingCaps |= TrackingCapOrientation
	}
	desc.DefaultTrackingCaps = desc.AvailableTrackingCaps

	views, viewsErr := s.drv.LocateViews(s.currentFrame().state.PredictedDisplayTime)
	for eye := 0; eye < eyeCount; eye++ {
		if b.profile.LegacyEyePoseIs3DOF() && viewsErr == nil {
			// Old clients expect orientation-free eye poses, so canted
			// displays fold their cant into the frustum instead.
			desc.DefaultEyeFov[eye] = views[eye].Fov.Port().Uncant(views[eye].Pose.Orientation)
			desc.MaxEyeFov[eye] = desc.DefaultEyeFov[eye]
		} else {
			desc.DefaultEyeFov[eye] = s.views[eye].RecommendedFov
			desc.MaxEyeFov[eye] = s.views[eye].MaxFov
		}
		desc.Resolution.W += s.views[eye].RecommendedWidth
		desc.Resolution.H = max(desc.Resolution.H, s.views[eye].RecommendedHeight)
	}

	if period := s.currentFrame().state.PredictedDisplayPeriod; period > 0 {
		desc.DisplayRefreshRate = float32(1e9 / float64(period))
	} else {
		desc.DisplayRefreshRate = 90
	}
	return desc
}

// TrackerFlags qualifies a reported sensor.
type TrackerFlags uint32

const (
	TrackerConnected   TrackerFlags = 0x0020
	TrackerPoseTracked TrackerFlags = 0x0004
)

// TrackerDesc describes a sensor's frustum.
type TrackerDesc struct {
	FrustumHFovInRadians float32
	FrustumVFovInRadians float32
	FrustumNearZInMeters float32
	FrustumFarZInMeters  float32
}

// TrackerPose is a sensor's reported pose.
type TrackerPose struct {
	TrackerFlags TrackerFlags
	Pose         xrmath.Posef
	LeveledPose  xrmath.Posef
}

// GetTrackerCount returns the number of sensors to report. Clients built
// before external sensors became optional treat a zero count as a loss of
// tracking, so those get virtual sensors.
func (s *Session) GetTrackerCount() int {
	if !s.alive() {
		return 0
	}
	if s.bridge.profile.NeedsVirtualTrackerCount() {
		return len(virtualTrackerPoses)
	}
	return 0
}

// GetTrackerDesc describes one virtual sensor's frustum.
func (s *Session) GetTrackerDesc(index int) TrackerDesc {
	if index < 0 || index >= s.GetTrackerCount() {
		return TrackerDesc{}
	}
	return TrackerDesc{
		FrustumHFovInRadians: degToRad(100),
		FrustumVFovInRadians: degToRad(70),
		FrustumNearZInMeters: 0.4,
		FrustumFarZInMeters:  2.5,
	}
}

// virtualTrackerPoses places the virtual sensors left of, in front of and
// behind the play area.
var virtualTrackerPoses = [3]xrmath.Posef{
	{Orientation: xrmath.QuatAxisY(degToRad(90)), Position: xrmath.Vector3f{X: -2, Z: 0.2}},
	{Orientation: xrmath.QuatAxisY(degToRad(0)), Position: xrmath.Vector3f{X: -0.2, Z: -2}},
	{Orientation: xrmath.QuatAxisY(degToRad(180)), Position: xrmath.Vector3f{X: 0.2, Z: 2}},
}

// GetTrackerPose returns one virtual sensor's pose, yaw-locked to the
// current head pose so the sensors follow the user through recenters.
func (s *Session) GetTrackerPose(index int) TrackerPose {
	var tracker TrackerPose
	if !s.alive() || index < 0 || index >= s.GetTrackerCount() {
		return tracker
	}

	pose := virtualTrackerPoses[index]
	if relation, err := s.locateHead(); err == nil &&
		relation.Flags&driver.LocationOrientationValid != 0 {
		pose = relation.Pose.Leveled().Mul(pose)
	}

	tracker.Pose = pose
	tracker.LeveledPose = pose
	tracker.TrackerFlags = TrackerConnected | TrackerPoseTracked
	return tracker
}

// GetFovTextureSize returns the render-target size matching a frustum at
// the display's recommended pixel density.
func (s *Session) GetFovTextureSize(eye int, fov xrmath.FovPort) xrmath.Sizei {
	if !s.alive() || eye < 0 || eye >= eyeCount {
		return xrmath.Sizei{}
	}
	return xrmath.Sizei{
		W: int32(math.Round(float64(s.pixelsPerTan[eye].X * (fov.LeftTan + fov.RightTan)))),
		H: int32(math.Round(float64(s.pixelsPerTan[eye].Y * (fov.UpTan + fov.DownTan)))),
	}
}

// EyeRenderDesc describes how to render one eye.
type EyeRenderDesc struct {
	Eye                       int
	Fov                       xrmath.FovPort
	DistortedViewport         xrmath.Recti
	PixelsPerTanAngleAtCenter xrmath.Vector2f
	HmdToEyePose              xrmath.Posef
}

// EyeRenderDescLegacy is the render description from before eye poses
// carried an orientation.
type EyeRenderDescLegacy struct {
	Eye                       int
	Fov                       xrmath.FovPort
	DistortedViewport         xrmath.Recti
	PixelsPerTanAngleAtCenter xrmath.Vector2f
	HmdToEyeOffset            xrmath.Vector3f
}

// GetRenderDesc2 returns the render description for one eye, including
// the full eye pose.
func (s *Session) GetRenderDesc2(eye int, fov xrmath.FovPort) EyeRenderDesc {
	if !s.alive() || eye < 0 || eye >= eyeCount {
		return EyeRenderDesc{}
	}

	desc := EyeRenderDesc{Eye: eye, Fov: fov}
	for i := 0; i < eye; i++ {
		desc.DistortedViewport.Pos.X += s.views[i].RecommendedWidth
	}
	desc.DistortedViewport.Size = xrmath.Sizei{
		W: s.views[eye].RecommendedWidth,
		H: s.views[eye].RecommendedHeight,
	}
	desc.PixelsPerTanAngleAtCenter = s.pixelsPerTan[eye]

	if views, err := s.drv.LocateViews(s.currentFrame().state.PredictedDisplayTime); err == nil {
		desc.HmdToEyePose = views[eye].Pose
	}
	return desc
}

// GetRenderDesc is the historical alias reporting only the eye offset.
func (s *Session) GetRenderDesc(eye int, fov xrmath.FovPort) EyeRenderDescLegacy {
	desc := s.GetRenderDesc2(eye, fov)
	return EyeRenderDescLegacy{
		Eye:                       desc.Eye,
		Fov:                       desc.Fov,
		DistortedViewport:         desc.DistortedViewport,
		PixelsPerTanAngleAtCenter: desc.PixelsPerTanAngleAtCenter,
		HmdToEyeOffset:            desc.HmdToEyePose.Position,
	}
}

func degToRad(deg float32) float32 {
	return deg * math.Pi / 180
}
