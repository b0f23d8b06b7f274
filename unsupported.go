// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package xrbridge

// Legacy features with no runtime counterpart. Most surface the single
// unsupported failure code so clients degrade the same way they would on
// a headset without the feature; the external-camera calls report that no
// camera is available, and the caps and extension calls are accepted but
// inert, with EnableExtension rejecting every extension.

// PerfStats is the legacy performance statistics block. Never filled.
type PerfStats struct{}

// GetPerfStats is unsupported; the runtime does not expose compositor
// statistics in the legacy shape.
func (s *Session) GetPerfStats() (PerfStats, error) {
	return PerfStats{}, ErrUnsupported
}

// ResetPerfStats is unsupported.
func (s *Session) ResetPerfStats() error {
	return ErrUnsupported
}

// SetBoundaryLookAndFeel is unsupported; the runtime owns boundary
// rendering.
func (s *Session) SetBoundaryLookAndFeel(color [4]float32) error {
	return ErrUnsupported
}

// ResetBoundaryLookAndFeel is unsupported.
func (s *Session) ResetBoundaryLookAndFeel() error {
	return ErrUnsupported
}

// CameraIntrinsics and CameraExtrinsics describe an external camera.
type (
	CameraIntrinsics struct{}
	CameraExtrinsics struct{}
)

// GetExternalCameras is unsupported; no external camera rig is emulated.
func (s *Session) GetExternalCameras() (int, error) {
	return 0, ErrNoExternalCamera
}

// SetExternalCameraProperties is unsupported.
func (s *Session) SetExternalCameraProperties(name string, in *CameraIntrinsics, ex *CameraExtrinsics) error {
	return ErrNoExternalCamera
}

// GetEnabledCaps reports no legacy HMD caps.
func (s *Session) GetEnabledCaps() uint32 { return 0 }

// SetEnabledCaps ignores legacy HMD caps.
func (s *Session) SetEnabledCaps(caps uint32) {}

// GetTrackingCaps reports no configurable tracking caps.
func (s *Session) GetTrackingCaps() uint32 { return 0 }

// ConfigureTracking accepts any tracking configuration; the runtime
// manages tracking itself.
func (s *Session) ConfigureTracking(requested, required uint32) error {
	return nil
}

// Extension is a legacy extension identifier.
type Extension int32

// IsExtensionSupported reports false for every legacy extension.
func (s *Session) IsExtensionSupported(ext Extension) (bool, error) {
	return false, nil
}

// EnableExtension rejects every legacy extension.
func (s *Session) EnableExtension(ext Extension) error {
	return ErrInvalidOperation
}

// ColorSpace is a legacy HMD color space identifier.
type ColorSpace int32

// ColorSpaceUnknown is the only color space ever reported.
const ColorSpaceUnknown ColorSpace = 0

// HmdColorDesc describes the headset's color space.
type HmdColorDesc struct {
	ColorSpace ColorSpace
}

// GetHmdColorDesc reports an unknown color space.
func (s *Session) GetHmdColorDesc() HmdColorDesc {
	return HmdColorDesc{ColorSpace: ColorSpaceUnknown}
}

// SetClientColorDesc is unsupported; no color conversion is performed.
func (s *Session) SetClientColorDesc(desc *HmdColorDesc) error {
	return ErrUnsupported
}

// ShowAvatarHands is unsupported; no avatar subsystem is emulated.
func (s *Session) ShowAvatarHands(show bool) error {
	return ErrUnsupported
}

// ShowKeyboard is unsupported.
func (s *Session) ShowKeyboard() error {
	return ErrUnsupported
}

// InitDesktopWindow is unsupported; no desktop overlay is emulated.
func (s *Session) InitDesktopWindow() (uint32, error) {
	return 0, ErrUnsupported
}

// ShowDesktopWindow is unsupported.
func (s *Session) ShowDesktopWindow(handle uint32) error {
	return ErrUnsupported
}

// HideDesktopWindow is unsupported.
func (s *Session) HideDesktopWindow(handle uint32) error {
	return ErrUnsupported
}

// GetHybridInputFocus is unsupported.
func (s *Session) GetHybridInputFocus(controllerType ControllerType) error {
	return ErrUnsupported
}

// EnableHybridRaycast is unsupported.
func (s *Session) EnableHybridRaycast() error {
	return ErrUnsupported
}

// QueryDistortion is unsupported; distortion runs in the runtime
// compositor.
func (s *Session) QueryDistortion() error {
	return ErrUnsupported
}
