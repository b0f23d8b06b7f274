// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package xrbridge

import "time"

// Property names with fixed semantics. Unknown names fall through to the
// caller's default; every setter is a no-op.
const (
	PropTextureSwapChainDepth = "TextureSwapChainDepth"
	PropIPD                   = "IPD"
	PropVsyncToNextVsync      = "VsyncToNextVsync"
	PropPlayerHeight          = "PlayerHeight"
	PropEyeHeight             = "EyeHeight"
	PropNeckToEyeDistance     = "NeckToEyeDistance"
	PropGender                = "Gender"
)

// Canonical defaults for the profile properties.
const (
	DefaultPlayerHeight        = 1.778
	DefaultEyeHeight           = 1.675
	DefaultNeckToEyeHorizontal = 0.0805
	DefaultNeckToEyeVertical   = 0.075
	DefaultGender              = "Unknown"
)

// GetBool returns a named boolean property, or the default.
func (s *Session) GetBool(name string, def bool) bool {
	return def
}

// SetBool is a no-op; no boolean property is writable.
func (s *Session) SetBool(name string, value bool) bool {
	return false
}

// GetInt returns a named integer property, or the default.
func (s *Session) GetInt(name string, def int) int {
	if name == PropTextureSwapChainDepth {
		return DefaultSwapChainLength
	}
	return def
}

// SetInt is a no-op; no integer property is writable.
func (s *Session) SetInt(name string, value int) bool {
	return false
}

// GetFloat returns a named float property, or the default. IPD and
// vsync interval are computed live; the body-profile properties always
// report their canonical defaults.
func (s *Session) GetFloat(name string, def float32) float32 {
	if s.alive() {
		switch name {
		case PropIPD:
			views, err := s.drv.LocateViews(s.currentFrame().state.PredictedDisplayTime)
			if err != nil {
				return 0
			}
			return views[0].Pose.Position.Distance(views[1].Pose.Position)
		case PropVsyncToNextVsync:
			return float32(s.currentFrame().state.PredictedDisplayPeriod) / float32(time.Second)
		}
	}

	switch name {
	case PropPlayerHeight:
		return DefaultPlayerHeight
	case PropEyeHeight:
		return DefaultEyeHeight
	}
	return def
}

// SetFloat is a no-op; no float property is writable.
func (s *Session) SetFloat(name string, value float32) bool {
	return false
}

// GetFloatArray fills values with a named array property and returns the
// element count written.
func (s *Session) GetFloatArray(name string, values []float32) int {
	if name == PropNeckToEyeDistance {
		if len(values) < 2 {
			return 0
		}
		values[0] = DefaultNeckToEyeHorizontal
		values[1] = DefaultNeckToEyeVertical
		return 2
	}
	return 0
}

// SetFloatArray is a no-op; no array property is writable.
func (s *Session) SetFloatArray(name string, values []float32) bool {
	return false
}

// GetString returns a named string property, or the default.
func (s *Session) GetString(name, def string) string {
	if !s.alive() {
		return def
	}
	if name == PropGender {
		return DefaultGender
	}
	return def
}

// SetString is a no-op; no string property is writable.
func (s *Session) SetString(name, value string) bool {
	return false
}
