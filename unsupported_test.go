// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package xrbridge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestUnsupportedSurface verifies the features with no runtime
// counterpart fail with the unsupported code, and the external-camera
// calls with the no-camera code.
func TestUnsupportedSurface(t *testing.T) {
	s, _, _ := newTestSession(t, 43)

	_, err := s.GetPerfStats()
	require.ErrorIs(t, err, ErrUnsupported)
	require.ErrorIs(t, s.ResetPerfStats(), ErrUnsupported)
	require.ErrorIs(t, s.SetBoundaryLookAndFeel([4]float32{1, 0, 0, 1}), ErrUnsupported)
	require.ErrorIs(t, s.ResetBoundaryLookAndFeel(), ErrUnsupported)
	require.ErrorIs(t, s.ShowAvatarHands(true), ErrUnsupported)
	require.ErrorIs(t, s.ShowKeyboard(), ErrUnsupported)
	require.ErrorIs(t, s.EnableHybridRaycast(), ErrUnsupported)
	require.ErrorIs(t, s.QueryDistortion(), ErrUnsupported)
	require.ErrorIs(t, s.SetClientColorDesc(&HmdColorDesc{}), ErrUnsupported)

	_, err = s.InitDesktopWindow()
	require.ErrorIs(t, err, ErrUnsupported)
	require.ErrorIs(t, s.ShowDesktopWindow(1), ErrUnsupported)
	require.ErrorIs(t, s.HideDesktopWindow(1), ErrUnsupported)
	require.ErrorIs(t, s.GetHybridInputFocus(ControllerTouch), ErrUnsupported)

	_, err = s.GetExternalCameras()
	require.ErrorIs(t, err, ErrNoExternalCamera)
	require.ErrorIs(t, s.SetExternalCameraProperties("cam0", nil, nil), ErrNoExternalCamera)
}

// TestLegacyCapsAndExtensions cover the accepted-but-inert legacy
// surface.
func TestLegacyCapsAndExtensions(t *testing.T) {
	s, _, _ := newTestSession(t, 43)

	require.Zero(t, s.GetEnabledCaps())
	s.SetEnabledCaps(0xFFFF)
	require.Zero(t, s.GetEnabledCaps())
	require.Zero(t, s.GetTrackingCaps())
	require.NoError(t, s.ConfigureTracking(0xFF, 0))

	supported, err := s.IsExtensionSupported(Extension(1))
	require.NoError(t, err)
	require.False(t, supported)
	require.ErrorIs(t, s.EnableExtension(Extension(1)), ErrInvalidOperation)

	require.Equal(t, ColorSpaceUnknown, s.GetHmdColorDesc().ColorSpace)
}
