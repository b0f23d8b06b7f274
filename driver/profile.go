// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package driver

// Profile captures the client API minor version and the behavior quirks
// derived from it. It is set once at initialization and treated as
// immutable; any component that must match the binary layout or documented
// behavior of older clients consults it.
type Profile struct {
	// Minor is the minor version of the legacy client API the application
	// was built against.
	Minor int
}

// InputStateVersion numbers the historical input-state struct layouts.
type InputStateVersion int

const (
	// InputStateV1 is the layout before minor version 7.
	InputStateV1 InputStateVersion = 1 + iota

	// InputStateV2 is the layout before minor version 11, adding the
	// no-deadzone trigger and thumbstick members.
	InputStateV2

	// InputStateV3 is the current layout.
	InputStateV3
)

// LegacyEyePoseIs3DOF reports whether the client expects eye poses with
// orientation only, requiring canted frusta to be folded into the FOV.
func (p Profile) LegacyEyePoseIs3DOF() bool {
	return p.Minor < 17
}

// InputState returns the input-state struct layout the client was built
// against.
func (p Profile) InputState() InputStateVersion {
	switch {
	case p.Minor < 7:
		return InputStateV1
	case p.Minor < 11:
		return InputStateV2
	default:
		return InputStateV3
	}
}

// LegacyLayerLayout reports whether the client's layer members sit
// immediately after the layer header. Minor version 25 added a reserved
// block to the header, shifting every later member; on older clients the
// data occupies the space of that block.
func (p Profile) LegacyLayerLayout() bool {
	return p.Minor < 25
}

// NeedsVirtualTrackerCount reports whether the client needs virtual sensors
// reported to avoid detecting a loss of tracking.
func (p Profile) NeedsVirtualTrackerCount() bool {
	return p.Minor < 37
}

// AssumedHmdIsLegacyCV1 reports whether the client should be told it is
// driving the original consumer headset model.
func (p Profile) AssumedHmdIsLegacyCV1() bool {
	return p.Minor < 38
}
