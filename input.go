// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package xrbridge

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/xrbridge/driver"
	"github.com/gogpu/xrbridge/xrmath"
)

// ControllerType is a bitmask of controller kinds.
type ControllerType uint32

const (
	ControllerNone   ControllerType = 0x0000
	ControllerLTouch ControllerType = 0x0001
	ControllerRTouch ControllerType = 0x0002
	ControllerTouch  ControllerType = 0x0003
	ControllerRemote ControllerType = 0x0004
	ControllerXBox   ControllerType = 0x0010
	ControllerActive ControllerType = 0xff000000
)

// StatusFlags qualifies a tracked pose.
type StatusFlags uint32

const (
	StatusOrientationTracked StatusFlags = 0x0001
	StatusPositionTracked    StatusFlags = 0x0002
)

// PoseStatef is a pose with its derivatives at a point in time.
type PoseStatef struct {
	ThePose             xrmath.Posef
	AngularVelocity     xrmath.Vector3f
	LinearVelocity      xrmath.Vector3f
	AngularAcceleration xrmath.Vector3f
	LinearAcceleration  xrmath.Vector3f
	TimeInSeconds       float64
}

// TrackingState is the tracked state of the head and hands.
type TrackingState struct {
	HeadPose         PoseStatef
	StatusFlags      StatusFlags
	HandPoses        [2]PoseStatef
	HandStatusFlags  [2]StatusFlags
	CalibratedOrigin xrmath.Posef
}

// InputState is the full controller state of the current layout.
type InputState struct {
	TimeInSeconds  float64
	Buttons        uint32
	Touches        uint32
	IndexTrigger   [2]float32
	HandTrigger    [2]float32
	Thumbstick     [2]xrmath.Vector2f
	ControllerType ControllerType

	IndexTriggerNoDeadzone [2]float32
	HandTriggerNoDeadzone  [2]float32
	ThumbstickNoDeadzone   [2]xrmath.Vector2f

	IndexTriggerRaw [2]float32
	HandTriggerRaw  [2]float32
	ThumbstickRaw   [2]xrmath.Vector2f
}

// HapticsBuffer is a queued vibration sample buffer.
type HapticsBuffer struct {
	Samples []byte
}

// HapticsPlaybackState reports the haptics queue state.
type HapticsPlaybackState struct {
	RemainingQueueSpace int
	SamplesQueued       int
}

// TouchHapticsDesc describes a controller's haptics engine.
type TouchHapticsDesc struct {
	SampleRateHz                  int
	SampleSizeInBytes             int
	QueueMinSizeToAvoidStarvation int
	SubmitMinSamples              int
	SubmitMaxSamples              int
	SubmitOptimalSamples          int
}

// InputProvider is the contract the core consumes from the input and
// haptics subsystem.
type InputProvider interface {
	// GetInputState returns the state of the selected controllers.
	GetInputState(s *Session, controllerType ControllerType) (InputState, error)

	// GetTrackingState returns head and hand poses predicted for an
	// absolute time; zero means the current predicted display time.
	GetTrackingState(s *Session, absTime float64) TrackingState

	// DevicePoses returns one pose state per requested device.
	DevicePoses(s *Session, devices []TrackedDeviceType, absTime float64) ([]PoseStatef, error)

	// SetVibration drives simple amplitude/frequency vibration.
	SetVibration(s *Session, controllerType ControllerType, frequency, amplitude float32) error

	// SubmitVibration queues a sampled haptics buffer.
	SubmitVibration(s *Session, controllerType ControllerType, buf *HapticsBuffer) error

	// VibrationState reports the haptics queue state.
	VibrationState(s *Session, controllerType ControllerType) (HapticsPlaybackState, error)

	// TouchHapticsDesc describes the haptics engine of a controller.
	TouchHapticsDesc(controllerType ControllerType) TouchHapticsDesc
}

// NopInputProvider reports no connected devices. It backs sessions until
// an input subsystem is attached.
type NopInputProvider struct{}

func (NopInputProvider) GetInputState(*Session, ControllerType) (InputState, error) {
	return InputState{}, nil
}

func (NopInputProvider) GetTrackingState(*Session, float64) TrackingState {
	return TrackingState{}
}

func (NopInputProvider) DevicePoses(_ *Session, devices []TrackedDeviceType, _ float64) ([]PoseStatef, error) {
	return make([]PoseStatef, len(devices)), nil
}

func (NopInputProvider) SetVibration(*Session, ControllerType, float32, float32) error {
	return nil
}

func (NopInputProvider) SubmitVibration(*Session, ControllerType, *HapticsBuffer) error {
	return nil
}

func (NopInputProvider) VibrationState(*Session, ControllerType) (HapticsPlaybackState, error) {
	return HapticsPlaybackState{}, nil
}

func (NopInputProvider) TouchHapticsDesc(ControllerType) TouchHapticsDesc {
	return TouchHapticsDesc{}
}

// GetInputState returns the state of the selected controllers.
func (s *Session) GetInputState(controllerType ControllerType) (InputState, error) {
	if !s.alive() {
		return InputState{}, ErrInvalidSession
	}
	state, err := s.input.GetInputState(s, controllerType)
	if err != nil {
		return InputState{}, s.bridge.setLastError(err)
	}
	return state, nil
}

// Byte sizes of the historical input-state layouts.
const (
	inputStateSizeV1 = 52
	inputStateSizeV2 = 84
	inputStateSizeV3 = 116
)

// inputStateSize returns the byte size of a layout version.
func inputStateSize(v driver.InputStateVersion) int {
	switch v {
	case driver.InputStateV1:
		return inputStateSizeV1
	case driver.InputStateV2:
		return inputStateSizeV2
	default:
		return inputStateSizeV3
	}
}

// GetInputStateRaw writes the controller state into buf using the legacy
// little-endian layout, truncated to exactly the size of the struct the
// client's version was built against. Bytes past that size are left
// untouched; old clients pass buffers sized for their layout and writing
// further would corrupt their stack.
func (s *Session) GetInputStateRaw(controllerType ControllerType, buf []byte) error {
	if !s.alive() {
		return ErrInvalidSession
	}

	version := s.bridge.profile.InputState()
	size := inputStateSize(version)
	if len(buf) < size {
		return s.bridge.setLastError(ErrInvalidParameter)
	}

	state, err := s.input.GetInputState(s, controllerType)
	if err != nil {
		return s.bridge.setLastError(err)
	}

	w := inputStateWriter{buf: buf[:size]}
	w.f64(state.TimeInSeconds)
	w.u32(state.Buttons)
	w.u32(state.Touches)
	w.f32pair(state.IndexTrigger)
	w.f32pair(state.HandTrigger)
	w.vec2pair(state.Thumbstick)
	w.u32(uint32(state.ControllerType))
	if version >= driver.InputStateV2 {
		w.f32pair(state.IndexTriggerNoDeadzone)
		w.f32pair(state.HandTriggerNoDeadzone)
		w.vec2pair(state.ThumbstickNoDeadzone)
	}
	if version >= driver.InputStateV3 {
		w.f32pair(state.IndexTriggerRaw)
		w.f32pair(state.HandTriggerRaw)
		w.vec2pair(state.ThumbstickRaw)
	}
	return nil
}

type inputStateWriter struct {
	buf []byte
	off int
}

func (w *inputStateWriter) u32(v uint32) {
	binary.LittleEndian.PutUint32(w.buf[w.off:], v)
	w.off += 4
}

func (w *inputStateWriter) f32(v float32) {
	w.u32(math.Float32bits(v))
}

func (w *inputStateWriter) f64(v float64) {
	binary.LittleEndian.PutUint64(w.buf[w.off:], math.Float64bits(v))
	w.off += 8
}

func (w *inputStateWriter) f32pair(v [2]float32) {
	w.f32(v[0])
	w.f32(v[1])
}

func (w *inputStateWriter) vec2pair(v [2]xrmath.Vector2f) {
	for _, p := range v {
		w.f32(p.X)
		w.f32(p.Y)
	}
}

// GetTrackingState returns the head and hand tracking state predicted for
// an absolute time.
func (s *Session) GetTrackingState(absTime float64, latencyMarker bool) TrackingState {
	if !s.alive() {
		return TrackingState{}
	}
	state := s.input.GetTrackingState(s, absTime)
	state.CalibratedOrigin = s.calibratedOrigin
	return state
}

// GetTrackingStateWithSensorData is the private-API alias some titles
// call. The raw sensor data request is ignored.
func (s *Session) GetTrackingStateWithSensorData(absTime float64, latencyMarker bool) TrackingState {
	return s.GetTrackingState(absTime, latencyMarker)
}

// GetDevicePoses returns one pose state per requested device.
func (s *Session) GetDevicePoses(devices []TrackedDeviceType, absTime float64) ([]PoseStatef, error) {
	if !s.alive() {
		return nil, ErrInvalidSession
	}
	poses, err := s.input.DevicePoses(s, devices, absTime)
	if err != nil {
		return nil, s.bridge.setLastError(err)
	}
	return poses, nil
}

// GetConnectedControllerTypes reports the controllers the bridge always
// claims: touch controllers plus the legacy gamepad and remote.
func (s *Session) GetConnectedControllerTypes() ControllerType {
	return ControllerTouch | ControllerXBox | ControllerRemote
}

// SetControllerVibration drives simple vibration on a controller.
func (s *Session) SetControllerVibration(controllerType ControllerType, frequency, amplitude float32) error {
	if !s.alive() {
		return ErrInvalidSession
	}
	return s.bridge.setLastError(s.input.SetVibration(s, controllerType, frequency, amplitude))
}

// SubmitControllerVibration queues a sampled haptics buffer.
func (s *Session) SubmitControllerVibration(controllerType ControllerType, buf *HapticsBuffer) error {
	if !s.alive() {
		return ErrInvalidSession
	}
	return s.bridge.setLastError(s.input.SubmitVibration(s, controllerType, buf))
}

// GetControllerVibrationState reports the haptics queue state.
func (s *Session) GetControllerVibrationState(controllerType ControllerType) (HapticsPlaybackState, error) {
	if !s.alive() {
		return HapticsPlaybackState{}, ErrInvalidSession
	}
	state, err := s.input.VibrationState(s, controllerType)
	if err != nil {
		return HapticsPlaybackState{}, s.bridge.setLastError(err)
	}
	return state, nil
}

// GetTouchHapticsDesc describes a controller's haptics engine.
func (s *Session) GetTouchHapticsDesc(controllerType ControllerType) TouchHapticsDesc {
	if !s.alive() {
		return TouchHapticsDesc{}
	}
	return s.input.TouchHapticsDesc(controllerType)
}
