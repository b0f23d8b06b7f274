// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package xrbridge

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/gogpu/xrbridge/driver"
	"github.com/gogpu/xrbridge/internal/logging"
	"github.com/gogpu/xrbridge/xrmath"
)

// maxFrameSlots is the size of the frame-state ring. The slot holding the
// newest WaitFrame prediction is the current slot.
const maxFrameSlots = 5

// eyeCount is the number of stereo views.
const eyeCount = 2

// TrackingOrigin selects the tracking space reported to the client.
type TrackingOrigin int

const (
	// TrackingOriginEyeLevel tracks relative to the recentered seated
	// origin.
	TrackingOriginEyeLevel TrackingOrigin = iota

	// TrackingOriginFloorLevel tracks relative to the stage floor.
	TrackingOriginFloorLevel
)

type frameSlot struct {
	state driver.FrameState

	// frameIndex is the client-visible index of the frame this slot
	// paces. It runs one ahead of the index the client last waited with.
	frameIndex int64
}

// Session is a live headset connection.
type Session struct {
	bridge *Bridge
	id     string
	log    *slog.Logger

	drv        driver.Session
	viewSpace  driver.Space
	localSpace driver.Space
	stageSpace driver.Space

	system       driver.SystemProperties
	views        [eyeCount]driver.ViewConfig
	pixelsPerTan [eyeCount]xrmath.Vector2f

	frames  [maxFrameSlots]frameSlot
	current int

	calibratedOrigin xrmath.Posef
	trackingSpace    TrackingOrigin

	status SessionStatus

	// chainMu guards only the acquired-chain queue.
	chainMu  sync.Mutex
	acquired []*TextureSwapChain

	// chains is the arena of live swapchains keyed by opaque handle.
	chains     map[uint64]*TextureSwapChain
	nextHandle uint64

	input InputProvider

	destroyed bool
}

// Create opens a new session on the bridge. The session is not fully
// usable until the client creates a swapchain through its graphics
// binding.
func (b *Bridge) Create() (*Session, error) {
	drv, err := b.inst.CreateSession()
	if err != nil {
		return nil, b.setLastError(&RuntimeError{err})
	}

	system, err := b.inst.System()
	if err != nil {
		return nil, b.setLastError(&RuntimeError{err})
	}

	s := &Session{
		bridge:           b,
		id:               uuid.NewString(),
		log:              logging.Logger("session"),
		drv:              drv,
		system:           system,
		calibratedOrigin: xrmath.PoseIdentity(),
		chains:           make(map[uint64]*TextureSwapChain),
		nextHandle:       1,
		input:            NopInputProvider{},
	}
	s.views = system.Views
	for i := range s.views {
		fov := s.views[i].RecommendedFov
		if ht := fov.LeftTan + fov.RightTan; ht > 0 {
			s.pixelsPerTan[i].X = float32(s.views[i].RecommendedWidth) / ht
		}
		if vt := fov.UpTan + fov.DownTan; vt > 0 {
			s.pixelsPerTan[i].Y = float32(s.views[i].RecommendedHeight) / vt
		}
	}

	if s.viewSpace, err = drv.CreateReferenceSpace(driver.SpaceView, xrmath.PoseIdentity()); err != nil {
		return nil, b.setLastError(&RuntimeError{err})
	}
	// The local space always carries the calibrated origin as its pose.
	if s.localSpace, err = drv.CreateReferenceSpace(driver.SpaceLocal, s.calibratedOrigin); err != nil {
		return nil, b.setLastError(&RuntimeError{err})
	}
	if s.stageSpace, err = drv.CreateReferenceSpace(driver.SpaceStage, xrmath.PoseIdentity()); err != nil {
		return nil, b.setLastError(&RuntimeError{err})
	}

	b.sessions = append(b.sessions, s)
	s.log.Info("session created", "id", s.id, "system", system.SystemName)
	return s, nil
}

// Destroy ends the session and releases its runtime resources. The session
// handle is invalid afterwards.
func (s *Session) Destroy() {
	if s == nil || s.destroyed {
		return
	}
	s.drv.End()

	for handle := range s.chains {
		s.DestroyTextureSwapChain(s.chains[handle])
	}

	s.viewSpace.Destroy()
	s.localSpace.Destroy()
	s.stageSpace.Destroy()
	s.drv.Destroy()
	s.destroyed = true

	b := s.bridge
	for i, o := range b.sessions {
		if o == s {
			b.sessions = append(b.sessions[:i], b.sessions[i+1:]...)
			break
		}
	}
	s.log.Info("session destroyed", "id", s.id)
}

// alive reports whether the session handle is usable.
func (s *Session) alive() bool {
	return s != nil && !s.destroyed
}

// SetTrackingOriginType selects the tracking space used for world-locked
// layers and pose queries.
func (s *Session) SetTrackingOriginType(origin TrackingOrigin) error {
	if !s.alive() {
		return ErrInvalidSession
	}
	s.trackingSpace = origin
	return nil
}

// GetTrackingOriginType returns the selected tracking space.
func (s *Session) GetTrackingOriginType() TrackingOrigin {
	if !s.alive() {
		return TrackingOriginEyeLevel
	}
	return s.trackingSpace
}

// baseSpace returns the reference space world-locked content is expressed
// in under the current tracking origin.
func (s *Session) baseSpace() driver.Space {
	if s.trackingSpace == TrackingOriginFloorLevel {
		return s.stageSpace
	}
	return s.localSpace
}

// currentFrame returns the current frame slot.
func (s *Session) currentFrame() *frameSlot {
	return &s.frames[s.current]
}

// SetInputProvider attaches the input subsystem the session delegates
// controller queries to. The default provider reports no devices.
func (s *Session) SetInputProvider(p InputProvider) {
	if p == nil {
		p = NopInputProvider{}
	}
	s.input = p
}

// locateHead returns the head pose relative to the current local space at
// the current predicted display time.
func (s *Session) locateHead() (driver.SpaceLocation, error) {
	return s.viewSpace.Locate(s.localSpace, s.currentFrame().state.PredictedDisplayTime)
}
