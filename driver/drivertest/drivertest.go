// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package drivertest provides an in-memory fake runtime for testing the
// bridge core. The fake records the order of pacing calls, lets tests
// script the event queue and the tracked head pose, and enforces the same
// swapchain acquire/wait/release ordering a real runtime would.
package drivertest

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/xrbridge/driver"
	"github.com/gogpu/xrbridge/xrmath"
)

// DefaultPeriod is the fake display period, a 90 Hz refresh.
const DefaultPeriod = time.Second / 90

// Driver is a fake runtime driver. It hands out a single Instance.
type Driver struct {
	Inst *Instance
}

// New returns a fake driver with one instance backed by a plausible
// stereo headset system.
func New() *Driver {
	inst := &Instance{
		Name: "drivertest",
		Exts: driver.ExtDepth | driver.ExtCylinder | driver.ExtCube |
			driver.ExtVisibilityMask | driver.ExtTimeConversion,
		Props: driver.SystemProperties{
			SystemName:          "Fake HMD",
			OrientationTracking: true,
			PositionTracking:    true,
			Views: [2]driver.ViewConfig{
				defaultView(), defaultView(),
			},
		},
	}
	return &Driver{Inst: inst}
}

func defaultView() driver.ViewConfig {
	fov := xrmath.FovPort{UpTan: 1.1, DownTan: 1.1, LeftTan: 1.0, RightTan: 1.0}
	return driver.ViewConfig{
		RecommendedWidth:  1280,
		RecommendedHeight: 1440,
		MaxWidth:          2560,
		MaxHeight:         2880,
		RecommendedFov:    fov,
		MaxFov:            fov,
	}
}

// CreateInstance implements driver.Driver.
func (d *Driver) CreateInstance(opts driver.InstanceOptions) (driver.Instance, error) {
	d.Inst.Opts = opts
	return d.Inst, nil
}

// Instance is a fake runtime instance with a scripted event queue.
type Instance struct {
	mu sync.Mutex

	Name  string
	Exts  driver.Extensions
	Props driver.SystemProperties
	Opts  driver.InstanceOptions

	// FailConvert makes ConvertTimeToSeconds fail.
	FailConvert bool

	events    []driver.Event
	Sess      *Session
	Destroyed bool
}

// PushEvent queues an event for PollEvent to return.
func (in *Instance) PushEvent(ev driver.Event) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.events = append(in.events, ev)
}

// RuntimeName implements driver.Instance.
func (in *Instance) RuntimeName() string { return in.Name }

// Extensions implements driver.Instance.
func (in *Instance) Extensions() driver.Extensions { return in.Exts }

// System implements driver.Instance.
func (in *Instance) System() (driver.SystemProperties, error) {
	return in.Props, nil
}

// PollEvent implements driver.Instance.
func (in *Instance) PollEvent() (driver.Event, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if len(in.events) == 0 {
		return nil, false
	}
	ev := in.events[0]
	in.events = in.events[1:]
	return ev, true
}

// ConvertTimeToSeconds implements driver.Instance.
func (in *Instance) ConvertTimeToSeconds(t driver.Time) (float64, error) {
	if in.FailConvert {
		return 0, errors.New("drivertest: time conversion unavailable")
	}
	return float64(t) / float64(time.Second), nil
}

// CreateSession implements driver.Instance.
func (in *Instance) CreateSession() (driver.Session, error) {
	s := &Session{
		inst:      in,
		Period:    DefaultPeriod,
		now:       driver.Time(time.Second),
		HeadFlags: driver.LocationOrientationValid | driver.LocationPositionValid,
		HeadPose:  xrmath.PoseIdentity(),
		BoundsW:   3,
		BoundsD:   4,
		Views: [2]driver.View{
			{Pose: xrmath.Posef{Orientation: xrmath.QuatIdentity(), Position: xrmath.Vector3f{X: -0.032}}, Fov: defaultView().RecommendedFov.Angles()},
			{Pose: xrmath.Posef{Orientation: xrmath.QuatIdentity(), Position: xrmath.Vector3f{X: 0.032}}, Fov: defaultView().RecommendedFov.Angles()},
		},
	}
	in.Sess = s
	return s, nil
}

// Destroy implements driver.Instance.
func (in *Instance) Destroy() error {
	in.Destroyed = true
	return nil
}

// Session is a fake runtime session. It records the order of pacing and
// swapchain calls in Calls.
type Session struct {
	mu   sync.Mutex
	inst *Instance

	// Calls is the ordered log of pacing-relevant calls.
	Calls []string

	// Period is the predicted display period returned by WaitFrame.
	Period time.Duration

	// HeadPose is the head pose in the runtime's unshifted local frame.
	HeadPose  xrmath.Posef
	HeadFlags driver.LocationFlags

	// Views are returned by LocateViews.
	Views [2]driver.View

	// BoundsW and BoundsD are the stage extents.
	BoundsW, BoundsD float32

	// FailWaitFrame, while set, is returned by every WaitFrame.
	FailWaitFrame error

	// LastEnd is the most recent EndFrame payload.
	LastEnd driver.EndFrameInfo

	Chains    []*Swapchain
	Spaces    []*Space
	now       driver.Time
	Ended     bool
	Destroyed bool
}

func (s *Session) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, call)
}

// WaitFrame implements driver.Session.
func (s *Session) WaitFrame() (driver.FrameState, error) {
	s.record("WaitFrame")
	if err := s.FailWaitFrame; err != nil {
		return driver.FrameState{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now += driver.Time(s.Period)
	return driver.FrameState{
		PredictedDisplayTime:   s.now,
		PredictedDisplayPeriod: s.Period,
	}, nil
}

// BeginFrame implements driver.Session.
func (s *Session) BeginFrame() error {
	s.record("BeginFrame")
	return nil
}

// EndFrame implements driver.Session.
func (s *Session) EndFrame(info driver.EndFrameInfo) error {
	s.record("EndFrame")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastEnd = info
	return nil
}

// Now returns the latest predicted display time handed out by WaitFrame.
func (s *Session) Now() driver.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// CreateReferenceSpace implements driver.Session.
func (s *Session) CreateReferenceSpace(t driver.ReferenceSpaceType, pose xrmath.Posef) (driver.Space, error) {
	sp := &Space{sess: s, Type: t, Pose: pose}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Spaces = append(s.Spaces, sp)
	return sp, nil
}

// CreateSwapchain implements driver.Session.
func (s *Session) CreateSwapchain(desc driver.SwapchainDesc) (driver.Swapchain, error) {
	length := 3
	if desc.Static {
		length = 1
	}
	c := &Swapchain{sess: s, Desc: desc, length: length}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Chains = append(s.Chains, c)
	return c, nil
}

// LocateViews implements driver.Session.
func (s *Session) LocateViews(t driver.Time) ([2]driver.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Views, nil
}

// StageBounds implements driver.Session.
func (s *Session) StageBounds() (float32, float32, error) {
	return s.BoundsW, s.BoundsD, nil
}

// VisibilityMask implements driver.Session.
func (s *Session) VisibilityMask(eye int, t driver.VisibilityMaskType) (driver.VisibilityMask, error) {
	return driver.VisibilityMask{
		Vertices: []xrmath.Vector2f{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0.5, Y: 1}},
		Indices:  []uint32{0, 1, 2},
	}, nil
}

// End implements driver.Session.
func (s *Session) End() error {
	s.Ended = true
	return nil
}

// Destroy implements driver.Session.
func (s *Session) Destroy() error {
	s.Destroyed = true
	return nil
}

// Space is a fake reference space.
type Space struct {
	sess      *Session
	Type      driver.ReferenceSpaceType
	Pose      xrmath.Posef
	Destroyed bool
}

// Locate implements driver.Space. Locating the view space relative to a
// local space returns the scripted head pose re-expressed in that space's
// shifted frame.
func (sp *Space) Locate(base driver.Space, t driver.Time) (driver.SpaceLocation, error) {
	b, ok := base.(*Space)
	if !ok {
		return driver.SpaceLocation{}, errors.New("drivertest: foreign space")
	}
	sp.sess.mu.Lock()
	defer sp.sess.mu.Unlock()
	if sp.Type == driver.SpaceView && b.Type == driver.SpaceLocal {
		return driver.SpaceLocation{
			Flags: sp.sess.HeadFlags,
			Pose:  b.Pose.Inverse().Mul(sp.sess.HeadPose).Normalized(),
		}, nil
	}
	return driver.SpaceLocation{
		Flags: sp.sess.HeadFlags,
		Pose:  xrmath.PoseIdentity(),
	}, nil
}

// Destroy implements driver.Space.
func (sp *Space) Destroy() error {
	sp.Destroyed = true
	return nil
}

// Swapchain is a fake image chain enforcing acquire/wait/release ordering.
type Swapchain struct {
	sess *Session
	Desc driver.SwapchainDesc

	// FailAcquire, while set, is returned by every Acquire.
	FailAcquire error

	length       int
	next         int32
	acquired     bool
	AcquireCount int
	WaitCount    int
	ReleaseCount int
	Destroyed    bool
}

// Acquire implements driver.Swapchain.
func (c *Swapchain) Acquire() (int32, error) {
	c.sess.record("Acquire")
	if err := c.FailAcquire; err != nil {
		return 0, err
	}
	if c.acquired {
		return 0, fmt.Errorf("drivertest: image %d already acquired", c.next)
	}
	idx := c.next
	c.next = (c.next + 1) % int32(c.length)
	c.acquired = true
	c.AcquireCount++
	return idx, nil
}

// Wait implements driver.Swapchain.
func (c *Swapchain) Wait(timeout time.Duration) error {
	c.sess.record("WaitImage")
	if !c.acquired {
		return errors.New("drivertest: wait without acquire")
	}
	c.WaitCount++
	return nil
}

// Release implements driver.Swapchain.
func (c *Swapchain) Release() error {
	c.sess.record("Release")
	if !c.acquired {
		return errors.New("drivertest: release without acquire")
	}
	c.acquired = false
	c.ReleaseCount++
	return nil
}

// Length implements driver.Swapchain.
func (c *Swapchain) Length() int { return c.length }

// Images implements driver.Swapchain.
func (c *Swapchain) Images() []gpucontext.Texture {
	return make([]gpucontext.Texture, c.length)
}

// Destroy implements driver.Swapchain.
func (c *Swapchain) Destroy() error {
	c.Destroyed = true
	return nil
}
