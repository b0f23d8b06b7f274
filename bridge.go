// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package xrbridge

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gogpu/xrbridge/driver"
	"github.com/gogpu/xrbridge/internal/logging"
)

// Options configures bridge initialization.
type Options struct {
	// MinorVersion is the legacy API minor version the client claims.
	// It selects the version profile's behavior quirks.
	MinorVersion int

	// Backend names the runtime backend to open. Empty selects the best
	// available registered backend.
	Backend string

	// ApplicationName identifies the client to the runtime.
	ApplicationName string
}

// DefaultOptions returns Options for the newest supported client version.
func DefaultOptions() Options {
	return Options{
		MinorVersion:    43,
		ApplicationName: "xrbridge",
	}
}

// Bridge is the process-wide container: one runtime instance, the client
// version profile and the live session registry. Create and Shutdown must
// not be invoked concurrently.
type Bridge struct {
	inst    driver.Instance
	profile driver.Profile
	log     *slog.Logger

	errMu   sync.Mutex
	lastErr ErrorInfo

	sessions []*Session
}

// New opens a runtime backend and returns a bridge for it.
func New(opts Options) (*Bridge, error) {
	iopts := driver.InstanceOptions{
		ApplicationName: opts.ApplicationName,
		Profile:         driver.Profile{Minor: opts.MinorVersion},
	}

	var (
		inst driver.Instance
		err  error
	)
	if opts.Backend != "" {
		inst, err = driver.OpenByName(opts.Backend, iopts)
	} else {
		inst, err = driver.Open(iopts)
	}
	if err != nil {
		return nil, err
	}

	b := &Bridge{
		inst:    inst,
		profile: iopts.Profile,
		log:     logging.Logger("bridge"),
	}
	b.log.Info("initialized",
		"runtime", inst.RuntimeName(),
		"minor", opts.MinorVersion)
	return b, nil
}

// Shutdown ends every live session and destroys the runtime instance.
func (b *Bridge) Shutdown() error {
	for len(b.sessions) > 0 {
		b.sessions[0].Destroy()
	}
	err := b.inst.Destroy()
	b.log.Info("shut down")
	return err
}

// Profile returns the client version profile.
func (b *Bridge) Profile() driver.Profile {
	return b.profile
}

// GetVersionString returns the legacy version string the client expects.
func (b *Bridge) GetVersionString() string {
	return fmt.Sprintf("1.%d.0", b.profile.Minor)
}

// GetLastErrorInfo returns the most recently latched failure: the legacy
// result code and its string form. It is not scoped to a session or
// goroutine.
func (b *Bridge) GetLastErrorInfo() ErrorInfo {
	b.errMu.Lock()
	defer b.errMu.Unlock()
	return b.lastErr
}

// setLastError latches err for GetLastErrorInfo and returns it unchanged.
func (b *Bridge) setLastError(err error) error {
	if err == nil {
		return nil
	}
	b.errMu.Lock()
	b.lastErr = ErrorInfo{Result: resultOf(err), String: err.Error()}
	b.errMu.Unlock()
	return err
}

// TraceMessage accepts a legacy debug trace message and discards it.
func (b *Bridge) TraceMessage(level int, message string) int { return 0 }

// IdentifyClient accepts a legacy client identity string and discards it.
func (b *Bridge) IdentifyClient(identity string) error { return nil }

// Lookup resolves a legacy service-bus interface. No service is emulated,
// so every lookup fails.
func (b *Bridge) Lookup(name string) (any, error) {
	return nil, b.setLastError(ErrServiceError)
}

var processEpoch = time.Now()

// GetTimeInSeconds returns monotonic seconds elapsed since the package was
// loaded. The base is process-local, not the runtime clock that
// GetPredictedDisplayTime converts from.
func GetTimeInSeconds() float64 {
	return time.Since(processEpoch).Seconds()
}

// Default bridge managed by Initialize and Shutdown.
var (
	defaultMu     sync.Mutex
	defaultBridge *Bridge
)

// Initialize creates the default bridge. A second call while initialized
// is a no-op, matching the legacy API.
func Initialize(opts Options) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultBridge != nil {
		return nil
	}
	b, err := New(opts)
	if err != nil {
		return err
	}
	defaultBridge = b
	return nil
}

// Shutdown tears down the default bridge.
func Shutdown() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultBridge == nil {
		return
	}
	defaultBridge.Shutdown()
	defaultBridge = nil
}

// Default returns the default bridge, or nil before Initialize.
func Default() *Bridge {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultBridge
}

// Create opens a session on the default bridge.
func Create() (*Session, error) {
	b := Default()
	if b == nil {
		return nil, ErrNotInitialized
	}
	return b.Create()
}
