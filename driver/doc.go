// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package driver defines the runtime abstraction the bridge translates to.
//
// A driver wraps a standardized VR runtime: it creates instances, sessions,
// reference spaces and swapchains, paces frames with the explicit
// wait/begin/end discipline and delivers runtime events through a pull-mode
// queue. The bridge core is written entirely against these interfaces, so
// any conforming runtime binding can back it and tests can run against an
// in-memory fake (see the drivertest package).
//
// # Registry
//
// Runtime backends register themselves by name with a selection priority:
//
//	func init() {
//	    driver.Register("openxr", 100, openxrFactory, openxrAvailable)
//	}
//
// Callers open the best available backend with Open, or a specific one with
// OpenByName.
//
// # Version profile
//
// The package also carries the client version profile: the minor version the
// client application was built against and the behavior quirks derived from
// it. The profile is fixed at initialization and consulted wherever binary
// layouts or documented behavior changed between client versions.
package driver
