// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package xrbridge lets applications written against the legacy Oculus
// runtime API run on a standardized runtime.
//
// The bridge exposes the legacy API's surface — sessions, texture swap
// chains, the one-shot frame submission model, tracking-origin recentering,
// boundary queries and the property table — and translates every operation
// onto an explicit wait/begin/end runtime abstracted by the driver package.
//
// # Frame pacing
//
// The legacy API lets clients submit a frame whenever they like; the target
// runtime demands WaitFrame, then BeginFrame, then EndFrame. The bridge
// keeps a small ring of frame slots carrying the runtime's pacing
// predictions and a client-visible frame index, so the legacy SubmitFrame
// call can be expressed as End of the current frame followed by Wait and
// Begin of the next.
//
// # Layers
//
// A legacy frame is a flat list of tagged layer descriptions. EndFrame
// translates each entry into the runtime's composition-layer graph:
// projection layers per eye with optional chained depth blocks, quads,
// cylinders and cube-maps, with viewport clamping and the vertical flip
// rules the legacy runtime tolerated.
//
// # Sessions and events
//
// Runtime events are pumped on every status query and latched into a
// denormalized status bit-set; clients never see the raw event stream.
// Recentering composes a calibrated origin pose that survives both user
// recenters and runtime reference-space reconfigurations.
//
// # Typical use
//
//	if err := xrbridge.Initialize(xrbridge.DefaultOptions()); err != nil { ... }
//	defer xrbridge.Shutdown()
//	s, err := xrbridge.Create()
//	for i := int64(1); running; i++ {
//	    s.WaitToBeginFrame(i)
//	    s.BeginFrame(i)
//	    // render into committed swapchains
//	    s.EndFrame(i, nil, layers)
//	}
package xrbridge
