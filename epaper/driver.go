// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epaper

import "context"

// Driver implements the protocol of one controller family.
//
// Every call returns Skipped without touching the transport when the
// transport is missing or not connected, and while the panel sleeps (except
// Reset and Init, which wake it up). Drivers are not safe for concurrent use.
type Driver interface {
	Profile() Profile
	State() State

	// Reset pulses the reset line. The panel needs Init afterwards.
	Reset(ctx context.Context) (Status, error)
	// Init resets the controller and sends the bring-up sequence with the
	// LUT of the given mode.
	Init(ctx context.Context, mode PartialUpdate) (Status, error)
	// SetFrameMemory writes a full packed frame to the controller RAM.
	SetFrameMemory(ctx context.Context, frame []byte) (Status, error)
	// ClearFrameMemory fills the controller RAM with fill.
	ClearFrameMemory(ctx context.Context, fill byte) (Status, error)
	// DisplayFrame refreshes the panel from RAM and waits until the
	// controller is idle.
	DisplayFrame(ctx context.Context) (Status, error)
	// Sleep enters deep sleep.
	Sleep(ctx context.Context) (Status, error)
}

// WindowWriter is implemented by drivers that can write a rectangle of the
// controller RAM.
type WindowWriter interface {
	// SetFrameWindow writes a packed width x height bitmap with its top-left
	// corner at (x, y). x and width are rounded down to multiples of 8 and
	// the window is clipped to the panel.
	SetFrameWindow(ctx context.Context, src []byte, width, height, x, y int) (Status, error)
}

// ModeSwitcher is implemented by drivers that can change the waveform
// without a full Init.
type ModeSwitcher interface {
	SetUpdateMode(ctx context.Context, mode PartialUpdate) (Status, error)
}

// NewDriver returns the driver for m on transport t. Models without a
// working driver get one that fails with ErrUnsupportedModel. opts may be
// nil.
func NewDriver(m Model, t Transport, opts *Opts) Driver {
	p := Lookup(m)
	switch p.Family {
	case SSD16xx:
		return &ssdDriver{link: newLink(t, p, opts)}
	case UC81xx:
		return &ucDriver{link: newLink(t, p, opts)}
	default:
		return &unsupportedDriver{profile: p}
	}
}
