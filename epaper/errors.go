// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epaper

import "errors"

var (
	// ErrUnsupportedModel is returned by every operation of a model without
	// a working driver.
	ErrUnsupportedModel = errors.New("epaper: unsupported model")
	// ErrNotImplemented is returned for operations the model's controller
	// family cannot do, such as windowed writes on UC81xx panels.
	ErrNotImplemented = errors.New("epaper: not implemented")
	// ErrNotConnected is returned by a Transport used before its bus was
	// acquired. Drivers check Connected first and skip instead.
	ErrNotConnected = errors.New("epaper: not connected")
	// ErrBusyTimeout is returned when the busy line did not release before
	// the timeout or the context expired.
	ErrBusyTimeout = errors.New("epaper: busy timeout")
)
