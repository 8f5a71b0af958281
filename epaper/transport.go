// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epaper

import (
	"context"
	"sync/atomic"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Transport is the bus and pin access a Driver needs.
//
// SendCommand drives the data/command line low before writing, SendData
// drives it high. Writes are synchronous.
type Transport interface {
	SendCommand(cmd byte) error
	SendData(data []byte) error
	// SetReset sets the level of the reset line.
	SetReset(l gpio.Level) error
	// Busy reports the last known state of the busy line.
	Busy() bool
	// Connected reports whether the bus was acquired.
	Connected() bool
}

// BusyLine holds the busy state of a controller. Edges are pushed with Edge,
// usually by Watch, and read with Busy from the polling side. The flag is
// atomic so writer and reader may run on different goroutines.
type BusyLine struct {
	busy atomic.Bool

	// ActiveLow is set for controllers that pull the line low while busy.
	ActiveLow bool
}

// Edge records a new level of the busy pin. With ActiveLow unset a rising
// edge (High) marks the controller busy and a falling edge releases it.
func (b *BusyLine) Edge(l gpio.Level) {
	b.busy.Store(bool(l) != b.ActiveLow)
}

// Busy reports whether the controller is busy.
func (b *BusyLine) Busy() bool {
	return b.busy.Load()
}

// Watch follows the pin until ctx is done. The pin must have been configured
// for edge detection. The level is re-read after every edge and every
// timeout so a missed edge is corrected on the next round.
func (b *BusyLine) Watch(ctx context.Context, pin gpio.PinIn, timeout time.Duration) {
	b.Edge(pin.Read())
	for ctx.Err() == nil {
		pin.WaitForEdge(timeout)
		b.Edge(pin.Read())
	}
}
