// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epaper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// SPIFrequency is the bus speed used by Connect.
const SPIFrequency = 2 * physic.MegaHertz

// busyWatchTimeout bounds how long the busy watcher waits for an edge before
// re-reading the level.
const busyWatchTimeout = 100 * time.Millisecond

// SPITransport implements Transport on a periph SPI port and GPIO pins.
type SPITransport struct {
	mu sync.Mutex
	c  conn.Conn

	dc   gpio.PinOut
	cs   gpio.PinOut
	rst  gpio.PinOut
	busy gpio.PinIn
	line BusyLine

	stop context.CancelFunc
	done chan struct{}
}

// NewSPITransport configures the pins and starts following the busy line.
// cs may be nil when the SPI port drives chip select itself. The transport is
// not connected until Connect succeeds.
func NewSPITransport(dc, cs, rst gpio.PinOut, busy gpio.PinIn, busyActiveLow bool) (*SPITransport, error) {
	if err := busy.In(gpio.Float, gpio.BothEdges); err != nil {
		return nil, fmt.Errorf("epaper: busy pin %s: %w", busy, err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	t := &SPITransport{
		dc:   dc,
		cs:   cs,
		rst:  rst,
		busy: busy,
		line: BusyLine{ActiveLow: busyActiveLow},
		stop: cancel,
		done: make(chan struct{}),
	}

	go func() {
		defer close(t.done)
		t.line.Watch(ctx, busy, busyWatchTimeout)
	}()

	return t, nil
}

// Connect acquires the SPI bus.
func (t *SPITransport) Connect(p spi.Port) error {
	c, err := p.Connect(SPIFrequency, spi.Mode0, 8)
	if err != nil {
		return fmt.Errorf("epaper: connect %s: %w", p, err)
	}

	t.mu.Lock()
	t.c = c
	t.mu.Unlock()

	return nil
}

// Connected implements Transport.
func (t *SPITransport) Connected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.c != nil
}

// Busy implements Transport.
func (t *SPITransport) Busy() bool {
	return t.line.Busy()
}

// SetReset implements Transport.
func (t *SPITransport) SetReset(l gpio.Level) error {
	return t.rst.Out(l)
}

// SendCommand implements Transport.
func (t *SPITransport) SendCommand(cmd byte) error {
	return t.send(gpio.Low, []byte{cmd})
}

// SendData implements Transport. Data is split to respect the maximum
// transaction size of the bus.
func (t *SPITransport) SendData(data []byte) error {
	return t.send(gpio.High, data)
}

func (t *SPITransport) send(dc gpio.Level, w []byte) error {
	t.mu.Lock()
	c := t.c
	t.mu.Unlock()

	if c == nil {
		return ErrNotConnected
	}

	chunk := len(w)
	if l, ok := c.(conn.Limits); ok {
		if limit := l.MaxTxSize(); limit > 0 && limit < chunk {
			chunk = limit
		}
	}

	eh := errorHandler{c: c}

	eh.pinOut(t.dc, dc)
	eh.pinOut(t.cs, gpio.Low)
	for len(w) > 0 && eh.err == nil {
		n := min(chunk, len(w))
		eh.tx(w[:n])
		w = w[n:]
	}
	eh.pinOut(t.cs, gpio.High)

	return eh.err
}

// Halt stops the busy watcher. The transport can not be used afterwards.
func (t *SPITransport) Halt() error {
	t.stop()
	<-t.done
	return nil
}

func (t *SPITransport) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fmt.Sprintf("epaper.SPITransport{%v, dc: %s, rst: %s, busy: %s}", t.c, t.dc, t.rst, t.busy)
}

// errorHandler is a wrapper for error management.
type errorHandler struct {
	c   conn.Conn
	err error
}

func (eh *errorHandler) pinOut(p gpio.PinOut, l gpio.Level) {
	if eh.err != nil || p == nil {
		return
	}
	eh.err = p.Out(l)
}

func (eh *errorHandler) tx(w []byte) {
	if eh.err != nil {
		return
	}
	eh.err = eh.c.Tx(w, nil)
}

var _ Transport = &SPITransport{}
var _ conn.Resource = &SPITransport{}
