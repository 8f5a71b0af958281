// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package epapertest implements a recording transport for e-paper drivers.
package epapertest

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
)

// Command is one opcode and the data bytes sent after it.
type Command struct {
	Opcode  byte
	Payload []byte
}

func (c Command) String() string {
	return fmt.Sprintf("0x%02X % X", c.Opcode, c.Payload)
}

// Recorder implements the e-paper transport by recording every command.
//
// The zero value is connected and never busy. It is safe for concurrent use.
type Recorder struct {
	sync.Mutex

	// Disconnected makes the transport report that the bus is not acquired.
	// Writes then fail.
	Disconnected bool
	// Err is returned by every write when set.
	Err error

	// Commands is the recorded traffic.
	Commands []Command
	// Orphans counts data writes received before the first command.
	Orphans int
	// Resets is the sequence of levels applied to the reset line.
	Resets []gpio.Level
	// BusyReads counts the reads of the busy line.
	BusyReads int

	// busyFor is the number of reads still reporting busy.
	busyFor int
	// forever keeps the line busy.
	forever bool
}

// HoldBusy makes the next n reads of the busy line report busy. A negative n
// keeps it busy until HoldBusy is called again.
func (r *Recorder) HoldBusy(n int) {
	r.Lock()
	defer r.Unlock()
	r.forever = n < 0
	r.busyFor = n
}

// SendCommand starts a new recorded command.
func (r *Recorder) SendCommand(cmd byte) error {
	r.Lock()
	defer r.Unlock()
	if err := r.check(); err != nil {
		return err
	}
	r.Commands = append(r.Commands, Command{Opcode: cmd})
	return nil
}

// SendData appends data to the payload of the last command.
func (r *Recorder) SendData(data []byte) error {
	r.Lock()
	defer r.Unlock()
	if err := r.check(); err != nil {
		return err
	}
	if len(r.Commands) == 0 {
		r.Orphans++
		return nil
	}
	c := &r.Commands[len(r.Commands)-1]
	c.Payload = append(c.Payload, data...)
	return nil
}

// SetReset records the level.
func (r *Recorder) SetReset(l gpio.Level) error {
	r.Lock()
	defer r.Unlock()
	if err := r.check(); err != nil {
		return err
	}
	r.Resets = append(r.Resets, l)
	return nil
}

// Busy reports busy while reads set by HoldBusy remain.
func (r *Recorder) Busy() bool {
	r.Lock()
	defer r.Unlock()
	r.BusyReads++
	if r.forever {
		return true
	}
	if r.busyFor > 0 {
		r.busyFor--
		return true
	}
	return false
}

// Connected reports !Disconnected.
func (r *Recorder) Connected() bool {
	r.Lock()
	defer r.Unlock()
	return !r.Disconnected
}

// Opcodes returns the recorded opcodes in order.
func (r *Recorder) Opcodes() []byte {
	r.Lock()
	defer r.Unlock()
	out := make([]byte, 0, len(r.Commands))
	for _, c := range r.Commands {
		out = append(out, c.Opcode)
	}
	return out
}

// Last returns the payload of the last command with the given opcode.
func (r *Recorder) Last(opcode byte) ([]byte, bool) {
	r.Lock()
	defer r.Unlock()
	for i := len(r.Commands) - 1; i >= 0; i-- {
		if r.Commands[i].Opcode == opcode {
			return r.Commands[i].Payload, true
		}
	}
	return nil, false
}

// Reset forgets the recorded traffic. The busy and connected settings are
// kept.
func (r *Recorder) Reset() {
	r.Lock()
	defer r.Unlock()
	r.Commands = nil
	r.Orphans = 0
	r.Resets = nil
	r.BusyReads = 0
}

func (r *Recorder) String() string {
	return "epapertest.Recorder"
}

func (r *Recorder) check() error {
	if r.Err != nil {
		return r.Err
	}
	if r.Disconnected {
		return errNotConnected
	}
	return nil
}

var errNotConnected = errors.New("epapertest: not connected")
