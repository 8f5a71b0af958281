// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epaper

import (
	"context"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// resetDelay is held after each edge of the reset pulse.
const resetDelay = 200 * time.Millisecond

// controller is what the protocol sequences write to.
type controller interface {
	sendCommand(cmd byte)
	sendData(data []byte)
	waitUntilIdle()
	delay(d time.Duration)
}

// link is the state shared by all drivers: the borrowed transport, the
// profile and the panel state.
type link struct {
	t       Transport
	profile Profile
	state   State

	poll    time.Duration
	timeout time.Duration
	sleep   func(time.Duration)
}

func newLink(t Transport, p Profile, opts *Opts) *link {
	l := &link{
		t:       t,
		profile: p,
		poll:    DefaultPollInterval,
		sleep:   time.Sleep,
	}
	if opts != nil {
		if opts.PollInterval > 0 {
			l.poll = opts.PollInterval
		}
		l.timeout = opts.BusyTimeout
	}
	return l
}

// Profile returns the panel profile.
func (l *link) Profile() Profile {
	return l.profile
}

// State returns the panel state.
func (l *link) State() State {
	return l.state
}

// Reset pulses the reset line low then high. It is accepted while asleep
// since it is how the controller is woken up.
func (l *link) Reset(ctx context.Context) (Status, error) {
	o, ok := l.begin(ctx, "reset", true)
	if !ok {
		return Skipped, nil
	}
	o.resetPulse()
	return o.finish(Uninitialized)
}

// begin starts an operation. It returns false when the operation must be
// skipped: the panel sleeps (unless wake is set), or the transport is
// missing or not connected.
func (l *link) begin(ctx context.Context, name string, wake bool) (*op, bool) {
	log := Logger()
	switch {
	case l.state == Sleeping && !wake:
		log.Debug("epaper: ignoring command while asleep", "op", name, "model", l.profile.Model)
		return nil, false
	case l.t == nil:
		log.Warn("epaper: device not created", "op", name, "model", l.profile.Model)
		return nil, false
	case !l.t.Connected():
		log.Warn("epaper: device not connected", "op", name, "model", l.profile.Model)
		return nil, false
	}
	return &op{l: l, ctx: ctx, name: name, prev: l.state}, true
}

// op is one driver operation in flight. It implements controller; after the
// first error or a lost connection the remaining writes are dropped.
type op struct {
	l    *link
	ctx  context.Context
	name string
	prev State

	err     error
	skipped bool
}

func (o *op) usable() bool {
	if o.err != nil || o.skipped {
		return false
	}
	if !o.l.t.Connected() {
		Logger().Warn("epaper: device not connected", "op", o.name, "model", o.l.profile.Model)
		o.skipped = true
		return false
	}
	return true
}

func (o *op) sendCommand(cmd byte) {
	if !o.usable() {
		return
	}
	o.err = o.l.t.SendCommand(cmd)
}

func (o *op) sendData(data []byte) {
	if !o.usable() {
		return
	}
	o.err = o.l.t.SendData(data)
}

func (o *op) setReset(l gpio.Level) {
	if !o.usable() {
		return
	}
	o.err = o.l.t.SetReset(l)
}

func (o *op) delay(d time.Duration) {
	if o.err != nil || o.skipped {
		return
	}
	o.l.sleep(d)
}

func (o *op) resetPulse() {
	o.setReset(gpio.Low)
	o.delay(resetDelay)
	o.setReset(gpio.High)
	o.delay(resetDelay)
}

// enter moves the panel to s for the rest of the operation.
func (o *op) enter(s State) {
	o.l.state = s
}

// waitUntilIdle polls the busy line until it is released. There is no limit
// unless the link has a timeout or the context is cancelled.
func (o *op) waitUntilIdle() {
	if o.err != nil || o.skipped {
		return
	}

	ctx := o.ctx
	if o.l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.l.timeout)
		defer cancel()
	}

	prev := o.l.state
	o.l.state = Busy
	defer func() { o.l.state = prev }()

	polls := 0
	for o.l.t.Busy() {
		if err := pause(ctx, o.l.poll); err != nil {
			o.err = fmt.Errorf("%w after %d polls: %v", ErrBusyTimeout, polls, err)
			return
		}
		polls++
	}

	if polls > 0 {
		Logger().Debug("epaper: busy released", "op", o.name, "polls", polls)
	}
}

// finish ends the operation and moves the panel to next on success. On
// error or skip the state from before the operation is restored.
func (o *op) finish(next State) (Status, error) {
	switch {
	case o.err != nil:
		o.l.state = o.prev
		return Failed, fmt.Errorf("epaper: %s %s: %w", o.l.profile.Model, o.name, o.err)
	case o.skipped:
		o.l.state = o.prev
		return Skipped, nil
	}
	o.l.state = next
	return Done, nil
}

func pause(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
