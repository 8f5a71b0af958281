// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epaper

import (
	"context"
	"fmt"
)

// unsupportedDriver fails every operation without touching the transport.
type unsupportedDriver struct {
	profile Profile
}

func (d *unsupportedDriver) fail() (Status, error) {
	return Failed, fmt.Errorf("%w: %s", ErrUnsupportedModel, d.profile.Model)
}

func (d *unsupportedDriver) Profile() Profile {
	return d.profile
}

func (d *unsupportedDriver) State() State {
	return Unsupported
}

func (d *unsupportedDriver) Reset(context.Context) (Status, error) {
	return d.fail()
}

func (d *unsupportedDriver) Init(context.Context, PartialUpdate) (Status, error) {
	return d.fail()
}

func (d *unsupportedDriver) SetUpdateMode(context.Context, PartialUpdate) (Status, error) {
	return d.fail()
}

func (d *unsupportedDriver) SetFrameMemory(context.Context, []byte) (Status, error) {
	return d.fail()
}

func (d *unsupportedDriver) SetFrameWindow(context.Context, []byte, int, int, int, int) (Status, error) {
	return d.fail()
}

func (d *unsupportedDriver) ClearFrameMemory(context.Context, byte) (Status, error) {
	return d.fail()
}

func (d *unsupportedDriver) DisplayFrame(context.Context) (Status, error) {
	return d.fail()
}

func (d *unsupportedDriver) Sleep(context.Context) (Status, error) {
	return d.fail()
}

var _ WindowWriter = &unsupportedDriver{}
var _ ModeSwitcher = &unsupportedDriver{}
