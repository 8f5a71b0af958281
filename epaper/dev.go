// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epaper

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/GermanBionicSystems/epaper/framebuf"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3/rpi"
)

// DefaultPollInterval is the pause between two reads of the busy line.
const DefaultPollInterval = 100 * time.Millisecond

// Opts defines the configuration of a Dev.
type Opts struct {
	// Model selects the profile and the driver.
	Model Model
	// Mode is the waveform uploaded by Init.
	Mode PartialUpdate
	// PollInterval defaults to DefaultPollInterval.
	PollInterval time.Duration
	// BusyTimeout bounds every busy wait. Zero waits forever.
	BusyTimeout time.Duration
}

// Dev is an e-paper panel: a frame buffer sized for the model, the driver of
// its controller and the transport to reach it.
//
// Dev is not safe for concurrent use.
type Dev struct {
	t    Transport
	drv  Driver
	buf  *framebuf.Buffer
	opts Opts

	// owned is the transport created by NewSPI, halted by Close.
	owned conn.Resource
}

// New returns a Dev driving the panel on t. t may be nil, every operation is
// then skipped.
func New(t Transport, opts *Opts) *Dev {
	d := &Dev{t: t}
	if opts != nil {
		d.opts = *opts
	}
	d.drv = NewDriver(d.opts.Model, t, &d.opts)
	p := d.drv.Profile()
	d.buf = framebuf.New(p.Width, p.Height)
	d.buf.Clear(0xFF)
	return d
}

// NewSPI connects to the panel on p with the given pins. cs may be nil when
// the port drives chip select.
func NewSPI(p spi.Port, dc, cs, rst gpio.PinOut, busy gpio.PinIn, opts *Opts) (*Dev, error) {
	var m Model
	if opts != nil {
		m = opts.Model
	}
	t, err := NewSPITransport(dc, cs, rst, busy, Lookup(m).Family == UC81xx)
	if err != nil {
		return nil, err
	}
	if err := t.Connect(p); err != nil {
		_ = t.Halt()
		return nil, err
	}
	d := New(t, opts)
	d.owned = t
	return d, nil
}

// Close stops the busy line watcher of a transport created by NewSPI or
// NewHat. The panel is left as is and the Dev can not be used afterwards. It
// does nothing for a Dev created with New.
func (d *Dev) Close() error {
	if d.owned == nil {
		return nil
	}
	err := d.owned.Halt()
	d.owned = nil
	return err
}

// unsupported reports whether the model has no working driver. Such a Dev
// leaves its frame buffer alone.
func (d *Dev) unsupported() bool {
	_, ok := d.drv.(*unsupportedDriver)
	return ok
}

// NewHat connects to a panel on the Waveshare e-Paper HAT pins.
func NewHat(p spi.Port, opts *Opts) (*Dev, error) {
	dc := rpi.P1_22
	cs := rpi.P1_24
	rst := rpi.P1_11
	busy := rpi.P1_18
	return NewSPI(p, dc, cs, rst, busy, opts)
}

// Model returns the panel model.
func (d *Dev) Model() Model {
	return d.opts.Model
}

// Profile returns the panel profile.
func (d *Dev) Profile() Profile {
	return d.drv.Profile()
}

// State returns the panel state.
func (d *Dev) State() State {
	return d.drv.State()
}

// Buffer returns the frame buffer. Changes are sent by SetFrame.
func (d *Dev) Buffer() *framebuf.Buffer {
	return d.buf
}

// Reset pulses the reset line of the controller.
func (d *Dev) Reset(ctx context.Context) (Status, error) {
	return d.drv.Reset(ctx)
}

// Init brings the controller up with the configured update mode.
func (d *Dev) Init(ctx context.Context) (Status, error) {
	return d.drv.Init(ctx, d.opts.Mode)
}

// SetUpdateMode switches between the full and partial waveforms. Drivers
// that can not switch without Init fail with ErrNotImplemented.
func (d *Dev) SetUpdateMode(ctx context.Context, mode PartialUpdate) (Status, error) {
	ms, ok := d.drv.(ModeSwitcher)
	if !ok {
		return Failed, fmt.Errorf("%w: %s can not switch update mode", ErrNotImplemented, d.opts.Model)
	}
	s, err := ms.SetUpdateMode(ctx, mode)
	if s == Done {
		d.opts.Mode = mode
	}
	return s, err
}

// SetFrame writes the frame buffer to the controller RAM.
func (d *Dev) SetFrame(ctx context.Context) (Status, error) {
	return d.drv.SetFrameMemory(ctx, d.buf.Bytes())
}

// SetFrameBytes copies frame into the frame buffer and writes it. A short
// frame leaves the rest of the buffer untouched.
func (d *Dev) SetFrameBytes(ctx context.Context, frame []byte) (Status, error) {
	d.buf.Replace(frame)
	return d.SetFrame(ctx)
}

// SetFrameWindow blits a packed width x height bitmap at (x, y) into the
// frame buffer and writes that window to the controller RAM. Controllers
// without RAM window addressing fail with ErrNotImplemented and the frame
// buffer is left unchanged.
func (d *Dev) SetFrameWindow(ctx context.Context, src []byte, width, height, x, y int) (Status, error) {
	ww, ok := d.drv.(WindowWriter)
	if !ok {
		return Failed, fmt.Errorf("%w: %s has no RAM window", ErrNotImplemented, d.opts.Model)
	}
	if !d.unsupported() {
		d.buf.Blit(src, width, height, x, y)
	}
	return ww.SetFrameWindow(ctx, src, width, height, x, y)
}

// Clear fills the frame buffer and the controller RAM with fill.
func (d *Dev) Clear(ctx context.Context, fill byte) (Status, error) {
	if !d.unsupported() {
		d.buf.Clear(fill)
	}
	return d.drv.ClearFrameMemory(ctx, fill)
}

// Display refreshes the panel from the controller RAM.
func (d *Dev) Display(ctx context.Context) (Status, error) {
	return d.drv.DisplayFrame(ctx)
}

// Sleep puts the controller in deep sleep. Only Reset and Init are accepted
// afterwards.
func (d *Dev) Sleep(ctx context.Context) (Status, error) {
	return d.drv.Sleep(ctx)
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.drv.Profile().Bounds()
}

// Draw implements display.Drawer. The image is composed into the frame
// buffer which is then written and displayed.
func (d *Dev) Draw(dstRect image.Rectangle, src image.Image, sp image.Point) error {
	if !d.unsupported() {
		draw.Src.Draw(d.buf, dstRect, src, sp)
	}

	ctx := context.Background()
	if _, err := d.SetFrame(ctx); err != nil {
		return err
	}
	_, err := d.Display(ctx)
	return err
}

// Halt implements display.Drawer. It clears the panel to white.
func (d *Dev) Halt() error {
	ctx := context.Background()
	if _, err := d.Clear(ctx, 0xFF); err != nil {
		return err
	}
	_, err := d.Display(ctx)
	return err
}

func (d *Dev) String() string {
	return fmt.Sprintf("epaper.Dev{%s, %s, %v}", d.opts.Model, d.drv.State(), d.t)
}

var _ display.Drawer = &Dev{}
