// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epaper

import (
	"bytes"
	"context"
	"fmt"
)

// SSD16xx commands
const (
	driverOutputControl            byte = 0x01
	boosterSoftStartControl        byte = 0x0C
	gateScanStartPosition          byte = 0x0F
	deepSleepMode                  byte = 0x10
	dataEntryModeSetting           byte = 0x11
	swReset                        byte = 0x12
	temperatureSensorControl       byte = 0x1A
	masterActivation               byte = 0x20
	displayUpdateControl1          byte = 0x21
	displayUpdateControl2          byte = 0x22
	writeRAM                       byte = 0x24
	writeVcomRegister              byte = 0x2C
	writeLutRegister               byte = 0x32
	setDummyLinePeriod             byte = 0x3A
	setGateTime                    byte = 0x3B
	borderWaveformControl          byte = 0x3C
	setRAMXAddressStartEndPosition byte = 0x44
	setRAMYAddressStartEndPosition byte = 0x45
	setRAMXAddressCounter          byte = 0x4E
	setRAMYAddressCounter          byte = 0x4F
	terminateFrameReadWrite        byte = 0xFF
)

func ssdInit(ctrl controller, p *Profile, lut LUT) {
	// GD = 0; SM = 0; TB = 0
	ctrl.sendCommand(driverOutputControl)
	ctrl.sendData([]byte{
		byte((p.Height - 1) & 0xFF),
		byte(((p.Height - 1) >> 8) & 0xFF),
		0x00,
	})

	ctrl.sendCommand(boosterSoftStartControl)
	ctrl.sendData([]byte{0xD7, 0xD6, 0x9D})

	// VCOM 7C
	ctrl.sendCommand(writeVcomRegister)
	ctrl.sendData([]byte{0xA8})

	// 4 dummy lines per gate
	ctrl.sendCommand(setDummyLinePeriod)
	ctrl.sendData([]byte{0x1A})

	// 2us per line
	ctrl.sendCommand(setGateTime)
	ctrl.sendData([]byte{0x08})

	// X increment; Y increment
	ctrl.sendCommand(dataEntryModeSetting)
	ctrl.sendData([]byte{0x03})

	ssdSetLUT(ctrl, lut)
}

func ssdSetLUT(ctrl controller, lut LUT) {
	ctrl.sendCommand(writeLutRegister)
	ctrl.sendData(lut)
}

// ssdSetMemoryArea configures the RAM window; x is in pixels and must be a
// multiple of 8, the low 3 bits are dropped.
func ssdSetMemoryArea(ctrl controller, xStart, yStart, xEnd, yEnd int) {
	ctrl.sendCommand(setRAMXAddressStartEndPosition)
	ctrl.sendData([]byte{
		byte((xStart >> 3) & 0xFF),
		byte((xEnd >> 3) & 0xFF),
	})

	ctrl.sendCommand(setRAMYAddressStartEndPosition)
	ctrl.sendData([]byte{
		byte(yStart & 0xFF),
		byte((yStart >> 8) & 0xFF),
		byte(yEnd & 0xFF),
		byte((yEnd >> 8) & 0xFF),
	})
}

func ssdSetMemoryPointer(ctrl controller, x, y int) {
	ctrl.sendCommand(setRAMXAddressCounter)
	ctrl.sendData([]byte{byte((x >> 3) & 0xFF)})

	ctrl.sendCommand(setRAMYAddressCounter)
	ctrl.sendData([]byte{
		byte(y & 0xFF),
		byte((y >> 8) & 0xFF),
	})

	ctrl.waitUntilIdle()
}

func ssdWriteFrame(ctrl controller, p *Profile, frame []byte) {
	ssdSetMemoryArea(ctrl, 0, 0, p.Width-1, p.Height-1)
	ssdSetMemoryPointer(ctrl, 0, 0)

	ctrl.sendCommand(writeRAM)
	ctrl.sendData(frame)
}

// ssdWriteWindow writes a packed bitmap to a RAM window. It returns false
// when the window is empty after rounding and clipping; nothing is sent then.
func ssdWriteWindow(ctrl controller, p *Profile, src []byte, width, height, x, y int) bool {
	if len(src) == 0 || x < 0 || y < 0 || width < 0 || height < 0 {
		return false
	}

	x &^= 7
	width &^= 7

	xEnd := min(x+width, p.Width) - 1
	yEnd := min(y+height, p.Height) - 1
	if xEnd < x || yEnd < y {
		return false
	}

	ssdSetMemoryArea(ctrl, x, y, xEnd, yEnd)
	ssdSetMemoryPointer(ctrl, x, y)

	ctrl.sendCommand(writeRAM)

	stride := width / 8
	cols := (xEnd - x + 1) / 8
	data := make([]byte, 0, cols*(yEnd-y+1))

rows:
	for j := 0; j <= yEnd-y; j++ {
		for i := 0; i < cols; i++ {
			idx := i + j*stride
			if idx >= len(src) {
				break rows
			}
			data = append(data, src[idx])
		}
	}

	ctrl.sendData(data)
	return true
}

func ssdDisplayFrame(ctrl controller) {
	ctrl.sendCommand(displayUpdateControl2)
	ctrl.sendData([]byte{0xC4})
	ctrl.sendCommand(masterActivation)
	ctrl.sendCommand(terminateFrameReadWrite)
	ctrl.waitUntilIdle()
}

func ssdSleep(ctrl controller) {
	ctrl.sendCommand(deepSleepMode)
	ctrl.waitUntilIdle()
}

// ssdDriver drives SSD16xx controllers (EPD1in54, EPD2in9).
type ssdDriver struct {
	*link
}

func (d *ssdDriver) lut(mode PartialUpdate) (LUT, error) {
	lut := d.profile.FullUpdate
	if mode == Partial {
		lut = d.profile.PartialUpdate
	}
	if len(lut) == 0 {
		return nil, fmt.Errorf("%w: %s has no %s update LUT", ErrNotImplemented, d.profile.Model, mode)
	}
	return lut, nil
}

// Init implements Driver.
func (d *ssdDriver) Init(ctx context.Context, mode PartialUpdate) (Status, error) {
	lut, err := d.lut(mode)
	if err != nil {
		return Failed, err
	}

	o, ok := d.begin(ctx, "init", true)
	if !ok {
		return Skipped, nil
	}

	o.resetPulse()
	ssdInit(o, &d.profile, lut)

	return o.finish(Ready)
}

// SetUpdateMode implements ModeSwitcher by loading the LUT of mode.
func (d *ssdDriver) SetUpdateMode(ctx context.Context, mode PartialUpdate) (Status, error) {
	lut, err := d.lut(mode)
	if err != nil {
		return Failed, err
	}

	o, ok := d.begin(ctx, "set update mode", false)
	if !ok {
		return Skipped, nil
	}

	ssdSetLUT(o, lut)

	return o.finish(o.prev)
}

// SetFrameMemory implements Driver.
func (d *ssdDriver) SetFrameMemory(ctx context.Context, frame []byte) (Status, error) {
	o, ok := d.begin(ctx, "set frame memory", false)
	if !ok {
		return Skipped, nil
	}

	o.enter(Writing)
	ssdWriteFrame(o, &d.profile, frame)

	return o.finish(Writing)
}

// SetFrameWindow implements WindowWriter.
func (d *ssdDriver) SetFrameWindow(ctx context.Context, src []byte, width, height, x, y int) (Status, error) {
	o, ok := d.begin(ctx, "set frame window", false)
	if !ok {
		return Skipped, nil
	}

	o.enter(Writing)
	if !ssdWriteWindow(o, &d.profile, src, width, height, x, y) {
		Logger().Debug("epaper: empty window", "model", d.profile.Model,
			"x", x, "y", y, "width", width, "height", height, "len", len(src))
		return o.finish(o.prev)
	}

	return o.finish(Writing)
}

// ClearFrameMemory implements Driver.
func (d *ssdDriver) ClearFrameMemory(ctx context.Context, fill byte) (Status, error) {
	o, ok := d.begin(ctx, "clear frame memory", false)
	if !ok {
		return Skipped, nil
	}

	o.enter(Writing)
	ssdWriteFrame(o, &d.profile, bytes.Repeat([]byte{fill}, d.profile.BufferLen()))

	return o.finish(Writing)
}

// DisplayFrame implements Driver.
func (d *ssdDriver) DisplayFrame(ctx context.Context) (Status, error) {
	o, ok := d.begin(ctx, "display frame", false)
	if !ok {
		return Skipped, nil
	}

	o.enter(Displaying)
	ssdDisplayFrame(o)

	return o.finish(Ready)
}

// Sleep implements Driver.
func (d *ssdDriver) Sleep(ctx context.Context) (Status, error) {
	o, ok := d.begin(ctx, "sleep", false)
	if !ok {
		return Skipped, nil
	}

	ssdSleep(o)

	return o.finish(Sleeping)
}

var _ WindowWriter = &ssdDriver{}
var _ ModeSwitcher = &ssdDriver{}
