// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epaper

import (
	"bytes"
	"context"
	"fmt"
	"time"
)

// UC81xx commands
const (
	panelSetting               byte = 0x00
	powerSetting               byte = 0x01
	powerOff                   byte = 0x02
	powerOffSequenceSetting    byte = 0x03
	powerOn                    byte = 0x04
	powerOnMeasure             byte = 0x05
	boosterSoftStart           byte = 0x06
	deepSleep                  byte = 0x07
	dataStartTransmission1     byte = 0x10
	dataStop                   byte = 0x11
	displayRefresh             byte = 0x12
	dataStartTransmission2     byte = 0x13
	lutForVCOM                 byte = 0x20
	lutWhiteToWhite            byte = 0x21
	lutBlackToWhite            byte = 0x22
	lutWhiteToBlack            byte = 0x23
	lutBlackToBlack            byte = 0x24
	pllControl                 byte = 0x30
	temperatureSensorCommand   byte = 0x40
	vcomAndDataIntervalSetting byte = 0x50
	lowPowerDetection          byte = 0x51
	tconSetting                byte = 0x60
	resolutionSetting          byte = 0x61
	getStatus                  byte = 0x71
	vcmDCSetting               byte = 0x82
	partialWindow              byte = 0x90
	partialIn                  byte = 0x91
	partialOut                 byte = 0x92
	powerSaving                byte = 0xE3
)

const (
	// ucPlaneDelay is held around each data plane.
	ucPlaneDelay = 2 * time.Millisecond
	// ucPowerDownDelay is held between the power-down steps of Sleep.
	ucPowerDownDelay = 100 * time.Millisecond
)

func ucInit(ctrl controller) {
	ctrl.sendCommand(powerSetting)
	ctrl.sendData([]byte{
		0x03, // VDS_EN, VDG_EN
		0x00, // VCOM_HV, VGHL_LV[1], VGHL_LV[0]
		0x2B, // VDH
		0x2B, // VDL
		0xFF, // VDHR
	})

	ctrl.sendCommand(boosterSoftStart)
	ctrl.sendData([]byte{0x17, 0x17, 0x17})

	ctrl.sendCommand(powerOn)
	ctrl.waitUntilIdle()

	// KW-BF KWR-AF BWROTP 0f
	ctrl.sendCommand(panelSetting)
	ctrl.sendData([]byte{0xBF, 0x0B})

	// 3A 100Hz, 29 150Hz, 39 200Hz, 31 171Hz
	ctrl.sendCommand(pllControl)
	ctrl.sendData([]byte{0x3C})
}

func ucSetResolution(ctrl controller, p *Profile) {
	ctrl.sendCommand(resolutionSetting)
	ctrl.sendData([]byte{
		byte(p.Width >> 8),
		byte(p.Width & 0xFF),
		byte(p.Height >> 8),
		byte(p.Height & 0xFF),
	})
}

// ucWriteFrame sends the old plane as all white and frame as the new plane.
func ucWriteFrame(ctrl controller, p *Profile, frame []byte) {
	ucSetResolution(ctrl, p)

	ctrl.sendCommand(vcmDCSetting)
	ctrl.sendData([]byte{0x12})

	// VBDF 17|D7 VBDW 97 VBDB 57 VBDF F7 VBDW 77 VBDB 37 VBDR B7
	ctrl.sendCommand(vcomAndDataIntervalSetting)
	ctrl.sendData([]byte{0x97})

	if len(frame) == 0 {
		return
	}

	// Bit set: white, bit reset: black.
	ctrl.sendCommand(dataStartTransmission1)
	ctrl.sendData(bytes.Repeat([]byte{0xFF}, p.BufferLen()))
	ctrl.delay(ucPlaneDelay)

	ctrl.sendCommand(dataStartTransmission2)
	ctrl.sendData(frame)
	ctrl.delay(ucPlaneDelay)
}

func ucClearFrame(ctrl controller, p *Profile, fill byte) {
	ucSetResolution(ctrl, p)

	ctrl.sendCommand(dataStartTransmission1)
	ctrl.delay(ucPlaneDelay)
	ctrl.sendData(bytes.Repeat([]byte{0xFF}, p.BufferLen()))
	ctrl.delay(ucPlaneDelay)

	ctrl.sendCommand(dataStartTransmission2)
	ctrl.delay(ucPlaneDelay)
	ctrl.sendData(bytes.Repeat([]byte{fill}, p.BufferLen()))
	ctrl.delay(ucPlaneDelay)
}

func ucSetLUT(ctrl controller, p *Profile) {
	for _, l := range []struct {
		cmd byte
		lut LUT
	}{
		{lutForVCOM, p.VCOM},
		{lutWhiteToWhite, p.WW},
		{lutBlackToWhite, p.BW},
		{lutWhiteToBlack, p.WB},
		{lutBlackToBlack, p.BB},
	} {
		ctrl.sendCommand(l.cmd)
		ctrl.sendData(l.lut)
	}
}

func ucDisplayFrame(ctrl controller, p *Profile) {
	ucSetLUT(ctrl, p)
	ctrl.sendCommand(displayRefresh)
	ctrl.waitUntilIdle()
}

func ucSleep(ctrl controller) {
	// Border floating.
	ctrl.sendCommand(vcomAndDataIntervalSetting)
	ctrl.sendData([]byte{0x17})
	// VCOM to 0V.
	ctrl.sendCommand(vcmDCSetting)
	ctrl.sendCommand(panelSetting)
	ctrl.delay(ucPowerDownDelay)

	// VG and VS to 0V fast.
	ctrl.sendCommand(powerSetting)
	ctrl.sendData([]byte{0x00, 0x00, 0x00, 0x00, 0x00})
	ctrl.delay(ucPowerDownDelay)

	ctrl.sendCommand(powerOff)
	ctrl.waitUntilIdle()

	ctrl.sendCommand(deepSleep)
	ctrl.sendData([]byte{0xA5})
}

// ucDriver drives UC81xx controllers (EPD4in2). They have no RAM window and
// only a full update waveform.
type ucDriver struct {
	*link
}

// Init implements Driver. Only the full update mode is available.
func (d *ucDriver) Init(ctx context.Context, mode PartialUpdate) (Status, error) {
	if mode == Partial {
		return Failed, fmt.Errorf("%w: %s has no partial update LUT", ErrNotImplemented, d.profile.Model)
	}

	o, ok := d.begin(ctx, "init", true)
	if !ok {
		return Skipped, nil
	}

	o.resetPulse()
	ucInit(o)

	return o.finish(Ready)
}

// SetFrameMemory implements Driver.
func (d *ucDriver) SetFrameMemory(ctx context.Context, frame []byte) (Status, error) {
	o, ok := d.begin(ctx, "set frame memory", false)
	if !ok {
		return Skipped, nil
	}

	o.enter(Writing)
	ucWriteFrame(o, &d.profile, frame)

	return o.finish(Writing)
}

// ClearFrameMemory implements Driver.
func (d *ucDriver) ClearFrameMemory(ctx context.Context, fill byte) (Status, error) {
	o, ok := d.begin(ctx, "clear frame memory", false)
	if !ok {
		return Skipped, nil
	}

	o.enter(Writing)
	ucClearFrame(o, &d.profile, fill)

	return o.finish(Writing)
}

// DisplayFrame implements Driver.
func (d *ucDriver) DisplayFrame(ctx context.Context) (Status, error) {
	o, ok := d.begin(ctx, "display frame", false)
	if !ok {
		return Skipped, nil
	}

	o.enter(Displaying)
	ucDisplayFrame(o, &d.profile)

	return o.finish(Ready)
}

// Sleep implements Driver. The analog rails are powered down before deep
// sleep.
func (d *ucDriver) Sleep(ctx context.Context) (Status, error) {
	o, ok := d.begin(ctx, "sleep", false)
	if !ok {
		return Skipped, nil
	}

	ucSleep(o)

	return o.finish(Sleeping)
}
