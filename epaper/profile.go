// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epaper

import "image"

// Family is a controller command set.
type Family uint8

const (
	// NoFamily marks models without a working driver.
	NoFamily Family = iota
	// SSD16xx controllers address RAM through an X/Y window and load one
	// waveform LUT.
	SSD16xx
	// UC81xx controllers take a fixed resolution frame as two data planes
	// and load five waveform LUTs before each refresh.
	UC81xx
)

func (f Family) String() string {
	switch f {
	case SSD16xx:
		return "SSD16xx"
	case UC81xx:
		return "UC81xx"
	}
	return "none"
}

// LUT contains the waveform that is used to program the display.
type LUT []byte

// Profile is the static description of a model.
type Profile struct {
	Model  Model
	Width  int
	Height int
	Family Family

	// SSD16xx waveforms.
	FullUpdate    LUT
	PartialUpdate LUT

	// UC81xx waveforms: VCOM and the four pixel transitions.
	VCOM LUT
	WW   LUT
	BW   LUT
	WB   LUT
	BB   LUT
}

// Bounds returns the panel size.
func (p Profile) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.Width, p.Height)
}

// BufferLen returns the size of a packed frame for the panel.
func (p Profile) BufferLen() int {
	return p.Width / 8 * p.Height
}

// Lookup returns the profile of m. Unknown models get a profile without
// size or family. The LUT slices are shared and must not be modified.
func Lookup(m Model) Profile {
	if m < modelCount {
		return profiles[m]
	}
	return Profile{Model: m}
}

var ssdFullUpdate = LUT{
	0x02, 0x02, 0x01, 0x11, 0x12, 0x12, 0x22, 0x22,
	0x66, 0x69, 0x69, 0x59, 0x58, 0x99, 0x99, 0x88,
	0x00, 0x00, 0x00, 0x00, 0xF8, 0xB4, 0x13, 0x51,
	0x35, 0x51, 0x51, 0x19, 0x01, 0x00,
}

var ssdPartialUpdate = LUT{
	0x10, 0x18, 0x18, 0x08, 0x18, 0x18, 0x08, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x13, 0x14, 0x44, 0x12,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}

var ucVCOM = LUT{
	0x00, 0x17, 0x00, 0x00, 0x00, 0x02,
	0x00, 0x17, 0x17, 0x00, 0x00, 0x02,
	0x00, 0x0A, 0x01, 0x00, 0x00, 0x01,
	0x00, 0x0E, 0x0E, 0x00, 0x00, 0x02,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}

var ucToWhite = LUT{
	0x40, 0x17, 0x00, 0x00, 0x00, 0x02,
	0x90, 0x17, 0x17, 0x00, 0x00, 0x02,
	0x40, 0x0A, 0x01, 0x00, 0x00, 0x01,
	0xA0, 0x0E, 0x0E, 0x00, 0x00, 0x02,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}

var ucToBlack = LUT{
	0x80, 0x17, 0x00, 0x00, 0x00, 0x02,
	0x90, 0x17, 0x17, 0x00, 0x00, 0x02,
	0x80, 0x0A, 0x01, 0x00, 0x00, 0x01,
	0x50, 0x0E, 0x0E, 0x00, 0x00, 0x02,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}

var profiles = [modelCount]Profile{
	EPD1in54: {
		Model:         EPD1in54,
		Width:         200,
		Height:        200,
		Family:        SSD16xx,
		FullUpdate:    ssdFullUpdate,
		PartialUpdate: ssdPartialUpdate,
	},
	EPD1in54b: {Model: EPD1in54b, Width: 200, Height: 200},
	EPD1in54c: {Model: EPD1in54c, Width: 200, Height: 200},
	EPD2in13:  {Model: EPD2in13, Width: 128, Height: 250},
	EPD2in13b: {Model: EPD2in13b, Width: 128, Height: 250},
	EPD2in7:   {Model: EPD2in7, Width: 176, Height: 264},
	EPD2in7b:  {Model: EPD2in7b, Width: 176, Height: 264},
	EPD2in9: {
		Model:         EPD2in9,
		Width:         128,
		Height:        296,
		Family:        SSD16xx,
		FullUpdate:    ssdFullUpdate,
		PartialUpdate: ssdPartialUpdate,
	},
	EPD2in9b: {Model: EPD2in9b, Width: 128, Height: 296},
	EPD4in2: {
		Model:  EPD4in2,
		Width:  400,
		Height: 300,
		Family: UC81xx,
		VCOM:   ucVCOM,
		WW:     ucToWhite,
		BW:     ucToWhite,
		WB:     ucToBlack,
		BB:     ucToBlack,
	},
	EPD4in2b: {Model: EPD4in2b, Width: 400, Height: 300},
	EPD7in5:  {Model: EPD7in5, Width: 640, Height: 384},
	EPD7in5b: {Model: EPD7in5b, Width: 640, Height: 384},
}
