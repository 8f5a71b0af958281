// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package termview implements a display.Drawer that previews a 1 bit panel
// on the terminal using ANSI color codes.
//
// Useful while the panel sits on another desk, or with the simulated
// transport of the epaper command.
package termview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/GermanBionicSystems/epaper/framebuf"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Opts represents the options available for this display.
type Opts struct {
	// Scale is the side of the square of pixels shown as one cell. Defaults
	// to 1.
	Scale int
	// Palette defaults to ansi256.Default.
	Palette *ansi256.Palette
	// W defaults to a colorable stdout.
	W io.Writer

	_ struct{}
}

// Dev is a panel emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	scale   int
	palette ansi256.Palette

	frame *framebuf.Buffer
	buf   bytes.Buffer
}

// New returns a Dev of width x height pixels. opts may be nil.
func New(width, height int, opts *Opts) *Dev {
	if opts == nil {
		opts = &Opts{}
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	d := &Dev{
		w:       w,
		scale:   max(opts.Scale, 1),
		palette: *p,
		frame:   framebuf.New(width, height),
	}
	d.frame.Clear(0xFF)
	return d
}

func (d *Dev) String() string {
	return fmt.Sprintf("TermView{%dx%d}", d.frame.Width(), d.frame.Height())
}

// Halt implements conn.Resource.
//
// It resets the terminal colors.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m\n"))
	return err
}

// Write replaces the frame with packed MSB first rows and shows it.
func (d *Dev) Write(frame []byte) (int, error) {
	n := d.frame.Replace(frame)
	if err := d.refresh(); err != nil {
		return 0, err
	}
	return n, nil
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.frame.Bounds()
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Src.Draw(d.frame, r, src, sp)
	return d.refresh()
}

// cell reports whether the scale x scale square at (x, y) is white. A single
// black pixel makes the cell black so thin strokes stay visible.
func (d *Dev) cell(x, y int) bool {
	for j := y; j < y+d.scale; j++ {
		for i := x; i < x+d.scale; i++ {
			if i < d.frame.Width() && j < d.frame.Height() && !d.frame.PixelAt(i, j) {
				return false
			}
		}
	}
	return true
}

func (d *Dev) refresh() error {
	d.buf.Reset()
	white := d.palette.Block(color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF})
	black := d.palette.Block(color.NRGBA{A: 0xFF})
	for y := 0; y < d.frame.Height(); y += d.scale {
		_, _ = d.buf.WriteString("\033[0m")
		for x := 0; x < d.frame.Width(); x += d.scale {
			if d.cell(x, y) {
				_, _ = d.buf.WriteString(white)
			} else {
				_, _ = d.buf.WriteString(black)
			}
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

// Render shows a packed frame of width x height pixels on w.
func Render(w io.Writer, frame []byte, width, height, scale int) error {
	d := New(width, height, &Opts{Scale: scale, W: w})
	_, err := d.Write(frame)
	return err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
