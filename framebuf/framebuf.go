// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package framebuf

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Buffer is a packed 1bpp frame buffer. Its size is fixed at creation.
type Buffer struct {
	w, h int
	pix  []byte
}

// New returns a buffer for a width x height panel. The width is rounded up to
// a multiple of 8. All pixels start out cleared.
func New(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	width = (width + 7) &^ 7
	return &Buffer{
		w:   width,
		h:   height,
		pix: make([]byte, width/8*height),
	}
}

// Width returns the width in pixels.
func (b *Buffer) Width() int {
	return b.w
}

// Height returns the height in pixels.
func (b *Buffer) Height() int {
	return b.h
}

// Stride returns the number of bytes per row.
func (b *Buffer) Stride() int {
	return b.w / 8
}

// Len returns the size of the packed buffer, always Width()/8*Height().
func (b *Buffer) Len() int {
	return len(b.pix)
}

// Bytes returns the packed pixels. The slice aliases the buffer.
func (b *Buffer) Bytes() []byte {
	return b.pix
}

// Clear sets every byte to fill.
func (b *Buffer) Clear(fill byte) {
	for i := range b.pix {
		b.pix[i] = fill
	}
}

// Replace copies src into the buffer starting at offset 0 and returns the
// number of bytes copied. When src is shorter than the buffer the remaining
// bytes keep their previous content.
func (b *Buffer) Replace(src []byte) int {
	return copy(b.pix, src)
}

// PixelAt reports whether the bit for (x, y) is set. Coordinates outside the
// buffer report false.
func (b *Buffer) PixelAt(x, y int) bool {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return false
	}
	return b.pix[y*b.Stride()+x/8]&(0x80>>uint(x%8)) != 0
}

// SetPixel sets or clears the bit for (x, y). Coordinates outside the buffer
// are ignored.
func (b *Buffer) SetPixel(x, y int, on bool) {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return
	}
	i := y*b.Stride() + x/8
	mask := byte(0x80) >> uint(x%8)
	if on {
		b.pix[i] |= mask
	} else {
		b.pix[i] &^= mask
	}
}

// ColorModel implements image.Image.
func (b *Buffer) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements image.Image.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.w, b.h)
}

// At implements image.Image.
func (b *Buffer) At(x, y int) color.Color {
	return image1bit.Bit(b.PixelAt(x, y))
}

// BitAt returns the pixel at (x, y) as an image1bit.Bit.
func (b *Buffer) BitAt(x, y int) image1bit.Bit {
	return image1bit.Bit(b.PixelAt(x, y))
}

// Set implements draw.Image.
func (b *Buffer) Set(x, y int, c color.Color) {
	b.SetPixel(x, y, bool(image1bit.BitModel.Convert(c).(image1bit.Bit)))
}

// String returns a short description of the buffer.
func (b *Buffer) String() string {
	return fmt.Sprintf("framebuf.Buffer{%dx%d, %d bytes}", b.w, b.h, len(b.pix))
}

var _ draw.Image = &Buffer{}
