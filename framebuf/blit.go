// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package framebuf

// Blit copies a packed srcWidth x srcHeight bitmap into the buffer with its
// top-left corner at (x, y).
//
// The controllers address RAM horizontally in bytes, so x and srcWidth are
// rounded down to a multiple of 8 before use; up to 7 pixels of offset and
// width are dropped. The target rectangle is clipped to the buffer. Source
// rows are always indexed with the requested srcWidth/8 stride, whatever the
// clipping does to the destination.
//
// An empty source or a negative coordinate or size makes Blit a no-op.
func (b *Buffer) Blit(src []byte, srcWidth, srcHeight, x, y int) {
	b.blit(src, srcWidth, srcHeight, x, y, 0)
}

// BlitShifted is like Blit but keeps the sub-byte part of x: every
// destination row is built by shifting source bytes by x%8 bits. The first
// byte of a row keeps its high 8-x%8 bits and receives the top x%8 bits of
// the first source byte; each following byte i is
// src[i]<<(x%8) | src[i+1]>>(8-x%8).
//
// Source rows are read one byte past the copied width, so they must be padded
// by one byte. Missing bytes read as zero.
func (b *Buffer) BlitShifted(src []byte, srcWidth, srcHeight, x, y int) {
	b.blit(src, srcWidth, srcHeight, x, y, x&7)
}

func (b *Buffer) blit(src []byte, srcWidth, srcHeight, x, y, offset int) {
	if len(src) == 0 || x < 0 || y < 0 || srcWidth < 0 || srcHeight < 0 {
		return
	}

	x &^= 7
	srcWidth &^= 7

	xEnd := min(x+srcWidth, b.w) - 1
	yEnd := min(y+srcHeight, b.h) - 1

	cols := (xEnd - x + 1) / 8
	if cols <= 0 || yEnd < y {
		return
	}

	srcStride := srcWidth / 8
	dstStride := b.Stride()

	for j := 0; j <= yEnd-y; j++ {
		row := j * srcStride
		dst := b.pix[(y+j)*dstStride+x/8 : (y+j)*dstStride+x/8+cols]

		for i := range dst {
			s, ok := at(src, row+i)
			if !ok {
				return
			}

			switch {
			case offset == 0:
				dst[i] = s
			case i == 0:
				dst[i] &= byte(0xFF) << uint(offset)
				dst[i] |= s >> uint(8-offset)
			default:
				next, _ := at(src, row+i+1)
				dst[i] = s<<uint(offset) | next>>uint(8-offset)
			}
		}
	}
}

func at(src []byte, i int) (byte, bool) {
	if i < 0 || i >= len(src) {
		return 0, false
	}
	return src[i], true
}
