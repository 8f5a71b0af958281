// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package framebuf_test

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/GermanBionicSystems/epaper/framebuf"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

func Example() {
	b := framebuf.New(128, 16)

	// Black text on a white background.
	draw.Draw(b, b.Bounds(), &image.Uniform{image1bit.On}, image.Point{}, draw.Src)
	f := basicfont.Face7x13
	drawer := font.Drawer{
		Dst:  b,
		Src:  &image.Uniform{image1bit.Off},
		Face: f,
		Dot:  fixed.P(0, b.Bounds().Dy()-1-f.Descent),
	}
	drawer.DrawString("periph")

	// Copy an 8x2 black tile to the bottom right corner.
	b.Blit([]byte{0x00, 0x00}, 8, 2, 120, 14)

	fmt.Println(b.Len(), b.PixelAt(0, 0), b.PixelAt(127, 15))
	// Output: 256 true false
}
