// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"image"
	"image/draw"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// drawText writes black lines of text on a white dst.
func drawText(dst draw.Image, text string) {
	draw.Draw(dst, dst.Bounds(), &image.Uniform{image1bit.On}, image.Point{}, draw.Src)

	f := basicfont.Face7x13
	drawer := font.Drawer{
		Dst:  dst,
		Src:  &image.Uniform{image1bit.Off},
		Face: f,
	}
	lineHeight := f.Metrics().Height
	y := fixed.I(dst.Bounds().Min.Y) + f.Metrics().Ascent
	for _, line := range strings.Split(text, "\n") {
		drawer.Dot = fixed.Point26_6{X: fixed.I(dst.Bounds().Min.X + 2), Y: y}
		drawer.DrawString(line)
		y += lineHeight
	}
}

// demoImage draws a test scene of the panel size.
func demoImage(bounds image.Rectangle, text string) (image.Image, error) {
	w := bounds.Dx()
	h := bounds.Dy()
	dc := gg.NewContext(w, h)

	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)

	ft, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(ft, &truetype.Options{
		Size: float64(max(w, h)) / 20,
	})
	dc.SetFontFace(face)

	tw, th := dc.MeasureString(text)
	padding := 8.0
	dc.DrawRoundedRectangle(padding, padding, tw+padding*2, th+padding*2, 10)
	dc.Stroke()
	dc.DrawString(text, padding*2, padding*1.5+th)

	for i := 0; i < 10; i++ {
		dc.DrawCircle(float64(20+(12*i)), float64(h)/2, 5)
	}
	for i := 0; i < 10; i++ {
		dc.DrawRectangle(float64(20+(12*i)), float64(h)/2+20, 6, 6)
	}
	dc.Fill()

	return dc.Image(), nil
}
