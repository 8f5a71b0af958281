// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epaper_test

import (
	"context"
	"image"
	"image/draw"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/GermanBionicSystems/epaper/epaper"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use spireg SPI bus registry to find the first available SPI bus.
	b, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	dev, err := epaper.NewHat(b, &epaper.Opts{Model: epaper.EPD2in9})
	if err != nil {
		log.Fatalf("Failed to initialize driver: %v", err)
	}

	ctx := context.Background()
	if _, err := dev.Init(ctx); err != nil {
		log.Fatalf("Failed to initialize display: %v", err)
	}

	// Draw on it. Black text on a white background.
	img := dev.Buffer()
	draw.Draw(img, img.Bounds(), &image.Uniform{image1bit.On}, image.Point{}, draw.Src)
	f := basicfont.Face7x13
	drawer := font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.Off},
		Face: f,
		Dot:  fixed.P(0, img.Bounds().Dy()-1-f.Descent),
	}
	drawer.DrawString("Hello from periph!")

	if _, err := dev.SetFrame(ctx); err != nil {
		log.Fatal(err)
	}
	if _, err := dev.Display(ctx); err != nil {
		log.Fatal(err)
	}
	if _, err := dev.Sleep(ctx); err != nil {
		log.Fatal(err)
	}
}
