// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"image"
	"testing"

	"github.com/GermanBionicSystems/epaper/epaper"
	"github.com/GermanBionicSystems/epaper/epaper/epapertest"
	"github.com/GermanBionicSystems/epaper/framebuf"
)

func countBlack(b *framebuf.Buffer) int {
	n := 0
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if !b.PixelAt(x, y) {
				n++
			}
		}
	}
	return n
}

func TestDrawText(t *testing.T) {
	b := framebuf.New(64, 32)
	b.Clear(0x00)

	drawText(b, "Hi\nyo")

	n := countBlack(b)
	if n == 0 || n > 64*32/2 {
		t.Errorf("%d black pixels", n)
	}
	// The second line is below the first one.
	lower := 0
	for y := 16; y < 32; y++ {
		for x := 0; x < 64; x++ {
			if !b.PixelAt(x, y) {
				lower++
			}
		}
	}
	if lower == 0 {
		t.Errorf("second line missing")
	}
}

func TestDemoImage(t *testing.T) {
	r := image.Rect(0, 0, 128, 296)
	img, err := demoImage(r, "demo")
	if err != nil {
		t.Fatalf("demoImage() failed: %v", err)
	}
	if img.Bounds() != r {
		t.Errorf("Bounds() = %v, want %v", img.Bounds(), r)
	}
}

func TestRunSimulated(t *testing.T) {
	ctx := context.Background()
	for _, args := range [][]string{
		{"clear"},
		{"text", "hello", "world"},
		{"demo"},
		{"sleep"},
	} {
		t.Run(args[0], func(t *testing.T) {
			r := &epapertest.Recorder{}
			d := epaper.New(r, &epaper.Opts{Model: epaper.EPD4in2})

			if err := run(ctx, d, args); err != nil {
				t.Fatalf("run(%v) failed: %v", args, err)
			}
			if len(r.Commands) == 0 {
				t.Errorf("nothing sent")
			}
		})
	}

	d := epaper.New(&epapertest.Recorder{}, &epaper.Opts{Model: epaper.EPD4in2})
	if err := run(ctx, d, []string{"paint"}); err == nil {
		t.Errorf("run(paint) succeeded")
	}
}
