// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epaper

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/draw"
	"testing"

	"github.com/GermanBionicSystems/epaper/epaper/epapertest"
	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/spi/spitest"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

func newTestDev(m Model, t Transport) *Dev {
	opts := testOpts
	opts.Model = m
	d := New(t, &opts)
	switch drv := d.drv.(type) {
	case *ssdDriver:
		drv.sleep = noSleep
	case *ucDriver:
		drv.sleep = noSleep
	}
	return d
}

func TestNew(t *testing.T) {
	for _, tc := range []struct {
		m          Model
		wantBounds image.Rectangle
		wantLen    int
		wantString string
	}{
		{EPD2in9, image.Rect(0, 0, 128, 296), 4736, "epaper.Dev{epd2in9, Uninitialized, epapertest.Recorder}"},
		{EPD1in54, image.Rect(0, 0, 200, 200), 5000, "epaper.Dev{epd1in54, Uninitialized, epapertest.Recorder}"},
		{EPD4in2, image.Rect(0, 0, 400, 300), 15000, "epaper.Dev{epd4in2, Uninitialized, epapertest.Recorder}"},
		{EPD7in5, image.Rect(0, 0, 640, 384), 30720, "epaper.Dev{epd7in5, Unsupported, epapertest.Recorder}"},
	} {
		t.Run(tc.m.String(), func(t *testing.T) {
			d := newTestDev(tc.m, &epapertest.Recorder{})

			if diff := cmp.Diff(d.Bounds(), tc.wantBounds); diff != "" {
				t.Errorf("Bounds() difference (-got +want):\n%s", diff)
			}
			if got := d.Buffer().Len(); got != tc.wantLen {
				t.Errorf("Buffer().Len() = %d, want %d", got, tc.wantLen)
			}
			if !bytes.Equal(d.Buffer().Bytes(), bytes.Repeat([]byte{0xFF}, tc.wantLen)) {
				t.Errorf("buffer is not white")
			}
			if diff := cmp.Diff(d.String(), tc.wantString); diff != "" {
				t.Errorf("String() difference (-got +want):\n%s", diff)
			}
		})
	}
}

func TestDevSetFrameBytes(t *testing.T) {
	ctx := context.Background()
	r := &epapertest.Recorder{}
	d := newTestDev(EPD2in9, r)

	if s, err := d.SetFrameBytes(ctx, []byte{0x00, 0x0F}); s != Done || err != nil {
		t.Fatalf("SetFrameBytes() = %s, %v", s, err)
	}

	want := bytes.Repeat([]byte{0xFF}, 4736)
	want[0], want[1] = 0x00, 0x0F
	got, ok := r.Last(writeRAM)
	if !ok {
		t.Fatalf("no RAM write")
	}
	if !bytes.Equal(got, want) {
		t.Errorf("RAM write starts with % X", got[:4])
	}
	if d.State() != Writing {
		t.Errorf("State() = %s, want %s", d.State(), Writing)
	}
}

func TestDevSetFrameWindow(t *testing.T) {
	ctx := context.Background()

	t.Run("ssd", func(t *testing.T) {
		r := &epapertest.Recorder{}
		d := newTestDev(EPD2in9, r)

		s, err := d.SetFrameWindow(ctx, []byte{0x00}, 8, 1, 0, 0)
		if s != Done || err != nil {
			t.Fatalf("SetFrameWindow() = %s, %v", s, err)
		}
		if got, _ := r.Last(writeRAM); !bytes.Equal(got, []byte{0x00}) {
			t.Errorf("RAM write = % X", got)
		}
		if b := d.Buffer().Bytes(); b[0] != 0x00 || b[1] != 0xFF || b[16] != 0xFF {
			t.Errorf("buffer = % X ...", b[:17])
		}
	})

	t.Run("empty window", func(t *testing.T) {
		r := &epapertest.Recorder{}
		d := newTestDev(EPD2in9, r)

		s, err := d.SetFrameWindow(ctx, []byte{0x00}, 4, 1, 0, 0)
		if s != Done || err != nil {
			t.Fatalf("SetFrameWindow() = %s, %v", s, err)
		}
		if len(r.Commands) != 0 {
			t.Errorf("commands sent: %v", r.Commands)
		}
		if d.State() != Uninitialized {
			t.Errorf("State() = %s, want %s", d.State(), Uninitialized)
		}
	})

	t.Run("uc", func(t *testing.T) {
		r := &epapertest.Recorder{}
		d := newTestDev(EPD4in2, r)

		s, err := d.SetFrameWindow(ctx, []byte{0x00}, 8, 1, 0, 0)
		if s != Failed || !errors.Is(err, ErrNotImplemented) {
			t.Fatalf("SetFrameWindow() = %s, %v; want Failed, ErrNotImplemented", s, err)
		}
		if len(r.Commands) != 0 {
			t.Errorf("commands sent: %v", r.Commands)
		}
		if d.Buffer().Bytes()[0] != 0xFF {
			t.Errorf("buffer modified")
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		d := newTestDev(EPD2in9b, &epapertest.Recorder{})

		s, err := d.SetFrameWindow(ctx, []byte{0x00}, 8, 1, 0, 0)
		if s != Failed || !errors.Is(err, ErrUnsupportedModel) {
			t.Fatalf("SetFrameWindow() = %s, %v; want Failed, ErrUnsupportedModel", s, err)
		}
	})
}

func TestDevSetUpdateMode(t *testing.T) {
	ctx := context.Background()

	d := newTestDev(EPD1in54, &epapertest.Recorder{})
	if s, err := d.SetUpdateMode(ctx, Partial); s != Done || err != nil {
		t.Fatalf("SetUpdateMode() = %s, %v", s, err)
	}
	if d.opts.Mode != Partial {
		t.Errorf("mode = %s, want %s", d.opts.Mode, Partial)
	}

	d = newTestDev(EPD4in2, &epapertest.Recorder{})
	if s, err := d.SetUpdateMode(ctx, Partial); s != Failed || !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("SetUpdateMode() = %s, %v; want Failed, ErrNotImplemented", s, err)
	}
}

func TestDevClear(t *testing.T) {
	r := &epapertest.Recorder{}
	d := newTestDev(EPD4in2, r)

	if s, err := d.Clear(context.Background(), 0x00); s != Done || err != nil {
		t.Fatalf("Clear() = %s, %v", s, err)
	}
	if !bytes.Equal(d.Buffer().Bytes(), make([]byte, 15000)) {
		t.Errorf("buffer not cleared")
	}
	if got, _ := r.Last(dataStartTransmission2); !bytes.Equal(got, make([]byte, 15000)) {
		t.Errorf("new plane not cleared")
	}
}

func TestDevDraw(t *testing.T) {
	r := &epapertest.Recorder{}
	d := newTestDev(EPD1in54, r)

	img := image1bit.NewVerticalLSB(d.Bounds())
	draw.Draw(img, img.Bounds(), &image.Uniform{image1bit.On}, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 0, 16, 1), &image.Uniform{image1bit.Off}, image.Point{}, draw.Src)

	if err := d.Draw(d.Bounds(), img, image.Point{}); err != nil {
		t.Fatalf("Draw() failed: %v", err)
	}

	got, _ := r.Last(writeRAM)
	if len(got) != 5000 || got[0] != 0x00 || got[1] != 0x00 || got[2] != 0xFF {
		t.Errorf("RAM write = % X ...", got[:min(len(got), 4)])
	}
	if _, ok := r.Last(masterActivation); !ok {
		t.Errorf("no refresh")
	}
	if d.State() != Ready {
		t.Errorf("State() = %s, want %s", d.State(), Ready)
	}
}

func TestDevHalt(t *testing.T) {
	r := &epapertest.Recorder{}
	d := newTestDev(EPD2in9, r)
	d.Buffer().Clear(0x00)

	if err := d.Halt(); err != nil {
		t.Fatalf("Halt() failed: %v", err)
	}
	if !bytes.Equal(d.Buffer().Bytes(), bytes.Repeat([]byte{0xFF}, 4736)) {
		t.Errorf("buffer not white")
	}
	if _, ok := r.Last(masterActivation); !ok {
		t.Errorf("no refresh")
	}
}

func TestDevUnsupported(t *testing.T) {
	ctx := context.Background()
	d := newTestDev(EPD7in5b, &epapertest.Recorder{})
	white := bytes.Repeat([]byte{0xFF}, d.Buffer().Len())

	if err := d.Draw(d.Bounds(), image.Black, image.Point{}); !errors.Is(err, ErrUnsupportedModel) {
		t.Errorf("Draw() = %v, want ErrUnsupportedModel", err)
	}
	if s, err := d.Clear(ctx, 0x00); s != Failed || !errors.Is(err, ErrUnsupportedModel) {
		t.Errorf("Clear() = %s, %v; want Failed, ErrUnsupportedModel", s, err)
	}
	if s, err := d.SetFrameWindow(ctx, []byte{0x00, 0x00}, 16, 1, 0, 0); s != Failed || !errors.Is(err, ErrUnsupportedModel) {
		t.Errorf("SetFrameWindow() = %s, %v; want Failed, ErrUnsupportedModel", s, err)
	}
	if !bytes.Equal(d.Buffer().Bytes(), white) {
		t.Errorf("failed calls modified the frame buffer")
	}
	if d.State() != Unsupported {
		t.Errorf("State() = %s, want %s", d.State(), Unsupported)
	}
}

func TestDevClose(t *testing.T) {
	pins := newTestPins()
	d, err := NewSPI(&spitest.Record{}, pins.dc, pins.cs, pins.rst, pins.busy, &Opts{Model: EPD2in9})
	if err != nil {
		t.Fatalf("NewSPI() failed: %v", err)
	}
	tr := d.t.(*SPITransport)

	if err := d.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	select {
	case <-tr.done:
	default:
		t.Errorf("busy watcher still running after Close")
	}
	if err := d.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}

	if err := New(&epapertest.Recorder{}, nil).Close(); err != nil {
		t.Errorf("Close() without owned transport = %v", err)
	}
}
