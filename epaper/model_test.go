// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epaper

import (
	"bytes"
	"context"
	"errors"
	"image"
	"log/slog"
	"strings"
	"testing"
)

func TestParseModel(t *testing.T) {
	for _, tc := range []struct {
		in      string
		want    Model
		wantErr bool
	}{
		{in: "epd2in9", want: EPD2in9},
		{in: "EPD4in2", want: EPD4in2},
		{in: " 1in54 ", want: EPD1in54},
		{in: "7in5b", want: EPD7in5b},
		{in: "", wantErr: true},
		{in: "epd3in7", wantErr: true},
	} {
		got, err := ParseModel(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrUnsupportedModel) {
				t.Errorf("ParseModel(%q) = %v, want ErrUnsupportedModel", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseModel(%q) = %s, %v; want %s", tc.in, got, err, tc.want)
		}
	}
}

func TestModels(t *testing.T) {
	ms := Models()
	if len(ms) != 13 {
		t.Fatalf("len(Models()) = %d, want 13", len(ms))
	}
	for _, m := range ms {
		p := Lookup(m)
		if p.Model != m {
			t.Errorf("Lookup(%s).Model = %s", m, p.Model)
		}
		if p.Width <= 0 || p.Width%8 != 0 || p.Height <= 0 {
			t.Errorf("Lookup(%s) = %dx%d", m, p.Width, p.Height)
		}
		back, err := ParseModel(m.String())
		if err != nil || back != m {
			t.Errorf("ParseModel(%q) = %s, %v", m, back, err)
		}
	}
	if s := Model(99).String(); s != "Model(99)" {
		t.Errorf("String() = %q", s)
	}
}

func TestProfileLUTs(t *testing.T) {
	for _, m := range []Model{EPD1in54, EPD2in9} {
		p := Lookup(m)
		if len(p.FullUpdate) != 30 || len(p.PartialUpdate) != 30 {
			t.Errorf("%s LUT sizes %d, %d", m, len(p.FullUpdate), len(p.PartialUpdate))
		}
	}
	if n := Lookup(EPD4in2).BufferLen(); n != 15000 {
		t.Errorf("BufferLen() = %d, want 15000", n)
	}
	if r := Lookup(EPD2in9).Bounds(); r != image.Rect(0, 0, 128, 296) {
		t.Errorf("Bounds() = %v", r)
	}

	p := Lookup(EPD4in2)
	if len(p.VCOM) != 44 {
		t.Errorf("VCOM LUT size %d", len(p.VCOM))
	}
	for _, l := range []LUT{p.WW, p.BW, p.WB, p.BB} {
		if len(l) != 42 {
			t.Errorf("LUT size %d, want 42", len(l))
		}
	}
}

func TestLogger(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	drv := newTestDriver(EPD2in9, nil, &testOpts)
	drv.DisplayFrame(context.Background())

	if !strings.Contains(buf.String(), "device not created") {
		t.Errorf("log = %q", buf.String())
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Errorf("default logger is enabled")
	}
}
