// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epaper

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/spi/spitest"
)

type testPins struct {
	dc, cs, rst, busy *gpiotest.Pin
}

func newTestPins() *testPins {
	return &testPins{
		dc:   &gpiotest.Pin{N: "dc"},
		cs:   &gpiotest.Pin{N: "cs"},
		rst:  &gpiotest.Pin{N: "rst"},
		busy: &gpiotest.Pin{N: "busy", EdgesChan: make(chan gpio.Level, 1)},
	}
}

func TestSPITransport(t *testing.T) {
	pins := newTestPins()
	tr, err := NewSPITransport(pins.dc, pins.cs, pins.rst, pins.busy, false)
	if err != nil {
		t.Fatalf("NewSPITransport() failed: %v", err)
	}
	defer tr.Halt()

	if tr.Connected() {
		t.Errorf("Connected() before Connect")
	}
	if err := tr.SendCommand(0x12); !errors.Is(err, ErrNotConnected) {
		t.Errorf("SendCommand() = %v, want ErrNotConnected", err)
	}

	record := &spitest.Record{}
	if err := tr.Connect(record); err != nil {
		t.Fatalf("Connect() failed: %v", err)
	}
	if !tr.Connected() {
		t.Errorf("Connected() = false after Connect")
	}

	if err := tr.SendCommand(0x24); err != nil {
		t.Fatalf("SendCommand() failed: %v", err)
	}
	if pins.dc.Read() != gpio.Low {
		t.Errorf("dc = %s after command, want Low", pins.dc.Read())
	}

	if err := tr.SendData([]byte{1, 2, 3}); err != nil {
		t.Fatalf("SendData() failed: %v", err)
	}
	if pins.dc.Read() != gpio.High {
		t.Errorf("dc = %s after data, want High", pins.dc.Read())
	}
	if pins.cs.Read() != gpio.High {
		t.Errorf("cs = %s after transfer, want High", pins.cs.Read())
	}

	want := []conntest.IO{
		{W: []byte{0x24}},
		{W: []byte{1, 2, 3}},
	}
	if diff := cmp.Diff(record.Ops, want, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Ops difference (-got +want):\n%s", diff)
	}

	if err := tr.SetReset(gpio.Low); err != nil {
		t.Fatalf("SetReset() failed: %v", err)
	}
	if pins.rst.Read() != gpio.Low {
		t.Errorf("rst = %s, want Low", pins.rst.Read())
	}
}

func TestSPITransportBusy(t *testing.T) {
	for _, tc := range []struct {
		name      string
		activeLow bool
		edge      gpio.Level
	}{
		{"active high", false, gpio.High},
		{"active low", true, gpio.Low},
	} {
		t.Run(tc.name, func(t *testing.T) {
			pins := newTestPins()
			pins.busy.L = !tc.edge
			tr, err := NewSPITransport(pins.dc, nil, pins.rst, pins.busy, tc.activeLow)
			if err != nil {
				t.Fatalf("NewSPITransport() failed: %v", err)
			}
			defer tr.Halt()

			pins.busy.EdgesChan <- tc.edge

			deadline := time.Now().Add(time.Second)
			for !tr.Busy() {
				if time.Now().After(deadline) {
					t.Fatalf("Busy() never reported the edge")
				}
				time.Sleep(time.Millisecond)
			}
		})
	}
}

func TestNewSPITransportNeedsEdges(t *testing.T) {
	pins := newTestPins()
	pins.busy.EdgesChan = nil

	if _, err := NewSPITransport(pins.dc, pins.cs, pins.rst, pins.busy, false); err == nil {
		t.Errorf("NewSPITransport() succeeded without edge detection")
	}
}

func TestBusyLine(t *testing.T) {
	for _, tc := range []struct {
		activeLow bool
		level     gpio.Level
		want      bool
	}{
		{false, gpio.High, true},
		{false, gpio.Low, false},
		{true, gpio.High, false},
		{true, gpio.Low, true},
	} {
		b := BusyLine{ActiveLow: tc.activeLow}
		b.Edge(tc.level)
		if got := b.Busy(); got != tc.want {
			t.Errorf("ActiveLow %v, Edge(%s): Busy() = %v, want %v", tc.activeLow, tc.level, got, tc.want)
		}
	}
}
