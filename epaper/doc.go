// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package epaper drives Waveshare style e-paper panels over SPI.
//
// A Dev owns a packed frame buffer, a Transport and one Driver selected by
// Model. Two controller families are implemented: the SSD16xx family
// (EPD1in54, EPD2in9) with windowed RAM addressing and a single waveform LUT,
// and the UC81xx family (EPD4in2) with fixed resolution frames written as two
// data planes and five waveform LUTs. Every other model resolves to a driver
// that fails with ErrUnsupportedModel.
//
// Operations return a Status next to the error. Skipped means the call was
// ignored on purpose: the transport is missing or not connected, or the
// panel is asleep. Nothing was sent in that case.
//
// Busy waits poll the busy line every 100ms and wait forever unless
// Opts.BusyTimeout is set or the context is cancelled, in which case they fail
// with ErrBusyTimeout.
//
// Datasheets
//
// https://www.waveshare.com/w/upload/e/e6/2.9inch_e-Paper_Datasheet.pdf
//
// https://www.waveshare.com/w/upload/6/6a/4.2inch-e-paper-specification.pdf
package epaper
