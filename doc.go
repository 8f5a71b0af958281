// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package epaper is a container for the Waveshare e-paper panel core.
//
// framebuf holds the packed 1 bit frame, epaper drives the controllers
// through a periph SPI transport and termview previews frames on a terminal.
// The epaper command in cmd/epaper ties them together.
package epaper
