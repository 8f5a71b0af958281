// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package framebuf implements the packed one bit per pixel frame buffer used
// by e-paper controllers.
//
// Pixels are stored row after row, eight pixels per byte, most significant
// bit first: pixel (x, y) lives at byte y*(width/8)+x/8, bit 7-(x%8). A set
// bit is white (image1bit.On), a cleared bit is black.
//
// The buffer implements draw.Image so anything that renders into an
// image.Image, such as golang.org/x/image/font, can draw straight into it.
package framebuf
