// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epaper

import (
	"fmt"
	"strings"
)

// Model identifies a panel.
type Model uint8

// Known panels.
const (
	EPD1in54 Model = iota
	EPD1in54b
	EPD1in54c
	EPD2in13
	EPD2in13b
	EPD2in7
	EPD2in7b
	EPD2in9
	EPD2in9b
	EPD4in2
	EPD4in2b
	EPD7in5
	EPD7in5b

	modelCount
)

var modelNames = [modelCount]string{
	EPD1in54:  "epd1in54",
	EPD1in54b: "epd1in54b",
	EPD1in54c: "epd1in54c",
	EPD2in13:  "epd2in13",
	EPD2in13b: "epd2in13b",
	EPD2in7:   "epd2in7",
	EPD2in7b:  "epd2in7b",
	EPD2in9:   "epd2in9",
	EPD2in9b:  "epd2in9b",
	EPD4in2:   "epd4in2",
	EPD4in2b:  "epd4in2b",
	EPD7in5:   "epd7in5",
	EPD7in5b:  "epd7in5b",
}

func (m Model) String() string {
	if m < modelCount {
		return modelNames[m]
	}
	return fmt.Sprintf("Model(%d)", uint8(m))
}

// Models returns all known models.
func Models() []Model {
	ms := make([]Model, modelCount)
	for i := range ms {
		ms[i] = Model(i)
	}
	return ms
}

// ParseModel returns the model for a name such as "epd2in9" or "2in9".
func ParseModel(s string) (Model, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(name, "epd") {
		name = "epd" + name
	}
	for m, n := range modelNames {
		if n == name {
			return Model(m), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedModel, s)
}
