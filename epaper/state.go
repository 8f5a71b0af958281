// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epaper

// State is the panel state tracked by a Driver.
type State uint8

const (
	// Uninitialized is the state after creation and after Reset.
	Uninitialized State = iota
	// Ready means Init completed or the last refresh finished.
	Ready
	// Writing means frame memory was written but not displayed yet.
	Writing
	// Displaying is set while a refresh runs.
	Displaying
	// Busy is set while waiting for the busy line.
	Busy
	// Sleeping means deep sleep was entered. Only Reset and Init are
	// accepted.
	Sleeping
	// Unsupported is the permanent state of the unsupported driver.
	Unsupported
)

var stateNames = [...]string{
	Uninitialized: "Uninitialized",
	Ready:         "Ready",
	Writing:       "Writing",
	Displaying:    "Displaying",
	Busy:          "Busy",
	Sleeping:      "Sleeping",
	Unsupported:   "Unsupported",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "State(?)"
}

// Status tells what an operation did.
type Status uint8

const (
	// Done means the operation was carried out.
	Done Status = iota
	// Skipped means the operation was ignored without sending anything,
	// because the device is not created or not connected, or it is asleep.
	Skipped
	// Failed means the operation returned an error.
	Failed
)

func (s Status) String() string {
	switch s {
	case Done:
		return "Done"
	case Skipped:
		return "Skipped"
	case Failed:
		return "Failed"
	}
	return "Status(?)"
}

// PartialUpdate defines if the display should do a full update or just a
// partial update.
type PartialUpdate bool

const (
	// Full should update the complete display.
	Full PartialUpdate = false
	// Partial should update only partial parts of the display.
	Partial PartialUpdate = true
)

func (p PartialUpdate) String() string {
	if p {
		return "Partial"
	}
	return "Full"
}
