// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"
	"strings"
)

// Delims are standard CSV delimiter options (Tab, Comma, Space)
type Delims int32

const (
	// Tab is the tab rune delimiter, for TSV tab separated values
	Tab Delims = iota

	// Comma is the comma rune delimiter, for CSV comma separated values
	Comma

	// Space is the space rune delimiter, for SSV space separated value
	Space
)

var delimNames = [...]string{"Tab", "Comma", "Space"}

// Rune returns the delimiter rune.
func (dl Delims) Rune() rune {
	switch dl {
	case Tab:
		return '\t'
	case Comma:
		return ','
	case Space:
		return ' '
	}
	return '\t'
}

// String returns the name of the delimiter.
func (dl Delims) String() string {
	if dl >= 0 && int(dl) < len(delimNames) {
		return delimNames[dl]
	}
	return fmt.Sprintf("Delims(%d)", int32(dl))
}

// SetString sets the delimiter from its name, case insensitive.
func (dl *Delims) SetString(s string) error {
	for i, nm := range delimNames {
		if strings.EqualFold(nm, s) {
			*dl = Delims(i)
			return nil
		}
	}
	return fmt.Errorf("table.Delims: %q is not a valid value", s)
}

// MarshalText implements [encoding.TextMarshaler].
func (dl Delims) MarshalText() ([]byte, error) { return []byte(dl.String()), nil }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (dl *Delims) UnmarshalText(text []byte) error { return dl.SetString(string(text)) }
