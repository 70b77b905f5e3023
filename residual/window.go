// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package residual

import (
	"fmt"
	"strings"
)

// Windows select the span of steps over which the change of
// the solution is measured for each report.
type Windows int32

const (
	// WindowStep measures the change over the single step before each
	// report, taking the snapshot one step before the report is due.
	WindowStep Windows = iota

	// WindowInterval measures the change over the whole sampling interval,
	// taking the snapshot at the previous report step (or at construction).
	WindowInterval
)

var windowNames = [...]string{"Step", "Interval"}

// String returns the name of the window.
func (wn Windows) String() string {
	if wn >= 0 && int(wn) < len(windowNames) {
		return windowNames[wn]
	}
	return fmt.Sprintf("Windows(%d)", int32(wn))
}

// SetString sets the window from its name, case insensitive.
func (wn *Windows) SetString(s string) error {
	for i, nm := range windowNames {
		if strings.EqualFold(nm, s) {
			*wn = Windows(i)
			return nil
		}
	}
	return fmt.Errorf("residual.Windows: %q is not a valid value", s)
}

// MarshalText implements [encoding.TextMarshaler].
func (wn Windows) MarshalText() ([]byte, error) { return []byte(wn.String()), nil }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (wn *Windows) UnmarshalText(text []byte) error { return wn.SetString(string(text)) }
