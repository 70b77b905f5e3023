// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package residual

import (
	"fmt"

	"cogentcore.org/residual/base/reflectx"
	"cogentcore.org/residual/tensor/table"
)

// Config has the options for a [Reporter].
type Config struct {

	// NSteps is the sampling interval in accepted steps: a report row
	// is written at every step that is a nonzero multiple of NSteps.
	NSteps int `default:"10" env:"NSTEPS"`

	// File is the report file, appended to if it already exists.
	// Only the root rank opens it.
	File string `default:"residual.csv" env:"FILE"`

	// Header writes the column header line when the file is new.
	Header bool `default:"true" env:"HEADER"`

	// Precision is the number of significant digits in the report;
	// -1 writes the shortest representation that round-trips.
	Precision int `default:"-1" env:"PRECISION"`

	// Delim is the delimiter between values in the report.
	Delim table.Delims `default:"Comma" env:"DELIM"`

	// Window is the span of steps each report measures the change over.
	Window Windows `default:"Step" env:"WINDOW"`

	// VarAxis is the axis of each solution block that indexes
	// the solution variables.
	VarAxis int `default:"0" env:"VAR_AXIS"`
}

// Defaults sets the default values from the `default:` field tags.
func (cfg *Config) Defaults() {
	if err := reflectx.SetFromDefaultTags(cfg); err != nil {
		panic(err) // tags are static
	}
}

// Validate returns an error if the config cannot be used.
func (cfg *Config) Validate() error {
	if cfg.NSteps <= 0 {
		return fmt.Errorf("%w: NSteps = %d", ErrInterval, cfg.NSteps)
	}
	if cfg.Window < WindowStep || cfg.Window > WindowInterval {
		return fmt.Errorf("residual: invalid Window %v", cfg.Window)
	}
	if cfg.VarAxis < 0 {
		return fmt.Errorf("residual: VarAxis must be >= 0, got %d", cfg.VarAxis)
	}
	return nil
}
