// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"cogentcore.org/residual/base/iox/tomlx"
	"cogentcore.org/residual/base/iox/yamlx"
)

// Open reads the config struct from the given config file, overwriting
// only the fields the file sets. The format is chosen by extension:
// .yaml and .yml are YAML, anything else is TOML.
func Open(cfg any, file string) error {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		if err := yamlx.Open(cfg, file); err != nil {
			return fmt.Errorf("cli.Open: %w", err)
		}
	default:
		if err := tomlx.Open(cfg, file); err != nil {
			return fmt.Errorf("cli.Open: %w", err)
		}
	}
	return nil
}

// Save writes the config struct to the given file, in the format
// chosen by extension as for [Open].
func Save(cfg any, file string) error {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		if err := yamlx.Save(cfg, file); err != nil {
			return fmt.Errorf("cli.Save: %w", err)
		}
	default:
		if err := tomlx.Save(cfg, file); err != nil {
			return fmt.Errorf("cli.Save: %w", err)
		}
	}
	return nil
}
