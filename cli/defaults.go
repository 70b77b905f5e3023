// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli loads configuration structs in layers: `default:` field tags,
// then a TOML or YAML config file, then environment variables. Command-line
// flags are applied last by the command itself.
package cli

import (
	"cogentcore.org/residual/base/errors"
	"cogentcore.org/residual/base/reflectx"
)

// SetFromDefaults sets the values of the given config object
// from `default:` struct field tag values. Errors are automatically
// logged in addition to being returned.
func SetFromDefaults(cfg any) error {
	return errors.Log(reflectx.SetFromDefaultTags(cfg))
}
