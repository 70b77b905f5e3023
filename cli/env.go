// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv sets the fields of the config struct that have an `env:` tag
// from the environment, with the given prefix prepended to every variable
// name. Variables that are not set leave their fields unchanged.
func ParseEnv(cfg any, prefix string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: prefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseEnvFrom is like [ParseEnv] but reads the variables from the given
// map instead of the process environment.
func ParseEnvFrom(cfg any, prefix string, environ map[string]string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: prefix, Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
