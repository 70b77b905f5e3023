// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"cogentcore.org/residual/base/reflectx"
	"cogentcore.org/residual/cli"
	"cogentcore.org/residual/logx"
	"cogentcore.org/residual/pde/relax"
	"cogentcore.org/residual/residual"
)

// EnvPrefix is prepended to the names of all environment variables.
const EnvPrefix = "RESIDUAL_"

// Config is the configuration of a run.
type Config struct {

	// Ranks is the number of ranks, each running as a goroutine.
	Ranks int `default:"2" env:"RANKS"`

	// LogLevel is the minimum level of log messages shown.
	LogLevel string `default:"info" env:"LOG_LEVEL"`

	// Report has the residual report options.
	Report residual.Config `envPrefix:"REPORT_"`

	// Relax has the integrator options.
	Relax relax.Config `envPrefix:"RELAX_"`
}

// Defaults sets the default values from the `default:` field tags.
func (cfg *Config) Defaults() {
	if err := reflectx.SetFromDefaultTags(cfg); err != nil {
		panic(err) // tags are static
	}
}

// Load overlays the given config file (if non-empty) and then the
// environment onto the current values.
func (cfg *Config) Load(file string, environ map[string]string) error {
	if file != "" {
		if err := cli.Open(cfg, file); err != nil {
			return err
		}
	}
	if environ != nil {
		return cli.ParseEnvFrom(cfg, EnvPrefix, environ)
	}
	return cli.ParseEnv(cfg, EnvPrefix)
}

// Validate returns an error if the config cannot be used.
func (cfg *Config) Validate() error {
	if cfg.Ranks <= 0 {
		return fmt.Errorf("Ranks must be positive, got %d", cfg.Ranks)
	}
	if _, err := logx.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	if err := cfg.Report.Validate(); err != nil {
		return err
	}
	return cfg.Relax.Validate()
}
