// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package relax is a synthetic explicit time integrator in which every
// solution value relaxes exponentially towards a fixed steady state:
//
//	u <- u + dt * rate * (target - u)
//
// Each rank owns its own field blocks, so the solution keeps changing at
// a known, decaying rate. It drives monitoring plugins in place of a
// full PDE solver.
package relax

import (
	"context"
	"fmt"
	"log/slog"

	"cogentcore.org/residual/base/errors"
	"cogentcore.org/residual/base/mpi"
	"cogentcore.org/residual/base/randx"
	"cogentcore.org/residual/base/reflectx"
	"cogentcore.org/residual/logx"
	"cogentcore.org/residual/pde"
	"cogentcore.org/residual/tensor"
	"cogentcore.org/residual/tensor/tmath"
)

// Config has the options for the integrator.
type Config struct {

	// System selects the solution variables.
	System pde.System `default:"Euler" env:"SYSTEM"`

	// NDims is the number of spatial dimensions.
	NDims int `default:"2" env:"NDIMS"`

	// Blocks is the number of field blocks on each rank.
	Blocks int `default:"2" env:"BLOCKS"`

	// Points is the number of values per variable in each block.
	Points int `default:"16" env:"POINTS"`

	// Steps is the number of steps to run.
	Steps int `default:"100" env:"STEPS"`

	// Dt is the time step.
	Dt float64 `default:"0.01" env:"DT"`

	// Rate is the relaxation rate; Dt * Rate must be in (0, 2) to converge.
	Rate float64 `default:"5" env:"RATE"`

	// Seed is the base random seed; rank r uses Seed + r + 1.
	Seed uint64 `default:"1" env:"SEED"`
}

// Defaults sets the default values from the `default:` field tags.
func (cfg *Config) Defaults() {
	if err := reflectx.SetFromDefaultTags(cfg); err != nil {
		panic(err) // tags are static
	}
}

// Validate returns an error if the config cannot be used.
func (cfg *Config) Validate() error {
	if cfg.Blocks <= 0 || cfg.Points <= 0 {
		return fmt.Errorf("relax: Blocks and Points must be positive, got %d, %d", cfg.Blocks, cfg.Points)
	}
	if cfg.Steps < 0 {
		return fmt.Errorf("relax: Steps must be >= 0, got %d", cfg.Steps)
	}
	if !(cfg.Dt > 0) {
		return fmt.Errorf("relax: Dt must be positive, got %g", cfg.Dt)
	}
	if cfg.System.NumVars(cfg.NDims) == 0 {
		_, err := cfg.System.VarNames(cfg.NDims)
		return err
	}
	return nil
}

// Integrator is the relaxation integrator for one rank.
// It implements [pde.Integrator].
type Integrator struct {

	// Config has the options.
	Config Config

	// Plugins are run after every accepted step.
	Plugins *pde.Plugins

	comm   *mpi.Comm
	log    *slog.Logger
	soln   []tensor.Tensor
	target []tensor.Tensor
	delta  *tensor.Float64

	tcurr      float64
	nacptsteps int
}

// New returns a new integrator for the rank of the given communicator,
// with initial values scattered randomly around random targets.
func New(cfg Config, comm *mpi.Comm) (*Integrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	in := &Integrator{
		Config:  cfg,
		Plugins: pde.NewPlugins(),
		comm:    comm,
		log:     logx.ForRank(nil, comm.Rank()),
		delta:   tensor.NewFloat64(),
	}
	var seeds randx.Seeds
	seeds.Init(comm.Size(), cfg.Seed)
	rnd := seeds.Rand(comm.Rank())
	nv := cfg.System.NumVars(cfg.NDims)
	for range cfg.Blocks {
		tg := tensor.NewFloat64(nv, cfg.Points)
		u := tensor.NewFloat64(nv, cfg.Points)
		for i := range tg.Len() {
			tv := randx.UniformMeanRange(1, 0.5, rnd)
			tg.Values[i] = tv
			u.Values[i] = randx.GaussianGen(tv, 0.2, rnd)
		}
		in.target = append(in.target, tg)
		in.soln = append(in.soln, u)
	}
	return in, nil
}

// VarNames returns the names of the solution variables.
func (in *Integrator) VarNames() []string {
	return errors.Log1(in.Config.System.VarNames(in.Config.NDims))
}

func (in *Integrator) NAcceptedSteps() int       { return in.nacptsteps }
func (in *Integrator) Time() float64             { return in.tcurr }
func (in *Integrator) Solution() []tensor.Tensor { return in.soln }
func (in *Integrator) Comm() *mpi.Comm           { return in.comm }

// Step advances the solution by one time step, in place.
func (in *Integrator) Step() error {
	k := in.Config.Dt * in.Config.Rate
	for i, u := range in.soln {
		if err := tmath.Sub(in.target[i], u, in.delta); err != nil {
			return err
		}
		for j, d := range in.delta.Values {
			u.SetFloat1D(u.Float1D(j)+k*d, j)
		}
	}
	in.nacptsteps++
	in.tcurr = float64(in.nacptsteps) * in.Config.Dt
	return nil
}

// Run runs the configured number of steps, calling the plugins after
// each one. It stops at the first error or when ctx is done.
func (in *Integrator) Run(ctx context.Context) error {
	for range in.Config.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := in.Step(); err != nil {
			return err
		}
		if err := in.Plugins.Run(in); err != nil {
			return err
		}
	}
	in.log.Debug("relax done", "steps", in.nacptsteps, "t", in.tcurr)
	return nil
}
