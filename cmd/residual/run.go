// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log/slog"

	"cogentcore.org/residual/base/errors"
	"cogentcore.org/residual/base/mpi"
	"cogentcore.org/residual/logx"
	"cogentcore.org/residual/pde"
	"cogentcore.org/residual/pde/relax"
	"cogentcore.org/residual/residual"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of a run, as seen by the root rank.
type Result struct {

	// Header is the report header: t then the variable names.
	Header []string

	// Last is the last report row, or nil if no report was due.
	Last []float64

	// Steps is the number of accepted steps.
	Steps int
}

// Run runs all ranks of the configured world to completion, with a
// residual reporter attached to each. If any rank fails the world is
// aborted, so that the others stop too.
func Run(ctx context.Context, cfg *Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	comms, err := mpi.NewWorld(cfg.Ranks)
	if err != nil {
		return nil, err
	}
	res := &Result{}
	g, ctx := errgroup.WithContext(ctx)
	for _, cm := range comms {
		g.Go(func() error {
			err := runRank(ctx, cfg, cm, res)
			if err != nil {
				cm.Abort()
				return fmt.Errorf("rank %d: %w", cm.Rank(), err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// runRank runs one rank. Only the root rank writes to res.
func runRank(ctx context.Context, cfg *Config, cm *mpi.Comm, res *Result) (err error) {
	log := logx.ForRank(nil, cm.Rank())
	intg, err := relax.New(cfg.Relax, cm)
	if err != nil {
		return err
	}
	vn := intg.VarNames()
	lg, err := residual.OpenSink(cfg.Report, vn, cm)
	if err != nil {
		return err
	}
	var sink residual.Sink
	if lg != nil {
		sink = lg
		defer func() {
			err = errors.Join(err, lg.Close())
		}()
	}
	rp, err := residual.NewForIntegrator(cfg.Report, vn, sink, intg)
	if err != nil {
		return err
	}
	err = intg.Plugins.Register(pde.PluginDescriptor{
		Name:        "residual",
		Description: "writes the rate of change of the solution to " + cfg.Report.File,
	}, rp)
	if err != nil {
		return err
	}
	log.Debug("rank start", "vars", vn, "steps", cfg.Relax.Steps)
	if err := intg.Run(ctx); err != nil {
		return err
	}
	if cm.Rank() == cm.Root() {
		res.Header = rp.Header()
		res.Last = rp.Last()
		res.Steps = intg.NAcceptedSteps()
		slog.Info("run done", "steps", res.Steps, "t", intg.Time())
		cm.Printf("report written to %s\n", cfg.Report.File)
	}
	return nil
}
