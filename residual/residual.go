// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package residual reports how fast a distributed solution is changing.
//
// A [Reporter] is called once per accepted integration step on every rank.
// Reports are due at every nonzero multiple of the sampling interval.
// When the window of the next report starts (by default one step before
// it is due) the reporter takes a deep copy of the local solution blocks.
// At the due step it computes, for each solution variable,
// the sum over blocks of the squared L2 norm of the change since that copy,
// sums these vectors across all ranks onto the root rank, and the root
// writes the time followed by sqrt(sum) / elapsed time per variable as one
// row of the report, flushing it immediately.
//
// All ranks must call the reporter with the same steps, as the reduction
// blocks until every rank has taken part.
package residual

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"cogentcore.org/residual/base/mpi"
	"cogentcore.org/residual/logx"
	"cogentcore.org/residual/pde"
	"cogentcore.org/residual/tensor"
	"cogentcore.org/residual/tensor/stats/metric"
	"cogentcore.org/residual/tensor/table"
	"cogentcore.org/residual/tensor/tmath"
)

var (
	// ErrInterval is returned for a sampling interval that is not positive.
	ErrInterval = errors.New("residual: sampling interval must be positive")

	// ErrNoSnapshot is returned when a report is due without a snapshot,
	// which happens only if steps were skipped.
	ErrNoSnapshot = errors.New("residual: report due but no snapshot was taken")

	// ErrShape is returned when the solution does not match the snapshot
	// or the number of variables.
	ErrShape = errors.New("residual: solution shape does not match")

	// ErrElapsed is returned when no simulation time has passed since the snapshot.
	ErrElapsed = errors.New("residual: elapsed time since snapshot is not positive")
)

// Group is the process group the reporter reduces over.
// It is satisfied by [mpi.Comm].
type Group interface {
	Rank() int
	Root() int
	ReduceF64(root int, op mpi.Op, dest, orig []float64) error
}

// Sink receives the report rows on the root rank.
// It is satisfied by [table.CSVLog].
type Sink interface {
	WriteRow(vals ...float64) error
	Flush() error
}

// Reporter computes and reports the residual of a solution.
type Reporter struct {

	// Config has the options, fixed at construction.
	Config Config

	// VarNames are the names of the solution variables, in order.
	VarNames []string

	group Group
	sink  Sink
	log   *slog.Logger

	// prev is the snapshot, a deep copy of the solution at tprev.
	prev  []tensor.Tensor
	tprev float64
	armed bool

	local   *tensor.Float64
	reduced *tensor.Float64
	blockSS *tensor.Float64
	last    []float64
}

// New returns a new reporter for the given variables, reducing over the
// given group. The sink is only used on the root rank, where it is required.
// step, t and soln are the integrator's current state: a snapshot of soln
// is taken now if the window of the next report starts here, which for
// [WindowInterval] is always.
func New(cfg Config, varNames []string, group Group, sink Sink, step int, t float64, soln []tensor.Tensor) (*Reporter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(varNames) == 0 {
		return nil, fmt.Errorf("residual: no variable names")
	}
	if group.Rank() == group.Root() && sink == nil {
		return nil, fmt.Errorf("residual: root rank requires a sink")
	}
	nv := len(varNames)
	rp := &Reporter{
		Config:   cfg,
		VarNames: slices.Clone(varNames),
		group:    group,
		sink:     sink,
		log:      logx.ForRank(nil, group.Rank()),
		local:    tensor.NewFloat64(nv),
		reduced:  tensor.NewFloat64(nv),
		blockSS:  tensor.NewFloat64(nv),
	}
	if cfg.Window == WindowInterval {
		rp.snapshot(t, soln)
	} else {
		rp.prepNext(step, t, soln)
	}
	return rp, nil
}

// NewForIntegrator returns a new reporter for the given integrator,
// reducing over its communicator, as for [New].
func NewForIntegrator(cfg Config, varNames []string, sink Sink, intg pde.Integrator) (*Reporter, error) {
	return New(cfg, varNames, intg.Comm(), sink, intg.NAcceptedSteps(), intg.Time(), intg.Solution())
}

// Header returns the column names of the report: t then the variables.
func (rp *Reporter) Header() []string {
	return append([]string{"t"}, rp.VarNames...)
}

// OpenSink opens the report file of the config for appending on the root
// rank of the group, returning nil on other ranks.
func OpenSink(cfg Config, varNames []string, group Group) (*table.CSVLog, error) {
	if group.Rank() != group.Root() {
		return nil, nil
	}
	hdr := append([]string{"t"}, varNames...)
	var lg *table.CSVLog
	var err error
	if cfg.Header {
		lg, err = table.OpenCSVLog(cfg.File, cfg.Delim, hdr)
	} else {
		lg, err = table.OpenCSVLog(cfg.File, cfg.Delim, nil)
	}
	if err != nil {
		return nil, err
	}
	lg.Header = hdr
	lg.Precision = cfg.Precision
	slog.Info("residual report", "file", cfg.File, "nsteps", cfg.NSteps)
	return lg, nil
}

// IsDue returns whether a report is written at the given step.
func (rp *Reporter) IsDue(step int) bool {
	return step != 0 && step%rp.Config.NSteps == 0
}

// Armed returns whether a snapshot is held for the next report.
func (rp *Reporter) Armed() bool { return rp.armed }

// Last returns the last row written on the root rank (time then values),
// or nil if none has been written.
func (rp *Reporter) Last() []float64 { return slices.Clone(rp.last) }

// Call implements [pde.Plugin].
func (rp *Reporter) Call(intg pde.Integrator) error {
	return rp.OnStep(intg.NAcceptedSteps(), intg.Time(), intg.Solution())
}

// OnStep must be called on every rank after each accepted step, with
// the step count, the current time and the local solution blocks.
// Errors are not recoverable: the state of the group is undefined after one.
func (rp *Reporter) OnStep(step int, t float64, soln []tensor.Tensor) error {
	if rp.IsDue(step) {
		if err := rp.report(t, soln); err != nil {
			return err
		}
	}
	rp.prepNext(step, t, soln)
	return nil
}

// prepNext takes a snapshot if the window of the next report starts
// at this step.
func (rp *Reporter) prepNext(step int, t float64, soln []tensor.Tensor) {
	n := rp.Config.NSteps
	switch rp.Config.Window {
	case WindowInterval:
		if step%n == 0 {
			rp.snapshot(t, soln)
		}
	default:
		if (step+1)%n == 0 {
			rp.snapshot(t, soln)
		}
	}
}

// snapshot replaces the snapshot with a deep copy of soln, so that
// later in-place updates of the solution cannot change it.
func (rp *Reporter) snapshot(t float64, soln []tensor.Tensor) {
	rp.prev = tensor.Clones(soln)
	rp.tprev = t
	rp.armed = true
}

func (rp *Reporter) clear() {
	rp.prev = nil
	rp.tprev = 0
	rp.armed = false
}

// localSumSquares sums the squared change of each variable over the blocks.
func (rp *Reporter) localSumSquares(soln []tensor.Tensor) error {
	if len(soln) != len(rp.prev) {
		return fmt.Errorf("%w: %d blocks, snapshot has %d", ErrShape, len(soln), len(rp.prev))
	}
	nv := len(rp.VarNames)
	ax := rp.Config.VarAxis
	rp.local.SetZeros()
	for i, cur := range soln {
		if cur.NumDims() <= ax || cur.DimSize(ax) != nv {
			return fmt.Errorf("%w: block %d shape %v has no axis %d of %d variables", ErrShape, i, cur.Shape(), ax, nv)
		}
		if err := metric.SumSquaresAxis(rp.prev[i], cur, ax, rp.blockSS); err != nil {
			return fmt.Errorf("%w: block %d: %w", ErrShape, i, err)
		}
		if err := tmath.Add(rp.local, rp.blockSS, rp.local); err != nil {
			return err
		}
	}
	return nil
}

func (rp *Reporter) report(t float64, soln []tensor.Tensor) error {
	if !rp.armed {
		return ErrNoSnapshot
	}
	// checked before the reduction: all ranks have the same times
	dt := t - rp.tprev
	if !(dt > 0) {
		return fmt.Errorf("%w: t = %g, snapshot t = %g", ErrElapsed, t, rp.tprev)
	}
	if err := rp.localSumSquares(soln); err != nil {
		return err
	}
	root := rp.group.Root()
	isRoot := rp.group.Rank() == root
	var dest []float64
	if isRoot {
		dest = rp.reduced.Values
	}
	if err := rp.group.ReduceF64(root, mpi.OpSum, dest, rp.local.Values); err != nil {
		return fmt.Errorf("residual: reduce: %w", err)
	}
	if isRoot {
		if err := rp.write(t, dt); err != nil {
			return err
		}
	}
	rp.clear()
	return nil
}

// write normalizes the reduced values and writes them on the root.
func (rp *Reporter) write(t, dt float64) error {
	tmath.Sqrt(rp.reduced, rp.reduced)
	if err := tmath.Div(rp.reduced, tensor.NewFloat64Scalar(dt), rp.reduced); err != nil {
		return err
	}
	row := make([]float64, 0, 1+rp.reduced.Len())
	row = append(row, t)
	row = append(row, rp.reduced.Values...)
	if err := rp.sink.WriteRow(row...); err != nil {
		return fmt.Errorf("residual: write: %w", err)
	}
	if err := rp.sink.Flush(); err != nil {
		return fmt.Errorf("residual: flush: %w", err)
	}
	rp.last = row
	rp.log.Debug("residual", "t", t, "values", rp.reduced.Values)
	return nil
}
