// Copyright (c) 2020, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mpi provides the process group abstraction used by parallel
// runs: each participant has a rank within a communicator, and all
// ranks take part in blocking collective operations such as reductions.
//
// A [Comm] is always passed explicitly; there is no global world state.
// [NewComm] returns a single-process communicator, and [NewWorld]
// returns a set of communicators for ranks that run as goroutines
// within one process.
package mpi

import (
	"errors"
	"fmt"
)

// Op is an aggregation operation: Sum, Min, Max, etc
type Op int32

const (
	OpSum Op = iota
	OpMax
	OpMin
	OpProd
)

const (
	// Root is the rank 0 node -- it is more semantic to use this
	Root int = 0
)

var (
	// ErrAborted is returned from collectives after [Comm.Abort].
	ErrAborted = errors.New("mpi: communicator aborted")

	// ErrMismatch is returned when ranks disagree on the arguments
	// of a collective call, such as vector length or operation.
	ErrMismatch = errors.New("mpi: collective arguments do not match across ranks")
)

// Comm is the communicator -- all communication operates as methods
// on this struct. Collective methods must be called by every rank
// in the same order, or they will block.
type Comm struct {
	rank  int
	size  int
	world *world
}

// NewComm creates a new single-process communicator.
// If ranks is nil, the communicator is for the world, which is
// just this process. Otherwise ranks must contain only rank 0.
func NewComm(ranks []int) (*Comm, error) {
	if len(ranks) > 1 || (len(ranks) == 1 && ranks[0] != 0) {
		return nil, fmt.Errorf("mpi.NewComm: invalid ranks %v for single process", ranks)
	}
	return &Comm{rank: 0, size: 1}, nil
}

// NewWorld returns n communicators that together form one group,
// one per rank, for ranks that run concurrently in this process.
// Each rank must only use its own communicator.
func NewWorld(n int) ([]*Comm, error) {
	if n <= 0 {
		return nil, fmt.Errorf("mpi.NewWorld: number of ranks must be positive, got %d", n)
	}
	w := newWorld(n)
	cms := make([]*Comm, n)
	for i := range cms {
		cms[i] = &Comm{rank: i, size: n, world: w}
	}
	return cms, nil
}

// Rank returns the rank/ID for this proc
func (cm *Comm) Rank() (rank int) {
	return cm.rank
}

// Root returns the rank that receives the results of rooted collectives
// such as [Comm.ReduceF64] when used for aggregated output.
func (cm *Comm) Root() int {
	return Root
}

// Size returns the number of procs in this communicator
func (cm *Comm) Size() (size int) {
	return cm.size
}

// Abort aborts the communicator: all pending and future collectives
// on any rank return [ErrAborted].
func (cm *Comm) Abort() error {
	if cm.world != nil {
		cm.world.abort()
	}
	return nil
}

// Barrier forces synchronisation
func (cm *Comm) Barrier() error {
	if cm.world == nil {
		return nil
	}
	_, err := cm.world.collect(cm.rank, collBarrier, OpSum, nil)
	return err
}

// ReduceF64 reduces the orig values from all ranks using the given
// operation, writing the result into dest on the root rank only.
// On other ranks dest is not used and may be nil.
// This blocks until all ranks have called it.
func (cm *Comm) ReduceF64(root int, op Op, dest, orig []float64) error {
	if root < 0 || root >= cm.size {
		return fmt.Errorf("mpi.ReduceF64: root %d out of range for size %d", root, cm.size)
	}
	res := orig
	if cm.world != nil {
		var err error
		res, err = cm.world.collect(cm.rank, collReduce, op, orig)
		if err != nil {
			return err
		}
	}
	if cm.rank != root {
		return nil
	}
	if len(dest) != len(res) {
		return fmt.Errorf("mpi.ReduceF64: dest length %d != %d: %w", len(dest), len(res), ErrMismatch)
	}
	copy(dest, res)
	return nil
}

// AllReduceF64 reduces the orig values from all ranks using the given
// operation, writing the result into dest on every rank.
func (cm *Comm) AllReduceF64(op Op, dest, orig []float64) error {
	res := orig
	if cm.world != nil {
		var err error
		res, err = cm.world.collect(cm.rank, collAllReduce, op, orig)
		if err != nil {
			return err
		}
	}
	if len(dest) != len(res) {
		return fmt.Errorf("mpi.AllReduceF64: dest length %d != %d: %w", len(dest), len(res), ErrMismatch)
	}
	copy(dest, res)
	return nil
}

// apply combines b into a using the operation.
func (op Op) apply(a, b float64) float64 {
	switch op {
	case OpMax:
		return max(a, b)
	case OpMin:
		return min(a, b)
	case OpProd:
		return a * b
	}
	return a + b
}

// String returns the name of the operation.
func (op Op) String() string {
	switch op {
	case OpSum:
		return "Sum"
	case OpMax:
		return "Max"
	case OpMin:
		return "Min"
	case OpProd:
		return "Prod"
	}
	return fmt.Sprintf("Op(%d)", int32(op))
}
