// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpi

import (
	"fmt"
	"slices"
	"sync"
)

type collKind int

const (
	collBarrier collKind = iota
	collReduce
	collAllReduce
)

// world is the shared rendezvous for the ranks of [NewWorld].
// Each collective is a round: ranks deposit their contribution,
// and the last to arrive combines them in rank order and wakes
// the others.
type world struct {
	mu   sync.Mutex
	cond *sync.Cond
	size int

	gen     uint64
	arrived int
	kind    collKind
	op      Op
	contrib [][]float64
	bad     bool

	result []float64
	err    error

	aborted bool
}

func newWorld(size int) *world {
	w := &world{size: size}
	w.cond = sync.NewCond(&w.mu)
	return w
}

func (w *world) abort() {
	w.mu.Lock()
	w.aborted = true
	w.mu.Unlock()
	w.cond.Broadcast()
}

// collect takes part in one collective round and returns the
// combined values, which must not be modified by the caller.
func (w *world) collect(rank int, kind collKind, op Op, vals []float64) ([]float64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.aborted {
		return nil, ErrAborted
	}
	if w.arrived == 0 {
		w.kind = kind
		w.op = op
		w.bad = false
		w.contrib = make([][]float64, w.size)
	} else if w.kind != kind || w.op != op {
		w.bad = true
	}
	w.contrib[rank] = slices.Clone(vals)
	w.arrived++
	gen := w.gen
	if w.arrived == w.size {
		w.result, w.err = w.combine()
		w.arrived = 0
		w.contrib = nil
		w.gen++
		w.cond.Broadcast()
		return w.result, w.err
	}
	for gen == w.gen && !w.aborted {
		w.cond.Wait()
	}
	if gen == w.gen {
		return nil, ErrAborted
	}
	return w.result, w.err
}

// combine reduces the contributions of the current round in rank order,
// so that floating point results are the same on every run.
func (w *world) combine() ([]float64, error) {
	if w.bad {
		return nil, fmt.Errorf("mixed collective calls in one round: %w", ErrMismatch)
	}
	if w.kind == collBarrier {
		return nil, nil
	}
	n := len(w.contrib[0])
	res := slices.Clone(w.contrib[0])
	for r := 1; r < w.size; r++ {
		c := w.contrib[r]
		if len(c) != n {
			return nil, fmt.Errorf("rank %d has %d values, rank 0 has %d: %w", r, len(c), n, ErrMismatch)
		}
		for i, v := range c {
			res[i] = w.op.apply(res[i], v)
		}
	}
	return res, nil
}
