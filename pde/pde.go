// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pde defines the view of a time integrator that monitoring
// plugins work with, the catalog of solution variables for each
// physical [System], and the registry through which an integrator
// calls its plugins after every accepted step.
package pde

import (
	"cogentcore.org/residual/base/mpi"
	"cogentcore.org/residual/tensor"
)

// Integrator is the state of a time integration that plugins can read.
// Solution blocks are owned by the integrator and change in place on
// every step; plugins that retain values must copy them.
type Integrator interface {
	// NAcceptedSteps returns the number of accepted steps so far.
	NAcceptedSteps() int

	// Time returns the current simulation time.
	Time() float64

	// Solution returns the solution field blocks local to this rank.
	Solution() []tensor.Tensor

	// Comm returns the communicator of the rank running this integrator.
	Comm() *mpi.Comm
}
