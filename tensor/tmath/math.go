// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tmath provides basic math operations and functions that
// operate on tensor.Tensor, writing results into an output tensor.
package tmath

import (
	"math"

	"cogentcore.org/residual/tensor"
)

// Sqrt computes the square root of each value of in into out,
// which is set to the same shape as in.
func Sqrt(in, out tensor.Tensor) error {
	tensor.SetShapeFrom(out, in)
	n := in.Len()
	for i := range n {
		out.SetFloat1D(math.Sqrt(in.Float1D(i)), i)
	}
	return nil
}

// Abs computes the absolute value of each value of in into out,
// which is set to the same shape as in.
func Abs(in, out tensor.Tensor) error {
	tensor.SetShapeFrom(out, in)
	n := in.Len()
	for i := range n {
		out.SetFloat1D(math.Abs(in.Float1D(i)), i)
	}
	return nil
}
