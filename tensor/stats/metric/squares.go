// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metric computes distance measures between tensors.
package metric

import (
	"fmt"

	"cogentcore.org/residual/tensor"
)

// SumSquares64 computes the sum of squared differences between
// two slices of equal length. NaN values propagate into the result,
// so that a diverged solution shows up as NaN rather than being skipped.
func SumSquares64(a, b []float64) float64 {
	if len(a) != len(b) {
		panic("metric: slice lengths do not match")
	}
	ss := 0.0
	for i, av := range a {
		d := av - b[i]
		ss += d * d
	}
	return ss
}

// SumSquaresAxis computes the sum of squared differences between a and b
// over all dimensions except the given axis, writing one value per index
// along that axis into out, which is set to a 1D shape of that size.
// a and b must have the same shape. NaN values propagate.
func SumSquaresAxis(a, b tensor.Tensor, axis int, out tensor.Tensor) error {
	if err := tensor.ShapeMatch(a, b); err != nil {
		return fmt.Errorf("metric.SumSquaresAxis: %w", err)
	}
	nd := a.NumDims()
	if axis < 0 || axis >= nd {
		return fmt.Errorf("metric.SumSquaresAxis: axis %d out of range for %d dimensions", axis, nd)
	}
	sh := a.Shape()
	nax := sh.DimSize(axis)
	stride := sh.Strides[axis]
	out.SetShapeSizes(nax)
	out.SetZeros()
	n := a.Len()
	for i := range n {
		ai := (i / stride) % nax
		d := a.Float1D(i) - b.Float1D(i)
		out.SetFloat1D(out.Float1D(ai)+d*d, ai)
	}
	return nil
}
