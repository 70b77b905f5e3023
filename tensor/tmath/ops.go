// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tmath

import (
	"fmt"

	"cogentcore.org/residual/tensor"
)

// Add adds two tensors into output.
func Add(a, b, out tensor.Tensor) error {
	return binary("Add", a, b, out, func(x, y float64) float64 { return x + y })
}

// Sub subtracts two tensors into output.
func Sub(a, b, out tensor.Tensor) error {
	return binary("Sub", a, b, out, func(x, y float64) float64 { return x - y })
}

// Mul multiplies two tensors into output.
func Mul(a, b, out tensor.Tensor) error {
	return binary("Mul", a, b, out, func(x, y float64) float64 { return x * y })
}

// Div divides two tensors into output.
func Div(a, b, out tensor.Tensor) error {
	return binary("Div", a, b, out, func(x, y float64) float64 { return x / y })
}

// binary applies fun elementwise to a and b into out. The shapes of a and b
// must be equal, or b must have a single value, which is then applied to
// every value of a. out is set to the shape of a.
func binary(name string, a, b, out tensor.Tensor, fun func(x, y float64) float64) error {
	n := a.Len()
	scalar := b.Len() == 1
	if !scalar && !a.Shape().IsEqual(b.Shape()) {
		return fmt.Errorf("tmath.%s: shapes do not match: %v != %v", name, a.Shape(), b.Shape())
	}
	// read b first, in case out is b
	bv := 0.0
	if scalar {
		bv = b.Float1D(0)
	}
	tensor.SetShapeFrom(out, a)
	for i := range n {
		y := bv
		if !scalar {
			y = b.Float1D(i)
		}
		out.SetFloat1D(fun(a.Float1D(i), y), i)
	}
	return nil
}
