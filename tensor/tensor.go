// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tensor provides n-dimensional numerical arrays, used to hold
// the field blocks of a solution. Per C / Go / Python conventions,
// indexes are Row-Major, ordered from outer to inner left-to-right,
// so the inner-most is right-most.
package tensor

import (
	"fmt"
	"reflect"
)

// Tensor is the interface for n-dimensional tensors.
// It is implemented by the [Number] generic type specialized
// by different concrete types: float64, float32, int, int32, byte.
// For float32 and float64 values, NaN indicates missing values.
type Tensor interface {
	fmt.Stringer

	// Shape returns a pointer to the Shape that fully parametrizes
	// the tensor shape.
	Shape() *Shape

	// SetShapeSizes sets the sizes parameters of the tensor, and resizes
	// backing storage appropriately, retaining all existing data that fits.
	SetShapeSizes(sizes ...int)

	// Len returns the number of elements in the tensor,
	// which is the product of all shape dimensions.
	Len() int

	// NumDims returns the total number of dimensions.
	NumDims() int

	// DimSize returns size of given dimension.
	DimSize(dim int) int

	// DataType returns the type of the data elements in the tensor.
	DataType() reflect.Kind

	// Float returns the value of given n-dimensional index (matching Shape) as a float64.
	Float(i ...int) float64

	// SetFloat sets the value of given n-dimensional index (matching Shape) as a float64.
	SetFloat(val float64, i ...int)

	// Float1D returns the value of given 1-dimensional index (0-Len()-1) as a float64.
	Float1D(i int) float64

	// SetFloat1D sets the value of given 1-dimensional index (0-Len()-1) as a float64.
	SetFloat1D(val float64, i int)

	// SetZeros is a simple convenience function initialize all values to the
	// zero value of the type.
	SetZeros()

	// Clone clones this tensor, creating a duplicate copy of itself with its
	// own separate memory representation of all the values, and returns
	// that as a Tensor (which can be converted into the known type as needed).
	Clone() Tensor

	// CopyFrom copies all values from other tensor into this tensor, with an
	// optimized implementation if the other tensor is of the same type, and
	// otherwise it goes through float64.
	CopyFrom(from Tensor)
}

// SetShapeFrom sets shape of given tensor from a source tensor.
func SetShapeFrom(tsr, from Tensor) {
	tsr.SetShapeSizes(from.Shape().Sizes...)
}

// ShapeMatch returns an error if the two tensors do not have the same shape.
func ShapeMatch(a, b Tensor) error {
	if !a.Shape().IsEqual(b.Shape()) {
		return fmt.Errorf("tensor: shapes do not match: %v != %v", a.Shape(), b.Shape())
	}
	return nil
}

// Clones returns a deep copy of each tensor in the list,
// sharing no memory with the originals.
func Clones(tsrs []Tensor) []Tensor {
	cl := make([]Tensor, len(tsrs))
	for i, t := range tsrs {
		cl[i] = t.Clone()
	}
	return cl
}

// AsFloat64s returns the values of the tensor as a new []float64 slice.
func AsFloat64s(tsr Tensor) []float64 {
	n := tsr.Len()
	vals := make([]float64, n)
	for i := range n {
		vals[i] = tsr.Float1D(i)
	}
	return vals
}
