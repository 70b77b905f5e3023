// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensor

import (
	"fmt"
	"reflect"
	"strings"
)

// Base is the base Tensor implementation for given type.
type Base[T any] struct {

	// shape contains the N-dimensional shape and indexing functionality.
	shape Shape

	// Values is a flat 1D slice of the underlying data.
	Values []T
}

// Shape returns a pointer to the shape that fully parametrizes the tensor shape.
func (tsr *Base[T]) Shape() *Shape { return &tsr.shape }

// Len returns the number of elements in the tensor (product of shape dimensions).
func (tsr *Base[T]) Len() int { return tsr.shape.Len() }

// NumDims returns the total number of dimensions.
func (tsr *Base[T]) NumDims() int { return tsr.shape.NumDims() }

// DimSize returns size of given dimension.
func (tsr *Base[T]) DimSize(dim int) int { return tsr.shape.DimSize(dim) }

// DataType returns the type of the data elements in the tensor.
func (tsr *Base[T]) DataType() reflect.Kind {
	var v T
	return reflect.TypeOf(v).Kind()
}

func (tsr *Base[T]) Value(i ...int) T    { return tsr.Values[tsr.shape.IndexTo1D(i...)] }
func (tsr *Base[T]) Value1D(i int) T     { return tsr.Values[i] }
func (tsr *Base[T]) Set(val T, i ...int) { tsr.Values[tsr.shape.IndexTo1D(i...)] = val }
func (tsr *Base[T]) Set1D(val T, i int)  { tsr.Values[i] = val }

// SetShapeSizes sets the dimension sizes of the tensor, and resizes
// backing storage appropriately, retaining all existing data that fits.
func (tsr *Base[T]) SetShapeSizes(sizes ...int) {
	tsr.shape.SetShapeSizes(sizes...)
	nln := tsr.Len()
	if cap(tsr.Values) >= nln {
		tsr.Values = tsr.Values[:nln]
		return
	}
	nv := make([]T, nln)
	copy(nv, tsr.Values)
	tsr.Values = nv
}

// sprint returns a string representation of the tensor values,
// with the shape followed by one line per outermost index.
func (tsr *Base[T]) sprint() string {
	var b strings.Builder
	b.WriteString(tsr.shape.String())
	n := tsr.Len()
	if n == 0 {
		return b.String()
	}
	rows := 1
	if tsr.NumDims() > 1 {
		rows = tsr.DimSize(0)
	}
	cells := n / rows
	for r := range rows {
		b.WriteString("\n")
		for c := range cells {
			if c > 0 {
				b.WriteString(" ")
			}
			fmt.Fprintf(&b, "%v", tsr.Values[r*cells+c])
		}
	}
	return b.String()
}
