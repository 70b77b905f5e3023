// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensor

// NewFloat64Scalar is a convenience method for a Tensor
// representation of a single float64 scalar value.
func NewFloat64Scalar(val float64) *Float64 {
	return NewNumberFromValues(val)
}

// NewFloat64FromValues returns a new 1-dimensional tensor of given value type
// initialized directly from the given slice values, which are not copied.
// The resulting Tensor thus "wraps" the given values.
func NewFloat64FromValues(vals ...float64) *Float64 {
	return NewNumberFromValues(vals...)
}

// NewFloat64Rows returns a new 2D [Float64] tensor with one outer row
// per given slice, copying the values. All rows must have the same length.
func NewFloat64Rows(rows ...[]float64) *Float64 {
	nr := len(rows)
	nc := 0
	if nr > 0 {
		nc = len(rows[0])
	}
	tsr := NewFloat64(nr, nc)
	for r, row := range rows {
		copy(tsr.Values[r*nc:(r+1)*nc], row)
	}
	return tsr
}

// SetAllFloat64 sets all values of given tensor to given value.
func SetAllFloat64(tsr Tensor, val float64) {
	n := tsr.Len()
	for i := range n {
		tsr.SetFloat1D(val, i)
	}
}
