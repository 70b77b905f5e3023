// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package num provides the numeric type constraints used
// by the generic tensor types.
package num

import "golang.org/x/exp/constraints"

// Number is a type constraint for all integer and floating point types.
type Number interface {
	constraints.Integer | constraints.Float
}

// FromBool returns 1 if b is true, else 0.
func FromBool[T Number](b bool) T {
	if b {
		return 1
	}
	return 0
}
