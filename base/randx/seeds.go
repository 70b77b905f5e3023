// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randx

// Seeds is a set of random seeds, typically used one per rank
// of a parallel run, so that each rank has an independent but
// reproducible sequence.
type Seeds []uint64

// Init allocates given number of seeds and initializes them to
// sequential numbers base+1..base+n.
func (rs *Seeds) Init(n int, base uint64) {
	*rs = make([]uint64, n)
	for i := range *rs {
		(*rs)[i] = base + uint64(i) + 1
	}
}

// Rand returns a new [SysRand] seeded with the seed at given index.
func (rs Seeds) Rand(idx int) *SysRand {
	return NewSysRand(rs[idx])
}
