// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package randx provides seeded random number sources and
// distributions for reproducible initial conditions.
package randx

import "math/rand/v2"

// Rand provides an interface with the subset of the standard
// rand.Rand methods used here, to support the use of either a
// seeded [SysRand] or another source in tests.
type Rand interface {
	// Float64 returns, as a float64, a pseudo-random number in the half-open interval [0.0,1.0).
	Float64() float64

	// NormFloat64 returns a normally distributed float64 with
	// standard normal distribution (mean = 0, stddev = 1).
	NormFloat64() float64

	// IntN returns, as an int, a non-negative pseudo-random number in the half-open interval [0,n).
	// It panics if n <= 0.
	IntN(n int) int
}

// SysRand is a [Rand] using a PCG source with a fixed seed, so that
// the same seed always produces the same sequence on every platform.
type SysRand struct {
	*rand.Rand
}

// NewSysRand returns a new [SysRand] with the given seed.
func NewSysRand(seed uint64) *SysRand {
	return &SysRand{Rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// UniformMeanRange returns uniform number with given range,
// centered around the given mean.
func UniformMeanRange(mean, rnge float64, rnd Rand) float64 {
	return mean + rnge*2.0*(rnd.Float64()-0.5)
}

// GaussianGen returns a gaussian (normally distributed) number with
// given mean and standard deviation.
func GaussianGen(mean, sigma float64, rnd Rand) float64 {
	return mean + sigma*rnd.NormFloat64()
}
