// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pde

import (
	"fmt"
	"slices"
	"strings"
)

// System is the physical system being solved, which determines
// the names and order of the conserved variables in a solution.
type System int32

const (
	// Euler is the compressible Euler equations.
	Euler System = iota

	// NavierStokes is the compressible Navier-Stokes equations.
	NavierStokes

	// ACEuler is the artificial compressibility form of the
	// incompressible Euler equations.
	ACEuler

	// ACNavierStokes is the artificial compressibility form of the
	// incompressible Navier-Stokes equations.
	ACNavierStokes
)

var systemNames = [...]string{"Euler", "NavierStokes", "ACEuler", "ACNavierStokes"}

// conservedVars has the variable names for each system, by number of
// spatial dimensions. The two forms of each family share names.
var conservedVars = map[System]map[int][]string{
	Euler: {
		2: {"rho", "rhou", "rhov", "E"},
		3: {"rho", "rhou", "rhov", "rhow", "E"},
	},
	ACEuler: {
		2: {"p", "u", "v"},
		3: {"p", "u", "v", "w"},
	},
}

func init() {
	conservedVars[NavierStokes] = conservedVars[Euler]
	conservedVars[ACNavierStokes] = conservedVars[ACEuler]
}

// VarNames returns the names of the solution variables of the system
// for the given number of spatial dimensions, in solution order.
// The returned slice is a copy.
func (sy System) VarNames(ndims int) ([]string, error) {
	byDim, ok := conservedVars[sy]
	if !ok {
		return nil, fmt.Errorf("pde: unknown system %v", sy)
	}
	vars, ok := byDim[ndims]
	if !ok {
		return nil, fmt.Errorf("pde: system %v does not support %d dimensions", sy, ndims)
	}
	return slices.Clone(vars), nil
}

// NumVars returns the number of solution variables, or 0 if the
// system does not support the given number of dimensions.
func (sy System) NumVars(ndims int) int {
	return len(conservedVars[sy][ndims])
}

// String returns the name of the system.
func (sy System) String() string {
	if sy >= 0 && int(sy) < len(systemNames) {
		return systemNames[sy]
	}
	return fmt.Sprintf("System(%d)", int32(sy))
}

// SetString sets the system from its name, case insensitive.
// Dashes and underscores are ignored, so "navier-stokes" also works.
func (sy *System) SetString(s string) error {
	norm := strings.NewReplacer("-", "", "_", "").Replace(s)
	for i, nm := range systemNames {
		if strings.EqualFold(nm, norm) {
			*sy = System(i)
			return nil
		}
	}
	return fmt.Errorf("pde.System: %q is not a valid value", s)
}

// MarshalText implements [encoding.TextMarshaler].
func (sy System) MarshalText() ([]byte, error) { return []byte(sy.String()), nil }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (sy *System) UnmarshalText(text []byte) error { return sy.SetString(string(text)) }
