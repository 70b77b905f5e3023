// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package relax

import (
	"context"
	"errors"
	"math"
	"testing"

	"cogentcore.org/residual/base/mpi"
	"cogentcore.org/residual/pde"
	"cogentcore.org/residual/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	var cfg Config
	cfg.Defaults()
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := testConfig(t)
	assert.Equal(t, pde.Euler, cfg.System)
	assert.Equal(t, 2, cfg.NDims)
	assert.Equal(t, 0.01, cfg.Dt)
	assert.NoError(t, cfg.Validate())

	bad := cfg
	bad.NDims = 4
	assert.Error(t, bad.Validate())
	bad = cfg
	bad.Dt = 0
	assert.Error(t, bad.Validate())
	bad = cfg
	bad.Blocks = 0
	assert.Error(t, bad.Validate())
}

func TestIntegrator(t *testing.T) {
	cm, err := mpi.NewComm(nil)
	require.NoError(t, err)
	cfg := testConfig(t)
	cfg.System = pde.ACEuler
	cfg.NDims = 3
	cfg.Steps = 200
	in, err := New(cfg, cm)
	require.NoError(t, err)
	assert.Equal(t, []string{"p", "u", "v", "w"}, in.VarNames())

	var _ pde.Integrator = in
	require.Len(t, in.Solution(), cfg.Blocks)
	assert.Equal(t, []int{4, cfg.Points}, in.Solution()[0].Shape().Sizes)

	dev0 := make([][]float64, cfg.Blocks)
	for i, u := range in.Solution() {
		for j := range u.Len() {
			dev0[i] = append(dev0[i], in.target[i].Float1D(j)-u.Float1D(j))
		}
	}

	var steps []int
	require.NoError(t, in.Plugins.Register(pde.PluginDescriptor{Name: "count"}, pde.PluginFunc(func(intg pde.Integrator) error {
		steps = append(steps, intg.NAcceptedSteps())
		return nil
	})))
	require.NoError(t, in.Run(context.Background()))
	assert.Len(t, steps, 200)
	assert.Equal(t, 200, in.NAcceptedSteps())
	assert.InDelta(t, 2.0, in.Time(), 1.0e-12)

	// each deviation from the target decays by 1 - Dt*Rate per step
	decay := math.Pow(1-cfg.Dt*cfg.Rate, float64(cfg.Steps))
	for i, u := range in.Solution() {
		for j := range u.Len() {
			dev := in.target[i].Float1D(j) - u.Float1D(j)
			assert.InDelta(t, decay*dev0[i][j], dev, 1.0e-12)
			assert.Less(t, math.Abs(dev), 1.0e-3)
		}
	}
}

func TestDeterministic(t *testing.T) {
	cms, err := mpi.NewWorld(2)
	require.NoError(t, err)
	cfg := testConfig(t)
	a, err := New(cfg, cms[1])
	require.NoError(t, err)
	b, err := New(cfg, cms[1])
	require.NoError(t, err)
	c, err := New(cfg, cms[0])
	require.NoError(t, err)
	assert.Equal(t, tensor.AsFloat64s(a.Solution()[0]), tensor.AsFloat64s(b.Solution()[0]))
	assert.NotEqual(t, tensor.AsFloat64s(a.Solution()[0]), tensor.AsFloat64s(c.Solution()[0]))
}

func TestRunStops(t *testing.T) {
	cm, err := mpi.NewComm(nil)
	require.NoError(t, err)
	in, err := New(testConfig(t), cm)
	require.NoError(t, err)
	stop := errors.New("stop")
	require.NoError(t, in.Plugins.Register(pde.PluginDescriptor{Name: "stop"}, pde.PluginFunc(func(intg pde.Integrator) error {
		if intg.NAcceptedSteps() == 3 {
			return stop
		}
		return nil
	})))
	assert.ErrorIs(t, in.Run(context.Background()), stop)
	assert.Equal(t, 3, in.NAcceptedSteps())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, in.Run(ctx), context.Canceled)
	assert.False(t, math.IsNaN(in.Time()))
}
