// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package residual

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cogentcore.org/residual/base/mpi"
	"cogentcore.org/residual/tensor"
	"cogentcore.org/residual/tensor/table"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testConfig(nsteps int) Config {
	var cfg Config
	cfg.Defaults()
	cfg.NSteps = nsteps
	return cfg
}

func singleComm(t *testing.T) *mpi.Comm {
	t.Helper()
	cm, err := mpi.NewComm(nil)
	require.NoError(t, err)
	return cm
}

func newSink(t *testing.T, vars []string) (*table.CSVLog, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	lg, err := table.NewCSVLog(&buf, table.Comma, append([]string{"t"}, vars...), true)
	require.NoError(t, err)
	return lg, &buf
}

func readRows(t *testing.T, buf *bytes.Buffer) [][]float64 {
	t.Helper()
	_, rows, err := table.ReadCSVLog(strings.NewReader(buf.String()), table.Comma)
	require.NoError(t, err)
	return rows
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.Defaults()
	assert.Equal(t, 10, cfg.NSteps)
	assert.Equal(t, "residual.csv", cfg.File)
	assert.Equal(t, true, cfg.Header)
	assert.Equal(t, -1, cfg.Precision)
	assert.Equal(t, table.Comma, cfg.Delim)
	assert.Equal(t, WindowStep, cfg.Window)
	assert.Equal(t, 0, cfg.VarAxis)
	assert.NoError(t, cfg.Validate())

	cfg.Window = Windows(5)
	assert.Error(t, cfg.Validate())
	cfg.Window = WindowInterval
	cfg.VarAxis = -1
	assert.Error(t, cfg.Validate())
}

func TestIntervalScenario(t *testing.T) {
	cfg := testConfig(2)
	cfg.Window = WindowInterval
	soln := tensor.NewFloat64Rows([]float64{1, 2})
	blocks := []tensor.Tensor{soln}
	sink, buf := newSink(t, []string{"p"})

	rp, err := New(cfg, []string{"p"}, singleComm(t), sink, 0, 0.0, blocks)
	require.NoError(t, err)
	assert.True(t, rp.Armed())

	soln.Values[0], soln.Values[1] = 2, 3
	require.NoError(t, rp.OnStep(1, 0.5, blocks))
	assert.Nil(t, rp.Last())

	soln.Values[0], soln.Values[1] = 3, 4
	require.NoError(t, rp.OnStep(2, 1.0, blocks))
	last := rp.Last()
	require.Len(t, last, 2)
	assert.Equal(t, 1.0, last[0])
	assert.InDelta(t, 2.8284271, last[1], 1.0e-7)
	assert.Equal(t, "t,p\n1.0,2.8284271247461903\n", buf.String())
}

func TestStepScenario(t *testing.T) {
	soln := tensor.NewFloat64Rows([]float64{0, 0})
	blocks := []tensor.Tensor{soln}
	sink, buf := newSink(t, []string{"p"})

	rp, err := New(testConfig(2), []string{"p"}, singleComm(t), sink, 0, 0.0, blocks)
	require.NoError(t, err)
	assert.False(t, rp.Armed())

	soln.Values[0], soln.Values[1] = 1, 2
	require.NoError(t, rp.OnStep(1, 0.5, blocks))
	assert.True(t, rp.Armed())

	soln.Values[0], soln.Values[1] = 3, 4
	require.NoError(t, rp.OnStep(2, 1.0, blocks))
	assert.False(t, rp.Armed())
	rows := readRows(t, buf)
	require.Len(t, rows, 1)
	assert.InDelta(t, math.Sqrt(8)/0.5, rows[0][1], 1.0e-12)
}

// value is the solution value at a step, changing by a different
// amount on every step.
func value(step int) float64 {
	return float64(step*step) + 0.5*float64(step)
}

func TestEmissionAndWindow(t *testing.T) {
	for _, window := range []Windows{WindowStep, WindowInterval} {
		for _, nsteps := range []int{1, 2, 3, 5, 7} {
			t.Run(fmt.Sprintf("%v/%d", window, nsteps), func(t *testing.T) {
				cfg := testConfig(nsteps)
				cfg.Window = window
				soln := tensor.NewFloat64(1, 1)
				blocks := []tensor.Tensor{soln}
				sink, buf := newSink(t, []string{"p"})
				rp, err := New(cfg, []string{"p"}, singleComm(t), sink, 0, 0, blocks)
				require.NoError(t, err)

				const m = 30
				var want []float64
				for step := 1; step <= m; step++ {
					soln.Values[0] = value(step)
					require.NoError(t, rp.OnStep(step, float64(step), blocks))
					if step%nsteps == 0 {
						want = append(want, float64(step))
					}
				}
				rows := readRows(t, buf)
				require.Len(t, rows, len(want))
				for i, row := range rows {
					k := int(row[0])
					assert.Equal(t, want[i], row[0])
					assert.GreaterOrEqual(t, row[1], 0.0)
					span := 1
					if window == WindowInterval {
						span = nsteps
					}
					exp := math.Abs(value(k)-value(k-span)) / float64(span)
					assert.InDelta(t, exp, row[1], 1.0e-9, "step %d", k)
				}
			})
		}
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	soln := tensor.NewFloat64Rows([]float64{1, 1, 1})
	blocks := []tensor.Tensor{soln}
	sink, _ := newSink(t, []string{"p"})
	rp, err := New(testConfig(1), []string{"p"}, singleComm(t), sink, 0, 0, blocks)
	require.NoError(t, err)

	// in-place update by the host after the snapshot
	tensor.SetAllFloat64(soln, 2)
	require.NoError(t, rp.OnStep(1, 1, blocks))
	assert.InDelta(t, math.Sqrt(3), rp.Last()[1], 1.0e-12)

	// a new snapshot was taken at step 1 for step 2
	tensor.SetAllFloat64(soln, 2)
	require.NoError(t, rp.OnStep(2, 2, blocks))
	assert.Equal(t, 0.0, rp.Last()[1])

	last := rp.Last()
	last[1] = 100
	assert.Equal(t, 0.0, rp.Last()[1])
}

func TestVarAxis(t *testing.T) {
	cfg := testConfig(1)
	cfg.VarAxis = 1
	vars := []string{"p", "u", "v"}
	soln := tensor.NewFloat64(2, 3, 4)
	blocks := []tensor.Tensor{soln}
	sink, _ := newSink(t, vars)
	rp, err := New(cfg, vars, singleComm(t), sink, 0, 0, blocks)
	require.NoError(t, err)
	for p := range 2 {
		for v := range 3 {
			for e := range 4 {
				soln.SetFloat(float64(v), p, v, e)
			}
		}
	}
	require.NoError(t, rp.OnStep(1, 2, blocks))
	// 8 values per variable, each changed by v
	assert.InDeltaSlice(t, []float64{2, 0, math.Sqrt(8) / 2, 2 * math.Sqrt(8) / 2}, rp.Last(), 1.0e-12)
}

func TestMultiRank(t *testing.T) {
	const nranks = 3
	vars := []string{"rho", "E"}
	cms, err := mpi.NewWorld(nranks)
	require.NoError(t, err)
	sink, buf := newSink(t, vars)

	setState := func(blocks []tensor.Tensor, rank, step int) {
		for b, blk := range blocks {
			for v := range 2 {
				for e := range 3 {
					blk.SetFloat(float64((rank+1)*(b+1)*(v+1)*step), v, e)
				}
			}
		}
	}

	reporters := make([]*Reporter, nranks)
	var eg errgroup.Group
	for _, cm := range cms {
		eg.Go(func() error {
			r := cm.Rank()
			blocks := []tensor.Tensor{tensor.NewFloat64(2, 3), tensor.NewFloat64(2, 3)}
			var sk Sink
			if r == cm.Root() {
				sk = sink
			}
			rp, err := New(testConfig(2), vars, cm, sk, 0, 0, blocks)
			if err != nil {
				return err
			}
			reporters[r] = rp
			for step := 1; step <= 4; step++ {
				setState(blocks, r, step)
				if err := rp.OnStep(step, 0.25*float64(step), blocks); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	// per rank per variable: 3 elements * ((r+1)(b+1)(v+1))^2 summed over 2 blocks
	// = 15 (r+1)^2 (v+1)^2, summed over ranks = 210 (v+1)^2
	base := math.Sqrt(210) / 0.25
	rows := readRows(t, buf)
	require.Len(t, rows, 2)
	assert.InDeltaSlice(t, []float64{0.5, base, 2 * base}, rows[0], 1.0e-9)
	assert.InDeltaSlice(t, []float64{1, base, 2 * base}, rows[1], 1.0e-9)
	assert.Nil(t, reporters[1].Last())
	assert.Nil(t, reporters[2].Last())
}

// run reports a fixed sequence of states and returns the report.
func run(t *testing.T) string {
	vars := []string{"p", "u"}
	soln := tensor.NewFloat64(2, 5)
	blocks := []tensor.Tensor{soln}
	sink, buf := newSink(t, vars)
	rp, err := New(testConfig(3), vars, singleComm(t), sink, 0, 0, blocks)
	require.NoError(t, err)
	for step := 1; step <= 20; step++ {
		for i := range soln.Len() {
			soln.SetFloat1D(math.Sin(float64(step*i)+0.1)/float64(step), i)
		}
		require.NoError(t, rp.OnStep(step, 0.01*float64(step), blocks))
	}
	return buf.String()
}

func TestIdempotent(t *testing.T) {
	first := run(t)
	assert.Equal(t, "", cmp.Diff(first, run(t)))
	assert.Equal(t, 7, strings.Count(first, "\n")) // header + 6 rows
}

func TestErrors(t *testing.T) {
	cm := singleComm(t)
	vars := []string{"p"}
	sink, _ := newSink(t, vars)
	blocks := func(n int) []tensor.Tensor { return []tensor.Tensor{tensor.NewFloat64(1, n)} }

	_, err := New(testConfig(0), vars, cm, sink, 0, 0, blocks(2))
	assert.ErrorIs(t, err, ErrInterval)
	_, err = New(testConfig(-3), vars, cm, sink, 0, 0, blocks(2))
	assert.ErrorIs(t, err, ErrInterval)
	_, err = New(testConfig(1), vars, cm, nil, 0, 0, blocks(2))
	assert.Error(t, err)
	_, err = New(testConfig(1), nil, cm, sink, 0, 0, blocks(2))
	assert.Error(t, err)

	rp, err := New(testConfig(1), vars, cm, sink, 0, 0, blocks(2))
	require.NoError(t, err)
	assert.ErrorIs(t, rp.OnStep(1, 1, blocks(3)), ErrShape)

	rp, _ = New(testConfig(1), vars, cm, sink, 0, 0, blocks(2))
	assert.ErrorIs(t, rp.OnStep(1, 1, append(blocks(2), blocks(2)...)), ErrShape)

	rp, _ = New(testConfig(1), []string{"p", "u"}, cm, sink, 0, 0, blocks(2))
	assert.ErrorIs(t, rp.OnStep(1, 1, blocks(2)), ErrShape)

	rp, _ = New(testConfig(1), vars, cm, sink, 0, 1, blocks(2))
	assert.ErrorIs(t, rp.OnStep(1, 1, blocks(2)), ErrElapsed)

	rp, _ = New(testConfig(3), vars, cm, sink, 0, 0, blocks(2))
	assert.False(t, rp.Armed())
	assert.ErrorIs(t, rp.OnStep(3, 1, blocks(2)), ErrNoSnapshot)
}

type failSink struct{}

func (failSink) WriteRow(vals ...float64) error { return errors.New("disk full") }
func (failSink) Flush() error                   { return nil }

func TestSinkError(t *testing.T) {
	blocks := []tensor.Tensor{tensor.NewFloat64(1, 2)}
	rp, err := New(testConfig(1), []string{"p"}, singleComm(t), failSink{}, 0, 0, blocks)
	require.NoError(t, err)
	assert.ErrorContains(t, rp.OnStep(1, 1, blocks), "disk full")
}

func TestStepZeroNeverDue(t *testing.T) {
	for _, n := range []int{1, 2, 10} {
		rp := &Reporter{Config: testConfig(n)}
		assert.False(t, rp.IsDue(0))
		assert.True(t, rp.IsDue(n))
		assert.True(t, rp.IsDue(3*n))
	}
	rp := &Reporter{Config: testConfig(4)}
	assert.False(t, rp.IsDue(6))
}

func TestOpenSink(t *testing.T) {
	vars := []string{"p", "u"}
	cfg := testConfig(1)
	cfg.File = filepath.Join(t.TempDir(), "residual.csv")

	cms, err := mpi.NewWorld(2)
	require.NoError(t, err)
	lg, err := OpenSink(cfg, vars, cms[1])
	require.NoError(t, err)
	assert.Nil(t, lg)

	cm := singleComm(t)
	lg, err = OpenSink(cfg, vars, cm)
	require.NoError(t, err)
	blocks := []tensor.Tensor{tensor.NewFloat64(2, 2)}
	rp, err := New(cfg, vars, cm, lg, 0, 0, blocks)
	require.NoError(t, err)
	assert.Equal(t, []string{"t", "p", "u"}, rp.Header())
	tensor.SetAllFloat64(blocks[0], 3)
	require.NoError(t, rp.OnStep(1, 2, blocks))
	require.NoError(t, lg.Close())

	b, err := os.ReadFile(cfg.File)
	require.NoError(t, err)
	s := math.Sqrt(18) / 2
	want := "t,p,u\n2.0," + table.FormatFloat(s, -1) + "," + table.FormatFloat(s, -1) + "\n"
	assert.Equal(t, want, string(b))

	cfg.File = filepath.Join(t.TempDir(), "noheader.csv")
	cfg.Header = false
	lg, err = OpenSink(cfg, vars, cm)
	require.NoError(t, err)
	require.NoError(t, lg.WriteRow(1, 2, 3))
	require.NoError(t, lg.Close())
	b, err = os.ReadFile(cfg.File)
	require.NoError(t, err)
	assert.Equal(t, "1.0,2.0,3.0\n", string(b))
}
