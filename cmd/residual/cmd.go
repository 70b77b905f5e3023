// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding"
	"fmt"
	"io"
	"strings"

	"cogentcore.org/residual/cli"
	"cogentcore.org/residual/logx"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// textValue adapts a text (un)marshaler, such as an enum, to a flag value.
type textValue struct {
	v interface {
		encoding.TextMarshaler
		encoding.TextUnmarshaler
	}
	typ string
}

func (tv textValue) String() string {
	b, _ := tv.v.MarshalText()
	return string(b)
}

func (tv textValue) Set(s string) error { return tv.v.UnmarshalText([]byte(s)) }
func (tv textValue) Type() string       { return tv.typ }

// addFlags binds the flags for all options to the fields of cfg.
func addFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.Ranks, "ranks", cfg.Ranks, "number of ranks")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")

	rc := &cfg.Report
	fs.IntVar(&rc.NSteps, "nsteps", rc.NSteps, "report every nsteps accepted steps")
	fs.StringVar(&rc.File, "file", rc.File, "report file, appended to if it exists")
	fs.BoolVar(&rc.Header, "header", rc.Header, "write the header line to a new report file")
	fs.IntVar(&rc.Precision, "precision", rc.Precision, "significant digits in the report (-1 for shortest)")
	fs.Var(textValue{&rc.Delim, "delim"}, "delim", "report delimiter: Tab, Comma or Space")
	fs.Var(textValue{&rc.Window, "window"}, "window", "report window: Step or Interval")
	fs.IntVar(&rc.VarAxis, "var-axis", rc.VarAxis, "axis of the solution blocks that indexes variables")

	xc := &cfg.Relax
	fs.Var(textValue{&xc.System, "system"}, "system", "system of equations: Euler, NavierStokes, ACEuler or ACNavierStokes")
	fs.IntVar(&xc.NDims, "ndims", xc.NDims, "number of spatial dimensions")
	fs.IntVar(&xc.Blocks, "blocks", xc.Blocks, "solution blocks per rank")
	fs.IntVar(&xc.Points, "points", xc.Points, "points per variable in each block")
	fs.IntVar(&xc.Steps, "steps", xc.Steps, "number of steps to run")
	fs.Float64Var(&xc.Dt, "dt", xc.Dt, "time step")
	fs.Float64Var(&xc.Rate, "rate", xc.Rate, "relaxation rate")
	fs.Uint64Var(&xc.Seed, "seed", xc.Seed, "base random seed")
}

// applyConfig loads the config file and environment into cfg, and then
// re-applies the flags that were set on the command line, which take
// precedence over both.
func applyConfig(fs *pflag.FlagSet, cfg *Config, file string, environ map[string]string) error {
	type setFlag struct{ name, val string }
	var set []setFlag
	fs.Visit(func(f *pflag.Flag) {
		set = append(set, setFlag{f.Name, f.Value.String()})
	})
	if err := cfg.Load(file, environ); err != nil {
		return err
	}
	for _, sf := range set {
		if err := fs.Set(sf.name, sf.val); err != nil {
			return fmt.Errorf("flag --%s: %w", sf.name, err)
		}
	}
	return nil
}

// newRootCmd returns the residual command with its subcommands.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "residual",
		Short:         "Residual reports for distributed time integration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(nil, nil))
	return root
}

// newRunCmd returns the run command. If environ is non-nil it is used
// instead of the process environment, and if out is non-nil the final
// report row is written to it instead of being printed by the root rank.
func newRunCmd(environ map[string]string, out io.Writer) *cobra.Command {
	cfg := &Config{}
	cfg.Defaults()
	var file, save string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the integrator with a residual report attached",
		Long: `Runs the relaxation integrator on --ranks in-process ranks. Every --nsteps
accepted steps the root rank appends a row to the report file with the time
and, for each solution variable, the L2 norm of the change of the solution
over all ranks divided by the elapsed time.

Options are taken from their defaults, then the --config file (TOML, or YAML
for .yaml and .yml), then RESIDUAL_ environment variables, then flags.
--save-config writes the resulting options to a file in the same formats,
which can be passed back with --config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfig(cmd.Flags(), cfg, file, environ); err != nil {
				return err
			}
			lv, err := logx.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			logx.UserLevel.Set(lv)
			logx.SetDefault(cmd.ErrOrStderr())
			if save != "" {
				if err := cli.Save(cfg, save); err != nil {
					return err
				}
			}
			res, err := Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return printResult(out, res)
		},
	}
	cmd.Flags().StringVar(&file, "config", "", "config file (TOML or YAML)")
	cmd.Flags().StringVar(&save, "save-config", "", "write the options in effect to this file (TOML or YAML)")
	addFlags(cmd.Flags(), cfg)
	return cmd
}

// printResult prints the final report row, if any.
func printResult(out io.Writer, res *Result) error {
	if res.Last == nil {
		return nil
	}
	vals := make([]string, len(res.Last))
	for i, v := range res.Last {
		vals[i] = fmt.Sprintf("%s=%g", res.Header[i], v)
	}
	line := fmt.Sprintf("step %d: %s\n", res.Steps, strings.Join(vals, " "))
	if out == nil {
		fmt.Print(line)
		return nil
	}
	_, err := io.WriteString(out, line)
	return err
}
