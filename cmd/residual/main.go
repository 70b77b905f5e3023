// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command residual runs a relaxation integrator on a set of in-process
// ranks and writes a residual report of how fast the solution changes.
package main

import (
	"context"
	"os"
	"os/signal"

	"cogentcore.org/residual/base/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		errors.Log(err)
		stop()
		os.Exit(1)
	}
}
