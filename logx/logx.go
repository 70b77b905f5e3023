// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx sets up structured logging through [log/slog],
// with a user-controllable level and an optional rank attribute
// for processes that take part in a parallel run.
package logx

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// UserLevel is the verbosity level that the user has selected for
// what logging and printing messages should be shown. Messages at
// levels at or above this level will be shown. It should typically
// be set through the command-line options; its default value is
// [slog.LevelInfo] (or Debug / Warn under the debug / release tags).
var UserLevel = new(slog.LevelVar)

func init() {
	UserLevel.Set(defaultUserLevel)
}

// SetDefault installs a text handler writing to w (stderr if nil)
// as the default slog logger, filtered by [UserLevel].
func SetDefault(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	lg := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: UserLevel}))
	slog.SetDefault(lg)
	return lg
}

// ParseLevel parses a level name (debug, info, warn, error),
// case insensitive.
func ParseLevel(s string) (slog.Level, error) {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return lv, fmt.Errorf("logx: invalid level %q: %w", s, err)
	}
	return lv, nil
}

// ForRank returns the given logger (the default if nil) with a
// rank attribute, so that messages from different ranks of a
// parallel run can be told apart.
func ForRank(lg *slog.Logger, rank int) *slog.Logger {
	if lg == nil {
		lg = slog.Default()
	}
	return lg.With("rank", rank)
}
