// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	lv, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lv)

	lv, err = ParseLevel("Warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lv)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestForRank(t *testing.T) {
	var buf bytes.Buffer
	lg := slog.New(slog.NewTextHandler(&buf, nil))
	ForRank(lg, 3).Info("step")
	assert.Contains(t, buf.String(), "rank=3")
}
