// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tomlx

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testObj struct {
	NSteps int
	File   string
}

func TestReadWrite(t *testing.T) {
	var obj testObj
	require.NoError(t, Read(&obj, strings.NewReader("NSteps = 5\nFile = \"r.csv\"\n")))
	assert.Equal(t, testObj{NSteps: 5, File: "r.csv"}, obj)

	fn := filepath.Join(t.TempDir(), "cfg.toml")
	require.NoError(t, Save(&obj, fn))
	var back testObj
	require.NoError(t, Open(&back, fn))
	assert.Equal(t, obj, back)
}

func TestUnknownField(t *testing.T) {
	var obj testObj
	assert.Error(t, Read(&obj, strings.NewReader("NStep = 5\n")))
}
