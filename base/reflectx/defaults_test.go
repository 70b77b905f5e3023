// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color int

func (c *color) SetString(s string) error {
	switch s {
	case "red":
		*c = 1
	case "blue":
		*c = 2
	default:
		return fmt.Errorf("unknown color %q", s)
	}
	return nil
}

type inner struct {
	Rate float64 `default:"0.5"`
}

type defaultsObj struct {
	Name   string `default:"run"`
	Steps  int    `default:"10"`
	Header bool   `default:"true"`
	Color  color  `default:"blue"`
	Inner  inner
	Plain  int
}

func TestSetFromDefaultTags(t *testing.T) {
	obj := &defaultsObj{Plain: 3}
	require.NoError(t, SetFromDefaultTags(obj))
	assert.Equal(t, "run", obj.Name)
	assert.Equal(t, 10, obj.Steps)
	assert.Equal(t, true, obj.Header)
	assert.Equal(t, color(2), obj.Color)
	assert.Equal(t, 0.5, obj.Inner.Rate)
	assert.Equal(t, 3, obj.Plain)
}

func TestSetFromDefaultTagsErrors(t *testing.T) {
	assert.Error(t, SetFromDefaultTags(defaultsObj{}))

	type bad struct {
		N int `default:"ten"`
	}
	assert.Error(t, SetFromDefaultTags(&bad{}))

	type badEnum struct {
		C color `default:"green"`
	}
	assert.Error(t, SetFromDefaultTags(&badEnum{}))
}
