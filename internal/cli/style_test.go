// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStyle(t *testing.T) {
	path := writeFile(t, "style.toml", `
width = 8.0
logy = true
colors = ["#1f77b4", "#ff7f0e"]
`)
	s, err := LoadStyle(path)
	require.NoError(t, err)
	assert.Equal(t, 8.0, s.Width)
	assert.Equal(t, 4.8, s.Height, "unset fields keep their defaults")
	assert.True(t, s.LogY)
	assert.Len(t, s.Colors, 2)

	assert.Len(t, s.AxesOptions(), 2)
}

func TestLoadStyleRejectsBadSize(t *testing.T) {
	path := writeFile(t, "style.toml", `width = -1.0`)
	_, err := LoadStyle(path)
	assert.Error(t, err)
}

func TestHistOptionsCyclesColors(t *testing.T) {
	s := DefaultStyle()
	s.Colors = []string{"#ff0000", "#00ff00"}
	opts, err := s.HistOptions(5)
	require.NoError(t, err)
	assert.Len(t, opts, 2, "line width and color cycle")
}

func TestHistOptionsRejectsBadHex(t *testing.T) {
	s := DefaultStyle()
	s.Colors = []string{"not-a-color"}
	_, err := s.HistOptions(1)
	assert.Error(t, err)
}
