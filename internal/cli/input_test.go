// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/8me/mplhep/hist"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadInputSeries(t *testing.T) {
	path := writeFile(t, "in.yaml", `
title: "p_T [GeV]"
edges: [0, 1, 2, 3]
series:
  - label: signal
    values: [1, 2, 3]
    variances: [1, 2, 3]
    overflow: 4
  - label: background
    values: [3, 2, 1]
`)
	in, err := LoadInput(path)
	require.NoError(t, err)
	assert.Equal(t, "p_T [GeV]", in.Title)

	hs, err := in.Hists()
	require.NoError(t, err)
	require.Len(t, hs, 2)

	_, isFlow := hs[0].(hist.FlowHist)
	assert.True(t, isFlow, "overflow content makes a flow-aware source")
	_, isFlow = hs[1].(hist.FlowHist)
	assert.False(t, isFlow)

	assert.Equal(t, []string{"signal", "background"}, in.Labels())
}

func TestLoadInputRejectsEmpty(t *testing.T) {
	path := writeFile(t, "in.yaml", `title: nothing here`)
	_, err := LoadInput(path)
	assert.Error(t, err)
}

func TestLoadInputRejectsSeriesWithoutEdges(t *testing.T) {
	path := writeFile(t, "in.yaml", `
series:
  - values: [1, 2, 3]
`)
	_, err := LoadInput(path)
	assert.Error(t, err)
}

func TestHistsRejectsBadShape(t *testing.T) {
	in := &Input{
		Edges:  []float64{0, 1, 2},
		Series: []SeriesInput{{Values: []float64{1, 2, 3}}},
	}
	_, err := in.Hists()
	assert.Error(t, err)
}

func TestLoadInputGrid(t *testing.T) {
	path := writeFile(t, "in.yaml", `
grid:
  values: [[1, 2], [3, 4]]
  xedges: [0, 1, 2]
  yedges: [0, 1, 2]
`)
	in, err := LoadInput(path)
	require.NoError(t, err)

	h, err := in.Hist2D()
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, h.Values2D())

	assert.Nil(t, in.Labels())
}

func TestLabelsNilWhenUnset(t *testing.T) {
	in := &Input{Series: []SeriesInput{{Values: []float64{1}}, {Values: []float64{2}}}}
	assert.Nil(t, in.Labels())
}
