// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// padded3x3 builds a padded 5x5 matrix around a 3x3 interior with the
// given flow border content.
func padded3x3(interior [][]float64, underX, overX, underY, overY float64) [][]float64 {
	p := make([][]float64, 5)
	for i := range p {
		p[i] = make([]float64, 5)
	}
	for ix := 0; ix < 3; ix++ {
		for iy := 0; iy < 3; iy++ {
			p[ix+1][iy+1] = interior[ix][iy]
		}
	}
	for iy := 1; iy < 4; iy++ {
		p[0][iy] = underX
		p[4][iy] = overX
	}
	for ix := 1; ix < 4; ix++ {
		p[ix][0] = underY
		p[ix][4] = overY
	}
	return p
}

func interior3x3() [][]float64 {
	return [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
}

func edges3() []float64 { return []float64{0, 1, 2, 3} }

func TestNormalizeGridPlain(t *testing.T) {
	h := NewH2D(interior3x3(), edges3(), edges3())
	g, err := NormalizeGrid(h, FlowNone, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, g.NBinsX())
	assert.Equal(t, 3, g.NBinsY())
	assert.Equal(t, []float64{0.5, 1.5, 2.5}, g.XCenters())
}

func TestGridFlowHintTrimsZeroSides(t *testing.T) {
	// flow content only above in x: the other three padded sides are
	// all-zero and must be trimmed away, leaving a single hint flag
	padded := padded3x3(interior3x3(), 0, 7, 0, 0)
	h := NewFlowH2D(padded, edges3(), edges3())

	g, err := NormalizeGrid(h, FlowHint, nil)
	require.NoError(t, err)

	// hint mode keeps the original grid
	assert.Equal(t, edges3(), g.XEdges)
	assert.Equal(t, edges3(), g.YEdges)
	assert.Equal(t, interior3x3(), g.Values)

	assert.False(t, g.HintXLo)
	assert.True(t, g.HintXHi)
	assert.False(t, g.HintYLo)
	assert.False(t, g.HintYHi)
}

func TestGridFlowShowPadsLoadedSides(t *testing.T) {
	padded := padded3x3(interior3x3(), 0, 7, 0, 0)
	h := NewFlowH2D(padded, edges3(), edges3())

	g, err := NormalizeGrid(h, FlowShow, nil)
	require.NoError(t, err)

	// one extra x bin above, padded by 5% of the range
	require.Equal(t, 4, g.NBinsX())
	assert.InDeltaSlice(t, []float64{0, 1, 2, 3, 3.15}, g.XEdges, 1e-12)
	assert.Equal(t, 3, g.NBinsY())
	assert.Equal(t, edges3(), g.YEdges)

	require.Len(t, g.Values, 4)
	assert.Equal(t, []float64{7, 7, 7}, g.Values[3])
	assert.Equal(t, interior3x3()[0], g.Values[0])
	assert.True(t, g.ShownXHi)
	assert.False(t, g.ShownXLo)
}

func TestGridFlowSumFoldsBordersAndCorners(t *testing.T) {
	padded := padded3x3(interior3x3(), 1, 2, 3, 4)
	padded[0][0] = 10 // corner content
	h := NewFlowH2D(padded, edges3(), edges3())

	g, err := NormalizeGrid(h, FlowSum, nil)
	require.NoError(t, err)

	// border folds
	assert.Equal(t, 1.0+3.0+10.0+interior3x3()[0][0], g.Values[0][0])
	assert.Equal(t, 2.0+interior3x3()[2][1], g.Values[2][1])
	assert.Equal(t, 4.0+interior3x3()[1][2], g.Values[1][2])
	// interior untouched
	assert.Equal(t, interior3x3()[1][1], g.Values[1][1])
}

func TestGridMask(t *testing.T) {
	h := NewH2D(interior3x3(), edges3(), edges3())
	g, err := NormalizeGrid(h, FlowNone, nil)
	require.NoError(t, err)

	cmin, cmax := 2.0, 8.0
	g.Mask(&cmin, &cmax)
	assert.True(t, math.IsNaN(g.Values[0][0]))
	assert.True(t, math.IsNaN(g.Values[2][2]))
	assert.Equal(t, 5.0, g.Values[1][1])

	lo, hi, ok := g.MinMax()
	assert.True(t, ok)
	assert.Equal(t, 2.0, lo)
	assert.Equal(t, 8.0, hi)
}

func TestNormalizeGridRejectsRagged(t *testing.T) {
	h := NewH2D([][]float64{{1, 2}, {3}}, []float64{0, 1, 2}, []float64{0, 1, 2})
	_, err := NormalizeGrid(h, FlowNone, nil)
	assert.Error(t, err)
}
