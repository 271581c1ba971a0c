// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlottable(t *testing.T) {
	p, err := NewPlottable([]float64{1, 2, 3}, []float64{0, 1, 2, 3}, nil)
	require.NoError(t, err)
	assert.Equal(t, len(p.Edges), len(p.Values)+1)
	assert.Equal(t, []float64{0.5, 1.5, 2.5}, p.Centers())
	assert.Equal(t, []float64{1, 1, 1}, p.Widths())
	assert.Equal(t, 6.0, p.Sum())
}

func TestNewPlottableRejectsBadShapes(t *testing.T) {
	_, err := NewPlottable([]float64{1, 2}, []float64{0, 1}, nil)
	assert.ErrorContains(t, err, "expected 3 edges")

	_, err = NewPlottable([]float64{1, 2}, []float64{0, 1, 1}, nil)
	assert.ErrorContains(t, err, "strictly increasing")

	_, err = NewPlottable([]float64{1, 2}, []float64{0, 1, 2}, []float64{1})
	assert.ErrorContains(t, err, "variances length mismatch")
}

func TestToDensityIntegralIsOne(t *testing.T) {
	p, err := NewPlottable([]float64{4, 1, 3}, []float64{0, 0.5, 2, 4}, nil)
	require.NoError(t, err)
	p.ToDensity()

	var integral float64
	w := p.Widths()
	for i, v := range p.Values {
		integral += v * w[i]
	}
	assert.InDelta(t, 1.0, integral, 1e-12)
	assert.True(t, p.Density)
}

func TestBinWNorm(t *testing.T) {
	p, err := NewPlottable([]float64{2, 2}, []float64{0, 1, 3}, []float64{4, 4})
	require.NoError(t, err)
	p.BinWNorm(1)
	assert.Equal(t, []float64{2, 1}, p.Values)
	assert.Equal(t, []float64{4, 1}, p.Variances)
}

func TestFixedErrorsPrecedence(t *testing.T) {
	p, err := NewPlottable([]float64{4, 9}, []float64{0, 1, 2}, []float64{4, 9})
	require.NoError(t, err)
	require.NoError(t, p.FixedErrors([]float64{1, 1}, []float64{2, 2}))

	lo, hi := p.Errors()
	assert.Equal(t, []float64{1, 1}, lo)
	assert.Equal(t, []float64{2, 2}, hi)

	assert.Error(t, p.FixedErrors([]float64{1}, []float64{2, 2}))
}

func TestSqrtErrors(t *testing.T) {
	p, err := NewPlottable([]float64{4, 9}, []float64{0, 1, 2}, []float64{4, 9})
	require.NoError(t, err)
	p.Method = IntervalSqrt

	lo, hi := p.Errors()
	assert.Equal(t, []float64{2, 3}, lo)
	assert.Equal(t, []float64{2, 3}, hi)
}

func TestPoissonInterval(t *testing.T) {
	// For integral counts the Garwood interval is asymmetric and wider
	// above than below.
	lo, hi := poissonInterval(3, 3)
	assert.Greater(t, hi, lo)
	assert.Greater(t, lo, 0.0)

	// Zero content still has an upper bound.
	lo, hi = poissonInterval(0, 0)
	assert.Equal(t, 0.0, lo)
	assert.Greater(t, hi, 0.0)
}

func TestStacksSumToTotal(t *testing.T) {
	mk := func(vs ...float64) *Plottable {
		p, err := NewPlottable(vs, []float64{0, 1, 2, 3}, nil)
		require.NoError(t, err)
		return p
	}
	ps := []*Plottable{mk(1, 2, 3), mk(4, 5, 6), mk(7, 8, 9)}
	require.NoError(t, Stack(ps))

	top := ps[2].Tops()
	assert.Equal(t, []float64{12, 15, 18}, top)

	// each drawn increment still carries the original values
	assert.Equal(t, []float64{1, 2, 3}, ps[0].Values)
	assert.Equal(t, []float64{4, 5, 6}, ps[1].Values)
	assert.Equal(t, []float64{7, 8, 9}, ps[2].Values)
	assert.Equal(t, []float64{5, 7, 9}, ps[2].Baseline)
}

func TestStackRejectsMismatchedBins(t *testing.T) {
	a, _ := NewPlottable([]float64{1, 2}, []float64{0, 1, 2}, nil)
	b, _ := NewPlottable([]float64{1, 2, 3}, []float64{0, 1, 2, 3}, nil)
	assert.Error(t, Stack([]*Plottable{a, b}))
}

func TestStairBandEnvelope(t *testing.T) {
	p, err := NewPlottable([]float64{4, 9}, []float64{0, 1, 2}, []float64{4, 9})
	require.NoError(t, err)
	p.Method = IntervalSqrt

	band := p.StairBand()
	assert.Equal(t, []float64{2, 6}, band.Lo)
	assert.Equal(t, []float64{6, 12}, band.Hi)
}

func TestSortOrder(t *testing.T) {
	mk := func(vs ...float64) *Plottable {
		p, _ := NewPlottable(vs, []float64{0, 1, 2}, nil)
		return p
	}
	ps := []*Plottable{mk(5, 5), mk(1, 1), mk(3, 3)}
	labels := []string{"c", "a", "b"}

	tests := []struct {
		name string
		sel  string
		want []int
	}{
		{"by label", "label", []int{1, 2, 0}},
		{"by label short", "l", []int{1, 2, 0}},
		{"by yield", "yield", []int{1, 2, 0}},
		{"by yield reversed", "y_r", []int{0, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := ParseSortMode(tt.sel)
			require.NoError(t, err)
			order, err := SortOrder(spec, ps, labels)
			require.NoError(t, err)
			assert.Equal(t, tt.want, order)
		})
	}

	_, err := ParseSortMode("bogus")
	assert.Error(t, err)

	_, err = SortOrder(SortSpec{Order: []int{0}}, ps, labels)
	assert.ErrorContains(t, err, "wrong size")

	_, err = SortOrder(SortSpec{Order: []int{2, 3, 4}}, ps, labels)
	assert.ErrorContains(t, err, "out of range")

	_, err = SortOrder(SortSpec{Order: []int{0, 0, 1}}, ps, labels)
	assert.ErrorContains(t, err, "twice")

	order, err := SortOrder(SortSpec{Order: []int{2, 0, 1}}, ps, labels)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 1}, order)
}
