// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// accessorH1D exposes flow content through the accessor alone, without
// axis trait flags.
type accessorH1D struct {
	H1D
	under, over float64
}

func (h *accessorH1D) FlowValues(flow bool) []float64 {
	if !flow {
		return h.Vals
	}
	out := append([]float64{h.under}, h.Vals...)
	return append(out, h.over)
}

func (h *accessorH1D) FlowVariances(flow bool) []float64 { return nil }

func TestNormalizeInvariant(t *testing.T) {
	h := NewH1D([]float64{1, 2, 3}, []float64{0, 1, 2, 3})
	norm, err := Normalize([]Hist{h}, FlowNone, nil)
	require.NoError(t, err)
	require.Len(t, norm.Plottables, 1)

	p := norm.Plottables[0]
	assert.Equal(t, len(p.Values)+1, len(p.Edges))
	assert.False(t, norm.Flow[0].Any())
}

func TestNormalizeRejectsMismatch(t *testing.T) {
	a := NewH1D([]float64{1, 2, 3}, []float64{0, 1, 2, 3})
	b := NewH1D([]float64{1, 2}, []float64{0, 1, 2})
	_, err := Normalize([]Hist{a, b}, FlowNone, nil)
	assert.ErrorContains(t, err, "bin count mismatch")

	_, err = Normalize(nil, FlowNone, nil)
	assert.ErrorIs(t, err, ErrNoHists)
}

func TestFlowStyleResolution(t *testing.T) {
	plain := NewH1D([]float64{1}, []float64{0, 1})
	style, _ := resolveFlow(plain)
	assert.Equal(t, FlowUnsupported, style)

	traits := NewFlowH1D([]float64{1}, []float64{0, 1}, 2, 3)
	style, fc := resolveFlow(traits)
	assert.Equal(t, FlowByTraits, style)
	assert.Equal(t, 2.0, fc.Underflow)
	assert.Equal(t, 3.0, fc.Overflow)

	acc := &accessorH1D{under: 4, over: 5}
	acc.Vals = []float64{1}
	acc.Ax = EdgeAxis{Edge: []float64{0, 1}}
	style, fc = resolveFlow(acc)
	assert.Equal(t, FlowByAccessor, style)
	assert.Equal(t, 4.0, fc.Underflow)
	assert.Equal(t, 5.0, fc.Overflow)
}

func TestFlowSumRoundTrip(t *testing.T) {
	h := NewFlowH1D([]float64{10, 20, 30}, []float64{0, 1, 2, 3}, 2, 3)
	norm, err := Normalize([]Hist{h}, FlowSum, nil)
	require.NoError(t, err)

	p := norm.Plottables[0]
	assert.Equal(t, []float64{12, 20, 33}, p.Values)
	assert.Equal(t, []float64{0, 1, 2, 3}, p.Edges)
}

func TestFlowShowAppendsBins(t *testing.T) {
	h := NewFlowH1D([]float64{10, 20, 30}, []float64{0, 1, 2, 3}, 2, 3)
	norm, err := Normalize([]Hist{h}, FlowShow, nil)
	require.NoError(t, err)

	p := norm.Plottables[0]
	require.Len(t, p.Values, 5)
	assert.Equal(t, []float64{2, 10, 20, 30, 3}, p.Values)
	// synthetic width = max(5% of range, mean width) = 1
	assert.Equal(t, []float64{-1, 0, 1, 2, 3, 4}, p.Edges)
	assert.Equal(t, p.Edges, norm.FlowEdges)
	assert.Equal(t, []float64{0, 1, 2, 3}, norm.Edges)
}

func TestFlowShowSkipsEmptySides(t *testing.T) {
	h := NewFlowH1D([]float64{10, 20, 30}, []float64{0, 1, 2, 3}, 0, 3)
	norm, err := Normalize([]Hist{h}, FlowShow, nil)
	require.NoError(t, err)

	p := norm.Plottables[0]
	assert.Equal(t, []float64{10, 20, 30, 3}, p.Values)
	assert.Equal(t, []float64{0, 1, 2, 3, 4}, p.Edges)
}

func TestFlowWarnsWhenUnsupported(t *testing.T) {
	var buf bytes.Buffer
	lg := log.New(&buf)

	h := NewH1D([]float64{1, 2}, []float64{0, 1, 2})
	_, err := Normalize([]Hist{h}, FlowShow, lg)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "without flow support")
}

func TestCategoricalAxis(t *testing.T) {
	h := &H1D{
		Vals: []float64{1, 2, 3},
		Ax:   EdgeAxis{Cats: []string{"a", "b", "c"}, Name: "flavour"},
	}
	norm, err := Normalize([]Hist{h}, FlowNone, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 3}, norm.Edges)
	assert.Equal(t, []string{"a", "b", "c"}, norm.Categories)
	assert.Equal(t, "flavour", norm.Title)
}

func TestErrorBroadcastScalar(t *testing.T) {
	// a scalar over 3 series and 5 bins yields the (3, 2, 5) symmetric
	// structure with both bounds equal to the scalar
	out, err := ErrScalar(0.5).Broadcast(3, 5)
	require.NoError(t, err)
	require.Len(t, out, 3)
	for _, se := range out {
		require.Len(t, se.Lo, 5)
		require.Len(t, se.Hi, 5)
		for i := range se.Lo {
			assert.Equal(t, 0.5, se.Lo[i])
			assert.Equal(t, 0.5, se.Hi[i])
		}
	}
}

func TestErrorBroadcastShapes(t *testing.T) {
	tests := []struct {
		name    string
		spec    ErrorSpec
		series  int
		bins    int
		wantErr bool
	}{
		{"1d symmetric", ErrValues([]float64{1, 2}), 3, 2, false},
		{"1d wrong bins", ErrValues([]float64{1}), 3, 2, true},
		{"2d two-sided single series", Err2D([][]float64{{1, 2}, {3, 4}}), 1, 2, false},
		{"2d one row single series", Err2D([][]float64{{1, 2}}), 1, 2, false},
		{"2d per series", Err2D([][]float64{{1, 2}, {3, 4}, {5, 6}}), 3, 2, false},
		{"2d wrong series", Err2D([][]float64{{1, 2}}), 3, 2, true},
		{"3d as-is", Err3D([][][]float64{{{1, 2}, {3, 4}}}), 1, 2, false},
		{"3d malformed", Err3D([][][]float64{{{1, 2}}}), 1, 2, true},
		{"auto is nil", ErrAuto(), 2, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.spec.Broadcast(tt.series, tt.bins)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.spec.IsAuto() {
				assert.Nil(t, out)
				return
			}
			assert.Len(t, out, tt.series)
		})
	}
}

func TestErrorBroadcastTwoSided(t *testing.T) {
	out, err := Err2D([][]float64{{1, 2}, {3, 4}}).Broadcast(1, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, out[0].Lo)
	assert.Equal(t, []float64{3, 4}, out[0].Hi)
}
