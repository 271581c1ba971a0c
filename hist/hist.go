// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hist defines the histogram protocol consumed by the plotting
// functions and the canonical Plottable representation derived from it.
//
// A histogram source satisfies small capability interfaces: every source
// exposes bin values and axes; variance tracking, under/overflow access,
// categorical labels, and axis titles are optional capabilities that are
// resolved exactly once during normalization.
package hist

// Hist is the minimal 1D histogram protocol: per-bin values and one axis.
type Hist interface {
	// Values returns the per-bin contents, excluding flow bins.
	Values() []float64

	// Axes returns the binning axes. A 1D histogram has exactly one.
	Axes() []Axis
}

// VarianceHist is satisfied by sources that track per-bin variances.
type VarianceHist interface {
	Hist

	// Variances returns the per-bin variances, or nil if not tracked.
	Variances() []float64
}

// FlowHist is satisfied by sources that can return values including the
// under/overflow bins. With flow=true the returned slice has two more
// entries than Values, the first being the underflow and the last the
// overflow bin.
type FlowHist interface {
	Hist

	FlowValues(flow bool) []float64

	// FlowVariances mirrors FlowValues for variances; it returns nil
	// when variances are not tracked.
	FlowVariances(flow bool) []float64
}

// Hist2D is the minimal 2D histogram protocol. Values2D is indexed as
// [ix][iy] matching Axes()[0] and Axes()[1].
type Hist2D interface {
	Values2D() [][]float64
	Axes() []Axis
}

// FlowHist2D is satisfied by 2D sources that can return the dense value
// matrix including flow bins: with flow=true the matrix is padded by one
// row/column on every side (corners included).
type FlowHist2D interface {
	Hist2D

	FlowValues2D(flow bool) [][]float64
}

// Axis describes one binning axis.
type Axis interface {
	// Edges returns the N+1 bin edges, strictly increasing.
	// A categorical axis may return nil; unit-width edges are
	// synthesized during normalization.
	Edges() []float64
}

// CategoryAxis is satisfied by axes carrying per-bin category labels.
type CategoryAxis interface {
	Axis

	Categories() []string
}

// TitledAxis is satisfied by axes carrying a display title.
type TitledAxis interface {
	Axis

	Title() string
}

// TraitAxis is satisfied by axes that declare whether under/overflow bins
// are tracked at all. Sources exposing trait flags may track flow on only
// one side.
type TraitAxis interface {
	Axis

	Underflow() bool
	Overflow() bool
}

// EdgeAxis is a plain concrete axis: numeric edges with an optional title
// and optional category labels.
type EdgeAxis struct {
	Edge []float64
	Name string
	Cats []string
}

func (a EdgeAxis) Edges() []float64     { return a.Edge }
func (a EdgeAxis) Title() string        { return a.Name }
func (a EdgeAxis) Categories() []string { return a.Cats }

// TraitEdgeAxis is an EdgeAxis with under/overflow trait flags.
type TraitEdgeAxis struct {
	EdgeAxis
	HasUnderflow bool
	HasOverflow  bool
}

func (a TraitEdgeAxis) Underflow() bool { return a.HasUnderflow }
func (a TraitEdgeAxis) Overflow() bool  { return a.HasOverflow }

// H1D is a minimal concrete 1D histogram. It satisfies Hist and, when
// Vars is set, VarianceHist. It does not track flow bins.
type H1D struct {
	Vals []float64
	Vars []float64
	Ax   EdgeAxis
}

// NewH1D returns a histogram over the given values and bin edges.
func NewH1D(values, edges []float64) *H1D {
	return &H1D{Vals: values, Ax: EdgeAxis{Edge: edges}}
}

func (h *H1D) Values() []float64    { return h.Vals }
func (h *H1D) Variances() []float64 { return h.Vars }
func (h *H1D) Axes() []Axis         { return []Axis{h.Ax} }

// FlowH1D is a concrete 1D histogram with under/overflow bins tracked via
// trait flags on its axis. Flow content is zero unless set.
type FlowH1D struct {
	H1D
	Under    float64
	Over     float64
	UnderVar float64
	OverVar  float64
}

// NewFlowH1D returns a flow-tracking histogram over values and edges.
func NewFlowH1D(values, edges []float64, under, over float64) *FlowH1D {
	h := &FlowH1D{Under: under, Over: over}
	h.Vals = values
	h.Ax = EdgeAxis{Edge: edges}
	return h
}

func (h *FlowH1D) Axes() []Axis {
	return []Axis{TraitEdgeAxis{EdgeAxis: h.Ax, HasUnderflow: true, HasOverflow: true}}
}

func (h *FlowH1D) FlowValues(flow bool) []float64 {
	if !flow {
		return h.Vals
	}
	out := make([]float64, 0, len(h.Vals)+2)
	out = append(out, h.Under)
	out = append(out, h.Vals...)
	return append(out, h.Over)
}

func (h *FlowH1D) FlowVariances(flow bool) []float64 {
	if h.Vars == nil {
		return nil
	}
	if !flow {
		return h.Vars
	}
	out := make([]float64, 0, len(h.Vars)+2)
	out = append(out, h.UnderVar)
	out = append(out, h.Vars...)
	return append(out, h.OverVar)
}

// H2D is a minimal concrete 2D histogram. Vals is indexed [ix][iy].
type H2D struct {
	Vals [][]float64
	XAx  EdgeAxis
	YAx  EdgeAxis
}

// NewH2D returns a 2D histogram over the given value matrix and edges.
func NewH2D(values [][]float64, xedges, yedges []float64) *H2D {
	return &H2D{Vals: values, XAx: EdgeAxis{Edge: xedges}, YAx: EdgeAxis{Edge: yedges}}
}

func (h *H2D) Values2D() [][]float64 { return h.Vals }
func (h *H2D) Axes() []Axis          { return []Axis{h.XAx, h.YAx} }

// FlowH2D is a concrete 2D histogram carrying the full padded matrix,
// indexed [ix][iy] with flow rows/columns at 0 and len-1.
type FlowH2D struct {
	Padded [][]float64
	XAx    EdgeAxis
	YAx    EdgeAxis
}

// NewFlowH2D returns a 2D histogram from a padded matrix whose outer
// rows/columns hold the flow content.
func NewFlowH2D(padded [][]float64, xedges, yedges []float64) *FlowH2D {
	return &FlowH2D{Padded: padded, XAx: EdgeAxis{Edge: xedges}, YAx: EdgeAxis{Edge: yedges}}
}

func (h *FlowH2D) Values2D() [][]float64 {
	nx := len(h.Padded) - 2
	out := make([][]float64, nx)
	for i := 0; i < nx; i++ {
		row := h.Padded[i+1]
		out[i] = row[1 : len(row)-1]
	}
	return out
}

func (h *FlowH2D) FlowValues2D(flow bool) [][]float64 {
	if flow {
		return h.Padded
	}
	return h.Values2D()
}

func (h *FlowH2D) Axes() []Axis { return []Axis{h.XAx, h.YAx} }
