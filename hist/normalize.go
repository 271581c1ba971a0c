// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// ErrNoHists is returned when normalization receives no sources.
var ErrNoHists = errors.New("hist: no histograms given")

// Normalized is the canonical form of one or more 1D histogram sources.
type Normalized struct {
	// Plottables holds one entry per source, flow policy already
	// applied.
	Plottables []*Plottable

	// Flow holds the per-source flow content resolved from the sources,
	// regardless of mode, for edge hinting.
	Flow []FlowContent

	// Edges are the shared bin edges before any synthetic flow bins.
	Edges []float64

	// FlowEdges are the edges including synthetic flow bins under
	// FlowShow; identical to Edges otherwise.
	FlowEdges []float64

	// Categories holds per-bin tick labels for categorical axes, nil
	// otherwise.
	Categories []string

	// Title is the axis title declared by the first source, if any.
	Title string
}

// Normalize coerces histogram sources into plottables and applies the
// flow policy. All sources must share the binning of the first. When a
// source lacks flow support under a flow-aware mode, a warning is logged
// (once) and the mode degrades to FlowNone for that source.
func Normalize(sources []Hist, mode FlowMode, lg *log.Logger) (*Normalized, error) {
	if lg == nil {
		lg = log.Default()
	}
	if len(sources) == 0 {
		return nil, ErrNoHists
	}
	for i, h := range sources {
		if n := len(h.Axes()); n != 1 {
			return nil, fmt.Errorf("hist: bins need to be 1 dimensional: source %d has %d axes", i, n)
		}
	}

	edges, cats, err := AxisBins(sources[0].Axes()[0], len(sources[0].Values()))
	if err != nil {
		return nil, err
	}

	norm := &Normalized{
		Edges:      edges,
		FlowEdges:  edges,
		Categories: cats,
		Title:      AxisTitle(sources[0].Axes()[0]),
	}

	warned := false
	for i, h := range sources {
		values := append([]float64(nil), h.Values()...)
		if len(values) != len(edges)-1 {
			return nil, fmt.Errorf("hist: source %d bin count mismatch: expected %d, got %d", i, len(edges)-1, len(values))
		}
		var variances []float64
		if vh, ok := h.(VarianceHist); ok && vh.Variances() != nil {
			variances = append([]float64(nil), vh.Variances()...)
		}
		p, err := NewPlottable(values, edges, variances)
		if err != nil {
			return nil, fmt.Errorf("hist: source %d: %w", i, err)
		}

		style, fc := resolveFlow(h)
		if style == FlowUnsupported && mode != FlowNone && !warned {
			lg.Warn("flow bins requested from a source without flow support; disabling", "mode", mode.String())
			warned = true
		}
		applyFlow(p, fc, mode)
		if mode == FlowShow && len(p.Edges) > len(norm.FlowEdges) {
			norm.FlowEdges = p.Edges
		}

		norm.Plottables = append(norm.Plottables, p)
		norm.Flow = append(norm.Flow, fc)
	}
	return norm, nil
}

// AxisBins returns the bin edges and optional category labels of an
// axis. Categorical axes without numeric edges get unit-width edges.
func AxisBins(ax Axis, nbins int) (edges []float64, cats []string, err error) {
	if ca, ok := ax.(CategoryAxis); ok {
		cats = ca.Categories()
	}
	edges = ax.Edges()
	if edges == nil {
		if len(cats) == 0 {
			return nil, nil, errors.New("hist: axis has neither edges nor categories")
		}
		edges = make([]float64, len(cats)+1)
		for i := range edges {
			edges[i] = float64(i)
		}
		return edges, cats, nil
	}
	if nbins > 0 && len(edges) != nbins+1 {
		return nil, nil, fmt.Errorf("hist: axis edge count mismatch: expected %d, got %d", nbins+1, len(edges))
	}
	if len(cats) > 0 && len(cats) != len(edges)-1 {
		return nil, nil, fmt.Errorf("hist: category label count mismatch: expected %d, got %d", len(edges)-1, len(cats))
	}
	return edges, cats, nil
}

// AxisTitle returns the axis title, or "" when the axis has none.
func AxisTitle(ax Axis) string {
	if ta, ok := ax.(TitledAxis); ok {
		return ta.Title()
	}
	return ""
}
