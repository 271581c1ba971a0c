// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mplhep

import (
	"fmt"
	"image/color"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/8me/mplhep/hist"
	"github.com/8me/mplhep/plotters"
)

// SeriesArtists bundles the plotters created for one histogram series.
// Fields not used by the chosen rendering style are nil.
type SeriesArtists struct {
	Label  string
	Stairs *plotters.Stairs
	Band   *plotters.Band
	Points *plotters.ErrorPoints
}

// HistPlot draws 1D histogram sources on the axes and returns the
// per-series artists. All sources must share the binning of the first.
func HistPlot(ax *Axes, hs []hist.Hist, opts ...Option) ([]SeriesArtists, error) {
	cfg := defaultHistConfig()
	for _, o := range opts {
		if err := o(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.density && cfg.hasBWNorm {
		return nil, ErrConflictingNorm
	}
	if cfg.w2 != nil && !cfg.yerr.IsAuto() {
		return nil, ErrConflictingErrors
	}

	n, err := hist.Normalize(hs, cfg.flow, ax.Logger())
	if err != nil {
		return nil, err
	}
	ps := n.Plottables
	ns := len(ps)

	if cfg.w2 != nil {
		if len(cfg.w2) != ns {
			return nil, fmt.Errorf("mplhep: w2 needs %d arrays, got %d", ns, len(cfg.w2))
		}
		for i, w := range cfg.w2 {
			if len(w) != ps[i].NBins() {
				return nil, fmt.Errorf("mplhep: w2 array %d needs %d bins, got %d", i, ps[i].NBins(), len(w))
			}
			ps[i].Variances = append([]float64(nil), w...)
			ps[i].Method = cfg.w2method
		}
	}

	labels := make([]string, ns)
	switch len(cfg.labels) {
	case 0:
	case 1:
		for i := range labels {
			labels[i] = cfg.labels[0]
		}
	case ns:
		copy(labels, cfg.labels)
	default:
		return nil, fmt.Errorf("mplhep: %d labels for %d series", len(cfg.labels), ns)
	}

	serr, err := cfg.yerr.Broadcast(ns, len(n.Edges)-1)
	if err != nil {
		return nil, err
	}
	for i, se := range serr {
		if err := ps[i].FixedErrors(se.Lo, se.Hi); err != nil {
			return nil, err
		}
	}

	order, err := hist.SortOrder(cfg.sort, ps, labels)
	if err != nil {
		return nil, err
	}
	ps = permute(ps, order)
	labels = permute(labels, order)
	for i := range ps {
		ps[i].Label = labels[i]
	}

	switch {
	case cfg.density && cfg.stack:
		// The stacked total integrates to one, each series keeping its
		// share.
		total := make([]float64, ps[0].NBins())
		for _, p := range ps {
			floats.Add(total, p.Values)
		}
		var integral float64
		for i, w := range ps[0].Widths() {
			integral += w * total[i]
		}
		if integral != 0 {
			for _, p := range ps {
				p.FlatScale(1 / integral)
			}
		}
	case cfg.density:
		for _, p := range ps {
			p.ToDensity()
		}
	case cfg.hasBWNorm:
		for _, p := range ps {
			p.BinWNorm(cfg.binwnorm)
		}
	}

	if cfg.stack && ns > 1 {
		if err := hist.Stack(ps); err != nil {
			return nil, err
		}
	}

	arts := make([]SeriesArtists, ns)
	for i, p := range ps {
		col, err := cfg.colors.at(i, ns, plotutil.Color)
		if err != nil {
			return nil, err
		}
		arts[i].Label = p.Label

		switch cfg.typ {
		case TypeStep:
			if err := addStep(ax, &cfg, p, col, &arts[i]); err != nil {
				return nil, err
			}
		case TypeFill:
			if err := addFill(ax, &cfg, p, col, &arts[i]); err != nil {
				return nil, err
			}
		case TypeBand:
			if err := addBand(ax, &cfg, p, col, &arts[i]); err != nil {
				return nil, err
			}
		case TypeErrorBar:
			if err := addErrorBar(ax, &cfg, p, col, &arts[i]); err != nil {
				return nil, err
			}
		}
	}

	// Keep y=0 in view on linear axes unless the data reaches below.
	if !ax.LogY() && ax.Plot.Y.Min > 0 {
		ax.Plot.Y.Min = 0
	}

	configureXTicks(ax, &cfg, n)
	if n.Title != "" && ax.Plot.X.Label.Text == "" {
		ax.Plot.X.Label.Text = n.Title
	}
	addFlowMarkers(ax, &cfg, n)

	return arts, nil
}

func addStep(ax *Axes, cfg *histConfig, p *hist.Plottable, col color.Color, art *SeriesArtists) error {
	sv := p.Stairs()
	s, err := plotters.NewStairs(sv.Edges, sv.Values)
	if err != nil {
		return err
	}
	s.ClosedEnds = cfg.edges
	s.LineStyle.Color = col
	s.LineStyle.Width = cfg.lineWidth
	ax.Plot.Add(s)
	ax.trackSteps(sv.Edges, sv.Values)
	art.Stairs = s

	if !cfg.yerr.IsNone() && (cfg.w2 != nil || !cfg.yerr.IsAuto() || p.Variances != nil) {
		eb := p.ErrorBar()
		pts, err := plotters.NewErrorPoints(eb.X, eb.Y, eb.YLo, eb.YHi, nil)
		if err != nil {
			return err
		}
		pts.Scatter.GlyphStyle.Radius = 0
		pts.SetColor(col)
		ax.Plot.Add(pts)
		art.Points = pts
		if p.Label != "" {
			ax.AddLegend(p.Label, pts)
		}
		return nil
	}
	if p.Label != "" {
		ax.AddLegend(p.Label, s)
	}
	return nil
}

func addFill(ax *Axes, cfg *histConfig, p *hist.Plottable, col color.Color, art *SeriesArtists) error {
	sv := p.Stairs()
	s, err := plotters.NewStairs(sv.Edges, sv.Values)
	if err != nil {
		return err
	}
	s.Baseline = sv.Baseline
	s.FillColor = col
	s.LineStyle.Width = 0
	ax.Plot.Add(s)
	ax.trackSteps(sv.Edges, sv.Values)
	art.Stairs = s
	if p.Label != "" {
		ax.AddLegend(p.Label, s)
	}
	return nil
}

func addBand(ax *Axes, cfg *histConfig, p *hist.Plottable, col color.Color, art *SeriesArtists) error {
	bv := p.StairBand()
	b, err := plotters.NewBand(bv.Edges, bv.Lo, bv.Hi)
	if err != nil {
		return err
	}
	if cfg.colors.isSet() {
		b.FillColor = withAlpha(col, 0.5)
	}
	ax.Plot.Add(b)
	ax.trackSteps(bv.Edges, bv.Hi)
	art.Band = b
	if p.Label != "" {
		ax.AddLegend(p.Label, b)
	}
	return nil
}

func addErrorBar(ax *Axes, cfg *histConfig, p *hist.Plottable, col color.Color, art *SeriesArtists) error {
	eb := p.ErrorBar()
	var xerr []float64
	if cfg.xerr {
		xerr = make([]float64, len(eb.BinWidths))
		for i, w := range eb.BinWidths {
			xerr[i] = w / 2
		}
	}
	yLo, yHi := eb.YLo, eb.YHi
	if cfg.yerr.IsNone() {
		yLo, yHi = nil, nil
	}
	pts, err := plotters.NewErrorPoints(eb.X, eb.Y, yLo, yHi, xerr)
	if err != nil {
		return err
	}
	pts.Scatter.GlyphStyle.Radius = vg.Points(3)
	pts.SetColor(col)
	ax.Plot.Add(pts)
	ax.trackCurve(eb.X, eb.Y)
	art.Points = pts
	if p.Label != "" {
		ax.AddLegend(p.Label, pts)
	}
	return nil
}

// configureXTicks applies categorical labels, bin-edge ticks, and the
// flow-bin relabeling.
func configureXTicks(ax *Axes, cfg *histConfig, n *hist.Normalized) {
	flowShown := cfg.flow == hist.FlowShow && len(n.FlowEdges) > len(n.Edges)
	switch {
	case flowShown:
		underShown := n.FlowEdges[0] != n.Edges[0]
		overShown := n.FlowEdges[len(n.FlowEdges)-1] != n.Edges[len(n.Edges)-1]
		ticks := make([]plot.Tick, len(n.FlowEdges))
		for i, e := range n.FlowEdges {
			ticks[i] = plot.Tick{Value: e, Label: formatTick(e)}
		}
		if underShown {
			ticks[0].Label = ""
			ticks[1].Label = "<" + formatTick(n.FlowEdges[1])
		}
		if overShown {
			last := len(ticks) - 1
			ticks[last].Label = ""
			ticks[last-1].Label = ">" + formatTick(n.FlowEdges[last-1])
		}
		ax.Plot.X.Tick.Marker = plot.ConstantTicks(ticks)
	case n.Categories != nil:
		ticks := make([]plot.Tick, len(n.Categories))
		for i, cat := range n.Categories {
			ticks[i] = plot.Tick{
				Value: 0.5 * (n.Edges[i] + n.Edges[i+1]),
				Label: cat,
			}
		}
		ax.Plot.X.Tick.Marker = plot.ConstantTicks(ticks)
	case cfg.binticks:
		step := len(n.Edges)/7 + 1
		var ticks []plot.Tick
		for i := 0; i < len(n.Edges); i += step {
			ticks = append(ticks, plot.Tick{Value: n.Edges[i], Label: formatTick(n.Edges[i])})
		}
		ax.Plot.X.Tick.Marker = plot.ConstantTicks(ticks)
	}
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// addFlowMarkers draws the edge markers for out-of-range content, using
// the union of the per-series flow contents.
func addFlowMarkers(ax *Axes, cfg *histConfig, n *hist.Normalized) {
	var combined hist.FlowContent
	for _, fc := range n.Flow {
		combined.Underflow += fc.Underflow
		combined.Overflow += fc.Overflow
	}
	if !combined.Any() {
		return
	}
	under, over := combined.Underflow > 0, combined.Overflow > 0

	switch cfg.flow {
	case hist.FlowHint:
		h := plotters.NewFlowHint()
		h.Under, h.Over = under, over
		h.UnderX = n.Edges[0]
		h.OverX = n.Edges[len(n.Edges)-1]
		ax.Plot.Add(h)
	case hist.FlowShow:
		if len(n.FlowEdges) == len(n.Edges) {
			return
		}
		h := plotters.NewFlowHint()
		h.Diamond = true
		if n.FlowEdges[0] != n.Edges[0] {
			h.Under = true
			h.UnderSpan = [2]float64{n.FlowEdges[0], n.FlowEdges[1]}
			h.UnderX = 0.5 * (n.FlowEdges[0] + n.FlowEdges[1])
		}
		last := len(n.FlowEdges) - 1
		if n.FlowEdges[last] != n.Edges[len(n.Edges)-1] {
			h.Over = true
			h.OverSpan = [2]float64{n.FlowEdges[last-1], n.FlowEdges[last]}
			h.OverX = 0.5 * (n.FlowEdges[last-1] + n.FlowEdges[last])
		}
		ax.Plot.Add(h)
	}
}

func permute[T any](s []T, order []int) []T {
	out := make([]T, len(s))
	for i, ix := range order {
		out[i] = s[ix]
	}
	return out
}

func withAlpha(c color.Color, alpha float64) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA64{
		R: uint16(r),
		G: uint16(g),
		B: uint16(b),
		A: uint16(alpha * 0xffff),
	}
}
