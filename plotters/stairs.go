// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plotters provides the histogram-oriented plotters drawn by the
// top-level plotting functions: step outlines, filled stairs, error
// bands, point-with-errorbar series, colored 2D meshes, and flow-bin edge
// markers. All types implement gonum's plot.Plotter and, where ranges
// matter, plot.DataRanger.
package plotters

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Stairs draws the skyline outline of a histogram, optionally filled down
// to a per-bin baseline.
type Stairs struct {
	// Edges are the N+1 bin edges.
	Edges []float64

	// Values are the N step heights (the top curve).
	Values []float64

	// Baseline is the lower curve for filling and edge closure; nil
	// means zero.
	Baseline []float64

	// LineStyle is the outline style.
	LineStyle draw.LineStyle

	// FillColor fills the region between the step curve and the
	// baseline when non-nil.
	FillColor color.Color

	// ClosedEnds draws the outer vertical edges down to the baseline in
	// outline mode.
	ClosedEnds bool
}

// NewStairs returns a step-outline plotter over edges and values.
func NewStairs(edges, values []float64) (*Stairs, error) {
	if len(edges) != len(values)+1 {
		return nil, fmt.Errorf("plotters: stairs needs %d edges, got %d", len(values)+1, len(edges))
	}
	return &Stairs{
		Edges:      edges,
		Values:     values,
		LineStyle:  plotter.DefaultLineStyle,
		ClosedEnds: true,
	}, nil
}

func (s *Stairs) baseline(i int) float64 {
	if s.Baseline == nil {
		return 0
	}
	return s.Baseline[i]
}

// Plot implements the plot.Plotter interface.
func (s *Stairs) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	tr := func(x, y float64) vg.Point { return vg.Point{X: trX(x), Y: trY(y)} }

	top := make([]vg.Point, 0, 2*len(s.Values)+2)
	for i, v := range s.Values {
		top = append(top, tr(s.Edges[i], v), tr(s.Edges[i+1], v))
	}

	if s.FillColor != nil {
		poly := make([]vg.Point, 0, len(top)+2*len(s.Values))
		poly = append(poly, top...)
		for i := len(s.Values) - 1; i >= 0; i-- {
			poly = append(poly, tr(s.Edges[i+1], s.baseline(i)), tr(s.Edges[i], s.baseline(i)))
		}
		c.FillPolygon(s.FillColor, c.ClipPolygonXY(poly))
	}

	outline := top
	if s.ClosedEnds {
		n := len(s.Values)
		outline = make([]vg.Point, 0, len(top)+2)
		outline = append(outline, tr(s.Edges[0], s.baseline(0)))
		outline = append(outline, top...)
		outline = append(outline, tr(s.Edges[n], s.baseline(n-1)))
	}
	if s.LineStyle.Color != nil && s.LineStyle.Width > 0 {
		c.StrokeLines(s.LineStyle, c.ClipLinesXY(outline)...)
	}
}

// DataRange implements the plot.DataRanger interface. The baseline is
// part of the range so an unstacked histogram keeps y=0 in view.
func (s *Stairs) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin = s.Edges[0]
	xmax = s.Edges[len(s.Edges)-1]
	ymin = math.Inf(1)
	ymax = math.Inf(-1)
	for i, v := range s.Values {
		b := s.baseline(i)
		ymin = math.Min(ymin, math.Min(v, b))
		ymax = math.Max(ymax, math.Max(v, b))
	}
	return xmin, xmax, ymin, ymax
}

// Thumbnail implements the plot.Thumbnailer interface.
func (s *Stairs) Thumbnail(c *draw.Canvas) {
	if s.FillColor != nil {
		pts := []vg.Point{
			{X: c.Min.X, Y: c.Min.Y},
			{X: c.Min.X, Y: c.Max.Y},
			{X: c.Max.X, Y: c.Max.Y},
			{X: c.Max.X, Y: c.Min.Y},
		}
		c.FillPolygon(s.FillColor, pts)
		return
	}
	y := 0.5 * (c.Min.Y + c.Max.Y)
	c.StrokeLine2(s.LineStyle, c.Min.X, y, c.Max.X, y)
}

// Band fills the region between two step curves sharing one set of bin
// edges, typically an error envelope around a histogram.
type Band struct {
	// Edges are the N+1 bin edges.
	Edges []float64

	// Lo, Hi are the N lower and upper step heights.
	Lo, Hi []float64

	// LineStyle strokes the envelope boundary.
	LineStyle draw.LineStyle

	// FillColor fills the envelope.
	FillColor color.Color
}

// NewBand returns an error-band plotter with the subdued default look:
// translucent light fill with a gray boundary.
func NewBand(edges, lo, hi []float64) (*Band, error) {
	if len(edges) != len(lo)+1 || len(lo) != len(hi) {
		return nil, fmt.Errorf("plotters: band needs %d edges and equal bounds, got %d edges, (%d, %d) bounds", len(lo)+1, len(edges), len(lo), len(hi))
	}
	ls := plotter.DefaultLineStyle
	ls.Color = color.NRGBA{R: 0xa9, G: 0xa9, B: 0xa9, A: 0xff} // darkgray
	return &Band{
		Edges:     edges,
		Lo:        lo,
		Hi:        hi,
		LineStyle: ls,
		FillColor: color.NRGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0x80}, // whitesmoke
	}, nil
}

// Plot implements the plot.Plotter interface.
func (b *Band) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	tr := func(x, y float64) vg.Point { return vg.Point{X: trX(x), Y: trY(y)} }

	hi := make([]vg.Point, 0, 2*len(b.Hi))
	lo := make([]vg.Point, 0, 2*len(b.Lo))
	for i := range b.Hi {
		hi = append(hi, tr(b.Edges[i], b.Hi[i]), tr(b.Edges[i+1], b.Hi[i]))
		lo = append(lo, tr(b.Edges[i], b.Lo[i]), tr(b.Edges[i+1], b.Lo[i]))
	}

	if b.FillColor != nil {
		poly := make([]vg.Point, 0, len(hi)+len(lo))
		poly = append(poly, hi...)
		for i := len(lo) - 1; i >= 0; i-- {
			poly = append(poly, lo[i])
		}
		c.FillPolygon(b.FillColor, c.ClipPolygonXY(poly))
	}
	if b.LineStyle.Color != nil && b.LineStyle.Width > 0 {
		c.StrokeLines(b.LineStyle, c.ClipLinesXY(hi)...)
		c.StrokeLines(b.LineStyle, c.ClipLinesXY(lo)...)
	}
}

// DataRange implements the plot.DataRanger interface.
func (b *Band) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin = b.Edges[0]
	xmax = b.Edges[len(b.Edges)-1]
	ymin = math.Inf(1)
	ymax = math.Inf(-1)
	for i := range b.Lo {
		ymin = math.Min(ymin, b.Lo[i])
		ymax = math.Max(ymax, b.Hi[i])
	}
	return xmin, xmax, ymin, ymax
}

// Thumbnail implements the plot.Thumbnailer interface.
func (b *Band) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	if b.FillColor != nil {
		c.FillPolygon(b.FillColor, pts)
	}
	c.StrokeLines(b.LineStyle, append(pts, pts[0]))
}
