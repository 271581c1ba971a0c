// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

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

// ErrorPoints draws a histogram as markers at the bin centers with
// asymmetric vertical error bars and optional horizontal bars spanning
// the bin widths.
type ErrorPoints struct {
	Scatter *plotter.Scatter
	YBars   *plotter.YErrorBars
	XBars   *plotter.XErrorBars
}

type xyErrData struct {
	plotter.XYs
	plotter.YErrors
	plotter.XErrors
}

// NewErrorPoints builds the composite from bin centers, contents, and
// downward/upward error magnitudes. Nil yLo and yHi skip the vertical
// bars. When xerr is non-nil it holds the half bin widths for
// horizontal bars.
func NewErrorPoints(xs, ys, yLo, yHi, xerr []float64) (*ErrorPoints, error) {
	n := len(xs)
	if len(ys) != n {
		return nil, fmt.Errorf("plotters: error points need equal x and y lengths, got %d, %d", len(xs), len(ys))
	}
	if (yLo != nil || yHi != nil) && (len(yLo) != n || len(yHi) != n) {
		return nil, fmt.Errorf("plotters: vertical errors need %d entries, got (%d, %d)", n, len(yLo), len(yHi))
	}
	if xerr != nil && len(xerr) != n {
		return nil, fmt.Errorf("plotters: horizontal errors need %d entries, got %d", n, len(xerr))
	}

	d := xyErrData{
		XYs:     make(plotter.XYs, n),
		YErrors: make(plotter.YErrors, n),
		XErrors: make(plotter.XErrors, n),
	}
	for i := range xs {
		d.XYs[i].X = xs[i]
		d.XYs[i].Y = ys[i]
		if yLo != nil {
			d.YErrors[i].Low = yLo[i]
			d.YErrors[i].High = yHi[i]
		}
		if xerr != nil {
			d.XErrors[i].Low = xerr[i]
			d.XErrors[i].High = xerr[i]
		}
	}

	sc, err := plotter.NewScatter(d.XYs)
	if err != nil {
		return nil, err
	}
	sc.GlyphStyle.Shape = draw.CircleGlyph{}

	ep := &ErrorPoints{Scatter: sc}
	if yLo != nil {
		yb, err := plotter.NewYErrorBars(struct {
			plotter.XYs
			plotter.YErrors
		}{d.XYs, d.YErrors})
		if err != nil {
			return nil, err
		}
		ep.YBars = yb
	}
	if xerr != nil {
		xb, err := plotter.NewXErrorBars(struct {
			plotter.XYs
			plotter.XErrors
		}{d.XYs, d.XErrors})
		if err != nil {
			return nil, err
		}
		// Bin-width bars carry no caps in the usual rendering.
		xb.CapWidth = 0
		ep.XBars = xb
	}
	return ep, nil
}

// SetColor applies one color to the marker and both bar sets.
func (e *ErrorPoints) SetColor(c color.Color) {
	e.Scatter.GlyphStyle.Color = c
	if e.YBars != nil {
		e.YBars.LineStyle.Color = c
	}
	if e.XBars != nil {
		e.XBars.LineStyle.Color = c
	}
}

// Plot implements the plot.Plotter interface.
func (e *ErrorPoints) Plot(c draw.Canvas, plt *plot.Plot) {
	if e.YBars != nil {
		e.YBars.Plot(c, plt)
	}
	if e.XBars != nil {
		e.XBars.Plot(c, plt)
	}
	e.Scatter.Plot(c, plt)
}

// DataRange implements the plot.DataRanger interface.
func (e *ErrorPoints) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax, ymin, ymax = e.Scatter.DataRange()
	merge := func(x0, x1, y0, y1 float64) {
		xmin = math.Min(xmin, x0)
		xmax = math.Max(xmax, x1)
		ymin = math.Min(ymin, y0)
		ymax = math.Max(ymax, y1)
	}
	if e.YBars != nil {
		merge(e.YBars.DataRange())
	}
	if e.XBars != nil {
		merge(e.XBars.DataRange())
	}
	return xmin, xmax, ymin, ymax
}

// GlyphBoxes implements the plot.GlyphBoxer interface.
func (e *ErrorPoints) GlyphBoxes(plt *plot.Plot) []plot.GlyphBox {
	boxes := e.Scatter.GlyphBoxes(plt)
	if e.YBars != nil {
		boxes = append(boxes, e.YBars.GlyphBoxes(plt)...)
	}
	if e.XBars != nil {
		boxes = append(boxes, e.XBars.GlyphBoxes(plt)...)
	}
	return boxes
}

// Thumbnail implements the plot.Thumbnailer interface.
func (e *ErrorPoints) Thumbnail(c *draw.Canvas) {
	x := 0.5 * (c.Min.X + c.Max.X)
	y := 0.5 * (c.Min.Y + c.Max.Y)
	if e.YBars != nil {
		c.StrokeLine2(e.YBars.LineStyle, x, c.Min.Y, x, c.Max.Y)
	}
	c.DrawGlyph(e.Scatter.GlyphStyle, vg.Point{X: x, Y: y})
}
