// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plotters

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// FlowHint marks the ends of a 1D histogram that carry content outside
// the plotted range. In hint mode an outward-pointing triangle sits on
// the bottom axis at each affected edge. In show mode a diamond marks
// the center of each synthetic flow bin and a dashed segment separates
// it from the in-range bins.
type FlowHint struct {
	// Under, Over select which sides get a marker.
	Under, Over bool

	// UnderX, OverX are the marker positions in data coordinates: the
	// outer edges in hint mode, the synthetic bin centers in show mode.
	UnderX, OverX float64

	// Diamond switches from edge triangles to show-mode diamonds.
	Diamond bool

	// UnderSpan, OverSpan are the data x ranges of the synthetic bins,
	// underlined with a dashed segment in show mode.
	UnderSpan, OverSpan [2]float64

	// Size is the marker half-extent.
	Size vg.Length

	// LineStyle strokes the marker border.
	LineStyle draw.LineStyle
}

// NewFlowHint returns a marker set with the default look: small white
// markers with a thin dark border.
func NewFlowHint() *FlowHint {
	ls := plotter.DefaultLineStyle
	ls.Color = color.Black
	return &FlowHint{
		Size:      vg.Points(4),
		LineStyle: ls,
	}
}

func strokeMarker(c draw.Canvas, ls draw.LineStyle, pts []vg.Point) {
	c.FillPolygon(color.White, pts)
	c.StrokeLines(ls, append(pts, pts[0]))
}

// Plot implements the plot.Plotter interface.
func (f *FlowHint) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, _ := plt.Transforms(&c)
	y := c.Min.Y
	s := f.Size

	if f.Diamond {
		dash := draw.LineStyle{
			Color:  color.White,
			Width:  f.LineStyle.Width,
			Dashes: []vg.Length{vg.Points(4), vg.Points(3)},
		}
		if f.Under {
			c.StrokeLine2(dash, trX(f.UnderSpan[0]), y, trX(f.UnderSpan[1]), y)
			x := trX(f.UnderX)
			strokeMarker(c, f.LineStyle, []vg.Point{
				{X: x - s, Y: y}, {X: x, Y: y + s}, {X: x + s, Y: y}, {X: x, Y: y - s},
			})
		}
		if f.Over {
			c.StrokeLine2(dash, trX(f.OverSpan[0]), y, trX(f.OverSpan[1]), y)
			x := trX(f.OverX)
			strokeMarker(c, f.LineStyle, []vg.Point{
				{X: x - s, Y: y}, {X: x, Y: y + s}, {X: x + s, Y: y}, {X: x, Y: y - s},
			})
		}
		return
	}

	if f.Under {
		x := trX(f.UnderX)
		strokeMarker(c, f.LineStyle, []vg.Point{
			{X: x + s, Y: y + s/2}, {X: x + s, Y: y - s/2}, {X: x, Y: y},
		})
	}
	if f.Over {
		x := trX(f.OverX)
		strokeMarker(c, f.LineStyle, []vg.Point{
			{X: x - s, Y: y + s/2}, {X: x - s, Y: y - s/2}, {X: x, Y: y},
		})
	}
}

// FlowHint2D marks the sides of a 2D mesh that carry out-of-range
// content: a corner triangle per affected side in hint mode, or dashed
// separators at the synthetic bin boundaries in show mode.
type FlowHint2D struct {
	// XLo, XHi, YLo, YHi select the marked sides.
	XLo, XHi, YLo, YHi bool

	// SepXLo, SepXHi, SepYLo, SepYHi, when non-nil, are data coordinates
	// of dashed separator lines between synthetic and in-range bins.
	SepXLo, SepXHi, SepYLo, SepYHi *float64

	// Size is the corner triangle extent.
	Size vg.Length

	// LineStyle strokes triangle borders and separators.
	LineStyle draw.LineStyle
}

// NewFlowHint2D returns a marker set with the same default look as the
// 1D variant.
func NewFlowHint2D() *FlowHint2D {
	ls := plotter.DefaultLineStyle
	ls.Color = color.Black
	return &FlowHint2D{
		Size:      vg.Points(5),
		LineStyle: ls,
	}
}

// Plot implements the plot.Plotter interface.
func (f *FlowHint2D) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	s := f.Size

	dash := draw.LineStyle{
		Color:  color.Gray{Y: 0xd3},
		Width:  f.LineStyle.Width,
		Dashes: []vg.Length{vg.Points(4), vg.Points(3)},
	}
	if f.SepXLo != nil {
		x := trX(*f.SepXLo)
		c.StrokeLine2(dash, x, c.Min.Y, x, c.Max.Y)
	}
	if f.SepXHi != nil {
		x := trX(*f.SepXHi)
		c.StrokeLine2(dash, x, c.Min.Y, x, c.Max.Y)
	}
	if f.SepYLo != nil {
		y := trY(*f.SepYLo)
		c.StrokeLine2(dash, c.Min.X, y, c.Max.X, y)
	}
	if f.SepYHi != nil {
		y := trY(*f.SepYHi)
		c.StrokeLine2(dash, c.Min.X, y, c.Max.X, y)
	}

	ym := 0.5 * (c.Min.Y + c.Max.Y)
	xm := 0.5 * (c.Min.X + c.Max.X)
	if f.XLo {
		strokeMarker(c, f.LineStyle, []vg.Point{
			{X: c.Min.X + s, Y: ym + s/2}, {X: c.Min.X + s, Y: ym - s/2}, {X: c.Min.X, Y: ym},
		})
	}
	if f.XHi {
		strokeMarker(c, f.LineStyle, []vg.Point{
			{X: c.Max.X - s, Y: ym + s/2}, {X: c.Max.X - s, Y: ym - s/2}, {X: c.Max.X, Y: ym},
		})
	}
	if f.YLo {
		strokeMarker(c, f.LineStyle, []vg.Point{
			{X: xm - s/2, Y: c.Min.Y + s}, {X: xm + s/2, Y: c.Min.Y + s}, {X: xm, Y: c.Min.Y},
		})
	}
	if f.YHi {
		strokeMarker(c, f.LineStyle, []vg.Point{
			{X: xm - s/2, Y: c.Max.Y - s}, {X: xm + s/2, Y: c.Max.Y - s}, {X: xm, Y: c.Max.Y},
		})
	}
}
