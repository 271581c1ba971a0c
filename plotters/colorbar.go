// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plotters

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ColorBar is a vertical color scale. It lives in its own plot whose y
// axis spans the color map range; the host plot's ticks then label the
// scale. Extend arrows mark clipped ends of the range.
type ColorBar struct {
	// ColorMap provides the gradient and its Min and Max bounds.
	ColorMap palette.ColorMap

	// ExtendLow, ExtendHigh draw pointed ends indicating values clipped
	// below Min or above Max.
	ExtendLow, ExtendHigh bool

	// Strips is the number of constant-color bands used to approximate
	// the gradient. Zero means 256.
	Strips int
}

func (cb *ColorBar) strips() int {
	if cb.Strips <= 0 {
		return 256
	}
	return cb.Strips
}

// Plot implements the plot.Plotter interface.
func (cb *ColorBar) Plot(c draw.Canvas, plt *plot.Plot) {
	_, trY := plt.Transforms(&c)
	lo, hi := cb.ColorMap.Min(), cb.ColorMap.Max()
	n := cb.strips()

	for i := 0; i < n; i++ {
		v0 := lo + float64(i)/float64(n)*(hi-lo)
		v1 := lo + float64(i+1)/float64(n)*(hi-lo)
		col, err := cb.ColorMap.At(0.5 * (v0 + v1))
		if err != nil {
			continue
		}
		y0, y1 := trY(v0), trY(v1)
		c.FillPolygon(col, []vg.Point{
			{X: c.Min.X, Y: y0},
			{X: c.Max.X, Y: y0},
			{X: c.Max.X, Y: y1},
			{X: c.Min.X, Y: y1},
		})
	}

	xm := 0.5 * (c.Min.X + c.Max.X)
	h := c.Max.X - c.Min.X // arrow height matches the bar width
	if cb.ExtendLow {
		col, err := cb.ColorMap.At(lo)
		if err == nil {
			c.FillPolygon(col, []vg.Point{
				{X: c.Min.X, Y: c.Min.Y},
				{X: c.Max.X, Y: c.Min.Y},
				{X: xm, Y: c.Min.Y - h},
			})
		}
	}
	if cb.ExtendHigh {
		col, err := cb.ColorMap.At(hi)
		if err == nil {
			c.FillPolygon(col, []vg.Point{
				{X: c.Min.X, Y: c.Max.Y},
				{X: c.Max.X, Y: c.Max.Y},
				{X: xm, Y: c.Max.Y + h},
			})
		}
	}
}

// DataRange implements the plot.DataRanger interface. The x extent is a
// dummy unit span; the host plot hides its x axis.
func (cb *ColorBar) DataRange() (xmin, xmax, ymin, ymax float64) {
	return 0, 1, cb.ColorMap.Min(), cb.ColorMap.Max()
}
