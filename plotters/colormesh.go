// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plotters

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ColorMesh renders a 2D histogram as a grid of bin-aligned colored
// cells. NaN cells are left unpainted, which is how out-of-range values
// are masked.
type ColorMesh struct {
	// XEdges, YEdges are the bin edges along each axis.
	XEdges, YEdges []float64

	// Values holds the cell contents indexed [ix][iy].
	Values [][]float64

	// ColorMap translates values to colors. Its Min and Max must be set
	// before drawing.
	ColorMap palette.ColorMap

	// Labels, when non-nil, is the per-cell annotation text indexed
	// like Values. Empty strings skip the cell.
	Labels [][]string

	// LabelFont sizes the cell annotations.
	LabelFont font.Font
}

// NewColorMesh returns a mesh over the given grid. Column lengths must
// all agree with YEdges.
func NewColorMesh(xEdges, yEdges []float64, values [][]float64, cmap palette.ColorMap) (*ColorMesh, error) {
	if len(values) != len(xEdges)-1 {
		return nil, fmt.Errorf("plotters: mesh needs %d columns, got %d", len(xEdges)-1, len(values))
	}
	for i, col := range values {
		if len(col) != len(yEdges)-1 {
			return nil, fmt.Errorf("plotters: mesh column %d needs %d cells, got %d", i, len(yEdges)-1, len(col))
		}
	}
	return &ColorMesh{
		XEdges:    xEdges,
		YEdges:    yEdges,
		Values:    values,
		ColorMap:  cmap,
		LabelFont: font.From(plotter.DefaultFont, plotter.DefaultFontSize),
	}, nil
}

func (m *ColorMesh) at(v float64) color.Color {
	// Clamp so values pinned to the map bounds by the caller's cmin and
	// cmax never error out of At.
	if v < m.ColorMap.Min() {
		v = m.ColorMap.Min()
	}
	if v > m.ColorMap.Max() {
		v = m.ColorMap.Max()
	}
	col, err := m.ColorMap.At(v)
	if err != nil {
		return color.Transparent
	}
	return col
}

// Plot implements the plot.Plotter interface.
func (m *ColorMesh) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)

	for ix, col := range m.Values {
		x0, x1 := trX(m.XEdges[ix]), trX(m.XEdges[ix+1])
		for iy, v := range col {
			if math.IsNaN(v) {
				continue
			}
			y0, y1 := trY(m.YEdges[iy]), trY(m.YEdges[iy+1])
			cell := []vg.Point{
				{X: x0, Y: y0},
				{X: x1, Y: y0},
				{X: x1, Y: y1},
				{X: x0, Y: y1},
			}
			fill := m.at(v)
			c.FillPolygon(fill, c.ClipPolygonXY(cell))

			if m.Labels != nil && m.Labels[ix][iy] != "" {
				pt := vg.Point{X: 0.5 * (x0 + x1), Y: 0.5 * (y0 + y1)}
				if !c.Contains(pt) {
					continue
				}
				sty := text.Style{
					Color:   ContrastColor(fill),
					Font:    m.LabelFont,
					XAlign:  draw.XCenter,
					YAlign:  draw.YCenter,
					Handler: plt.TextHandler,
				}
				c.FillText(sty, pt, m.Labels[ix][iy])
			}
		}
	}
}

// DataRange implements the plot.DataRanger interface.
func (m *ColorMesh) DataRange() (xmin, xmax, ymin, ymax float64) {
	return m.XEdges[0], m.XEdges[len(m.XEdges)-1], m.YEdges[0], m.YEdges[len(m.YEdges)-1]
}

// ContrastColor picks a readable annotation color for text drawn over
// the given background: black on light cells, light gray on dark ones.
func ContrastColor(bg color.Color) color.Color {
	cf, ok := colorful.MakeColor(bg)
	if !ok {
		return color.Black
	}
	l, _, _ := cf.Lab()
	if l > 0.5 {
		return color.Black
	}
	return color.Gray{Y: 0xd3} // lightgray
}
