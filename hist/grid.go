// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
)

// Grid2D is the canonical form of a 2D histogram: a dense value matrix
// indexed [ix][iy] with its bin edges and axis metadata. Hint flags mark
// the sides where flow content exists.
type Grid2D struct {
	Values [][]float64

	XEdges, YEdges []float64

	XCats, YCats []string

	XTitle, YTitle string

	// HintXLo, HintXHi, HintYLo, HintYHi flag the sides carrying
	// nonzero flow content under FlowHint and FlowShow.
	HintXLo, HintXHi, HintYLo, HintYHi bool

	// ShownXLo, ShownXHi, ShownYLo, ShownYHi record which synthetic
	// flow rows/columns were kept under FlowShow.
	ShownXLo, ShownXHi, ShownYLo, ShownYHi bool
}

// NBinsX returns the number of bins along x.
func (g *Grid2D) NBinsX() int { return len(g.XEdges) - 1 }

// NBinsY returns the number of bins along y.
func (g *Grid2D) NBinsY() int { return len(g.YEdges) - 1 }

// XCenters returns the bin centers along x.
func (g *Grid2D) XCenters() []float64 { return centers(g.XEdges) }

// YCenters returns the bin centers along y.
func (g *Grid2D) YCenters() []float64 { return centers(g.YEdges) }

func centers(edges []float64) []float64 {
	c := make([]float64, len(edges)-1)
	for i := range c {
		c[i] = 0.5 * (edges[i] + edges[i+1])
	}
	return c
}

// Mask replaces values outside [cmin, cmax] with NaN so the renderer
// skips them. Nil bounds are open.
func (g *Grid2D) Mask(cmin, cmax *float64) {
	for _, col := range g.Values {
		for j, v := range col {
			if cmin != nil && v < *cmin {
				col[j] = math.NaN()
			}
			if cmax != nil && v > *cmax {
				col[j] = math.NaN()
			}
		}
	}
}

// MinMax returns the finite extrema of the grid values; ok is false when
// every cell is masked.
func (g *Grid2D) MinMax() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, col := range g.Values {
		for _, v := range col {
			if math.IsNaN(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
			ok = true
		}
	}
	return lo, hi, ok
}

// NormalizeGrid coerces a 2D histogram source into a Grid2D and applies
// the flow policy. FlowHint and FlowShow trim all-zero flow rows/columns
// and pad the edges by 5% of the axis range on sides with content
// (FlowShow keeps the padded values, FlowHint only the flags); FlowSum
// folds flow content, corners included, into the nearest edge bins. When
// the source lacks flow access, the mode degrades to FlowNone with a
// warning.
func NormalizeGrid(h Hist2D, mode FlowMode, lg *log.Logger) (*Grid2D, error) {
	if lg == nil {
		lg = log.Default()
	}
	axes := h.Axes()
	if len(axes) != 2 {
		return nil, fmt.Errorf("hist: bins need to be 2 dimensional: source has %d axes", len(axes))
	}
	values := copy2D(h.Values2D())
	if len(values) == 0 {
		return nil, fmt.Errorf("hist: empty 2d histogram")
	}
	xedges, xcats, err := AxisBins(axes[0], len(values))
	if err != nil {
		return nil, err
	}
	yedges, ycats, err := AxisBins(axes[1], len(values[0]))
	if err != nil {
		return nil, err
	}
	for i, col := range values {
		if len(col) != len(yedges)-1 {
			return nil, fmt.Errorf("hist: 2d column %d bin count mismatch: expected %d, got %d", i, len(yedges)-1, len(col))
		}
	}

	g := &Grid2D{
		Values: values,
		XEdges: xedges,
		YEdges: yedges,
		XCats:  xcats,
		YCats:  ycats,
		XTitle: AxisTitle(axes[0]),
		YTitle: AxisTitle(axes[1]),
	}

	fh, canFlow := h.(FlowHist2D)
	if !canFlow && mode != FlowNone {
		lg.Warn("flow bins requested from a 2d source without flow support; disabling", "mode", mode.String())
		mode = FlowNone
	}

	switch mode {
	case FlowHint, FlowShow:
		applyFlow2D(g, fh.FlowValues2D(true), mode)
	case FlowSum:
		sumFlow2D(g, fh.FlowValues2D(true))
	}
	return g, nil
}

// applyFlow2D trims all-zero flow rows/columns from the padded matrix and
// records hint flags for the remaining sides. Under FlowShow the trimmed
// padded matrix and the padded edges replace the grid content.
func applyFlow2D(g *Grid2D, padded [][]float64, mode FlowMode) {
	padded = copy2D(padded)
	xw := 0.05 * (g.XEdges[len(g.XEdges)-1] - g.XEdges[0])
	yw := 0.05 * (g.YEdges[len(g.YEdges)-1] - g.YEdges[0])
	pxbins := make([]float64, 0, len(g.XEdges)+2)
	pxbins = append(pxbins, g.XEdges[0]-xw)
	pxbins = append(pxbins, g.XEdges...)
	pxbins = append(pxbins, g.XEdges[len(g.XEdges)-1]+xw)
	pybins := make([]float64, 0, len(g.YEdges)+2)
	pybins = append(pybins, g.YEdges[0]-yw)
	pybins = append(pybins, g.YEdges...)
	pybins = append(pybins, g.YEdges[len(g.YEdges)-1]+yw)

	xlo, xhi, ylo, yhi := true, true, true, true
	if allZeroRow(padded, 0) {
		padded = padded[1:]
		pxbins = pxbins[1:]
		xlo = false
	}
	if allZeroRow(padded, len(padded)-1) {
		padded = padded[:len(padded)-1]
		pxbins = pxbins[:len(pxbins)-1]
		xhi = false
	}
	if allZeroCol(padded, 0) {
		for i := range padded {
			padded[i] = padded[i][1:]
		}
		pybins = pybins[1:]
		ylo = false
	}
	if allZeroCol(padded, len(padded[0])-1) {
		for i := range padded {
			padded[i] = padded[i][:len(padded[i])-1]
		}
		pybins = pybins[:len(pybins)-1]
		yhi = false
	}

	g.HintXLo, g.HintXHi, g.HintYLo, g.HintYHi = xlo, xhi, ylo, yhi
	if mode == FlowShow {
		g.Values = padded
		g.XEdges = pxbins
		g.YEdges = pybins
		g.ShownXLo, g.ShownXHi, g.ShownYLo, g.ShownYHi = xlo, xhi, ylo, yhi
	}
}

// sumFlow2D folds the flow borders of the padded matrix into the edge
// bins and the corners into the corner bins.
func sumFlow2D(g *Grid2D, padded [][]float64) {
	nx := len(g.Values)
	ny := len(g.Values[0])
	for iy := 0; iy < ny; iy++ {
		g.Values[0][iy] += padded[0][iy+1]
		g.Values[nx-1][iy] += padded[nx+1][iy+1]
	}
	for ix := 0; ix < nx; ix++ {
		g.Values[ix][0] += padded[ix+1][0]
		g.Values[ix][ny-1] += padded[ix+1][ny+1]
	}
	g.Values[0][0] += padded[0][0]
	g.Values[nx-1][ny-1] += padded[nx+1][ny+1]
	g.Values[0][ny-1] += padded[0][ny+1]
	g.Values[nx-1][0] += padded[nx+1][0]
}

func copy2D(in [][]float64) [][]float64 {
	out := make([][]float64, len(in))
	for i, row := range in {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

func allZeroRow(m [][]float64, i int) bool {
	for _, v := range m[i] {
		if v != 0 {
			return false
		}
	}
	return true
}

func allZeroCol(m [][]float64, j int) bool {
	for i := range m {
		if m[i][j] != 0 {
			return false
		}
	}
	return true
}
