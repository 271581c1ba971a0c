// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mplhep

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/vg"

	"github.com/8me/mplhep/hist"
	"github.com/8me/mplhep/plotters"
)

type mesh2DConfig struct {
	cbar       bool
	cbarSize   SideSize
	cbarPad    SideSize
	cbarPos    Side
	cbarExtend bool
	cmin, cmax *float64
	flow       hist.FlowMode
	cmap       palette.ColorMap
	labelCells bool
	labels     [][]string
}

func defaultMesh2DConfig() mesh2DConfig {
	return mesh2DConfig{
		cbar:       true,
		cbarSize:   Percent(7),
		cbarPad:    Fixed(0.2 * vg.Inch),
		cbarPos:    SideRight,
		cbarExtend: true,
		flow:       hist.FlowHint,
		cmap:       moreland.SmoothBlueRed(),
	}
}

// Option2D adjusts a single Hist2DPlot setting.
type Option2D func(*mesh2DConfig) error

// WithColorMap replaces the default color map.
func WithColorMap(cmap palette.ColorMap) Option2D {
	return func(c *mesh2DConfig) error { c.cmap = cmap; return nil }
}

// WithoutColorBar drops the appended color bar.
func WithoutColorBar() Option2D {
	return func(c *mesh2DConfig) error { c.cbar = false; return nil }
}

// WithCBarSize sets the color bar width.
func WithCBarSize(size SideSize) Option2D {
	return func(c *mesh2DConfig) error { c.cbarSize = size; return nil }
}

// WithCBarPad sets the gap between the main axes and the color bar.
func WithCBarPad(pad SideSize) Option2D {
	return func(c *mesh2DConfig) error { c.cbarPad = pad; return nil }
}

// WithCBarPosition moves the color bar to another edge.
func WithCBarPosition(side Side) Option2D {
	return func(c *mesh2DConfig) error { c.cbarPos = side; return nil }
}

// WithCBarExtend controls whether the saved figure grows to fit the
// color bar, keeping the main axes aspect, or the main axes shrink.
func WithCBarExtend(extend bool) Option2D {
	return func(c *mesh2DConfig) error { c.cbarExtend = extend; return nil }
}

// WithCMin masks cells below the value and pins the color scale there.
func WithCMin(v float64) Option2D {
	return func(c *mesh2DConfig) error { c.cmin = &v; return nil }
}

// WithCMax masks cells above the value and pins the color scale there.
func WithCMax(v float64) Option2D {
	return func(c *mesh2DConfig) error { c.cmax = &v; return nil }
}

// WithCellLabels annotates each cell with its value.
func WithCellLabels() Option2D {
	return func(c *mesh2DConfig) error { c.labelCells = true; return nil }
}

// WithCellLabelStrings annotates cells with the given text, indexed
// [ix][iy] like the values. Empty strings skip cells.
func WithCellLabelStrings(labels [][]string) Option2D {
	return func(c *mesh2DConfig) error { c.labels = labels; return nil }
}

// WithFlow2D selects the out-of-range bin policy for both axes.
func WithFlow2D(mode hist.FlowMode) Option2D {
	return func(c *mesh2DConfig) error { c.flow = mode; return nil }
}

// MeshArtists bundles the plotters created by Hist2DPlot. ColorBar and
// ColorBarAxes are nil without a color bar, Hints without flow content.
type MeshArtists struct {
	Mesh         *plotters.ColorMesh
	ColorBar     *plotters.ColorBar
	ColorBarAxes *SideAxes
	Hints        *plotters.FlowHint2D
}

// Hist2DPlot draws a 2D histogram source as a color mesh with an
// appended color bar.
func Hist2DPlot(ax *Axes, h hist.Hist2D, opts ...Option2D) (*MeshArtists, error) {
	cfg := defaultMesh2DConfig()
	for _, o := range opts {
		if err := o(&cfg); err != nil {
			return nil, err
		}
	}

	g, err := hist.NormalizeGrid(h, cfg.flow, ax.Logger())
	if err != nil {
		return nil, err
	}

	rawLo, rawHi, any := g.MinMax()
	g.Mask(cfg.cmin, cfg.cmax)
	lo, hi, ok := g.MinMax()
	if !ok {
		lo, hi = 0, 1
	}
	if cfg.cmin != nil {
		lo = *cfg.cmin
	}
	if cfg.cmax != nil {
		hi = *cfg.cmax
	}
	if hi <= lo {
		hi = lo + 1
	}
	cmap := cfg.cmap
	cmap.SetMin(lo)
	cmap.SetMax(hi)

	mesh, err := plotters.NewColorMesh(g.XEdges, g.YEdges, g.Values, cmap)
	if err != nil {
		return nil, err
	}
	labels, err := cellLabels(&cfg, g)
	if err != nil {
		return nil, err
	}
	mesh.Labels = labels
	ax.Plot.Add(mesh)
	arts := &MeshArtists{Mesh: mesh}

	if g.XTitle != "" && ax.Plot.X.Label.Text == "" {
		ax.Plot.X.Label.Text = g.XTitle
	}
	if g.YTitle != "" && ax.Plot.Y.Label.Text == "" {
		ax.Plot.Y.Label.Text = g.YTitle
	}
	configureMeshTicks(&ax.Plot.X, g.XEdges, g.XCats)
	configureMeshTicks(&ax.Plot.Y, g.YEdges, g.YCats)

	if cfg.cbar {
		side := ax.AppendAxes(cfg.cbarPos, cfg.cbarSize, cfg.cbarPad, cfg.cbarExtend)
		cb := &plotters.ColorBar{
			ColorMap:   cmap,
			ExtendLow:  any && cfg.cmin != nil && rawLo < lo,
			ExtendHigh: any && cfg.cmax != nil && rawHi > hi,
		}
		side.Plot.HideX()
		side.Plot.Add(cb)
		arts.ColorBar = cb
		arts.ColorBarAxes = side
	}

	if hint := meshFlowHints(&cfg, g); hint != nil {
		ax.Plot.Add(hint)
		arts.Hints = hint
	}
	return arts, nil
}

func cellLabels(cfg *mesh2DConfig, g *hist.Grid2D) ([][]string, error) {
	if cfg.labels != nil {
		if len(cfg.labels) != g.NBinsX() {
			return nil, fmt.Errorf("mplhep: labels have incorrect shape: expect %d columns, got %d", g.NBinsX(), len(cfg.labels))
		}
		for i, col := range cfg.labels {
			if len(col) != g.NBinsY() {
				return nil, fmt.Errorf("mplhep: labels column %d has incorrect shape: expect %d, got %d", i, g.NBinsY(), len(col))
			}
		}
		return cfg.labels, nil
	}
	if !cfg.labelCells {
		return nil, nil
	}
	labels := make([][]string, len(g.Values))
	for ix, col := range g.Values {
		labels[ix] = make([]string, len(col))
		for iy, v := range col {
			if math.IsNaN(v) {
				continue
			}
			labels[ix][iy] = strconv.FormatFloat(v, 'g', 3, 64)
		}
	}
	return labels, nil
}

// configureMeshTicks pins ticks to bin edges when they are few enough,
// or to labeled centers for categorical axes.
func configureMeshTicks(axis *plot.Axis, edges []float64, cats []string) {
	if cats != nil {
		ticks := make([]plot.Tick, len(cats))
		for i, cat := range cats {
			ticks[i] = plot.Tick{Value: 0.5 * (edges[i] + edges[i+1]), Label: cat}
		}
		axis.Tick.Marker = plot.ConstantTicks(ticks)
		return
	}
	if len(edges) < 10 {
		ticks := make([]plot.Tick, len(edges))
		for i, e := range edges {
			ticks[i] = plot.Tick{Value: e, Label: formatTick(e)}
		}
		axis.Tick.Marker = plot.ConstantTicks(ticks)
	}
}

func meshFlowHints(cfg *mesh2DConfig, g *hist.Grid2D) *plotters.FlowHint2D {
	switch cfg.flow {
	case hist.FlowHint:
		if !(g.HintXLo || g.HintXHi || g.HintYLo || g.HintYHi) {
			return nil
		}
		h := plotters.NewFlowHint2D()
		h.XLo, h.XHi, h.YLo, h.YHi = g.HintXLo, g.HintXHi, g.HintYLo, g.HintYHi
		return h
	case hist.FlowShow:
		if !(g.ShownXLo || g.ShownXHi || g.ShownYLo || g.ShownYHi) {
			return nil
		}
		h := plotters.NewFlowHint2D()
		if g.ShownXLo {
			v := g.XEdges[1]
			h.SepXLo = &v
		}
		if g.ShownXHi {
			v := g.XEdges[len(g.XEdges)-2]
			h.SepXHi = &v
		}
		if g.ShownYLo {
			v := g.YEdges[1]
			h.SepYLo = &v
		}
		if g.ShownYHi {
			v := g.YEdges[len(g.YEdges)-2]
			h.SepYHi = &v
		}
		return h
	}
	return nil
}
