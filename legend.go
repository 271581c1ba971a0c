// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mplhep

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"github.com/8me/mplhep/plotters"
)

// rebuildLegend replaces the plot legend with the given entries,
// preserving its placement.
func (a *Axes) rebuildLegend(entries []legendEntry) {
	leg := plot.NewLegend()
	leg.Top, leg.Left = a.Plot.Legend.Top, a.Plot.Legend.Left
	leg.XOffs, leg.YOffs = a.Plot.Legend.XOffs, a.Plot.Legend.YOffs
	for _, e := range entries {
		leg.Add(e.label, e.thumb)
	}
	a.Plot.Legend = leg
	a.entries = entries
}

// lineThumb is a legend thumbnail drawn as a plain horizontal line,
// substituted for filled handles.
type lineThumb struct {
	sty draw.LineStyle
}

func (l lineThumb) Thumbnail(c *draw.Canvas) {
	y := 0.5 * (c.Min.Y + c.Max.Y)
	c.StrokeLine2(l.sty, c.Min.X, y, c.Max.X, y)
}

// HistLegend rebuilds the legend in reverse insertion order, so stacked
// series read top to bottom like the stack itself. Filled histogram
// handles are swapped for a line in the fill color.
func (a *Axes) HistLegend() {
	rev := make([]legendEntry, 0, len(a.entries))
	for i := len(a.entries) - 1; i >= 0; i-- {
		e := a.entries[i]
		if s, ok := e.thumb.(*plotters.Stairs); ok && s.FillColor != nil {
			sty := plotter.DefaultLineStyle
			sty.Color = s.FillColor
			e.thumb = lineThumb{sty: sty}
		}
		rev = append(rev, e)
	}
	a.rebuildLegend(rev)
}

// SortLegend reorders the legend to match the given label order and
// optionally renames the kept entries. Labels without an entry are
// skipped; entries not named in the order are dropped. A nil order
// keeps the current one.
func (a *Axes) SortLegend(order []string, rename map[string]string) {
	if order == nil {
		order = make([]string, len(a.entries))
		for i, e := range a.entries {
			order[i] = e.label
		}
	}
	byLabel := make(map[string]legendEntry, len(a.entries))
	for _, e := range a.entries {
		byLabel[e.label] = e
	}
	kept := make([]legendEntry, 0, len(order))
	for _, label := range order {
		e, ok := byLabel[label]
		if !ok {
			continue
		}
		if name, ok := rename[label]; ok {
			e.label = name
		}
		kept = append(kept, e)
	}
	a.rebuildLegend(kept)
}
