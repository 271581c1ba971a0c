// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mplhep is a convenience layer for plotting binned physics
// data. It renders histogram-like sources as step outlines, filled
// stacks, error bands, point series, and 2D color meshes, with explicit
// handling of out-of-range (flow) content, and offers layout helpers
// for legends, anchored labels, and appended side axes such as color
// bars.
package mplhep

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Axes bundles a plot with the state the convenience layer tracks on
// top of it: figure size, data-space geometry of the drawn artists,
// legend entries, anchored texts, and appended side axes. All plotting
// functions take the Axes they draw on explicitly.
type Axes struct {
	// Plot is the underlying plot. Its axis ranges, labels, and tick
	// markers may be adjusted directly.
	Plot *plot.Plot

	// Width, Height give the nominal figure size, excluding appended
	// axes marked as extending.
	Width, Height vg.Length

	logY    bool
	logger  *log.Logger
	entries []legendEntry
	verts   []point
	texts   []*AnchoredText
	sides   []*SideAxes
}

type point struct{ X, Y float64 }

type legendEntry struct {
	label string
	thumb plot.Thumbnailer
}

// AxesOption adjusts a new Axes.
type AxesOption func(*Axes)

// WithSize sets the nominal figure size.
func WithSize(w, h vg.Length) AxesOption {
	return func(a *Axes) { a.Width, a.Height = w, h }
}

// WithLogY puts the y axis on a log scale.
func WithLogY() AxesOption {
	return func(a *Axes) { a.logY = true }
}

// WithLogger routes layer diagnostics to the given logger instead of
// the default one.
func WithLogger(lg *log.Logger) AxesOption {
	return func(a *Axes) { a.logger = lg }
}

// NewAxes returns an Axes around a fresh plot.
func NewAxes(opts ...AxesOption) *Axes {
	a := &Axes{
		Plot:   plot.New(),
		Width:  6.4 * vg.Inch,
		Height: 4.8 * vg.Inch,
	}
	a.Plot.Legend.Top = true
	for _, o := range opts {
		o(a)
	}
	if a.logY {
		a.Plot.Y.Scale = plot.LogScale{}
		a.Plot.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	return a
}

// LogY reports whether the y axis is log scaled.
func (a *Axes) LogY() bool { return a.logY }

// Logger returns the diagnostics logger.
func (a *Axes) Logger() *log.Logger {
	if a.logger == nil {
		return log.Default()
	}
	return a.logger
}

// AddLegend registers a legend entry and remembers it for layout
// queries and legend rebuilding.
func (a *Axes) AddLegend(label string, thumb plot.Thumbnailer) {
	a.Plot.Legend.Add(label, thumb)
	a.entries = append(a.entries, legendEntry{label: label, thumb: thumb})
}

// trackCurve records data-space vertices of a drawn artist. The layout
// helpers test them against legend and text boxes.
func (a *Axes) trackCurve(xs, ys []float64) {
	for i := range xs {
		a.verts = append(a.verts, point{X: xs[i], Y: ys[i]})
	}
}

// trackSteps records the corners of a step curve over the given edges.
func (a *Axes) trackSteps(edges, values []float64) {
	for i, v := range values {
		a.verts = append(a.verts, point{X: edges[i], Y: v}, point{X: edges[i+1], Y: v})
	}
}

// AnchoredText is a label pinned to a fraction-coordinate anchor of the
// data area, (0, 1) being the upper left corner.
type AnchoredText struct {
	Text string
	X, Y float64
}

// AddText anchors a text at the given data-area fractions. The text is
// drawn with its upper left corner at the anchor.
func (a *Axes) AddText(s string, x, y float64) *AnchoredText {
	t := &AnchoredText{Text: s, X: x, Y: y}
	a.texts = append(a.texts, t)
	return t
}

// Draw renders the main plot, the appended side axes, and the anchored
// texts onto the canvas.
func (a *Axes) Draw(dc draw.Canvas) {
	main, sideRects := a.partition(dc.Rectangle)
	mc := draw.Canvas{Canvas: dc.Canvas, Rectangle: main}
	a.Plot.Draw(mc)
	for i, s := range a.sides {
		s.Plot.Draw(draw.Canvas{Canvas: dc.Canvas, Rectangle: sideRects[i]})
	}

	if len(a.texts) == 0 {
		return
	}
	dataC := a.Plot.DataCanvas(mc)
	sty := a.Plot.Legend.TextStyle
	sty.XAlign = draw.XLeft
	sty.YAlign = draw.YTop
	for _, t := range a.texts {
		pt := vg.Point{
			X: dataC.Min.X + vg.Length(t.X)*(dataC.Max.X-dataC.Min.X),
			Y: dataC.Min.Y + vg.Length(t.Y)*(dataC.Max.Y-dataC.Min.Y),
		}
		dataC.FillText(sty, pt, t.Text)
	}
}

// figureSize returns the full canvas size: the nominal size grown by
// the extending side axes.
func (a *Axes) figureSize() (w, h vg.Length) {
	w, h = a.Width, a.Height
	for _, s := range a.sides {
		if !s.extend {
			continue
		}
		switch s.side {
		case SideLeft, SideRight:
			w += s.size.resolve(a.Width) + s.pad.resolve(a.Width)
		case SideTop, SideBottom:
			h += s.size.resolve(a.Height) + s.pad.resolve(a.Height)
		}
	}
	return w, h
}

// Save renders the figure to a file, with the format chosen by the
// extension: .png or .svg.
func (a *Axes) Save(path string) error {
	ext := filepath.Ext(path)
	switch ext {
	case ".png", ".svg":
	default:
		return fmt.Errorf("mplhep: unsupported figure format %q", ext)
	}

	w, h := a.figureSize()
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch ext {
	case ".png":
		c := vgimg.New(w, h)
		a.Draw(draw.New(c))
		_, err = vgimg.PngCanvas{Canvas: c}.WriteTo(f)
	case ".svg":
		c := vgsvg.New(w, h)
		a.Draw(draw.New(c))
		_, err = c.WriteTo(f)
	}
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
