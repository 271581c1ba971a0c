// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mplhep

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot/vg"

	"github.com/8me/mplhep/hist"
)

// HistType selects how a 1D histogram series is rendered.
type HistType int

const (
	// TypeStep draws the skyline outline of the histogram.
	TypeStep HistType = iota

	// TypeFill draws the histogram as a filled skyline.
	TypeFill

	// TypeBand draws the error envelope around the bin values, used for
	// uncertainty bands around a nominal histogram.
	TypeBand

	// TypeErrorBar draws markers at the bin centers with error bars.
	TypeErrorBar
)

func (t HistType) String() string {
	switch t {
	case TypeStep:
		return "step"
	case TypeFill:
		return "fill"
	case TypeBand:
		return "band"
	case TypeErrorBar:
		return "errorbar"
	}
	return fmt.Sprintf("HistType(%d)", int(t))
}

// ParseHistType parses "step", "fill", "band", or "errorbar".
func ParseHistType(s string) (HistType, error) {
	switch s {
	case "step":
		return TypeStep, nil
	case "fill":
		return TypeFill, nil
	case "band":
		return TypeBand, nil
	case "errorbar":
		return TypeErrorBar, nil
	}
	return 0, fmt.Errorf("mplhep: histtype %q must be step, fill, band, or errorbar", s)
}

type histConfig struct {
	typ       HistType
	stack     bool
	density   bool
	binwnorm  float64
	hasBWNorm bool
	yerr      hist.ErrorSpec
	w2        [][]float64
	w2method  hist.IntervalMethod
	labels    []string
	sort      hist.SortSpec
	flow      hist.FlowMode
	xerr      bool
	edges     bool
	binticks  bool
	colors    Param[color.Color]
	lineWidth vg.Length
}

func defaultHistConfig() histConfig {
	return histConfig{
		typ:       TypeStep,
		yerr:      hist.ErrAuto(),
		flow:      hist.FlowHint,
		edges:     true,
		lineWidth: vg.Points(1.5),
	}
}

// Option adjusts a single HistPlot setting.
type Option func(*histConfig) error

// WithType selects the rendering style.
func WithType(t HistType) Option {
	return func(c *histConfig) error {
		if t < TypeStep || t > TypeErrorBar {
			return fmt.Errorf("mplhep: histtype %d must be step, fill, band, or errorbar", int(t))
		}
		c.typ = t
		return nil
	}
}

// WithStack stacks the series in input order, first at the bottom.
func WithStack() Option {
	return func(c *histConfig) error { c.stack = true; return nil }
}

// WithDensity rescales to a probability density integrating to one over
// the axis. Conflicts with WithBinWNorm.
func WithDensity() Option {
	return func(c *histConfig) error { c.density = true; return nil }
}

// WithBinWNorm rescales to bin-width-normalized counts with the given
// unit, usually 1. Conflicts with WithDensity.
func WithBinWNorm(norm float64) Option {
	return func(c *histConfig) error {
		c.binwnorm = norm
		c.hasBWNorm = true
		return nil
	}
}

// WithYErr overrides the vertical errors. The default derives them from
// the source variances; hist.ErrNone suppresses them.
func WithYErr(spec hist.ErrorSpec) Option {
	return func(c *histConfig) error { c.yerr = spec; return nil }
}

// WithW2 supplies per-series sum-of-weights-squared arrays used as
// variances. Conflicts with WithYErr.
func WithW2(w2 ...[]float64) Option {
	return func(c *histConfig) error { c.w2 = w2; return nil }
}

// WithW2Method selects the interval derived from w2 variances.
func WithW2Method(m hist.IntervalMethod) Option {
	return func(c *histConfig) error { c.w2method = m; return nil }
}

// WithLabels sets the legend labels. A single label applies to every
// series; otherwise one label per series is required.
func WithLabels(labels ...string) Option {
	return func(c *histConfig) error { c.labels = labels; return nil }
}

// WithSort reorders the series before stacking.
func WithSort(spec hist.SortSpec) Option {
	return func(c *histConfig) error { c.sort = spec; return nil }
}

// WithSortString parses a selector like "yield" or "label_r".
func WithSortString(s string) Option {
	return func(c *histConfig) error {
		spec, err := hist.ParseSortMode(s)
		if err != nil {
			return err
		}
		c.sort = spec
		return nil
	}
}

// WithFlow selects the out-of-range bin policy. The default hints at
// affected edges.
func WithFlow(mode hist.FlowMode) Option {
	return func(c *histConfig) error { c.flow = mode; return nil }
}

// WithXErr adds horizontal bars spanning the bin widths in errorbar
// mode.
func WithXErr() Option {
	return func(c *histConfig) error { c.xerr = true; return nil }
}

// WithoutEdges drops the outer vertical edges of step outlines.
func WithoutEdges() Option {
	return func(c *histConfig) error { c.edges = false; return nil }
}

// WithBinTicks places x ticks on bin edges.
func WithBinTicks() Option {
	return func(c *histConfig) error { c.binticks = true; return nil }
}

// WithColor applies series colors, either Const or PerSeries. The
// default cycles through the standard palette.
func WithColor(p Param[color.Color]) Option {
	return func(c *histConfig) error { c.colors = p; return nil }
}

// WithLineWidth sets the outline width.
func WithLineWidth(w vg.Length) Option {
	return func(c *histConfig) error { c.lineWidth = w; return nil }
}
