// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mplhep

import (
	"math"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// yScaleFactor is the per-iteration growth of the y range when making
// room for a legend or anchored text: 5% on a linear axis, a bit over a
// decade on a log axis.
func (a *Axes) yScaleFactor() float64 {
	if a.logY {
		return math.Pow(10, 1.05)
	}
	return 1.05
}

// layoutCanvas is a geometry-only canvas at the nominal main-plot size.
// It is never drawn on; it only anchors coordinate transforms.
func (a *Axes) layoutCanvas() draw.Canvas {
	main, _ := a.partition(vg.Rectangle{Max: vg.Point{X: a.Width, Y: a.Height}})
	return draw.Canvas{Rectangle: main}
}

// legendBox estimates the legend rectangle in canvas coordinates,
// anchored like the legend itself at a corner of the data area.
func (a *Axes) legendBox(dataC draw.Canvas) (vg.Rectangle, bool) {
	if len(a.entries) == 0 {
		return vg.Rectangle{}, false
	}
	leg := &a.Plot.Legend
	var w, h vg.Length
	for _, e := range a.entries {
		if tw := leg.TextStyle.Width(e.label); tw > w {
			w = tw
		}
		h += leg.TextStyle.Height(e.label) + leg.Padding
	}
	w += leg.ThumbnailWidth + leg.Padding

	var box vg.Rectangle
	if leg.Left {
		box.Min.X = dataC.Min.X + leg.XOffs
		box.Max.X = box.Min.X + w
	} else {
		box.Max.X = dataC.Max.X + leg.XOffs
		box.Min.X = box.Max.X - w
	}
	if leg.Top {
		box.Max.Y = dataC.Max.Y + leg.YOffs
		box.Min.Y = box.Max.Y - h
	} else {
		box.Min.Y = dataC.Min.Y + leg.YOffs
		box.Max.Y = box.Min.Y + h
	}
	return box, true
}

// textBox estimates an anchored text rectangle in canvas coordinates.
func (a *Axes) textBox(t *AnchoredText, dataC draw.Canvas) vg.Rectangle {
	sty := a.Plot.Legend.TextStyle
	w := sty.Width(t.Text)
	h := sty.Height(t.Text)
	x := dataC.Min.X + vg.Length(t.X)*(dataC.Max.X-dataC.Min.X)
	y := dataC.Min.Y + vg.Length(t.Y)*(dataC.Max.Y-dataC.Min.Y)
	return vg.Rectangle{
		Min: vg.Point{X: x, Y: y - h},
		Max: vg.Point{X: x + w, Y: y},
	}
}

// overlapCount counts tracked artist vertices falling inside the box.
func (a *Axes) overlapCount(box vg.Rectangle, dataC draw.Canvas) int {
	trX, trY := a.Plot.Transforms(&dataC)
	n := 0
	for _, p := range a.verts {
		pt := vg.Point{X: trX(p.X), Y: trY(p.Y)}
		if pt.X >= box.Min.X && pt.X <= box.Max.X && pt.Y >= box.Min.Y && pt.Y <= box.Max.Y {
			n++
		}
	}
	return n
}

// YScaleLegend grows the y range until no more than otol artist
// vertices fall under the legend, giving up after 10 iterations: an
// error by default, a logged warning with softFail.
func (a *Axes) YScaleLegend(otol int, softFail bool) error {
	return a.fitY(otol, softFail, "legend", func(dataC draw.Canvas) int {
		box, ok := a.legendBox(dataC)
		if !ok {
			return 0
		}
		return a.overlapCount(box, dataC)
	})
}

// YScaleText grows the y range until no more than otol artist vertices
// fall under any anchored text, with the same giving-up behavior as
// YScaleLegend.
func (a *Axes) YScaleText(otol int, softFail bool) error {
	return a.fitY(otol, softFail, "anchored text", func(dataC draw.Canvas) int {
		n := 0
		for _, t := range a.texts {
			n += a.overlapCount(a.textBox(t, dataC), dataC)
		}
		return n
	})
}

func (a *Axes) fitY(otol int, softFail bool, what string, count func(draw.Canvas) int) error {
	factor := a.yScaleFactor()
	mc := a.layoutCanvas()
	for i := 0; ; i++ {
		dataC := a.Plot.DataCanvas(mc)
		n := count(dataC)
		if n <= otol {
			return nil
		}
		if i >= 10 {
			if softFail {
				a.Logger().Warn("could not fit in 10 iterations", "target", what)
				return nil
			}
			return ErrCannotFit
		}
		a.Logger().Debug("scaling y-axis to fit", "target", what, "overlap", n)
		a.Plot.Y.Max *= factor
	}
}

// YLow anchors the lower y limit when the axis is linear, keeping
// elements that extend below the limit in view. Log axes are left
// alone.
func (a *Axes) YLow(v float64) {
	if a.logY {
		return
	}
	lo := v
	for _, p := range a.verts {
		if p.Y < lo {
			lo = p.Y
		}
	}
	if lo < v && a.Plot.Y.Min < lo {
		lo = a.Plot.Y.Min
	}
	a.Plot.Y.Min = lo
}

// AutoStyle applies the usual post-draw adjustments in one call: the y
// range is anchored at zero, then grown until the legend and any
// anchored texts no longer cover the data.
func (a *Axes) AutoStyle() error {
	a.YLow(0)
	if err := a.YScaleLegend(0, false); err != nil {
		return err
	}
	return a.YScaleText(0, false)
}
