// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mplhep

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Side names the edge of the main data area a side axes attaches to.
type Side int

const (
	SideRight Side = iota
	SideLeft
	SideTop
	SideBottom
)

// ParseSide parses "right", "left", "top", or "bottom".
func ParseSide(s string) (Side, error) {
	switch s {
	case "right":
		return SideRight, nil
	case "left":
		return SideLeft, nil
	case "top":
		return SideTop, nil
	case "bottom":
		return SideBottom, nil
	}
	return 0, fmt.Errorf("mplhep: side %q must be right, left, top, or bottom", s)
}

// SideSize is the extent of an appended axes or its padding, either a
// percentage of the main axes extent or a fixed length.
type SideSize struct {
	pct    float64
	length vg.Length
	isPct  bool
}

// Percent sizes relative to the main axes extent in the attachment
// direction.
func Percent(p float64) SideSize { return SideSize{pct: p, isPct: true} }

// Fixed sizes by an absolute length.
func Fixed(l vg.Length) SideSize { return SideSize{length: l} }

func (s SideSize) resolve(base vg.Length) vg.Length {
	if s.isPct {
		return base * vg.Length(s.pct/100)
	}
	return s.length
}

// SideAxes is a plot attached to one edge of the main data area, used
// for color bars and ratio-style panels.
type SideAxes struct {
	Plot *plot.Plot

	side      Side
	size, pad SideSize
	extend    bool
}

// AppendAxes attaches a fresh side plot at the given edge. With extend
// set, the saved figure grows to accommodate it instead of shrinking
// the main axes.
func (a *Axes) AppendAxes(side Side, size, pad SideSize, extend bool) *SideAxes {
	s := &SideAxes{
		Plot:   plot.New(),
		side:   side,
		size:   size,
		pad:    pad,
		extend: extend,
	}
	a.sides = append(a.sides, s)
	return s
}

// SquareWithColorBar forces the figure square and appends a fixed-width
// axes to the right, sized for a color bar.
func (a *Axes) SquareWithColorBar() *SideAxes {
	if a.Width < a.Height {
		a.Height = a.Width
	} else {
		a.Width = a.Height
	}
	return a.AppendAxes(SideRight, Fixed(0.4*vg.Inch), Fixed(0.1*vg.Inch), false)
}

// partition splits the canvas rectangle into the main plot area and one
// rectangle per side axes, in registration order.
func (a *Axes) partition(r vg.Rectangle) (main vg.Rectangle, sides []vg.Rectangle) {
	main = r
	sides = make([]vg.Rectangle, len(a.sides))
	for i, s := range a.sides {
		var base vg.Length
		switch s.side {
		case SideLeft, SideRight:
			base = a.Width
		default:
			base = a.Height
		}
		size := s.size.resolve(base)
		pad := s.pad.resolve(base)

		switch s.side {
		case SideRight:
			sides[i] = vg.Rectangle{
				Min: vg.Point{X: main.Max.X - size, Y: main.Min.Y},
				Max: main.Max,
			}
			main.Max.X -= size + pad
		case SideLeft:
			sides[i] = vg.Rectangle{
				Min: main.Min,
				Max: vg.Point{X: main.Min.X + size, Y: main.Max.Y},
			}
			main.Min.X += size + pad
		case SideTop:
			sides[i] = vg.Rectangle{
				Min: vg.Point{X: main.Min.X, Y: main.Max.Y - size},
				Max: main.Max,
			}
			main.Max.Y -= size + pad
		case SideBottom:
			sides[i] = vg.Rectangle{
				Min: main.Min,
				Max: vg.Point{X: main.Max.X, Y: main.Min.Y + size},
			}
			main.Min.Y += size + pad
		}
	}
	return main, sides
}
