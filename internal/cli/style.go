// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"image/color"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	toml "github.com/pelletier/go-toml/v2"
	"gonum.org/v1/plot/vg"

	mplhep "github.com/8me/mplhep"
)

// Style is the optional TOML figure configuration.
type Style struct {
	// Width, Height give the figure size in inches.
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`

	// LogY puts the y axis on a log scale.
	LogY bool `toml:"logy"`

	// LineWidth is the outline width in points.
	LineWidth float64 `toml:"linewidth"`

	// Colors is the series color cycle as hex strings like "#1f77b4".
	Colors []string `toml:"colors"`
}

// DefaultStyle returns the built-in figure style.
func DefaultStyle() *Style {
	return &Style{Width: 6.4, Height: 4.8, LineWidth: 1.5}
}

// LoadStyle reads a TOML style file, filling unset fields from the
// default style.
func LoadStyle(path string) (*Style, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := DefaultStyle()
	if err := toml.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("cli: parsing %s: %w", path, err)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("cli: style %s has non-positive figure size", path)
	}
	return s, nil
}

// AxesOptions translates the style into axes options.
func (s *Style) AxesOptions() []mplhep.AxesOption {
	opts := []mplhep.AxesOption{
		mplhep.WithSize(vg.Length(s.Width)*vg.Inch, vg.Length(s.Height)*vg.Inch),
	}
	if s.LogY {
		opts = append(opts, mplhep.WithLogY())
	}
	return opts
}

// HistOptions translates the style into 1D plot options for n series.
// The color cycle wraps around when shorter than n.
func (s *Style) HistOptions(n int) ([]mplhep.Option, error) {
	var opts []mplhep.Option
	if s.LineWidth > 0 {
		opts = append(opts, mplhep.WithLineWidth(vg.Points(s.LineWidth)))
	}
	if len(s.Colors) > 0 {
		cols := make([]color.Color, n)
		for i := range cols {
			hex := s.Colors[i%len(s.Colors)]
			c, err := colorful.Hex(hex)
			if err != nil {
				return nil, fmt.Errorf("cli: color %q: %w", hex, err)
			}
			cols[i] = c
		}
		opts = append(opts, mplhep.WithColor(mplhep.PerSeries(cols...)))
	}
	return opts, nil
}
