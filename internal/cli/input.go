// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/8me/mplhep/hist"
)

// SeriesInput is one 1D histogram series in an input file. Underflow
// and Overflow carry out-of-range content.
type SeriesInput struct {
	Label     string    `yaml:"label"`
	Values    []float64 `yaml:"values"`
	Variances []float64 `yaml:"variances"`
	Underflow float64   `yaml:"underflow"`
	Overflow  float64   `yaml:"overflow"`
}

// GridInput is a 2D histogram in an input file. Values are indexed
// [ix][iy]. Padded, when present, is the (nx+2)×(ny+2) matrix including
// flow rows and columns.
type GridInput struct {
	Values [][]float64 `yaml:"values"`
	Padded [][]float64 `yaml:"padded"`
	XEdges []float64   `yaml:"xedges"`
	YEdges []float64   `yaml:"yedges"`
}

// Input is the YAML document consumed by the plot commands: a shared
// set of bin edges with one or more series, or a single grid.
type Input struct {
	Title  string        `yaml:"title"`
	Edges  []float64     `yaml:"edges"`
	Series []SeriesInput `yaml:"series"`
	Grid   *GridInput    `yaml:"grid"`
}

// LoadInput reads and validates a histogram input file.
func LoadInput(path string) (*Input, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var in Input
	if err := yaml.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("cli: parsing %s: %w", path, err)
	}
	if len(in.Series) == 0 && in.Grid == nil {
		return nil, errors.New("cli: input needs series or a grid")
	}
	if len(in.Series) > 0 && len(in.Edges) == 0 {
		return nil, errors.New("cli: series input needs edges")
	}
	if in.Grid != nil && (len(in.Grid.XEdges) == 0 || len(in.Grid.YEdges) == 0) {
		return nil, errors.New("cli: grid input needs xedges and yedges")
	}
	return &in, nil
}

// Hists converts the 1D series into histogram sources.
func (in *Input) Hists() ([]hist.Hist, error) {
	if len(in.Series) == 0 {
		return nil, errors.New("cli: input has no series")
	}
	hs := make([]hist.Hist, len(in.Series))
	for i, s := range in.Series {
		if len(s.Values) != len(in.Edges)-1 {
			return nil, fmt.Errorf("cli: series %d has %d values for %d bins", i, len(s.Values), len(in.Edges)-1)
		}
		if s.Variances != nil && len(s.Variances) != len(s.Values) {
			return nil, fmt.Errorf("cli: series %d has %d variances for %d bins", i, len(s.Variances), len(s.Values))
		}
		if s.Underflow != 0 || s.Overflow != 0 {
			h := hist.NewFlowH1D(s.Values, in.Edges, s.Underflow, s.Overflow)
			h.Vars = s.Variances
			h.Ax.Name = in.Title
			hs[i] = h
		} else {
			h := hist.NewH1D(s.Values, in.Edges)
			h.Vars = s.Variances
			h.Ax.Name = in.Title
			hs[i] = h
		}
	}
	return hs, nil
}

// Labels returns the per-series legend labels, or nil when none are
// set.
func (in *Input) Labels() []string {
	any := false
	labels := make([]string, len(in.Series))
	for i, s := range in.Series {
		labels[i] = s.Label
		any = any || s.Label != ""
	}
	if !any {
		return nil
	}
	return labels
}

// Hist2D converts the grid into a 2D histogram source.
func (in *Input) Hist2D() (hist.Hist2D, error) {
	g := in.Grid
	if g == nil {
		return nil, errors.New("cli: input has no grid")
	}
	if g.Padded != nil {
		h := hist.NewFlowH2D(g.Padded, g.XEdges, g.YEdges)
		return h, nil
	}
	if len(g.Values) != len(g.XEdges)-1 {
		return nil, fmt.Errorf("cli: grid has %d columns for %d bins", len(g.Values), len(g.XEdges)-1)
	}
	return hist.NewH2D(g.Values, g.XEdges, g.YEdges), nil
}
