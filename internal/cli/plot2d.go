// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	mplhep "github.com/8me/mplhep"
	"github.com/8me/mplhep/hist"
)

// plot2DOpts holds the command-line flags for the plot2d command.
type plot2DOpts struct {
	output   string
	noCBar   bool
	cbarSize string
	cbarPad  string
	cbarPos  string
	cmin     float64
	cmax     float64
	labels   bool
	flow     string
	style    string
}

func newPlot2DCmd() *cobra.Command {
	opts := plot2DOpts{
		output:   "hist2d.png",
		cbarSize: "7%",
		cbarPad:  "0.2in",
		cbarPos:  "right",
		cmin:     math.NaN(),
		cmax:     math.NaN(),
		flow:     "hint",
	}

	cmd := &cobra.Command{
		Use:   "plot2d [file]",
		Short: "Render a 2D histogram file as a color mesh",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlot2D(cmd, args[0], &opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", opts.output, "output file (.png or .svg)")
	f.BoolVar(&opts.noCBar, "no-cbar", false, "drop the color bar")
	f.StringVar(&opts.cbarSize, "cbar-size", opts.cbarSize, "color bar width, like 7% or 0.4in")
	f.StringVar(&opts.cbarPad, "cbar-pad", opts.cbarPad, "gap to the color bar, like 5% or 0.2in")
	f.StringVar(&opts.cbarPos, "cbar-pos", opts.cbarPos, "color bar edge: right, left, top, bottom")
	f.Float64Var(&opts.cmin, "cmin", opts.cmin, "mask cells below this value")
	f.Float64Var(&opts.cmax, "cmax", opts.cmax, "mask cells above this value")
	f.BoolVar(&opts.labels, "labels", false, "annotate cells with their values")
	f.StringVar(&opts.flow, "flow", opts.flow, "out-of-range policy: none, hint, show, sum")
	f.StringVar(&opts.style, "style", "", "TOML style file")

	return cmd
}

func runPlot2D(cmd *cobra.Command, path string, opts *plot2DOpts) error {
	lg := loggerFromContext(cmd.Context())

	in, err := LoadInput(path)
	if err != nil {
		return err
	}
	h, err := in.Hist2D()
	if err != nil {
		return err
	}

	style := DefaultStyle()
	if opts.style != "" {
		if style, err = LoadStyle(opts.style); err != nil {
			return err
		}
	}

	plotOpts, err := build2DOptions(opts)
	if err != nil {
		return err
	}

	axOpts := append(style.AxesOptions(), mplhep.WithLogger(lg))
	ax := mplhep.NewAxes(axOpts...)
	if _, err := mplhep.Hist2DPlot(ax, h, plotOpts...); err != nil {
		return err
	}

	if err := ax.Save(opts.output); err != nil {
		return err
	}
	lg.Info("wrote figure", "path", opts.output)
	return nil
}

func build2DOptions(opts *plot2DOpts) ([]mplhep.Option2D, error) {
	var out []mplhep.Option2D

	flow, err := hist.ParseFlowMode(opts.flow)
	if err != nil {
		return nil, err
	}
	out = append(out, mplhep.WithFlow2D(flow))

	if opts.noCBar {
		out = append(out, mplhep.WithoutColorBar())
	} else {
		size, err := parseSideSize(opts.cbarSize)
		if err != nil {
			return nil, err
		}
		pad, err := parseSideSize(opts.cbarPad)
		if err != nil {
			return nil, err
		}
		pos, err := mplhep.ParseSide(opts.cbarPos)
		if err != nil {
			return nil, err
		}
		out = append(out,
			mplhep.WithCBarSize(size),
			mplhep.WithCBarPad(pad),
			mplhep.WithCBarPosition(pos),
		)
	}

	if !math.IsNaN(opts.cmin) {
		out = append(out, mplhep.WithCMin(opts.cmin))
	}
	if !math.IsNaN(opts.cmax) {
		out = append(out, mplhep.WithCMax(opts.cmax))
	}
	if opts.labels {
		out = append(out, mplhep.WithCellLabels())
	}
	return out, nil
}

// parseSideSize parses appended-axes extents: a percentage of the main
// axes like "7%", inches like "0.4in", or bare points.
func parseSideSize(s string) (mplhep.SideSize, error) {
	switch {
	case strings.HasSuffix(s, "%"):
		p, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return mplhep.SideSize{}, fmt.Errorf("cli: size %q: %w", s, err)
		}
		return mplhep.Percent(p), nil
	case strings.HasSuffix(s, "in"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "in"), 64)
		if err != nil {
			return mplhep.SideSize{}, fmt.Errorf("cli: size %q: %w", s, err)
		}
		return mplhep.Fixed(vg.Length(v) * vg.Inch), nil
	default:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return mplhep.SideSize{}, fmt.Errorf("cli: size %q: %w", s, err)
		}
		return mplhep.Fixed(vg.Points(v)), nil
	}
}
