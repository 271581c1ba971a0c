// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	mplhep "github.com/8me/mplhep"
	"github.com/8me/mplhep/hist"
)

// plotOpts holds the command-line flags for the plot command.
type plotOpts struct {
	output   string
	histtype string
	stack    bool
	density  bool
	binwnorm float64
	yerr     string
	flow     string
	sort     string
	xerr     bool
	binticks bool
	fitLeg   bool
	style    string
}

func newPlotCmd() *cobra.Command {
	opts := plotOpts{
		output:   "hist.png",
		histtype: "step",
		yerr:     "auto",
		flow:     "hint",
	}

	cmd := &cobra.Command{
		Use:   "plot [file]",
		Short: "Render a 1D histogram file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlot(cmd, args[0], &opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", opts.output, "output file (.png or .svg)")
	f.StringVarP(&opts.histtype, "histtype", "t", opts.histtype, "step, fill, band, or errorbar")
	f.BoolVar(&opts.stack, "stack", false, "stack the series in input order")
	f.BoolVar(&opts.density, "density", false, "normalize to a probability density")
	f.Float64Var(&opts.binwnorm, "binwnorm", 0, "bin-width normalization unit (0 disables)")
	f.StringVar(&opts.yerr, "yerr", opts.yerr, "vertical errors: auto, none, or a number")
	f.StringVar(&opts.flow, "flow", opts.flow, "out-of-range policy: none, hint, show, sum")
	f.StringVar(&opts.sort, "sort", "", "series order: label, yield, label_r, yield_r")
	f.BoolVar(&opts.xerr, "xerr", false, "draw bin-width bars in errorbar mode")
	f.BoolVar(&opts.binticks, "binticks", false, "place x ticks on bin edges")
	f.BoolVar(&opts.fitLeg, "fit-legend", false, "grow the y range until the legend fits")
	f.StringVar(&opts.style, "style", "", "TOML style file")

	return cmd
}

func runPlot(cmd *cobra.Command, path string, opts *plotOpts) error {
	lg := loggerFromContext(cmd.Context())

	in, err := LoadInput(path)
	if err != nil {
		return err
	}
	hs, err := in.Hists()
	if err != nil {
		return err
	}

	style := DefaultStyle()
	if opts.style != "" {
		if style, err = LoadStyle(opts.style); err != nil {
			return err
		}
	}

	plotOpts, err := buildHistOptions(opts, style, in, len(hs))
	if err != nil {
		return err
	}

	axOpts := append(style.AxesOptions(), mplhep.WithLogger(lg))
	ax := mplhep.NewAxes(axOpts...)
	if _, err := mplhep.HistPlot(ax, hs, plotOpts...); err != nil {
		return err
	}
	if opts.fitLeg {
		if err := ax.YScaleLegend(0, true); err != nil {
			return err
		}
	}

	if err := ax.Save(opts.output); err != nil {
		return err
	}
	lg.Info("wrote figure", "path", opts.output, "series", len(hs))
	return nil
}

func buildHistOptions(opts *plotOpts, style *Style, in *Input, n int) ([]mplhep.Option, error) {
	out, err := style.HistOptions(n)
	if err != nil {
		return nil, err
	}

	typ, err := mplhep.ParseHistType(opts.histtype)
	if err != nil {
		return nil, err
	}
	out = append(out, mplhep.WithType(typ))

	flow, err := hist.ParseFlowMode(opts.flow)
	if err != nil {
		return nil, err
	}
	out = append(out, mplhep.WithFlow(flow))

	yerr, err := parseYErr(opts.yerr)
	if err != nil {
		return nil, err
	}
	out = append(out, mplhep.WithYErr(yerr))

	if opts.stack {
		out = append(out, mplhep.WithStack())
	}
	if opts.density {
		out = append(out, mplhep.WithDensity())
	}
	if opts.binwnorm != 0 {
		out = append(out, mplhep.WithBinWNorm(opts.binwnorm))
	}
	if opts.sort != "" {
		out = append(out, mplhep.WithSortString(opts.sort))
	}
	if opts.xerr {
		out = append(out, mplhep.WithXErr())
	}
	if opts.binticks {
		out = append(out, mplhep.WithBinTicks())
	}
	if labels := in.Labels(); labels != nil {
		out = append(out, mplhep.WithLabels(labels...))
	}
	return out, nil
}

// parseYErr parses the --yerr flag: "auto", "none", or a scalar applied
// to every bin.
func parseYErr(s string) (hist.ErrorSpec, error) {
	switch s {
	case "auto", "":
		return hist.ErrAuto(), nil
	case "none":
		return hist.ErrNone(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return hist.ErrorSpec{}, err
	}
	return hist.ErrScalar(v), nil
}
