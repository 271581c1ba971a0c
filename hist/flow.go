// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import (
	"fmt"
)

// FlowMode selects how under/overflow content is handled when plotting.
type FlowMode int

const (
	// FlowNone drops flow content.
	FlowNone FlowMode = iota

	// FlowHint keeps the binning unchanged and flags sides with flow
	// content using edge markers.
	FlowHint

	// FlowShow appends synthetic extra bins holding the flow content.
	FlowShow

	// FlowSum folds flow content into the first/last bins.
	FlowSum
)

func (m FlowMode) String() string {
	switch m {
	case FlowNone:
		return "none"
	case FlowHint:
		return "hint"
	case FlowShow:
		return "show"
	case FlowSum:
		return "sum"
	}
	return fmt.Sprintf("FlowMode(%d)", int(m))
}

// ParseFlowMode converts a selector string into a FlowMode.
func ParseFlowMode(s string) (FlowMode, error) {
	switch s {
	case "none", "":
		return FlowNone, nil
	case "hint":
		return FlowHint, nil
	case "show":
		return FlowShow, nil
	case "sum":
		return FlowSum, nil
	}
	return FlowNone, fmt.Errorf("hist: flow must be one of none, hint, show, sum; got %q", s)
}

// FlowStyle identifies how a source exposes flow content. It is resolved
// once per source during normalization.
type FlowStyle int

const (
	// FlowUnsupported marks sources with no flow access at all.
	FlowUnsupported FlowStyle = iota

	// FlowByAccessor marks sources exposing a flow-aware value accessor
	// without per-side trait flags; both sides are assumed tracked when
	// the flow-padded slice is two entries longer.
	FlowByAccessor

	// FlowByTraits marks sources whose axis declares per-side
	// under/overflow availability alongside the accessor.
	FlowByTraits
)

// FlowContent is scalar under/overflow content extracted from a source.
type FlowContent struct {
	Underflow    float64
	Overflow     float64
	UnderflowVar float64
	OverflowVar  float64
}

// Any reports whether any flow content is present.
func (f FlowContent) Any() bool { return f.Underflow > 0 || f.Overflow > 0 }

// resolveFlow classifies the flow capability of a source and extracts its
// content. The classification is done here, once, so the rest of the
// pipeline never probes capabilities again.
func resolveFlow(h Hist) (FlowStyle, FlowContent) {
	fh, ok := h.(FlowHist)
	if !ok {
		return FlowUnsupported, FlowContent{}
	}
	vals := fh.FlowValues(true)
	if len(vals) != len(h.Values())+2 {
		return FlowUnsupported, FlowContent{}
	}
	vars := fh.FlowVariances(true)

	var fc FlowContent
	style := FlowByAccessor
	under, over := true, true
	if ta, ok := h.Axes()[0].(TraitAxis); ok {
		style = FlowByTraits
		under, over = ta.Underflow(), ta.Overflow()
	}
	if under {
		fc.Underflow = vals[0]
		if vars != nil {
			fc.UnderflowVar = vars[0]
		}
	}
	if over {
		fc.Overflow = vals[len(vals)-1]
		if vars != nil {
			fc.OverflowVar = vars[len(vars)-1]
		}
	}
	return style, fc
}

// applyFlow folds the resolved flow content into a plottable according to
// the mode. For FlowShow the synthetic bin width is
// max(5% of the axis range, mean bin width), appended only on sides with
// content, matching the visual convention for out-of-range bins.
func applyFlow(p *Plottable, fc FlowContent, mode FlowMode) {
	switch mode {
	case FlowSum:
		if fc.Underflow > 0 {
			p.Values[0] += fc.Underflow
			if p.Variances != nil {
				p.Variances[0] += fc.UnderflowVar
			}
		}
		if fc.Overflow > 0 {
			n := p.NBins()
			p.Values[n-1] += fc.Overflow
			if p.Variances != nil {
				p.Variances[n-1] += fc.OverflowVar
			}
		}
	case FlowShow:
		edges := p.Edges
		span := edges[len(edges)-1] - edges[0]
		mean := span / float64(len(edges)-1)
		size := 0.05 * span
		if mean > size {
			size = mean
		}
		if fc.Underflow > 0 {
			p.Edges = append([]float64{edges[0] - size}, p.Edges...)
			p.Values = append([]float64{fc.Underflow}, p.Values...)
			if p.Variances != nil {
				p.Variances = append([]float64{fc.UnderflowVar}, p.Variances...)
			}
		}
		if fc.Overflow > 0 {
			p.Edges = append(p.Edges, p.Edges[len(p.Edges)-1]+size)
			p.Values = append(p.Values, fc.Overflow)
			if p.Variances != nil {
				p.Variances = append(p.Variances, fc.OverflowVar)
			}
		}
	}
}
