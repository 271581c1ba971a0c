// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// IntervalMethod selects how per-bin uncertainties are derived from
// variances.
type IntervalMethod int

const (
	// IntervalAuto uses a Poisson (Garwood) interval when the effective
	// entries are integral, symmetric sqrt(variance) otherwise.
	IntervalAuto IntervalMethod = iota

	// IntervalSqrt forces symmetric sqrt(variance) errors.
	IntervalSqrt

	// IntervalPoisson forces the Garwood Poisson interval, scaled for
	// weighted bins.
	IntervalPoisson
)

// Plottable is the canonical in-memory histogram representation: bin
// edges, values, and optional variances, plus the state accumulated by
// the plotting pipeline (stack baseline, fixed errors, normalization).
type Plottable struct {
	// Edges are the N+1 bin edges, strictly increasing.
	Edges []float64

	// Values are the N per-bin values. After stacking they remain the
	// per-series increment; the cumulative lower bound is in Baseline.
	Values []float64

	// Variances are the N per-bin variances, or nil if unknown.
	Variances []float64

	// Baseline is the stacking lower bound per bin; nil means zero.
	Baseline []float64

	// Method selects the uncertainty interval derived from Variances.
	Method IntervalMethod

	// Density records that the values were rescaled to a probability
	// density.
	Density bool

	Label string

	errLo, errHi []float64 // fixed error magnitudes, set by FixedErrors
}

// NewPlottable validates and builds a Plottable from edges, values, and
// optional variances.
func NewPlottable(values, edges, variances []float64) (*Plottable, error) {
	if len(edges) != len(values)+1 {
		return nil, fmt.Errorf("hist: edges/values length mismatch: expected %d edges, got %d", len(values)+1, len(edges))
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			return nil, fmt.Errorf("hist: edges must be strictly increasing at index %d: %v >= %v", i-1, edges[i-1], edges[i])
		}
	}
	if variances != nil && len(variances) != len(values) {
		return nil, fmt.Errorf("hist: variances length mismatch: expected %d, got %d", len(values), len(variances))
	}
	return &Plottable{
		Edges:     append([]float64(nil), edges...),
		Values:    append([]float64(nil), values...),
		Variances: append([]float64(nil), variances...),
	}, nil
}

// NBins returns the number of bins.
func (p *Plottable) NBins() int { return len(p.Values) }

// Centers returns the bin centers.
func (p *Plottable) Centers() []float64 {
	c := make([]float64, p.NBins())
	for i := range c {
		c[i] = 0.5 * (p.Edges[i] + p.Edges[i+1])
	}
	return c
}

// Widths returns the bin widths.
func (p *Plottable) Widths() []float64 {
	w := make([]float64, p.NBins())
	for i := range w {
		w[i] = p.Edges[i+1] - p.Edges[i]
	}
	return w
}

// Sum returns the total content.
func (p *Plottable) Sum() float64 { return floats.Sum(p.Values) }

// FixedErrors attaches externally supplied error magnitudes, overriding
// any variance-derived interval.
func (p *Plottable) FixedErrors(lo, hi []float64) error {
	if len(lo) != p.NBins() || len(hi) != p.NBins() {
		return fmt.Errorf("hist: fixed errors length mismatch: expected %d, got (%d, %d)", p.NBins(), len(lo), len(hi))
	}
	p.errLo = append([]float64(nil), lo...)
	p.errHi = append([]float64(nil), hi...)
	return nil
}

// HasErrors reports whether error content is available, either fixed or
// derivable from variances.
func (p *Plottable) HasErrors() bool {
	return p.errLo != nil || p.Variances != nil
}

// Errors returns per-bin error magnitudes below and above the value.
// Fixed errors take precedence; otherwise they are derived from the
// variances using Method. Both slices are nil when no error content
// exists.
func (p *Plottable) Errors() (lo, hi []float64) {
	if p.errLo != nil {
		return p.errLo, p.errHi
	}
	if p.Variances == nil {
		return nil, nil
	}
	n := p.NBins()
	lo = make([]float64, n)
	hi = make([]float64, n)
	for i := 0; i < n; i++ {
		l, h := interval(p.Values[i], p.Variances[i], p.Method)
		lo[i], hi[i] = l, h
	}
	return lo, hi
}

// FlatScale multiplies values, baseline, variances, and fixed errors by a
// constant factor.
func (p *Plottable) FlatScale(f float64) {
	floats.Scale(f, p.Values)
	if p.Baseline != nil {
		floats.Scale(f, p.Baseline)
	}
	if p.Variances != nil {
		floats.Scale(f*f, p.Variances)
	}
	if p.errLo != nil {
		floats.Scale(f, p.errLo)
		floats.Scale(f, p.errHi)
	}
}

// BinWNorm rescales each bin by norm divided by its width.
func (p *Plottable) BinWNorm(norm float64) {
	w := p.Widths()
	for i := range p.Values {
		f := norm / w[i]
		p.Values[i] *= f
		if p.Variances != nil {
			p.Variances[i] *= f * f
		}
		if p.errLo != nil {
			p.errLo[i] *= f
			p.errHi[i] *= f
		}
	}
}

// ToDensity rescales the values to a probability density, so that the
// integral over the axis is 1.
func (p *Plottable) ToDensity() {
	if total := p.Sum(); total != 0 {
		p.FlatScale(1 / total)
	}
	p.BinWNorm(1)
	p.Density = true
}

// Tops returns Baseline+Values, the upper step curve of the series.
func (p *Plottable) Tops() []float64 {
	tops := append([]float64(nil), p.Values...)
	if p.Baseline != nil {
		floats.Add(tops, p.Baseline)
	}
	return tops
}

// StairsView is the input for step/fill rendering.
type StairsView struct {
	Edges    []float64
	Values   []float64
	Baseline []float64 // nil means zero
}

// Stairs returns the step-curve view of the series.
func (p *Plottable) Stairs() StairsView {
	return StairsView{Edges: p.Edges, Values: p.Tops(), Baseline: p.Baseline}
}

// BandView is the input for error-band rendering.
type BandView struct {
	Edges  []float64
	Lo, Hi []float64
}

// StairBand returns the error-envelope view of the series. Without error
// content both bounds collapse onto the values.
func (p *Plottable) StairBand() BandView {
	tops := p.Tops()
	lo, hi := p.Errors()
	blo := append([]float64(nil), tops...)
	bhi := append([]float64(nil), tops...)
	if lo != nil {
		floats.Sub(blo, lo)
		floats.Add(bhi, hi)
	}
	return BandView{Edges: p.Edges, Lo: blo, Hi: bhi}
}

// ErrorBarView is the input for point-with-errorbar rendering.
type ErrorBarView struct {
	X, Y      []float64
	YLo, YHi  []float64 // magnitudes; nil when no error content
	BinWidths []float64
}

// ErrorBar returns the point view of the series, positioned at bin
// centers and stacked tops.
func (p *Plottable) ErrorBar() ErrorBarView {
	lo, hi := p.Errors()
	return ErrorBarView{
		X:         p.Centers(),
		Y:         p.Tops(),
		YLo:       lo,
		YHi:       hi,
		BinWidths: p.Widths(),
	}
}

// interval returns error magnitudes below/above value for one bin.
func interval(value, variance float64, m IntervalMethod) (lo, hi float64) {
	switch m {
	case IntervalSqrt:
		s := math.Sqrt(variance)
		return s, s
	case IntervalPoisson:
		return poissonInterval(value, variance)
	default:
		// Integral effective entries are treated as counts.
		if variance > 0 && value >= 0 && value == math.Trunc(value) && variance == math.Trunc(variance) {
			return poissonInterval(value, variance)
		}
		s := math.Sqrt(variance)
		return s, s
	}
}

// oneSigma is the central confidence level of a 1-sigma interval.
const oneSigma = 0.682689492137086

// poissonInterval returns the Garwood interval magnitudes for a bin with
// the given content and variance. Weighted bins are handled by the scaled
// Poisson approximation: the interval is computed for the effective count
// n = value^2/variance and scaled back.
func poissonInterval(value, variance float64) (lo, hi float64) {
	if value < 0 {
		return 0, 0
	}
	scale := 1.0
	n := value
	if variance > 0 && value > 0 {
		scale = variance / value
		n = value * value / variance
	}
	alpha := 1 - oneSigma
	var low float64
	if n > 0 {
		low = 0.5 * distuv.ChiSquared{K: 2 * n}.Quantile(alpha/2)
	}
	high := 0.5 * distuv.ChiSquared{K: 2 * (n + 1)}.Quantile(1-alpha/2)
	return value - scale*low, scale*high - value
}
