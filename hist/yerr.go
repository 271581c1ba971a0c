// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import (
	"fmt"
)

// errKind tags the supported external error inputs.
type errKind int

const (
	errAuto errKind = iota // derive from variances when available
	errNone
	errScalar
	err1D
	err2D
	err3D
)

// ErrorSpec is an externally supplied error specification. The zero value
// derives errors from variances when the source tracks them.
type ErrorSpec struct {
	kind   errKind
	scalar float64
	arr1   []float64
	arr2   [][]float64
	arr3   [][][]float64
}

// ErrAuto derives errors from variances (the default).
func ErrAuto() ErrorSpec { return ErrorSpec{kind: errAuto} }

// ErrNone suppresses error rendering entirely.
func ErrNone() ErrorSpec { return ErrorSpec{kind: errNone} }

// ErrScalar broadcasts one symmetric error magnitude to every bin of
// every series.
func ErrScalar(v float64) ErrorSpec { return ErrorSpec{kind: errScalar, scalar: v} }

// ErrValues broadcasts one per-bin error array symmetrically to all
// series.
func ErrValues(v []float64) ErrorSpec { return ErrorSpec{kind: err1D, arr1: v} }

// Err2D supplies either a two-sided (2, nbins) error for a single series
// or a per-series symmetric (nseries, nbins) error.
func Err2D(v [][]float64) ErrorSpec { return ErrorSpec{kind: err2D, arr2: v} }

// Err3D supplies the full (nseries, 2, nbins) two-sided error structure.
func Err3D(v [][][]float64) ErrorSpec { return ErrorSpec{kind: err3D, arr3: v} }

// IsAuto reports whether errors defer to the source variances.
func (e ErrorSpec) IsAuto() bool { return e.kind == errAuto }

// IsNone reports whether error rendering is suppressed.
func (e ErrorSpec) IsNone() bool { return e.kind == errNone }

// SeriesErrors is the broadcast result: per series, lower and upper
// error magnitudes per bin.
type SeriesErrors struct {
	Lo, Hi []float64
}

// Broadcast expands the error specification to one two-sided error per series:
//
//   - scalar: both sides of every bin of every series
//   - 1D (nbins): symmetric, tiled to all series
//   - 2D (2, nbins) with one series: two-sided as given
//   - 2D (1, nbins) with one series: symmetric
//   - 2D (nseries, nbins): symmetric per series
//   - 3D (nseries, 2, nbins): taken as-is
//
// Anything else is rejected naming the expected and actual shapes.
// Auto and none specs return nil.
func (e ErrorSpec) Broadcast(nseries, nbins int) ([]SeriesErrors, error) {
	switch e.kind {
	case errAuto, errNone:
		return nil, nil

	case errScalar:
		out := make([]SeriesErrors, nseries)
		for i := range out {
			lo := make([]float64, nbins)
			hi := make([]float64, nbins)
			for j := range lo {
				lo[j], hi[j] = e.scalar, e.scalar
			}
			out[i] = SeriesErrors{Lo: lo, Hi: hi}
		}
		return out, nil

	case err1D:
		if len(e.arr1) != nbins {
			return nil, fmt.Errorf("hist: yerr shape not understood: expected %d bins, got %d", nbins, len(e.arr1))
		}
		out := make([]SeriesErrors, nseries)
		for i := range out {
			out[i] = SeriesErrors{
				Lo: append([]float64(nil), e.arr1...),
				Hi: append([]float64(nil), e.arr1...),
			}
		}
		return out, nil

	case err2D:
		for i, row := range e.arr2 {
			if len(row) != nbins {
				return nil, fmt.Errorf("hist: yerr shape not understood: row %d has %d bins, expected %d", i, len(row), nbins)
			}
		}
		if nseries == 1 {
			switch len(e.arr2) {
			case 2:
				return []SeriesErrors{{
					Lo: append([]float64(nil), e.arr2[0]...),
					Hi: append([]float64(nil), e.arr2[1]...),
				}}, nil
			case 1:
				return []SeriesErrors{{
					Lo: append([]float64(nil), e.arr2[0]...),
					Hi: append([]float64(nil), e.arr2[0]...),
				}}, nil
			default:
				return nil, fmt.Errorf("hist: yerr shape not understood: expected (2, %d) or (1, %d), got (%d, %d)", nbins, nbins, len(e.arr2), nbins)
			}
		}
		if len(e.arr2) != nseries {
			return nil, fmt.Errorf("hist: yerr shape not understood: expected (%d, %d), got (%d, %d)", nseries, nbins, len(e.arr2), nbins)
		}
		out := make([]SeriesErrors, nseries)
		for i, row := range e.arr2 {
			out[i] = SeriesErrors{
				Lo: append([]float64(nil), row...),
				Hi: append([]float64(nil), row...),
			}
		}
		return out, nil

	case err3D:
		if len(e.arr3) != nseries {
			return nil, fmt.Errorf("hist: yerr shape not understood: expected %d series, got %d", nseries, len(e.arr3))
		}
		out := make([]SeriesErrors, nseries)
		for i, pair := range e.arr3 {
			if len(pair) != 2 || len(pair[0]) != nbins || len(pair[1]) != nbins {
				return nil, fmt.Errorf("hist: yerr shape not understood: series %d must be (2, %d)", i, nbins)
			}
			out[i] = SeriesErrors{
				Lo: append([]float64(nil), pair[0]...),
				Hi: append([]float64(nil), pair[1]...),
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("hist: yerr format is not understood")
}
