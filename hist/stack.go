// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Stack turns the series into cumulative layers: series i keeps its own
// increment in Values and receives the elementwise sum of all earlier
// series as Baseline. The top curve of the last series is the total.
func Stack(ps []*Plottable) error {
	if len(ps) == 0 {
		return nil
	}
	n := ps[0].NBins()
	baseline := make([]float64, n)
	for i, p := range ps {
		if p.NBins() != n {
			return fmt.Errorf("hist: cannot stack series %d: expected %d bins, got %d", i, n, p.NBins())
		}
		p.Baseline = append([]float64(nil), baseline...)
		floats.Add(baseline, p.Values)
	}
	return nil
}

// SortMode selects the series ordering applied before drawing.
type SortMode int

const (
	SortNone SortMode = iota
	SortLabel
	SortYield
)

// SortSpec is a parsed sort selector: a mode plus direction, or an
// explicit permutation.
type SortSpec struct {
	Mode    SortMode
	Reverse bool
	Order   []int
}

// ParseSortMode parses selectors of the form "label", "l", "yield", "y",
// with an optional "_r" suffix for reverse ordering.
func ParseSortMode(s string) (SortSpec, error) {
	if s == "" {
		return SortSpec{}, nil
	}
	base, suffix, found := strings.Cut(s, "_")
	spec := SortSpec{}
	if found {
		if suffix != "r" {
			return spec, fmt.Errorf("hist: sort selector %q not understood", s)
		}
		spec.Reverse = true
	}
	switch base {
	case "label", "l":
		spec.Mode = SortLabel
	case "yield", "y":
		spec.Mode = SortYield
	default:
		return spec, fmt.Errorf("hist: sort selector %q not understood", s)
	}
	return spec, nil
}

// SortOrder computes the permutation of series indices for the mode.
// Labels are only consulted for SortLabel. An explicit Order must be a
// permutation of the series indices.
func SortOrder(spec SortSpec, ps []*Plottable, labels []string) ([]int, error) {
	n := len(ps)
	if spec.Order != nil {
		if len(spec.Order) != n {
			return nil, fmt.Errorf("hist: sort indexing array is of the wrong size: %d, %d expected", len(spec.Order), n)
		}
		seen := make([]bool, n)
		for _, ix := range spec.Order {
			if ix < 0 || ix >= n {
				return nil, fmt.Errorf("hist: sort index %d out of range for %d series", ix, n)
			}
			if seen[ix] {
				return nil, fmt.Errorf("hist: sort index %d given twice", ix)
			}
			seen[ix] = true
		}
		return spec.Order, nil
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	switch spec.Mode {
	case SortNone:
		return order, nil
	case SortLabel:
		sort.SliceStable(order, func(a, b int) bool {
			return labels[order[a]] < labels[order[b]]
		})
	case SortYield:
		yields := make([]float64, n)
		for i, p := range ps {
			yields[i] = p.Sum()
		}
		inds := make([]int, n)
		floats.Argsort(yields, inds)
		order = inds
	}
	if spec.Reverse {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}
	return order, nil
}
