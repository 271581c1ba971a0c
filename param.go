// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mplhep

import "fmt"

// Param carries a styling value that applies either uniformly to all
// series or one value per series. The two cases are tagged explicitly so
// a slice-valued setting is never mistaken for a broadcast one.
type Param[T any] struct {
	set       bool
	perSeries bool
	one       T
	many      []T
}

// Const returns a parameter applied to every series.
func Const[T any](v T) Param[T] {
	return Param[T]{set: true, one: v}
}

// PerSeries returns a parameter with one value per series. Its length
// is validated against the series count when consumed.
func PerSeries[T any](vs ...T) Param[T] {
	return Param[T]{set: true, perSeries: true, many: vs}
}

func (p Param[T]) isSet() bool { return p.set }

// at resolves the value for series i of n. The fallback is used when
// the parameter was never set.
func (p Param[T]) at(i, n int, fallback func(int) T) (T, error) {
	if !p.set {
		return fallback(i), nil
	}
	if !p.perSeries {
		return p.one, nil
	}
	if len(p.many) != n {
		var zero T
		return zero, fmt.Errorf("mplhep: per-series parameter needs %d values, got %d", n, len(p.many))
	}
	return p.many[i], nil
}
