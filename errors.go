// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mplhep

import "errors"

var (
	// ErrConflictingNorm is returned when both density and bin-width
	// normalization are requested.
	ErrConflictingNorm = errors.New("mplhep: can only set density or binwnorm")

	// ErrConflictingErrors is returned when both explicit errors and
	// sum-of-weights-squared arrays are supplied.
	ErrConflictingErrors = errors.New("mplhep: can only supply errors or w2")

	// ErrCannotFit is returned when growing the y range ten times still
	// leaves the legend or anchored text overlapping the data.
	ErrCannotFit = errors.New("mplhep: could not fit in 10 iterations")
)
