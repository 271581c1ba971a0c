// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	mplhep "github.com/8me/mplhep"
	"github.com/8me/mplhep/hist"
)

func TestParseYErr(t *testing.T) {
	tests := []struct {
		in   string
		want hist.ErrorSpec
	}{
		{"", hist.ErrAuto()},
		{"auto", hist.ErrAuto()},
		{"none", hist.ErrNone()},
		{"0.5", hist.ErrScalar(0.5)},
	}
	for _, tt := range tests {
		got, err := parseYErr(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := parseYErr("bogus")
	assert.Error(t, err)
}

func TestParseSideSize(t *testing.T) {
	tests := []struct {
		in   string
		want mplhep.SideSize
	}{
		{"7%", mplhep.Percent(7)},
		{"0.4in", mplhep.Fixed(0.4 * vg.Inch)},
		{"12", mplhep.Fixed(vg.Points(12))},
	}
	for _, tt := range tests {
		got, err := parseSideSize(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := parseSideSize("wide")
	assert.Error(t, err)
}
