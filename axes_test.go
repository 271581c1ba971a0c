// Copyright (c) 2025, The mplhep Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mplhep

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/8me/mplhep/hist"
)

func TestPartition(t *testing.T) {
	ax := NewAxes(WithSize(vg.Points(400), vg.Points(300)))
	ax.AppendAxes(SideRight, Percent(10), Fixed(vg.Points(5)), false)

	r := vg.Rectangle{Max: vg.Point{X: vg.Points(400), Y: vg.Points(300)}}
	main, sides := ax.partition(r)
	require.Len(t, sides, 1)

	assert.Equal(t, vg.Points(40), sides[0].Max.X-sides[0].Min.X)
	assert.Equal(t, vg.Points(400-40-5), main.Max.X)
	assert.Equal(t, r.Max.Y, main.Max.Y)
	assert.Equal(t, r.Max.Y, sides[0].Max.Y)
}

func TestFigureSizeExtends(t *testing.T) {
	ax := NewAxes(WithSize(vg.Points(400), vg.Points(300)))
	ax.AppendAxes(SideRight, Percent(10), Fixed(vg.Points(5)), true)
	ax.AppendAxes(SideBottom, Fixed(vg.Points(30)), Fixed(vg.Points(10)), false)

	w, h := ax.figureSize()
	assert.Equal(t, vg.Points(445), w, "extending side grows the figure")
	assert.Equal(t, vg.Points(300), h, "non-extending side does not")
}

func TestSquareWithColorBar(t *testing.T) {
	ax := NewAxes(WithSize(vg.Points(400), vg.Points(300)))
	side := ax.SquareWithColorBar()
	assert.Equal(t, ax.Width, ax.Height)
	assert.NotNil(t, side.Plot)
}

func TestParseSide(t *testing.T) {
	s, err := ParseSide("bottom")
	require.NoError(t, err)
	assert.Equal(t, SideBottom, s)
	_, err = ParseSide("middle")
	assert.Error(t, err)
}

func TestYLow(t *testing.T) {
	ax := NewAxes()
	ax.Plot.Y.Min = -1
	ax.YLow(0)
	assert.Equal(t, 0.0, ax.Plot.Y.Min, "nothing drawn below the limit")

	neg := NewAxes()
	_, err := HistPlot(neg, []hist.Hist{hist.NewH1D([]float64{-3, 2, 5}, edges3)})
	require.NoError(t, err)
	neg.YLow(0)
	assert.LessOrEqual(t, neg.Plot.Y.Min, -3.0, "negative bins stay in view")

	lax := NewAxes(WithLogY())
	lax.Plot.Y.Min = 0.1
	lax.YLow(0)
	assert.Equal(t, 0.1, lax.Plot.Y.Min, "log axes keep their range")
}

func TestAutoStyle(t *testing.T) {
	ax := NewAxes()
	_, err := HistPlot(ax, []hist.Hist{hist.NewH1D([]float64{9, 3, 1}, edges3)},
		WithLabels("data"))
	require.NoError(t, err)
	ax.AddText("Internal", 0.02, 0.5)

	require.NoError(t, ax.AutoStyle())
	assert.Equal(t, 0.0, ax.Plot.Y.Min)
}

func TestYScaleLegend(t *testing.T) {
	ax := NewAxes()
	_, err := HistPlot(ax, []hist.Hist{hist.NewH1D([]float64{1, 3, 9}, edges3)},
		WithLabels("rising"))
	require.NoError(t, err)

	before := ax.Plot.Y.Max
	require.NoError(t, ax.YScaleLegend(0, true))
	assert.GreaterOrEqual(t, ax.Plot.Y.Max, before)
}

func TestYScaleLegendNoEntries(t *testing.T) {
	ax := NewAxes()
	_, err := HistPlot(ax, []hist.Hist{hist.NewH1D([]float64{1, 3, 9}, edges3)})
	require.NoError(t, err)
	assert.NoError(t, ax.YScaleLegend(0, false), "nothing to fit")
}

func TestYScaleText(t *testing.T) {
	ax := NewAxes()
	_, err := HistPlot(ax, []hist.Hist{hist.NewH1D([]float64{9, 3, 1}, edges3)})
	require.NoError(t, err)
	ax.AddText("Internal", 0.02, 0.98)

	before := ax.Plot.Y.Max
	require.NoError(t, ax.YScaleText(0, true))
	assert.GreaterOrEqual(t, ax.Plot.Y.Max, before)
	testDraw(t, ax)
}

func TestHistLegendReverses(t *testing.T) {
	ax := NewAxes()
	_, err := HistPlot(ax, []hist.Hist{
		hist.NewH1D([]float64{1, 2, 3}, edges3),
		hist.NewH1D([]float64{4, 5, 6}, edges3),
	}, WithStack(), WithType(TypeFill), WithLabels("bottom", "top"))
	require.NoError(t, err)

	ax.HistLegend()
	require.Len(t, ax.entries, 2)
	assert.Equal(t, "top", ax.entries[0].label)
	assert.Equal(t, "bottom", ax.entries[1].label)
	for _, e := range ax.entries {
		assert.IsType(t, lineThumb{}, e.thumb, "filled handles become lines")
	}
}

func TestSortLegend(t *testing.T) {
	ax := NewAxes()
	_, err := HistPlot(ax, []hist.Hist{
		hist.NewH1D([]float64{1, 2, 3}, edges3),
		hist.NewH1D([]float64{4, 5, 6}, edges3),
	}, WithLabels("b", "a"))
	require.NoError(t, err)

	ax.SortLegend([]string{"a", "b", "missing"}, nil)
	require.Len(t, ax.entries, 2)
	assert.Equal(t, "a", ax.entries[0].label)
	assert.Equal(t, "b", ax.entries[1].label)

	ax.SortLegend(nil, map[string]string{"a": "signal"})
	require.Len(t, ax.entries, 2)
	assert.Equal(t, "signal", ax.entries[0].label)
	assert.Equal(t, "b", ax.entries[1].label)
}

func TestSaveFormats(t *testing.T) {
	dir := t.TempDir()
	ax := NewAxes(WithSize(3*vg.Inch, 2*vg.Inch))
	_, err := HistPlot(ax, []hist.Hist{hist.NewH1D([]float64{2, 5, 3}, edges3)})
	require.NoError(t, err)

	for _, name := range []string{"fig.png", "fig.svg"} {
		path := filepath.Join(dir, name)
		require.NoError(t, ax.Save(path))
		st, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, st.Size())
	}

	pdf := filepath.Join(dir, "fig.pdf")
	assert.Error(t, ax.Save(pdf))
	assert.NoFileExists(t, pdf, "rejected formats leave no file behind")
}
