package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBreakNeeded(t *testing.T) {
	assert.False(t, breakNeeded(marginTop, 100))
	assert.False(t, breakNeeded(pageBottom-10, 10))
	assert.True(t, breakNeeded(pageBottom-10, 10.5))
	assert.True(t, breakNeeded(pageBottom, 1))
}

func TestNormalizeWidths(t *testing.T) {
	sum := func(ws []float64) float64 {
		var s float64
		for _, w := range ws {
			s += w
		}
		return s
	}

	t.Run("rescales proportionally to the available width", func(t *testing.T) {
		out := normalizeWidths([]float64{10, 20, 30}, contentWidth)
		assert.InDelta(t, contentWidth, sum(out), 1e-9)
		assert.InDelta(t, 2*out[0], out[1], 1e-9)
		assert.InDelta(t, 3*out[0], out[2], 1e-9)
	})

	t.Run("already-normalized widths pass through", func(t *testing.T) {
		out := normalizeWidths([]float64{90, 90}, 180)
		assert.Equal(t, []float64{90, 90}, out)
	})

	t.Run("zero sum falls back to equal widths", func(t *testing.T) {
		out := normalizeWidths([]float64{0, 0, 0, 0}, 180)
		assert.Equal(t, []float64{45, 45, 45, 45}, out)
	})

	t.Run("negative widths are treated as zero", func(t *testing.T) {
		out := normalizeWidths([]float64{-10, 60}, 180)
		assert.InDelta(t, 180, sum(out), 1e-9)
		assert.Equal(t, 0.0, out[0])
		assert.Equal(t, 180.0, out[1])
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, normalizeWidths(nil, 180))
	})

	t.Run("sum invariant holds across column counts", func(t *testing.T) {
		for n := 1; n <= 12; n++ {
			ws := make([]float64, n)
			for i := range ws {
				ws[i] = float64(i + 1)
			}
			assert.InDelta(t, contentWidth, sum(normalizeWidths(ws, contentWidth)), 1e-9, "n=%d", n)
		}
	})
}

func TestFontSizeForColumns(t *testing.T) {
	cases := []struct {
		cols      int
		size      float64
		rowHeight float64
	}{
		{1, 9, 7},
		{6, 9, 7},
		{7, 8, 6.5},
		{8, 8, 6.5},
		{9, 6.5, 6},
		{11, 6.5, 6},
	}
	for _, tc := range cases {
		size, rh := fontSizeForColumns(tc.cols)
		assert.Equal(t, tc.size, size, "cols=%d", tc.cols)
		assert.Equal(t, tc.rowHeight, rh, "cols=%d", tc.cols)
	}
}
