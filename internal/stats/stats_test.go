package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 2.5, Mean([]float64{1, 2, 3, 4}))
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want float64
	}{
		{"empty", nil, 0},
		{"odd", []float64{5, 1, 3}, 3},
		{"even", []float64{4, 1, 3, 2}, 2.5},
		{"single", []float64{7}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := append([]float64(nil), tt.in...)
			assert.Equal(t, tt.want, Median(tt.in))
			assert.Equal(t, in, tt.in, "input must not be reordered")
		})
	}
}

func TestMode(t *testing.T) {
	assert.Equal(t, 2.0, Mode([]float64{1, 2, 2, 3}))
	// Ties resolve to the smallest value regardless of input order.
	assert.Equal(t, 1.0, Mode([]float64{3, 1, 3, 1}))
	assert.Equal(t, 1.0, Mode([]float64{1, 3, 1, 3}))
}

func TestVarianceAndStd(t *testing.T) {
	assert.InDelta(t, 2.0, Variance([]float64{1, 2, 3, 4, 5}), 1e-9)
	assert.InDelta(t, 0.0, Std([]float64{4, 4, 4}), 1e-9)
}

func TestMinMax(t *testing.T) {
	min, max := MinMax([]float64{3, -1, 7, 0})
	assert.Equal(t, -1.0, min)
	assert.Equal(t, 7.0, max)
}

func TestQuantile(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5}
	tests := []struct {
		q    float64
		want float64
	}{
		{0, 1},
		{0.25, 2},
		{0.5, 3},
		{0.75, 4},
		{1, 5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Quantile(vals, tt.q), 1e-9)
	}

	// Interpolation between ranks.
	assert.InDelta(t, 1.5, Quantile([]float64{1, 2}, 0.5), 1e-9)
}

func TestModeString(t *testing.T) {
	mode, count := ModeString([]string{"b", "a", "b", "c"})
	assert.Equal(t, "b", mode)
	assert.Equal(t, 2, count)

	// First appearance wins on ties.
	mode, count = ModeString([]string{"x", "y", "y", "x"})
	assert.Equal(t, "x", mode)
	assert.Equal(t, 2, count)
}
