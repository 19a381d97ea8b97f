package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const delta = 0.0001

func TestMean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{name: "empty_returns_zero", values: nil, expected: 0},
		{name: "single_element", values: []float64{4.0}, expected: 4.0},
		{name: "multiple_elements", values: []float64{1.0, 2.0, 3.0, 4.0}, expected: 2.5},
		{name: "negative_values", values: []float64{-2.0, 2.0}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Mean(tt.values)
			assert.InDelta(t, tt.expected, got, delta)
		})
	}
}

func TestMeanStdDev(t *testing.T) {
	t.Parallel()

	t.Run("empty_returns_zeros", func(t *testing.T) {
		t.Parallel()

		mean, stddev := MeanStdDev(nil)
		assert.InDelta(t, 0, mean, delta)
		assert.InDelta(t, 0, stddev, delta)
	})

	t.Run("constant_sequence", func(t *testing.T) {
		t.Parallel()

		mean, stddev := MeanStdDev([]float64{3.0, 3.0, 3.0})
		assert.InDelta(t, 3.0, mean, delta)
		assert.InDelta(t, 0, stddev, delta)
	})

	t.Run("population_stddev", func(t *testing.T) {
		t.Parallel()

		mean, stddev := MeanStdDev([]float64{1.0, 2.0, 3.0, 4.0})
		assert.InDelta(t, 2.5, mean, delta)
		assert.InDelta(t, 1.118033989, stddev, delta)
	})
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	t.Run("empty_returns_zero_summary", func(t *testing.T) {
		t.Parallel()

		got := Describe(nil)
		assert.Equal(t, Basic{}, got)
	})

	t.Run("full_summary", func(t *testing.T) {
		t.Parallel()

		got := Describe([]float64{1.0, 2.0, 3.0, 3.0})
		assert.InDelta(t, 2.25, got.Mean, delta)
		assert.InDelta(t, 1.0, got.Min, delta)
		assert.InDelta(t, 3.0, got.Max, delta)
		assert.InDelta(t, 0.829156, got.StdDev, delta)
		assert.Equal(t, 4, got.Count)
	})
}

func TestMinMaxGeneric(t *testing.T) {
	t.Parallel()

	t.Run("empty_returns_zero", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 0, Min([]int{}))
		assert.Equal(t, 0, Max([]int{}))
	})

	t.Run("ints", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 1, Min([]int{3, 1, 4, 1, 5}))
		assert.Equal(t, 5, Max([]int{3, 1, 4, 1, 5}))
	})
}

func TestSum(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Sum([]int{}))
	assert.Equal(t, 10, Sum([]int{1, 2, 3, 4}))
	assert.InDelta(t, 1.5, Sum([]float64{0.5, 1.0}), delta)
}
