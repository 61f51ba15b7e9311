package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		input    []float64
		expected float64
	}{
		{name: "empty", input: nil, expected: 0},
		{name: "single value", input: []float64{7}, expected: 7},
		{name: "odd count", input: []float64{9, 1, 5}, expected: 5},
		{name: "even count averages middle", input: []float64{4, 1, 3, 2}, expected: 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Median(tt.input))
		})
	}
}

func TestMedian_DoesNotSortInput(t *testing.T) {
	input := []float64{3, 1, 2}
	Median(input)
	assert.Equal(t, []float64{3, 1, 2}, input)
}

func TestStdDev(t *testing.T) {
	t.Run("zero below two values", func(t *testing.T) {
		assert.Zero(t, StdDev(nil))
		assert.Zero(t, StdDev([]float64{42}))
	})

	t.Run("uses sample denominator", func(t *testing.T) {
		// mean 5, squared deviations sum to 32, 32/7 under n-1
		values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
		assert.InDelta(t, 2.138, StdDev(values), 0.001)
	})
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{10, 20, 30, 40})

	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 25.0, s.Mean)
	assert.Equal(t, 25.0, s.Median)
	assert.Equal(t, 10.0, s.Min)
	assert.Equal(t, 40.0, s.Max)
	assert.Equal(t, 100.0, s.Sum)
	assert.InDelta(t, 12.909, s.StdDev, 0.001)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestInts(t *testing.T) {
	assert.Equal(t, []float64{1, 2, 3}, Ints([]int{1, 2, 3}))
}
