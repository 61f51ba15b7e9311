// Package stats provides the descriptive statistics used by the analyzer and
// the search benchmark.
package stats

import (
	"math"
	"slices"
)

// Summary holds descriptive statistics over a sample
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stdev,omitempty"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Sum    float64 `json:"sum"`
}

// Summarize computes every statistic in one call. StdDev is left at zero for
// fewer than two values.
func Summarize(values []float64) Summary {
	return Summary{
		Count:  len(values),
		Mean:   Mean(values),
		Median: Median(values),
		StdDev: StdDev(values),
		Min:    Min(values),
		Max:    Max(values),
		Sum:    Sum(values),
	}
}

// Sum returns the sum of values
func Sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// Mean returns the arithmetic mean, or 0 for no values
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Sum(values) / float64(len(values))
}

// Median returns the middle value, averaging the two middle values for an
// even count. The input is not modified.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// StdDev returns the sample standard deviation (n-1 denominator)
func StdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	mean := Mean(values)
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(n-1))
}

// Min returns the smallest value, or 0 for no values
func Min(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return slices.Min(values)
}

// Max returns the largest value, or 0 for no values
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return slices.Max(values)
}

// Ints converts integer counters for use with the float helpers
func Ints(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
