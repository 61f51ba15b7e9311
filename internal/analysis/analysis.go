// Package analysis summarizes graph traversal benchmark results.
package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/vburojevic/osbench/internal/domain"
	"github.com/vburojevic/osbench/internal/stats"
)

// DefaultPattern matches result files written by the benchmark
const DefaultPattern = "benchmark_results_*.json"

var (
	// ErrNoResults is returned by Latest when nothing matches
	ErrNoResults = errors.New("no benchmark results found")
	// ErrInvalidResults wraps decode failures
	ErrInvalidResults = errors.New("invalid benchmark results")
)

// Load reads and decodes a results file
func Load(path string) (*domain.BenchmarkResults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var results domain.BenchmarkResults
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidResults, path, err)
	}
	return &results, nil
}

// Latest returns the lexicographically last file in dir matching pattern.
// Result files embed their timestamp, so that is also the newest.
func Latest(dir, pattern string) (string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", ErrNoResults
	}
	slices.Sort(matches)
	return matches[len(matches)-1], nil
}

// DepthSummary aggregates every single-start result at one maxDepth
type DepthSummary struct {
	MaxDepth   int
	Count      int
	Latency    stats.Summary
	AvgResults float64
	AvgEdges   float64
	AvgNodes   float64
}

// HasStdDev reports whether the latency spread is meaningful
func (d DepthSummary) HasStdDev() bool { return d.Count > 1 }

// Report is the analyzed form of a results file
type Report struct {
	Metadata domain.BenchmarkMetadata
	Depths   []DepthSummary
	Multiple []domain.MultipleStartResult
}

// Analyze groups single-start results by maxDepth, ascending. Multiple-start
// records are kept in input order.
func Analyze(results *domain.BenchmarkResults) *Report {
	report := &Report{
		Metadata: results.Metadata,
		Multiple: results.MultipleStart,
	}

	groups := make(map[int][]domain.SingleStartResult)
	for _, r := range results.SingleStart {
		groups[r.MaxDepth] = append(groups[r.MaxDepth], r)
	}

	depths := make([]int, 0, len(groups))
	for d := range groups {
		depths = append(depths, d)
	}
	slices.Sort(depths)

	for _, d := range depths {
		rs := groups[d]
		latencies := make([]float64, len(rs))
		counts := make([]int, len(rs))
		edges := make([]int, len(rs))
		nodes := make([]int, len(rs))
		for i, r := range rs {
			latencies[i] = r.MedianLatency
			counts[i] = r.Results()
			edges[i] = r.EdgeCount
			nodes[i] = r.NodeCount
		}
		report.Depths = append(report.Depths, DepthSummary{
			MaxDepth:   d,
			Count:      len(rs),
			Latency:    stats.Summarize(latencies),
			AvgResults: stats.Mean(stats.Ints(counts)),
			AvgEdges:   stats.Mean(stats.Ints(edges)),
			AvgNodes:   stats.Mean(stats.Ints(nodes)),
		})
	}

	return report
}
