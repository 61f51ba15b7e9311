package domain

import "encoding/json"

// BenchmarkResults is the report written by the graph traversal benchmark.
// It is read-only input for the analyzer.
type BenchmarkResults struct {
	Metadata      BenchmarkMetadata     `json:"metadata"`
	SingleStart   []SingleStartResult   `json:"singleStart"`
	MultipleStart []MultipleStartResult `json:"multipleStart"`
}

// BenchmarkMetadata describes a benchmark run
type BenchmarkMetadata struct {
	Timestamp   string       `json:"timestamp"`
	TotalTests  int          `json:"totalTests"`
	StartPoints []StartPoint `json:"startPoints"`
}

// StartPoint is a randomly sampled traversal origin
type StartPoint struct {
	ID   json.RawMessage `json:"id"`
	Name string          `json:"name"`
}

// SingleStartResult is one traversal from a single origin at a fixed depth
type SingleStartResult struct {
	StartID       json.RawMessage `json:"startId,omitempty"`
	MaxDepth      int             `json:"maxDepth"`
	MedianLatency float64         `json:"medianLatency"`
	Latencies     []float64       `json:"latencies,omitempty"`
	EdgeCount     int             `json:"edgeCount"`
	NodeCount     int             `json:"nodeCount"`
	ResultCount   *int            `json:"resultCount,omitempty"`
}

// Results returns the result-set size: resultCount when the producer wrote
// one, nodeCount otherwise.
func (r SingleStartResult) Results() int {
	if r.ResultCount != nil {
		return *r.ResultCount
	}
	return r.NodeCount
}

// MultipleStartResult is one traversal seeded with several origins at once
type MultipleStartResult struct {
	NumStartValues int               `json:"numStartValues"`
	StartIDs       []json.RawMessage `json:"startIds,omitempty"`
	MaxDepth       int               `json:"maxDepth"`
	MedianLatency  float64           `json:"medianLatency"`
	Latencies      []float64         `json:"latencies,omitempty"`
	EdgeCount      int               `json:"edgeCount"`
	NodeCount      int               `json:"nodeCount"`
	ResultCount    *int              `json:"resultCount,omitempty"`
}

// Results mirrors SingleStartResult.Results
func (r MultipleStartResult) Results() int {
	if r.ResultCount != nil {
		return *r.ResultCount
	}
	return r.NodeCount
}
