package domain

import "time"

// BulkReport tallies the outcome of one bulk insert
type BulkReport struct {
	Index     string        `json:"index"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Failures  []string      `json:"failures,omitempty"` // first few failure reasons
	Duration  time.Duration `json:"-"`
}

// Total returns the number of documents the bulk writer reported back on
func (r *BulkReport) Total() int {
	return r.Succeeded + r.Failed
}

// IndexStats is the subset of the index stats API the loader reports
type IndexStats struct {
	DocCount  int64 `json:"doc_count"`
	StoreSize int64 `json:"store_size_bytes"`
}

// StoreSizeMB returns the primary store size in MiB
func (s IndexStats) StoreSizeMB() float64 {
	return float64(s.StoreSize) / (1024 * 1024)
}

// SearchSample is a single timed search
type SearchSample struct {
	LatencyMs float64 `json:"latency_ms"`
	Hits      int64   `json:"hits"`
}

// SearchReport summarizes a search latency benchmark
type SearchReport struct {
	Index     string         `json:"index"`
	Samples   []SearchSample `json:"samples,omitempty"`
	AverageMs float64        `json:"avg_ms"`
	MedianMs  float64        `json:"median_ms"`
	MinMs     float64        `json:"min_ms"`
	MaxMs     float64        `json:"max_ms"`
	TotalMs   float64        `json:"total_ms"`
}

// IndexReport is everything the loader learned about one index
type IndexReport struct {
	Index   string        `json:"index"`
	Created bool          `json:"created"`
	Bulk    *BulkReport   `json:"bulk,omitempty"`
	Stats   *IndexStats   `json:"stats,omitempty"`
	Search  *SearchReport `json:"search,omitempty"`
	Error   string        `json:"error,omitempty"`
	// Err is the failure behind Error
	Err error `json:"-"`
}

// RunReport summarizes a full load run across indices
type RunReport struct {
	RunID    string         `json:"run_id"`
	Indices  []*IndexReport `json:"indices"`
	Duration time.Duration  `json:"-"`
}

// Failed returns the number of indices whose load did not complete
func (r *RunReport) Failed() int {
	n := 0
	for _, idx := range r.Indices {
		if idx.Error != "" {
			n++
		}
	}
	return n
}

// ErrorOutput represents a structured error for NDJSON output
type ErrorOutput struct {
	Type          string `json:"type"`          // Always "error"
	SchemaVersion int    `json:"schemaVersion"` // Schema version for compatibility
	Code          string `json:"code"`          // Machine-readable error code
	Message       string `json:"message"`       // Human-readable message
	Hint          string `json:"hint,omitempty"`
}

// NewErrorOutput creates a new error output
func NewErrorOutput(code, message string) *ErrorOutput {
	return &ErrorOutput{
		Type:    "error",
		Code:    code,
		Message: message,
	}
}
