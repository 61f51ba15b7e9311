package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/vburojevic/osbench/internal/domain"
)

// NDJSONWriter writes command results as NDJSON
type NDJSONWriter struct {
	w       io.Writer
	encoder *json.Encoder
}

// NewNDJSONWriter creates a new NDJSON writer
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &NDJSONWriter{
		w:       w,
		encoder: enc,
	}
}

// InfoOutput represents an informational message
type InfoOutput struct {
	Type          string `json:"type"` // Always "info"
	SchemaVersion int    `json:"schemaVersion"`
	Message       string `json:"message"`
	Index         string `json:"index,omitempty"`
}

// WarningOutput represents a warning message
type WarningOutput struct {
	Type          string `json:"type"` // Always "warning"
	SchemaVersion int    `json:"schemaVersion"`
	Message       string `json:"message"`
}

// GenerateOutput reports a finished document file
type GenerateOutput struct {
	Type          string `json:"type"` // Always "generate_complete"
	SchemaVersion int    `json:"schemaVersion"`
	Path          string `json:"path"`
	Records       int    `json:"records"`
	Fields        int    `json:"fields"`
	Compressed    bool   `json:"compressed"`
	Seed          uint64 `json:"seed,omitempty"`
}

// IndexOutput reports a finished per-index load
type IndexOutput struct {
	Type           string   `json:"type"` // Always "index_loaded"
	SchemaVersion  int      `json:"schemaVersion"`
	Index          string   `json:"index"`
	Created        bool     `json:"created"`
	Succeeded      int      `json:"succeeded"`
	Failed         int      `json:"failed"`
	Total          int      `json:"total"`
	DocCount       int64    `json:"doc_count"`
	StoreSizeBytes int64    `json:"store_size_bytes"`
	DurationMs     float64  `json:"duration_ms"`
	Failures       []string `json:"failures,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// SearchOutput reports a search latency benchmark
type SearchOutput struct {
	Type          string                `json:"type"` // Always "search_benchmark"
	SchemaVersion int                   `json:"schemaVersion"`
	Index         string                `json:"index"`
	Rounds        int                   `json:"rounds"`
	AverageMs     float64               `json:"avg_ms"`
	MedianMs      float64               `json:"median_ms"`
	MinMs         float64               `json:"min_ms"`
	MaxMs         float64               `json:"max_ms"`
	TotalMs       float64               `json:"total_ms"`
	Samples       []domain.SearchSample `json:"samples,omitempty"`
}

// RunOutput closes a load run
type RunOutput struct {
	Type            string  `json:"type"` // Always "run_complete"
	SchemaVersion   int     `json:"schemaVersion"`
	RunID           string  `json:"run_id"`
	Indices         int     `json:"indices"`
	FailedIndices   int     `json:"failed_indices"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// WriteError outputs an error
func (w *NDJSONWriter) WriteError(code, message string, hint ...string) error {
	err := domain.NewErrorOutput(code, message)
	if len(hint) > 0 {
		err.Hint = hint[0]
	}
	err.SchemaVersion = SchemaVersion
	return w.encoder.Encode(err)
}

// WriteRaw outputs raw JSON data
func (w *NDJSONWriter) WriteRaw(v interface{}) error {
	return w.encoder.Encode(v)
}

// WriteInfo outputs an informational message
func (w *NDJSONWriter) WriteInfo(message, index string) error {
	return w.encoder.Encode(&InfoOutput{
		Type:          "info",
		SchemaVersion: SchemaVersion,
		Message:       message,
		Index:         index,
	})
}

// WriteWarning outputs a warning message
func (w *NDJSONWriter) WriteWarning(message string) error {
	return w.encoder.Encode(&WarningOutput{
		Type:          "warning",
		SchemaVersion: SchemaVersion,
		Message:       message,
	})
}

// WriteGenerate outputs a generate_complete event
func (w *NDJSONWriter) WriteGenerate(path string, records, fields int, compressed bool, seed uint64) error {
	return w.encoder.Encode(&GenerateOutput{
		Type:          "generate_complete",
		SchemaVersion: SchemaVersion,
		Path:          path,
		Records:       records,
		Fields:        fields,
		Compressed:    compressed,
		Seed:          seed,
	})
}

// WriteIndex outputs an index_loaded event
func (w *NDJSONWriter) WriteIndex(r *domain.IndexReport) error {
	out := &IndexOutput{
		Type:          "index_loaded",
		SchemaVersion: SchemaVersion,
		Index:         r.Index,
		Created:       r.Created,
		Error:         r.Error,
	}
	if r.Bulk != nil {
		out.Succeeded = r.Bulk.Succeeded
		out.Failed = r.Bulk.Failed
		out.Total = r.Bulk.Total()
		out.Failures = r.Bulk.Failures
		out.DurationMs = millis(r.Bulk.Duration)
	}
	if r.Stats != nil {
		out.DocCount = r.Stats.DocCount
		out.StoreSizeBytes = r.Stats.StoreSize
	}
	return w.encoder.Encode(out)
}

// WriteSearch outputs a search_benchmark event
func (w *NDJSONWriter) WriteSearch(r *domain.SearchReport) error {
	return w.encoder.Encode(&SearchOutput{
		Type:          "search_benchmark",
		SchemaVersion: SchemaVersion,
		Index:         r.Index,
		Rounds:        len(r.Samples),
		AverageMs:     r.AverageMs,
		MedianMs:      r.MedianMs,
		MinMs:         r.MinMs,
		MaxMs:         r.MaxMs,
		TotalMs:       r.TotalMs,
		Samples:       r.Samples,
	})
}

// WriteRun outputs a run_complete event
func (w *NDJSONWriter) WriteRun(r *domain.RunReport) error {
	return w.encoder.Encode(&RunOutput{
		Type:            "run_complete",
		SchemaVersion:   SchemaVersion,
		RunID:           r.RunID,
		Indices:         len(r.Indices),
		FailedIndices:   r.Failed(),
		DurationSeconds: r.Duration.Seconds(),
	})
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
