package analysis

import (
	"fmt"
	"io"
	"strconv"

	"github.com/vburojevic/osbench/internal/output"
)

const ruleWidth = 100

// MetadataOutput is the NDJSON record describing the benchmark run
type MetadataOutput struct {
	Type          string   `json:"type"` // Always "benchmark_metadata"
	SchemaVersion int      `json:"schemaVersion"`
	Timestamp     string   `json:"timestamp"`
	TotalTests    int      `json:"total_tests"`
	StartPoints   int      `json:"start_points"`
	StartNames    []string `json:"start_names,omitempty"`
}

// DepthOutput is the NDJSON record for one maxDepth group
type DepthOutput struct {
	Type          string   `json:"type"` // Always "depth_summary"
	SchemaVersion int      `json:"schemaVersion"`
	MaxDepth      int      `json:"max_depth"`
	Count         int      `json:"count"`
	AvgLatencyMs  float64  `json:"avg_latency_ms"`
	MedianMs      float64  `json:"median_ms"`
	MinMs         float64  `json:"min_ms"`
	MaxMs         float64  `json:"max_ms"`
	StdDevMs      *float64 `json:"stddev_ms,omitempty"`
	AvgResults    float64  `json:"avg_results"`
	AvgEdges      float64  `json:"avg_edges"`
	AvgNodes      float64  `json:"avg_nodes"`
}

// MultipleOutput is the NDJSON record for one multiple-start traversal
type MultipleOutput struct {
	Type            string  `json:"type"` // Always "multiple_start"
	SchemaVersion   int     `json:"schemaVersion"`
	NumStartValues  int     `json:"num_start_values"`
	MaxDepth        int     `json:"max_depth"`
	MedianLatencyMs float64 `json:"median_latency_ms"`
	Results         int     `json:"results"`
	Edges           int     `json:"edges"`
	Nodes           int     `json:"nodes"`
}

// WriteNDJSON emits the metadata line, then one line per depth, then one per
// multiple-start record
func (r *Report) WriteNDJSON(w io.Writer) error {
	enc := output.NewNDJSONWriter(w)

	meta := MetadataOutput{
		Type:          "benchmark_metadata",
		SchemaVersion: output.SchemaVersion,
		Timestamp:     r.Metadata.Timestamp,
		TotalTests:    r.Metadata.TotalTests,
		StartPoints:   len(r.Metadata.StartPoints),
	}
	for _, sp := range r.Metadata.StartPoints {
		if sp.Name != "" {
			meta.StartNames = append(meta.StartNames, sp.Name)
		}
	}
	if err := enc.WriteRaw(meta); err != nil {
		return err
	}

	for _, d := range r.Depths {
		rec := DepthOutput{
			Type:          "depth_summary",
			SchemaVersion: output.SchemaVersion,
			MaxDepth:      d.MaxDepth,
			Count:         d.Count,
			AvgLatencyMs:  d.Latency.Mean,
			MedianMs:      d.Latency.Median,
			MinMs:         d.Latency.Min,
			MaxMs:         d.Latency.Max,
			AvgResults:    d.AvgResults,
			AvgEdges:      d.AvgEdges,
			AvgNodes:      d.AvgNodes,
		}
		if d.HasStdDev() {
			sd := d.Latency.StdDev
			rec.StdDevMs = &sd
		}
		if err := enc.WriteRaw(rec); err != nil {
			return err
		}
	}

	for _, m := range r.Multiple {
		if err := enc.WriteRaw(MultipleOutput{
			Type:            "multiple_start",
			SchemaVersion:   output.SchemaVersion,
			NumStartValues:  m.NumStartValues,
			MaxDepth:        m.MaxDepth,
			MedianLatencyMs: m.MedianLatency,
			Results:         m.Results(),
			Edges:           m.EdgeCount,
			Nodes:           m.NodeCount,
		}); err != nil {
			return err
		}
	}
	return nil
}

// printer remembers the first write error so the report reads top to bottom
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) f(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) ln(s string) { p.f("%s\n", s) }

// WriteText renders the human readable report
func (r *Report) WriteText(w io.Writer) error {
	p := &printer{w: w}

	p.ln(output.Section("BENCHMARK SUMMARY", ruleWidth))
	p.ln("")
	p.ln(output.Styles.Label.Render("Test Configuration:"))
	p.f("  Timestamp: %s\n", r.Metadata.Timestamp)
	p.f("  Total tests: %d\n", r.Metadata.TotalTests)
	p.f("  Start points: %d\n", len(r.Metadata.StartPoints))
	p.ln("")
	if p.err != nil {
		return p.err
	}

	rows := make([][]string, 0, len(r.Depths))
	for _, d := range r.Depths {
		rows = append(rows, []string{
			strconv.Itoa(d.MaxDepth),
			fmt.Sprintf("%.2f", d.Latency.Mean),
			fmt.Sprintf("%.2f", d.Latency.Median),
			fmt.Sprintf("%.2f", d.Latency.Min),
			fmt.Sprintf("%.2f", d.Latency.Max),
			fmt.Sprintf("%.0f", d.AvgResults),
		})
	}
	header := []string{"maxDepth", "Avg Latency (ms)", "Median (ms)", "Min (ms)", "Max (ms)", "Avg Nodes"}
	if err := output.RenderTable(w, header, rows); err != nil {
		return err
	}

	p.ln("")
	p.ln(output.Section("DETAILED SINGLE START VALUE ANALYSIS", ruleWidth))
	for _, d := range r.Depths {
		p.f("\nmaxDepth = %d\n", d.MaxDepth)
		p.ln("  Latency:")
		p.f("    Mean: %.2fms\n", d.Latency.Mean)
		p.f("    Median: %.2fms\n", d.Latency.Median)
		if d.HasStdDev() {
			p.f("    Std Dev: %.2fms\n", d.Latency.StdDev)
		}
		p.f("    Min: %.2fms, Max: %.2fms\n", d.Latency.Min, d.Latency.Max)
		p.f("  Result Count: %.0f (avg)\n", d.AvgResults)
		p.f("  Edges: %.0f (avg), Nodes: %.0f (avg)\n", d.AvgEdges, d.AvgNodes)
	}

	depthNote := r.multipleDepthNote()

	p.ln("")
	p.ln(output.Section("MULTIPLE START VALUE ANALYSIS"+depthNote, ruleWidth))
	for _, m := range r.Multiple {
		p.f("\n%d start value(s):\n", m.NumStartValues)
		p.f("  Latency: %.2fms\n", m.MedianLatency)
		p.f("  Results: %d documents\n", m.Results())
	}

	p.ln("")
	p.ln(output.Section("SCALABILITY ANALYSIS", ruleWidth))
	p.ln("\nLatency vs maxDepth:")
	for _, d := range r.Depths {
		p.f("  maxDepth %2d: %8.2fms\n", d.MaxDepth, d.Latency.Mean)
	}
	p.f("\nLatency vs Number of Start Values%s:\n", depthNote)
	for _, m := range r.Multiple {
		p.f("  %2d start(s): %8.2fms\n", m.NumStartValues, m.MedianLatency)
	}

	return p.err
}

// multipleDepthNote returns " (maxDepth=N)" when every multiple-start record
// ran at the same depth
func (r *Report) multipleDepthNote() string {
	if len(r.Multiple) == 0 {
		return ""
	}
	depth := r.Multiple[0].MaxDepth
	for _, m := range r.Multiple[1:] {
		if m.MaxDepth != depth {
			return ""
		}
	}
	return fmt.Sprintf(" (maxDepth=%d)", depth)
}
