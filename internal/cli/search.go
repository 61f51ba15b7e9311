package cli

import (
	"fmt"

	"github.com/vburojevic/osbench/internal/loader"
	"github.com/vburojevic/osbench/internal/output"
)

// SearchCmd times repeated searches against an existing index
type SearchCmd struct {
	ConnectionFlags `embed:""`

	Index  string `arg:"" help:"Index to search"`
	Rounds int    `short:"r" help:"Number of searches to time" default:"${config_read_rounds}"`
}

// Run executes the search command
func (c *SearchCmd) Run(globals *Globals) error {
	cfg := globals.config()
	rounds := c.Rounds
	if rounds < 1 {
		return outputErrorCommon(globals, "INVALID_OPTIONS", "rounds must be at least 1")
	}

	client, sc, err := c.client(cfg)
	if err != nil {
		return outputErrorCommon(globals, "CLIENT_ERROR", err.Error())
	}

	ctx, stop := signalContext()
	defer stop()

	exists, err := client.IndexExists(ctx, c.Index)
	if err != nil {
		return outputCLIError(globals, &CLIError{Code: "CONNECTION_FAILED", Message: err.Error(), Hint: hintForCluster(err, sc), Err: err})
	}
	if !exists {
		return outputErrorCommon(globals, "INDEX_NOT_FOUND", fmt.Sprintf("index %q does not exist", c.Index), "Create and fill it first with `osbench load`")
	}

	l := loader.New(client, nil, loader.Options{}, globals.Logger(), globals.clock())
	report, err := l.BenchmarkSearch(ctx, c.Index, rounds)
	if err != nil {
		return outputCLIError(globals, &CLIError{Code: "SEARCH_FAILED", Message: err.Error(), Hint: hintForCluster(err, sc), Err: err})
	}

	if globals.Format == "ndjson" {
		return output.NewEmitter(globals.Stdout).Search(report)
	}

	p := &textPrinter{w: globals.Stdout}
	p.f("%s\n", output.Section("Running Search Benchmark on "+c.Index, bannerWidth))
	for i, s := range report.Samples {
		p.f("  Search %d: %.2f ms (hits: %d)\n", i+1, s.LatencyMs, s.Hits)
	}
	writeSearchText(p, report)
	return p.err
}
