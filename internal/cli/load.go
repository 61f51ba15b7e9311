package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vburojevic/osbench/internal/domain"
	"github.com/vburojevic/osbench/internal/generator"
	"github.com/vburojevic/osbench/internal/loader"
	"github.com/vburojevic/osbench/internal/output"
	"github.com/vburojevic/osbench/internal/search"
)

const bannerWidth = 50

// LoadCmd runs the full benchmark: for each index, create it, bulk load
// generated documents, read back stats and time repeated searches
type LoadCmd struct {
	ConnectionFlags `embed:""`

	Index      string `short:"i" help:"Index name prefix; indices are <prefix>-1..<prefix>-N" default:"${config_index}"`
	Indices    int    `short:"n" help:"Number of indices to load" default:"${config_index_count}"`
	Records    int    `short:"r" help:"Documents per index" default:"${config_records}"`
	Fields     int    `help:"Random fields per log object" default:"${config_fields}"`
	Rounds     int    `help:"Search rounds per index" default:"${config_read_rounds}"`
	Mapping    string `short:"m" help:"Mapping mode: 0|dynamic, 1|disabled, 2|templates, 3|object" default:"${config_mapping_mode}"`
	FieldLimit int    `help:"index.mapping.total_fields.limit applied to each index" default:"${config_field_limit}"`
	FlushBytes int    `help:"Bulk request size threshold in bytes" default:"${config_flush_bytes}"`
	Save       string `help:"Also write every generated document to this JSONL file (.zst compresses)"`
	Seed       uint64 `help:"Random seed for reproducible documents (0 seeds from the clock)"`
}

// Run executes the load command
func (c *LoadCmd) Run(globals *Globals) error {
	cfg := globals.config()

	mode, err := search.ParseMappingMode(c.Mapping)
	if err != nil {
		return outputErrorCommon(globals, "INVALID_MAPPING_MODE", err.Error(), hintForMappingMode())
	}

	opts := loader.Options{
		IndexPrefix: c.Index,
		IndexCount:  c.Indices,
		Records:     c.Records,
		ReadRounds:  c.Rounds,
		Mode:        mode,
		FieldLimit:  c.FieldLimit,
		FlushBytes:  c.FlushBytes,
	}
	if err := opts.Validate(); err != nil {
		return outputErrorCommon(globals, "INVALID_OPTIONS", err.Error())
	}

	client, sc, err := c.client(cfg)
	if err != nil {
		return outputErrorCommon(globals, "CLIENT_ERROR", err.Error())
	}

	emitter := output.NewEmitter(globals.Stdout)
	if globals.Format == "ndjson" {
		emitInfo(globals, emitter, fmt.Sprintf("loading %d indices into %s", c.Indices, sc.Address()), "")
	} else if err := c.printBanner(globals.Stdout, sc, mode); err != nil {
		return err
	}

	var sink *output.DocumentWriter
	if c.Save != "" {
		sink, err = output.CreateDocumentFile(c.Save)
		if err != nil {
			return outputErrorCommon(globals, "WRITE_ERROR", err.Error(), "Check the --save directory exists and is writable")
		}
		opts.Sink = sink
	}

	opts.OnIndex = func(r *domain.IndexReport) {
		if err := writeIndexReport(globals, emitter, r, sc); err != nil {
			globals.Debug("write index report: %v", err)
		}
	}

	clk := globals.clock()
	gen := generator.New(generator.Options{
		NumFields: c.Fields,
		Rand:      generator.NewRand(c.Seed, clk),
		Clock:     clk,
	})

	ctx, stop := signalContext()
	defer stop()

	run, runErr := loader.New(client, gen, opts, globals.Logger(), clk).Run(ctx)

	if sink != nil {
		if err := sink.Close(); err != nil {
			emitWarning(globals, emitter, "closing "+c.Save+": "+err.Error())
		} else {
			emitInfo(globals, emitter, fmt.Sprintf("saved %d documents to %s", sink.Count(), sink.Path()), "")
		}
	}

	if err := writeRunReport(globals, emitter, run); err != nil {
		return err
	}

	if errors.Is(runErr, context.Canceled) {
		return outputErrorCommon(globals, "INTERRUPTED", "load interrupted")
	}
	if runErr != nil {
		return outputErrorCommon(globals, "LOAD_FAILED", runErr.Error())
	}
	if len(run.Indices) > 0 && run.Failed() == len(run.Indices) {
		first := run.Indices[0]
		return outputCLIError(globals, &CLIError{
			Code:    "LOAD_FAILED",
			Message: fmt.Sprintf("all %d indices failed: %s", len(run.Indices), first.Error),
			Hint:    hintForCluster(first.Err, sc),
			Err:     first.Err,
		})
	}
	return nil
}

func (c *LoadCmd) printBanner(w io.Writer, sc search.Config, mode search.MappingMode) error {
	label := output.Styles.Label.Render
	_, err := fmt.Fprintf(w, "%s\n\n%s\n"+
		"  %s %s\n"+
		"  %s %s\n"+
		"  %s %d\n"+
		"  %s %d\n"+
		"  %s %d\n"+
		"  %s %d\n"+
		"  %s %d (%s)\n\n",
		output.Section("OpenSearch Bulk Insert - Mock Data Generator", bannerWidth),
		output.Styles.Header.Render("Configuration:"),
		label("OpenSearch Host:"), sc.Address(),
		label("Index prefix:"), c.Index,
		label("Records to generate:"), c.Records,
		label("Fields per log object:"), c.Fields,
		label("Index count:"), c.Indices,
		label("Search rounds:"), c.Rounds,
		label("Mapping mode:"), int(mode), mode.Description(),
	)
	return err
}

// writeIndexReport prints one finished index
func writeIndexReport(globals *Globals, emitter *output.Emitter, r *domain.IndexReport, sc search.Config) error {
	if globals.Format == "ndjson" {
		if err := emitter.Index(r); err != nil {
			return err
		}
		if r.Search != nil && len(r.Search.Samples) > 0 {
			return emitter.Search(r.Search)
		}
		return nil
	}

	p := &textPrinter{w: globals.Stdout}
	p.f("\n%s\n", output.Section("Index "+r.Index, bannerWidth))
	if r.Created {
		p.f("%s Index created: %s\n", output.StatusIcon("ok"), r.Index)
	}
	if b := r.Bulk; b != nil {
		p.f("%s Successfully inserted: %d documents\n", output.StatusIcon("ok"), b.Succeeded)
		if b.Failed > 0 {
			p.f("%s Failed inserts: %d documents\n", output.StatusIcon("error"), b.Failed)
		}
		p.f("Total: %d documents (%.2fs)\n", b.Total(), b.Duration.Seconds())
	}
	if s := r.Stats; s != nil {
		p.f("\nIndex Statistics:\n")
		p.f("  Total documents: %d\n", s.DocCount)
		p.f("  Index size: %.2f MB\n", s.StoreSizeMB())
	}
	if r.Search != nil && len(r.Search.Samples) > 0 {
		writeSearchText(p, r.Search)
	}
	if r.Error != "" {
		p.f("%s Error: %s\n\n%s\n", output.StatusIcon("error"), r.Error, formatTips(troubleshootingTips(sc)))
	}
	return p.err
}

func writeSearchText(p *textPrinter, s *domain.SearchReport) {
	p.f("\nSearch Results:\n")
	p.f("  Average: %.2f ms\n", s.AverageMs)
	p.f("  Median: %.2f ms\n", s.MedianMs)
	p.f("  Min: %.2f ms\n", s.MinMs)
	p.f("  Max: %.2f ms\n", s.MaxMs)
	p.f("  Total: %.2f ms\n", s.TotalMs)
}

func writeRunReport(globals *Globals, emitter *output.Emitter, run *domain.RunReport) error {
	if run == nil {
		return nil
	}
	if globals.Format == "ndjson" {
		return emitter.Run(run)
	}

	secs := run.Duration.Seconds()
	p := &textPrinter{w: globals.Stdout}
	p.f("\n%s\n", output.Section("Run Complete!", bannerWidth))
	p.f("Run ID: %s\n", run.RunID)
	p.f("Indices: %d (failed: %d)\n", len(run.Indices), run.Failed())
	p.f("Total time: %.2f seconds (%.2f minutes)\n", secs, secs/60)
	p.f("Status: %s\n", output.StatusText(run.Failed()))
	return p.err
}

// textPrinter remembers the first write error
type textPrinter struct {
	w   io.Writer
	err error
}

func (p *textPrinter) f(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
