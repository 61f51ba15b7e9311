package cli

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/vburojevic/osbench/internal/generator"
	"github.com/vburojevic/osbench/internal/output"
)

// GenerateCmd writes generated documents to a JSONL file without touching
// the cluster
type GenerateCmd struct {
	Records int    `short:"r" help:"Number of documents to write" default:"${config_records}"`
	Fields  int    `help:"Random fields per log object" default:"${config_fields}"`
	Out     string `short:"o" help:"Output path; a .zst suffix compresses with zstd" default:"${config_output}"`
	Seed    uint64 `help:"Random seed for reproducible output (0 seeds from the clock)"`
	Verify  bool   `help:"Read the file back and check every line"`
}

// Run executes the generate command
func (c *GenerateCmd) Run(globals *Globals) error {
	records, fields, path := c.Records, c.Fields, c.Out
	if records < 0 || fields < 0 {
		return outputErrorCommon(globals, "INVALID_OPTIONS", "records and fields must not be negative")
	}
	if path == "" {
		return outputErrorCommon(globals, "INVALID_OPTIONS", "output path must not be empty")
	}

	clk := globals.clock()
	gen := generator.New(generator.Options{
		NumFields: fields,
		Rand:      generator.NewRand(c.Seed, clk),
		Clock:     clk,
	})

	w, err := output.CreateDocumentFile(path)
	if err != nil {
		return outputErrorCommon(globals, "WRITE_ERROR", err.Error(), "Check the output directory exists and is writable")
	}

	log := globals.Logger()
	progress := log.Debug
	if globals.Interactive {
		progress = log.Info
	}

	for i := range records {
		if err := w.Write(gen.Document()); err != nil {
			_ = w.Close()
			return outputErrorCommon(globals, "WRITE_ERROR", fmt.Sprintf("record %d: %s", i+1, err))
		}
		progress(fmt.Sprintf("Record %d/%d saved", i+1, records))
	}
	if err := w.Close(); err != nil {
		return outputErrorCommon(globals, "WRITE_ERROR", err.Error())
	}
	log.Info("documents written", zap.String("path", path), zap.Int("records", w.Count()))

	if c.Verify {
		if err := verifyDocuments(path, records, fields); err != nil {
			return outputErrorCommon(globals, "VERIFY_FAILED", err.Error())
		}
	}

	if globals.Format == "ndjson" {
		return output.NewEmitter(globals.Stdout).Generate(path, w.Count(), fields, output.IsCompressed(path), c.Seed)
	}
	_, err = fmt.Fprintf(globals.Stdout, "%s Wrote %d documents with %d fields each to %s\n",
		output.StatusIcon("ok"), w.Count(), fields, path)
	return err
}

// verifyDocuments checks the file holds want lines, each with a log object
// of at least fields entries
func verifyDocuments(path string, want, fields int) error {
	r, err := output.OpenDocumentFile(path)
	if err != nil {
		return err
	}
	defer r.Close()

	n := 0
	for {
		doc, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		n++
		if got := len(doc.Log()); got < fields {
			return fmt.Errorf("line %d: log object has %d fields, want at least %d", n, got, fields)
		}
	}
	if n != want {
		return fmt.Errorf("read %d documents, want %d", n, want)
	}
	return nil
}
