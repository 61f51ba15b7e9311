package cli

import (
	"encoding/json"
	"fmt"

	"github.com/vburojevic/osbench/internal/config"
)

// ConfigCmd shows or manages configuration
type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" default:"withargs" help:"Show current configuration"`
	Path     ConfigPathCmd     `cmd:"" help:"Show configuration file path"`
	Generate ConfigGenerateCmd `cmd:"" help:"Generate sample configuration file"`
}

// ConfigShowCmd shows current configuration
type ConfigShowCmd struct{}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.config()

	// the password never leaves the process
	conn := cfg.OpenSearch
	if conn.Password != "" {
		conn.Password = "********"
	}

	if globals.Format == "ndjson" {
		output := map[string]interface{}{
			"type":       "config",
			"format":     cfg.Format,
			"quiet":      cfg.Quiet,
			"verbose":    cfg.Verbose,
			"opensearch": conn,
			"load":       cfg.Load,
			"analyze":    cfg.Analyze,
			"file":       globals.ConfigFile,
		}
		encoder := json.NewEncoder(globals.Stdout)
		return encoder.Encode(output)
	}

	// Text output
	p := &textPrinter{w: globals.Stdout}
	p.f("Current Configuration:\n\n")
	p.f("  format:  %s\n", cfg.Format)
	p.f("  quiet:   %v\n", cfg.Quiet)
	p.f("  verbose: %v\n", cfg.Verbose)
	p.f("\nOpenSearch:\n")
	p.f("  host:        %s\n", conn.Host)
	p.f("  port:        %d\n", conn.Port)
	p.f("  user:        %s\n", conn.User)
	p.f("  password:    %s\n", conn.Password)
	p.f("  ssl:         %v\n", conn.SSL)
	p.f("  max_retries: %d\n", conn.MaxRetries)
	p.f("\nLoad:\n")
	p.f("  index_prefix: %s\n", cfg.Load.IndexPrefix)
	p.f("  records:      %d\n", cfg.Load.Records)
	p.f("  fields:       %d\n", cfg.Load.Fields)
	p.f("  index_count:  %d\n", cfg.Load.IndexCount)
	p.f("  read_rounds:  %d\n", cfg.Load.ReadRounds)
	p.f("  mapping_mode: %s\n", cfg.Load.MappingMode)
	p.f("  flush_bytes:  %d\n", cfg.Load.FlushBytes)
	p.f("  field_limit:  %d\n", cfg.Load.FieldLimit)
	p.f("  output:       %s\n", cfg.Load.Output)
	p.f("\nAnalyze:\n")
	p.f("  pattern: %s\n", cfg.Analyze.Pattern)

	if globals.ConfigFile != "" {
		p.f("\nLoaded from: %s\n", globals.ConfigFile)
	}

	return p.err
}

// ConfigPathCmd shows config file path
type ConfigPathCmd struct{}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	path := globals.ConfigFile
	if path == "" {
		path = config.ConfigFile()
	}

	if globals.Format == "ndjson" {
		output := map[string]interface{}{
			"type": "config_path",
			"path": path,
		}
		encoder := json.NewEncoder(globals.Stdout)
		return encoder.Encode(output)
	}

	if path == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found")
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintln(globals.Stdout, "Create one at:")
		fmt.Fprintln(globals.Stdout, "  ./.osbench.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.osbench.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.config/osbench/config.yaml")
	} else {
		fmt.Fprintf(globals.Stdout, "Config file: %s\n", path)
	}

	return nil
}

// ConfigGenerateCmd generates a sample configuration file
type ConfigGenerateCmd struct{}

// Run executes the config generate command
func (c *ConfigGenerateCmd) Run(globals *Globals) error {
	sampleConfig := `# osbench configuration file
# Place this file at ./.osbench.yaml, ~/.osbench.yaml or
# ~/.config/osbench/config.yaml

# Output format: "text" (default) or "ndjson"
format: text

# Suppress progress logging
quiet: false

# Enable debug logging (per-record progress)
verbose: false

opensearch:
  host: localhost
  port: 9200
  user: admin
  # password: admin   (or set OSBENCH_PASSWORD)
  # HTTPS with certificate verification disabled
  ssl: false
  # retries on 429/502/503/504
  max_retries: 3

load:
  # indices are named <index_prefix>-1 .. <index_prefix>-<index_count>
  index_prefix: mock-logs
  index_count: 10

  # documents per index and random fields per log object
  records: 10
  fields: 100000

  # timed searches per index
  read_rounds: 50

  # 0 dynamic, 1 disabled, 2 templates, 3 object
  mapping_mode: 1

  # bulk request size threshold in bytes
  flush_bytes: 5242880

  # index.mapping.total_fields.limit
  field_limit: 1000000

  # file written by 'osbench generate' (.zst compresses)
  output: mock_logs_large.jsonl

analyze:
  # used when 'osbench analyze' is run without a file
  pattern: "benchmark_results_*.json"
`

	_, err := fmt.Fprint(globals.Stdout, sampleConfig)
	return err
}
