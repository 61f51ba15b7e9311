package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/vburojevic/osbench/internal/cli"
	"github.com/vburojevic/osbench/internal/config"
)

const quickStart = `osbench - OpenSearch bulk load and search latency benchmark

START HERE (this is the command you want):
  osbench load -n 1 -r 10 --fields 1000

Flags:
  -n    Number of indices (<prefix>-1..<prefix>-N)
  -r    Documents per index
  -m    Mapping mode for the log object (0 dynamic, 1 disabled, 2 templates, 3 object)

Other useful commands:
  osbench doctor                        Check the cluster is reachable
  osbench generate -o docs.jsonl.zst    Write documents without a cluster
  osbench analyze                       Summarize the latest benchmark_results_*.json
`

func main() {
	// Show quick start if no args provided
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	// Load configuration from files/environment (plus provenance metadata).
	cfg, meta, err := config.LoadWithMeta()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
		meta = nil
	}

	var c cli.CLI

	ctx := kong.Parse(&c,
		kong.Name("osbench"),
		kong.Description("osbench: generate wide mock log documents, bulk load them into OpenSearch and time searches\n\nSTART HERE: osbench load\n\nScripts: pass -f ndjson for machine-readable output"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		cli.ConfigVars(cfg),
	)

	// Create globals with config fallbacks
	globals := cli.NewGlobalsWithConfig(&c, cfg)
	if meta != nil {
		globals.ConfigFile = meta.ConfigFile
		for _, name := range meta.EnvApplied {
			globals.Debug("applied %s from environment", name)
		}
	}
	err = ctx.Run(globals)
	_ = globals.Logger().Sync()
	if err != nil {
		os.Exit(1)
	}
}
