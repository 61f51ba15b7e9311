package cli

import (
	"errors"
	"io/fs"

	"github.com/vburojevic/osbench/internal/analysis"
	"github.com/vburojevic/osbench/internal/output"
)

// AnalyzeCmd summarizes a graph traversal benchmark results file
type AnalyzeCmd struct {
	File    string `arg:"" optional:"" help:"Results JSON file (default: most recent match in the working directory)"`
	Dir     string `help:"Directory searched when no file is given" default:"."`
	Pattern string `help:"Glob used to find the most recent results file" default:"${config_analyze_pattern}"`
}

// Run executes the analyze command
func (c *AnalyzeCmd) Run(globals *Globals) error {
	path := c.File
	if path == "" {
		pattern := orString(c.Pattern, globals.config().Analyze.Pattern)
		latest, err := analysis.Latest(orString(c.Dir, "."), pattern)
		if err != nil {
			return outputCLIError(globals, &CLIError{Code: "NO_RESULTS", Message: err.Error(), Hint: hintForResults(err), Err: err})
		}
		path = latest
		emitInfo(globals, output.NewEmitter(globals.Stdout), "Using most recent results: "+path, "")
	}

	results, err := analysis.Load(path)
	if err != nil {
		code := "READ_ERROR"
		switch {
		case errors.Is(err, fs.ErrNotExist):
			code = "FILE_NOT_FOUND"
		case errors.Is(err, analysis.ErrInvalidResults):
			code = "INVALID_RESULTS"
		}
		return outputCLIError(globals, &CLIError{Code: code, Message: err.Error(), Hint: hintForResults(err), Err: err})
	}

	report := analysis.Analyze(results)
	if globals.Format == "ndjson" {
		return report.WriteNDJSON(globals.Stdout)
	}
	return report.WriteText(globals.Stdout)
}
