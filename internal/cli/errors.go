package cli

import (
	"fmt"

	"github.com/vburojevic/osbench/internal/output"
)

// outputErrorCommon normalizes error emission across commands, respecting
// ndjson vs text formats so scripts always get machine-readable failures.
func outputErrorCommon(globals *Globals, code, message string, hint ...string) error {
	return outputCLIError(globals, &CLIError{Code: code, Message: message, Hint: firstHint(hint)})
}

// outputCLIError emits e and returns it
func outputCLIError(globals *Globals, e *CLIError) error {
	if globals != nil && globals.Format == "ndjson" {
		_ = output.NewNDJSONWriter(globals.Stdout).WriteError(e.Code, e.Message, e.Hint)
	} else if globals != nil {
		fmt.Fprintf(globals.Stderr, "Error [%s]: %s\n", e.Code, e.Message)
		if e.Hint != "" {
			fmt.Fprintf(globals.Stderr, "\n%s\n", e.Hint)
		}
	}
	return e
}

func firstHint(hints []string) string {
	for _, h := range hints {
		if h != "" {
			return h
		}
	}
	return ""
}
