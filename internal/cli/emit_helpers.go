package cli

import (
	"fmt"

	"github.com/vburojevic/osbench/internal/output"
)

// emitInfo respects format/quiet.
func emitInfo(globals *Globals, emitter *output.Emitter, msg, index string) {
	if globals.Quiet {
		return
	}
	if globals.Format == "ndjson" && emitter != nil {
		_ = emitter.Info(msg, index)
		return
	}
	fmt.Fprintln(globals.Stdout, msg)
}

// emitWarning respects format/quiet.
func emitWarning(globals *Globals, emitter *output.Emitter, msg string) {
	if globals.Quiet {
		return
	}
	if globals.Format == "ndjson" && emitter != nil {
		_ = emitter.WriteWarning(msg)
		return
	}
	fmt.Fprintf(globals.Stderr, "Warning: %s\n", msg)
}
