package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/vburojevic/osbench/internal/config"
	"github.com/vburojevic/osbench/internal/logging"
)

// CLI is the root command structure for osbench
type CLI struct {
	// Global flags
	Format  string `short:"f" default:"${config_format}" enum:"ndjson,text" help:"Output format"`
	Quiet   bool   `short:"q" help:"Suppress progress logging (results are still printed)"`
	Verbose bool   `short:"v" help:"Show debug logging (per-record progress, settings updates)"`

	Version  VersionCmd  `cmd:"" help:"Show version information"`
	Examples ExamplesCmd `cmd:"" help:"Show usage examples for osbench commands"`

	// Commands
	Generate   GenerateCmd   `cmd:"" help:"Write generated mock log documents to a JSONL file"`
	Load       LoadCmd       `cmd:"" help:"Create indices, bulk load generated documents and benchmark search"`
	Search     SearchCmd     `cmd:"" help:"Benchmark search latency against an existing index"`
	Mapping    MappingCmd    `cmd:"" help:"Print the index creation body for a mapping mode"`
	Analyze    AnalyzeCmd    `cmd:"" help:"Summarize a graph traversal benchmark results file"`
	Doctor     DoctorCmd     `cmd:"" help:"Check cluster connectivity and configuration"`
	Config     ConfigCmd     `cmd:"" help:"Show or manage configuration"`
	Completion CompletionCmd `cmd:"" help:"Generate shell completions"`
}

// Globals holds shared state for all commands
type Globals struct {
	Format  string
	Quiet   bool
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config

	// ConfigFile is the path the configuration was loaded from, if any
	ConfigFile string
	// Interactive is true when stderr is a terminal
	Interactive bool
	Clock       clock.Clock

	logger *zap.Logger
}

// NewGlobalsWithConfig creates a new Globals instance with config fallbacks
func NewGlobalsWithConfig(cli *CLI, cfg *config.Config) *Globals {
	if cfg == nil {
		cfg = config.Default()
	}
	g := &Globals{
		Format:      cli.Format,
		Quiet:       cli.Quiet || cfg.Quiet,
		Verbose:     cli.Verbose || cfg.Verbose,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Config:      cfg,
		Interactive: isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()),
		Clock:       clock.New(),
	}
	return g
}

// Logger returns the progress logger, writing to Stderr
func (g *Globals) Logger() *zap.Logger {
	if g.logger == nil {
		g.logger = logging.New(g.Stderr, g.Verbose, g.Quiet)
	}
	return g.logger
}

// SetLogger replaces the progress logger
func (g *Globals) SetLogger(l *zap.Logger) {
	g.logger = l
}

func (g *Globals) clock() clock.Clock {
	if g.Clock == nil {
		g.Clock = clock.New()
	}
	return g.Clock
}

func (g *Globals) config() *config.Config {
	if g.Config == nil {
		g.Config = config.Default()
	}
	return g.Config
}

// Debug prints a debug message if verbose mode is enabled
func (g *Globals) Debug(format string, args ...interface{}) {
	g.Logger().Debug(fmt.Sprintf(format, args...))
}

// VersionCmd shows version information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run(globals *Globals) error {
	if globals.Format == "ndjson" {
		_, err := io.WriteString(globals.Stdout, `{"type":"version","version":"`+Version+`","commit":"`+Commit+`"}`+"\n")
		return err
	}
	_, err := io.WriteString(globals.Stdout, "osbench version "+Version+" ("+Commit+")\n")
	return err
}

// Version information (set at build time)
var (
	Version = "dev"
	Commit  = "none"
)

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
