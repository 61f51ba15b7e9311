package cli

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExamplesCmd shows usage examples for osbench commands
type ExamplesCmd struct {
	Command string `arg:"" optional:"" help:"Show examples for one command (load, generate, search, ...)"`
	JSON    bool   `help:"Output as JSON for programmatic access"`
}

// Example represents a single usage example
type Example struct {
	Command     string `json:"command"`
	Description string `json:"description"`
	Output      string `json:"output,omitempty"`
	When        string `json:"when,omitempty"`
}

// CommandExamples holds examples for a single command
type CommandExamples struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Examples    []Example `json:"examples"`
}

// AllExamples contains examples for all commands
type AllExamples struct {
	Type      string            `json:"type"`
	Version   string            `json:"version"`
	Commands  []CommandExamples `json:"commands"`
	Workflows []WorkflowExample `json:"workflows"`
}

// WorkflowExample shows a multi-step workflow
type WorkflowExample struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	When        string   `json:"when"`
	Steps       []string `json:"steps"`
}

// exampleOrder is the order commands are listed in
var exampleOrder = []string{"load", "generate", "search", "mapping", "analyze", "doctor", "config"}

var commandExamples = map[string]CommandExamples{
	"load": {
		Name:        "load",
		Description: "Create indices, bulk load generated documents and time searches",
		Examples: []Example{
			{
				Command:     `osbench load`,
				Description: "Full run with the configured defaults (10 indices, 10 documents of 100000 fields each)",
				When:        "Reproducing the baseline wide-document benchmark",
			},
			{
				Command:     `osbench load -n 1 -r 100 --fields 1000 -m templates`,
				Description: "One index, log.* mapped through dynamic templates that skip indexing",
				When:        "Comparing mapping modes on a small cluster",
			},
			{
				Command:     `osbench load -f ndjson --save docs.jsonl.zst`,
				Description: "Machine-readable progress, plus a compressed copy of every document",
				Output:      `{"type":"index_loaded","schemaVersion":1,"index":"mock-logs-1","succeeded":10,...}`,
				When:        "Scripting runs and keeping the exact corpus that was loaded",
			},
			{
				Command:     `osbench load --url https://search.internal:9200 --user loader`,
				Description: "Target a remote HTTPS cluster; the password comes from OSBENCH_PASSWORD",
			},
		},
	},
	"generate": {
		Name:        "generate",
		Description: "Write generated documents to a JSONL file without a cluster",
		Examples: []Example{
			{
				Command:     `osbench generate -r 1000 --fields 500 -o docs.jsonl`,
				Description: "1000 documents with 500 random log fields each",
			},
			{
				Command:     `osbench generate --seed 42 --verify -o docs.jsonl.zst`,
				Description: "Reproducible, zstd compressed output, read back and checked",
				Output:      `{"type":"generate_complete","schemaVersion":1,"path":"docs.jsonl.zst","records":10,...}`,
			},
		},
	},
	"search": {
		Name:        "search",
		Description: "Time repeated searches against an existing index",
		Examples: []Example{
			{
				Command:     `osbench search mock-logs-1 -r 200`,
				Description: "200 timed {\"size\":10} searches with avg/median/min/max",
				When:        "Measuring read latency after a load without reloading",
			},
		},
	},
	"mapping": {
		Name:        "mapping",
		Description: "Print the index creation body a mapping mode sends",
		Examples: []Example{
			{Command: `osbench mapping 2`, Description: "Show the dynamic templates body"},
			{Command: `osbench mapping --list -f ndjson`, Description: "Every mode with its body and settings"},
		},
	},
	"analyze": {
		Name:        "analyze",
		Description: "Summarize a graph traversal benchmark results file",
		Examples: []Example{
			{
				Command:     `osbench analyze`,
				Description: "Use the most recent benchmark_results_*.json in the working directory",
			},
			{
				Command:     `osbench analyze results.json -f ndjson`,
				Description: "One depth_summary line per maxDepth",
				Output:      `{"type":"depth_summary","schemaVersion":1,"max_depth":3,...}`,
			},
		},
	},
	"doctor": {
		Name:        "doctor",
		Description: "Check cluster connectivity and configuration",
		Examples: []Example{
			{Command: `osbench doctor`, Description: "Connection test with troubleshooting tips"},
			{Command: `osbench doctor --ssl --port 9200`, Description: "Check an HTTPS cluster"},
		},
	},
	"config": {
		Name:        "config",
		Description: "Show or manage configuration",
		Examples: []Example{
			{Command: `osbench config generate > ~/.osbench.yaml`, Description: "Write a sample config with every default"},
			{Command: `osbench config show`, Description: "Effective configuration after env overrides"},
		},
	},
}

var workflows = []WorkflowExample{
	{
		Name:        "Compare mapping modes",
		Description: "Load the same corpus under each mapping mode and compare store size and latency",
		When:        "Deciding how to map a wide, mostly unqueried log object",
		Steps: []string{
			"osbench load -n 1 -i mode0 -m 0 --seed 7 -f ndjson > mode0.ndjson",
			"osbench load -n 1 -i mode1 -m 1 --seed 7 -f ndjson > mode1.ndjson",
			"osbench load -n 1 -i mode2 -m 2 --seed 7 -f ndjson > mode2.ndjson",
			"jq 'select(.type==\"index_loaded\") | {index, store_size_bytes}' mode*.ndjson",
		},
	},
	{
		Name:        "Offline corpus",
		Description: "Generate once, inspect, then load elsewhere",
		When:        "The cluster is not reachable from the machine generating data",
		Steps: []string{
			"osbench generate -r 500 --fields 2000 --seed 1 -o corpus.jsonl.zst --verify",
			"osbench doctor --url https://remote:9200",
			"osbench load --url https://remote:9200 -r 500 --fields 2000 --seed 1",
		},
	},
}

// Run executes the examples command
func (c *ExamplesCmd) Run(globals *Globals) error {
	if c.JSON || globals.Format == "ndjson" {
		return c.outputJSON(globals)
	}
	return c.outputText(globals)
}

func (c *ExamplesCmd) selected() ([]CommandExamples, error) {
	if c.Command != "" {
		examples, ok := commandExamples[c.Command]
		if !ok {
			return nil, fmt.Errorf("unknown command: %s\nAvailable: %s", c.Command, strings.Join(exampleOrder, ", "))
		}
		return []CommandExamples{examples}, nil
	}
	all := make([]CommandExamples, 0, len(exampleOrder))
	for _, name := range exampleOrder {
		all = append(all, commandExamples[name])
	}
	return all, nil
}

func (c *ExamplesCmd) outputJSON(globals *Globals) error {
	cmds, err := c.selected()
	if err != nil {
		return outputErrorCommon(globals, "UNKNOWN_COMMAND", err.Error())
	}
	all := AllExamples{
		Type:      "examples",
		Version:   Version,
		Commands:  cmds,
		Workflows: workflows,
	}

	data, err := json.Marshal(all)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(globals.Stdout, string(data))
	return err
}

func (c *ExamplesCmd) outputText(globals *Globals) error {
	cmds, err := c.selected()
	if err != nil {
		return outputErrorCommon(globals, "UNKNOWN_COMMAND", err.Error())
	}

	var sb strings.Builder
	if c.Command == "" {
		sb.WriteString("OSBENCH USAGE EXAMPLES\n")
		sb.WriteString("======================\n\n")
	}
	for _, cmd := range cmds {
		c.formatCommandExamples(&sb, cmd)
		sb.WriteString("\n")
	}

	if c.Command == "" {
		sb.WriteString("WORKFLOWS\n")
		sb.WriteString("---------\n\n")
		for _, wf := range workflows {
			fmt.Fprintf(&sb, "## %s\n", wf.Name)
			fmt.Fprintf(&sb, "%s\n", wf.Description)
			fmt.Fprintf(&sb, "When: %s\n\n", wf.When)
			for _, step := range wf.Steps {
				fmt.Fprintf(&sb, "  %s\n", step)
			}
			sb.WriteString("\n")
		}
	}

	_, err = fmt.Fprint(globals.Stdout, sb.String())
	return err
}

func (c *ExamplesCmd) formatCommandExamples(sb *strings.Builder, cmd CommandExamples) {
	fmt.Fprintf(sb, "## %s\n", strings.ToUpper(cmd.Name))
	fmt.Fprintf(sb, "%s\n\n", cmd.Description)

	for _, ex := range cmd.Examples {
		fmt.Fprintf(sb, "  %s\n", ex.Command)
		fmt.Fprintf(sb, "    %s\n", ex.Description)
		if ex.Output != "" {
			fmt.Fprintf(sb, "    Output: %s\n", ex.Output)
		}
		if ex.When != "" {
			fmt.Fprintf(sb, "    When: %s\n", ex.When)
		}
		sb.WriteString("\n")
	}
}
