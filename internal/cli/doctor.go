package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vburojevic/osbench/internal/config"
	"github.com/vburojevic/osbench/internal/output"
	"github.com/vburojevic/osbench/internal/search"
)

// DoctorCmd checks cluster connectivity and configuration
type DoctorCmd struct {
	ConnectionFlags `embed:""`
}

// checkResult represents a single diagnostic check
type checkResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

// doctorReport is the complete diagnostic report
type doctorReport struct {
	Type          string        `json:"type"`
	SchemaVersion int           `json:"schemaVersion"`
	Timestamp     string        `json:"timestamp"`
	Checks        []checkResult `json:"checks"`
	AllPassed     bool          `json:"all_passed"`
	ErrorCount    int           `json:"error_count"`
	WarnCount     int           `json:"warn_count"`
}

// Run executes the doctor command
func (c *DoctorCmd) Run(globals *Globals) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := globals.config()
	sc := c.resolve(cfg)

	var checks []checkResult
	checks = append(checks, c.checkConfig(globals))
	checks = append(checks, c.checkCluster(ctx, sc)...)
	checks = append(checks, c.checkOutputPath(cfg.Load.Output))

	// Count errors and warnings
	errorCount := 0
	warnCount := 0
	for _, check := range checks {
		if check.Status == "error" {
			errorCount++
		} else if check.Status == "warning" {
			warnCount++
		}
	}

	report := doctorReport{
		Type:          "doctor",
		SchemaVersion: output.SchemaVersion,
		Timestamp:     globals.clock().Now().Format(time.RFC3339),
		Checks:        checks,
		AllPassed:     errorCount == 0,
		ErrorCount:    errorCount,
		WarnCount:     warnCount,
	}

	if globals.Format == "ndjson" {
		encoder := json.NewEncoder(globals.Stdout)
		return encoder.Encode(report)
	}

	// Text output
	p := &textPrinter{w: globals.Stdout}
	p.f("%s\n\n", output.Section("osbench Doctor", bannerWidth))
	for _, check := range checks {
		p.f("%s %s\n", output.StatusIcon(check.Status), check.Name)
		if check.Message != "" {
			p.f("  %s\n", check.Message)
		}
		if check.Details != "" {
			p.f("  %s\n", check.Details)
		}
	}

	p.f("\n")
	if errorCount == 0 && warnCount == 0 {
		p.f("All checks passed!\n")
	} else {
		p.f("Errors: %d, Warnings: %d\n", errorCount, warnCount)
	}
	if errorCount > 0 {
		p.f("\n%s\n", formatTips(troubleshootingTips(sc)))
	}
	return p.err
}

func (c *DoctorCmd) checkConfig(globals *Globals) checkResult {
	configPath := globals.ConfigFile
	if configPath == "" {
		configPath = config.ConfigFile()
	}
	if configPath == "" {
		return checkResult{
			Name:    "Config",
			Status:  "ok",
			Message: "Using defaults (no config file)",
			Details: "Create with: osbench config generate > ~/.osbench.yaml",
		}
	}

	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return checkResult{
			Name:    "Config",
			Status:  "error",
			Message: "Config file has errors",
			Details: err.Error(),
		}
	}

	if _, err := search.ParseMappingMode(cfg.Load.MappingMode); err != nil {
		return checkResult{
			Name:    "Config",
			Status:  "warning",
			Message: fmt.Sprintf("Loaded from: %s", absPath(configPath)),
			Details: err.Error(),
		}
	}

	return checkResult{
		Name:    "Config",
		Status:  "ok",
		Message: fmt.Sprintf("Loaded from: %s", absPath(configPath)),
		Details: fmt.Sprintf("Host: %s:%d, Index prefix: %s", cfg.OpenSearch.Host, cfg.OpenSearch.Port, cfg.Load.IndexPrefix),
	}
}

// checkCluster runs the connection test and flags insecure TLS
func (c *DoctorCmd) checkCluster(ctx context.Context, sc search.Config) []checkResult {
	client, err := search.NewClient(sc)
	if err != nil {
		return []checkResult{{
			Name:    "OpenSearch",
			Status:  "error",
			Message: "Invalid client configuration",
			Details: err.Error(),
		}}
	}

	info, err := client.Info(ctx)
	if err != nil {
		return []checkResult{{
			Name:    "OpenSearch",
			Status:  "error",
			Message: fmt.Sprintf("Cannot connect to %s", sc.Address()),
			Details: hintForCluster(err, sc) + " (" + err.Error() + ")",
		}}
	}

	checks := []checkResult{{
		Name:    "OpenSearch",
		Status:  "ok",
		Message: fmt.Sprintf("Connected to OpenSearch: %s", info.Version),
		Details: fmt.Sprintf("cluster %s at %s", info.ClusterName, sc.Address()),
	}}

	if sc.SSL {
		checks = append(checks, checkResult{
			Name:    "TLS",
			Status:  "warning",
			Message: "Certificate verification is disabled",
			Details: "Suitable for local test clusters only",
		})
	}
	return checks
}

func (c *DoctorCmd) checkOutputPath(path string) checkResult {
	dir := filepath.Dir(absPath(path))
	if !c.checkWritePermission(dir) {
		return checkResult{
			Name:    "Output",
			Status:  "warning",
			Message: fmt.Sprintf("Cannot write to %s", dir),
			Details: "generate and load --save will fail; pick another --out path",
		}
	}
	return checkResult{
		Name:    "Output",
		Status:  "ok",
		Message: fmt.Sprintf("Documents file: %s", path),
	}
}

// checkWritePermission checks if we can write to a directory
func (c *DoctorCmd) checkWritePermission(path string) bool {
	testFile := filepath.Join(path, ".osbench_test_"+fmt.Sprint(os.Getpid()))
	f, err := os.Create(testFile)
	if err != nil {
		return false
	}
	f.Close()
	os.Remove(testFile)
	return true
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
