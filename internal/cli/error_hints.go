package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/vburojevic/osbench/internal/analysis"
	"github.com/vburojevic/osbench/internal/search"
)

// troubleshootingTips lists the checks worth doing when the cluster cannot
// be used at all
func troubleshootingTips(cfg search.Config) []string {
	ssl := "currently SSL off"
	if cfg.SSL {
		ssl = "currently SSL on, certificate verification disabled"
	}
	return []string{
		fmt.Sprintf("Check OpenSearch is running on %s:%d", cfg.Host, cfg.Port),
		fmt.Sprintf("Verify credentials (username: %s)", cfg.User),
		fmt.Sprintf("Check SSL settings (%s)", ssl),
	}
}

// hintForCluster picks the most specific tip for err, falling back to the
// full list
func hintForCluster(err error, cfg search.Config) string {
	if err == nil {
		return ""
	}
	tips := troubleshootingTips(cfg)
	switch {
	case search.IsUnauthorized(err):
		return tips[1]
	case search.IsTLSError(err):
		return tips[2] + "; toggle --ssl to match the cluster"
	case search.IsConnectionError(err):
		return tips[0] + "; run `osbench doctor` for diagnostics"
	}
	var se *search.StatusError
	if errors.As(err, &se) && se.Type == "illegal_argument_exception" && strings.Contains(se.Reason, "total_fields") {
		return "Raise --field-limit or pick a mapping mode that does not index log.* (--mapping 1)"
	}
	return formatTips(tips)
}

func formatTips(tips []string) string {
	var b strings.Builder
	b.WriteString("Troubleshooting tips:")
	for i, tip := range tips {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, tip)
	}
	return b.String()
}

func hintForMappingMode() string {
	names := make([]string, 0, len(search.MappingModes))
	for _, m := range search.MappingModes {
		names = append(names, fmt.Sprintf("%d|%s", int(m), m))
	}
	return "Use one of: " + strings.Join(names, ", ")
}

func hintForResults(err error) string {
	switch {
	case errors.Is(err, analysis.ErrNoResults):
		return "Usage: osbench analyze <results.json>"
	case errors.Is(err, fs.ErrNotExist):
		return "Check the path; results files are named like " + analysis.DefaultPattern
	case errors.Is(err, analysis.ErrInvalidResults):
		return "The file must be a JSON object with metadata, singleStart and multipleStart"
	}
	return ""
}
