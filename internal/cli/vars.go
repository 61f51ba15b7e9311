package cli

import (
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/vburojevic/osbench/internal/config"
)

// ConfigVars exposes cfg as kong interpolation variables so flag defaults
// come from the loaded configuration. An explicit flag always wins.
func ConfigVars(cfg *config.Config) kong.Vars {
	return kong.Vars{
		"config_format":          cfg.Format,
		"config_host":            cfg.OpenSearch.Host,
		"config_port":            strconv.Itoa(cfg.OpenSearch.Port),
		"config_user":            cfg.OpenSearch.User,
		"config_ssl":             strconv.FormatBool(cfg.OpenSearch.SSL),
		"config_max_retries":     strconv.Itoa(cfg.OpenSearch.MaxRetries),
		"config_index":           cfg.Load.IndexPrefix,
		"config_index_count":     strconv.Itoa(cfg.Load.IndexCount),
		"config_records":         strconv.Itoa(cfg.Load.Records),
		"config_fields":          strconv.Itoa(cfg.Load.Fields),
		"config_read_rounds":     strconv.Itoa(cfg.Load.ReadRounds),
		"config_mapping_mode":    cfg.Load.MappingMode,
		"config_field_limit":     strconv.Itoa(cfg.Load.FieldLimit),
		"config_flush_bytes":     strconv.Itoa(cfg.Load.FlushBytes),
		"config_output":          cfg.Load.Output,
		"config_analyze_pattern": cfg.Analyze.Pattern,
	}
}
