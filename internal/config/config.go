package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format" json:"format"`
	Quiet   bool   `mapstructure:"quiet" json:"quiet"`
	Verbose bool   `mapstructure:"verbose" json:"verbose"`

	// Cluster connection
	OpenSearch OpenSearchConfig `mapstructure:"opensearch" json:"opensearch"`

	// Load command defaults
	Load LoadConfig `mapstructure:"load" json:"load"`

	// Analyze command defaults
	Analyze AnalyzeConfig `mapstructure:"analyze" json:"analyze"`
}

// OpenSearchConfig describes how to reach the cluster
type OpenSearchConfig struct {
	Host       string `mapstructure:"host" json:"host"`
	Port       int    `mapstructure:"port" json:"port"`
	User       string `mapstructure:"user" json:"user"`
	Password   string `mapstructure:"password" json:"password"`
	SSL        bool   `mapstructure:"ssl" json:"ssl"`
	MaxRetries int    `mapstructure:"max_retries" json:"max_retries"`
}

// LoadConfig holds defaults for the generate/load/search commands
type LoadConfig struct {
	IndexPrefix string `mapstructure:"index_prefix" json:"index_prefix"`
	Records     int    `mapstructure:"records" json:"records"`
	Fields      int    `mapstructure:"fields" json:"fields"`
	IndexCount  int    `mapstructure:"index_count" json:"index_count"`
	ReadRounds  int    `mapstructure:"read_rounds" json:"read_rounds"`
	MappingMode string `mapstructure:"mapping_mode" json:"mapping_mode"`
	FlushBytes  int    `mapstructure:"flush_bytes" json:"flush_bytes"`
	FieldLimit  int    `mapstructure:"field_limit" json:"field_limit"`
	Output      string `mapstructure:"output" json:"output"`
}

// AnalyzeConfig holds defaults for the analyze command
type AnalyzeConfig struct {
	// Glob used to find the most recent results file when none is given
	Pattern string `mapstructure:"pattern" json:"pattern"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:  "text",
		Quiet:   false,
		Verbose: false,
		OpenSearch: OpenSearchConfig{
			Host:       "localhost",
			Port:       9200,
			User:       "admin",
			MaxRetries: 3,
		},
		Load: LoadConfig{
			IndexPrefix: "mock-logs",
			Records:     10,
			Fields:      100000,
			IndexCount:  10,
			ReadRounds:  50,
			MappingMode: "1",
			FlushBytes:  5 * 1024 * 1024,
			FieldLimit:  1000000,
			Output:      "mock_logs_large.jsonl",
		},
		Analyze: AnalyzeConfig{
			Pattern: "benchmark_results_*.json",
		},
	}
}

// Load loads configuration from files and environment
// Config file search order (highest precedence first):
// 1. ./.osbench.yaml or ./.osbench.yml
// 2. ~/.osbench.yaml or ~/.osbench.yml
// 3. $XDG_CONFIG_HOME/osbench/config.yaml (or ~/.config/osbench/config.yaml)
// 4. /etc/osbench/config.yaml
func Load() (*Config, error) {
	cfg, _, err := LoadWithMeta()
	return cfg, err
}

// Meta records where the loaded configuration came from
type Meta struct {
	ConfigFile string
	EnvApplied []string
}

// LoadWithMeta is Load plus provenance metadata
func LoadWithMeta() (*Config, *Meta, error) {
	cfg := Default()
	meta := &Meta{}

	configFile := findConfigFile()
	if configFile != "" {
		loaded, err := LoadFromFile(configFile)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
		meta.ConfigFile = configFile
	}

	meta.EnvApplied = applyEnvOverrides(cfg)

	return cfg, meta, nil
}

// findConfigFile searches for config file in standard locations
func findConfigFile() string {
	names := []string{".osbench.yaml", ".osbench.yml", "osbench.yaml", "osbench.yml"}

	home, homeErr := os.UserHomeDir()
	configDir, configDirErr := os.UserConfigDir()

	var searchPaths []string

	// 1. Current directory
	cwd, err := os.Getwd()
	if err == nil {
		searchPaths = append(searchPaths, cwd)
	}

	// 2. Home directory
	if homeErr == nil {
		searchPaths = append(searchPaths, home)
	}

	// 3. Config directory (e.g., ~/.config/osbench/)
	if configDirErr == nil {
		searchPaths = append(searchPaths, filepath.Join(configDir, "osbench"))
	}

	// 4. System config
	searchPaths = append(searchPaths, "/etc/osbench")

	for _, dir := range searchPaths {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		// config.yaml only counts inside an osbench-specific directory
		if filepath.Base(dir) == "osbench" {
			path := filepath.Join(dir, "config.yaml")
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to config and
// returns the names of the variables that were applied
func applyEnvOverrides(cfg *Config) []string {
	var applied []string
	set := func(name string, fn func(v string) bool) {
		if v := os.Getenv(name); v != "" && fn(v) {
			applied = append(applied, name)
		}
	}

	set("OSBENCH_FORMAT", func(v string) bool { cfg.Format = v; return true })
	set("OSBENCH_QUIET", func(v string) bool {
		cfg.Quiet = isTrue(v)
		return cfg.Quiet
	})
	set("OSBENCH_VERBOSE", func(v string) bool {
		cfg.Verbose = isTrue(v)
		return cfg.Verbose
	})
	set("OSBENCH_HOST", func(v string) bool { cfg.OpenSearch.Host = v; return true })
	set("OSBENCH_PORT", func(v string) bool {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 {
			return false
		}
		cfg.OpenSearch.Port = port
		return true
	})
	set("OSBENCH_USER", func(v string) bool { cfg.OpenSearch.User = v; return true })
	set("OSBENCH_PASSWORD", func(v string) bool { cfg.OpenSearch.Password = v; return true })
	set("OSBENCH_SSL", func(v string) bool { cfg.OpenSearch.SSL = isTrue(v); return true })
	set("OSBENCH_INDEX", func(v string) bool { cfg.Load.IndexPrefix = v; return true })

	return applied
}

func isTrue(v string) bool {
	return v == "true" || v == "1"
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFile returns the path to the config file that would be loaded
func ConfigFile() string {
	return findConfigFile()
}
