package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all zonereport run configuration
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// InputConfig locates the tracker and rule sources.
// Format selects csv or xlsx; sheet names only apply to xlsx.
type InputConfig struct {
	Format       string `yaml:"format"`
	RecordsPath  string `yaml:"records_path"`
	RulesPath    string `yaml:"rules_path"`
	RecordsSheet string `yaml:"records_sheet"`
	RulesSheet   string `yaml:"rules_sheet"`
}

// PipelineConfig configures the aggregation pipeline
type PipelineConfig struct {
	// ZonePrefix is the top-level naming convention; rows whose zone code
	// lacks it are excluded with a recorded reason
	ZonePrefix string `yaml:"zone_prefix"`
	// TolerancePercent is the reconciliation tolerance. Zero is strict.
	TolerancePercent float64 `yaml:"tolerance_percent"`
	Parallel         bool    `yaml:"parallel"`
	MaxWorkers       int     `yaml:"max_workers"`
}

// OutputConfig configures the renderer layer
type OutputConfig struct {
	// Formats is any subset of: text, json, csv, html, xlsx
	Formats []string `yaml:"formats"`
	Dir     string   `yaml:"dir"`
}

// LoggingConfig configures structured logging
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the strict defaults: ZN prefix, zero tolerance, text output
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Format: "csv",
		},
		Pipeline: PipelineConfig{
			ZonePrefix:       "ZN",
			TolerancePercent: 0,
		},
		Output: OutputConfig{
			Formats: []string{"text"},
			Dir:     ".",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file over the defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validFormats = map[string]bool{
	"text": true,
	"json": true,
	"csv":  true,
	"html": true,
	"xlsx": true,
}

// Validate checks the loaded configuration for usable values
func (c *Config) Validate() error {
	switch c.Input.Format {
	case "csv", "xlsx":
	default:
		return fmt.Errorf("invalid input format %q (expected csv or xlsx)", c.Input.Format)
	}

	if c.Pipeline.TolerancePercent < 0 {
		return fmt.Errorf("tolerance_percent must not be negative, got %v", c.Pipeline.TolerancePercent)
	}
	if c.Pipeline.MaxWorkers < 0 {
		return fmt.Errorf("max_workers must not be negative, got %d", c.Pipeline.MaxWorkers)
	}

	for _, format := range c.Output.Formats {
		if !validFormats[format] {
			return fmt.Errorf("invalid output format %q", format)
		}
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}

	return nil
}
