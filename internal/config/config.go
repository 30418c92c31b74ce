//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for salesreport.
// Configuration is loaded from config files and CLI flags (no environment variables).
// CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/spf13/viper"
)

// DateLayout is the layout used for date values in the config file.
const DateLayout = "2006-01-02"

// Config holds all configuration for salesreport.
type Config struct {
	// Input is the path to the transactional sales export.
	Input string `mapstructure:"input"`

	// OutputDir is the directory the report CSV files are written to.
	OutputDir string `mapstructure:"output_dir"`

	// Delimiter is the field separator of the input file.
	Delimiter string `mapstructure:"delimiter"`

	// Workbook is an optional XLSX path holding every report as a sheet.
	// Empty disables the workbook.
	Workbook string `mapstructure:"workbook"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Publish holds configuration for loading reports into PostgreSQL.
	Publish PublishConfig `mapstructure:"publish"`

	// Generate holds configuration for the generate subcommand.
	Generate GenerateConfig `mapstructure:"generate"`
}

// PublishConfig holds configuration for publishing reports to PostgreSQL.
type PublishConfig struct {
	// Enabled publishes after every run when true.
	Enabled bool `mapstructure:"enabled"`

	// Connection is the PostgreSQL connection string.
	Connection string `mapstructure:"connection"`

	// Schema is the database schema the report tables are created in.
	Schema string `mapstructure:"schema"`
}

// GenerateConfig holds configuration for synthetic export generation.
type GenerateConfig struct {
	// Rows is the number of line items to generate.
	Rows int `mapstructure:"rows"`

	// Seed makes the output reproducible. Zero picks a random seed.
	Seed uint64 `mapstructure:"seed"`

	// Profile is the usage profile shaping order times.
	Profile string `mapstructure:"profile"`

	// Timezone is the profile's local timezone (default: UTC).
	Timezone string `mapstructure:"timezone"`

	// StartDate is the first day of generated orders (YYYY-MM-DD).
	StartDate string `mapstructure:"start_date"`

	// Months is the number of months the orders span.
	Months int `mapstructure:"months"`

	// Output is the path of the generated export.
	Output string `mapstructure:"output"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Input:     "Da_Cleaned.csv",
		OutputDir: "pbix_outputs",
		Delimiter: ",",
		LogLevel:  "info",
		Publish: PublishConfig{
			Schema: "salesreport",
		},
		Generate: GenerateConfig{
			Rows:      10000,
			Profile:   "store-regional",
			StartDate: "2024-01-01",
			Months:    12,
			Output:    "Da_Cleaned.csv",
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./salesreport.yaml
// 3. ~/.config/salesreport/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("salesreport")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "salesreport"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// DelimiterRune returns the input delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	if c.Delimiter == "\\t" {
		return '\t'
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input path is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if c.Delimiter != "\\t" && utf8.RuneCountInString(c.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
	}
	if r := c.DelimiterRune(); r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return fmt.Errorf("invalid delimiter %q", c.Delimiter)
	}
	if c.Publish.Enabled {
		if err := c.ValidatePublish(); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePublish checks configuration required for publishing.
func (c *Config) ValidatePublish() error {
	if c.Publish.Connection == "" {
		return fmt.Errorf("publish connection string is required")
	}
	if c.Publish.Schema == "" {
		return fmt.Errorf("publish schema is required")
	}
	return nil
}

// ValidateGenerate checks configuration required for generate command.
func (c *Config) ValidateGenerate() error {
	if c.Generate.Rows < 1 {
		return fmt.Errorf("rows must be at least 1")
	}
	if c.Generate.Months < 1 {
		return fmt.Errorf("months must be at least 1")
	}
	if c.Generate.Output == "" {
		return fmt.Errorf("generate output path is required")
	}
	if _, err := c.Generate.Start(); err != nil {
		return err
	}
	return nil
}

// Start parses StartDate.
func (g GenerateConfig) Start() (time.Time, error) {
	t, err := time.Parse(DateLayout, g.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start_date %q: expected YYYY-MM-DD", g.StartDate)
	}
	return t, nil
}
