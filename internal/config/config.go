package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level m4track.yaml configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Display   DisplayConfig   `yaml:"display"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// ServerConfig controls the HTTP API server.
type ServerConfig struct {
	Listen  string `yaml:"listen"`
	DataDir string `yaml:"data_dir"`
}

// DisplayConfig controls currency rendering.
type DisplayConfig struct {
	Currency       string  `yaml:"currency"`
	AltCurrency    string  `yaml:"alt_currency,omitempty"`
	ConversionRate float64 `yaml:"conversion_rate,omitempty"` // base units per alt unit
}

// DashboardConfig controls aggregation and metrics display.
type DashboardConfig struct {
	PageSize         int     `yaml:"page_size"`
	ROITarget        float64 `yaml:"roi_target"`
	QuoteRefreshSecs int     `yaml:"quote_refresh_seconds"`
}

// QuoteRefresh returns the quote refresh interval as a duration.
func (c DashboardConfig) QuoteRefresh() time.Duration {
	return time.Duration(c.QuoteRefreshSecs) * time.Second
}

// Load reads an m4track.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new deployment.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Listen:  ":8080",
			DataDir: "data",
		},
		Display: DisplayConfig{
			Currency:       "IDR",
			AltCurrency:    "USD",
			ConversionRate: 16000,
		},
		Dashboard: DashboardConfig{
			PageSize:         10,
			ROITarget:        100,
			QuoteRefreshSecs: 60,
		},
	}
}

// applyDefaults fills zero-valued fields so a sparse config file still
// yields a runnable setup.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Server.Listen == "" {
		c.Server.Listen = def.Server.Listen
	}
	if c.Server.DataDir == "" {
		c.Server.DataDir = def.Server.DataDir
	}
	if c.Display.Currency == "" {
		c.Display.Currency = def.Display.Currency
	}
	if c.Dashboard.PageSize <= 0 {
		c.Dashboard.PageSize = def.Dashboard.PageSize
	}
	if c.Dashboard.ROITarget <= 0 {
		c.Dashboard.ROITarget = def.Dashboard.ROITarget
	}
	if c.Dashboard.QuoteRefreshSecs <= 0 {
		c.Dashboard.QuoteRefreshSecs = def.Dashboard.QuoteRefreshSecs
	}
}
