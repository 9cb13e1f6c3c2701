package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the API server configuration. The forecasting engine
// itself takes every knob as a function parameter; these values only set
// the server's listen address and the defaults it fills in when a
// request omits them.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	LogLevel   string `yaml:"log_level"`

	Forecast struct {
		TimelineDays int `yaml:"timeline_days"`
		MaxMonths    int `yaml:"max_months"`
	} `yaml:"forecast"`
}

// Load reads config from a YAML file if present, applies environment
// variable overrides, then fills defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("FINCAST_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("FINCAST_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("FINCAST_TIMELINE_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.Forecast.TimelineDays = days
		}
	}
	if v := os.Getenv("FINCAST_MAX_MONTHS"); v != "" {
		if months, err := strconv.Atoi(v); err == nil {
			cfg.Forecast.MaxMonths = months
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file or environment
// overrides exist, which is also what tests run against.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Forecast.TimelineDays == 0 {
		c.Forecast.TimelineDays = 90
	}
	if c.Forecast.MaxMonths == 0 {
		c.Forecast.MaxMonths = 360
	}
}

// Validate checks ranges on the numeric knobs.
func (c *Config) Validate() error {
	if c.Forecast.TimelineDays < 0 {
		return fmt.Errorf("forecast.timeline_days must be >= 0")
	}
	if c.Forecast.MaxMonths <= 0 {
		return fmt.Errorf("forecast.max_months must be positive")
	}
	return nil
}
