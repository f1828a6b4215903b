package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Database holds the optional postgres connection settings. The dataset
// store falls back to memory when Host is empty.
type Database struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// Config holds all application configuration.
type Config struct {
	Port             string   `yaml:"port"`
	SMAWindow        int      `yaml:"sma_window"`
	ChartCacheTTLSec int      `yaml:"chart_cache_ttl_seconds"`
	Database         Database `yaml:"database"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
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

	// Environment variable overrides
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("SMA_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SMAWindow = n
		}
	}
	if v := os.Getenv("CHART_CACHE_TTL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ChartCacheTTLSec = n
		}
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		cfg.Database.Port = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.Name = v
	}

	// Defaults
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.SMAWindow == 0 {
		cfg.SMAWindow = 5
	}
	if cfg.ChartCacheTTLSec == 0 {
		cfg.ChartCacheTTLSec = 60
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "5432"
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "stockdash"
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.SMAWindow < 1 {
		return fmt.Errorf("sma_window must be positive, got %d", c.SMAWindow)
	}
	if c.ChartCacheTTLSec < 0 {
		return fmt.Errorf("chart_cache_ttl_seconds must not be negative, got %d", c.ChartCacheTTLSec)
	}
	return nil
}
