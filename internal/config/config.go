// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an optional
// YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Dataset  DatasetConfig  `koanf:"dataset"`
	Database DatabaseConfig `koanf:"database"`
	RFM      RFMConfig      `koanf:"rfm"`
	Server   ServerConfig   `koanf:"server"`
	API      APIConfig      `koanf:"api"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DatasetConfig describes the order CSV served by the dashboard.
type DatasetConfig struct {
	// Path is the CSV file loaded into the orders table.
	Path string `koanf:"path"`

	// WatchInterval is how often the file identity is re-checked in the
	// background. Zero disables the watcher; requests still re-check.
	WatchInterval time.Duration `koanf:"watch_interval"`
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // Number of DuckDB threads (0 = use NumCPU)
}

// RFMConfig controls customer scoring.
type RFMConfig struct {
	// SnapshotDate is the reference "today" for recency, formatted 2006-01-02.
	SnapshotDate string `koanf:"snapshot_date"`

	// Bins is the number of quantile buckets per metric.
	Bins int `koanf:"bins"`

	// AllowCoarseBins lets a metric with fewer distinct values than Bins fall
	// back to one bucket per distinct value instead of failing.
	AllowCoarseBins bool `koanf:"allow_coarse_bins"`

	// HistogramBins is the number of fixed-width bins for the rfm_total histogram.
	HistogramBins int `koanf:"histogram_bins"`
}

// Snapshot parses SnapshotDate.
func (r RFMConfig) Snapshot() (time.Time, error) {
	t, err := time.Parse(DateLayout, r.SnapshotDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid snapshot date %q: %w", r.SnapshotDate, err)
	}
	return t, nil
}

// DateLayout is the layout used for snapshot dates in config and query parameters.
const DateLayout = "2006-01-02"

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development", "staging", "production"
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MaxTopNLimit is the largest top_n any view accepts.
const MaxTopNLimit = 100

// APIConfig holds view sizing and response caching settings
type APIConfig struct {
	DefaultTopN int           `koanf:"default_top_n"`
	MaxTopN     int           `koanf:"max_top_n"`
	CacheTTL    time.Duration `koanf:"cache_ttl"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load reads configuration from all sources and validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
