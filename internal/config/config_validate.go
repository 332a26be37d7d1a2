// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateDataset(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateRFM(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateDataset() error {
	if strings.TrimSpace(c.Dataset.Path) == "" {
		return fmt.Errorf("DATASET_PATH is required")
	}
	if c.Dataset.WatchInterval < 0 {
		return fmt.Errorf("DATASET_WATCH_INTERVAL must not be negative, got %v", c.Dataset.WatchInterval)
	}
	if c.Dataset.WatchInterval > 0 && c.Dataset.WatchInterval < time.Second {
		return fmt.Errorf("DATASET_WATCH_INTERVAL must be at least 1s, got %v", c.Dataset.WatchInterval)
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required (use :memory: for an in-memory database)")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must not be negative, got %d", c.Database.Threads)
	}
	return nil
}

// validateRFM validates scoring parameters
func (c *Config) validateRFM() error {
	if _, err := c.RFM.Snapshot(); err != nil {
		return fmt.Errorf("RFM_SNAPSHOT_DATE must be formatted YYYY-MM-DD: %w", err)
	}
	// Scores are rendered as single digits in the segment code.
	if c.RFM.Bins < 2 || c.RFM.Bins > 9 {
		return fmt.Errorf("RFM_BINS must be between 2 and 9, got %d", c.RFM.Bins)
	}
	if c.RFM.HistogramBins < 1 || c.RFM.HistogramBins > 100 {
		return fmt.Errorf("RFM_HISTOGRAM_BINS must be between 1 and 100, got %d", c.RFM.HistogramBins)
	}
	return nil
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be one of development, staging, production, got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.MaxTopN < 1 || c.API.MaxTopN > MaxTopNLimit {
		return fmt.Errorf("API_MAX_TOP_N must be between 1 and %d, got %d", MaxTopNLimit, c.API.MaxTopN)
	}
	if c.API.DefaultTopN < 1 || c.API.DefaultTopN > c.API.MaxTopN {
		return fmt.Errorf("API_DEFAULT_TOP_N must be between 1 and API_MAX_TOP_N (%d), got %d", c.API.MaxTopN, c.API.DefaultTopN)
	}
	if c.API.CacheTTL < 0 {
		return fmt.Errorf("API_CACHE_TTL must not be negative, got %v", c.API.CacheTTL)
	}
	return nil
}

// validateSecurity validates rate limiting and CORS settings
func (c *Config) validateSecurity() error {
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
		}
	}

	if c.IsProduction() {
		for _, origin := range c.Security.CORSOrigins {
			if origin == "*" {
				return fmt.Errorf("CORS_ORIGINS must not contain * when ENVIRONMENT=production")
			}
		}
	}
	return nil
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, panic, got %q", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "console", "":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
