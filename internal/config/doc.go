// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

/*
Package config provides centralized configuration management for Storelens.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file (CONFIG_PATH, ./config.yaml or /etc/storelens/config.yaml), then
environment variables.

# Environment Variables

Dataset:
  - DATASET_PATH: Order CSV to serve (default: dashboard/main_data.csv)
  - DATASET_WATCH_INTERVAL: Background change check (default: 30s, 0 disables)

Database (DuckDB):
  - DUCKDB_PATH: Database file (default: :memory:)
  - DUCKDB_MAX_MEMORY: Memory limit (default: 1GB)
  - DUCKDB_THREADS: Worker threads (default: NumCPU)

RFM scoring:
  - RFM_SNAPSHOT_DATE: Reference date for recency (default: 2024-09-23)
  - RFM_BINS: Quantile buckets per metric (default: 5)
  - RFM_ALLOW_COARSE_BINS: Fall back to fewer buckets instead of failing
  - RFM_HISTOGRAM_BINS: rfm_total histogram bins (default: 10)

HTTP server and API:
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:8501), HTTP_TIMEOUT
  - ENVIRONMENT: development, staging or production
  - API_DEFAULT_TOP_N, API_MAX_TOP_N, API_CACHE_TTL

Security:
  - CORS_ORIGINS: Comma-separated allowed origins
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT (json or console), LOG_CALLER

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	snapshot, _ := cfg.RFM.Snapshot()
*/
package config
