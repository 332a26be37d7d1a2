// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8501/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Dataset Metrics:
  - dataset_load_duration_seconds, dataset_loads_total{result}
  - dataset_rows, dataset_version, dataset_last_load_timestamp

RFM Metrics:
  - rfm_scoring_duration_seconds, rfm_customers_scored
  - rfm_errors_total{code}

View Metrics:
  - view_render_duration_seconds{view}, view_renders_total{view,result}

Database, cache, WebSocket and circuit breaker metrics follow the same
naming scheme (duckdb_*, cache_*, websocket_*, circuit_breaker_*).

# Usage

	start := time.Now()
	rows, err := db.OrderRows(ctx)
	metrics.RecordDBQuery("select", "orders", time.Since(start), err)
*/
package metrics
