// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

/*
Package main is the entry point for the Storelens server.

Storelens serves a customer behavior dashboard over one e-commerce order
export: RFM (recency, frequency, monetary) scores per customer, the most
purchased product categories, and the slowest delivery locations.

# Application Architecture

The server runs under Suture v4 process supervision:

	RootSupervisor ("storelens")
	├── DataSupervisor ("data-layer")
	│   └── Dataset watcher (reloads the CSV when it changes on disk)
	├── MessagingSupervisor ("messaging-layer")
	│   └── WebSocket Hub (dataset_reloaded notifications)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Database: in-process DuckDB holding the orders table
 4. Views: RFM, product and customer views with a TTL result cache
 5. Dataset manager: loads the CSV on demand, keyed by file size and mtime
 6. Warm-up: first load at startup; failure is logged, not fatal
 7. Supervisor tree and HTTP server

# Configuration

	Priority: Environment variables > Config file > Defaults

	DATASET_PATH=dashboard/main_data.csv
	DATASET_WATCH_INTERVAL=30s
	DUCKDB_PATH=:memory:
	RFM_SNAPSHOT_DATE=2024-09-23
	RFM_BINS=5
	HTTP_PORT=8501
	LOG_LEVEL=info
	LOG_FORMAT=json

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests, the hub closes client connections, and services that fail to stop
in time are reported before exit.
*/
package main
