// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

/*
Package api provides the HTTP REST API layer for Storelens.

Endpoints:

	GET  /api/v1/health            overall status with dataset details
	GET  /api/v1/health/live       liveness probe
	GET  /api/v1/health/ready      readiness probe: database up, dataset loaded
	GET  /api/v1/views             registered dashboard views
	GET  /api/v1/views/{view}      render one view (?top_n=10&snapshot=2024-09-23)
	GET  /api/v1/dataset           identity, version and row count of the dataset
	POST /api/v1/dataset/reload    force a reload from disk
	GET  /api/v1/ws                websocket notifications (dataset_reloaded)
	GET  /metrics                  Prometheus exposition

Every JSON response uses models.APIResponse:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "...", "query_time_ms": 12, "cached": true, "dataset_version": 3}
	}

Errors carry a machine-readable code with optional details:

	{
	  "status": "error",
	  "data": null,
	  "error": {"code": "INSUFFICIENT_DATA", "message": "...", "details": {"metric": "frequency", "distinct": 2, "required": 5}}
	}

Dataset problems map to 422, a snapshot earlier than the latest purchase and
invalid parameters to 400, unknown views to 404, and an unreadable dataset
with nothing loaded to 503.

Usage:

	handler := api.NewHandler(api.HandlerDeps{
	    Config:   cfg,
	    Store:    db,
	    Datasets: manager,
	    Views:    registry,
	    Hub:      hub,
	})
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security))
	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}
*/
package api
