// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

/*
Package middleware provides HTTP middleware shared by every API route.

Components:

  - RequestID: propagates or generates X-Request-ID and stores it in the
    request context for logging.Ctx
  - AccessLog: one structured zerolog line per request with status, size and
    duration
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled by
    the chi route pattern so that path parameters do not explode cardinality

All middleware has the chi signature func(http.Handler) http.Handler:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
