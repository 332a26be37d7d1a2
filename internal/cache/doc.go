// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

/*
Package cache provides thread-safe in-memory caching with TTL support.

It backs the product and customer dashboard views: their results depend only
on the loaded dataset and the request parameters, so repeated requests are
served from memory until the TTL passes or the dataset is reloaded.

# Overview

The cache provides:
  - Thread-safe concurrent access (sync.RWMutex)
  - Time-to-live (TTL) expiration with lazy checks on Get
  - A background sweeper stopped with Stop
  - Prometheus hit, miss and size metrics labelled by cache name

# Key Generation

GenerateKey hashes a JSON encoding of the parameters so that equal parameter
structs map to equal keys:

	key := cache.GenerateKey("product", struct {
		Version uint64
		TopN    int
	}{snap.Version, 10})
*/
package cache
