// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

/*
Package views maps dashboard view identifiers to the code that renders them.

A Registry holds one View per ID in registration order. Dispatch looks the ID
up, runs its Handler against the loaded orders table and returns a
render-ready result; unknown identifiers yield ErrViewNotFound.

The default registry carries three views:

	rfm       customer RFM table, rfm_total histogram, score counts, top segments
	product   most purchased categories with majority location and size averages
	customer  slowest delivery cities and states

Product and customer results depend only on the dataset version and top_n, so
they are cached; the RFM view is recomputed on every request.
*/
package views
