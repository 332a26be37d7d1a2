// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

/*
Package dataset keeps the DuckDB orders table in step with the CSV file on disk.

A Manager remembers the identity (path, size, modification time) of the file
it last loaded. Acquire re-stats the file and reloads only when the identity
changed or Invalidate was called, so repeated requests against an unchanged
file never touch the disk beyond a stat.

# Failure Handling

A file whose content is unusable (for example a missing required column)
yields a data error from the rfm package. The failure is remembered for that
file identity and returned without reloading until the file changes.

Other load failures (I/O, DuckDB) pass through a sony/gobreaker circuit
breaker. Once it opens, Acquire serves the last good snapshot, or
ErrDatasetUnavailable when nothing has loaded yet.

# Notifications

Listeners registered with OnReload run after every successful reload, in
registration order. The websocket hub uses this to push dataset_reloaded
events to dashboards.
*/
package dataset
