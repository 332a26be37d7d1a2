// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package services

import (
	"context"
	"time"

	"github.com/tomtom215/storelens/internal/dataset"
	"github.com/tomtom215/storelens/internal/logging"
)

// DatasetAcquirer is satisfied by *dataset.Manager.
type DatasetAcquirer interface {
	Acquire(ctx context.Context) (dataset.Snapshot, error)
}

// DatasetWatcherService polls the dataset file so that edits are loaded
// (and dashboards notified) without waiting for a request.
//
// Acquire only reloads when the file identity changed, so a tick against an
// unchanged file costs one stat. Errors are logged and never stop the
// service; a broken file is retried on the next tick.
type DatasetWatcherService struct {
	manager  DatasetAcquirer
	interval time.Duration
	name     string
}

// NewDatasetWatcherService creates the watcher. A non-positive interval
// defaults to 30 seconds.
func NewDatasetWatcherService(manager DatasetAcquirer, interval time.Duration) *DatasetWatcherService {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &DatasetWatcherService{
		manager:  manager,
		interval: interval,
		name:     "dataset-watcher",
	}
}

// Serve implements suture.Service. The first check runs immediately.
func (d *DatasetWatcherService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	var lastVersion uint64
	for {
		snap, err := d.manager.Acquire(ctx)
		switch {
		case err != nil && ctx.Err() == nil:
			logging.Warn().Err(err).Msg("Dataset check failed")
		case err == nil && snap.Version != lastVersion:
			logging.Debug().Uint64("version", snap.Version).Int64("rows", snap.Rows).Msg("Dataset watcher observed new version")
			lastVersion = snap.Version
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// String implements fmt.Stringer for suture log messages.
func (d *DatasetWatcherService) String() string {
	return d.name
}
