// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/storelens/internal/logging"
	"github.com/tomtom215/storelens/internal/models"
)

// Dataset reports the dataset matching the file on disk, reloading it first
// if the file changed.
func (h *Handler) Dataset(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	snap, err := h.datasets.Acquire(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondSuccess(w, r, datasetInfo(snap), models.Metadata{
		QueryTimeMS:    time.Since(start).Milliseconds(),
		DatasetVersion: snap.Version,
	})
}

// ReloadDataset reloads the dataset even if the file is unchanged.
// Listeners registered on the manager clear view caches and notify
// websocket clients.
func (h *Handler) ReloadDataset(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	snap, err := h.datasets.Reload(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Uint64("version", snap.Version).
		Int64("rows", snap.Rows).
		Msg("Dataset reload requested")

	respondSuccess(w, r, datasetInfo(snap), models.Metadata{
		QueryTimeMS:    time.Since(start).Milliseconds(),
		DatasetVersion: snap.Version,
	})
}
