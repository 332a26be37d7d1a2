// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/storelens/internal/dataset"
	"github.com/tomtom215/storelens/internal/models"
)

// Health reports database connectivity and the last loaded dataset.
// It never touches the dataset file, so it stays cheap under probing.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.store != nil && h.store.Ping(r.Context()) == nil

	var info *models.DatasetInfo
	if h.datasets != nil {
		if snap, ok := h.datasets.Current(); ok {
			info = datasetInfo(snap)
		}
	}

	status := "healthy"
	if !dbConnected || info == nil {
		status = "degraded"
	}

	respondSuccess(w, r, models.HealthStatus{
		Status:            status,
		Version:           h.version,
		DatabaseConnected: dbConnected,
		Dataset:           info,
		Uptime:            time.Since(h.startTime).Seconds(),
	}, models.Metadata{})
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, models.Metadata{})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only once the database answers and a dataset is loaded.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.store != nil && h.store.Ping(r.Context()) == nil
	datasetLoaded := false
	if h.datasets != nil {
		_, datasetLoaded = h.datasets.Current()
	}
	ready := dbConnected && datasetLoaded

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, r, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"database_connected": dbConnected,
			"dataset_loaded":     datasetLoaded,
			"ready_to_serve":     ready,
			"uptime":             time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
	})
}

func datasetInfo(snap dataset.Snapshot) *models.DatasetInfo {
	return &models.DatasetInfo{
		Path:     snap.Identity.Path,
		Size:     snap.Identity.Size,
		ModTime:  snap.Identity.ModTime,
		Version:  snap.Version,
		Rows:     snap.Rows,
		LoadedAt: snap.LoadedAt,
	}
}
