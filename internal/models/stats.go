// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package models

import (
	"time"
)

// HealthStatus represents the health check response
type HealthStatus struct {
	Status            string       `json:"status"`
	Version           string       `json:"version"`
	DatabaseConnected bool         `json:"database_connected"`
	Dataset           *DatasetInfo `json:"dataset,omitempty"`
	Uptime            float64      `json:"uptime_seconds"`
}

// DatasetInfo describes the currently loaded dataset.
type DatasetInfo struct {
	Path     string    `json:"path"`
	Size     int64     `json:"size_bytes"`
	ModTime  time.Time `json:"modified_at"`
	Version  uint64    `json:"version"`
	Rows     int64     `json:"rows"`
	LoadedAt time.Time `json:"loaded_at"`
}

// ViewInfo describes one selectable view.
type ViewInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Cached      bool   `json:"cached"`
}
