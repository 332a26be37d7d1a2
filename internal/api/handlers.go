// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package api

import (
	"context"
	"time"

	"github.com/tomtom215/storelens/internal/config"
	"github.com/tomtom215/storelens/internal/dataset"
	"github.com/tomtom215/storelens/internal/views"
	ws "github.com/tomtom215/storelens/internal/websocket"
)

// Store is the database surface the handlers use. *database.DB satisfies it.
type Store interface {
	views.Table
	Ping(ctx context.Context) error
}

// DatasetSource hands out the loaded dataset. *dataset.Manager satisfies it.
type DatasetSource interface {
	Acquire(ctx context.Context) (dataset.Snapshot, error)
	Reload(ctx context.Context) (dataset.Snapshot, error)
	Current() (dataset.Snapshot, bool)
	Path() string
}

// HandlerDeps are the collaborators of a Handler. Hub may be nil, which
// disables the websocket endpoint.
type HandlerDeps struct {
	Config   *config.Config
	Store    Store
	Datasets DatasetSource
	Views    *views.Registry
	Hub      *ws.Hub
	Version  string
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response and parameter helpers
//   - handlers_health.go: health and probe endpoints
//   - handlers_views.go: view listing and dispatch
//   - handlers_dataset.go: dataset status and reload
//   - handlers_websocket.go: websocket upgrade
type Handler struct {
	config    *config.Config
	store     Store
	datasets  DatasetSource
	views     *views.Registry
	wsHub     *ws.Hub
	version   string
	startTime time.Time
}

// NewHandler creates a new API handler.
func NewHandler(deps HandlerDeps) *Handler {
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	return &Handler{
		config:    deps.Config,
		store:     deps.Store,
		datasets:  deps.Datasets,
		views:     deps.Views,
		wsHub:     deps.Hub,
		version:   version,
		startTime: time.Now(),
	}
}
