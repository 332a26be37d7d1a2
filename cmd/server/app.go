// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tomtom215/storelens/internal/api"
	"github.com/tomtom215/storelens/internal/cache"
	"github.com/tomtom215/storelens/internal/config"
	"github.com/tomtom215/storelens/internal/database"
	"github.com/tomtom215/storelens/internal/dataset"
	"github.com/tomtom215/storelens/internal/logging"
	"github.com/tomtom215/storelens/internal/rfm"
	"github.com/tomtom215/storelens/internal/views"
	ws "github.com/tomtom215/storelens/internal/websocket"
)

// application holds the wired components that outlive a single request.
type application struct {
	cfg       *config.Config
	db        *database.DB
	viewCache *cache.Cache
	views     *views.Registry
	datasets  *dataset.Manager
	hub       *ws.Hub
	router    http.Handler
}

func newApplication(cfg *config.Config, version string) (*application, error) {
	snapshot, err := cfg.RFM.Snapshot()
	if err != nil {
		return nil, err
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	viewCache := cache.New("views", cfg.API.CacheTTL)
	registry := views.NewDefaultRegistry(viewCache, views.Settings{
		Snapshot: snapshot,
		Scoring: rfm.Options{
			Bins:            cfg.RFM.Bins,
			AllowCoarseBins: cfg.RFM.AllowCoarseBins,
		},
		HistogramBins: cfg.RFM.HistogramBins,
	})

	hub := ws.NewHub()

	datasets := dataset.NewManager(db, dataset.Options{Path: cfg.Dataset.Path})
	// Drop stale view results before dashboards hear about the new version.
	datasets.OnReload(func(snap dataset.Snapshot) {
		registry.Invalidate()
		logging.Info().Uint64("version", snap.Version).Msg("View cache cleared")
	})
	datasets.OnReload(hub.BroadcastDatasetReloaded)

	handler := api.NewHandler(api.HandlerDeps{
		Config:   cfg,
		Store:    db,
		Datasets: datasets,
		Views:    registry,
		Hub:      hub,
		Version:  version,
	})
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security))

	return &application{
		cfg:       cfg,
		db:        db,
		viewCache: viewCache,
		views:     registry,
		datasets:  datasets,
		hub:       hub,
		router:    router.SetupChi(),
	}, nil
}

// warm loads the dataset once so the first dashboard request does not pay
// for ingestion. A broken or missing file is reported and retried later.
func (a *application) warm(ctx context.Context) {
	snap, err := a.datasets.Acquire(ctx)
	if err != nil {
		logging.Warn().Err(err).Str("path", a.cfg.Dataset.Path).Msg("Initial dataset load failed; will retry on demand")
		return
	}
	logging.Info().
		Str("path", snap.Identity.Path).
		Int64("rows", snap.Rows).
		Uint64("version", snap.Version).
		Msg("Dataset ready")
}

// Close releases the cache janitor and the database.
func (a *application) Close() error {
	a.viewCache.Stop()
	return a.db.Close()
}
