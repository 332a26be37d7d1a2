// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package views

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/storelens/internal/cache"
	"github.com/tomtom215/storelens/internal/metrics"
	"github.com/tomtom215/storelens/internal/models"
)

// ErrViewNotFound is returned by Dispatch for an unregistered view ID.
var ErrViewNotFound = errors.New("view not found")

// ID names a dashboard view.
type ID string

const (
	RFM      ID = "rfm"
	Product  ID = "product"
	Customer ID = "customer"
)

// Table is the query surface views read from. *database.DB satisfies it.
type Table interface {
	OrderRows(ctx context.Context) ([]models.OrderRow, error)
	TopCategories(ctx context.Context, limit int) ([]models.CategoryStats, error)
	ProductAverages(ctx context.Context) (models.ProductAverages, error)
	CityDeliveryTimes(ctx context.Context, limit int) ([]models.CityDelivery, error)
	StateDeliveryTimes(ctx context.Context, limit int) ([]models.StateDelivery, error)
}

// Params are the per-request view options.
type Params struct {
	TopN     int    `query:"top_n" json:"top_n" validate:"min=1,max=100"`
	Snapshot string `query:"snapshot" json:"snapshot,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// Handler renders one view.
type Handler func(ctx context.Context, table Table, params Params) (any, error)

// View is a registered dashboard view.
type View struct {
	ID          ID
	Title       string
	Description string

	// Cacheable views are keyed by dataset version and TopN only.
	Cacheable bool
	Handler   Handler
}

// Result is a dispatched view.
type Result struct {
	Data   any
	Cached bool
}

// Registry maps view IDs to views.
type Registry struct {
	order []ID
	views map[ID]View
	cache *cache.Cache
}

// NewRegistry creates an empty registry. A nil cache disables caching.
func NewRegistry(c *cache.Cache) *Registry {
	return &Registry{
		views: make(map[ID]View),
		cache: c,
	}
}

// Register adds a view. IDs must be unique and handlers non-nil.
func (r *Registry) Register(v View) error {
	if v.ID == "" || v.Handler == nil {
		return fmt.Errorf("view %q: id and handler are required", v.ID)
	}
	if _, exists := r.views[v.ID]; exists {
		return fmt.Errorf("view %q already registered", v.ID)
	}
	r.views[v.ID] = v
	r.order = append(r.order, v.ID)
	return nil
}

// MustRegister is like Register but panics on error. It is meant for
// registrations fixed at startup.
func (r *Registry) MustRegister(v View) {
	if err := r.Register(v); err != nil {
		panic(err)
	}
}

// List describes the registered views in registration order.
func (r *Registry) List() []models.ViewInfo {
	out := make([]models.ViewInfo, 0, len(r.order))
	for _, id := range r.order {
		v := r.views[id]
		out = append(out, models.ViewInfo{
			ID:          string(v.ID),
			Title:       v.Title,
			Description: v.Description,
			Cached:      v.Cacheable && r.cache != nil,
		})
	}
	return out
}

// Has reports whether id is registered.
func (r *Registry) Has(id ID) bool {
	_, ok := r.views[id]
	return ok
}

// Dispatch renders view id against table. version is the dataset version the
// table holds and scopes cached results.
func (r *Registry) Dispatch(ctx context.Context, id ID, table Table, version uint64, params Params) (Result, error) {
	v, ok := r.views[id]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrViewNotFound, id)
	}

	start := time.Now()
	useCache := v.Cacheable && r.cache != nil
	var key string
	if useCache {
		key = cache.GenerateKey(string(id), struct {
			Version uint64
			TopN    int
		}{version, params.TopN})
		if data, hit := r.cache.Get(key); hit {
			metrics.RecordViewRender(string(id), time.Since(start), true, nil)
			return Result{Data: data, Cached: true}, nil
		}
	}

	data, err := v.Handler(ctx, table, params)
	metrics.RecordViewRender(string(id), time.Since(start), false, err)
	if err != nil {
		return Result{}, err
	}

	if useCache {
		r.cache.Set(key, data)
	}
	return Result{Data: data}, nil
}

// Invalidate drops every cached result. It runs after each dataset reload.
func (r *Registry) Invalidate() {
	if r.cache != nil {
		r.cache.Clear()
	}
}
