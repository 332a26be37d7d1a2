// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/storelens/internal/dataset"
	"github.com/tomtom215/storelens/internal/logging"
	"github.com/tomtom215/storelens/internal/models"
	"github.com/tomtom215/storelens/internal/views"
)

// maxViewAttempts bounds re-renders when the dataset reloads mid-request.
const maxViewAttempts = 2

// ListViews returns the registered views in display order.
func (h *Handler) ListViews(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, h.views.List(), models.Metadata{})
}

// View renders one dashboard view against the current dataset.
//
// Query parameters:
//   - top_n: rows in ranked tables, 1..api.max_top_n (default api.default_top_n)
//   - snapshot: recency reference date YYYY-MM-DD (rfm view only)
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := views.ID(chi.URLParam(r, "view"))
	if !h.views.Has(id) {
		respondErr(w, r, fmt.Errorf("%w: %q", views.ErrViewNotFound, sanitizeLogValue(string(id))))
		return
	}

	params, apiErr := h.viewParams(r)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	var (
		snap   dataset.Snapshot
		result views.Result
		err    error
	)
	for attempt := 1; ; attempt++ {
		snap, err = h.datasets.Acquire(r.Context())
		if err != nil {
			respondErr(w, r, err)
			return
		}

		result, err = h.views.Dispatch(r.Context(), id, h.store, snap.Version, params)
		if err != nil {
			respondErr(w, r, err)
			return
		}

		// A reload that landed mid-render may have swapped the table under
		// the query, so the result cannot be attributed to snap.
		current, ok := h.datasets.Current()
		if !ok || current.Version == snap.Version || attempt == maxViewAttempts {
			break
		}
		logging.Ctx(r.Context()).Debug().
			Str("view", string(id)).
			Uint64("rendered_version", snap.Version).
			Uint64("current_version", current.Version).
			Msg("Dataset reloaded during render, retrying")
	}

	respondSuccess(w, r, result.Data, models.Metadata{
		QueryTimeMS:    time.Since(start).Milliseconds(),
		Cached:         result.Cached,
		DatasetVersion: snap.Version,
	})
}

// viewParams parses and validates view query parameters.
func (h *Handler) viewParams(r *http.Request) (views.Params, *models.APIError) {
	topN, err := parseIntParam(r, "top_n", h.config.API.DefaultTopN)
	if err != nil {
		return views.Params{}, &models.APIError{
			Code:    ErrCodeValidation,
			Message: err.Error(),
			Details: map[string]interface{}{"field": "top_n", "value": r.URL.Query().Get("top_n")},
		}
	}

	params := views.Params{
		TopN:     topN,
		Snapshot: r.URL.Query().Get("snapshot"),
	}
	if apiErr := validateRequest(&params); apiErr != nil {
		return views.Params{}, apiErr
	}

	if params.TopN > h.config.API.MaxTopN {
		return views.Params{}, &models.APIError{
			Code:    ErrCodeValidation,
			Message: fmt.Sprintf("top_n must be at most %d", h.config.API.MaxTopN),
			Details: map[string]interface{}{"field": "top_n", "value": params.TopN},
		}
	}
	return params, nil
}
