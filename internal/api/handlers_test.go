// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package api

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/tomtom215/storelens/internal/dataset"
	"github.com/tomtom215/storelens/internal/models"
)

func TestHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		mutate     func(*testEnv)
		wantStatus string
		wantDB     bool
		wantInfo   bool
	}{
		{name: "healthy", wantStatus: "healthy", wantDB: true, wantInfo: true},
		{
			name:       "database down",
			mutate:     func(env *testEnv) { env.store.pingErr = errBoom },
			wantStatus: "degraded",
			wantInfo:   true,
		},
		{
			name:       "nothing loaded",
			mutate:     func(env *testEnv) { env.datasets.loaded = false },
			wantStatus: "degraded",
			wantDB:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, tt.mutate)
			rec := env.do(t, http.MethodGet, "/api/v1/health")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}

			var health models.HealthStatus
			decodeData(t, decodeResponse(t, rec), &health)
			if health.Status != tt.wantStatus || health.DatabaseConnected != tt.wantDB {
				t.Errorf("health = %+v", health)
			}
			if (health.Dataset != nil) != tt.wantInfo {
				t.Errorf("dataset info present = %v, want %v", health.Dataset != nil, tt.wantInfo)
			}
			if health.Version != "test" {
				t.Errorf("version = %q, want test", health.Version)
			}
		})
	}
}

func TestHealthProbes(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	if rec := env.do(t, http.MethodGet, "/api/v1/health/live"); rec.Code != http.StatusOK {
		t.Errorf("live status = %d", rec.Code)
	}
	if rec := env.do(t, http.MethodGet, "/api/v1/health/ready"); rec.Code != http.StatusOK {
		t.Errorf("ready status = %d", rec.Code)
	}

	notLoaded := newTestEnv(t, func(env *testEnv) { env.datasets.loaded = false })
	rec := notLoaded.do(t, http.MethodGet, "/api/v1/health/ready")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ready without dataset status = %d, want 503", rec.Code)
	}
	if resp := decodeResponse(t, rec); resp.Status != "not_ready" {
		t.Errorf("ready status field = %q", resp.Status)
	}
}

func TestListViews(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	rec := env.do(t, http.MethodGet, "/api/v1/views")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var list []models.ViewInfo
	decodeData(t, decodeResponse(t, rec), &list)

	var ids []string
	for _, v := range list {
		ids = append(ids, v.ID)
	}
	if got := strings.Join(ids, ","); got != "rfm,product,customer" {
		t.Errorf("views = %s", got)
	}
}

func TestView_RFM(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	rec := env.do(t, http.MethodGet, "/api/v1/views/rfm")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	if resp.Status != "success" || resp.Metadata.DatasetVersion != 3 || resp.Metadata.Cached {
		t.Errorf("envelope = %+v", resp)
	}
	if resp.Metadata.Timestamp.IsZero() {
		t.Error("metadata timestamp not set")
	}

	var view models.RFMView
	decodeData(t, resp, &view)
	if view.Customers != 10 || view.SnapshotDate != "2024-09-23" {
		t.Errorf("view = %d customers at %s", view.Customers, view.SnapshotDate)
	}
	if view.Rows[0].SegmentCode != "511" {
		t.Errorf("c01 segment = %s, want 511", view.Rows[0].SegmentCode)
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("missing ETag")
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing security headers")
	}
}

func TestView_ProductAndCustomer(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/api/v1/views/product?top_n=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("product status = %d body = %s", rec.Code, rec.Body.String())
	}
	var product models.ProductView
	decodeData(t, decodeResponse(t, rec), &product)
	if len(product.TopCategories) != 1 || product.TopCategories[0].Category != "cama_mesa_banho" {
		t.Errorf("top categories = %+v", product.TopCategories)
	}
	if product.Overall.WeightG == nil || *product.Overall.WeightG != 650 {
		t.Errorf("overall = %+v", product.Overall)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/views/customer")
	if rec.Code != http.StatusOK {
		t.Fatalf("customer status = %d", rec.Code)
	}
	var customer models.CustomerView
	decodeData(t, decodeResponse(t, rec), &customer)
	if len(customer.States) != 1 || customer.States[0].SalesCount != 1 {
		t.Errorf("states = %+v", customer.States)
	}
}

func TestView_ReloadDuringRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		bumps        int
		wantVersion  uint64
		wantAcquires int
	}{
		{"stable dataset", 0, 3, 1},
		{"one reload mid-render re-renders", 1, 4, 2},
		{"reloads keep landing stops after two attempts", 5, 4, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, func(e *testEnv) { e.datasets.bumpAfterAcquire = tt.bumps })
			rec := env.do(t, http.MethodGet, "/api/v1/views/product")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
			}
			resp := decodeResponse(t, rec)
			if resp.Metadata.DatasetVersion != tt.wantVersion {
				t.Errorf("dataset_version = %d, want %d", resp.Metadata.DatasetVersion, tt.wantVersion)
			}
			env.datasets.mu.Lock()
			acquires := env.datasets.acquires
			env.datasets.mu.Unlock()
			if acquires != tt.wantAcquires {
				t.Errorf("Acquire called %d times, want %d", acquires, tt.wantAcquires)
			}
		})
	}
}

func TestView_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		target     string
		mutate     func(*testEnv)
		wantStatus int
		wantCode   string
	}{
		{name: "unknown view", target: "/api/v1/views/cohort", wantStatus: http.StatusNotFound, wantCode: "VIEW_NOT_FOUND"},
		{name: "non-integer top_n", target: "/api/v1/views/product?top_n=ten", wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_ERROR"},
		{name: "zero top_n", target: "/api/v1/views/product?top_n=0", wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_ERROR"},
		{name: "top_n above hard limit", target: "/api/v1/views/product?top_n=101", wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_ERROR"},
		{
			name:       "top_n above configured max",
			target:     "/api/v1/views/customer?top_n=50",
			mutate:     func(env *testEnv) { env.cfg.API.MaxTopN = 20 },
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{name: "malformed snapshot", target: "/api/v1/views/rfm?snapshot=23-09-2024", wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_ERROR"},
		{name: "snapshot before last purchase", target: "/api/v1/views/rfm?snapshot=2024-01-01", wantStatus: http.StatusBadRequest, wantCode: "INVALID_SNAPSHOT"},
		{
			name:       "insufficient data",
			target:     "/api/v1/views/rfm",
			mutate:     func(env *testEnv) { env.store.rows = env.store.rows[:3] },
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "INSUFFICIENT_DATA",
		},
		{
			name:       "empty dataset",
			target:     "/api/v1/views/rfm",
			mutate:     func(env *testEnv) { env.store.rows = nil },
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "EMPTY_DATASET",
		},
		{
			name:       "dataset unavailable",
			target:     "/api/v1/views/product",
			mutate:     func(env *testEnv) { env.datasets.err = fmt.Errorf("%w: no such file", dataset.ErrDatasetUnavailable) },
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "DATASET_UNAVAILABLE",
		},
		{
			name:       "internal failure",
			target:     "/api/v1/views/product",
			mutate:     func(env *testEnv) { env.datasets.err = errBoom },
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, tt.mutate)
			rec := env.do(t, http.MethodGet, tt.target)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			resp := decodeResponse(t, rec)
			if resp.Status != "error" || resp.Error == nil {
				t.Fatalf("response = %s", rec.Body.String())
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", resp.Error.Code, tt.wantCode)
			}
			if strings.Contains(resp.Error.Message, errBoom.Error()) {
				t.Errorf("internal error leaked: %s", resp.Error.Message)
			}
		})
	}
}

func TestView_InsufficientDataDetails(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, func(env *testEnv) { env.store.rows = env.store.rows[:3] })
	resp := decodeResponse(t, env.do(t, http.MethodGet, "/api/v1/views/rfm"))

	details := resp.Error.Details
	if details["metric"] != "recency" {
		t.Errorf("metric = %v, want recency", details["metric"])
	}
	if details["distinct"] != float64(2) || details["required"] != float64(5) {
		t.Errorf("details = %v", details)
	}
}

func TestView_ConditionalRequest(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	first := env.do(t, http.MethodGet, "/api/v1/views/customer")
	etag := first.Header().Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	req := httptestRequest(http.MethodGet, "/api/v1/views/customer")
	req.Header.Set("If-None-Match", etag)
	rec := serve(env, req)
	if rec.Code != http.StatusNotModified {
		t.Errorf("status = %d, want 304", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("304 carried a body: %s", rec.Body.String())
	}
}

func TestView_Compression(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	req := httptestRequest(http.MethodGet, "/api/v1/views/rfm")
	req.Header.Set("Accept-Encoding", "gzip")
	rec := serve(env, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Encoding"); got != "gzip" {
		t.Errorf("Content-Encoding = %q, want gzip", got)
	}
}

func TestDataset(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	rec := env.do(t, http.MethodGet, "/api/v1/dataset")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var info models.DatasetInfo
	decodeData(t, decodeResponse(t, rec), &info)
	if info.Path != "/data/main_data.csv" || info.Version != 3 || info.Rows != 55 || info.Size != 2048 {
		t.Errorf("info = %+v", info)
	}
}

func TestReloadDataset(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)

	if rec := env.do(t, http.MethodGet, "/api/v1/dataset/reload"); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET reload status = %d, want 405", rec.Code)
	}

	rec := env.do(t, http.MethodPost, "/api/v1/dataset/reload")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Metadata.DatasetVersion != 4 {
		t.Errorf("dataset_version = %d, want 4", resp.Metadata.DatasetVersion)
	}
	if env.datasets.reloads != 1 {
		t.Errorf("reloads = %d, want 1", env.datasets.reloads)
	}
}

func TestRouter_NotFoundAndMetrics(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/api/v2/anything")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown route status = %d", rec.Code)
	}
	if resp := decodeResponse(t, rec); resp.Error == nil || resp.Error.Code != ErrCodeNotFound {
		t.Errorf("unknown route body = %s", rec.Body.String())
	}

	env.do(t, http.MethodGet, "/api/v1/views")
	rec = env.do(t, http.MethodGet, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `api_requests_total{endpoint="/api/v1/views"`) {
		t.Error("metrics output missing api_requests_total for /api/v1/views")
	}
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, func(env *testEnv) {
		env.cfg.Security.RateLimitDisabled = false
		env.cfg.Security.RateLimitReqs = 2
	})

	for i := 0; i < 2; i++ {
		if rec := env.do(t, http.MethodGet, "/api/v1/views"); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}
	rec := env.do(t, http.MethodGet, "/api/v1/views")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d, want 429", rec.Code)
	}
	if resp := decodeResponse(t, rec); resp.Error == nil || resp.Error.Code != ErrCodeRateLimited {
		t.Errorf("429 body = %s", rec.Body.String())
	}

	// health has its own budget
	if rec := env.do(t, http.MethodGet, "/api/v1/health/live"); rec.Code != http.StatusOK {
		t.Errorf("health after limit status = %d", rec.Code)
	}
}
