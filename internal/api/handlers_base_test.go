// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/storelens/internal/config"
	"github.com/tomtom215/storelens/internal/dataset"
	"github.com/tomtom215/storelens/internal/models"
	"github.com/tomtom215/storelens/internal/rfm"
	"github.com/tomtom215/storelens/internal/views"
	ws "github.com/tomtom215/storelens/internal/websocket"
)

var testSnapshot = time.Date(2024, 9, 23, 0, 0, 0, 0, time.UTC)

// fakeStore serves ten scoreable customers and fixed aggregates.
type fakeStore struct {
	rows    []models.OrderRow
	pingErr error
}

func newFakeStore() *fakeStore {
	var rows []models.OrderRow
	for i := 1; i <= 10; i++ {
		id := fmt.Sprintf("c%02d", i)
		for j := 1; j <= i; j++ {
			purchased := testSnapshot.Add(-time.Duration(i+j-1) * 24 * time.Hour)
			rows = append(rows, models.OrderRow{
				CustomerID:        id,
				OrderID:           fmt.Sprintf("%s-o%d", id, j),
				PurchaseTimestamp: purchased.Format(time.DateTime),
				TotalCost:         strconv.Itoa(100),
			})
		}
	}
	return &fakeStore{rows: rows}
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

func (f *fakeStore) OrderRows(context.Context) ([]models.OrderRow, error) {
	return f.rows, nil
}

func (f *fakeStore) TopCategories(_ context.Context, limit int) ([]models.CategoryStats, error) {
	all := []models.CategoryStats{
		{Category: "cama_mesa_banho", PurchaseCount: 3, MajorityCustomerState: "SP", MajorityCustomerCity: "sao paulo"},
		{Category: "beleza_saude", PurchaseCount: 2, MajorityCustomerState: "RJ", MajorityCustomerCity: "campinas"},
	}
	return all[:min(limit, len(all))], nil
}

func (f *fakeStore) ProductAverages(context.Context) (models.ProductAverages, error) {
	weight := 650.0
	return models.ProductAverages{WeightG: &weight}, nil
}

func (f *fakeStore) CityDeliveryTimes(context.Context, int) ([]models.CityDelivery, error) {
	return []models.CityDelivery{{City: "belo horizonte", AvgDeliveryDays: 30}}, nil
}

func (f *fakeStore) StateDeliveryTimes(context.Context, int) ([]models.StateDelivery, error) {
	return []models.StateDelivery{{State: "MG", AvgDeliveryDays: 30, SalesCount: 1}}, nil
}

// fakeDatasets hands out a fixed snapshot or error.
type fakeDatasets struct {
	mu      sync.Mutex
	snap    dataset.Snapshot
	loaded  bool
	err     error
	reloads int

	acquires int
	// bumpAfterAcquire simulates reloads that land right after Acquire
	// returns, while the view is still rendering.
	bumpAfterAcquire int
}

func newFakeDatasets() *fakeDatasets {
	return &fakeDatasets{
		loaded: true,
		snap: dataset.Snapshot{
			Version: 3,
			Identity: dataset.FileIdentity{
				Path:    "/data/main_data.csv",
				Size:    2048,
				ModTime: time.Date(2024, 9, 20, 12, 0, 0, 0, time.UTC),
			},
			Rows:     55,
			LoadedAt: time.Date(2024, 9, 21, 8, 0, 0, 0, time.UTC),
		},
	}
}

func (f *fakeDatasets) Acquire(context.Context) (dataset.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acquires++
	if f.err != nil {
		return dataset.Snapshot{}, f.err
	}
	snap := f.snap
	if f.bumpAfterAcquire > 0 {
		f.bumpAfterAcquire--
		f.snap.Version++
	}
	return snap, nil
}

func (f *fakeDatasets) Reload(ctx context.Context) (dataset.Snapshot, error) {
	f.mu.Lock()
	f.reloads++
	if f.err == nil {
		f.snap.Version++
	}
	f.mu.Unlock()
	return f.Acquire(ctx)
}

func (f *fakeDatasets) Current() (dataset.Snapshot, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap, f.loaded
}

func (f *fakeDatasets) Path() string { return f.snap.Identity.Path }

func testConfig() *config.Config {
	return &config.Config{
		API: config.APIConfig{DefaultTopN: 10, MaxTopN: 100, CacheTTL: time.Minute},
		Security: config.SecurityConfig{
			CORSOrigins:       []string{"http://dashboard.local"},
			RateLimitReqs:     1000,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: true,
		},
	}
}

type testEnv struct {
	cfg      *config.Config
	store    *fakeStore
	datasets *fakeDatasets
	hub      *ws.Hub
	handler  http.Handler
}

// newTestEnv builds the full router around fakes. mutate runs before the
// router is assembled.
func newTestEnv(t *testing.T, mutate func(*testEnv)) *testEnv {
	t.Helper()
	env := &testEnv{
		cfg:      testConfig(),
		store:    newFakeStore(),
		datasets: newFakeDatasets(),
	}
	if mutate != nil {
		mutate(env)
	}

	registry := views.NewDefaultRegistry(nil, views.Settings{
		Snapshot:      testSnapshot,
		Scoring:       rfm.DefaultOptions(),
		HistogramBins: 10,
	})
	handler := NewHandler(HandlerDeps{
		Config:   env.cfg,
		Store:    env.store,
		Datasets: env.datasets,
		Views:    registry,
		Hub:      env.hub,
		Version:  "test",
	})
	env.handler = NewRouter(handler, NewChiMiddlewareFromConfig(&env.cfg.Security)).SetupChi()
	return env
}

func (env *testEnv) do(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	return rec
}

// testResponse mirrors models.APIResponse with Data left raw.
type testResponse struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) testResponse {
	t.Helper()
	var resp testResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return resp
}

func decodeData(t *testing.T, resp testResponse, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(resp.Data, v); err != nil {
		t.Fatalf("decode data %s: %v", resp.Data, err)
	}
}

var errBoom = errors.New("disk on fire")

func httptestRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

func serve(env *testEnv, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	return rec
}
