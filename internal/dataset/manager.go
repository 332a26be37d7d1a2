// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package dataset

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/storelens/internal/logging"
	"github.com/tomtom215/storelens/internal/metrics"
	"github.com/tomtom215/storelens/internal/rfm"
)

// ErrDatasetUnavailable is returned when no snapshot can be served: the file
// cannot be read and nothing has been loaded before.
var ErrDatasetUnavailable = errors.New("dataset unavailable")

// Loader replaces the orders table with the contents of a CSV file.
// *database.DB satisfies it.
type Loader interface {
	LoadOrdersCSV(ctx context.Context, path string) (int64, error)
}

// Snapshot describes the loaded dataset. Version increments on every
// successful reload and starts at 1.
type Snapshot struct {
	Version  uint64       `json:"version"`
	Identity FileIdentity `json:"identity"`
	Rows     int64        `json:"rows"`
	LoadedAt time.Time    `json:"loaded_at"`
}

// Options configures a Manager.
type Options struct {
	// Path is the CSV file to load.
	Path string

	// FailureThreshold is the number of consecutive load failures that
	// opens the circuit breaker. Defaults to 3.
	FailureThreshold uint32

	// BreakerTimeout is how long the breaker stays open before a trial
	// reload. Defaults to 30 seconds.
	BreakerTimeout time.Duration
}

// failure remembers a data error for one file identity.
type failure struct {
	identity FileIdentity
	err      error
}

// Manager loads the dataset on demand and caches it by file identity.
type Manager struct {
	path   string
	loader Loader
	cb     *gobreaker.CircuitBreaker[int64]

	// reloadMu serializes reloads; stateMu guards the fields below.
	reloadMu sync.Mutex
	stateMu  sync.RWMutex

	current     *Snapshot
	failed      *failure
	invalidated bool
	version     uint64
	listeners   []func(Snapshot)
}

const breakerName = "dataset-load"

// NewManager creates a Manager. Nothing is loaded until the first Acquire.
func NewManager(loader Loader, opts Options) *Manager {
	if opts.FailureThreshold == 0 {
		opts.FailureThreshold = 3
	}
	if opts.BreakerTimeout <= 0 {
		opts.BreakerTimeout = 30 * time.Second
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	threshold := opts.FailureThreshold
	cb := gobreaker.NewCircuitBreaker[int64](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			shouldTrip := counts.ConsecutiveFailures >= threshold
			if shouldTrip {
				logging.Warn().Uint32("failures", counts.ConsecutiveFailures).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},
		// A readable file with bad content is not an infrastructure fault.
		IsSuccessful: func(err error) bool {
			return err == nil || rfm.IsDataError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &Manager{
		path:   opts.Path,
		loader: loader,
		cb:     cb,
	}
}

// Path returns the dataset file path.
func (m *Manager) Path() string {
	return m.path
}

// OnReload registers fn to run after each successful reload.
func (m *Manager) OnReload(fn func(Snapshot)) {
	m.stateMu.Lock()
	m.listeners = append(m.listeners, fn)
	m.stateMu.Unlock()
}

// Current returns the last loaded snapshot without touching the file.
func (m *Manager) Current() (Snapshot, bool) {
	m.stateMu.RLock()
	defer m.stateMu.RUnlock()
	if m.current == nil {
		return Snapshot{}, false
	}
	return *m.current, true
}

// Invalidate forces the next Acquire to reload regardless of file identity.
func (m *Manager) Invalidate() {
	m.stateMu.Lock()
	m.invalidated = true
	m.failed = nil
	m.stateMu.Unlock()
}

// Reload invalidates the cached identity and acquires a fresh snapshot.
func (m *Manager) Reload(ctx context.Context) (Snapshot, error) {
	m.Invalidate()
	return m.Acquire(ctx)
}

// Acquire returns a snapshot matching the file currently on disk, reloading
// it when its identity changed since the last load.
func (m *Manager) Acquire(ctx context.Context) (Snapshot, error) {
	identity, err := Stat(m.path)
	if err != nil {
		return m.fallback(err)
	}

	if snap, hit, err := m.cached(identity); hit {
		return snap, err
	}

	m.reloadMu.Lock()
	defer m.reloadMu.Unlock()

	// Another caller may have finished the reload while we waited.
	if snap, hit, err := m.cached(identity); hit {
		return snap, err
	}

	snap, loaded, err := m.reload(ctx, identity)
	if err != nil || !loaded {
		return snap, err
	}

	m.notify(snap)
	return snap, nil
}

// cached answers from memory when the identity has already been handled.
func (m *Manager) cached(identity FileIdentity) (Snapshot, bool, error) {
	m.stateMu.RLock()
	defer m.stateMu.RUnlock()

	if m.invalidated {
		return Snapshot{}, false, nil
	}
	if m.current != nil && m.current.Identity.Equal(identity) {
		return *m.current, true, nil
	}
	if m.failed != nil && m.failed.identity.Equal(identity) {
		return Snapshot{}, true, m.failed.err
	}
	return Snapshot{}, false, nil
}

// reload loads the file into the store. loaded is false when the returned
// snapshot is the previous one served in place of a failed load.
func (m *Manager) reload(ctx context.Context, identity FileIdentity) (snap Snapshot, loaded bool, err error) {
	start := time.Now()
	rows, err := m.cb.Execute(func() (int64, error) {
		return m.loader.LoadOrdersCSV(ctx, m.path)
	})
	duration := time.Since(start)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
			metrics.DatasetLoads.WithLabelValues("rejected").Inc()
			logging.Warn().Err(err).Str("path", m.path).Msg("[CIRCUIT BREAKER] Dataset reload rejected")
			snap, err = m.fallback(err)
			return snap, false, err
		}

		metrics.RecordDatasetLoad(duration, 0, 0, err)
		if rfm.IsDataError(err) {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
			m.stateMu.Lock()
			m.failed = &failure{identity: identity, err: err}
			m.invalidated = false
			m.stateMu.Unlock()
			logging.Warn().Err(err).Str("path", m.path).Msg("Dataset rejected")
			return Snapshot{}, false, err
		}

		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
		logging.Error().Err(err).Str("path", m.path).Dur("duration", duration).Msg("Dataset reload failed")
		// A failed load leaves the previous orders table in place.
		snap, err = m.fallback(fmt.Errorf("reload dataset: %w", err))
		return snap, false, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()

	m.stateMu.Lock()
	m.version++
	snap = Snapshot{
		Version:  m.version,
		Identity: identity,
		Rows:     rows,
		LoadedAt: time.Now().UTC(),
	}
	m.current = &snap
	m.failed = nil
	m.invalidated = false
	m.stateMu.Unlock()

	metrics.RecordDatasetLoad(duration, rows, snap.Version, nil)
	logging.Info().
		Str("path", m.path).
		Int64("rows", rows).
		Uint64("version", snap.Version).
		Dur("duration", duration).
		Msg("Dataset loaded")

	return snap, true, nil
}

// fallback serves the last good snapshot when the file cannot be read or
// loaded.
func (m *Manager) fallback(cause error) (Snapshot, error) {
	if snap, ok := m.Current(); ok {
		logging.Warn().Err(cause).Uint64("version", snap.Version).Msg("Serving last good dataset")
		return snap, nil
	}
	return Snapshot{}, fmt.Errorf("%w: %w", ErrDatasetUnavailable, cause)
}

func (m *Manager) notify(snap Snapshot) {
	m.stateMu.RLock()
	listeners := make([]func(Snapshot), len(m.listeners))
	copy(listeners, m.listeners)
	m.stateMu.RUnlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
