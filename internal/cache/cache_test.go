// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/storelens/internal/metrics"
)

func newTestCache(t *testing.T, name string, ttl time.Duration) *Cache {
	t.Helper()
	c := New(name, ttl)
	t.Cleanup(c.Stop)
	return c
}

func TestCacheBasicOperations(t *testing.T) {
	t.Parallel()
	c := newTestCache(t, "test-basic", time.Minute)

	c.Set("key1", "value1")
	value, exists := c.Get("key1")
	if !exists {
		t.Error("Expected key1 to exist")
	}
	if value != "value1" {
		t.Errorf("Expected value1, got %v", value)
	}

	if _, exists = c.Get("key2"); exists {
		t.Error("Expected key2 to not exist")
	}
}

func TestCacheExpiration(t *testing.T) {
	t.Parallel()
	c := newTestCache(t, "test-expiry", 50*time.Millisecond)

	c.Set("key1", "value1")
	if _, exists := c.Get("key1"); !exists {
		t.Error("Expected key1 to exist immediately after set")
	}

	time.Sleep(100 * time.Millisecond)

	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be expired")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry should be removed, Len() = %d", c.Len())
	}
}

func TestCacheSetWithTTL(t *testing.T) {
	t.Parallel()
	c := newTestCache(t, "test-ttl", time.Minute)

	c.SetWithTTL("short", "value", 50*time.Millisecond)
	c.Set("long", "value")
	time.Sleep(100 * time.Millisecond)

	if _, exists := c.Get("short"); exists {
		t.Error("Expected short-lived key to be expired")
	}
	if _, exists := c.Get("long"); !exists {
		t.Error("Expected default-TTL key to survive")
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	t.Parallel()
	c := newTestCache(t, "test-clear", time.Minute)

	c.Set("key1", "value1")
	c.Set("key2", "value2")
	c.Set("key3", "value3")

	c.Delete("key1")
	c.Delete("missing")
	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be deleted")
	}

	c.Clear()
	for _, key := range []string{"key2", "key3"} {
		if _, exists := c.Get(key); exists {
			t.Errorf("Expected %s to be cleared", key)
		}
	}

	stats := c.GetStats()
	if stats.Evictions != 3 {
		t.Errorf("Evictions = %d, want 3", stats.Evictions)
	}
	if stats.TotalKeys != 0 {
		t.Errorf("TotalKeys = %d, want 0", stats.TotalKeys)
	}
}

func TestCacheStats(t *testing.T) {
	t.Parallel()
	c := newTestCache(t, "test-stats", time.Minute)

	c.Set("key1", "value1")
	c.Get("key1") // hit
	c.Get("key2") // miss
	c.Get("key1") // hit

	stats := c.GetStats()
	if stats.Hits != 2 {
		t.Errorf("Expected 2 hits, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Expected 1 miss, got %d", stats.Misses)
	}

	hitRate := c.HitRate()
	expected := 200.0 / 3.0
	if hitRate < expected-0.01 || hitRate > expected+0.01 {
		t.Errorf("Expected hit rate around %.2f%%, got %.2f%%", expected, hitRate)
	}

	if got := testutil.ToFloat64(metrics.CacheHits.WithLabelValues("test-stats")); got != 2 {
		t.Errorf("cache_hits_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.CacheSize.WithLabelValues("test-stats")); got != 1 {
		t.Errorf("cache_entries = %v, want 1", got)
	}
}

func TestCacheCleanup(t *testing.T) {
	t.Parallel()
	c := newTestCache(t, "test-cleanup", time.Minute)

	c.SetWithTTL("gone", 1, time.Nanosecond)
	c.Set("kept", 2)
	time.Sleep(time.Millisecond)

	c.cleanup()

	if c.Len() != 1 {
		t.Errorf("Len() after cleanup = %d, want 1", c.Len())
	}
	if c.GetStats().LastCleanup.IsZero() {
		t.Error("LastCleanup should be set")
	}
}

func TestCacheStopIdempotent(t *testing.T) {
	t.Parallel()
	c := New("test-stop", time.Minute)
	c.Stop()
	c.Stop()
}

func TestGenerateKey(t *testing.T) {
	t.Parallel()

	type params struct {
		Version uint64
		TopN    int
	}

	key1 := GenerateKey("product", params{Version: 1, TopN: 10})
	key2 := GenerateKey("product", params{Version: 1, TopN: 10})
	key3 := GenerateKey("product", params{Version: 2, TopN: 10})
	key4 := GenerateKey("customer", params{Version: 1, TopN: 10})

	if key1 != key2 {
		t.Error("Expected same params to generate same key")
	}
	if key1 == key3 {
		t.Error("Expected a new dataset version to generate a different key")
	}
	if key1 == key4 {
		t.Error("Expected different prefixes to generate different keys")
	}
}

func TestCacheConcurrency(t *testing.T) {
	t.Parallel()
	c := newTestCache(t, "test-concurrency", time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set("key", id)
				c.Get("key")
				if j%10 == 0 {
					c.Delete("key")
				}
			}
		}(i)
	}
	wg.Wait()

	stats := c.GetStats()
	if stats.Hits == 0 && stats.Misses == 0 {
		t.Error("Expected some cache activity from concurrent operations")
	}
}

func BenchmarkCacheGet(b *testing.B) {
	c := New("bench", time.Minute)
	defer c.Stop()
	c.Set("key", "value")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get("key")
	}
}
