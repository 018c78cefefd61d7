// Basketcast - Retail Basket Analytics and Demand Forecasting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketcast

package cache

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestCacheBasicOperations(t *testing.T) {
	c := New(1 * time.Minute)
	defer c.Close()

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
	c := New(100 * time.Millisecond)
	defer c.Close()

	c.Set("key1", "value1")
	if _, exists := c.Get("key1"); !exists {
		t.Error("Expected key1 to exist immediately after set")
	}

	time.Sleep(150 * time.Millisecond)

	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be expired")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after expired read", c.Len())
	}
}

func TestCacheDelete(t *testing.T) {
	c := New(1 * time.Minute)
	defer c.Close()

	c.Set("key1", "value1")
	c.Set("key2", "value2")

	c.Delete("key1")
	c.Delete("missing")
	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be deleted")
	}
	if _, exists := c.Get("key2"); !exists {
		t.Error("Expected key2 to survive")
	}

	stats := c.GetStats()
	if stats.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", stats.Evictions)
	}
	if stats.TotalKeys != 1 {
		t.Errorf("TotalKeys = %d, want 1", stats.TotalKeys)
	}
}

func TestCacheMaxEntries(t *testing.T) {
	c := NewWithOptions(Options{TTL: time.Minute, MaxEntries: 2})
	defer c.Close()

	c.Set("soon", 1)
	time.Sleep(5 * time.Millisecond)
	c.Set("later", 2)
	time.Sleep(5 * time.Millisecond)
	c.Set("newest", 3)

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if _, ok := c.Get("soon"); ok {
		t.Error("Expected entry closest to expiry to be evicted")
	}
	for _, key := range []string{"later", "newest"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("Expected %s to be cached", key)
		}
	}

	// Overwriting an existing key never evicts.
	c.Set("later", 4)
	if c.Len() != 2 {
		t.Errorf("Len() = %d after overwrite, want 2", c.Len())
	}
}

func TestCacheStats(t *testing.T) {
	c := New(1 * time.Minute)
	defer c.Close()

	if c.HitRate() != 0 {
		t.Errorf("HitRate() = %v on empty cache, want 0", c.HitRate())
	}

	c.Set("key1", "value1")
	c.Get("key1")
	c.Get("key1")
	c.Get("key1")
	c.Get("missing")

	stats := c.GetStats()
	if stats.Hits != 3 {
		t.Errorf("Hits = %d, want 3", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Misses = %d, want 1", stats.Misses)
	}
	if stats.TotalKeys != 1 {
		t.Errorf("TotalKeys = %d, want 1", stats.TotalKeys)
	}
	if got := c.HitRate(); got != 75 {
		t.Errorf("HitRate() = %v, want 75", got)
	}
}

func TestCacheCleanup(t *testing.T) {
	c := NewWithOptions(Options{TTL: 20 * time.Millisecond, CleanupInterval: time.Hour})
	defer c.Close()

	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("key%d", i), i)
	}
	time.Sleep(50 * time.Millisecond)
	c.cleanup()

	if c.Len() != 0 {
		t.Errorf("Len() = %d after cleanup, want 0", c.Len())
	}
	stats := c.GetStats()
	if stats.Evictions != 5 {
		t.Errorf("Evictions = %d, want 5", stats.Evictions)
	}
}

func TestCacheClose(t *testing.T) {
	c := New(time.Minute)
	c.Close()
	c.Close()

	c.Set("key", "value")
	if _, ok := c.Get("key"); !ok {
		t.Error("Expected cache to stay usable after Close")
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := New(1 * time.Minute)
	defer c.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key-%d-%d", id, j)
				c.Set(key, j)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if c.Len() != 1000 {
		t.Errorf("Len() = %d, want 1000", c.Len())
	}
}

func TestGenerateKey(t *testing.T) {
	type params struct {
		MinSupport float64
		Dataset    string
	}

	a := GenerateKey("mine_rules", params{0.05, "abc"})
	b := GenerateKey("mine_rules", params{0.05, "abc"})
	c := GenerateKey("mine_rules", params{0.1, "abc"})
	d := GenerateKey("forecast", params{0.05, "abc"})

	if a != b {
		t.Errorf("GenerateKey() not stable: %q != %q", a, b)
	}
	if a == c {
		t.Error("GenerateKey() collided for different params")
	}
	if a == d {
		t.Error("GenerateKey() collided for different methods")
	}
	if !strings.HasPrefix(a, "mine_rules:") {
		t.Errorf("GenerateKey() = %q, want mine_rules: prefix", a)
	}
	// 16 hash bytes in hex.
	if got := len(strings.TrimPrefix(a, "mine_rules:")); got != 32 {
		t.Errorf("hash length = %d, want 32", got)
	}

	// Channels cannot be marshaled; the key falls back to %v.
	ch := make(chan int)
	if got := GenerateKey("bad", ch); !strings.HasPrefix(got, "bad:") {
		t.Errorf("GenerateKey(chan) = %q, want bad: prefix", got)
	}
}
