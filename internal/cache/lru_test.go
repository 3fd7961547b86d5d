// Riffline - Social Music Collaboration and Discovery Platform
// Copyright 2026 Tristan Hayes (tristanhayes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tristanhayes/riffline

package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestLRU_GetAdd(t *testing.T) {
	c := NewLRU[string](10, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) = hit, want miss")
	}

	c.Add("k1", "v1")
	got, ok := c.Get("k1")
	if !ok || got != "v1" {
		t.Errorf("Get(k1) = %q, %v, want v1, true", got, ok)
	}

	c.Add("k1", "v2")
	got, _ = c.Get("k1")
	if got != "v2" {
		t.Errorf("Get(k1) after update = %q, want v2", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (update must not duplicate)", c.Len())
	}
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRU[int](3, time.Minute)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	// Touch "a" so "b" becomes the eviction candidate.
	if _, ok := c.Get("a"); !ok {
		t.Fatal("Get(a) = miss, want hit")
	}

	c.Add("d", 4)

	if _, ok := c.Get("b"); ok {
		t.Error("Get(b) = hit, want evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("Get(%s) = miss, want hit", key)
		}
	}
}

func TestLRU_TTLExpiry(t *testing.T) {
	c := NewLRU[int](10, time.Nanosecond)

	c.Add("k", 1)
	time.Sleep(time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("Get(k) = hit, want expired miss")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after lazy expiry", c.Len())
	}
}

func TestLRU_Remove(t *testing.T) {
	c := NewLRU[int](10, time.Minute)

	c.Add("k", 1)
	if !c.Remove("k") {
		t.Error("Remove(k) = false, want true")
	}
	if c.Remove("k") {
		t.Error("Remove(k) twice = true, want false")
	}
	if _, ok := c.Get("k"); ok {
		t.Error("Get(k) = hit after Remove")
	}
}

func TestLRU_Clear(t *testing.T) {
	c := NewLRU[int](10, time.Minute)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Get("a")
	c.Get("missing")

	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	hits, misses := c.Stats()
	if hits != 0 || misses != 0 {
		t.Errorf("Stats() = %d, %d, want reset counters", hits, misses)
	}
}

func TestLRU_Stats(t *testing.T) {
	c := NewLRU[int](10, time.Minute)

	c.Add("k", 1)
	c.Get("k")
	c.Get("k")
	c.Get("missing")

	hits, misses := c.Stats()
	if hits != 2 || misses != 1 {
		t.Errorf("Stats() = %d hits, %d misses, want 2, 1", hits, misses)
	}
}

func TestLRU_DefaultsOnInvalidConfig(t *testing.T) {
	c := NewLRU[int](0, 0)

	for i := 0; i < 100; i++ {
		c.Add(fmt.Sprintf("k%d", i), i)
	}
	if c.Len() != 100 {
		t.Errorf("Len() = %d, want 100 under default capacity", c.Len())
	}
}
