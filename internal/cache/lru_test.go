// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests move time without sleeping.
type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestLRU(capacity int, ttl time.Duration) (*LRU[string], *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRU[string](capacity, ttl)
	c.now = clock.now
	return c, clock
}

func TestLRU_GetAdd(t *testing.T) {
	c, _ := newTestLRU(3, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) ok = true, want false")
	}

	c.Add("a", "alpha")
	c.Add("a", "alpha2")
	got, ok := c.Get("a")
	if !ok || got != "alpha2" {
		t.Errorf("Get(a) = %q, %v, want alpha2, true", got, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}

	hits, misses, size := c.Stats()
	if hits != 1 || misses != 1 || size != 1 {
		t.Errorf("Stats() = %d, %d, %d, want 1, 1, 1", hits, misses, size)
	}
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := newTestLRU(2, time.Minute)

	c.Add("a", "1")
	c.Add("b", "2")
	c.Get("a") // b is now oldest
	c.Add("c", "3")

	if _, ok := c.Get("b"); ok {
		t.Error("b survived eviction")
	}
	for _, key := range []string{"a", "c"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("Get(%s) ok = false, want true", key)
		}
	}
}

func TestLRU_Expiry(t *testing.T) {
	c, clock := newTestLRU(10, time.Minute)

	c.Add("old", "x")
	clock.advance(30 * time.Second)
	c.Add("new", "y")
	clock.advance(45 * time.Second)

	if _, ok := c.Get("old"); ok {
		t.Error("Get(old) ok = true after TTL")
	}
	if _, ok := c.Get("new"); !ok {
		t.Error("Get(new) ok = false before TTL")
	}

	clock.advance(time.Minute)
	if removed := c.CleanupExpired(); removed != 1 {
		t.Errorf("CleanupExpired() = %d, want 1", removed)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestLRU_AddResetsTTL(t *testing.T) {
	c, clock := newTestLRU(10, time.Minute)

	c.Add("k", "v1")
	clock.advance(50 * time.Second)
	c.Add("k", "v2")
	clock.advance(50 * time.Second)

	if got, ok := c.Get("k"); !ok || got != "v2" {
		t.Errorf("Get(k) = %q, %v, want v2, true", got, ok)
	}
}

func TestLRU_Remove(t *testing.T) {
	c, _ := newTestLRU(10, time.Minute)
	c.Add("k", "v")

	if !c.Remove("k") {
		t.Error("Remove(k) = false, want true")
	}
	if c.Remove("k") {
		t.Error("second Remove(k) = true, want false")
	}
}

func TestNewLRU_Defaults(t *testing.T) {
	c := NewLRU[int](0, 0)
	if c.capacity != 10000 || c.ttl != 5*time.Minute {
		t.Errorf("NewLRU(0, 0) = capacity %d ttl %v, want 10000 5m", c.capacity, c.ttl)
	}
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU[int](100, time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := fmt.Sprintf("k%d", (g*500+i)%150)
				c.Add(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 100 {
		t.Errorf("Len() = %d, want at most 100", c.Len())
	}
}
