// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package cache

import (
	"sync"
	"time"
)

type lruEntry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
	prev      *lruEntry[V]
	next      *lruEntry[V]
}

// LRU is a thread-safe least recently used cache with a fixed TTL per
// entry. Expired entries are dropped lazily on access or by
// CleanupExpired.
//
// Entries live in a doubly-linked list with sentinels; head.next is the
// most recently used.
type LRU[V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*lruEntry[V]
	head     *lruEntry[V]
	tail     *lruEntry[V]
	now      func() time.Time

	hits   int64
	misses int64
}

// NewLRU creates a cache. Non-positive arguments take defaults of 10000
// entries and 5 minutes.
func NewLRU[V any](capacity int, ttl time.Duration) *LRU[V] {
	if capacity <= 0 {
		capacity = 10000
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	c := &LRU[V]{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*lruEntry[V]),
		head:     &lruEntry[V]{},
		tail:     &lruEntry[V]{},
		now:      time.Now,
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get returns the value for key and marks it most recently used.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	entry, ok := c.items[key]
	if !ok {
		c.misses++
		return zero, false
	}
	if c.now().After(entry.expiresAt) {
		c.remove(entry)
		c.misses++
		return zero, false
	}
	c.unlink(entry)
	c.pushFront(entry)
	c.hits++
	return entry.value, true
}

// Add inserts or replaces key, resetting its TTL. The least recently used
// entry is evicted when the cache is full.
func (c *LRU[V]) Add(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	if entry, ok := c.items[key]; ok {
		entry.value = value
		entry.expiresAt = expiresAt
		c.unlink(entry)
		c.pushFront(entry)
		return
	}

	entry := &lruEntry[V]{key: key, value: value, expiresAt: expiresAt}
	c.pushFront(entry)
	c.items[key] = entry

	for len(c.items) > c.capacity {
		c.remove(c.tail.prev)
	}
}

// Remove deletes key and reports whether it was present.
func (c *LRU[V]) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[key]
	if ok {
		c.remove(entry)
	}
	return ok
}

// Len returns the number of entries, expired ones included.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// CleanupExpired removes every expired entry and returns how many went.
func (c *LRU[V]) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for entry := c.tail.prev; entry != c.head; {
		prev := entry.prev
		if now.After(entry.expiresAt) {
			c.remove(entry)
			removed++
		}
		entry = prev
	}
	return removed
}

// Stats returns hit and miss counts and the current size.
func (c *LRU[V]) Stats() (hits, misses int64, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, len(c.items)
}

// The helpers below require c.mu.

func (c *LRU[V]) pushFront(entry *lruEntry[V]) {
	entry.prev = c.head
	entry.next = c.head.next
	c.head.next.prev = entry
	c.head.next = entry
}

func (c *LRU[V]) unlink(entry *lruEntry[V]) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
}

func (c *LRU[V]) remove(entry *lruEntry[V]) {
	if entry == c.head || entry == c.tail {
		return
	}
	c.unlink(entry)
	delete(c.items, entry.key)
}
