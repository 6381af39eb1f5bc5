// Package cachestore implements the bounded, thread-safe cache type used
// for caches that straddle queries (the mobility reachability memo is its
// only user; road distance and nearest-node lookups are not cached), plus
// an optional Redis-backed mobility-snapshot store for
// horizontally-scaled deployments.
package cachestore

import "sync"

// BoundedCache is a single map guarded by one RWMutex (not sharded), with
// a fixed total capacity and evict-on-overflow semantics, grounded on the sync.RWMutex-guarded map
// pattern used throughout the pack's graph/cache code, generalized here
// into one reusable generic type instead of three hand-duplicated maps.
type BoundedCache[K comparable, V any] struct {
	mu       sync.RWMutex
	capacity int
	entries  map[K]V
	// order tracks insertion order for a simple FIFO eviction; this domain
	// does not need true LRU recency tracking, just a bound on growth.
	order []K
}

// NewBoundedCache returns a cache that holds at most capacity entries.
func NewBoundedCache[K comparable, V any](capacity int) *BoundedCache[K, V] {
	if capacity <= 0 {
		capacity = 1
	}
	return &BoundedCache[K, V]{
		capacity: capacity,
		entries:  make(map[K]V, capacity),
	}
}

// Get returns the cached value and whether it was present.
func (c *BoundedCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Set stores a value, evicting the oldest entry if the cache is full.
func (c *BoundedCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = value
}

// Len reports the current number of entries.
func (c *BoundedCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
