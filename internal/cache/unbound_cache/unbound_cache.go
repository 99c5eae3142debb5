// Package unbound_cache implements a cache with no size limit and no
// eviction policy.
package unbound_cache

import "time"

// An UnboundCache is a thin wrapper over a map that adds hit and miss
// accounting. Not safe for concurrent use; callers serialize.
type UnboundCache[K comparable, V any] struct {
	store           map[K]V
	hits            uint64
	misses          uint64
	initialCapacity int
}

// NewUnboundCache creates an empty cache.
func NewUnboundCache[K comparable, V any]() *UnboundCache[K, V] {
	return &UnboundCache[K, V]{store: make(map[K]V)}
}

// NewUnboundCacheWithCapacity creates an empty cache with the given
// pre-allocated capacity. Reset shrinks the cache back to it.
func NewUnboundCacheWithCapacity[K comparable, V any](capacity int) *UnboundCache[K, V] {
	return &UnboundCache[K, V]{store: make(map[K]V, capacity), initialCapacity: capacity}
}

// Get returns the value stored for key, counting a hit or a miss.
func (c *UnboundCache[K, V]) Get(key K) (V, bool) {
	value, ok := c.store[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	return value, true
}

// Set inserts or overwrites the value for key.
func (c *UnboundCache[K, V]) Set(key K, value V) {
	c.store[key] = value
}

// Remove drops the entry for key and returns its value, or reports absence.
func (c *UnboundCache[K, V]) Remove(key K) (V, bool) {
	value, ok := c.store[key]
	if !ok {
		var zero V
		return zero, false
	}
	delete(c.store, key)
	return value, true
}

// Clear drops all entries. Counters and grown map storage are kept.
func (c *UnboundCache[K, V]) Clear() {
	clear(c.store)
}

// Reset drops all entries and reallocates the map at the capacity given at
// construction. Counters are kept.
func (c *UnboundCache[K, V]) Reset() {
	c.store = make(map[K]V, c.initialCapacity)
}

// Size returns the current number of entries.
func (c *UnboundCache[K, V]) Size() int {
	return len(c.store)
}

// Hits returns the cumulative hit count.
func (c *UnboundCache[K, V]) Hits() (uint64, bool) {
	return c.hits, true
}

// Misses returns the cumulative miss count.
func (c *UnboundCache[K, V]) Misses() (uint64, bool) {
	return c.misses, true
}

// Capacity reports false: this variant has no entry limit.
func (c *UnboundCache[K, V]) Capacity() (int, bool) {
	return 0, false
}

// Lifespan reports false: entries of this variant do not expire.
func (c *UnboundCache[K, V]) Lifespan() (time.Duration, bool) {
	return 0, false
}
