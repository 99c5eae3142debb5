// Package timed_cache implements a cache bound by entry age instead of size.
package timed_cache

import "time"

// A stamped value remembers when it was inserted.
type stamped[V any] struct {
	addedAt time.Time
	value   V
}

// A TimedCache stores timestamped values and treats an entry older than the
// configured lifespan as absent. Expiry is detected lazily on Get; there is
// no background sweep, so an expired entry occupies memory until the next Get
// on its exact key. Not safe for concurrent use; callers serialize.
type TimedCache[K comparable, V any] struct {
	store           map[K]stamped[V]
	lifespan        time.Duration
	hits            uint64
	misses          uint64
	initialCapacity int
}

// NewTimedCache creates an empty cache whose entries live for lifespan.
func NewTimedCache[K comparable, V any](lifespan time.Duration) *TimedCache[K, V] {
	return &TimedCache[K, V]{store: make(map[K]stamped[V]), lifespan: lifespan}
}

// NewTimedCacheWithCapacity creates an empty cache whose entries live for
// lifespan, with the given pre-allocated capacity. Reset shrinks the cache
// back to it.
func NewTimedCacheWithCapacity[K comparable, V any](lifespan time.Duration, capacity int) *TimedCache[K, V] {
	return &TimedCache[K, V]{
		store:           make(map[K]stamped[V], capacity),
		lifespan:        lifespan,
		initialCapacity: capacity,
	}
}

// Get returns the value stored for key if it is still within its lifespan.
// An expired entry counts a miss and is purged immediately; an absent key
// counts a miss.
func (c *TimedCache[K, V]) Get(key K) (V, bool) {
	s, ok := c.store[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	if time.Since(s.addedAt) >= c.lifespan {
		c.misses++
		delete(c.store, key)
		var zero V
		return zero, false
	}
	c.hits++
	return s.value, true
}

// Set inserts or overwrites the value for key, restarting its lifespan.
func (c *TimedCache[K, V]) Set(key K, value V) {
	c.store[key] = stamped[V]{addedAt: time.Now(), value: value}
}

// Remove drops the entry for key and returns its value, or reports absence.
// The value is returned even if it already expired.
func (c *TimedCache[K, V]) Remove(key K) (V, bool) {
	s, ok := c.store[key]
	if !ok {
		var zero V
		return zero, false
	}
	delete(c.store, key)
	return s.value, true
}

// Clear drops all entries. Counters and grown map storage are kept.
func (c *TimedCache[K, V]) Clear() {
	clear(c.store)
}

// Reset drops all entries and reallocates the map at the capacity given at
// construction. Counters are kept.
func (c *TimedCache[K, V]) Reset() {
	c.store = make(map[K]stamped[V], c.initialCapacity)
}

// Size returns the current number of entries, expired ones included.
func (c *TimedCache[K, V]) Size() int {
	return len(c.store)
}

// Hits returns the cumulative hit count.
func (c *TimedCache[K, V]) Hits() (uint64, bool) {
	return c.hits, true
}

// Misses returns the cumulative miss count.
func (c *TimedCache[K, V]) Misses() (uint64, bool) {
	return c.misses, true
}

// Capacity reports false: this variant has no entry limit.
func (c *TimedCache[K, V]) Capacity() (int, bool) {
	return 0, false
}

// Lifespan returns the configured maximum entry age.
func (c *TimedCache[K, V]) Lifespan() (time.Duration, bool) {
	return c.lifespan, true
}
