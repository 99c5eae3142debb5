// Package lru_cache implements a size-bounded least-recently-used cache.
package lru_cache

import (
	"fmt"
	"iter"
	"time"

	"catalog/internal/cache/lru_cache/list"
)

// A pair is the order-list payload: the key travels with the value so that an
// eviction at the list tail can also drop the matching index entry.
type pair[K comparable, V any] struct {
	key   K
	value V
}

// A LRUCache keeps up to capacity entries and evicts the least recently used
// one to make room. The map index and the order list advance in lock-step:
// the index maps each key to its slot and holds exactly as many entries as
// the occupied cycle. Not safe for concurrent use; callers serialize.
type LRUCache[K comparable, V any] struct {
	store    map[K]int
	order    *list.List[pair[K, V]]
	capacity int
	hits     uint64
	misses   uint64
}

// NewLRUCache creates an empty cache with the given size limit and
// pre-allocated backing storage. A non-positive capacity is a configuration
// error: no cache is returned.
func NewLRUCache[K comparable, V any](capacity int) (*LRUCache[K, V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("expected positive number for capacity, got: %d", capacity)
	}
	return &LRUCache[K, V]{
		store:    make(map[K]int, capacity),
		order:    list.NewList[pair[K, V]](capacity),
		capacity: capacity,
	}, nil
}

// Get returns the value stored for key and promotes it to most recently
// used. Every successful read updates recency, not only writes.
func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	index, ok := c.store[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.order.MoveToFront(index)
	return c.order.Get(index).value, true
}

// Set inserts or overwrites the value for key. When the cache is full the
// least recently used entry is evicted before the insert, so the index never
// exceeds capacity. An overwrite reuses the existing slot and does not
// promote the key; only Get updates recency of a live entry.
func (c *LRUCache[K, V]) Set(key K, value V) {
	if len(c.store) >= c.capacity {
		// Capacity cannot be zero, so the order list has a tail to drop.
		evicted := c.order.PopBack()
		if _, ok := c.store[evicted.key]; !ok {
			panic(fmt.Sprintf("lru_cache: evicted key missing from index: %v", evicted.key))
		}
		delete(c.store, evicted.key)
	}
	index, ok := c.store[key]
	if !ok {
		// The mapping is established exactly once per key; a repeated set
		// reuses the slot instead of pushing a duplicate entry.
		index = c.order.ReserveFront()
		c.store[key] = index
	}
	c.order.Set(index, pair[K, V]{key: key, value: value})
}

// Remove drops the entry for key from the index and the order list, returning
// its value. An absent key reports false with no side effects.
func (c *LRUCache[K, V]) Remove(key K) (V, bool) {
	index, ok := c.store[key]
	if !ok {
		var zero V
		return zero, false
	}
	delete(c.store, key)
	return c.order.Remove(index).value, true
}

// Clear empties the index and the order list. Hit and miss counters are kept,
// as is the backing storage of both structures.
func (c *LRUCache[K, V]) Clear() {
	clear(c.store)
	c.order.Clear()
}

// Reset is identical to Clear: capacity is fixed at construction, so there is
// no smaller pre-allocation to return to.
func (c *LRUCache[K, V]) Reset() {
	c.Clear()
}

// Size returns the current number of live entries.
func (c *LRUCache[K, V]) Size() int {
	return len(c.store)
}

// Hits returns the cumulative hit count.
func (c *LRUCache[K, V]) Hits() (uint64, bool) {
	return c.hits, true
}

// Misses returns the cumulative miss count.
func (c *LRUCache[K, V]) Misses() (uint64, bool) {
	return c.misses, true
}

// Capacity returns the entry limit of the cache.
func (c *LRUCache[K, V]) Capacity() (int, bool) {
	return c.capacity, true
}

// Lifespan reports false: entries of this variant do not expire.
func (c *LRUCache[K, V]) Lifespan() (time.Duration, bool) {
	return 0, false
}

// KeyOrder returns a restartable iterator over the keys from most to least
// recently used.
func (c *LRUCache[K, V]) KeyOrder() iter.Seq[K] {
	return func(yield func(K) bool) {
		for p := range c.order.Iter() {
			if !yield(p.key) {
				return
			}
		}
	}
}

// ValueOrder returns a restartable iterator over the values from most to
// least recently used.
func (c *LRUCache[K, V]) ValueOrder() iter.Seq[V] {
	return func(yield func(V) bool) {
		for p := range c.order.Iter() {
			if !yield(p.value) {
				return
			}
		}
	}
}
