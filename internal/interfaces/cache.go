package interfaces

import "time"

// Cached is the capability contract shared by every cache variant. All
// implementations are single-threaded: even Get mutates (counters, recency),
// so callers needing shared access must serialize around the whole cache.
// Values returned by Get are valid until the next mutating call on the same
// cache.
type Cached[K comparable, V any] interface {
	// Get returns the cached value, counting a hit or a miss.
	Get(key K) (V, bool)
	// Set inserts or overwrites the value for key.
	Set(key K, value V)
	// Remove drops the entry and returns its value, or reports absence.
	Remove(key K) (V, bool)
	// Clear drops all entries but keeps counters and grown backing storage.
	Clear()
	// Reset drops all entries and shrinks backing storage to the
	// configuration given at construction, where the variant supports it.
	Reset()
	// Size returns the number of live entries.
	Size() int
	// Hits returns the cumulative hit count.
	Hits() (uint64, bool)
	// Misses returns the cumulative miss count.
	Misses() (uint64, bool)
	// Capacity returns the entry limit; only the size-bounded variant has one.
	Capacity() (int, bool)
	// Lifespan returns the entry lifetime; only the time-bounded variant has one.
	Lifespan() (time.Duration, bool)
}
