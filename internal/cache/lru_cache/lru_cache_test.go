package lru_cache

import (
	"math/rand/v2"
	"slices"
	"testing"
)

func TestLRUCache_ZeroCapacity(t *testing.T) {
	if _, err := NewLRUCache[int, int](0); err == nil {
		t.Errorf("error: expected error for zero capacity")
	}
	if _, err := NewLRUCache[int, int](-1); err == nil {
		t.Errorf("error: expected error for negative capacity")
	}
}

func TestLRUCache_GetSet(t *testing.T) {
	c, err := NewLRUCache[int, int](5)
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	if _, ok := c.Get(1); ok {
		t.Errorf("error: 1 should be absent")
	}
	if misses, _ := c.Misses(); misses != 1 {
		t.Errorf("error: expected 1 miss, got %d", misses)
	}

	c.Set(1, 100)

	val, ok := c.Get(1)
	if !ok {
		t.Errorf("error: 1 should be contained")
	}
	if val != 100 {
		t.Errorf("error: value is not correct to the key")
	}
	if hits, _ := c.Hits(); hits != 1 {
		t.Errorf("error: expected 1 hit, got %d", hits)
	}
}

func TestLRUCache_EvictionOrder(t *testing.T) {
	c, err := NewLRUCache[int, int](5)
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	for key := 1; key <= 5; key++ {
		c.Set(key, key*100)
	}

	order := slices.Collect(c.KeyOrder())
	if !slices.Equal(order, []int{5, 4, 3, 2, 1}) {
		t.Errorf("error: expected key order [5 4 3 2 1], got %v", order)
	}

	c.Set(6, 600)
	c.Set(7, 700)

	order = slices.Collect(c.KeyOrder())
	if !slices.Equal(order, []int{7, 6, 5, 4, 3}) {
		t.Errorf("error: expected key order [7 6 5 4 3], got %v", order)
	}

	if _, ok := c.Get(2); ok {
		t.Errorf("error: 2 should be evicted")
	}
	if _, ok := c.Get(3); !ok {
		t.Errorf("error: 3 should be contained")
	}

	order = slices.Collect(c.KeyOrder())
	if !slices.Equal(order, []int{3, 7, 6, 5, 4}) {
		t.Errorf("error: expected key order [3 7 6 5 4], got %v", order)
	}

	if misses, _ := c.Misses(); misses != 1 {
		t.Errorf("error: expected 1 miss, got %d", misses)
	}
	if c.Size() != 5 {
		t.Errorf("error: expected size 5, got %d", c.Size())
	}
}

func TestLRUCache_PromotionOnGet(t *testing.T) {
	c, err := NewLRUCache[int, int](3)
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	c.Set(1, 1)
	c.Set(2, 2)
	c.Set(3, 3)

	// 1 is the least recent; reading it must rescue it from eviction.
	c.Get(1)
	c.Set(4, 4)

	if _, ok := c.Get(2); ok {
		t.Errorf("error: 2 should be evicted")
	}
	if _, ok := c.Get(1); !ok {
		t.Errorf("error: 1 should survive after promotion")
	}
}

func TestLRUCache_SetDoesNotPromote(t *testing.T) {
	c, err := NewLRUCache[int, int](4)
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	c.Set(1, 1)
	c.Set(2, 2)
	c.Set(3, 3)

	// Overwriting the least recent key must leave its position unchanged.
	c.Set(1, 10)

	order := slices.Collect(c.KeyOrder())
	if !slices.Equal(order, []int{3, 2, 1}) {
		t.Errorf("error: expected key order [3 2 1], got %v", order)
	}

	val, ok := c.Get(1)
	if !ok || val != 10 {
		t.Errorf("error: expected overwritten value 10, got %d", val)
	}
}

func TestLRUCache_DuplicateSetRegression(t *testing.T) {
	// Repeated sets of one key must not leave two order-list entries for it,
	// otherwise a later eviction drains the list faster than the index.
	c, err := NewLRUCache[int, int](2)
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	c.Set(1, 100)
	c.Set(1, 100)

	if c.Size() != 1 {
		t.Errorf("error: expected size 1 after duplicate sets, got %d", c.Size())
	}

	c.Set(2, 100)
	c.Set(3, 100)
	c.Set(4, 100)

	if c.Size() != 2 {
		t.Errorf("error: expected size 2, got %d", c.Size())
	}
}

func TestLRUCache_CapacityInvariant(t *testing.T) {
	c, err := NewLRUCache[int, int](4)
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	for i := 0; i < 100; i++ {
		c.Set(rand.IntN(20), i)
		if c.Size() > 4 {
			t.Fatalf("error: size %d exceeds capacity", c.Size())
		}
	}
}

func TestLRUCache_Remove(t *testing.T) {
	c, err := NewLRUCache[int, int](3)
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	c.Set(1, 100)
	c.Set(2, 200)
	c.Set(3, 300)

	val, ok := c.Remove(2)
	if !ok || val != 200 {
		t.Errorf("error: expected removed value 200, got %d", val)
	}
	if c.Size() != 2 {
		t.Errorf("error: expected size 2, got %d", c.Size())
	}

	if _, ok := c.Remove(2); ok {
		t.Errorf("error: removing extra should report absence")
	}
	if c.Size() != 2 {
		t.Errorf("error: expected size 2 after no-op remove, got %d", c.Size())
	}

	// A just-evicted key behaves the same as a never-present one.
	c.Set(4, 400)
	c.Set(5, 500)
	if _, ok := c.Remove(1); ok {
		t.Errorf("error: removing an evicted key should report absence")
	}
	if c.Size() != 3 {
		t.Errorf("error: expected size 3, got %d", c.Size())
	}
}

func TestLRUCache_ClearKeepsCounters(t *testing.T) {
	c, err := NewLRUCache[int, int](3)
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	c.Set(1, 100)
	c.Set(2, 200)
	c.Get(1)
	c.Get(9)

	c.Clear()

	if c.Size() != 0 {
		t.Errorf("error: expected size 0 after clear, got %d", c.Size())
	}
	if hits, _ := c.Hits(); hits != 1 {
		t.Errorf("error: expected 1 hit after clear, got %d", hits)
	}
	if misses, _ := c.Misses(); misses != 1 {
		t.Errorf("error: expected 1 miss after clear, got %d", misses)
	}

	c.Set(3, 300)
	if val, ok := c.Get(3); !ok || val != 300 {
		t.Errorf("error: cache should be usable after clear")
	}
}

func TestLRUCache_ResetEqualsClear(t *testing.T) {
	c, err := NewLRUCache[int, int](3)
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	c.Set(1, 100)
	c.Reset()

	if c.Size() != 0 {
		t.Errorf("error: expected size 0 after reset, got %d", c.Size())
	}
	if capacity, ok := c.Capacity(); !ok || capacity != 3 {
		t.Errorf("error: expected capacity 3 after reset, got %d", capacity)
	}
}

func TestLRUCache_ValueOrder(t *testing.T) {
	c, err := NewLRUCache[int, string](3)
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	c.Set(1, "a")
	c.Set(2, "b")
	c.Set(3, "c")

	order := slices.Collect(c.ValueOrder())
	if !slices.Equal(order, []string{"c", "b", "a"}) {
		t.Errorf("error: expected value order [c b a], got %v", order)
	}
}

func TestLRUCache_Contract(t *testing.T) {
	c, err := NewLRUCache[int, int](3)
	if err != nil {
		t.Fatalf("error: %v", err)
	}

	if capacity, ok := c.Capacity(); !ok || capacity != 3 {
		t.Errorf("error: expected capacity 3, got %d", capacity)
	}
	if _, ok := c.Lifespan(); ok {
		t.Errorf("error: lru cache should not report a lifespan")
	}
}

func BenchmarkLRUCache_Rand(b *testing.B) {
	c, err := NewLRUCache[int, int](8192)
	if err != nil {
		b.Fatalf("error: %v", err)
	}

	trace := make([]int, b.N*2)
	for i := 0; i < b.N*2; i++ {
		trace[i] = rand.IntN(32768)
	}

	b.ResetTimer()

	var hit, miss int
	for i := 0; i < 2*b.N; i++ {
		if i%2 == 0 {
			c.Set(trace[i], trace[i])
		} else {
			if _, ok := c.Get(trace[i]); ok {
				hit++
			} else {
				miss++
			}
		}
	}
	b.Logf("hit: %d miss: %d", hit, miss)
}

func BenchmarkLRUCache_Freq(b *testing.B) {
	c, err := NewLRUCache[int, int](8192)
	if err != nil {
		b.Fatalf("error: %v", err)
	}

	trace := make([]int, b.N*2)
	for i := 0; i < b.N*2; i++ {
		if i%2 == 0 {
			trace[i] = rand.IntN(16384)
		} else {
			trace[i] = rand.IntN(32768)
		}
	}

	b.ResetTimer()

	for i := range trace[:b.N] {
		c.Set(trace[i], trace[i])
	}
	var hit, miss int
	for i := range trace[:b.N] {
		if _, ok := c.Get(trace[i]); ok {
			hit++
		} else {
			miss++
		}
	}
	b.Logf("hit: %d miss: %d", hit, miss)
}
