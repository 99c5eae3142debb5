// Package list implements the recency-order list backing the LRU cache.
//
// The list is arena-based: slots live in one contiguous buffer and link to
// each other by index instead of by pointer. Free and occupied slots are each
// chained into a cyclic list with one sentinel slot. Slot 0 is the sentinel of
// the free cycle, slot 1 is the sentinel of the occupied cycle. The slot right
// after the occupied sentinel is the most recently used element, the slot
// right before it is the least recently used one.
package list

import "iter"

const (
	freeRoot     = 0
	occupiedRoot = 1
)

// A slot holds at most one payload and its links within the cycle it is
// currently on. present reports whether the payload is live.
type slot[T any] struct {
	value   T
	present bool
	next    int
	prev    int
}

// A List is a doubly linked list of payload slots ordered from most to least
// recently used. It is not safe for concurrent use; the owning cache
// serializes access.
type List[T any] struct {
	slots []slot[T]
}

// NewList creates an empty list with room pre-allocated for capacity payload
// slots plus the two sentinels.
func NewList[T any](capacity int) *List[T] {
	l := &List[T]{slots: make([]slot[T], 0, capacity+2)}
	l.slots = append(l.slots, slot[T]{next: freeRoot, prev: freeRoot})
	l.slots = append(l.slots, slot[T]{next: occupiedRoot, prev: occupiedRoot})
	return l
}

// unlink detaches the slot from whichever cycle it is on. The slot's own links
// are left dangling until the next linkAfter.
func (l *List[T]) unlink(index int) {
	prev := l.slots[index].prev
	next := l.slots[index].next
	l.slots[prev].next = next
	l.slots[next].prev = prev
}

// linkAfter inserts the slot into a cycle right after prev.
func (l *List[T]) linkAfter(index, prev int) {
	next := l.slots[prev].next
	l.slots[index].prev = prev
	l.slots[index].next = next
	l.slots[prev].next = index
	l.slots[next].prev = index
}

// ReserveFront takes a slot from the free cycle, growing the buffer by one
// slot if the free cycle is empty, and links it at the front of the occupied
// cycle without assigning a payload. It returns the slot index for later O(1)
// access.
func (l *List[T]) ReserveFront() int {
	if l.slots[freeRoot].next == freeRoot {
		l.slots = append(l.slots, slot[T]{next: freeRoot, prev: freeRoot})
		l.slots[freeRoot].next = len(l.slots) - 1
	}
	index := l.slots[freeRoot].next
	l.unlink(index)
	l.linkAfter(index, occupiedRoot)
	return index
}

// PushFront adds value at the front of the occupied cycle and returns its
// slot index.
func (l *List[T]) PushFront(value T) int {
	index := l.ReserveFront()
	l.Set(index, value)
	return index
}

// MoveToFront relinks the slot as the new head of the occupied cycle. Used to
// mark a slot as just accessed.
func (l *List[T]) MoveToFront(index int) {
	l.unlink(index)
	l.linkAfter(index, occupiedRoot)
}

// Remove unlinks the slot from the occupied cycle, returns it to the free
// cycle and hands back its payload. Removing a slot that holds no payload
// means the cache index and the list disagree, so it panics instead of
// returning a wrong value.
func (l *List[T]) Remove(index int) T {
	l.unlink(index)
	l.linkAfter(index, freeRoot)
	if !l.slots[index].present {
		panic("list: remove of a slot with no payload")
	}
	var zero T
	value := l.slots[index].value
	l.slots[index].value = zero
	l.slots[index].present = false
	return value
}

// Back returns the index of the least recently used slot. With no occupied
// slots it returns the occupied sentinel itself.
func (l *List[T]) Back() int {
	return l.slots[occupiedRoot].prev
}

// PopBack removes and returns the payload of the least recently used slot.
func (l *List[T]) PopBack() T {
	return l.Remove(l.Back())
}

// Get returns the payload of the slot without touching the order. It panics
// on a payload-less slot for the same reason Remove does.
func (l *List[T]) Get(index int) T {
	if !l.slots[index].present {
		panic("list: get of a slot with no payload")
	}
	return l.slots[index].value
}

// Set replaces the payload of the slot without touching the order.
func (l *List[T]) Set(index int, value T) {
	l.slots[index].value = value
	l.slots[index].present = true
}

// Clear reinitializes the list to the empty state. The backing buffer is kept
// for reuse.
func (l *List[T]) Clear() {
	l.slots = l.slots[:0]
	l.slots = append(l.slots, slot[T]{next: freeRoot, prev: freeRoot})
	l.slots = append(l.slots, slot[T]{next: occupiedRoot, prev: occupiedRoot})
}

// Iter returns a restartable iterator over the payloads from most to least
// recently used. The list must not be mutated while iterating.
func (l *List[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for index := l.slots[occupiedRoot].next; index != occupiedRoot; index = l.slots[index].next {
			if !yield(l.slots[index].value) {
				return
			}
		}
	}
}
