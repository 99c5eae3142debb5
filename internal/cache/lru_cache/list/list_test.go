package list

import (
	"slices"
	"testing"
)

func TestList_PushFront(t *testing.T) {
	l := NewList[int](4)

	l.PushFront(1)
	l.PushFront(2)
	l.PushFront(3)

	order := slices.Collect(l.Iter())
	if !slices.Equal(order, []int{3, 2, 1}) {
		t.Errorf("error: expected order [3 2 1], got %v", order)
	}
}

func TestList_ReserveFront(t *testing.T) {
	l := NewList[int](2)

	index := l.ReserveFront()
	l.Set(index, 10)

	if got := l.Get(index); got != 10 {
		t.Errorf("error: expected 10, got %d", got)
	}

	order := slices.Collect(l.Iter())
	if !slices.Equal(order, []int{10}) {
		t.Errorf("error: expected order [10], got %v", order)
	}
}

func TestList_MoveToFront(t *testing.T) {
	l := NewList[int](4)

	first := l.PushFront(1)
	l.PushFront(2)
	l.PushFront(3)

	l.MoveToFront(first)

	order := slices.Collect(l.Iter())
	if !slices.Equal(order, []int{1, 3, 2}) {
		t.Errorf("error: expected order [1 3 2], got %v", order)
	}
}

func TestList_Remove(t *testing.T) {
	l := NewList[int](4)

	l.PushFront(1)
	middle := l.PushFront(2)
	l.PushFront(3)

	if got := l.Remove(middle); got != 2 {
		t.Errorf("error: expected removed payload 2, got %d", got)
	}

	order := slices.Collect(l.Iter())
	if !slices.Equal(order, []int{3, 1}) {
		t.Errorf("error: expected order [3 1], got %v", order)
	}
}

func TestList_RemoveEmptySlotPanics(t *testing.T) {
	l := NewList[int](2)
	index := l.ReserveFront()

	defer func() {
		if recover() == nil {
			t.Errorf("error: expected panic on removing a payload-less slot")
		}
	}()
	l.Remove(index)
}

func TestList_PopBack(t *testing.T) {
	l := NewList[int](4)

	l.PushFront(1)
	l.PushFront(2)
	l.PushFront(3)

	if got := l.PopBack(); got != 1 {
		t.Errorf("error: expected back payload 1, got %d", got)
	}
	if got := l.PopBack(); got != 2 {
		t.Errorf("error: expected back payload 2, got %d", got)
	}

	order := slices.Collect(l.Iter())
	if !slices.Equal(order, []int{3}) {
		t.Errorf("error: expected order [3], got %v", order)
	}
}

func TestList_PopBackEmptyPanics(t *testing.T) {
	l := NewList[int](2)

	defer func() {
		if recover() == nil {
			t.Errorf("error: expected panic on pop from an empty list")
		}
	}()
	l.PopBack()
}

func TestList_SlotReuse(t *testing.T) {
	l := NewList[int](2)

	a := l.PushFront(1)
	l.PushFront(2)

	l.Remove(a)
	b := l.PushFront(3)

	if a != b {
		t.Errorf("error: expected freed slot %d to be reused, got %d", a, b)
	}
	if len(l.slots) != 4 {
		t.Errorf("error: expected buffer of 4 slots, got %d", len(l.slots))
	}
}

func TestList_Growth(t *testing.T) {
	l := NewList[int](1)

	l.PushFront(1)
	l.PushFront(2)
	l.PushFront(3)

	if len(l.slots) != 5 {
		t.Errorf("error: expected buffer of 5 slots, got %d", len(l.slots))
	}

	order := slices.Collect(l.Iter())
	if !slices.Equal(order, []int{3, 2, 1}) {
		t.Errorf("error: expected order [3 2 1], got %v", order)
	}
}

func TestList_Clear(t *testing.T) {
	l := NewList[int](2)

	l.PushFront(1)
	l.PushFront(2)
	l.PushFront(3)

	grown := cap(l.slots)
	l.Clear()

	if order := slices.Collect(l.Iter()); len(order) != 0 {
		t.Errorf("error: expected empty order after clear, got %v", order)
	}
	if len(l.slots) != 2 {
		t.Errorf("error: expected only sentinels after clear, got %d slots", len(l.slots))
	}
	if cap(l.slots) != grown {
		t.Errorf("error: expected retained buffer capacity %d, got %d", grown, cap(l.slots))
	}

	l.PushFront(4)
	order := slices.Collect(l.Iter())
	if !slices.Equal(order, []int{4}) {
		t.Errorf("error: expected order [4] after reuse, got %v", order)
	}
}

func TestList_IterRestarts(t *testing.T) {
	l := NewList[int](4)

	l.PushFront(1)
	l.PushFront(2)

	first := slices.Collect(l.Iter())
	second := slices.Collect(l.Iter())
	if !slices.Equal(first, second) {
		t.Errorf("error: expected identical sequences, got %v and %v", first, second)
	}
}

func TestList_IterEarlyStop(t *testing.T) {
	l := NewList[int](4)

	l.PushFront(1)
	l.PushFront(2)
	l.PushFront(3)

	var got []int
	for v := range l.Iter() {
		got = append(got, v)
		if len(got) == 2 {
			break
		}
	}
	if !slices.Equal(got, []int{3, 2}) {
		t.Errorf("error: expected [3 2], got %v", got)
	}
}

func TestList_CycleConsistency(t *testing.T) {
	l := NewList[int](3)

	a := l.PushFront(1)
	l.PushFront(2)
	c := l.PushFront(3)
	l.Remove(a)
	l.MoveToFront(c)
	l.PushFront(4)

	for index := range l.slots {
		next := l.slots[index].next
		prev := l.slots[index].prev
		if l.slots[next].prev != index {
			t.Errorf("error: slot %d next link inconsistent", index)
		}
		if l.slots[prev].next != index {
			t.Errorf("error: slot %d prev link inconsistent", index)
		}
	}
}
