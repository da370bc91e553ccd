// Package slots implements growable slot tables for callback subscribers.
//
// A table hands out the first empty slot index and doubles its backing
// storage when full, up to an optional hard cap. Slot indices stay stable
// for the lifetime of a subscription, so they can be used as unsubscribe
// handles.
package slots

import "errors"

// ErrExhausted is returned when a table has reached its hard cap.
var ErrExhausted = errors.New("subscriber slots exhausted")

// defaultInitial is the initial slot count of a table.
const defaultInitial = 4

// Table is a growable slot table. The zero value is not usable; create
// tables with New. Table is not safe for concurrent use; callers guard it
// with their own lock.
type Table[T any] struct {
	entries []entry[T]
	max     int
}

type entry[T any] struct {
	used  bool
	value T
}

// New creates a table. max limits the total slot count; max <= 0 means
// unbounded.
func New[T any](max int) *Table[T] {
	initial := defaultInitial
	if max > 0 && max < initial {
		initial = max
	}
	return &Table[T]{
		entries: make([]entry[T], initial),
		max:     max,
	}
}

// Add stores value in the first empty slot and returns its index.
// When all slots are used the table doubles, unless that would exceed the
// cap, in which case ErrExhausted is returned and the table is unchanged.
func (t *Table[T]) Add(value T) (int, error) {
	for i := range t.entries {
		if !t.entries[i].used {
			t.entries[i] = entry[T]{used: true, value: value}
			return i, nil
		}
	}

	if t.max > 0 && len(t.entries) >= t.max {
		return 0, ErrExhausted
	}

	grown := len(t.entries) * 2
	if t.max > 0 && grown > t.max {
		grown = t.max
	}
	slot := len(t.entries)
	entries := make([]entry[T], grown)
	copy(entries, t.entries)
	t.entries = entries

	t.entries[slot] = entry[T]{used: true, value: value}
	return slot, nil
}

// Remove clears the slot at index. Out-of-range indices are ignored.
func (t *Table[T]) Remove(index int) {
	if index < 0 || index >= len(t.entries) {
		return
	}
	t.entries[index] = entry[T]{}
}

// Each calls fn for every used slot in index order.
func (t *Table[T]) Each(fn func(value T)) {
	for i := range t.entries {
		if t.entries[i].used {
			fn(t.entries[i].value)
		}
	}
}

// Len returns the number of used slots.
func (t *Table[T]) Len() int {
	n := 0
	for i := range t.entries {
		if t.entries[i].used {
			n++
		}
	}
	return n
}

// Cap returns the current slot count including empty slots.
func (t *Table[T]) Cap() int { return len(t.entries) }
