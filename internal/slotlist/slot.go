package slotlist

import (
	"errors"
	"fmt"
	"math"
)

// Index addresses a slot in a List's backing array.
type Index uint16

// Nil is the sentinel index. It means "no neighbor" inside the list and
// "iteration complete" while walking it, so every valid index must be
// strictly smaller than Nil.
const Nil Index = math.MaxUint16

// MaxCapacity is the largest capacity New accepts.
const MaxCapacity = int(Nil) - 1

// ErrCapacity is wrapped by Validate (and by New's panic) when the requested
// capacity cannot be addressed by Index.
var ErrCapacity = errors.New("slotlist: capacity out of range")

// Validate reports whether capacity is usable for New.
func Validate(capacity int) error {
	if capacity <= 0 || capacity > MaxCapacity {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrCapacity, capacity, MaxCapacity)
	}
	return nil
}

// slot is one position of the backing array: a value plus its recency links.
// prev and next are only meaningful while the slot is linked into the list.
// A removed slot reuses next to chain the free list.
type slot[T any] struct {
	val T

	// head is MRU, tail is LRU.
	prev Index
	next Index
}
