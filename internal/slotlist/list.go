// Package slotlist implements a fixed-capacity doubly linked list whose nodes
// live in one preallocated slice and refer to each other by Index.
//
// The list keeps recency order (head = most recently used, tail = least
// recently used) and never allocates after New: new values fill unused
// slots, removed slots are recycled, and once every slot is live Insert
// overwrites the tail slot in place.
//
// List has no notion of keys and is not safe for concurrent use. Passing an
// index that is out of range or not currently linked is a caller bug and the
// result is undefined.
package slotlist

import "iter"

// List is an array-backed MRU↔LRU list of capacity fixed at construction.
type List[T any] struct {
	slots []slot[T] // len = slots handed out so far, cap = capacity
	head  Index     // MRU
	tail  Index     // LRU
	free  Index     // removed slots, chained through next
	len   int       // number of linked slots
}

// New returns an empty list holding at most capacity values.
// It panics with an error wrapping ErrCapacity if capacity is not in
// [1, MaxCapacity].
func New[T any](capacity int) *List[T] {
	if err := Validate(capacity); err != nil {
		panic(err)
	}
	return &List[T]{
		slots: make([]slot[T], 0, capacity),
		head:  Nil,
		tail:  Nil,
		free:  Nil,
	}
}

// Len returns the number of linked slots.
func (l *List[T]) Len() int { return l.len }

// Cap returns the fixed capacity.
func (l *List[T]) Cap() int { return cap(l.slots) }

// Front returns the MRU index, or Nil if the list is empty.
func (l *List[T]) Front() Index { return l.head }

// Back returns the LRU index, or Nil if the list is empty.
func (l *List[T]) Back() Index { return l.tail }

// Insert stores v in a slot linked at the head and returns its index.
//
// A previously removed slot is reused first, then an unused one. When every
// slot is live, the tail slot is detached, its value is overwritten with v and
// the same index is relinked at the head; the overwritten value is returned
// as evicted with ok == true.
func (l *List[T]) Insert(v T) (idx Index, evicted T, ok bool) {
	switch {
	case l.free != Nil:
		idx = l.free
		l.free = l.slots[idx].next
		l.slots[idx].val = v
	case len(l.slots) < cap(l.slots):
		idx = Index(len(l.slots))
		l.slots = append(l.slots, slot[T]{val: v})
	default:
		idx = l.tail
		l.unlink(idx)
		evicted, ok = l.slots[idx].val, true
		l.slots[idx].val = v
	}
	l.pushFront(idx)
	return idx, evicted, ok
}

// Touch moves idx to the head. No-op if it already is the head.
func (l *List[T]) Touch(idx Index) {
	if idx == l.head {
		return
	}
	l.unlink(idx)
	l.pushFront(idx)
}

// Remove detaches idx from the list and returns its value.
// The slot is zeroed and kept for reuse by a later Insert.
func (l *List[T]) Remove(idx Index) T {
	l.unlink(idx)
	s := &l.slots[idx]
	v := s.val
	var zero T
	s.val = zero
	s.next = l.free
	l.free = idx
	return v
}

// Replace touches idx, stores v in it and returns the previous value.
func (l *List[T]) Replace(idx Index, v T) T {
	l.Touch(idx)
	s := &l.slots[idx]
	old := s.val
	s.val = v
	return old
}

// Get touches idx and returns a pointer to its value.
// The pointer stays valid until the slot is removed or evicted.
func (l *List[T]) Get(idx Index) *T {
	l.Touch(idx)
	return &l.slots[idx].val
}

// All yields pointers to the stored values from MRU to LRU.
// The sequence is restartable; the list must not be mutated while ranging.
func (l *List[T]) All() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for _, v := range l.Entries() {
			if !yield(v) {
				return
			}
		}
	}
}

// Entries is All with the slot index of each value. It stops after the tail
// slot, or immediately when the list is empty.
func (l *List[T]) Entries() iter.Seq2[Index, *T] {
	return func(yield func(Index, *T) bool) {
		if l.len == 0 {
			return
		}
		for i := l.head; i != Nil; {
			idx, s := i, &l.slots[i]
			if i == l.tail {
				i = Nil
			} else {
				i = s.next
			}
			if !yield(idx, &s.val) {
				return
			}
		}
	}
}

// Clear unlinks every slot. Capacity is retained and nothing is reallocated.
func (l *List[T]) Clear() {
	clear(l.slots) // drop references held by values
	l.slots = l.slots[:0]
	l.head, l.tail, l.free = Nil, Nil, Nil
	l.len = 0
}

// Clone returns an independent copy with the same capacity and order.
// Values are copied shallowly.
func (l *List[T]) Clone() *List[T] {
	c := *l
	c.slots = make([]slot[T], len(l.slots), cap(l.slots))
	copy(c.slots, l.slots)
	return &c
}

// ---- internals ----

// pushFront links a detached idx at MRU in O(1).
func (l *List[T]) pushFront(idx Index) {
	s := &l.slots[idx]
	s.prev = Nil
	s.next = l.head
	if l.head != Nil {
		l.slots[l.head].prev = idx
	} else {
		l.tail = idx
	}
	l.head = idx
	l.len++
}

// unlink detaches idx and patches its neighbors (or head/tail) in O(1).
func (l *List[T]) unlink(idx Index) {
	s := &l.slots[idx]
	if idx == l.head {
		l.head = s.next
	} else {
		l.slots[s.prev].next = s.next
	}
	if idx == l.tail {
		l.tail = s.prev
	} else {
		l.slots[s.next].prev = s.prev
	}
	s.prev, s.next = Nil, Nil
	l.len--
}
