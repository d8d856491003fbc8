package cache

import (
	"iter"
	"maps"

	"github.com/IvanBrykalov/slotlru/internal/slotlist"
)

// entry is what a slot holds. The key is stored alongside the value so an
// evicted slot can be unbound from the index.
type entry[K comparable, V any] struct {
	key K
	val V
}

// Map is a fixed-capacity LRU cache: a slotlist.List for recency order plus
// a map from key to slot index.
//
// For every (k, idx) in index, the slot at idx is live and holds key k; every
// live slot's key is indexed at that slot. Each method restores this before
// returning. Slot indices never leave the package.
//
// Map is not safe for concurrent use. The zero value is not usable;
// construct with New.
type Map[K comparable, V any] struct {
	list  *slotlist.List[entry[K, V]]
	index map[K]slotlist.Index
}

// Ensure *Map implements Cache at compile time.
var _ Cache[string, int] = (*Map[string, int])(nil)

// New constructs a Map with the provided Options.
// It panics if opt.Validate fails: an unaddressable capacity is a
// programming error and no usable cache can exist.
func New[K comparable, V any](opt Options) *Map[K, V] {
	if err := opt.Validate(); err != nil {
		panic(err)
	}
	return &Map[K, V]{
		list:  slotlist.New[entry[K, V]](opt.Capacity),
		index: make(map[K]slotlist.Index, opt.Capacity),
	}
}

// Put inserts or updates k→v and promotes k to MRU.
// Returns the previous value and true if k was already resident.
//
// When a new key arrives at full capacity the LRU entry is evicted and its
// key unbound before k is bound; the eviction is not reported.
func (m *Map[K, V]) Put(k K, v V) (old V, replaced bool) {
	if idx, ok := m.index[k]; ok {
		prev := m.list.Replace(idx, entry[K, V]{key: k, val: v})
		return prev.val, true
	}

	idx, ev, evicted := m.list.Insert(entry[K, V]{key: k, val: v})
	if evicted {
		delete(m.index, ev.key)
	}
	m.index[k] = idx
	return old, false
}

// Get returns the value for k and promotes it to MRU.
// Reads always count as a use.
func (m *Map[K, V]) Get(k K) (V, bool) {
	idx, ok := m.index[k]
	if !ok {
		var zero V
		return zero, false
	}
	return m.list.Get(idx).val, true
}

// Contains reports whether k is resident. Recency is not affected.
func (m *Map[K, V]) Contains(k K) bool {
	_, ok := m.index[k]
	return ok
}

// Remove deletes k if present and returns true on success.
func (m *Map[K, V]) Remove(k K) bool {
	idx, ok := m.index[k]
	if !ok {
		return false
	}
	m.list.Remove(idx)
	delete(m.index, k)
	return true
}

// RemoveFunc deletes every key for which pred returns true.
// Surviving entries keep their slots and relative order.
func (m *Map[K, V]) RemoveFunc(pred func(K) bool) int {
	n := 0
	for k, idx := range m.index {
		if pred(k) {
			m.list.Remove(idx)
			delete(m.index, k)
			n++
		}
	}
	return n
}

// TouchFunc promotes every key for which pred returns true to MRU.
//
// Matches are touched in map iteration order, which Go randomizes. When more
// than one key matches, their final relative order is unspecified; they all
// end up ahead of every non-matching key.
func (m *Map[K, V]) TouchFunc(pred func(K) bool) int {
	n := 0
	for k, idx := range m.index {
		if pred(k) {
			m.list.Touch(idx)
			n++
		}
	}
	return n
}

// Clear drops all entries. Capacity is retained and nothing is reallocated.
func (m *Map[K, V]) Clear() {
	clear(m.index)
	m.list.Clear()
}

// Len returns the number of resident entries.
func (m *Map[K, V]) Len() int { return m.list.Len() }

// Cap returns the fixed capacity.
func (m *Map[K, V]) Cap() int { return m.list.Cap() }

// All yields key/value pairs from MRU to LRU without affecting recency.
// The Map must not be modified while ranging.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for e := range m.list.All() {
			if !yield(e.key, e.val) {
				return
			}
		}
	}
}

// Keys yields keys from MRU to LRU without affecting recency.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for e := range m.list.All() {
			if !yield(e.key) {
				return
			}
		}
	}
}

// Clone returns an independent copy with the same contents, order and
// capacity. Values are copied shallowly.
func (m *Map[K, V]) Clone() *Map[K, V] {
	return &Map[K, V]{
		list:  m.list.Clone(),
		index: maps.Clone(m.index),
	}
}
