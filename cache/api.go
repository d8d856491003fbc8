package cache

import "iter"

// Cache is a fixed-capacity, in-memory LRU key/value cache interface.
// Implementations are NOT safe for concurrent use; see the package docs.
//
// Every operation is O(1) expected, except RemoveFunc and TouchFunc which
// visit every resident key once.
type Cache[K comparable, V any] interface {
	// Put inserts or updates k→v and promotes k to most-recently-used.
	// On update it returns the previous value and replaced == true.
	// Inserting a new key into a full cache silently evicts the LRU entry.
	Put(k K, v V) (old V, replaced bool)

	// Get returns the value for k and a presence flag.
	// On hit, k is promoted to most-recently-used.
	Get(k K) (V, bool)

	// Contains reports whether k is resident without affecting recency.
	Contains(k K) bool

	// Remove deletes k if present and returns true on success.
	Remove(k K) bool

	// RemoveFunc deletes every key for which pred returns true and
	// returns how many were removed.
	RemoveFunc(pred func(K) bool) int

	// TouchFunc promotes every key for which pred returns true and
	// returns how many were touched.
	TouchFunc(pred func(K) bool) int

	// Clear drops all entries. Capacity is retained.
	Clear()

	// Len returns the number of resident entries.
	Len() int

	// Cap returns the fixed capacity.
	Cap() int

	// All yields key/value pairs from most- to least-recently-used.
	All() iter.Seq2[K, V]

	// Keys yields keys from most- to least-recently-used.
	Keys() iter.Seq[K]
}
