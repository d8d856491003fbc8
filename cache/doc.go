// Package cache provides a generic, fixed-capacity, in-memory LRU cache that
// never allocates per entry and never grows after construction.
//
// Design
//
//   - Storage: entries live in a single array allocated by New. The array is
//     threaded into an MRU↔LRU doubly linked list whose links are 16-bit slot
//     indices rather than pointers (see internal/slotlist). A map[K]index
//     turns the positional list into a key/value cache. All operations are
//     O(1) expected.
//
//   - Eviction: strict LRU. When a new key arrives at full capacity, the tail
//     slot is detached, overwritten in place and relinked at the head; its old
//     key is dropped from the index. Evictions are silent.
//
//   - Recency: Put and Get promote the key. Contains, All and Keys do not.
//     TouchFunc promotes a set of keys chosen by predicate; the relative order
//     among several touched keys follows map iteration order and is therefore
//     unspecified.
//
//   - Capacity: Options.Capacity must be in [1, MaxCapacity]. New panics on an
//     invalid capacity; call Options.Validate first when the value comes from
//     configuration.
//
// Basic usage
//
//	c := cache.New[string, []byte](cache.Options{Capacity: 1024})
//	c.Put("a", []byte("1"))
//	if v, ok := c.Get("a"); ok {
//	    _ = v // use value
//	}
//	c.Remove("a")
//
// Bulk operations
//
//	c.RemoveFunc(func(k string) bool { return strings.HasPrefix(k, "tmp:") })
//	c.TouchFunc(func(k string) bool { return strings.HasPrefix(k, "hot:") })
//	for k, v := range c.All() { // MRU first
//	    fmt.Println(k, v)
//	}
//
// Thread-safety
//
// A Map is meant to have a single owner. Share it between goroutines only
// behind a sync.Mutex (reads mutate recency, so an RWMutex read lock is not
// enough), or confine each Map to one goroutine and route keys to it; the
// benchmark harness in cmd/bench does the latter.
package cache
