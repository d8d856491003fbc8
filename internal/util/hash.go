// Package util contains internal helpers (hashing, owner routing, padding)
// used by the benchmark harness.
//revive:disable:var-naming  // allow 'util' as an internal helpers package name
package util

// 64-bit FNV-1a parameters.
const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

// HashString hashes s with 64-bit FNV-1a without converting it to []byte.
// It is used to route keys to owners, not for the cache index itself
// (cache.Map relies on Go's built-in map hashing).
func HashString(s string) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime64
	}
	return h
}

// HashUint64 hashes the 8 little-endian bytes of u with 64-bit FNV-1a.
// It routes integer keys the way HashString routes string keys.
func HashUint64(u uint64) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < 8; i++ {
		h ^= uint64(byte(u))
		h *= fnvPrime64
		u >>= 8
	}
	return h
}
