package cache

import (
	"math/rand"
	"strconv"
	"testing"
)

// benchmarkMix exercises a read/write mix against a warm cache from a single
// goroutine (the cache has one owner).
// String keys include strconv/concat costs and often allocate, which is fine
// for an end-to-end benchmark.
func benchmarkMix(b *testing.B, readsPct int) {
	c := New[string, string](Options{Capacity: 50_000})

	// Preload half the capacity to get a realistic hit-rate.
	for i := 0; i < 25_000; i++ {
		c.Put("k:"+strconv.Itoa(i), "v")
	}

	keyMask := (1 << 16) - 1 // hot keyspace (power of two for fast &-mask)
	keys := make([]string, keyMask+1)
	for i := range keys {
		keys[i] = "k:" + strconv.Itoa(i)
	}
	r := rand.New(rand.NewSource(1))

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		k := keys[i&keyMask]
		if r.Intn(100) < readsPct {
			c.Get(k)
		} else {
			c.Put(k, "v")
		}
	}
}

func BenchmarkCache_90r10w(b *testing.B) { benchmarkMix(b, 90) }
func BenchmarkCache_50r50w(b *testing.B) { benchmarkMix(b, 50) }

// benchmarkMixInt is the same workload but with int keys.
// This removes string hashing noise and better exposes the list hot path.
func benchmarkMixInt(b *testing.B, readsPct int) {
	c := New[int, int](Options{Capacity: 50_000})
	for i := 0; i < 25_000; i++ {
		c.Put(i, 1)
	}
	keyMask := (1 << 16) - 1
	r := rand.New(rand.NewSource(1))

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		k := i & keyMask
		if r.Intn(100) < readsPct {
			c.Get(k)
		} else {
			c.Put(k, 1)
		}
	}
}

func BenchmarkCache_IntKeys_90r10w(b *testing.B) { benchmarkMixInt(b, 90) }
func BenchmarkCache_IntKeys_50r50w(b *testing.B) { benchmarkMixInt(b, 50) }

// Steady-state eviction: every Put is a miss on a full cache.
func BenchmarkCache_EvictEveryPut(b *testing.B) {
	c := New[int, int](Options{Capacity: 1024})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Put(i, i)
	}
}

func BenchmarkCache_TouchFunc(b *testing.B) {
	c := New[int, int](Options{Capacity: 4096})
	for i := 0; i < 4096; i++ {
		c.Put(i, i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.TouchFunc(func(k int) bool { return k%64 == i%64 })
	}
}
