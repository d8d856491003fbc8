package util

import (
	"runtime"
	"testing"
	"unsafe"
)

func TestNextPow2(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want uint64 }{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {5, 8}, {64, 64}, {65, 128},
		{1 << 40, 1 << 40}, {1<<40 + 1, 1 << 41}, {1<<63 + 1, 1 << 63},
	}
	for _, tc := range tests {
		if got := NextPow2(tc.in); got != tc.want {
			t.Fatalf("NextPow2(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	t.Parallel()

	for _, x := range []uint64{1, 2, 4, 1 << 63} {
		if !IsPowerOfTwo(x) {
			t.Fatalf("IsPowerOfTwo(%d) must be true", x)
		}
	}
	for _, x := range []uint64{0, 3, 6, 1<<63 + 1} {
		if IsPowerOfTwo(x) {
			t.Fatalf("IsPowerOfTwo(%d) must be false", x)
		}
	}
}

// Known FNV-1a vectors.
func TestHashString(t *testing.T) {
	t.Parallel()

	if got := HashString(""); got != 0xcbf29ce484222325 {
		t.Fatalf("HashString(\"\") = %#x", got)
	}
	if got := HashString("a"); got != 0xaf63dc4c8601ec8c {
		t.Fatalf("HashString(\"a\") = %#x", got)
	}
	if HashString("k:1") == HashString("k:2") {
		t.Fatal("distinct keys should hash differently")
	}
}

func TestHashUint64_Deterministic(t *testing.T) {
	t.Parallel()

	if HashUint64(42) != HashUint64(42) {
		t.Fatal("hash must be deterministic")
	}
	if HashUint64(1) == HashUint64(2) {
		t.Fatal("distinct values should hash differently")
	}
}

func TestOwnerIndex_InRange(t *testing.T) {
	t.Parallel()

	for _, owners := range []int{0, 1, 3, 4, 7, 16} {
		for h := uint64(0); h < 1000; h++ {
			i := OwnerIndex(HashUint64(h), owners)
			limit := owners
			if limit < 1 {
				limit = 1
			}
			if i < 0 || i >= limit {
				t.Fatalf("OwnerIndex(_, %d) = %d out of range", owners, i)
			}
		}
	}
}

func TestSplitCapacity(t *testing.T) {
	t.Parallel()

	tests := []struct{ total, owners, want int }{
		{100, 1, 100}, {100, 0, 100}, {100, 4, 25}, {101, 4, 26}, {3, 8, 1},
	}
	for _, tc := range tests {
		if got := SplitCapacity(tc.total, tc.owners); got != tc.want {
			t.Fatalf("SplitCapacity(%d, %d) = %d, want %d", tc.total, tc.owners, got, tc.want)
		}
	}
}

func TestReasonableOwnerCount(t *testing.T) {
	t.Parallel()

	n := ReasonableOwnerCount()
	if n < runtime.GOMAXPROCS(0) && n != maxOwners {
		t.Fatalf("ReasonableOwnerCount() = %d below GOMAXPROCS", n)
	}
	if !IsPowerOfTwo(uint64(n)) || n > maxOwners {
		t.Fatalf("ReasonableOwnerCount() = %d", n)
	}
}

func TestPaddedAtomicUint64_Size(t *testing.T) {
	t.Parallel()

	if s := unsafe.Sizeof(PaddedAtomicUint64{}); s != CacheLineSize {
		t.Fatalf("size = %d, want %d", s, CacheLineSize)
	}
}
