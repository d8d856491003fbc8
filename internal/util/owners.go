package util

import "runtime"

// maxOwners bounds ReasonableOwnerCount.
const maxOwners = 256

// ReasonableOwnerCount picks a default number of owner goroutines from CPU
// parallelism: NextPow2(GOMAXPROCS), clamped to [1..256].
func ReasonableOwnerCount() int {
	p := runtime.GOMAXPROCS(0)
	if p < 1 {
		p = 1
	}
	n := int(NextPow2(uint64(p)))
	if n > maxOwners {
		n = maxOwners
	}
	return n
}

// OwnerIndex maps a 64-bit hash to one of owners.
// Power-of-two owner counts take the mask path; others fall back to modulo.
func OwnerIndex(hash uint64, owners int) int {
	if owners <= 1 {
		return 0
	}
	if IsPowerOfTwo(uint64(owners)) {
		return int(hash & uint64(owners-1))
	}
	return int(hash % uint64(owners))
}

// SplitCapacity divides total evenly across owners, rounding up, so the
// owners together hold at least total entries.
func SplitCapacity(total, owners int) int {
	if owners <= 1 {
		return total
	}
	return (total + owners - 1) / owners
}
