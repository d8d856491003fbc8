package cache

import (
	"errors"
	"fmt"

	"github.com/IvanBrykalov/slotlru/internal/slotlist"
)

// MaxCapacity is the largest Options.Capacity accepted by New.
// Slot indices are 16 bits wide and one value is reserved as a sentinel.
const MaxCapacity = slotlist.MaxCapacity

// ErrInvalidCapacity is wrapped by Options.Validate when Capacity is out of
// [1, MaxCapacity].
var ErrInvalidCapacity = errors.New("cache: invalid capacity")

// Options configures a Map.
type Options struct {
	// Capacity is the fixed entry count limit. The backing array is
	// allocated once, in New, with exactly this many slots.
	Capacity int
}

// Validate checks that the options describe a constructible cache.
// Callers that read Capacity from configuration should call it before New,
// which panics on invalid options.
func (o Options) Validate() error {
	if o.Capacity <= 0 || o.Capacity > MaxCapacity {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidCapacity, o.Capacity, MaxCapacity)
	}
	return nil
}
