package bench

import (
	"fmt"

	"github.com/hashicorp/golang-lru/v2/simplelru"

	"github.com/IvanBrykalov/slotlru/cache"
	"github.com/IvanBrykalov/slotlru/internal/config"
)

// Store is the single-owner cache surface the harness drives.
type Store interface {
	Get(k string) (string, bool)
	// Put inserts or updates k and reports whether k was already resident.
	Put(k, v string) (replaced bool)
	Len() int
}

// NewStore builds a store of the given implementation and capacity.
func NewStore(impl string, capacity int) (Store, error) {
	switch impl {
	case config.ImplSlotLRU:
		opt := cache.Options{Capacity: capacity}
		if err := opt.Validate(); err != nil {
			return nil, err
		}
		return slotStore{cache.New[string, string](opt)}, nil
	case config.ImplHashicorp:
		l, err := simplelru.NewLRU[string, string](capacity, nil)
		if err != nil {
			return nil, fmt.Errorf("bench: hashicorp store: %w", err)
		}
		return lruStore{l}, nil
	default:
		return nil, fmt.Errorf("bench: unknown store %q", impl)
	}
}

// slotStore adapts *cache.Map.
type slotStore struct{ m *cache.Map[string, string] }

func (s slotStore) Get(k string) (string, bool) { return s.m.Get(k) }
func (s slotStore) Len() int                    { return s.m.Len() }
func (s slotStore) Put(k, v string) bool {
	_, replaced := s.m.Put(k, v)
	return replaced
}

// lruStore adapts hashicorp's simplelru as a baseline.
type lruStore struct{ l *simplelru.LRU[string, string] }

func (s lruStore) Get(k string) (string, bool) { return s.l.Get(k) }
func (s lruStore) Len() int                    { return s.l.Len() }
func (s lruStore) Put(k, v string) bool {
	replaced := s.l.Contains(k)
	s.l.Add(k, v)
	return replaced
}
