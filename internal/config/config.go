// Package config holds the benchmark harness configuration and its YAML
// representation.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/IvanBrykalov/slotlru/cache"
	"github.com/IvanBrykalov/slotlru/internal/util"
)

// Store implementations selectable with Bench.Impl.
const (
	ImplSlotLRU   = "slotlru"
	ImplHashicorp = "hashicorp"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Bench describes one benchmark run.
type Bench struct {
	// Impl selects the store: "slotlru" (this module) or "hashicorp"
	// (hashicorp/golang-lru simplelru, as a baseline).
	Impl string `yaml:"impl"`

	// Capacity is the total entry budget, split evenly across owners.
	Capacity int `yaml:"capacity"`

	// Owners is the number of goroutines that each own one cache.
	// 0 picks util.ReasonableOwnerCount(), raised to a power of two large
	// enough that the per-owner capacity fits a cache.
	Owners int `yaml:"owners"`

	// Producers is the number of key-generating goroutines. 0 = GOMAXPROCS.
	Producers int `yaml:"producers"`

	// Batch is how many ops a producer buffers per owner before sending.
	Batch int `yaml:"batch"`

	// Duration bounds the measured phase.
	Duration time.Duration `yaml:"duration"`

	// ReadPct is the share of Get operations, in percent.
	ReadPct int `yaml:"read_pct"`

	// Keys is the size of the keyspace; keys are drawn from a Zipf
	// distribution with parameters ZipfS (> 1) and ZipfV (>= 1).
	Keys  uint64  `yaml:"keys"`
	ZipfS float64 `yaml:"zipf_s"`
	ZipfV float64 `yaml:"zipf_v"`

	// Seed seeds every producer's RNG (offset per producer).
	Seed int64 `yaml:"seed"`

	// Preload is how many keys are inserted before the measured phase.
	// 0 = Capacity/2.
	Preload int `yaml:"preload"`

	// LogLevel is DEBUG, INFO, WARN or ERROR.
	LogLevel string `yaml:"log_level"`

	// MetricsAddr serves Prometheus metrics when non-empty (e.g. ":8080").
	MetricsAddr string `yaml:"metrics_addr"`

	// PprofAddr serves net/http/pprof when non-empty (e.g. ":6060").
	PprofAddr string `yaml:"pprof_addr"`
}

// NewDefault returns a default configuration.
func NewDefault() *Bench {
	return &Bench{
		Impl:     ImplSlotLRU,
		Capacity: 100_000,
		Batch:    64,
		Duration: 10 * time.Second,
		ReadPct:  80,
		Keys:     1_000_000,
		ZipfS:    1.1,
		ZipfV:    1.0,
		Seed:     1,
		LogLevel: "INFO",
	}
}

// LoadFromFile overlays the YAML file at path onto b.
func (b *Bench) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, b); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// SaveToFile writes b as YAML.
func (b *Bench) SaveToFile(path string) error {
	data, err := yaml.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Resolved returns a copy of b with every "0 = auto" field filled in.
func (b Bench) Resolved() Bench {
	if b.Owners <= 0 {
		b.Owners = autoOwners(b.Capacity)
	}
	if b.Producers <= 0 {
		b.Producers = runtime.GOMAXPROCS(0)
	}
	if b.Preload <= 0 {
		b.Preload = b.Capacity / 2
	}
	return b
}

// autoOwners is ReasonableOwnerCount raised, if needed, to the smallest
// power of two that keeps every owner's share within cache.MaxCapacity.
func autoOwners(capacity int) int {
	n := util.ReasonableOwnerCount()
	need := (capacity + cache.MaxCapacity - 1) / cache.MaxCapacity
	if need > n {
		n = int(util.NextPow2(uint64(need)))
	}
	return n
}

// PerOwnerCapacity is the capacity of each owner's cache.
func (b Bench) PerOwnerCapacity() int {
	return util.SplitCapacity(b.Capacity, b.Owners)
}

// Validate validates the configuration. Auto fields (0) are accepted.
func (b Bench) Validate() error {
	switch b.Impl {
	case ImplSlotLRU, ImplHashicorp:
	default:
		return fmt.Errorf("%w: impl %q (use %s or %s)", ErrInvalid, b.Impl, ImplSlotLRU, ImplHashicorp)
	}
	if b.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be > 0", ErrInvalid)
	}
	if b.Owners < 0 || b.Producers < 0 || b.Preload < 0 {
		return fmt.Errorf("%w: owners, producers and preload must be >= 0", ErrInvalid)
	}
	if b.Batch <= 0 {
		return fmt.Errorf("%w: batch must be > 0", ErrInvalid)
	}
	if b.Duration <= 0 {
		return fmt.Errorf("%w: duration must be > 0", ErrInvalid)
	}
	if b.ReadPct < 0 || b.ReadPct > 100 {
		return fmt.Errorf("%w: read_pct must be in [0..100], got %d", ErrInvalid, b.ReadPct)
	}
	if b.Keys == 0 {
		return fmt.Errorf("%w: keys must be > 0", ErrInvalid)
	}
	if b.ZipfS <= 1 || b.ZipfV < 1 {
		return fmt.Errorf("%w: zipf_s must be > 1 and zipf_v >= 1", ErrInvalid)
	}
	if b.Impl == ImplSlotLRU {
		r := b.Resolved()
		if err := (cache.Options{Capacity: r.PerOwnerCapacity()}).Validate(); err != nil {
			return fmt.Errorf("%w: per-owner capacity with %d owners: %w", ErrInvalid, r.Owners, err)
		}
	}
	return nil
}
