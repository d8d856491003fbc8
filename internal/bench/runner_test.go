package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/slotlru/cache"
	"github.com/IvanBrykalov/slotlru/internal/config"
)

// countingRecorder tallies signals so they can be checked against the report.
type countingRecorder struct {
	hits, misses, writes, replaced atomic.Uint64
	sizes                          atomic.Uint64
}

func (r *countingRecorder) Hit()  { r.hits.Add(1) }
func (r *countingRecorder) Miss() { r.misses.Add(1) }
func (r *countingRecorder) Write(replaced bool) {
	r.writes.Add(1)
	if replaced {
		r.replaced.Add(1)
	}
}
func (r *countingRecorder) Size(int, int) { r.sizes.Add(1) }

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func smallConfig(impl string) config.Bench {
	cfg := *config.NewDefault()
	cfg.Impl = impl
	cfg.Capacity = 2048
	cfg.Owners = 4
	cfg.Producers = 2
	cfg.Batch = 16
	cfg.Keys = 10_000
	cfg.Duration = 150 * time.Millisecond
	return cfg
}

func checkReport(t *testing.T, cfg config.Bench, rep Report) {
	t.Helper()

	if rep.Ops == 0 {
		t.Fatal("no operations were executed")
	}
	if rep.Reads+rep.Writes != rep.Ops {
		t.Fatalf("reads(%d)+writes(%d) != ops(%d)", rep.Reads, rep.Writes, rep.Ops)
	}
	if rep.Hits+rep.Misses != rep.Reads {
		t.Fatalf("hits(%d)+misses(%d) != reads(%d)", rep.Hits, rep.Misses, rep.Reads)
	}
	if limit := rep.Owners * rep.Capacity; rep.Resident > limit {
		t.Fatalf("resident %d exceeds total capacity %d", rep.Resident, limit)
	}
	if rep.Owners != cfg.Owners || rep.Producers != cfg.Producers {
		t.Fatalf("owners=%d producers=%d", rep.Owners, rep.Producers)
	}
	if rep.Capacity != 512 {
		t.Fatalf("per-owner capacity %d, want 512", rep.Capacity)
	}
	if rep.OpsPerSec() <= 0 {
		t.Fatal("throughput must be positive")
	}
}

// Both store implementations run side by side; each run owns its caches.
func TestRun_Impls(t *testing.T) {
	impls := []string{config.ImplSlotLRU, config.ImplHashicorp}
	reps := make([]Report, len(impls))
	recs := make([]*countingRecorder, len(impls))

	var g errgroup.Group
	for i, impl := range impls {
		recs[i] = &countingRecorder{}
		g.Go(func() error {
			rep, err := Run(context.Background(), smallConfig(impl), recs[i], quietLogger())
			if err != nil {
				return fmt.Errorf("%s: %w", impl, err)
			}
			reps[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	for i, impl := range impls {
		cfg, rep, rec := smallConfig(impl), reps[i], recs[i]
		checkReport(t, cfg, rep)
		if rep.Impl != impl {
			t.Fatalf("report impl %q, want %q", rep.Impl, impl)
		}
		if got := rec.hits.Load(); got != rep.Hits {
			t.Fatalf("%s: recorder hits %d, report %d", impl, got, rep.Hits)
		}
		if got := rec.writes.Load(); got != rep.Writes {
			t.Fatalf("%s: recorder writes %d, report %d", impl, got, rep.Writes)
		}
		if rec.sizes.Load() < uint64(cfg.Owners) {
			t.Fatalf("%s: Size reported %d times", impl, rec.sizes.Load())
		}
	}
}

// With a keyspace smaller than the capacity everything fits after preload,
// so every read is a hit.
func TestRun_SmallKeyspaceAllHits(t *testing.T) {
	t.Parallel()

	cfg := smallConfig(config.ImplSlotLRU)
	cfg.Keys = 100
	cfg.Preload = 100
	cfg.ReadPct = 100

	rep, err := Run(context.Background(), cfg, nil, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if rep.Misses != 0 || rep.Hits == 0 {
		t.Fatalf("want only hits, got hits=%d misses=%d", rep.Hits, rep.Misses)
	}
	if rep.Resident != 100 {
		t.Fatalf("resident %d, want 100", rep.Resident)
	}
	if rep.HitRate() != 100 {
		t.Fatalf("hit rate %.2f, want 100", rep.HitRate())
	}
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	cfg := smallConfig(config.ImplSlotLRU)
	cfg.Duration = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	start := time.Now()
	_, err := Run(ctx, cfg, nil, quietLogger())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if time.Since(start) > 10*time.Second {
		t.Fatal("Run did not stop promptly on cancel")
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := smallConfig(config.ImplSlotLRU)
	cfg.Owners = 1
	cfg.Capacity = cache.MaxCapacity + 1
	if _, err := Run(context.Background(), cfg, nil, quietLogger()); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("want config.ErrInvalid, got %v", err)
	}
}

func TestNewStore(t *testing.T) {
	t.Parallel()

	for _, impl := range []string{config.ImplSlotLRU, config.ImplHashicorp} {
		s, err := NewStore(impl, 2)
		if err != nil {
			t.Fatalf("%s: %v", impl, err)
		}
		if s.Put("a", "1") {
			t.Fatalf("%s: fresh Put reported replace", impl)
		}
		if !s.Put("a", "2") {
			t.Fatalf("%s: second Put must replace", impl)
		}
		s.Put("b", "2")
		s.Get("a")
		s.Put("c", "3") // evicts b
		if _, ok := s.Get("b"); ok {
			t.Fatalf("%s: b must be evicted", impl)
		}
		if v, ok := s.Get("a"); !ok || v != "2" {
			t.Fatalf("%s: Get(a) = %q,%v", impl, v, ok)
		}
	}

	if _, err := NewStore("nope", 1); err == nil {
		t.Fatal("unknown impl must fail")
	}
	if _, err := NewStore(config.ImplSlotLRU, 0); !errors.Is(err, cache.ErrInvalidCapacity) {
		t.Fatalf("want cache.ErrInvalidCapacity, got %v", err)
	}
}
