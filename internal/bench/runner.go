// Package bench runs a synthetic Zipf workload against single-owner caches.
//
// The cache is not safe for concurrent use, so the harness never shares one:
// each owner goroutine exclusively holds one Store and is the only goroutine
// that touches it. Producer goroutines draw keys, route every key to its
// owner by hash and hand ops over in batches through the owner's channel.
package bench

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/slotlru/internal/config"
	"github.com/IvanBrykalov/slotlru/internal/util"
)

// inboxDepth is the number of batches buffered per owner.
const inboxDepth = 16

// progressEvery is how often Run logs progress at debug level.
const progressEvery = time.Second

// Report summarizes a finished run.
type Report struct {
	Impl      string
	Owners    int
	Producers int
	Capacity  int // per owner

	Ops, Reads, Writes, Hits, Misses uint64

	Resident int // entries across all owners at the end
	Elapsed  time.Duration
}

// HitRate returns hits / reads in percent (0 when there were no reads).
func (r Report) HitRate() float64 {
	if r.Reads == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Reads) * 100
}

// OpsPerSec returns the measured throughput.
func (r Report) OpsPerSec() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Ops) / r.Elapsed.Seconds()
}

type op struct {
	key   string
	write bool
}

// counters are written by one owner and read by the progress logger.
type counters struct {
	reads  util.PaddedAtomicUint64
	writes util.PaddedAtomicUint64
	hits   util.PaddedAtomicUint64
	misses util.PaddedAtomicUint64
}

// Key formats the i-th key of the keyspace.
func Key(i uint64) string { return "k:" + strconv.FormatUint(i, 10) }

// Run executes the workload described by cfg until cfg.Duration elapses or
// ctx is cancelled. A nil rec or log falls back to NoopRecorder and
// slog.Default(). If ctx is cancelled the partial report is returned along
// with ctx.Err().
func Run(ctx context.Context, cfg config.Bench, rec Recorder, log *slog.Logger) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	if rec == nil {
		rec = NoopRecorder{}
	}
	if log == nil {
		log = slog.Default()
	}
	cfg = cfg.Resolved()

	perOwner := cfg.PerOwnerCapacity()
	stores := make([]Store, cfg.Owners)
	for i := range stores {
		s, err := NewStore(cfg.Impl, perOwner)
		if err != nil {
			return Report{}, fmt.Errorf("bench: owner %d: %w", i, err)
		}
		stores[i] = s
	}

	// Preload before any goroutine starts, so every store still has exactly
	// one user.
	for i := 0; i < cfg.Preload; i++ {
		k := Key(uint64(i) % cfg.Keys)
		o := util.OwnerIndex(util.HashString(k), cfg.Owners)
		stores[o].Put(k, k)
	}
	for o, s := range stores {
		rec.Size(o, s.Len())
	}
	log.Info("bench: preloaded",
		"impl", cfg.Impl, "owners", cfg.Owners, "per_owner_capacity", perOwner, "preload", cfg.Preload)

	runCtx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	stats := make([]counters, cfg.Owners)
	inboxes := make([]chan []op, cfg.Owners)
	for i := range inboxes {
		inboxes[i] = make(chan []op, inboxDepth)
	}

	start := time.Now()

	// Owners drain their inbox until producers close it.
	var owners errgroup.Group
	for o := range stores {
		owners.Go(func() error {
			own(o, stores[o], inboxes[o], &stats[o], rec)
			return nil
		})
	}

	producers, pctx := errgroup.WithContext(runCtx)
	for p := 0; p < cfg.Producers; p++ {
		producers.Go(func() error {
			produce(pctx, p, cfg, inboxes)
			return nil
		})
	}
	producers.Go(func() error {
		logProgress(pctx, log, stats, start)
		return nil
	})

	_ = producers.Wait()
	for _, in := range inboxes {
		close(in)
	}
	_ = owners.Wait()

	rep := Report{
		Impl:      cfg.Impl,
		Owners:    cfg.Owners,
		Producers: cfg.Producers,
		Capacity:  perOwner,
		Elapsed:   time.Since(start),
	}
	for i := range stats {
		rep.Reads += stats[i].reads.Load()
		rep.Writes += stats[i].writes.Load()
		rep.Hits += stats[i].hits.Load()
		rep.Misses += stats[i].misses.Load()
	}
	rep.Ops = rep.Reads + rep.Writes
	for _, s := range stores {
		rep.Resident += s.Len()
	}

	log.Info("bench: finished",
		"ops", rep.Ops, "elapsed", rep.Elapsed, "hit_rate", rep.HitRate(), "resident", rep.Resident)
	return rep, ctx.Err()
}

// own applies batches to the owner's private store.
func own(o int, s Store, in <-chan []op, c *counters, rec Recorder) {
	for batch := range in {
		for _, x := range batch {
			if x.write {
				rec.Write(s.Put(x.key, x.key))
				c.writes.Add(1)
				continue
			}
			c.reads.Add(1)
			if _, ok := s.Get(x.key); ok {
				c.hits.Add(1)
				rec.Hit()
			} else {
				c.misses.Add(1)
				rec.Miss()
			}
		}
		rec.Size(o, s.Len())
	}
}

// produce draws Zipf keys and routes them to owners in batches until ctx is
// done. Each producer gets its own RNG (rand.Rand is NOT goroutine-safe).
func produce(ctx context.Context, id int, cfg config.Bench, inboxes []chan []op) {
	r := rand.New(rand.NewSource(cfg.Seed + int64(id)*9973))
	zipf := rand.NewZipf(r, cfg.ZipfS, cfg.ZipfV, cfg.Keys-1)

	pending := make([][]op, len(inboxes))
	for {
		k := Key(zipf.Uint64())
		o := util.OwnerIndex(util.HashString(k), len(inboxes))
		pending[o] = append(pending[o], op{key: k, write: r.Intn(100) >= cfg.ReadPct})
		if len(pending[o]) < cfg.Batch {
			continue
		}
		select {
		case inboxes[o] <- pending[o]:
			pending[o] = make([]op, 0, cfg.Batch)
		case <-ctx.Done():
			return
		}
	}
}

// logProgress logs aggregate throughput at debug level until ctx is done.
func logProgress(ctx context.Context, log *slog.Logger, stats []counters, start time.Time) {
	t := time.NewTicker(progressEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			var ops uint64
			for i := range stats {
				ops += stats[i].reads.Load() + stats[i].writes.Load()
			}
			log.Debug("bench: progress", "ops", ops, "elapsed", time.Since(start).Round(time.Millisecond))
		}
	}
}
