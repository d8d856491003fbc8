package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/IvanBrykalov/slotlru/internal/bench"
	"github.com/IvanBrykalov/slotlru/internal/config"
	pmet "github.com/IvanBrykalov/slotlru/metrics/prom"
)

// workloadFlags binds the override flags shared by run and config.
type workloadFlags struct {
	path string
	over config.Bench
}

func (f *workloadFlags) register(cmd *cobra.Command) {
	d := config.NewDefault()
	fs := cmd.Flags()
	fs.StringVar(&f.path, "config", "", "YAML workload file (flags override its values)")
	fs.StringVar(&f.over.Impl, "impl", d.Impl, "store implementation: slotlru | hashicorp")
	fs.IntVar(&f.over.Capacity, "cap", d.Capacity, "total capacity (entries), split across owners")
	fs.IntVar(&f.over.Owners, "owners", 0, "owner goroutines, one cache each (0=auto)")
	fs.IntVar(&f.over.Producers, "producers", 0, "key-generating goroutines (0=GOMAXPROCS)")
	fs.IntVar(&f.over.Batch, "batch", d.Batch, "ops per batch sent to an owner")
	fs.DurationVar(&f.over.Duration, "duration", d.Duration, "benchmark duration")
	fs.IntVar(&f.over.ReadPct, "reads", d.ReadPct, "read percentage [0..100]")
	fs.Uint64Var(&f.over.Keys, "keys", d.Keys, "keyspace size")
	fs.Float64Var(&f.over.ZipfS, "zipf_s", d.ZipfS, "Zipf s > 1 (skew)")
	fs.Float64Var(&f.over.ZipfV, "zipf_v", d.ZipfV, "Zipf v >= 1")
	fs.Int64Var(&f.over.Seed, "seed", d.Seed, "random seed")
	fs.IntVar(&f.over.Preload, "preload", 0, "preload entries (0 = cap/2)")
	fs.StringVar(&f.over.MetricsAddr, "http", "", "serve Prometheus metrics at addr (e.g. :8080); empty = disabled")
	fs.StringVar(&f.over.PprofAddr, "pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
}

// load builds the effective config: defaults, then the file, then every
// flag the user actually set.
func (f *workloadFlags) load(cmd *cobra.Command) (*config.Bench, error) {
	cfg := config.NewDefault()
	if f.path != "" {
		if err := cfg.LoadFromFile(f.path); err != nil {
			return nil, err
		}
	}

	fs := cmd.Flags()
	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("impl", func() { cfg.Impl = f.over.Impl })
	set("cap", func() { cfg.Capacity = f.over.Capacity })
	set("owners", func() { cfg.Owners = f.over.Owners })
	set("producers", func() { cfg.Producers = f.over.Producers })
	set("batch", func() { cfg.Batch = f.over.Batch })
	set("duration", func() { cfg.Duration = f.over.Duration })
	set("reads", func() { cfg.ReadPct = f.over.ReadPct })
	set("keys", func() { cfg.Keys = f.over.Keys })
	set("zipf_s", func() { cfg.ZipfS = f.over.ZipfS })
	set("zipf_v", func() { cfg.ZipfV = f.over.ZipfV })
	set("seed", func() { cfg.Seed = f.over.Seed })
	set("preload", func() { cfg.Preload = f.over.Preload })
	set("http", func() { cfg.MetricsAddr = f.over.MetricsAddr })
	set("pprof", func() { cfg.PprofAddr = f.over.PprofAddr })
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildRunCmd() *cobra.Command {
	var f workloadFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the workload and print a report",
		Example: `  lrubench run --cap 100000 --owners 8 --duration 5s
  lrubench run --config bench.yaml --impl hashicorp --http :8080`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			setupLogger(cfg.LogLevel)
			return runBench(cmd.Context(), cmd.OutOrStdout(), *cfg)
		},
	}
	f.register(cmd)
	return cmd
}

func buildConfigCmd() *cobra.Command {
	var (
		f   workloadFlags
		out string
	)
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print or write the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			if out != "" {
				return cfg.SaveToFile(out)
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&out, "out", "", "write the config to this file instead of stdout")
	return cmd
}

// runBench wires metrics and profiling around bench.Run and prints the report.
func runBench(ctx context.Context, w io.Writer, cfg config.Bench) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---- pprof server (on DefaultServeMux) ----
	if cfg.PprofAddr != "" {
		go serve("pprof", cfg.PprofAddr, http.DefaultServeMux)
	}

	// ---- Prometheus metrics (own registry, own mux) ----
	var rec bench.Recorder = bench.NoopRecorder{}
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		rec = pmet.New(reg, "slotlru", "bench", prometheus.Labels{"impl": cfg.Impl})
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
		go serve("metrics", cfg.MetricsAddr, mux)
	}

	rep, err := bench.Run(ctx, cfg, rec, slog.Default())
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	fmt.Fprintf(w, "impl=%s cap=%d owners=%d producers=%d keys=%d dur=%v seed=%d\n",
		rep.Impl, rep.Capacity*rep.Owners, rep.Owners, rep.Producers, cfg.Keys, rep.Elapsed.Round(time.Millisecond), cfg.Seed)
	fmt.Fprintf(w, "ops=%d (%.0f ops/s)  reads=%d  writes=%d\n",
		rep.Ops, rep.OpsPerSec(), rep.Reads, rep.Writes)
	fmt.Fprintf(w, "hits=%d  misses=%d  hit-rate=%.2f%%\n", rep.Hits, rep.Misses, rep.HitRate())
	fmt.Fprintf(w, "resident=%d (per-owner cap=%d)\n", rep.Resident, rep.Capacity)
	if err != nil {
		slog.Warn("bench: interrupted, report is partial")
	}
	return nil
}

func serve(name, addr string, h http.Handler) {
	slog.Info(name+": serving", "addr", addr)
	if err := http.ListenAndServe(addr, h); err != nil {
		slog.Error(name+": server stopped", "err", err)
	}
}
