// Package prom exports benchmark harness signals as Prometheus metrics.
package prom

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/IvanBrykalov/slotlru/internal/bench"
)

// Adapter implements bench.Recorder and exports Prometheus counters/gauges.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	hits     prometheus.Counter
	misses   prometheus.Counter
	writes   *prometheus.CounterVec
	resident *prometheus.GaugeVec
}

// New constructs a Prometheus metrics adapter.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "hits_total",
			Help:        "Get operations that found the key",
			ConstLabels: constLabels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "misses_total",
			Help:        "Get operations that did not find the key",
			ConstLabels: constLabels,
		}),
		writes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "writes_total",
				Help:        "Put operations by outcome",
				ConstLabels: constLabels,
			},
			[]string{"outcome"},
		),
		resident: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "resident_entries",
				Help:        "Resident entries per owner cache",
				ConstLabels: constLabels,
			},
			[]string{"owner"},
		),
	}
	reg.MustRegister(a.hits, a.misses, a.writes, a.resident)
	return a
}

// Hit increments the hit counter.
func (a *Adapter) Hit() { a.hits.Inc() }

// Miss increments the miss counter.
func (a *Adapter) Miss() { a.misses.Inc() }

// Write increments the write counter with an outcome label.
func (a *Adapter) Write(replaced bool) {
	a.writes.WithLabelValues(outcome(replaced)).Inc()
}

// Size updates the resident gauge of one owner.
func (a *Adapter) Size(owner, entries int) {
	a.resident.WithLabelValues(strconv.Itoa(owner)).Set(float64(entries))
}

// outcome maps a Put result to a stable label value.
func outcome(replaced bool) string {
	if replaced {
		return "replace"
	}
	return "insert"
}

// Compile-time check: ensure Adapter implements bench.Recorder.
var _ bench.Recorder = (*Adapter)(nil)
