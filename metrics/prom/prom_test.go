package prom

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestAdapter_Counters(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	a := New(reg, "slotlru", "test", prometheus.Labels{"impl": "slotlru"})

	a.Hit()
	a.Hit()
	a.Miss()
	a.Write(false)
	a.Write(true)
	a.Write(true)
	a.Size(0, 10)
	a.Size(1, 7)
	a.Size(0, 12)

	if got := testutil.ToFloat64(a.hits); got != 2 {
		t.Fatalf("hits: got %v, want 2", got)
	}
	if got := testutil.ToFloat64(a.misses); got != 1 {
		t.Fatalf("misses: got %v, want 1", got)
	}
	if got := testutil.ToFloat64(a.writes.WithLabelValues("insert")); got != 1 {
		t.Fatalf("inserts: got %v, want 1", got)
	}
	if got := testutil.ToFloat64(a.writes.WithLabelValues("replace")); got != 2 {
		t.Fatalf("replaces: got %v, want 2", got)
	}
	if got := testutil.ToFloat64(a.resident.WithLabelValues("0")); got != 12 {
		t.Fatalf("owner 0 resident: got %v, want 12", got)
	}
	if got := testutil.ToFloat64(a.resident.WithLabelValues("1")); got != 7 {
		t.Fatalf("owner 1 resident: got %v, want 7", got)
	}

	if n, err := testutil.GatherAndCount(reg); err != nil || n != 6 {
		t.Fatalf("GatherAndCount = %d, %v; want 6 series", n, err)
	}
}

// Registering twice on one registry is a programming error and panics.
func TestAdapter_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	New(reg, "slotlru", "dup", nil)

	defer func() {
		if recover() == nil {
			t.Fatal("second registration must panic")
		}
	}()
	New(reg, "slotlru", "dup", nil)
}
