package heap

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector(t *testing.T) {
	a := newTestArena()
	p, _ := a.Alloc(10, 1)
	_, _ = a.Alloc(6, 1)
	a.Free(p, 10, 1)

	c := NewCollector(a, prometheus.Labels{"heap": "test"})
	if n := testutil.CollectAndCount(c); n != 5 {
		t.Fatalf("collected %d metrics, want 5", n)
	}

	expected := `
# HELP hermes_heap_allocations_total Total allocations
# TYPE hermes_heap_allocations_total counter
hermes_heap_allocations_total{heap="test"} 2
# HELP hermes_heap_frees_total Total frees
# TYPE hermes_heap_frees_total counter
hermes_heap_frees_total{heap="test"} 1
# HELP hermes_heap_live_allocations Number of live allocations
# TYPE hermes_heap_live_allocations gauge
hermes_heap_live_allocations{heap="test"} 1
# HELP hermes_heap_live_bytes Bytes held by live allocations
# TYPE hermes_heap_live_bytes gauge
hermes_heap_live_bytes{heap="test"} 6
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"hermes_heap_allocations_total",
		"hermes_heap_frees_total",
		"hermes_heap_live_allocations",
		"hermes_heap_live_bytes",
	)
	if err != nil {
		t.Fatal(err)
	}
}

func TestCollectorRegisters(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(NewCollector(newTestArena(), nil)); err != nil {
		t.Fatal(err)
	}
}
