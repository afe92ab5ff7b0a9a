package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("expected non-nil registry")
	}
	if r.Handler() == nil {
		t.Fatal("expected non-nil handler")
	}
	if r.Gatherer() == nil {
		t.Fatal("expected non-nil gatherer")
	}
}

func TestObserveOperation(t *testing.T) {
	r := NewRegistry()
	r.ObserveOperation("find", nil, 25*time.Millisecond)
	r.ObserveOperation("find", errors.New("boom"), 5*time.Millisecond)
	r.ObserveOperation("count", nil, time.Millisecond)

	families, err := r.Gatherer().Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	var sawCounter, sawHistogram bool
	for _, mf := range families {
		switch mf.GetName() {
		case "docshape_store_operations_total":
			sawCounter = true
			var total float64
			for _, m := range mf.GetMetric() {
				total += m.GetCounter().GetValue()
			}
			if total != 3 {
				t.Fatalf("operations total = %v, want 3", total)
			}
		case "docshape_store_operation_duration_seconds":
			sawHistogram = true
		}
	}
	if !sawCounter || !sawHistogram {
		t.Fatalf("metric families missing: counter=%v histogram=%v", sawCounter, sawHistogram)
	}
}

func TestRegister_CustomCollector(t *testing.T) {
	r := NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "docshape_test_counter", Help: "test"})
	if err := r.Register(c); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := r.Register(c); err == nil {
		t.Fatal("expected duplicate registration error")
	}
}
