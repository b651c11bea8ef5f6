package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewCollectorRegistersAllMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.EventsProcessed.Inc()
	c.TradesValidated.Inc()
	c.ValidationErrors.Inc()
	c.RingDepth.Set(42)
	c.ObserveLatencyNs(150_000)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if len(families) != 5 {
		t.Fatalf("got %d metric families, want 5", len(families))
	}
}

func TestObserveLatencyNsConvertsToSeconds(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.ObserveLatencyNs(1_000_000_000) // 1 second

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "event_processor_event_latency_seconds" {
			continue
		}
		hist := mf.GetMetric()[0].GetHistogram()
		if hist.GetSampleCount() != 1 {
			t.Fatalf("sample count = %d, want 1", hist.GetSampleCount())
		}
		if hist.GetSampleSum() < 0.99 || hist.GetSampleSum() > 1.01 {
			t.Fatalf("sample sum = %f, want ~1.0 seconds", hist.GetSampleSum())
		}
		return
	}
	t.Fatal("event_processor_event_latency_seconds family not found")
}
