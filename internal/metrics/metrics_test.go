package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersAllCounters(t *testing.T) {
	r := New()

	r.BrokenPackets.WithLabelValues("furuno", "report").Inc()
	r.MissingSpokes.WithLabelValues("radar-1").Inc()
	r.UnknownModel.WithLabelValues("navico").Inc()

	if got := testutil.ToFloat64(r.BrokenPackets.WithLabelValues("furuno", "report")); got != 1 {
		t.Errorf("broken_packets_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.MissingSpokes.WithLabelValues("radar-1")); got != 1 {
		t.Errorf("missing_spokes_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.UnknownModel.WithLabelValues("navico")); got != 1 {
		t.Errorf("unknown_model_total = %v, want 1", got)
	}

	gathered, err := r.Prometheus().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := map[string]bool{}
	for _, mf := range gathered {
		names[mf.GetName()] = true
	}
	for _, want := range []string{"radarcore_broken_packets_total", "radarcore_missing_spokes_total", "radarcore_unknown_model_total"} {
		if !names[want] {
			t.Errorf("expected %q registered, got %v", want, names)
		}
	}
}
