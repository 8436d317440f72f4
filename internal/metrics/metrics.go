// Package metrics exposes the §7 diagnostic counters (broken_packets,
// missing_spokes, unknown_model) through a prometheus registry the core
// owns but never serves itself — a host wires the registry into its own
// HTTP exporter if it wants one.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registry wraps a *prometheus.Registry so hosts can mount it behind their
// own /metrics handler without this package depending on net/http.
type Registry struct {
	reg *prometheus.Registry

	BrokenPackets *prometheus.CounterVec
	MissingSpokes *prometheus.CounterVec
	UnknownModel  *prometheus.CounterVec
}

// New creates a fresh Registry with all core counters registered.
func New() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{
		reg: reg,
		BrokenPackets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "radarcore",
			Name:      "broken_packets_total",
			Help:      "Datagrams dropped due to a codec parse error, by brand and packet kind.",
		}, []string{"brand", "kind"}),
		MissingSpokes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "radarcore",
			Name:      "missing_spokes_total",
			Help:      "Non-consecutive spoke angles observed, by radar id.",
		}, []string{"radar_id"}),
		UnknownModel: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "radarcore",
			Name:      "unknown_model_total",
			Help:      "Beacons or reports seen for a model absent from the model database, by brand.",
		}, []string{"brand"}),
	}
	reg.MustRegister(r.BrokenPackets, r.MissingSpokes, r.UnknownModel)
	return r
}

// Prometheus returns the underlying registry for a host to gather or mount.
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.reg
}
