package report

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes run summaries as prometheus series in a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Runs  prometheus.Counter
	Added *prometheus.CounterVec
}

// NewMetrics registers the augmentation metrics.
func NewMetrics() *Metrics {
	r := prometheus.NewRegistry()
	return &Metrics{
		registry: r,
		Runs: promauto.With(r).NewCounter(
			prometheus.CounterOpts{
				Name: "augment_runs_total",
				Help: "Number of completed augmentation runs",
			},
		),
		Added: promauto.With(r).NewCounterVec(
			prometheus.CounterOpts{
				Name: "augment_components_added_total",
				Help: "Components added to the network by component table and carrier",
			},
			[]string{"component", "carrier"},
		),
	}
}

// Observe records a completed run.
func (m *Metrics) Observe(s Summary) {
	m.Runs.Inc()
	for comp, byCarrier := range s.Added {
		for carrier, count := range byCarrier {
			m.Added.WithLabelValues(string(comp), carrier).Add(float64(count))
		}
	}
}

// Gatherer returns the registry for serving or inspection.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the metrics in text exposition format, for the node
// exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
