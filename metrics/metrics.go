// Package metrics records build timings and mesh sizes as Prometheus metrics
// and writes them to a node-exporter textfile.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the build metrics and their registry.
type Manager struct {
	namespace string
	buckets   []float64
	labels    prometheus.Labels
	registry  *prometheus.Registry

	stageDuration *prometheus.HistogramVec
	triangles     *prometheus.GaugeVec
	volume        *prometheus.GaugeVec
	exports       *prometheus.CounterVec
}

// NewManager creates a manager with its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "partgen",
		buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.stageDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Name:        "stage_duration_seconds",
		Help:        "Time spent in each build stage (build, mesh, write).",
		Buckets:     m.buckets,
		ConstLabels: m.labels,
	}, []string{"part", "stage"})

	m.triangles = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Name:        "mesh_triangles",
		Help:        "Triangle count of the last exported mesh.",
		ConstLabels: m.labels,
	}, []string{"part"})

	m.volume = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Name:        "mesh_volume_mm3",
		Help:        "Enclosed volume of the last exported mesh.",
		ConstLabels: m.labels,
	}, []string{"part"})

	m.exports = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Name:        "exports_total",
		Help:        "Exports attempted, by result.",
		ConstLabels: m.labels,
	}, []string{"part", "result"})
}

// ObserveStage records how long a stage of a part build took.
func (m *Manager) ObserveStage(part, stage string, d time.Duration) {
	m.stageDuration.WithLabelValues(part, stage).Observe(d.Seconds())
}

// RecordExport records a successful export.
func (m *Manager) RecordExport(part string, triangles int, volume float64) {
	m.triangles.WithLabelValues(part).Set(float64(triangles))
	m.volume.WithLabelValues(part).Set(volume)
	m.exports.WithLabelValues(part, "ok").Inc()
}

// RecordFailure counts a failed build or export.
func (m *Manager) RecordFailure(part string) {
	m.exports.WithLabelValues(part, "error").Inc()
}

// Gatherer exposes the registry, mostly for tests.
func (m *Manager) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes all metrics in the text exposition format. The file is
// replaced atomically.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
