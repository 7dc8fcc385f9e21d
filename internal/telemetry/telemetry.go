// Package telemetry exposes path evaluation progress as Prometheus metrics.
//
// Metrics are kept in a private registry so several runs in one process do
// not collide. A batch job dumps them with WriteTextfile for the node
// exporter's textfile collector.
package telemetry

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/born-ml/lassopath/internal/path"
)

const namespace = "lassopath"

// Metrics implements path.Observer.
type Metrics struct {
	registry *prometheus.Registry

	evaluations prometheus.Counter
	duration    prometheus.Histogram
	lastScore   prometheus.Gauge
	selected    prometheus.Gauge
	lambda      prometheus.Gauge
}

var _ path.Observer = (*Metrics)(nil)

// New registers the evaluation metrics in a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		evaluations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "path",
			Name:      "evaluations_total",
			Help:      "Path elements restored and scored",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "path",
			Name:      "evaluation_duration_seconds",
			Help:      "Time to restore and score one path element",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		lastScore: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "path",
			Name:      "last_score",
			Help:      "Score of the most recently evaluated path element",
		}),
		selected: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "path",
			Name:      "last_selected_variables",
			Help:      "Selected variable count of the most recently evaluated path element",
		}),
		lambda: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "path",
			Name:      "last_lambda",
			Help:      "Penalty strength of the most recently evaluated path element",
		}),
	}
}

// ObserveEvaluation implements path.Observer.
func (m *Metrics) ObserveEvaluation(ev path.Evaluation) {
	m.evaluations.Inc()
	m.duration.Observe(ev.Duration.Seconds())
	m.lastScore.Set(ev.Score)
	m.selected.Set(float64(ev.Selected))
	m.lambda.Set(ev.Lambda)
}

// Gatherer returns the registry holding the metrics.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the metrics in text exposition format to filename,
// atomically replacing it.
func (m *Metrics) WriteTextfile(filename string) error {
	if err := prometheus.WriteToTextfile(filename, m.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
