package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes of a dashboard request.
const (
	OutcomeOK     = "ok"
	OutcomeNoData = "no_data"
	OutcomeError  = "error"
)

// Metrics holds the Prometheus collectors of the reporting service.
type Metrics struct {
	DatasetRecords     prometheus.Gauge
	DatasetLoadSeconds prometheus.Gauge
	Requests           *prometheus.CounterVec
	RecomputeSeconds   prometheus.Histogram
	Exports            *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		DatasetRecords: f.NewGauge(prometheus.GaugeOpts{
			Name: "lifecycle_dataset_records",
			Help: "Number of records in the loaded dataset",
		}),
		DatasetLoadSeconds: f.NewGauge(prometheus.GaugeOpts{
			Name: "lifecycle_dataset_load_seconds",
			Help: "Time spent loading the dataset at startup",
		}),
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lifecycle_dashboard_requests_total",
			Help: "Dashboard recomputations by outcome",
		}, []string{"outcome"}),
		RecomputeSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "lifecycle_recompute_seconds",
			Help:    "Latency of a full dashboard recomputation",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		Exports: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lifecycle_exports_total",
			Help: "Filtered view exports by format",
		}, []string{"format"}),
	}
}

// ObserveLoad records a finished dataset load.
func (m *Metrics) ObserveLoad(records int, took time.Duration) {
	m.DatasetRecords.Set(float64(records))
	m.DatasetLoadSeconds.Set(took.Seconds())
}

// ObserveRequest records one recomputation and its outcome.
func (m *Metrics) ObserveRequest(outcome string, took time.Duration) {
	m.Requests.WithLabelValues(outcome).Inc()
	m.RecomputeSeconds.Observe(took.Seconds())
}

// IncrementExports counts an export in the given format.
func (m *Metrics) IncrementExports(format string) {
	m.Exports.WithLabelValues(format).Inc()
}
