package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the decision pipeline. All methods are
// nil-safe so the pipeline runs unchanged without metrics wired.
type Metrics struct {
	// Input gathering latencies by source
	GatherLatency *prometheus.HistogramVec

	// Pipeline outcomes by rebuild reason and safety lock
	DecisionOutcome *prometheus.CounterVec

	// Axis severity levels observed per evaluation
	AxisSeverity *prometheus.CounterVec

	// Overall evaluation latency
	EvaluateLatency prometheus.Histogram

	// Best-effort cache write failures by entry kind
	CacheWriteFailures *prometheus.CounterVec
}

// New creates a Metrics instance with all pipeline metrics registered.
func New() *Metrics {
	return &Metrics{
		GatherLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dermis_pipeline_gather_duration_seconds",
			Help:    "Duration of input gathering operations by source",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"source"}), // source: "profile", "rules", "templates", "catalog"

		DecisionOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dermis_pipeline_decisions_total",
			Help: "Total pipeline decisions by rebuild reason and safety lock",
		}, []string{"reason", "safety_lock"}),

		AxisSeverity: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dermis_pipeline_axis_severity_total",
			Help: "Axis severity levels observed in evaluations",
		}, []string{"axis", "level"}),

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "dermis_pipeline_evaluate_duration_seconds",
			Help:    "Duration of full pipeline evaluation including gathering",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		CacheWriteFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dermis_pipeline_cache_write_failures_total",
			Help: "Best-effort cache writes that failed and were swallowed",
		}, []string{"kind"}), // kind: "plan", "recommendations"
	}
}

// ObserveGatherLatency records the duration of fetching one pipeline input.
func (m *Metrics) ObserveGatherLatency(source string, d time.Duration) {
	if m != nil {
		m.GatherLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

// IncrementOutcome records one pipeline decision.
func (m *Metrics) IncrementOutcome(reason string, safetyLock bool) {
	if m != nil {
		lock := "false"
		if safetyLock {
			lock = "true"
		}
		m.DecisionOutcome.WithLabelValues(reason, lock).Inc()
	}
}

// ObserveAxisSeverity records one axis severity observation.
func (m *Metrics) ObserveAxisSeverity(axis, level string) {
	if m != nil {
		m.AxisSeverity.WithLabelValues(axis, level).Inc()
	}
}

// ObserveEvaluateLatency records the total evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}

// IncrementCacheWriteFailure records a swallowed cache write error.
func (m *Metrics) IncrementCacheWriteFailure(kind string) {
	if m != nil {
		m.CacheWriteFailures.WithLabelValues(kind).Inc()
	}
}
