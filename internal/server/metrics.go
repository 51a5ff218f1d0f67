package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the inference API.
type Metrics struct {
	// Scored assessments by predicted label
	Assessments *prometheus.CounterVec

	// Rejected submissions by assembly failure code
	AssemblyFailures *prometheus.CounterVec

	// Classifier latency, cache hits included
	InferenceLatency prometheus.Histogram

	// Prediction cache lookups by result
	CacheLookups *prometheus.CounterVec

	// Advice responses by source
	Advice *prometheus.CounterVec
}

// NewMetrics registers the API metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Assessments: f.NewCounterVec(prometheus.CounterOpts{
			Name: "siaga_assessments_total",
			Help: "Total scored assessments by predicted label",
		}, []string{"label"}), // label: "at_risk", "safe"

		AssemblyFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "siaga_assembly_failures_total",
			Help: "Total submissions rejected during input assembly by reason",
		}, []string{"reason"}),

		InferenceLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "siaga_inference_duration_seconds",
			Help:    "Duration of classifier inference per assessment",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),

		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "siaga_prediction_cache_lookups_total",
			Help: "Prediction cache lookups by result",
		}, []string{"result"}), // result: "hit", "miss"

		Advice: f.NewCounterVec(prometheus.CounterOpts{
			Name: "siaga_advice_total",
			Help: "Advice attached to assessments by source",
		}, []string{"source"}),
	}
}

// ObserveAssessment records one scored assessment.
func (m *Metrics) ObserveAssessment(atRisk, cached bool, d time.Duration) {
	if m == nil {
		return
	}
	label, result := "safe", "miss"
	if atRisk {
		label = "at_risk"
	}
	if cached {
		result = "hit"
	}
	m.Assessments.WithLabelValues(label).Inc()
	m.CacheLookups.WithLabelValues(result).Inc()
	m.InferenceLatency.Observe(d.Seconds())
}

// IncrementAssemblyFailure records a rejected submission.
func (m *Metrics) IncrementAssemblyFailure(reason string) {
	if m != nil {
		m.AssemblyFailures.WithLabelValues(reason).Inc()
	}
}

// IncrementAdvice records where attached advice came from.
func (m *Metrics) IncrementAdvice(source string) {
	if m != nil {
		m.Advice.WithLabelValues(source).Inc()
	}
}
