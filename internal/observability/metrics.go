package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the hazard service.
type Metrics struct {
	Evaluations        *prometheus.CounterVec // labels: mode={live,mock}
	EvaluationDuration prometheus.Histogram
	HazardSeverity     *prometheus.GaugeVec // labels: kind; value is the severity rank of the latest grid
	GlobalSeverity     prometheus.Gauge
	EvaluatorRunning   prometheus.Gauge

	// Upstream feed metrics.
	FeedRequests        *prometheus.CounterVec   // labels: dataset, outcome={success,error}
	FeedRequestDuration *prometheus.HistogramVec // labels: dataset
	FeedCache           *prometheus.CounterVec   // labels: dataset, result={hit,miss}

	// Kafka sink metrics.
	AssessmentsPublished prometheus.Counter
	PublishErrors        prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.Evaluations,
		m.EvaluationDuration,
		m.HazardSeverity,
		m.GlobalSeverity,
		m.EvaluatorRunning,
		m.FeedRequests,
		m.FeedRequestDuration,
		m.FeedCache,
		m.AssessmentsPublished,
		m.PublishErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hazard",
			Name:      "evaluations_total",
			Help:      "Hazard evaluations by mode.",
		}, []string{"mode"}),
		EvaluationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hazard",
			Name:      "evaluation_duration_seconds",
			Help:      "Duration of a snapshot load plus hazard decision.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		HazardSeverity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "hazard",
			Name:      "hazard_severity_rank",
			Help:      "Severity rank (1 safe, 2 warning, 3 danger) per hazard kind from the latest evaluation.",
		}, []string{"kind"}),
		GlobalSeverity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hazard",
			Name:      "global_severity_rank",
			Help:      "Severity rank of the latest global hazard.",
		}),
		EvaluatorRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hazard",
			Name:      "evaluator_running",
			Help:      "1 when the scheduled evaluator is active, 0 when shut down.",
		}),
		FeedRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hazard",
			Name:      "feed_requests_total",
			Help:      "Upstream dataset requests by dataset and outcome.",
		}, []string{"dataset", "outcome"}),
		FeedRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hazard",
			Name:      "feed_request_duration_seconds",
			Help:      "Upstream dataset request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"dataset"}),
		FeedCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hazard",
			Name:      "feed_cache_total",
			Help:      "Dataset cache lookups by dataset and result.",
		}, []string{"dataset", "result"}),
		AssessmentsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hazard",
			Name:      "assessments_published_total",
			Help:      "Total assessments written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hazard",
			Name:      "publish_errors_total",
			Help:      "Total failed assessment publishes.",
		}),
	}
}
