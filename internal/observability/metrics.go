package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// analysis service.
type Metrics struct {
	QuestionsAnswered *prometheus.CounterVec // labels: outcome={model,fallback,insufficient_data}
	ModelErrors       *prometheus.CounterVec // labels: kind={authentication,rate_limit,timeout,network,quality,unknown}
	ModelCallDuration prometheus.Histogram
	ModelRetries      prometheus.Counter
	AnalysisReady     prometheus.Gauge

	// Community board metrics.
	PlansCreated prometheus.Counter
	VotesCast    *prometheus.CounterVec // labels: direction={up,down}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		QuestionsAnswered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lst_insight",
			Name:      "questions_answered_total",
			Help:      "Answered questions by outcome.",
		}, []string{"outcome"}),
		ModelErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lst_insight",
			Name:      "model_errors_total",
			Help:      "Model call failures by classified kind.",
		}, []string{"kind"}),
		ModelCallDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lst_insight",
			Name:      "model_call_duration_seconds",
			Help:      "Duration of a single chat completion call.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		ModelRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lst_insight",
			Name:      "model_retries_total",
			Help:      "Rate-limit retries across all queries.",
		}),
		AnalysisReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lst_insight",
			Name:      "analysis_ready",
			Help:      "1 when a raster is loaded and statistics are available, 0 otherwise.",
		}),
		PlansCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lst_insight",
			Name:      "plans_created_total",
			Help:      "Community plans submitted.",
		}),
		VotesCast: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lst_insight",
			Name:      "votes_cast_total",
			Help:      "Community votes by direction.",
		}, []string{"direction"}),
	}

	prometheus.MustRegister(
		m.QuestionsAnswered,
		m.ModelErrors,
		m.ModelCallDuration,
		m.ModelRetries,
		m.AnalysisReady,
		m.PlansCreated,
		m.VotesCast,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		QuestionsAnswered: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "lst_insight", Name: "questions_answered_total"}, []string{"outcome"}),
		ModelErrors:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "lst_insight", Name: "model_errors_total"}, []string{"kind"}),
		ModelCallDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "lst_insight", Name: "model_call_duration_seconds"}),
		ModelRetries:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "lst_insight", Name: "model_retries_total"}),
		AnalysisReady:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "lst_insight", Name: "analysis_ready"}),
		PlansCreated:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "lst_insight", Name: "plans_created_total"}),
		VotesCast:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "lst_insight", Name: "votes_cast_total"}, []string{"direction"}),
	}
}
