// Package metrics exposes Prometheus collectors for the lead pipeline.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	providerRequestsTotal   *prometheus.CounterVec
	pagesFetchedTotal       *prometheus.CounterVec
	robotsDeniedTotal       prometheus.Counter
	enrichmentFillsTotal    *prometheus.CounterVec
	pipelineDurationSeconds prometheus.Histogram
	pipelineLeadsReturned   prometheus.Histogram

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		providerRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leadscout_provider_requests_total",
				Help: "Provider search requests, labeled by provider and outcome.",
			},
			[]string{"provider", "status"},
		)

		pagesFetchedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leadscout_pages_fetched_total",
				Help: "Candidate page fetches, labeled by outcome.",
			},
			[]string{"status"},
		)

		robotsDeniedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "leadscout_robots_denied_total",
				Help: "URLs skipped because robots policy disallowed them.",
			},
		)

		enrichmentFillsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leadscout_enrichment_fills_total",
				Help: "Contact fields filled, labeled by field and waterfall step.",
			},
			[]string{"field", "step"},
		)

		pipelineDurationSeconds = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "leadscout_pipeline_duration_seconds",
				Help:    "End-to-end pipeline run duration.",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 8),
			},
		)

		pipelineLeadsReturned = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "leadscout_pipeline_leads_returned",
				Help:    "Leads returned per pipeline run.",
				Buckets: prometheus.LinearBuckets(0, 10, 6),
			},
		)
	})
}

// ProviderRequest records one provider search outcome.
func ProviderRequest(provider, status string) {
	Init()
	providerRequestsTotal.WithLabelValues(provider, status).Inc()
}

// PageFetched records one candidate page fetch outcome.
func PageFetched(status string) {
	Init()
	pagesFetchedTotal.WithLabelValues(status).Inc()
}

// RobotsDenied records a URL skipped by robots policy.
func RobotsDenied() {
	Init()
	robotsDeniedTotal.Inc()
}

// EnrichmentFill records a contact field filled by a waterfall step.
func EnrichmentFill(field, step string) {
	Init()
	enrichmentFillsTotal.WithLabelValues(field, step).Inc()
}

// PipelineRun records the duration and output size of one pipeline run.
func PipelineRun(seconds float64, leads int) {
	Init()
	pipelineDurationSeconds.Observe(seconds)
	pipelineLeadsReturned.Observe(float64(leads))
}

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	Init()
	return promhttp.Handler()
}
