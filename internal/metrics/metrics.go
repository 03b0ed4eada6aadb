package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values shared by the counters below.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultSkipped = "skipped"
)

// Metrics groups the collectors exported on /metrics.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	RateCacheHitsTotal   prometheus.Counter
	RateFetchesTotal     *prometheus.CounterVec
	RateFallbacksTotal   prometheus.Counter
	ContributionsTotal   *prometheus.CounterVec
	ConversionErrorTotal prometheus.Counter

	RecurringContributionsTotal *prometheus.CounterVec
}

// NewMetrics registers all collectors with reg. Tests pass a fresh prometheus.NewRegistry().
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		RateCacheHitsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rate_cache_hits_total",
				Help: "Total number of rate reads served from the cached live snapshot",
			},
		),

		RateFetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_provider_fetches_total",
				Help: "Total number of calls to the external rate provider",
			},
			[]string{"result"},
		),

		RateFallbacksTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rate_fallback_served_total",
				Help: "Total number of rate reads answered with the built-in fallback table",
			},
		),

		ContributionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "savings_contributions_total",
				Help: "Total number of contribution attempts",
			},
			[]string{"result", "converted"},
		),

		ConversionErrorTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "currency_conversion_errors_total",
				Help: "Total number of conversions rejected for unknown currencies or bad rates",
			},
		),

		RecurringContributionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "savings_recurring_contributions_total",
				Help: "Total number of due recurring savings by outcome",
			},
			[]string{"result"},
		),
	}
}

// NewNoopMetrics returns collectors registered nowhere.
func NewNoopMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}
