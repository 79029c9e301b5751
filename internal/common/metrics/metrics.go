package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SagaRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saga_runs_total",
			Help: "Total number of orchestration runs by outcome",
		},
		[]string{"operation", "outcome"},
	)

	SagaStepFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saga_step_failures_total",
			Help: "Total number of failed saga steps",
		},
		[]string{"operation", "step", "required"},
	)

	SagaRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "saga_run_duration_seconds",
			Help:    "Duration of orchestration runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	SagaRunsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "saga_runs_active",
			Help: "Number of orchestration runs in progress",
		},
		[]string{"operation"},
	)

	DownstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "downstream_requests_total",
			Help: "Total number of calls to the engineering data service",
		},
		[]string{"method", "status_class"},
	)
)

// StatusClass buckets an HTTP status for the downstream_requests_total label.
func StatusClass(status int) string {
	switch {
	case status == 0:
		return "transport_error"
	case status < 200:
		return "1xx"
	case status < 300:
		return "2xx"
	case status < 400:
		return "3xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
