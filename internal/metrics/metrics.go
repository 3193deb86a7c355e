// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HttpRequestsTotal counts HTTP requests by route, method and status code.
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of http requests handled by the service.",
		},
		[]string{"path", "method", "code"},
	)

	// DispatchTotal counts dispatch outcomes by worker and status.
	DispatchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_dispatch_total",
			Help: "Total number of tasks dispatched to workers.",
		},
		[]string{"worker", "status"},
	)

	// DispatchDuration observes how long workers spend executing a task.
	DispatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "workflow_dispatch_duration_seconds",
			Help:    "Time spent executing a dispatched task.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"worker"},
	)

	// SchedulerChecksTotal counts how often the scheduler looked for work.
	SchedulerChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_scheduler_checks_total",
			Help: "Total number of times the scheduler checked for work.",
		},
		[]string{"worker"},
	)
)
