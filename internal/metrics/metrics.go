package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "customers_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "code"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "customers_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	LifecycleTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "customers_lifecycle_total",
			Help: "Customer lifecycle events emitted, by event type (suspended carries no store change)",
		},
		[]string{"event"}, // customer.created|updated|deleted|suspended
	)

	EventPublishFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "customers_event_publish_failures_total",
			Help: "Lifecycle events that could not be written to Kafka",
		},
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		LifecycleTotal,
		EventPublishFailuresTotal,
	)
}
