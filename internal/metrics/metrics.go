package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "institute_http_requests_total",
			Help: "Total HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "institute_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	FeeMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "institute_fee_mutations_total",
			Help: "Fee ledger mutations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	CertificatesGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "institute_certificates_generated_total",
			Help: "Certificate PDF documents generated",
		},
	)
)
