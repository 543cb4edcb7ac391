package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	razorpayRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "razorpay_requests_total",
		Help: "Total number of Razorpay API requests",
	}, []string{
		"operation", // e.g. subscription.fetch
		"status",    // HTTP status code, or "error" for transport failures
	})

	razorpayRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "razorpay_request_duration_seconds",
		Help:    "Duration of Razorpay API requests in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{
		"operation",
	})
)

// RecordGatewayRequest records one Razorpay API call
func RecordGatewayRequest(operation, status string, duration time.Duration) {
	razorpayRequestsTotal.WithLabelValues(operation, status).Inc()
	razorpayRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
