package handler

import (
	"net/http"

	"monitoring-demo/internal/metrics"
)

// RequestMetrics counts and times the requests of one app.
type RequestMetrics struct {
	requests *metrics.CounterVec
	latency  *metrics.Histogram
}

// NewRequestMetrics registers <prefix>_requests_total and <prefix>_request_duration_seconds.
func NewRequestMetrics(reg *metrics.Registry, prefix string) *RequestMetrics {
	return &RequestMetrics{
		requests: reg.MustCounterVec(prefix+"_requests_total", "Total number of requests", "method", "endpoint"),
		latency:  reg.MustHistogramVec(prefix+"_request_duration_seconds", "Request latency", nil).WithLabelValues(),
	}
}

// Counted counts every request to endpoint.
func (m *RequestMetrics) Counted(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.requests.WithLabelValues(r.Method, endpoint).Inc()
		next(w, r)
	}
}

// Timed counts every request to endpoint and observes how long it took.
func (m *RequestMetrics) Timed(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return m.Counted(endpoint, func(w http.ResponseWriter, r *http.Request) {
		defer m.latency.Time()()
		next(w, r)
	})
}
