package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search backend and template Prometheus metrics.
var (
	BackendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "epproxy",
			Name:      "backend_requests_total",
			Help:      "Total number of search backend requests",
		},
		[]string{"status_class"},
	)

	BackendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "epproxy",
			Name:      "backend_request_duration_seconds",
			Help:      "Search backend request duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"status_class"},
	)

	BackendErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "epproxy",
			Name:      "backend_errors_total",
			Help:      "Total search backend errors",
		},
		[]string{"error_type"},
	)

	TemplateLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "epproxy",
			Name:      "template_loads_total",
			Help:      "Template loads by source driver and result",
		},
		[]string{"driver", "result"},
	)
)

var proxyMetricsRegistered bool

// RegisterProxyMetrics registers backend and template metrics. Must be
// called once from main.
func RegisterProxyMetrics() {
	if proxyMetricsRegistered {
		return
	}
	prometheus.MustRegister(BackendRequestsTotal)
	prometheus.MustRegister(BackendRequestDuration)
	prometheus.MustRegister(BackendErrorsTotal)
	prometheus.MustRegister(TemplateLoadsTotal)
	proxyMetricsRegistered = true
}

// StatusClass buckets an HTTP status code into 2xx/3xx/4xx/5xx.
func StatusClass(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 300 && status < 400:
		return "3xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
