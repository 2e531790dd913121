package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	RequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "tasktracker_requests_total",
			Help: "Total number of requests processed",
		},
		[]string{"method", "status"},
	)

	// ValidationRejections counts pipeline rejections by classified kind
	// (oversized_request, wrong_content_type, html_stripped,
	// sql_injection_suspected, forbidden_word_found, ...) and field.
	ValidationRejections = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "tasktracker_validation_rejections_total",
			Help: "Total number of requests rejected by the validation pipeline",
		},
		[]string{"kind", "field"},
	)

	RateLimitExceeded = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "tasktracker_rate_limit_exceeded_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"tier"},
	)
)

type MetricsConfig struct {
	Enabled bool
}

var Config MetricsConfig

func Initialize(cfg MetricsConfig) {
	Config = cfg
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
}
