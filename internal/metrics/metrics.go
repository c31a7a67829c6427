package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, path, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "draftly_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// TransformDuration tracks provider latency per provider and action.
	TransformDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "draftly_transform_duration_seconds",
		Help:    "Time spent waiting on a provider transform.",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"provider", "action"})

	// ProviderErrors counts failed provider calls by error kind.
	ProviderErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "draftly_provider_errors_total",
		Help: "Provider calls that failed, by error kind.",
	}, []string{"provider", "kind"})

	// FallbackTotal counts transforms answered by the placeholder responder.
	FallbackTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "draftly_fallback_total",
		Help: "Transforms answered with placeholder output.",
	}, []string{"reason"})

	// InputChars tracks the distribution of input text lengths.
	InputChars = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "draftly_input_chars",
		Help:    "Number of characters in transform input text.",
		Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})

	// AdapterAvailable tracks whether each provider has a usable credential.
	AdapterAvailable = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "draftly_adapter_available",
		Help: "Whether a provider adapter is available (1) or not (0).",
	}, []string{"provider"})
)
