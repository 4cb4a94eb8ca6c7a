// Package metrics holds the process-wide Prometheus collectors for the dashboard.
// Collectors register with the default registry on import and are safe for
// concurrent use.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dwight"

var (
	// CacheLookups counts permission cache lookups by cache ("authority"|"membership") and result ("hit"|"miss").
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "permission_cache_lookups_total",
			Help:      "Permission cache lookups by cache and result.",
		},
		[]string{"cache", "result"},
	)

	// DiscordFetches counts REST fetches made on cache misses.
	DiscordFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discord_fetches_total",
			Help:      "Discord REST fetches by resource and outcome.",
		},
		[]string{"resource", "outcome"},
	)

	TranscodeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transcode_duration_seconds",
			Help:      "Duration of sound transcodes in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"outcome"},
	)

	// TranscodesInflight gauges transcodes holding a semaphore slot.
	TranscodesInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "transcodes_inflight",
			Help:      "Transcodes currently running.",
		},
	)

	SoundsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sounds_created_total",
			Help:      "Sound creation attempts by outcome.",
		},
		[]string{"outcome"},
	)

	// Applies counts ApplyChanges calls by outcome ("applied"|"nothing"|"webhook_failed"|"error").
	Applies = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "apply_changes_total",
			Help:      "ApplyChanges calls by outcome.",
		},
		[]string{"outcome"},
	)

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

func init() {
	prometheus.MustRegister(
		CacheLookups,
		DiscordFetches,
		TranscodeDuration,
		TranscodesInflight,
		SoundsCreated,
		Applies,
		HTTPRequests,
		HTTPLatency,
	)
}
