package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Chatbot-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hr",
			Subsystem: "chatbot_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hr",
			Subsystem: "chatbot_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)

	// Turn counters
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hr",
			Subsystem: "chatbot_api",
			Name:      "turns_total",
			Help:      "Total chat turns handled",
		},
		[]string{"kind"},
	)

	// Intent counters
	IntentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hr",
			Subsystem: "chatbot_api",
			Name:      "intents_total",
			Help:      "Total intents started and completed",
		},
		[]string{"intent", "status"},
	)

	// Platform API call counters
	PlatformRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hr",
			Subsystem: "chatbot_api",
			Name:      "platform_requests_total",
			Help:      "Total HR platform API calls",
		},
		[]string{"endpoint", "status"},
	)

	// Platform API call duration histogram
	PlatformRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hr",
			Subsystem: "chatbot_api",
			Name:      "platform_request_duration_seconds",
			Help:      "HR platform API call duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 15},
		},
		[]string{"endpoint"},
	)

	// Push channel counters
	PushEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hr",
			Subsystem: "chatbot_api",
			Name:      "push_events_total",
			Help:      "Total push channel frames by type",
		},
		[]string{"type", "status"},
	)

	// Push channel reconnects
	PushReconnectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hr",
			Subsystem: "chatbot_api",
			Name:      "push_reconnects_total",
			Help:      "Total reconnect attempts to the push channel",
		},
	)

	// Connected event stream clients gauge
	EventClientsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "hr",
			Subsystem: "chatbot_api",
			Name:      "event_clients_active",
			Help:      "Number of connected event stream clients",
		},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordTurn records one handled chat turn
func RecordTurn(kind string) {
	TurnsTotal.WithLabelValues(kind).Inc()
}

// RecordIntent records an intent lifecycle transition
func RecordIntent(intent, status string) {
	IntentsTotal.WithLabelValues(intent, status).Inc()
}

// RecordPlatformRequest records an HR platform API call
func RecordPlatformRequest(endpoint, status string, durationSec float64) {
	PlatformRequestsTotal.WithLabelValues(endpoint, status).Inc()
	PlatformRequestDuration.WithLabelValues(endpoint).Observe(durationSec)
}

// RecordPushEvent records a consumed push channel frame
func RecordPushEvent(eventType, status string) {
	PushEventsTotal.WithLabelValues(eventType, status).Inc()
}
