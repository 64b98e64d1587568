// Package metrics exposes Prometheus collectors for the ordering bot.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_events_total",
			Help: "Total number of inbound events labeled by kind and status",
		},
		[]string{"kind", "status"},
	)
	eventDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "event_duration_seconds",
			Help:    "End-to-end handling duration of inbound events in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)
	stateTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "state_transitions_total",
			Help: "Total number of conversation state transitions",
		},
		[]string{"from", "to"},
	)
	fulfillmentDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fulfillment_decisions_total",
			Help: "Total number of fulfillment decisions labeled by distance tier",
		},
		[]string{"tier"},
	)
	externalErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "external_errors_total",
			Help: "Total number of failed calls to external services",
		},
		[]string{"service"},
	)
	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors split by code and severity",
		},
		[]string{"code", "severity"},
	)
)

// RecordEvent increments event counters and records duration.
func RecordEvent(kind, status string, duration time.Duration) {
	if kind == "" {
		kind = "unknown"
	}
	if status == "" {
		status = "unknown"
	}

	eventsTotal.WithLabelValues(kind, status).Inc()
	eventDurationSeconds.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordStateTransition tracks conversation state transitions.
func RecordStateTransition(from, to string) {
	if from == "" {
		from = "unknown"
	}
	if to == "" {
		to = "unknown"
	}

	stateTransitionsTotal.WithLabelValues(from, to).Inc()
}

// RecordFulfillmentDecision tracks which distance tier a decision landed in.
func RecordFulfillmentDecision(tier string) {
	if tier == "" {
		tier = "unknown"
	}

	fulfillmentDecisionsTotal.WithLabelValues(tier).Inc()
}

// RecordExternalError counts a failed call to an external service.
func RecordExternalError(service string) {
	if service == "" {
		service = "unknown"
	}

	externalErrorsTotal.WithLabelValues(service).Inc()
}

// RecordError increments error counters with metadata.
func RecordError(code, severity string) {
	if code == "" {
		code = "unknown"
	}
	if severity == "" {
		severity = "unknown"
	}

	errorsTotal.WithLabelValues(code, severity).Inc()
}
