// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	StoreReady = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "visit_store_ready",
			Help: "Whether the visit store is connected (1) or degraded (0)",
		},
	)

	StoreReconnects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visit_store_reconnects_total",
			Help: "Total number of visit store reconnect attempts",
		},
		[]string{"result"}, // "success", "failure"
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Ingestion Metrics
	VisitsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visits_recorded_total",
			Help: "Total number of visit reports by outcome",
		},
		[]string{"outcome"}, // "created", "duplicate", "logged", "failed"
	)

	GeocodeLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocode_lookups_total",
			Help: "Total number of reverse geocoding lookups by result",
		},
		[]string{"source", "result"}, // source: "nominatim", "cache", "geoip"; result: "success", "failure"
	)

	GeocodeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "geocode_lookup_duration_seconds",
			Help:    "Reverse geocoding lookup duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected", "throttled"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Auth Metrics
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"mode", "result"}, // result: "success", "failure"
	)

	SessionsCleaned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_sessions_cleaned_total",
			Help: "Total number of expired sessions removed",
		},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordVisit records the outcome of one ingestion call.
func RecordVisit(outcome string) {
	VisitsRecorded.WithLabelValues(outcome).Inc()
}

// RecordGeocode records a lookup result and, for network lookups, its latency.
func RecordGeocode(source string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	GeocodeLookups.WithLabelValues(source, result).Inc()
	if duration > 0 {
		GeocodeDuration.Observe(duration.Seconds())
	}
}

// SetStoreReady mirrors the store's readiness flag.
func SetStoreReady(ready bool) {
	if ready {
		StoreReady.Set(1)
	} else {
		StoreReady.Set(0)
	}
}

// RecordStoreReconnect records a reconnect attempt.
func RecordStoreReconnect(err error) {
	if err != nil {
		StoreReconnects.WithLabelValues("failure").Inc()
		return
	}
	StoreReconnects.WithLabelValues("success").Inc()
}

// RecordAuthAttempt records a login attempt.
func RecordAuthAttempt(mode string, success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	AuthAttempts.WithLabelValues(mode, result).Inc()
}
