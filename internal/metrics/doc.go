// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

// Package metrics registers the Prometheus collectors exposed on /metrics:
// HTTP request latency, DuckDB query timing, ingestion outcomes, geocoder
// health and circuit breaker state, and login attempts.
package metrics
