// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

/*
Package middleware provides HTTP infrastructure shared by every route.

  - RequestID: X-Request-ID propagation into the logging context
  - PrometheusMetrics: request count, latency, and in-flight gauge
  - ClientIPResolver: the caller address recorded with each visit

The first two have the http.HandlerFunc shape; the api package adapts them
for chi with its chiMiddleware helper:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

ClientIPResolver is not a middleware. Handlers call Resolve so that the
socket address stays untouched for anything else that reads it.
*/
package middleware
