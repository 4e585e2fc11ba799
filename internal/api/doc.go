// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

/*
Package api is the HTTP surface of Footfall.

Routes (each also mounted under /api):

	POST /login         credentials in, auth carrier cookie out
	POST /logout        drops the carrier
	GET  /auth-status   reports whether the caller is logged in
	POST /track         visit ingestion, permissive CORS
	GET  /data          paginated, searchable listing (auth required)
	GET  /simple-data   latest 50 visits (auth required)

Operational routes live only at the root:

	GET /health/live    process is up
	GET /health/ready   visit store is reachable
	GET /metrics        Prometheus exposition

Handlers are thin adapters. Ingestion semantics live in the visits
package and credential handling in auth; this package decodes requests,
picks the client IP, and maps outcomes to the JSON bodies the front end
expects.
*/
package api
