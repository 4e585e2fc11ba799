// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

// Package visits holds the two domain services behind the HTTP surface.
//
// Recorder ingests visit reports: it parses the user agent, decides whether
// the report repeats a recent nearby visit from the same IP, enriches new
// visits with reverse geocoding and IP location, and persists them.
//
// Query pages and searches stored visits for the admin listing.
//
// Both depend on a Store, normally *database.DB, and both keep working
// when the store is not ready: Recorder logs the visit instead of writing
// it and Query returns an empty page.
package visits
