// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

// Package cache provides a bounded, expiring LRU cache.
//
// The reverse geocoder uses it to avoid asking the provider for the same
// neighbourhood twice: repeat visitors report near-identical coordinates,
// and the provider allows about one request per second.
package cache
