// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

// Package geocode turns coordinates into place names and IP addresses into
// coarse locations. Every lookup is best effort: callers treat any error as
// "no enrichment" and carry on.
package geocode

import (
	"context"
	"errors"

	"github.com/tomtom215/footfall/internal/models"
)

// ErrUnavailable is returned when a provider cannot answer, whether the
// cause is a network failure, an open circuit, or an empty result.
var ErrUnavailable = errors.New("geocoder unavailable")

// ErrThrottled is returned when the outbound rate limit leaves no slot
// before the caller's deadline. The provider was never asked, so it says
// nothing about provider health.
var ErrThrottled = errors.New("geocode lookup throttled")

// ReverseGeocoder resolves a coordinate pair to a place.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, lat, lon float64) (*models.Place, error)
}

// IPLocator resolves an IP address to a coarse location.
type IPLocator interface {
	Locate(ip string) (*models.NetworkGeo, error)
}
