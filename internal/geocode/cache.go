// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package geocode

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/footfall/internal/cache"
	"github.com/tomtom215/footfall/internal/metrics"
	"github.com/tomtom215/footfall/internal/models"
)

// CachingGeocoder remembers successful lookups per rounded coordinate
// cell. Cells are three decimal places wide, the same tolerance the
// visit recorder uses for duplicates. Failures are never cached.
type CachingGeocoder struct {
	next   ReverseGeocoder
	places *cache.LRU[models.Place]
}

// NewCachingGeocoder wraps next with an LRU of the given size and TTL.
func NewCachingGeocoder(next ReverseGeocoder, size int, ttl time.Duration) *CachingGeocoder {
	return &CachingGeocoder{
		next:   next,
		places: cache.NewLRU[models.Place](size, ttl),
	}
}

// Reverse implements ReverseGeocoder. Callers get their own copy.
func (c *CachingGeocoder) Reverse(ctx context.Context, lat, lon float64) (*models.Place, error) {
	key := cellKey(lat, lon)
	if place, ok := c.places.Get(key); ok {
		metrics.RecordGeocode("cache", 0, nil)
		return &place, nil
	}

	place, err := c.next.Reverse(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	c.places.Add(key, *place)
	return place, nil
}

func cellKey(lat, lon float64) string {
	return fmt.Sprintf("%.3f,%.3f", lat, lon)
}
