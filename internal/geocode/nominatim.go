// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package geocode

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/footfall/internal/config"
	"github.com/tomtom215/footfall/internal/metrics"
	"github.com/tomtom215/footfall/internal/models"
)

// NominatimClient queries an OpenStreetMap Nominatim reverse endpoint.
//
// Outbound calls pass through a token bucket sized from
// GEOCODE_RATE_PER_SECOND so the service stays inside the provider's
// usage policy. The limiter only delays our own requests; when the caller's
// deadline expires first the lookup fails and enrichment is skipped.
type NominatimClient struct {
	client    *http.Client
	baseURL   string
	userAgent string
	limiter   *rate.Limiter
}

// nominatimResponse is the subset of the jsonv2 reverse response we use.
type nominatimResponse struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
	Address     struct {
		Country  string `json:"country"`
		State    string `json:"state"`
		Province string `json:"province"`
		City     string `json:"city"`
		Town     string `json:"town"`
		Village  string `json:"village"`
		Postcode string `json:"postcode"`
	} `json:"address"`
}

// NewNominatimClient creates a client from geocoding configuration.
func NewNominatimClient(cfg *config.GeocodeConfig) *NominatimClient {
	perSecond := cfg.RatePerSecond
	if perSecond <= 0 {
		perSecond = 1
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &NominatimClient{
		client:    &http.Client{Timeout: timeout},
		baseURL:   cfg.URL,
		userAgent: cfg.UserAgent,
		limiter:   rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// Reverse looks up the place at (lat, lon).
func (c *NominatimClient) Reverse(ctx context.Context, lat, lon float64) (*models.Place, error) {
	start := time.Now()
	place, err := c.reverse(ctx, lat, lon)
	metrics.RecordGeocode("nominatim", time.Since(start), err)
	return place, err
}

func (c *NominatimClient) reverse(ctx context.Context, lat, lon float64) (*models.Place, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrThrottled, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(lat, lon), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: nominatim returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var result nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}
	if result.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, result.Error)
	}

	return convertNominatimResponse(&result), nil
}

func (c *NominatimClient) buildURL(lat, lon float64) string {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("addressdetails", "1")
	return c.baseURL + "?" + q.Encode()
}

func convertNominatimResponse(r *nominatimResponse) *models.Place {
	return &models.Place{
		Country:     r.Address.Country,
		State:       firstNonEmpty(r.Address.State, r.Address.Province),
		City:        firstNonEmpty(r.Address.City, r.Address.Town, r.Address.Village),
		Address:     r.DisplayName,
		PostalCode:  r.Address.Postcode,
		DisplayName: r.DisplayName,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
