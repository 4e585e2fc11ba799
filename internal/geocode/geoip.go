// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package geocode

import (
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"

	"github.com/tomtom215/footfall/internal/metrics"
	"github.com/tomtom215/footfall/internal/models"
)

// GeoIPLocator reads coarse locations from a local MaxMind City database.
// Lookups never leave the process.
type GeoIPLocator struct {
	reader *geoip2.Reader
}

// OpenGeoIP opens the .mmdb file at path.
func OpenGeoIP(path string) (*GeoIPLocator, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open geoip database %s: %w", path, err)
	}
	return &GeoIPLocator{reader: reader}, nil
}

// Close releases the database.
func (g *GeoIPLocator) Close() error {
	if g.reader == nil {
		return nil
	}
	return g.reader.Close()
}

// Locate returns the country and city for ip. Private and loopback
// addresses have no entry and yield ErrUnavailable.
func (g *GeoIPLocator) Locate(ipAddress string) (*models.NetworkGeo, error) {
	geo, err := g.locate(ipAddress)
	metrics.RecordGeocode("geoip", 0, err)
	return geo, err
}

func (g *GeoIPLocator) locate(ipAddress string) (*models.NetworkGeo, error) {
	ip := net.ParseIP(ipAddress)
	if ip == nil {
		return nil, fmt.Errorf("invalid ip address: %q", ipAddress)
	}
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() {
		return nil, fmt.Errorf("%w: %s is not routable", ErrUnavailable, ipAddress)
	}

	record, err := g.reader.City(ip)
	if err != nil {
		return nil, fmt.Errorf("geoip lookup failed: %w", err)
	}
	if record.Country.IsoCode == "" {
		return nil, fmt.Errorf("%w: no entry for %s", ErrUnavailable, ipAddress)
	}

	return &models.NetworkGeo{
		Country:     record.Country.Names["en"],
		CountryCode: record.Country.IsoCode,
		City:        record.City.Names["en"],
	}, nil
}
