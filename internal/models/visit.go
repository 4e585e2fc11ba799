// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package models

import "time"

// Unknown is the stable marker stored for any device attribute that was
// neither parsed from the user agent nor reported by the client.
const Unknown = "Unknown"

// AnonymousSession is stored when a report carries no session identifier.
const AnonymousSession = "anonymous"

// DefaultDeviceType is used when the user agent gives no form factor.
const DefaultDeviceType = "desktop"

// LoopbackIP is recorded when the client address cannot be determined.
const LoopbackIP = "127.0.0.1"

// Deduplication parameters. Two reports are the same visit when they share
// an IP, both coordinates are within DedupTolerance degrees (~100 m), and
// the existing record was written within DedupWindow of the new arrival.
const (
	DedupTolerance = 0.001
	DedupWindow    = 24 * time.Hour
)

// VisitRecord is the single persisted entity.
type VisitRecord struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Location  *Location `json:"location,omitempty"`
	Device    Device    `json:"device"`
	Network   Network   `json:"network"`
	SessionID string    `json:"sessionId"`
}

// Location holds client-reported coordinates plus optional reverse geocoding
// enrichment. Enrichment fields are empty when lookup was skipped or failed.
type Location struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Accuracy  *float64 `json:"accuracy,omitempty"`

	Country     string `json:"country,omitempty"`
	State       string `json:"state,omitempty"`
	City        string `json:"city,omitempty"`
	Address     string `json:"address,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are present.
func (l *Location) HasCoordinates() bool {
	return l != nil && l.Latitude != nil && l.Longitude != nil
}

// ApplyPlace copies enrichment fields from a geocoding result.
func (l *Location) ApplyPlace(p *Place) {
	if l == nil || p == nil {
		return
	}
	l.Country = p.Country
	l.State = p.State
	l.City = p.City
	l.Address = p.Address
	l.PostalCode = p.PostalCode
	l.DisplayName = p.DisplayName
}

// Place is the outcome of reverse geocoding a coordinate pair.
type Place struct {
	Country     string
	State       string
	City        string
	Address     string
	PostalCode  string
	DisplayName string
}

// Device combines attributes derived from the user agent (first eight
// fields) with client self-reported attributes (trusted as-is).
type Device struct {
	UserAgent      string `json:"userAgent"`
	Browser        string `json:"browser"`
	BrowserVersion string `json:"browserVersion"`
	OS             string `json:"os"`
	OSVersion      string `json:"osVersion"`
	DeviceType     string `json:"deviceType"`
	DeviceModel    string `json:"deviceModel"`
	DeviceVendor   string `json:"deviceVendor"`

	ScreenResolution string `json:"screenResolution,omitempty"`
	Language         string `json:"language,omitempty"`
	Timezone         string `json:"timezone,omitempty"`
	Platform         string `json:"platform,omitempty"`
}

// Network is server-observed; clients never supply the IP.
type Network struct {
	IP             string      `json:"ip"`
	ConnectionType string      `json:"connectionType,omitempty"`
	Geo            *NetworkGeo `json:"geo,omitempty"`
}

// NetworkGeo is coarse location derived from an IP database.
type NetworkGeo struct {
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
	City        string `json:"city,omitempty"`
}
