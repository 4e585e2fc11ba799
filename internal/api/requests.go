// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package api

import (
	"github.com/tomtom215/footfall/internal/models"
	"github.com/tomtom215/footfall/internal/visits"
)

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=256"`
	Password string `json:"password" validate:"required,max=1024"`
}

// TrackRequest is the body of POST /track. Every part is optional; an
// empty body records a visit with only server-observed data.
type TrackRequest struct {
	Location  *TrackLocation `json:"location"`
	Device    *TrackDevice   `json:"device"`
	SessionID string         `json:"sessionId" validate:"omitempty,max=256"`
}

// TrackLocation holds browser geolocation output.
type TrackLocation struct {
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
	Accuracy  *float64 `json:"accuracy" validate:"omitempty,gte=0"`
}

// TrackDevice holds attributes the browser reports about itself.
type TrackDevice struct {
	ScreenResolution string `json:"screenResolution" validate:"omitempty,max=64"`
	Language         string `json:"language" validate:"omitempty,max=64"`
	Timezone         string `json:"timezone" validate:"omitempty,max=64"`
	Platform         string `json:"platform" validate:"omitempty,max=128"`
	ConnectionType   string `json:"connectionType" validate:"omitempty,max=64"`
}

// maxUserAgentLength truncates the header before parsing and storage.
const maxUserAgentLength = 1024

// toReport converts the body plus server-observed values into a Report.
func (t *TrackRequest) toReport(userAgent, ip string) visits.Report {
	if len(userAgent) > maxUserAgentLength {
		userAgent = userAgent[:maxUserAgentLength]
	}

	rep := visits.Report{
		SessionID: t.SessionID,
		UserAgent: userAgent,
		IP:        ip,
	}
	if t.Location != nil {
		rep.Location = &models.Location{
			Latitude:  t.Location.Latitude,
			Longitude: t.Location.Longitude,
			Accuracy:  t.Location.Accuracy,
		}
	}
	if t.Device != nil {
		rep.Device = models.Device{
			ScreenResolution: t.Device.ScreenResolution,
			Language:         t.Device.Language,
			Timezone:         t.Device.Timezone,
			Platform:         t.Device.Platform,
		}
		rep.ConnectionType = t.Device.ConnectionType
	}
	return rep
}
