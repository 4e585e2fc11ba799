// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package api

import (
	"github.com/tomtom215/footfall/internal/models"
	"github.com/tomtom215/footfall/internal/visits"
)

// Response messages. The front end matches on some of these.
const (
	msgLoginSuccessful    = "Login successful"
	msgInvalidCredentials = "Invalid credentials"
	msgLoginFailed        = "Could not log in"
	msgLogoutSuccessful   = "Logout successful"
	msgLogoutFailed       = "Could not log out"
	msgInvalidBody        = "Invalid request body"
	msgDataSaved          = "Data saved successfully"
	msgVisitUpdated       = "Visit updated"
	msgDataProcessed      = "Data processed successfully"
	msgNotPersistedNote   = "Database not connected - data logged to console"
	msgProcessingFailed   = "Error processing data"
	msgFetchFailed        = "Error fetching data"
)

// StatusResponse is the {success, message} body used by auth routes and
// for errors on /track.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// TrackResponse is the body of a successful POST /track.
type TrackResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ID        string `json:"id,omitempty"`
	Duplicate bool   `json:"duplicate,omitempty"`
	Note      string `json:"note,omitempty"`
}

// AuthStatusResponse is the body of GET /auth-status.
type AuthStatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	User          string `json:"user,omitempty"`
}

// ListResponse is one page of GET /data.
type ListResponse struct {
	Data       []models.VisitRecord `json:"data"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"totalPages"`
	Total      int                  `json:"total"`
	HasNext    bool                 `json:"hasNext"`
	HasPrev    bool                 `json:"hasPrev"`
}

// ErrorResponse is the body of read-side failures.
type ErrorResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

func trackResponse(res visits.Result) TrackResponse {
	switch {
	case res.Duplicate:
		return TrackResponse{Success: true, Message: msgVisitUpdated, Duplicate: true}
	case !res.Persisted:
		return TrackResponse{Success: true, Message: msgDataProcessed, Note: msgNotPersistedNote}
	default:
		return TrackResponse{Success: true, Message: msgDataSaved, ID: res.RecordID}
	}
}

func listResponse(res visits.ListResult) ListResponse {
	data := res.Data
	if data == nil {
		data = []models.VisitRecord{}
	}
	return ListResponse{
		Data:       data,
		Page:       res.Page,
		TotalPages: res.TotalPages,
		Total:      res.Total,
		HasNext:    res.HasNext,
		HasPrev:    res.HasPrev,
	}
}
