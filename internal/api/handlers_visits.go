// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/footfall/internal/logging"
	"github.com/tomtom215/footfall/internal/validation"
	"github.com/tomtom215/footfall/internal/visits"
)

// Track ingests one visit report. The client IP is always taken from the
// connection, never from the body.
func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	var req TrackRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		respondJSON(w, http.StatusBadRequest, StatusResponse{Message: msgInvalidBody})
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondJSON(w, http.StatusBadRequest, StatusResponse{Message: verr.Error()})
		return
	}

	rep := req.toReport(r.UserAgent(), h.clientIP.Resolve(r))
	res, err := h.recorder.Record(r.Context(), rep)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, trackResponse(res))
	case errors.Is(err, visits.ErrValidation):
		respondJSON(w, http.StatusBadRequest, StatusResponse{Message: err.Error()})
	default:
		logging.Ctx(r.Context()).Error().Err(err).
			Str("ip", sanitizeLogValue(rep.IP)).
			Msg("Error processing visit")
		respondJSON(w, http.StatusInternalServerError, StatusResponse{Message: msgProcessingFailed})
	}
}

// Data returns one page of visits, newest first.
//
// Query parameters: page (default 1), limit (default from config),
// search (case-insensitive substring over location, browser, os, ip and
// session ID).
func (h *Handler) Data(w http.ResponseWriter, r *http.Request) {
	params := visits.ListParams{
		Page:   getIntParam(r, "page", 1),
		Limit:  getIntParam(r, "limit", 0),
		Search: r.URL.Query().Get("search"),
	}

	res, err := h.query.List(r.Context(), params)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).
			Str("search", sanitizeLogValue(params.Search)).
			Msg("Error fetching visits")
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{Message: msgFetchFailed})
		return
	}
	respondJSON(w, http.StatusOK, listResponse(res))
}

// SimpleData returns the latest visits as a bare array.
func (h *Handler) SimpleData(w http.ResponseWriter, r *http.Request) {
	data, err := h.query.Latest(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Error fetching latest visits")
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{Message: msgFetchFailed})
		return
	}
	respondJSON(w, http.StatusOK, data)
}
