// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/footfall/internal/auth"
	"github.com/tomtom215/footfall/internal/logging"
	"github.com/tomtom215/footfall/internal/metrics"
	"github.com/tomtom215/footfall/internal/validation"
)

// Login checks the admin credentials and, on success, sets the carrier
// cookie for the configured mode. Failures never say which field was wrong.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, StatusResponse{Message: msgInvalidBody})
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondJSON(w, http.StatusBadRequest, StatusResponse{Message: verr.Error()})
		return
	}

	mode := string(h.guard.Mode())
	ip := h.clientIP.Resolve(r)

	_, err := h.guard.Login(w, r, req.Username, req.Password)
	switch {
	case err == nil:
		h.security.LogLoginSuccess(req.Username, mode, ip, r.UserAgent())
		metrics.RecordAuthAttempt(mode, true)
		respondJSON(w, http.StatusOK, StatusResponse{Success: true, Message: msgLoginSuccessful})
	case errors.Is(err, auth.ErrInvalidCredentials):
		h.security.LogLoginFailure(req.Username, mode, ip, r.UserAgent())
		metrics.RecordAuthAttempt(mode, false)
		respondJSON(w, http.StatusUnauthorized, StatusResponse{Message: msgInvalidCredentials})
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("mode", mode).Msg("Login failed")
		metrics.RecordAuthAttempt(mode, false)
		respondJSON(w, http.StatusInternalServerError, StatusResponse{Message: msgLoginFailed})
	}
}

// Logout drops the caller's carrier. Logging out without one succeeds.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var user string
	if claim, err := h.guard.Authenticate(r); err == nil {
		user = claim.User
	}
	var sessionID string
	if c, err := r.Cookie(auth.SessionCookieName); err == nil {
		sessionID = c.Value
	}

	if err := h.guard.Logout(w, r); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Logout failed")
		respondJSON(w, http.StatusInternalServerError, StatusResponse{Message: msgLogoutFailed})
		return
	}

	if user != "" {
		h.security.LogLogout(user, sessionID, string(h.guard.Mode()), h.clientIP.Resolve(r))
	}
	respondJSON(w, http.StatusOK, StatusResponse{Success: true, Message: msgLogoutSuccessful})
}

// AuthStatus reports whether the request carries a valid carrier.
func (h *Handler) AuthStatus(w http.ResponseWriter, r *http.Request) {
	claim, err := h.guard.Authenticate(r)
	if err != nil {
		respondJSON(w, http.StatusOK, AuthStatusResponse{})
		return
	}
	respondJSON(w, http.StatusOK, AuthStatusResponse{Authenticated: true, User: claim.User})
}
