// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package api

import "net/http"

// Health statuses.
const (
	statusOK       = "ok"
	statusReady    = "ready"
	statusNotReady = "not_ready"

	databaseConnected    = "connected"
	databaseDisconnected = "disconnected"
)

// HealthLive reports that the process is serving requests. It is always 200;
// a missing store is a readiness concern, not a liveness one.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{Status: statusOK})
}

// HealthReady is 200 when the visit store is connected and 503 otherwise.
// Ingestion keeps working while not ready, but nothing is persisted.
func (h *Handler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	if h.store == nil || !h.store.IsReady() {
		respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:   statusNotReady,
			Database: databaseDisconnected,
		})
		return
	}
	respondJSON(w, http.StatusOK, HealthResponse{Status: statusReady, Database: databaseConnected})
}
