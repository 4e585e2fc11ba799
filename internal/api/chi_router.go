// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/footfall/internal/auth"
	"github.com/tomtom215/footfall/internal/middleware"
)

// NewRouter builds the chi router for h.
func NewRouter(h *Handler, corsCfg CORSConfig) http.Handler {
	r := chi.NewRouter()

	// Applied to every route, in order.
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.Recoverer)
	r.Use(corsMiddleware(corsCfg))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))
	r.Use(chimiddleware.Compress(5, "application/json"))

	r.Get("/health/live", h.HealthLive)
	r.Get("/health/ready", h.HealthReady)
	r.Handle("/metrics", promhttp.Handler())

	// The same application routes are served at the root and under /api.
	r.Group(h.mountRoutes)
	r.Route("/api", h.mountRoutes)

	return r
}

func (h *Handler) mountRoutes(r chi.Router) {
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/auth-status", h.AuthStatus)
	r.Post(trackPath, h.Track)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(h.guard))
		r.Get("/data", h.Data)
		r.Get("/simple-data", h.SimpleData)
	})
}
