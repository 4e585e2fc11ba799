// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package api

import (
	"context"

	"github.com/tomtom215/footfall/internal/auth"
	"github.com/tomtom215/footfall/internal/logging"
	"github.com/tomtom215/footfall/internal/middleware"
	"github.com/tomtom215/footfall/internal/models"
	"github.com/tomtom215/footfall/internal/visits"
)

// VisitRecorder ingests a visit report.
type VisitRecorder interface {
	Record(ctx context.Context, rep visits.Report) (visits.Result, error)
}

// VisitLister serves the admin listing.
type VisitLister interface {
	List(ctx context.Context, p visits.ListParams) (visits.ListResult, error)
	Latest(ctx context.Context) ([]models.VisitRecord, error)
}

// ReadinessChecker reports whether the visit store is usable.
type ReadinessChecker interface {
	IsReady() bool
}

// Handler holds the dependencies of every route.
//
// Handler methods are split across files:
//   - handlers_auth.go: login, logout, auth-status
//   - handlers_visits.go: track, data, simple-data
//   - handlers_health.go: liveness and readiness
type Handler struct {
	recorder VisitRecorder
	query    VisitLister
	store    ReadinessChecker
	guard    auth.Guard
	clientIP *middleware.ClientIPResolver
	security *logging.SecurityLogger
}

// HandlerDeps lists what NewHandler needs. All fields are required except
// SecurityLogger, which defaults to one on the global logger.
type HandlerDeps struct {
	Recorder       VisitRecorder
	Query          VisitLister
	Store          ReadinessChecker
	Guard          auth.Guard
	ClientIP       *middleware.ClientIPResolver
	SecurityLogger *logging.SecurityLogger
}

// NewHandler creates the route handlers.
func NewHandler(deps HandlerDeps) *Handler {
	security := deps.SecurityLogger
	if security == nil {
		security = logging.NewSecurityLogger()
	}
	clientIP := deps.ClientIP
	if clientIP == nil {
		clientIP, _ = middleware.NewClientIPResolver(true, nil)
	}
	return &Handler{
		recorder: deps.Recorder,
		query:    deps.Query,
		store:    deps.Store,
		guard:    deps.Guard,
		clientIP: clientIP,
		security: security,
	}
}
