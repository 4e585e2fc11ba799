// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package visits

import (
	"context"
	"time"

	"github.com/tomtom215/footfall/internal/database"
	"github.com/tomtom215/footfall/internal/models"
)

// Store is the persistence the services need. *database.DB implements it.
type Store interface {
	IsReady() bool
	InsertVisit(ctx context.Context, v *models.VisitRecord) error
	TouchRecent(ctx context.Context, ip string, lat, lon float64, since, now time.Time) (string, bool, error)
	ListVisits(ctx context.Context, f database.VisitFilter) ([]models.VisitRecord, int, error)
	LatestVisits(ctx context.Context, n int) ([]models.VisitRecord, error)
}

var _ Store = (*database.DB)(nil)
