// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package visits

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/footfall/internal/database"
	"github.com/tomtom215/footfall/internal/logging"
	"github.com/tomtom215/footfall/internal/models"
)

// LatestLimit is the number of records returned by Latest.
const LatestLimit = 50

// ListParams selects a page. Page and Limit below 1 fall back to 1 and the
// default page size.
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

// ListResult is one page of visits plus paging metadata.
type ListResult struct {
	Data       []models.VisitRecord
	Page       int
	TotalPages int
	Total      int
	HasNext    bool
	HasPrev    bool
}

// Query serves the admin listing.
type Query struct {
	store        Store
	defaultLimit int
	maxLimit     int
}

// NewQuery creates a Query. defaultLimit applies when the caller gives
// none and maxLimit caps what the caller may ask for.
func NewQuery(store Store, defaultLimit, maxLimit int) *Query {
	if defaultLimit < 1 {
		defaultLimit = 10
	}
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}
	return &Query{store: store, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// List returns the requested page, newest first. Ties on timestamp are
// broken by ID, which is time ordered.
func (q *Query) List(ctx context.Context, p ListParams) (ListResult, error) {
	page, limit := q.normalize(p)

	if !q.store.IsReady() {
		return emptyResult(), nil
	}

	data, total, err := q.store.ListVisits(ctx, database.VisitFilter{
		Search: p.Search,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if errors.Is(err, database.ErrNotReady) {
		return emptyResult(), nil
	}
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Failed to list visits")
		return ListResult{}, fmt.Errorf("%w: %w", ErrDependency, err)
	}

	totalPages := (total + limit - 1) / limit
	return ListResult{
		Data:       data,
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}, nil
}

// Latest returns the newest LatestLimit visits without paging.
func (q *Query) Latest(ctx context.Context) ([]models.VisitRecord, error) {
	if !q.store.IsReady() {
		return []models.VisitRecord{}, nil
	}
	data, err := q.store.LatestVisits(ctx, LatestLimit)
	if errors.Is(err, database.ErrNotReady) {
		return []models.VisitRecord{}, nil
	}
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Failed to fetch latest visits")
		return nil, fmt.Errorf("%w: %w", ErrDependency, err)
	}
	return data, nil
}

func (q *Query) normalize(p ListParams) (page, limit int) {
	page = p.Page
	if page < 1 {
		page = 1
	}
	limit = p.Limit
	if limit < 1 {
		limit = q.defaultLimit
	}
	if limit > q.maxLimit {
		limit = q.maxLimit
	}
	return page, limit
}

func emptyResult() ListResult {
	return ListResult{Data: []models.VisitRecord{}, Page: 1}
}
