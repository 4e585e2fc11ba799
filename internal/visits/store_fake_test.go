// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package visits

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tomtom215/footfall/internal/database"
	"github.com/tomtom215/footfall/internal/models"
)

// fakeStore is an in-memory Store with the same matching and ordering
// rules as the DuckDB store.
type fakeStore struct {
	mu        sync.Mutex
	ready     bool
	records   []models.VisitRecord
	insertErr error
	listErr   error
	// touchDelay widens the check-then-insert window in race tests.
	touchDelay time.Duration
}

func newFakeStore() *fakeStore {
	return &fakeStore{ready: true}
}

func (s *fakeStore) IsReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

func (s *fakeStore) InsertVisit(_ context.Context, v *models.VisitRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return s.insertErr
	}
	s.records = append(s.records, *v)
	return nil
}

func (s *fakeStore) TouchRecent(_ context.Context, ip string, lat, lon float64, since, now time.Time) (string, bool, error) {
	if s.touchDelay > 0 {
		time.Sleep(s.touchDelay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	best := -1
	for i, r := range s.records {
		if r.Network.IP != ip || !r.Location.HasCoordinates() || r.Timestamp.Before(since) {
			continue
		}
		if !withinTolerance(*r.Location.Latitude, *r.Location.Longitude, lat, lon) {
			continue
		}
		if best < 0 || r.Timestamp.After(s.records[best].Timestamp) {
			best = i
		}
	}
	if best < 0 {
		return "", false, nil
	}
	s.records[best].Timestamp = now
	return s.records[best].ID, true, nil
}

func (s *fakeStore) ListVisits(_ context.Context, f database.VisitFilter) ([]models.VisitRecord, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, 0, s.listErr
	}

	var matched []models.VisitRecord
	for _, r := range s.sorted() {
		if matchesSearch(r, f.Search) {
			matched = append(matched, r)
		}
	}
	total := len(matched)
	if f.Offset >= total {
		return []models.VisitRecord{}, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return matched[f.Offset:end], total, nil
}

func (s *fakeStore) LatestVisits(_ context.Context, n int) ([]models.VisitRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	all := s.sorted()
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *fakeStore) sorted() []models.VisitRecord {
	out := append([]models.VisitRecord(nil), s.records...)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func matchesSearch(r models.VisitRecord, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	fields := []string{r.Device.Browser, r.Device.OS, r.Network.IP, r.SessionID}
	if r.Location != nil {
		fields = append(fields, r.Location.Country, r.Location.State, r.Location.City)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// withinTolerance mirrors the store's coordinate match.
func withinTolerance(lat1, lon1, lat2, lon2 float64) bool {
	return math.Abs(lat1-lat2) <= models.DedupTolerance && math.Abs(lon1-lon2) <= models.DedupTolerance
}
