// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package services

import (
	"context"
	"time"

	"github.com/tomtom215/footfall/internal/logging"
	"github.com/tomtom215/footfall/internal/metrics"
)

// ExpiringStore removes entries past their expiry.
type ExpiringStore interface {
	CleanupExpired(ctx context.Context) (int, error)
}

// SessionCleanup periodically purges expired sessions. Expired sessions
// are already rejected on lookup; this only reclaims their space.
type SessionCleanup struct {
	store    ExpiringStore
	interval time.Duration
}

// NewSessionCleanup creates the service. A non-positive interval means 15m.
func NewSessionCleanup(store ExpiringStore, interval time.Duration) *SessionCleanup {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &SessionCleanup{store: store, interval: interval}
}

// Serve implements suture.Service.
func (s *SessionCleanup) Serve(ctx context.Context) error {
	logger := logging.WithComponent("session-cleanup")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		removed, err := s.store.CleanupExpired(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("Session cleanup failed")
			continue
		}
		if removed > 0 {
			metrics.SessionsCleaned.Add(float64(removed))
			logger.Debug().Int("removed", removed).Msg("Expired sessions removed")
		}
	}
}

// String implements fmt.Stringer.
func (s *SessionCleanup) String() string {
	return "session-cleanup"
}
