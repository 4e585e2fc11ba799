// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package services

import (
	"context"
	"time"

	"github.com/tomtom215/footfall/internal/logging"
)

// CheckableStore is a store that can verify, and if needed restore, its
// own connection.
type CheckableStore interface {
	IsReady() bool
	Check(ctx context.Context) error
}

// StoreMonitor calls Check on a fixed interval. The first check runs
// immediately so a store that failed to open at startup is retried without
// waiting a full interval.
type StoreMonitor struct {
	store    CheckableStore
	interval time.Duration
	timeout  time.Duration
}

// NewStoreMonitor creates a monitor. A non-positive interval means 30s.
func NewStoreMonitor(store CheckableStore, interval time.Duration) *StoreMonitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &StoreMonitor{store: store, interval: interval, timeout: 30 * time.Second}
}

// Serve implements suture.Service. Check failures are logged and retried
// on the next tick; they never stop the service.
func (m *StoreMonitor) Serve(ctx context.Context) error {
	logger := logging.WithComponent("store-monitor")
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		wasReady := m.store.IsReady()

		checkCtx, cancel := context.WithTimeout(ctx, m.timeout)
		err := m.store.Check(checkCtx)
		cancel()

		switch {
		case err != nil && ctx.Err() == nil:
			logger.Warn().Err(err).Dur("retry_in", m.interval).Msg("Visit store unavailable")
		case err == nil && !wasReady:
			logger.Info().Msg("Visit store available")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// String implements fmt.Stringer.
func (m *StoreMonitor) String() string {
	return "store-monitor"
}
