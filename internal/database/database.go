// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/footfall/internal/config"
	"github.com/tomtom215/footfall/internal/logging"
	"github.com/tomtom215/footfall/internal/metrics"
)

// DB is the visit store handle. It is safe for concurrent use and may be
// shared before the underlying database is reachable.
type DB struct {
	cfg *config.DatabaseConfig

	// connMu guards conn. Data methods hold the read lock for the duration
	// of a call so Connect and Close never swap the handle under them.
	connMu sync.RWMutex
	conn   *sql.DB

	ready atomic.Bool

	// reconnectMu serializes Connect attempts.
	reconnectMu sync.Mutex
}

// New returns an unconnected store. Call Connect to open the database.
func New(cfg *config.DatabaseConfig) *DB {
	metrics.SetStoreReady(false)
	return &DB{cfg: cfg}
}

// Open is New followed by Connect.
func Open(ctx context.Context, cfg *config.DatabaseConfig) (*DB, error) {
	db := New(cfg)
	if err := db.Connect(ctx); err != nil {
		return db, err
	}
	return db, nil
}

// IsReady reports whether the store is connected and its schema exists.
func (db *DB) IsReady() bool {
	return db.ready.Load()
}

// Connect opens the database, creates the schema and marks the store ready.
// It is a no-op when the store is already ready.
func (db *DB) Connect(ctx context.Context) error {
	db.reconnectMu.Lock()
	defer db.reconnectMu.Unlock()

	if db.IsReady() {
		return nil
	}

	// A file database takes a process lock, so the stale handle must be
	// released before a new one can open the same path.
	db.connMu.Lock()
	if db.conn != nil {
		closeWithLog(db.conn, "stale database connection")
		db.conn = nil
	}
	db.connMu.Unlock()

	conn, err := openConnection(ctx, db.cfg)
	if err != nil {
		metrics.RecordStoreReconnect(err)
		return err
	}

	schemaCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := createSchema(schemaCtx, conn); err != nil {
		closeQuietly(conn)
		metrics.RecordStoreReconnect(err)
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	db.connMu.Lock()
	db.conn = conn
	db.connMu.Unlock()

	db.setReady(true)
	metrics.RecordStoreReconnect(nil)
	logging.Info().Str("path", db.cfg.Path).Msg("Visit store connected")
	return nil
}

// Ping checks that the connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	db.connMu.RLock()
	defer db.connMu.RUnlock()
	if db.conn == nil {
		return ErrNotReady
	}
	return db.conn.PingContext(ctx)
}

// Check pings the database and reconnects when the ping fails. The store
// monitor calls it on every tick.
func (db *DB) Check(ctx context.Context) error {
	if err := db.Ping(ctx); err == nil {
		db.setReady(true)
		return nil
	} else if db.IsReady() {
		logging.Warn().Err(err).Msg("Visit store ping failed, marking not ready")
		db.setReady(false)
	}
	return db.Connect(ctx)
}

// Close checkpoints and closes the database. The store reports not ready
// afterwards.
func (db *DB) Close() error {
	db.setReady(false)

	db.connMu.Lock()
	defer db.connMu.Unlock()
	if db.conn == nil {
		return nil
	}

	if db.cfg.Path != ":memory:" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
			logging.Warn().Err(err).Msg("Failed to checkpoint database before close")
		}
		cancel()
	}

	err := db.conn.Close()
	db.conn = nil
	return err
}

func (db *DB) setReady(ready bool) {
	db.ready.Store(ready)
	metrics.SetStoreReady(ready)
}

// withConn runs fn with the live connection under the configured query
// timeout. A connection-level failure flips the store to not ready so the
// monitor reopens it.
func (db *DB) withConn(ctx context.Context, operation string, fn func(ctx context.Context, conn *sql.DB) error) error {
	if !db.IsReady() {
		return ErrNotReady
	}

	db.connMu.RLock()
	defer db.connMu.RUnlock()
	if db.conn == nil {
		return ErrNotReady
	}

	if db.cfg.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, db.cfg.QueryTimeout)
		defer cancel()
	}

	start := time.Now()
	err := fn(ctx, db.conn)
	metrics.RecordDBQuery(operation, "visits", time.Since(start), err)

	if isConnectionError(err) {
		logging.Warn().Err(err).Str("operation", operation).Msg("Visit store connection lost")
		db.setReady(false)
	}
	return err
}
