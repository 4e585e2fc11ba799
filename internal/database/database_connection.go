// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/footfall/internal/config"
)

// connectionString builds the DuckDB DSN. Extension auto-install and
// auto-load are off because the schema needs none and a blocked network
// would otherwise hang startup.
func connectionString(cfg *config.DatabaseConfig) string {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}
	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "512MB"
	}
	return fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, numThreads, maxMemory)
}

// openConnection opens, pools and pings a new DuckDB handle.
func openConnection(ctx context.Context, cfg *config.DatabaseConfig) (*sql.DB, error) {
	if cfg.Path != ":memory:" {
		// 0750 per gosec G301
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	conn, err := sql.Open("duckdb", connectionString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	configureConnectionPool(conn, cfg.Path)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return conn, nil
}

// configureConnectionPool sets pool parameters. An in-memory database exists
// per connection, so it is pinned to a single one.
func configureConnectionPool(conn *sql.DB, path string) {
	if path == ":memory:" {
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
		conn.SetConnMaxLifetime(0)
		return
	}
	conn.SetMaxOpenConns(runtime.NumCPU())
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(time.Hour)
	conn.SetConnMaxIdleTime(5 * time.Minute)
}

// isConnectionError reports whether err means the handle is unusable, as
// opposed to a failed query.
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, marker := range []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"bad connection",
		"database is closed",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
