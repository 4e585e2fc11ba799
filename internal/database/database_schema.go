// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Timestamps are stored as UTC TIMESTAMP; TIMESTAMPTZ would pull in ICU.
const createVisitsTable = `
CREATE TABLE IF NOT EXISTS visits (
	id                VARCHAR PRIMARY KEY,
	timestamp         TIMESTAMP NOT NULL,
	has_location      BOOLEAN NOT NULL DEFAULT false,
	latitude          DOUBLE,
	longitude         DOUBLE,
	accuracy          DOUBLE,
	country           VARCHAR NOT NULL DEFAULT '',
	state             VARCHAR NOT NULL DEFAULT '',
	city              VARCHAR NOT NULL DEFAULT '',
	address           VARCHAR NOT NULL DEFAULT '',
	postal_code       VARCHAR NOT NULL DEFAULT '',
	display_name      VARCHAR NOT NULL DEFAULT '',
	user_agent        VARCHAR NOT NULL DEFAULT '',
	browser           VARCHAR NOT NULL DEFAULT '',
	browser_version   VARCHAR NOT NULL DEFAULT '',
	os                VARCHAR NOT NULL DEFAULT '',
	os_version        VARCHAR NOT NULL DEFAULT '',
	device_type       VARCHAR NOT NULL DEFAULT '',
	device_model      VARCHAR NOT NULL DEFAULT '',
	device_vendor     VARCHAR NOT NULL DEFAULT '',
	screen_resolution VARCHAR NOT NULL DEFAULT '',
	language          VARCHAR NOT NULL DEFAULT '',
	timezone          VARCHAR NOT NULL DEFAULT '',
	platform          VARCHAR NOT NULL DEFAULT '',
	ip                VARCHAR NOT NULL,
	connection_type   VARCHAR NOT NULL DEFAULT '',
	geo_country       VARCHAR NOT NULL DEFAULT '',
	geo_country_code  VARCHAR NOT NULL DEFAULT '',
	geo_city          VARCHAR NOT NULL DEFAULT '',
	session_id        VARCHAR NOT NULL
)`

// Only ip is indexed. TouchRecent updates timestamp, and DuckDB turns an
// update of an indexed column into delete plus insert.
var indexStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_visits_ip ON visits(ip)`,
}

// createSchema creates the table and indexes if they do not already exist.
func createSchema(ctx context.Context, conn *sql.DB) error {
	if _, err := conn.ExecContext(ctx, createVisitsTable); err != nil {
		return fmt.Errorf("failed to create visits table: %w", err)
	}
	for _, stmt := range indexStatements {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
