// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

// Package database is the DuckDB-backed visit store.
//
// # Overview
//
// A single table, visits, holds one row per VisitRecord with nested
// location, device and network fields flattened into columns. The store
// exposes the handful of primitives the ingestion and listing paths need:
//
//   - Insert: write a new record
//   - TouchRecent: find the newest nearby record from the same IP inside a
//     window and bump its timestamp in one statement
//   - List: search and page records, newest first
//   - Latest: the N newest records without paging
//
// # Readiness
//
// The handle is usable before the database is. New returns a store that
// reports IsReady() == false until Connect succeeds, and Check is run
// periodically by a supervised monitor to notice a lost connection and
// reopen it. Callers check IsReady and degrade instead of failing.
//
// # Files
//
//   - database.go: lifecycle (New, Connect, Check, Close) and readiness
//   - database_connection.go: connection string, pool settings, error classification
//   - database_schema.go: table and index creation
//   - crud_visits.go: the visit primitives
//   - filter.go: search pattern escaping and list filter normalisation
//   - errors.go: close helpers and sentinel errors
//
// # Testing
//
// Tests open ":memory:" databases and hold testDBSemaphore for their whole
// lifetime so only one DuckDB connection is active at a time.
package database
