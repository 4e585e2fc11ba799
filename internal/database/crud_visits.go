// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/footfall/internal/models"
)

const visitColumns = `id, timestamp, has_location, latitude, longitude, accuracy,
	country, state, city, address, postal_code, display_name,
	user_agent, browser, browser_version, os, os_version, device_type, device_model, device_vendor,
	screen_resolution, language, timezone, platform,
	ip, connection_type, geo_country, geo_country_code, geo_city,
	session_id`

// InsertVisit writes a new record. The caller assigns ID and Timestamp.
func (db *DB) InsertVisit(ctx context.Context, v *models.VisitRecord) error {
	return db.withConn(ctx, "insert", func(ctx context.Context, conn *sql.DB) error {
		_, err := conn.ExecContext(ctx,
			`INSERT INTO visits (`+visitColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			visitArgs(v)...)
		if err != nil {
			return fmt.Errorf("failed to insert visit: %w", err)
		}
		return nil
	})
}

// TouchRecent finds the newest record from ip whose coordinates are within
// models.DedupTolerance of (lat, lon) and whose timestamp is not before
// since, and sets its timestamp to now. The lookup and the bump are one
// statement, so two callers cannot both see the same stale timestamp.
func (db *DB) TouchRecent(ctx context.Context, ip string, lat, lon float64, since, now time.Time) (string, bool, error) {
	var (
		id    string
		found bool
	)
	err := db.withConn(ctx, "touch_recent", func(ctx context.Context, conn *sql.DB) error {
		err := conn.QueryRowContext(ctx, `
			UPDATE visits SET timestamp = ?
			WHERE id = (
				SELECT id FROM visits
				WHERE ip = ?
				  AND has_location
				  AND latitude IS NOT NULL AND longitude IS NOT NULL
				  AND abs(latitude - ?) <= ?
				  AND abs(longitude - ?) <= ?
				  AND timestamp >= ?
				ORDER BY timestamp DESC, id DESC
				LIMIT 1
			)
			RETURNING id`,
			now.UTC(), ip, lat, models.DedupTolerance, lon, models.DedupTolerance, since.UTC(),
		).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		found = err == nil
		return err
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to touch recent visit: %w", err)
	}
	return id, found, nil
}

// ListVisits returns one page of visits matching f and the total number of
// matches.
func (db *DB) ListVisits(ctx context.Context, f VisitFilter) ([]models.VisitRecord, int, error) {
	where, args := buildSearchClause(f.Search)

	var (
		total  int
		visits []models.VisitRecord
	)
	err := db.withConn(ctx, "list", func(ctx context.Context, conn *sql.DB) error {
		if err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM visits`+where, args...).Scan(&total); err != nil {
			return fmt.Errorf("failed to count visits: %w", err)
		}
		if total == 0 || f.Offset >= total {
			return nil
		}

		pageArgs := append(append([]interface{}{}, args...), f.Limit, f.Offset)
		var err error
		visits, err = queryVisits(ctx, conn,
			`SELECT `+visitColumns+` FROM visits`+where+` ORDER BY timestamp DESC, id DESC LIMIT ? OFFSET ?`,
			pageArgs...)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	if visits == nil {
		visits = []models.VisitRecord{}
	}
	return visits, total, nil
}

// LatestVisits returns the n newest visits.
func (db *DB) LatestVisits(ctx context.Context, n int) ([]models.VisitRecord, error) {
	var visits []models.VisitRecord
	err := db.withConn(ctx, "latest", func(ctx context.Context, conn *sql.DB) error {
		var err error
		visits, err = queryVisits(ctx, conn,
			`SELECT `+visitColumns+` FROM visits ORDER BY timestamp DESC, id DESC LIMIT ?`, n)
		return err
	})
	if err != nil {
		return nil, err
	}
	if visits == nil {
		visits = []models.VisitRecord{}
	}
	return visits, nil
}

func queryVisits(ctx context.Context, conn *sql.DB, query string, args ...interface{}) ([]models.VisitRecord, error) {
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query visits: %w", err)
	}
	defer closeQuietly(rows)

	var visits []models.VisitRecord
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate visits: %w", err)
	}
	return visits, nil
}

func visitArgs(v *models.VisitRecord) []interface{} {
	var (
		hasLocation        bool
		lat, lon, accuracy interface{}
		loc                models.Location
	)
	if v.Location != nil {
		hasLocation = true
		loc = *v.Location
		lat = floatOrNil(loc.Latitude)
		lon = floatOrNil(loc.Longitude)
		accuracy = floatOrNil(loc.Accuracy)
	}

	var geo models.NetworkGeo
	if v.Network.Geo != nil {
		geo = *v.Network.Geo
	}

	d := v.Device
	return []interface{}{
		v.ID, v.Timestamp.UTC(), hasLocation, lat, lon, accuracy,
		loc.Country, loc.State, loc.City, loc.Address, loc.PostalCode, loc.DisplayName,
		d.UserAgent, d.Browser, d.BrowserVersion, d.OS, d.OSVersion, d.DeviceType, d.DeviceModel, d.DeviceVendor,
		d.ScreenResolution, d.Language, d.Timezone, d.Platform,
		v.Network.IP, v.Network.ConnectionType, geo.Country, geo.CountryCode, geo.City,
		v.SessionID,
	}
}

func scanVisit(rows *sql.Rows) (models.VisitRecord, error) {
	var (
		v                  models.VisitRecord
		hasLocation        bool
		lat, lon, accuracy sql.NullFloat64
		loc                models.Location
		geo                models.NetworkGeo
	)
	err := rows.Scan(
		&v.ID, &v.Timestamp, &hasLocation, &lat, &lon, &accuracy,
		&loc.Country, &loc.State, &loc.City, &loc.Address, &loc.PostalCode, &loc.DisplayName,
		&v.Device.UserAgent, &v.Device.Browser, &v.Device.BrowserVersion, &v.Device.OS, &v.Device.OSVersion,
		&v.Device.DeviceType, &v.Device.DeviceModel, &v.Device.DeviceVendor,
		&v.Device.ScreenResolution, &v.Device.Language, &v.Device.Timezone, &v.Device.Platform,
		&v.Network.IP, &v.Network.ConnectionType, &geo.Country, &geo.CountryCode, &geo.City,
		&v.SessionID,
	)
	if err != nil {
		return v, fmt.Errorf("failed to scan visit: %w", err)
	}

	v.Timestamp = v.Timestamp.UTC()
	if hasLocation {
		loc.Latitude = nullFloatPtr(lat)
		loc.Longitude = nullFloatPtr(lon)
		loc.Accuracy = nullFloatPtr(accuracy)
		v.Location = &loc
	}
	if geo != (models.NetworkGeo{}) {
		v.Network.Geo = &geo
	}
	return v, nil
}

func floatOrNil(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

func nullFloatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	f := n.Float64
	return &f
}
