// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package visits

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/footfall/internal/database"
	"github.com/tomtom215/footfall/internal/geocode"
	"github.com/tomtom215/footfall/internal/logging"
	"github.com/tomtom215/footfall/internal/metrics"
	"github.com/tomtom215/footfall/internal/models"
	"github.com/tomtom215/footfall/internal/useragent"
)

// Report is one incoming visit as seen by the server. Device carries only
// the client's self-reported fields; the user-agent derived fields are
// filled in by the Recorder.
type Report struct {
	Location       *models.Location
	Device         models.Device
	SessionID      string
	UserAgent      string
	IP             string
	ConnectionType string
}

// Result describes what Record did.
//
//	Created   a new record was written
//	Duplicate an existing record had its timestamp bumped
//	Persisted the outcome reached the store (false in degraded mode)
type Result struct {
	Created   bool
	Duplicate bool
	RecordID  string
	Persisted bool
}

// Visit outcomes as reported to metrics.
const (
	outcomeCreated   = "created"
	outcomeDuplicate = "duplicate"
	outcomeLogged    = "logged"
	outcomeError     = "error"
	outcomeInvalid   = "invalid"
)

// Recorder is the ingestion pipeline.
//
// Deduplication is check-then-write: TouchRecent looks for a nearby recent
// record and, finding none, the Recorder geocodes and inserts. Two reports
// from the same IP arriving together could both miss and both insert. Within
// one process that race is closed by a per-IP lock held from the check until
// the insert completes. Separate processes sharing one database file can
// still both insert; the listing tolerates the extra row.
type Recorder struct {
	store          Store
	geocoder       geocode.ReverseGeocoder
	ipLocator      geocode.IPLocator
	geocodeTimeout time.Duration
	now            func() time.Time
	newID          func() string
	locks          *ipLocks
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithGeocoder enables reverse geocoding of new visits, bounded by timeout.
func WithGeocoder(g geocode.ReverseGeocoder, timeout time.Duration) RecorderOption {
	return func(r *Recorder) {
		r.geocoder = g
		r.geocodeTimeout = timeout
	}
}

// WithIPLocator enables IP-database enrichment of new visits.
func WithIPLocator(l geocode.IPLocator) RecorderOption {
	return func(r *Recorder) {
		r.ipLocator = l
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) RecorderOption {
	return func(r *Recorder) {
		r.now = now
	}
}

// NewRecorder creates a Recorder over store.
func NewRecorder(store Store, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		store:          store,
		geocodeTimeout: 5 * time.Second,
		now:            time.Now,
		newID:          newRecordID,
		locks:          newIPLocks(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record ingests one report.
func (r *Recorder) Record(ctx context.Context, rep Report) (Result, error) {
	if err := validateReport(&rep); err != nil {
		metrics.RecordVisit(outcomeInvalid)
		return Result{}, err
	}

	record := r.buildRecord(&rep)
	logger := logging.Ctx(ctx)

	if !r.store.IsReady() {
		r.enrich(ctx, record)
		r.logUnpersisted(ctx, record)
		return Result{RecordID: record.ID}, nil
	}

	if record.Location.HasCoordinates() {
		lock := r.locks.acquire(record.Network.IP)
		defer r.locks.release(record.Network.IP, lock)

		now := r.now()
		id, found, err := r.store.TouchRecent(ctx, record.Network.IP,
			*record.Location.Latitude, *record.Location.Longitude,
			now.Add(-models.DedupWindow), now)
		if err != nil {
			return r.storeFailure(ctx, record, err)
		}
		if found {
			logger.Debug().Str("visit_id", id).Str("ip", record.Network.IP).Msg("Repeat visit, timestamp updated")
			metrics.RecordVisit(outcomeDuplicate)
			return Result{Duplicate: true, RecordID: id, Persisted: true}, nil
		}
	}

	r.enrich(ctx, record)
	record.Timestamp = r.now()

	if err := r.store.InsertVisit(ctx, record); err != nil {
		return r.storeFailure(ctx, record, err)
	}

	logger.Info().Str("visit_id", record.ID).Str("ip", record.Network.IP).Msg("Visit recorded")
	metrics.RecordVisit(outcomeCreated)
	return Result{Created: true, RecordID: record.ID, Persisted: true}, nil
}

// storeFailure handles an error from the store. A store that went away
// between the readiness check and the call degrades like one that was never
// ready; anything else is a dependency failure.
func (r *Recorder) storeFailure(ctx context.Context, record *models.VisitRecord, err error) (Result, error) {
	if errors.Is(err, database.ErrNotReady) {
		r.logUnpersisted(ctx, record)
		return Result{RecordID: record.ID}, nil
	}
	logging.Ctx(ctx).Error().Err(err).Str("ip", record.Network.IP).Msg("Failed to store visit")
	metrics.RecordVisit(outcomeError)
	return Result{}, fmt.Errorf("%w: %w", ErrDependency, err)
}

func (r *Recorder) logUnpersisted(ctx context.Context, record *models.VisitRecord) {
	logging.Ctx(ctx).Warn().Interface("visit", record).Msg("visit logged without persistence")
	metrics.RecordVisit(outcomeLogged)
}

func (r *Recorder) buildRecord(rep *Report) *models.VisitRecord {
	device := rep.Device
	device.UserAgent = rep.UserAgent
	useragent.Parse(rep.UserAgent).ApplyTo(&device)
	for _, field := range []*string{&device.ScreenResolution, &device.Language, &device.Timezone, &device.Platform} {
		*field = orUnknown(*field)
	}

	ip := strings.TrimSpace(rep.IP)
	if ip == "" {
		ip = models.LoopbackIP
	}
	sessionID := strings.TrimSpace(rep.SessionID)
	if sessionID == "" {
		sessionID = models.AnonymousSession
	}

	var loc *models.Location
	if rep.Location != nil {
		l := models.Location{
			Latitude:  rep.Location.Latitude,
			Longitude: rep.Location.Longitude,
			Accuracy:  rep.Location.Accuracy,
		}
		loc = &l
	}

	return &models.VisitRecord{
		ID:        r.newID(),
		Timestamp: r.now(),
		Location:  loc,
		Device:    device,
		Network: models.Network{
			IP:             ip,
			ConnectionType: orUnknown(rep.ConnectionType),
		},
		SessionID: sessionID,
	}
}

// orUnknown maps a blank self-reported value to models.Unknown.
func orUnknown(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return models.Unknown
	}
	return v
}

// enrich adds reverse geocoding and IP location. Failures leave the fields
// empty and are never returned.
func (r *Recorder) enrich(ctx context.Context, record *models.VisitRecord) {
	logger := logging.Ctx(ctx)

	if r.geocoder != nil && record.Location.HasCoordinates() {
		geoCtx, cancel := context.WithTimeout(ctx, r.geocodeTimeout)
		place, err := r.geocoder.Reverse(geoCtx, *record.Location.Latitude, *record.Location.Longitude)
		cancel()
		if err != nil {
			logger.Debug().Err(err).Msg("Reverse geocoding skipped")
		} else {
			record.Location.ApplyPlace(place)
		}
	}

	if r.ipLocator != nil {
		geo, err := r.ipLocator.Locate(record.Network.IP)
		if err != nil {
			logger.Debug().Err(err).Str("ip", record.Network.IP).Msg("IP location skipped")
		} else {
			record.Network.Geo = geo
		}
	}
}

// validateReport rejects coordinates outside the valid ranges.
func validateReport(rep *Report) error {
	if rep.Location == nil {
		return nil
	}
	if lat := rep.Location.Latitude; lat != nil && (*lat < -90 || *lat > 90) {
		return fmt.Errorf("%w: latitude %v out of range", ErrValidation, *lat)
	}
	if lon := rep.Location.Longitude; lon != nil && (*lon < -180 || *lon > 180) {
		return fmt.Errorf("%w: longitude %v out of range", ErrValidation, *lon)
	}
	return nil
}

// newRecordID returns a UUIDv7 so IDs sort by creation time.
func newRecordID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
