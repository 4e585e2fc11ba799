// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/footfall/internal/api"
	"github.com/tomtom215/footfall/internal/auth"
	"github.com/tomtom215/footfall/internal/config"
	"github.com/tomtom215/footfall/internal/database"
	"github.com/tomtom215/footfall/internal/geocode"
	"github.com/tomtom215/footfall/internal/logging"
	"github.com/tomtom215/footfall/internal/middleware"
	"github.com/tomtom215/footfall/internal/supervisor"
	"github.com/tomtom215/footfall/internal/supervisor/services"
	"github.com/tomtom215/footfall/internal/visits"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Caller:      cfg.Logging.Caller,
		Environment: cfg.Server.Environment,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("auth_mode", cfg.Security.AuthMode).
		Bool("geocode_enabled", cfg.Geocode.Enabled).
		Msg("Starting Footfall")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The server starts even when the store is down; the store monitor
	// keeps retrying.
	db := database.New(&cfg.Database)
	if err := db.Connect(ctx); err != nil {
		logging.Warn().Err(err).Msg("Visit store unavailable at startup, visits will be logged only")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing visit store")
		}
	}()

	recorderOpts := buildEnrichment(cfg)
	recorder := visits.NewRecorder(db, recorderOpts.options...)
	if recorderOpts.geoip != nil {
		defer func() {
			if err := recorderOpts.geoip.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing GeoIP database")
			}
		}()
	}
	query := visits.NewQuery(db, cfg.API.DefaultPageSize, cfg.API.MaxPageSize)

	checker, err := auth.NewCredentialChecker(cfg.Security.AdminUsername, cfg.Security.AdminPassword)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to configure admin credentials")
	}
	guard, guardCloser, err := auth.NewGuard(&cfg.Security, checker)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize authentication")
	}
	defer func() {
		if err := guardCloser.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing session store")
		}
	}()
	logging.Info().Str("mode", string(guard.Mode())).Msg("Authentication initialized")

	clientIP, err := middleware.NewClientIPResolver(cfg.Security.TrustForwardedHeaders, cfg.Security.TrustedProxies)
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid trusted proxy list")
	}

	handler := api.NewHandler(api.HandlerDeps{
		Recorder:       recorder,
		Query:          query,
		Store:          db,
		Guard:          guard,
		ClientIP:       clientIP,
		SecurityLogger: logging.NewSecurityLogger(),
	})

	corsCfg := api.DefaultCORSConfig()
	if len(cfg.Security.CORSOrigins) > 0 {
		corsCfg.AllowedOrigins = cfg.Security.CORSOrigins
	}
	router := api.NewRouter(handler, corsCfg)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  15 * time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddStoreService(services.NewStoreMonitor(db, cfg.Database.ReconnectInterval))
	if sessions, ok := guard.(*auth.SessionGuard); ok {
		tree.AddMaintenanceService(services.NewSessionCleanup(sessions.Store(), cfg.Security.SessionCleanupInterval))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Footfall stopped")
}

type enrichment struct {
	options []visits.RecorderOption
	geoip   *geocode.GeoIPLocator
}

// buildEnrichment wires the optional reverse geocoder and IP database.
// A GeoIP database that fails to open is logged and skipped.
func buildEnrichment(cfg *config.Config) enrichment {
	var e enrichment

	if cfg.Geocode.Enabled {
		nominatim := geocode.NewNominatimClient(&cfg.Geocode)
		var geocoder geocode.ReverseGeocoder = geocode.NewBreakerGeocoder(nominatim, geocode.DefaultBreakerSettings())
		if cfg.Geocode.CacheSize > 0 {
			geocoder = geocode.NewCachingGeocoder(geocoder, cfg.Geocode.CacheSize, cfg.Geocode.CacheTTL)
		}
		e.options = append(e.options, visits.WithGeocoder(geocoder, cfg.Geocode.Timeout))
		logging.Info().Str("url", cfg.Geocode.URL).Msg("Reverse geocoding enabled")
	}

	if path := cfg.Geocode.GeoIPDatabasePath; path != "" {
		locator, err := geocode.OpenGeoIP(path)
		if err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("GeoIP database unavailable, IP enrichment disabled")
		} else {
			e.geoip = locator
			e.options = append(e.options, visits.WithIPLocator(locator))
		}
	}

	return e
}
