// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

// Package logging provides centralized zerolog-based logging for Footfall.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Msg("Server starting")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Geocode lookup failed")
//
// # Configuration
//
// Environment Variables (read by the config package):
//   - LOG_LEVEL: debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller info (default: false)
//
// Always terminate log chains with .Msg() or .Send(), otherwise nothing is emitted.
package logging
