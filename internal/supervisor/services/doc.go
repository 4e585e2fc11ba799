// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

/*
Package services adapts Footfall components to suture.Service.

	HTTPServerService  ListenAndServe with graceful Shutdown on cancel
	StoreMonitor       pings the visit store and reopens it when lost
	SessionCleanup     removes expired sessions in session mode

Each implements fmt.Stringer so supervisor events name the service.
*/
package services
