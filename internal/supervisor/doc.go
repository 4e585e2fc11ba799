// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

/*
Package supervisor runs Footfall's long-lived goroutines under a suture v4
tree so that a crashed service is restarted instead of taking the process
down.

The tree has three layers:

	footfall
	├── store-layer        visit store reconnect monitor
	├── maintenance-layer  expired session cleanup
	└── api-layer          HTTP server

A failure in one layer is restarted within that layer. The HTTP server keeps
accepting visits while the store monitor is retrying a lost database; the
Recorder degrades to log-only until the store reports ready again.

Supervisor events go through sutureslog into the zerolog stream:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddStoreService(services.NewStoreMonitor(db, cfg.Database.ReconnectInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err = tree.Serve(ctx)
*/
package supervisor
