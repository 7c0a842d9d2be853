// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

/*
Package supervisor runs the long-lived services of the directory server under
a suture v4 supervision tree.

# Layout

	"trickortreat"
	├── "storage-layer"
	│   └── PhotoGCService (badger photo backend only)
	└── "api-layer"
	    └── HTTPServerService

Each layer is its own supervisor, so a storage service that keeps failing
backs off without restarting the HTTP server.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

# Failure Handling

Failures decay over FailureDecay seconds. When the count passes
FailureThreshold the supervisor waits FailureBackoff before the next restart.
Every event is logged through the sutureslog hook, which writes to the
zerolog backed slog handler from package logging.

Service wrappers live in the services subpackage.
*/
package supervisor
