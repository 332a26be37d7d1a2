// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

/*
Package supervisor provides process supervision for Storelens using suture v4.

The server's long-running components run as suture services in a three-layer
tree so that a crash in one layer restarts only that layer:

	storelens (root)
	├── data-layer
	│   └── dataset-watcher
	├── messaging-layer
	│   └── websocket-hub
	└── api-layer
	    └── http-server

Supervisor events (service failures, backoff, restarts) are logged through
sutureslog, which writes to the slog adapter in internal/logging so they land
in the zerolog stream next to request logs.

# Usage

	logger := logging.NewSlogLogger()
	tree, err := supervisor.NewSupervisorTree(logger, supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}
	tree.AddDataService(services.NewDatasetWatcherService(manager, interval))
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, timeout))

	errCh := tree.ServeBackground(ctx)

# Failure Policy

Each supervisor tolerates FailureThreshold failures (decaying over
FailureDecay seconds) before backing off for FailureBackoff. Shutdown waits at
most ShutdownTimeout per service; services that outlive it are listed by
UnstoppedServiceReport.
*/
package supervisor
