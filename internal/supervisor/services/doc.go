// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

/*
Package services provides suture.Service wrappers for Storelens components.

Each wrapper translates a component's lifecycle (ListenAndServe, RunWithContext,
a polling loop) into suture's context-aware Serve method and names itself
through fmt.Stringer for supervisor log messages.

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Configurable shutdown timeout for draining connections

WebSocket Hub (WebSocketHubService):
  - Wraps websocket.Hub; closes clients on shutdown

Dataset Watcher (DatasetWatcherService):
  - Re-checks the dataset file on an interval so edits are loaded
    before the next request arrives
  - Load failures are logged and retried on the next tick

# Usage

	tree.AddDataService(services.NewDatasetWatcherService(manager, 30*time.Second))
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
*/
package services
