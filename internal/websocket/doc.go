// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

/*
Package websocket pushes dataset change notifications to open dashboards.

A Hub tracks connected clients and fans messages out to them; each Client
runs a read pump and a write pump over a gorilla/websocket connection.

# Messages

All messages are JSON objects of the form {"type": ..., "data": ...}:

	{"type": "dataset_reloaded", "data": {"version": 3, "rows": 112650, ...}}

Clients may send {"type": "ping"} and receive {"type": "pong"}.

# Ordering

Broadcasts reach clients in connection order. A client whose send buffer is
full is disconnected rather than allowed to stall the hub.
*/
package websocket
