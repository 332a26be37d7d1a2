// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

// Package logging provides centralized zerolog-based logging for Storelens.
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("path", path).Msg("dataset loaded")
//	logging.Ctx(ctx).Warn().Err(err).Msg("view failed")
//
// Request IDs travel in the request context and are added to every line
// written through Ctx. SlogHandler bridges log/slog callers (the suture event
// hook) into the same zerolog stream.
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event is
// never written.
package logging
