// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

/*
Package models defines data structures shared across Storelens.

Key Components:

  - OrderRow: one line of the order dataset, as loaded from CSV
  - CustomerRFM: one scored customer produced by the RFM scorer
  - RFMView, ProductView, CustomerView: render-ready view results
  - APIResponse: standardized API response wrapper

Models carry JSON tags only; computation lives in the rfm, database and views
packages.
*/
package models
