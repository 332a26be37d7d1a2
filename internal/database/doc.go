// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

/*
Package database provides DuckDB storage and analytics queries for Storelens.

The order dataset is ingested wholesale from CSV with DuckDB's read_csv into a
single "orders" table. Every column is loaded as VARCHAR so that malformed
cells reach the RFM scorer intact and can be reported with their row; the
aggregate queries cast numeric columns with TRY_CAST and treat unparseable
cells like missing values.

Loads stage into a scratch table and only replace "orders" once the required
columns are present, so a bad file never clobbers a good table.

Queries:
  - OrderRows: the four RFM columns in file order
  - TopCategories, ProductAverages: product view
  - CityDeliveryTimes, StateDeliveryTimes: customer view

All methods take a context; operations without a deadline get a 30 second
timeout.
*/
package database
