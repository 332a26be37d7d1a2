// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/storelens/internal/metrics"
	"github.com/tomtom215/storelens/internal/models"
)

// CityDeliveryTimes returns the cities with the longest mean delivery time,
// slowest first. Cities without a parseable delivery time are skipped.
func (db *DB) CityDeliveryTimes(ctx context.Context, limit int) ([]models.CityDelivery, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT
			%[1]s AS city,
			AVG(TRY_CAST(%[2]s AS DOUBLE)) AS avg_delivery
		FROM orders
		WHERE %[1]s IS NOT NULL
		GROUP BY %[1]s
		HAVING AVG(TRY_CAST(%[2]s AS DOUBLE)) IS NOT NULL
		ORDER BY avg_delivery DESC, city ASC
		LIMIT ?`,
		quoteIdent(ColCustomerCity), quoteIdent(ColDeliveryDays))

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, limit)
	metrics.RecordDBQuery("aggregate", ordersTable, time.Since(start), err)
	if err != nil {
		return nil, errorContext("failed to query city delivery times", err)
	}
	defer closeWithLog(rows, "rows")

	out := make([]models.CityDelivery, 0, limit)
	for rows.Next() {
		var c models.CityDelivery
		if err := rows.Scan(&c.City, &c.AvgDeliveryDays); err != nil {
			return nil, errorContext("failed to scan city delivery", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errorContext("failed to iterate city delivery", err)
	}
	return out, nil
}

// StateDeliveryTimes returns the states with the longest mean delivery time,
// slowest first, with the number of distinct orders shipped to each.
func (db *DB) StateDeliveryTimes(ctx context.Context, limit int) ([]models.StateDelivery, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT
			%[1]s AS state,
			AVG(TRY_CAST(%[2]s AS DOUBLE)) AS avg_delivery,
			COUNT(DISTINCT %[3]s) AS sales_count
		FROM orders
		WHERE %[1]s IS NOT NULL
		GROUP BY %[1]s
		HAVING AVG(TRY_CAST(%[2]s AS DOUBLE)) IS NOT NULL
		ORDER BY avg_delivery DESC, state ASC
		LIMIT ?`,
		quoteIdent(ColCustomerState), quoteIdent(ColDeliveryDays), quoteIdent(ColOrderID))

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, limit)
	metrics.RecordDBQuery("aggregate", ordersTable, time.Since(start), err)
	if err != nil {
		return nil, errorContext("failed to query state delivery times", err)
	}
	defer closeWithLog(rows, "rows")

	out := make([]models.StateDelivery, 0, limit)
	for rows.Next() {
		var s models.StateDelivery
		if err := rows.Scan(&s.State, &s.AvgDeliveryDays, &s.SalesCount); err != nil {
			return nil, errorContext("failed to scan state delivery", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errorContext("failed to iterate state delivery", err)
	}
	return out, nil
}
