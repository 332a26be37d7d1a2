// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/storelens/internal/metrics"
	"github.com/tomtom215/storelens/internal/models"
)

// TopCategories ranks product categories by the number of distinct orders
// containing them.
//
// Each category carries the customer state and city that bought it most
// often (ties resolve to the alphabetically first value) and its mean product
// weight and volume. Rows with no category are ignored. Ties in purchase count
// order by category name.
func (db *DB) TopCategories(ctx context.Context, limit int) ([]models.CategoryStats, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		WITH typed AS (
			SELECT
				%[1]s AS category,
				%[2]s AS order_id,
				%[3]s AS state,
				%[4]s AS city,
				TRY_CAST(%[5]s AS DOUBLE) AS weight_g,
				TRY_CAST(%[6]s AS DOUBLE) AS volume_cm3
			FROM orders
			WHERE %[1]s IS NOT NULL AND %[1]s <> ''
		),
		purchases AS (
			SELECT
				category,
				COUNT(DISTINCT order_id) AS purchase_count,
				AVG(weight_g) AS avg_weight,
				AVG(volume_cm3) AS avg_volume
			FROM typed
			GROUP BY category
		),
		state_mode AS (
			SELECT
				category,
				state,
				ROW_NUMBER() OVER (PARTITION BY category ORDER BY COUNT(*) DESC, state ASC) AS rn
			FROM typed
			WHERE state IS NOT NULL
			GROUP BY category, state
		),
		city_mode AS (
			SELECT
				category,
				city,
				ROW_NUMBER() OVER (PARTITION BY category ORDER BY COUNT(*) DESC, city ASC) AS rn
			FROM typed
			WHERE city IS NOT NULL
			GROUP BY category, city
		)
		SELECT
			p.category,
			p.purchase_count,
			COALESCE(s.state, '') AS majority_state,
			COALESCE(c.city, '') AS majority_city,
			p.avg_weight,
			p.avg_volume
		FROM purchases p
		LEFT JOIN state_mode s ON s.category = p.category AND s.rn = 1
		LEFT JOIN city_mode c ON c.category = p.category AND c.rn = 1
		ORDER BY p.purchase_count DESC, p.category ASC
		LIMIT ?`,
		quoteIdent(ColProductCategory), quoteIdent(ColOrderID),
		quoteIdent(ColCustomerState), quoteIdent(ColCustomerCity),
		quoteIdent(ColProductWeightG), quoteIdent(ColProductVolumeCm3))

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, limit)
	metrics.RecordDBQuery("aggregate", ordersTable, time.Since(start), err)
	if err != nil {
		return nil, errorContext("failed to query top categories", err)
	}
	defer closeWithLog(rows, "rows")

	out := make([]models.CategoryStats, 0, limit)
	for rows.Next() {
		var (
			stats          models.CategoryStats
			weight, volume sql.NullFloat64
		)
		if err := rows.Scan(&stats.Category, &stats.PurchaseCount,
			&stats.MajorityCustomerState, &stats.MajorityCustomerCity, &weight, &volume); err != nil {
			return nil, errorContext("failed to scan category", err)
		}
		stats.AverageWeightG = nullFloat(weight)
		stats.AverageVolumeCm3 = nullFloat(volume)
		out = append(out, stats)
	}
	if err := rows.Err(); err != nil {
		return nil, errorContext("failed to iterate categories", err)
	}
	return out, nil
}

// ProductAverages returns the dataset-wide mean product weight and volume.
func (db *DB) ProductAverages(ctx context.Context) (models.ProductAverages, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT
			AVG(TRY_CAST(%s AS DOUBLE)),
			AVG(TRY_CAST(%s AS DOUBLE))
		FROM orders`,
		quoteIdent(ColProductWeightG), quoteIdent(ColProductVolumeCm3))

	var weight, volume sql.NullFloat64
	start := time.Now()
	err := db.conn.QueryRowContext(ctx, query).Scan(&weight, &volume)
	metrics.RecordDBQuery("aggregate", ordersTable, time.Since(start), err)
	if err != nil {
		return models.ProductAverages{}, errorContext("failed to query product averages", err)
	}
	return models.ProductAverages{WeightG: nullFloat(weight), VolumeCm3: nullFloat(volume)}, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
