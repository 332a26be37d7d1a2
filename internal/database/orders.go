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

	"github.com/tomtom215/storelens/internal/logging"
	"github.com/tomtom215/storelens/internal/metrics"
	"github.com/tomtom215/storelens/internal/models"
	"github.com/tomtom215/storelens/internal/rfm"
)

const (
	ordersTable  = "orders"
	stagingTable = "orders_load"
)

// Dataset columns.
const (
	ColCustomerID       = "customer_unique_id"
	ColOrderID          = "order_id"
	ColPurchaseTime     = "order_purchase_timestamp"
	ColTotalCost        = "total_cost"
	ColProductCategory  = "product_category_name"
	ColCustomerState    = "customer_state"
	ColCustomerCity     = "customer_city"
	ColProductWeightG   = "product_weight_g"
	ColProductVolumeCm3 = "product_volume_cm3"
	ColDeliveryDays     = "delivery_time (day)"
)

// RequiredColumns lists every column the three views read, in the order
// they are checked.
var RequiredColumns = []string{
	ColCustomerID,
	ColOrderID,
	ColPurchaseTime,
	ColTotalCost,
	ColProductCategory,
	ColCustomerState,
	ColCustomerCity,
	ColProductWeightG,
	ColProductVolumeCm3,
	ColDeliveryDays,
}

// LoadOrdersCSV replaces the orders table with the contents of a CSV file and
// returns the number of data rows. The file must have a header row containing
// RequiredColumns; otherwise *rfm.MissingColumnError is returned and the
// previous table is left untouched.
func (db *DB) LoadOrdersCSV(ctx context.Context, path string) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	stage := fmt.Sprintf(
		"CREATE OR REPLACE TABLE %s AS SELECT * FROM read_csv(%s, header = true, all_varchar = true)",
		stagingTable, quoteLiteral(path))
	start := time.Now()
	_, err := db.conn.ExecContext(ctx, stage)
	metrics.RecordDBQuery("load", stagingTable, time.Since(start), err)
	if err != nil {
		return 0, errorContext("failed to read "+path, err)
	}
	defer func() {
		if _, err := db.conn.ExecContext(context.Background(), "DROP TABLE IF EXISTS "+stagingTable); err != nil {
			logging.Warn().Err(err).Msg("Failed to drop staging table")
		}
	}()

	columns, err := db.tableColumns(ctx, stagingTable)
	if err != nil {
		return 0, err
	}
	if err := checkColumns(columns); err != nil {
		return 0, err
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, errorContext("failed to begin load transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	swap := fmt.Sprintf("CREATE OR REPLACE TABLE %s AS SELECT * FROM %s", ordersTable, stagingTable)
	if _, err := tx.ExecContext(ctx, swap); err != nil {
		return 0, errorContext("failed to replace orders table", err)
	}

	var count int64
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+ordersTable).Scan(&count); err != nil {
		return 0, errorContext("failed to count orders", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, errorContext("failed to commit load", err)
	}
	return count, nil
}

// tableColumns returns the column names of a table in declaration order.
func (db *DB) tableColumns(ctx context.Context, table string) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = ?
		ORDER BY ordinal_position`, table)
	if err != nil {
		return nil, errorContext("failed to list columns", err)
	}
	defer closeQuietly(rows)

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errorContext("failed to scan column", err)
		}
		columns = append(columns, name)
	}
	return columns, rows.Err()
}

// checkColumns returns a MissingColumnError for the first required column
// absent from columns.
func checkColumns(columns []string) error {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	for _, required := range RequiredColumns {
		if !present[required] {
			return &rfm.MissingColumnError{Column: required, Available: columns}
		}
	}
	return nil
}

// OrderRows returns the RFM columns of every order line in file order.
// NULL cells are returned as empty strings.
func (db *DB) OrderRows(ctx context.Context) ([]models.OrderRow, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := fmt.Sprintf("SELECT %s, %s, %s, %s FROM %s",
		quoteIdent(ColCustomerID), quoteIdent(ColOrderID),
		quoteIdent(ColPurchaseTime), quoteIdent(ColTotalCost), ordersTable)

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query)
	metrics.RecordDBQuery("select", ordersTable, time.Since(start), err)
	if err != nil {
		return nil, errorContext("failed to query order rows", err)
	}
	defer closeQuietly(rows)

	var out []models.OrderRow
	for rows.Next() {
		var customer, order, purchased, cost sql.NullString
		if err := rows.Scan(&customer, &order, &purchased, &cost); err != nil {
			return nil, errorContext("failed to scan order row", err)
		}
		out = append(out, models.OrderRow{
			CustomerID:        customer.String,
			OrderID:           order.String,
			PurchaseTimestamp: purchased.String,
			TotalCost:         cost.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, errorContext("failed to iterate order rows", err)
	}
	return out, nil
}
