// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package rfm

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/storelens/internal/models"
)

const day = 24 * time.Hour

// Options controls quantile binning.
type Options struct {
	// Bins is the number of quantile buckets per metric. Scores run 1..Bins.
	Bins int

	// AllowCoarseBins cuts a metric with fewer distinct values than Bins into
	// as many equal-population buckets as there are distinct values instead
	// of returning InsufficientDataError. Buckets follow the same rank order,
	// so tied values may still straddle a boundary. Coarse scores occupy the
	// top of the range so that Bins still means best.
	AllowCoarseBins bool
}

// DefaultOptions returns quintile scoring without coarse fallback.
func DefaultOptions() Options {
	return Options{Bins: 5}
}

// Result is a scored customer population.
type Result struct {
	Snapshot  time.Time
	Customers []models.CustomerRFM
	Bins      models.MetricBins
}

// Totals returns rfm_total for every customer in output order.
func (r *Result) Totals() []int {
	out := make([]int, len(r.Customers))
	for i, c := range r.Customers {
		out[i] = c.RFMTotal
	}
	return out
}

type customerAgg struct {
	id           string
	lastPurchase time.Time
	orders       map[string]struct{}
	monetary     float64
}

// Score computes recency, frequency and monetary metrics per customer and
// cuts each into quantile scores.
//
// Recency is whole days from the customer's latest purchase to snapshot.
// Frequency counts distinct non-empty order IDs. Monetary sums total_cost;
// empty cost cells count as zero.
//
// Customers are ranked with one rule for every metric: ascending value, ties
// in customer ID order. Output rows are sorted by customer ID. Score is pure:
// the same rows and snapshot always produce the same result.
func Score(rows []models.OrderRow, snapshot time.Time, opts Options) (*Result, error) {
	if opts.Bins <= 0 {
		opts.Bins = DefaultOptions().Bins
	}
	if len(rows) == 0 {
		return nil, &EmptyDatasetError{}
	}

	customers, maxPurchase, err := aggregate(rows)
	if err != nil {
		return nil, err
	}
	if snapshot.Before(maxPurchase) {
		return nil, &InvalidSnapshotError{Snapshot: snapshot, MaxPurchase: maxPurchase}
	}

	n := len(customers)
	recency := make([]float64, n)
	frequency := make([]float64, n)
	monetary := make([]float64, n)
	for i, c := range customers {
		recency[i] = float64(snapshot.Sub(c.lastPurchase) / day)
		frequency[i] = float64(len(c.orders))
		monetary[i] = c.monetary
	}

	rScores, rBins, err := scoreMetric(MetricRecency, recency, opts)
	if err != nil {
		return nil, err
	}
	fScores, fBins, err := scoreMetric(MetricFrequency, frequency, opts)
	if err != nil {
		return nil, err
	}
	mScores, mBins, err := scoreMetric(MetricMonetary, monetary, opts)
	if err != nil {
		return nil, err
	}

	out := make([]models.CustomerRFM, n)
	for i, c := range customers {
		out[i] = models.CustomerRFM{
			CustomerID:  c.id,
			Recency:     int(recency[i]),
			Frequency:   int(frequency[i]),
			Monetary:    c.monetary,
			RScore:      rScores[i],
			FScore:      fScores[i],
			MScore:      mScores[i],
			SegmentCode: segmentCode(rScores[i], fScores[i], mScores[i]),
			RFMTotal:    rScores[i] + fScores[i] + mScores[i],
		}
	}

	return &Result{
		Snapshot:  snapshot,
		Customers: out,
		Bins:      models.MetricBins{Recency: rBins, Frequency: fBins, Monetary: mBins},
	}, nil
}

// aggregate groups rows by customer and returns customers sorted by ID along
// with the latest purchase across the dataset.
func aggregate(rows []models.OrderRow) ([]*customerAgg, time.Time, error) {
	byID := make(map[string]*customerAgg)
	var maxPurchase time.Time

	for i, row := range rows {
		rowNum := i + 1

		id := strings.TrimSpace(row.CustomerID)
		if id == "" {
			return nil, time.Time{}, &InvalidValueError{
				Row: rowNum, Column: "customer_unique_id", Value: row.CustomerID, Reason: "customer identifier is empty",
			}
		}

		ts, ok := ParseTimestamp(row.PurchaseTimestamp)
		if !ok {
			return nil, time.Time{}, &InvalidTimestampError{Row: rowNum, Value: row.PurchaseTimestamp}
		}

		cost, err := parseCost(row.TotalCost)
		if err != nil {
			return nil, time.Time{}, &InvalidValueError{
				Row: rowNum, Column: "total_cost", Value: row.TotalCost, Reason: err.Error(),
			}
		}

		c, exists := byID[id]
		if !exists {
			c = &customerAgg{id: id, lastPurchase: ts, orders: make(map[string]struct{})}
			byID[id] = c
		}
		if ts.After(c.lastPurchase) {
			c.lastPurchase = ts
		}
		if orderID := strings.TrimSpace(row.OrderID); orderID != "" {
			c.orders[orderID] = struct{}{}
		}
		c.monetary += cost

		if ts.After(maxPurchase) {
			maxPurchase = ts
		}
	}

	customers := make([]*customerAgg, 0, len(byID))
	for _, c := range byID {
		customers = append(customers, c)
	}
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].id < customers[j].id
	})
	return customers, maxPurchase, nil
}

type costError string

func (e costError) Error() string { return string(e) }

func parseCost(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, costError("not a number")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, costError("not a finite number")
	}
	return f, nil
}
