// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package models

// OrderRow is one line of the order dataset restricted to the columns the
// RFM scorer reads. Values are kept as the raw CSV text so that parse
// failures can be reported with the offending cell.
type OrderRow struct {
	CustomerID        string `json:"customer_unique_id"`
	OrderID           string `json:"order_id"`
	PurchaseTimestamp string `json:"order_purchase_timestamp"`
	TotalCost         string `json:"total_cost"`
}

// CustomerRFM is one scored customer.
type CustomerRFM struct {
	CustomerID  string  `json:"customer_id"`
	Recency     int     `json:"recency"`
	Frequency   int     `json:"frequency"`
	Monetary    float64 `json:"monetary"`
	RScore      int     `json:"r_score"`
	FScore      int     `json:"f_score"`
	MScore      int     `json:"m_score"`
	SegmentCode string  `json:"segment_code"`
	RFMTotal    int     `json:"rfm_total"`
}

// HistogramBin is one fixed-width bin of a frequency histogram.
// Lower is inclusive; Upper is exclusive except for the last bin.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// ScoreCount is the number of customers holding a score for one metric.
type ScoreCount struct {
	Score     int `json:"score"`
	Customers int `json:"customers"`
}

// SegmentCount is the number of customers in one segment code.
type SegmentCount struct {
	SegmentCode string `json:"segment_code"`
	Customers   int    `json:"customers"`
}

// MetricBins records how many buckets a metric was actually cut into.
// It is below the configured bin count only when coarse binning was allowed
// and the metric lacked distinct values.
type MetricBins struct {
	Recency   int `json:"recency"`
	Frequency int `json:"frequency"`
	Monetary  int `json:"monetary"`
}

// RFMView is the render-ready result of the RFM view.
type RFMView struct {
	SnapshotDate      string                  `json:"snapshot_date"`
	Customers         int                     `json:"customers"`
	Bins              MetricBins              `json:"bins"`
	Rows              []CustomerRFM           `json:"rows"`
	Histogram         []HistogramBin          `json:"histogram"`
	ScoreDistribution map[string][]ScoreCount `json:"score_distribution"`
	TopSegments       []SegmentCount          `json:"top_segments"`
}
