// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package views

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/storelens/internal/cache"
	"github.com/tomtom215/storelens/internal/config"
	"github.com/tomtom215/storelens/internal/metrics"
	"github.com/tomtom215/storelens/internal/models"
	"github.com/tomtom215/storelens/internal/rfm"
)

// Settings configures the default views.
type Settings struct {
	// Snapshot is the recency reference used when a request names none.
	Snapshot time.Time

	Scoring       rfm.Options
	HistogramBins int
}

// topSegmentsLimit is how many segment codes the RFM view reports.
const topSegmentsLimit = 10

// NewDefaultRegistry registers the rfm, product and customer views.
func NewDefaultRegistry(c *cache.Cache, s Settings) *Registry {
	r := NewRegistry(c)
	for _, v := range []View{
		{
			ID:          RFM,
			Title:       "RFM Analysis",
			Description: "Recency, frequency and monetary scores per customer with the rfm_total distribution",
			Handler:     RFMHandler(s),
		},
		{
			ID:          Product,
			Title:       "Product Analysis",
			Description: "Most purchased categories with majority customer location and average size",
			Cacheable:   true,
			Handler:     ProductHandler,
		},
		{
			ID:          Customer,
			Title:       "Customer Analysis",
			Description: "Cities and states with the longest average delivery time",
			Cacheable:   true,
			Handler:     CustomerHandler,
		},
	} {
		r.MustRegister(v)
	}
	return r
}

// RFMHandler scores every customer. Params.Snapshot overrides s.Snapshot.
func RFMHandler(s Settings) Handler {
	return func(ctx context.Context, table Table, params Params) (any, error) {
		snapshot := s.Snapshot
		if params.Snapshot != "" {
			parsed, err := time.Parse(config.DateLayout, params.Snapshot)
			if err != nil {
				return nil, fmt.Errorf("parse snapshot: %w", err)
			}
			snapshot = parsed
		}

		rows, err := table.OrderRows(ctx)
		if err != nil {
			return nil, err
		}

		start := time.Now()
		result, err := rfm.Score(rows, snapshot, s.Scoring)
		if err != nil {
			code := rfm.Code(err)
			if code == "" {
				code = "INTERNAL_ERROR"
			}
			metrics.RecordRFMScoring(time.Since(start), 0, code)
			return nil, err
		}
		metrics.RecordRFMScoring(time.Since(start), len(result.Customers), "")

		bins := s.Scoring.Bins
		if bins == 0 {
			bins = rfm.DefaultOptions().Bins
		}
		histogramBins := s.HistogramBins
		if histogramBins <= 0 {
			histogramBins = 10
		}

		return &models.RFMView{
			SnapshotDate:      snapshot.Format(config.DateLayout),
			Customers:         len(result.Customers),
			Bins:              result.Bins,
			Rows:              result.Customers,
			Histogram:         rfm.Histogram(result.Totals(), histogramBins),
			ScoreDistribution: rfm.ScoreDistribution(result.Customers, bins),
			TopSegments:       rfm.TopSegments(result.Customers, topSegmentsLimit),
		}, nil
	}
}

// ProductHandler ranks categories by purchases.
func ProductHandler(ctx context.Context, table Table, params Params) (any, error) {
	categories, err := table.TopCategories(ctx, params.TopN)
	if err != nil {
		return nil, err
	}
	averages, err := table.ProductAverages(ctx)
	if err != nil {
		return nil, err
	}
	return &models.ProductView{TopCategories: categories, Overall: averages}, nil
}

// CustomerHandler lists the slowest delivery locations.
func CustomerHandler(ctx context.Context, table Table, params Params) (any, error) {
	cities, err := table.CityDeliveryTimes(ctx, params.TopN)
	if err != nil {
		return nil, err
	}
	states, err := table.StateDeliveryTimes(ctx, params.TopN)
	if err != nil {
		return nil, err
	}
	return &models.CustomerView{Cities: cities, States: states}, nil
}
