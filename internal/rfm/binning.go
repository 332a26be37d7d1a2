// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package rfm

import (
	"sort"
)

// Metric names one of the three scored quantities.
type Metric string

const (
	MetricRecency   Metric = "recency"
	MetricFrequency Metric = "frequency"
	MetricMonetary  Metric = "monetary"
)

// quantileBuckets assigns each value a 0-based bucket so that every bucket
// holds floor(n/bins) or ceil(n/bins) values.
//
// Values are ranked by (value, input position) with a stable sort, so ties
// are split by the caller's ordering and the result is deterministic.
// Position i of n lands in bucket i*bins/n.
func quantileBuckets(values []float64, bins int) []int {
	n := len(values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})

	buckets := make([]int, n)
	for rank, idx := range order {
		buckets[idx] = rank * bins / n
	}
	return buckets
}

// distinctCount returns the number of distinct values.
func distinctCount(values []float64) int {
	seen := make(map[float64]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// binsFor decides how many buckets a metric is cut into.
func binsFor(metric Metric, values []float64, opts Options) (int, error) {
	distinct := distinctCount(values)
	if distinct >= opts.Bins {
		return opts.Bins, nil
	}
	if !opts.AllowCoarseBins {
		return 0, &InsufficientDataError{Metric: metric, Distinct: distinct, Required: opts.Bins}
	}
	return distinct, nil
}

// scoreMetric converts values to scores in [opts.Bins-bins+1, opts.Bins].
// Ascending metrics give the highest score to the largest values; recency is
// descending, so the smallest value scores highest.
func scoreMetric(metric Metric, values []float64, opts Options) ([]int, int, error) {
	bins, err := binsFor(metric, values, opts)
	if err != nil {
		return nil, 0, err
	}

	buckets := quantileBuckets(values, bins)
	scores := make([]int, len(buckets))
	for i, b := range buckets {
		if metric == MetricRecency {
			scores[i] = opts.Bins - b
		} else {
			scores[i] = opts.Bins - bins + b + 1
		}
	}
	return scores, bins, nil
}
