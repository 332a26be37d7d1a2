// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

/*
Package rfm scores customers by Recency, Frequency and Monetary value.

Score groups order rows by customer, derives the three raw metrics relative to
a snapshot date and cuts each metric into equal-population quantile buckets:

	result, err := rfm.Score(rows, snapshot, rfm.DefaultOptions())
	var short *rfm.InsufficientDataError
	if errors.As(err, &short) {
	    // short.Metric, short.Distinct
	}

A customer's segment code concatenates the three scores ("541") and the
composite rfm_total sums them. Scores are relative to the scored population,
so results are only comparable within one call.

Failures are typed so callers can report them with context:
EmptyDatasetError, MissingColumnError, InvalidTimestampError,
InvalidValueError, InsufficientDataError and InvalidSnapshotError.
*/
package rfm
