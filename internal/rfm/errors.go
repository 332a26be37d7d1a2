// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package rfm

import (
	"errors"
	"fmt"
	"time"
)

// EmptyDatasetError is returned when there are no order rows to score.
type EmptyDatasetError struct{}

func (e *EmptyDatasetError) Error() string {
	return "dataset contains no order rows"
}

// MissingColumnError is returned when a required dataset column is absent.
type MissingColumnError struct {
	Column    string
	Available []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q is missing from dataset", e.Column)
}

// InvalidTimestampError is returned when a purchase timestamp cannot be parsed.
// Row is the 1-based data row, not counting the header.
type InvalidTimestampError struct {
	Row   int
	Value string
}

func (e *InvalidTimestampError) Error() string {
	return fmt.Sprintf("row %d: unparseable purchase timestamp %q", e.Row, e.Value)
}

// InvalidValueError is returned when a cell cannot be used, such as a
// non-numeric cost or an empty customer identifier.
type InvalidValueError struct {
	Row    int
	Column string
	Value  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("row %d: invalid %s %q: %s", e.Row, e.Column, e.Value, e.Reason)
}

// InsufficientDataError is returned when a metric has fewer distinct values
// than the requested number of quantile bins.
type InsufficientDataError struct {
	Metric   Metric
	Distinct int
	Required int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s has %d distinct values, need at least %d for quantile binning",
		e.Metric, e.Distinct, e.Required)
}

// InvalidSnapshotError is returned when the snapshot date precedes the latest
// purchase, which would make recency negative.
type InvalidSnapshotError struct {
	Snapshot    time.Time
	MaxPurchase time.Time
}

func (e *InvalidSnapshotError) Error() string {
	return fmt.Sprintf("snapshot date %s is earlier than latest purchase %s",
		e.Snapshot.Format(time.DateOnly), e.MaxPurchase.Format(time.DateTime))
}

// IsDataError reports whether err describes a dataset that cannot be scored,
// as opposed to an infrastructure failure. Data errors are terminal: retrying
// the same input yields the same error.
func IsDataError(err error) bool {
	return Code(err) != ""
}

// Error codes reported to API clients and in rfm_errors_total.
const (
	CodeEmptyDataset     = "EMPTY_DATASET"
	CodeMissingColumn    = "MISSING_COLUMN"
	CodeInvalidTimestamp = "INVALID_TIMESTAMP"
	CodeInvalidValue     = "INVALID_VALUE"
	CodeInsufficientData = "INSUFFICIENT_DATA"
	CodeInvalidSnapshot  = "INVALID_SNAPSHOT"
)

// Code returns the error code of a data error, or "" for anything else.
func Code(err error) string {
	var (
		empty     *EmptyDatasetError
		missing   *MissingColumnError
		timestamp *InvalidTimestampError
		value     *InvalidValueError
		data      *InsufficientDataError
		snapshot  *InvalidSnapshotError
	)
	switch {
	case errors.As(err, &empty):
		return CodeEmptyDataset
	case errors.As(err, &missing):
		return CodeMissingColumn
	case errors.As(err, &timestamp):
		return CodeInvalidTimestamp
	case errors.As(err, &value):
		return CodeInvalidValue
	case errors.As(err, &data):
		return CodeInsufficientData
	case errors.As(err, &snapshot):
		return CodeInvalidSnapshot
	default:
		return ""
	}
}
