// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package models

import (
	"time"
)

// APIResponse is the envelope for every HTTP endpoint.
//
// Status is "success" with Data populated, or "error" with Error populated.
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "INSUFFICIENT_DATA",
//	    "message": "monetary has 3 distinct values, need at least 5 for quantile binning",
//	    "details": {"metric": "monetary", "distinct": 3, "required": 5}
//	  },
//	  "metadata": {"timestamp": "2026-01-05T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability and cache effectiveness.
type Metadata struct {
	Timestamp      time.Time `json:"timestamp"`
	QueryTimeMS    int64     `json:"query_time_ms,omitempty"`
	Cached         bool      `json:"cached,omitempty"`
	DatasetVersion uint64    `json:"dataset_version,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid request parameters
//   - VIEW_NOT_FOUND: Unknown view identifier
//   - EMPTY_DATASET, INVALID_TIMESTAMP, INSUFFICIENT_DATA, MISSING_COLUMN,
//     INVALID_VALUE: the dataset cannot be analyzed
//   - INVALID_SNAPSHOT: snapshot date precedes the latest purchase
//   - DATASET_UNAVAILABLE: the dataset file cannot be loaded
//   - INTERNAL_ERROR: Unexpected server error
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
