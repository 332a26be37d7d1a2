// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/storelens/internal/dataset"
	"github.com/tomtom215/storelens/internal/models"
	"github.com/tomtom215/storelens/internal/rfm"
	"github.com/tomtom215/storelens/internal/views"
)

// Error codes outside the data error set in package rfm.
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeViewNotFound       = "VIEW_NOT_FOUND"
	ErrCodeDatasetUnavailable = "DATASET_UNAVAILABLE"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimited        = "RATE_LIMIT_EXCEEDED"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// errorResponse maps err to an HTTP status and API error body.
// Unrecognized errors become a generic 500 so internals do not leak.
func errorResponse(err error) (int, *models.APIError) {
	var (
		missing   *rfm.MissingColumnError
		timestamp *rfm.InvalidTimestampError
		value     *rfm.InvalidValueError
		data      *rfm.InsufficientDataError
		snapshot  *rfm.InvalidSnapshotError
		parseErr  *time.ParseError
	)

	switch {
	case errors.Is(err, views.ErrViewNotFound):
		return http.StatusNotFound, &models.APIError{Code: ErrCodeViewNotFound, Message: err.Error()}

	case errors.Is(err, dataset.ErrDatasetUnavailable):
		return http.StatusServiceUnavailable, &models.APIError{
			Code:    ErrCodeDatasetUnavailable,
			Message: "Dataset is not available",
		}

	case errors.As(err, &missing):
		return http.StatusUnprocessableEntity, &models.APIError{
			Code:    rfm.CodeMissingColumn,
			Message: missing.Error(),
			Details: map[string]interface{}{
				"column":    missing.Column,
				"available": missing.Available,
			},
		}

	case errors.As(err, &timestamp):
		return http.StatusUnprocessableEntity, &models.APIError{
			Code:    rfm.CodeInvalidTimestamp,
			Message: timestamp.Error(),
			Details: map[string]interface{}{
				"row":   timestamp.Row,
				"value": timestamp.Value,
			},
		}

	case errors.As(err, &value):
		return http.StatusUnprocessableEntity, &models.APIError{
			Code:    rfm.CodeInvalidValue,
			Message: value.Error(),
			Details: map[string]interface{}{
				"row":    value.Row,
				"column": value.Column,
				"value":  value.Value,
				"reason": value.Reason,
			},
		}

	case errors.As(err, &data):
		return http.StatusUnprocessableEntity, &models.APIError{
			Code:    rfm.CodeInsufficientData,
			Message: data.Error(),
			Details: map[string]interface{}{
				"metric":   string(data.Metric),
				"distinct": data.Distinct,
				"required": data.Required,
			},
		}

	case errors.As(err, &snapshot):
		return http.StatusBadRequest, &models.APIError{
			Code:    rfm.CodeInvalidSnapshot,
			Message: snapshot.Error(),
			Details: map[string]interface{}{
				"snapshot":     snapshot.Snapshot.Format(time.DateOnly),
				"max_purchase": snapshot.MaxPurchase.Format(time.DateTime),
			},
		}

	case rfm.Code(err) == rfm.CodeEmptyDataset:
		return http.StatusUnprocessableEntity, &models.APIError{
			Code:    rfm.CodeEmptyDataset,
			Message: err.Error(),
		}

	case errors.As(err, &parseErr):
		return http.StatusBadRequest, &models.APIError{
			Code:    ErrCodeValidation,
			Message: "snapshot must be a date in YYYY-MM-DD format",
		}

	default:
		return http.StatusInternalServerError, &models.APIError{
			Code:    ErrCodeInternal,
			Message: "An internal error occurred",
		}
	}
}
