// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

// Package validation validates request parameters with go-playground/validator.
//
// A single validator instance (created with WithRequiredStructEnabled) caches
// struct metadata across requests. Failures come back as
// *RequestValidationError, which converts to the API's VALIDATION_ERROR body:
//
//	type Params struct {
//	    TopN     int    `query:"top_n" validate:"min=1,max=100"`
//	    Snapshot string `query:"snapshot" validate:"omitempty,datetime=2006-01-02"`
//	}
//
// Field names in messages and details are the query parameter names.
package validation
