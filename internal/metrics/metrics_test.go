// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDBQuery(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("select", "metrics_test"))

	RecordDBQuery("select", "metrics_test", 5*time.Millisecond, nil)
	RecordDBQuery("select", "metrics_test", 5*time.Millisecond, errors.New("boom"))

	after := testutil.ToFloat64(DBQueryErrors.WithLabelValues("select", "metrics_test"))
	if after-before != 1 {
		t.Errorf("DBQueryErrors delta = %v, want 1", after-before)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	counter := APIRequestsTotal.WithLabelValues("GET", "/metrics-test", "200")
	before := testutil.ToFloat64(counter)

	RecordAPIRequest("GET", "/metrics-test", "200", 10*time.Millisecond)

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("APIRequestsTotal delta = %v, want 1", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}

func TestRecordDatasetLoad(t *testing.T) {
	failures := testutil.ToFloat64(DatasetLoads.WithLabelValues("failure"))
	RecordDatasetLoad(time.Millisecond, 0, 0, errors.New("missing column"))
	if got := testutil.ToFloat64(DatasetLoads.WithLabelValues("failure")) - failures; got != 1 {
		t.Errorf("failure delta = %v, want 1", got)
	}

	RecordDatasetLoad(time.Millisecond, 1234, 7, nil)
	if got := testutil.ToFloat64(DatasetRows); got != 1234 {
		t.Errorf("DatasetRows = %v, want 1234", got)
	}
	if got := testutil.ToFloat64(DatasetVersion); got != 7 {
		t.Errorf("DatasetVersion = %v, want 7", got)
	}
	if testutil.ToFloat64(DatasetLastLoad) == 0 {
		t.Error("DatasetLastLoad should be set after a successful load")
	}
}

func TestRecordRFMScoring(t *testing.T) {
	RecordRFMScoring(time.Millisecond, 42, "")
	if got := testutil.ToFloat64(RFMCustomersScored); got != 42 {
		t.Errorf("RFMCustomersScored = %v, want 42", got)
	}

	before := testutil.ToFloat64(RFMErrors.WithLabelValues("INSUFFICIENT_DATA"))
	RecordRFMScoring(time.Millisecond, 0, "INSUFFICIENT_DATA")
	if got := testutil.ToFloat64(RFMErrors.WithLabelValues("INSUFFICIENT_DATA")) - before; got != 1 {
		t.Errorf("RFMErrors delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(RFMCustomersScored); got != 42 {
		t.Errorf("failed run must not reset RFMCustomersScored, got %v", got)
	}
}

func TestRecordViewRender(t *testing.T) {
	tests := []struct {
		name   string
		cached bool
		err    error
		result string
	}{
		{"success", false, nil, "success"},
		{"cached", true, nil, "cached"},
		{"error", false, errors.New("boom"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := ViewRenders.WithLabelValues("metrics-test", tt.result)
			before := testutil.ToFloat64(counter)
			RecordViewRender("metrics-test", time.Millisecond, tt.cached, tt.err)
			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("%s delta = %v, want 1", tt.result, got)
			}
		})
	}
}
