// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package rfm

import (
	"math"
	"testing"

	"github.com/tomtom215/storelens/internal/models"
)

func TestHistogram(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		values     []int
		bins       int
		wantCounts []int
		wantLower  float64
		wantUpper  float64
	}{
		{
			name:       "full score range",
			values:     []int{3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
			bins:       10,
			wantCounts: []int{2, 1, 1, 1, 1, 2, 1, 1, 1, 2},
			wantLower:  3,
			wantUpper:  15,
		},
		{
			name:       "max lands in last bin",
			values:     []int{0, 10, 10},
			bins:       2,
			wantCounts: []int{1, 2},
			wantLower:  0,
			wantUpper:  10,
		},
		{
			name:       "single value widens range",
			values:     []int{7, 7, 7},
			bins:       10,
			wantCounts: []int{0, 0, 0, 0, 0, 3, 0, 0, 0, 0},
			wantLower:  6.5,
			wantUpper:  7.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Histogram(tt.values, tt.bins)
			if len(got) != tt.bins {
				t.Fatalf("got %d bins, want %d", len(got), tt.bins)
			}
			total := 0
			for i, b := range got {
				total += b.Count
				if b.Count != tt.wantCounts[i] {
					t.Errorf("bin %d [%g,%g) count = %d, want %d", i, b.Lower, b.Upper, b.Count, tt.wantCounts[i])
				}
			}
			if total != len(tt.values) {
				t.Errorf("histogram holds %d values, want %d", total, len(tt.values))
			}
			if math.Abs(got[0].Lower-tt.wantLower) > 1e-9 || got[len(got)-1].Upper != tt.wantUpper {
				t.Errorf("range = [%g, %g], want [%g, %g]", got[0].Lower, got[len(got)-1].Upper, tt.wantLower, tt.wantUpper)
			}
		})
	}
}

func TestHistogramEmpty(t *testing.T) {
	t.Parallel()

	if got := Histogram(nil, 10); len(got) != 0 {
		t.Errorf("Histogram(nil) = %v, want empty", got)
	}
}

func TestScoreDistributionAndTopSegments(t *testing.T) {
	t.Parallel()

	rows := []models.CustomerRFM{
		{CustomerID: "a", RScore: 5, FScore: 1, MScore: 1, SegmentCode: "511"},
		{CustomerID: "b", RScore: 5, FScore: 1, MScore: 1, SegmentCode: "511"},
		{CustomerID: "c", RScore: 1, FScore: 5, MScore: 5, SegmentCode: "155"},
		{CustomerID: "d", RScore: 3, FScore: 3, MScore: 3, SegmentCode: "333"},
	}

	dist := ScoreDistribution(rows, 5)
	r := dist["r_score"]
	if len(r) != 5 {
		t.Fatalf("r_score has %d entries, want 5", len(r))
	}
	if r[4].Score != 5 || r[4].Customers != 2 {
		t.Errorf("r_score 5 = %+v, want 2 customers", r[4])
	}
	if r[1].Customers != 0 {
		t.Errorf("r_score 2 = %+v, want 0 customers", r[1])
	}

	top := TopSegments(rows, 2)
	if len(top) != 2 {
		t.Fatalf("TopSegments returned %d entries, want 2", len(top))
	}
	if top[0].SegmentCode != "511" || top[0].Customers != 2 {
		t.Errorf("top[0] = %+v, want 511 with 2", top[0])
	}
	if top[1].SegmentCode != "155" {
		t.Errorf("top[1] = %+v, ties should order by segment code", top[1])
	}
}

func TestHistogramOfScoredTotals(t *testing.T) {
	t.Parallel()

	result, err := Score(tenCustomers(), testSnapshot, DefaultOptions())
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	hist := Histogram(result.Totals(), 10)
	total := 0
	for _, b := range hist {
		total += b.Count
	}
	if total != 10 {
		t.Errorf("histogram holds %d customers, want 10", total)
	}
}
