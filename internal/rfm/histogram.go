// Storelens - E-Commerce Customer Behavior Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package rfm

import (
	"sort"
	"strconv"

	"github.com/tomtom215/storelens/internal/models"
)

// Histogram counts values into bins fixed-width bins spanning [min, max].
// Every bin is half-open except the last, which includes max. When all values
// are equal the range is widened to [v-0.5, v+0.5].
func Histogram(values []int, bins int) []models.HistogramBin {
	if len(values) == 0 || bins < 1 {
		return []models.HistogramBin{}
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	start, end := float64(lo), float64(hi)
	if lo == hi {
		start, end = start-0.5, end+0.5
	}

	width := (end - start) / float64(bins)
	edges := make([]float64, bins+1)
	for i := range edges {
		edges[i] = start + float64(i)*width
	}
	edges[bins] = end

	out := make([]models.HistogramBin, bins)
	for i := range out {
		out[i] = models.HistogramBin{Lower: edges[i], Upper: edges[i+1]}
	}

	for _, v := range values {
		x := float64(v)
		idx := int((x - start) / width)
		// correct float drift against the stored edges
		for idx > 0 && x < edges[idx] {
			idx--
		}
		for idx < bins-1 && x >= edges[idx+1] {
			idx++
		}
		idx = min(max(idx, 0), bins-1)
		out[idx].Count++
	}
	return out
}

// ScoreDistribution counts customers per score for each metric. Every score in
// 1..bins is present, including those with no customers.
func ScoreDistribution(rows []models.CustomerRFM, bins int) map[string][]models.ScoreCount {
	r := make([]int, bins+1)
	f := make([]int, bins+1)
	m := make([]int, bins+1)
	for _, row := range rows {
		r[row.RScore]++
		f[row.FScore]++
		m[row.MScore]++
	}

	toCounts := func(counts []int) []models.ScoreCount {
		out := make([]models.ScoreCount, 0, bins)
		for score := 1; score <= bins; score++ {
			out = append(out, models.ScoreCount{Score: score, Customers: counts[score]})
		}
		return out
	}

	return map[string][]models.ScoreCount{
		"r_score": toCounts(r),
		"f_score": toCounts(f),
		"m_score": toCounts(m),
	}
}

// TopSegments returns the limit most populated segment codes, largest first,
// ties ordered by segment code.
func TopSegments(rows []models.CustomerRFM, limit int) []models.SegmentCount {
	counts := make(map[string]int)
	for _, row := range rows {
		counts[row.SegmentCode]++
	}

	out := make([]models.SegmentCount, 0, len(counts))
	for code, n := range counts {
		out = append(out, models.SegmentCount{SegmentCode: code, Customers: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Customers != out[j].Customers {
			return out[i].Customers > out[j].Customers
		}
		return out[i].SegmentCode < out[j].SegmentCode
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func segmentCode(r, f, m int) string {
	return strconv.Itoa(r) + strconv.Itoa(f) + strconv.Itoa(m)
}
