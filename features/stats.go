// SPDX-License-Identifier: MIT
// Package features: scalar statistics kernels.
//
// Conventions (fixed, documented in doc.go):
//   - stddev is the population standard deviation (divide by n, not n-1);
//   - cv is population stddev over mean, 0.0 when the mean is exactly zero;
//   - percentiles use the linear-interpolation estimator at rank (n-1)·p;
//   - every kernel treats the empty slice as 0.0.

package features

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// mean returns the arithmetic mean, or 0 for an empty slice.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// popStdDev returns the population standard deviation, or 0 for an empty
// slice. gonum's StdDev is the sample estimator (n-1 denominator), so the
// squared deviations are averaged directly here.
func popStdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	mu := stat.Mean(xs, nil)
	var ss float64
	for _, x := range xs {
		d := x - mu
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)))
}

// cv returns the coefficient of variation popStdDev/mean, or 0 when the
// mean is exactly zero (the distribution carries no scale to normalize by).
func cv(xs []float64) float64 {
	mu := mean(xs)
	if mu == 0 {
		return 0
	}
	return popStdDev(xs) / mu
}

// percentile returns the p-th percentile (0 <= p <= 100) using linear
// interpolation between closest ranks at position (n-1)·p/100. This is the
// estimator the downstream datasets were built with; gonum's Quantile kinds
// implement different interpolation schemes, so it is computed directly.
func percentile(xs []float64, p float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)

	h := (float64(n) - 1) * p / 100
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}

// median is the 50th percentile.
func median(xs []float64) float64 { return percentile(xs, 50) }

// p90p10 returns the ratio of the 90th to the 10th percentile, or 0.0 when
// the 10th percentile is exactly zero.
func p90p10(xs []float64) float64 {
	p10 := percentile(xs, 10)
	if p10 == 0 {
		return 0
	}
	return percentile(xs, 90) / p10
}
