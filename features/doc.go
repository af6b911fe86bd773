// Package features computes a fixed vector of scalar statistics over a
// variable–constraint graph and its model's objective.
//
// Every statistic is taken over one of three variable selections (all
// variables, continuous variables only, or non-continuous variables only),
// and the constraint-side analogues restrict each
// constraint's neighborhood to the same selections. The split applies
// uniformly to node-degree distributions (both sides of the bipartition),
// per-node coefficient sums, bound-normalized coefficients, and absolute
// objective coefficients (raw, divided by participation count, and divided
// by the square root of the participation count).
//
// The output is a flat mapping from feature name to float64 with a fixed
// key set: an empty distribution reports all of its statistics as 0.0, so
// consumers of tabular datasets never see missing keys or NaN. Two
// divide-by-zero conventions apply throughout: a coefficient of variation
// with zero mean reports 0.0, and the p90/p10 percentile ratio reports 0.0
// when the 10th percentile is exactly zero.
//
// Compute is a pure function of an immutable graph and model; callers that
// need the vector more than once should cache it (problem.Instance does).
package features
