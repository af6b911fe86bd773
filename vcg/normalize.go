// SPDX-License-Identifier: MIT
// Package vcg: constraint bound normalization.

package vcg

import (
	"fmt"

	"github.com/discretenet/discretenet/model"
)

// normalized is the result of rewriting one constraint's bound configuration
// into canonical form.
type normalized struct {
	// multiplier is applied to every linear coefficient (and already applied
	// to bound): -1 for a flipped lower-only constraint, +1 otherwise.
	multiplier float64
	// bound is the canonical right-hand side before constant-term absorption.
	bound        float64
	kind         Kind
	originalKind Kind
}

// normalizeBounds rewrites a one- or two-sided bound configuration into
// canonical <=-bounded or ==-bounded form.
//
// Exhaustive case split; the equality test runs only when both bounds are
// present, so equality always wins the tie-break over either single-sided
// form:
//
//  1. lower only:   expr >= b  ⇔  -expr <= -b   (multiplier -1, leq, was geq)
//  2. upper only:   expr <= b                    (multiplier +1, leq, was leq)
//  3. lower==upper: expr == b                    (multiplier +1, eq,  was eq)
//  4. lower!=upper: ranged, ErrRangedConstraint; never approximated.
func normalizeBounds(hasLower, hasUpper bool, lower, upper float64) (normalized, error) {
	switch {
	case hasLower && !hasUpper:
		return normalized{multiplier: -1, bound: -lower, kind: KindLeq, originalKind: KindGeq}, nil
	case !hasLower && hasUpper:
		return normalized{multiplier: 1, bound: upper, kind: KindLeq, originalKind: KindLeq}, nil
	case hasLower && hasUpper && lower == upper:
		return normalized{multiplier: 1, bound: upper, kind: KindEq, originalKind: KindEq}, nil
	case hasLower && hasUpper:
		return normalized{}, fmt.Errorf("lower=%g upper=%g: %w", lower, upper, ErrRangedConstraint)
	default:
		// Unbounded constraints are rejected by the modeling layer; reaching
		// here means the model contract was violated.
		return normalized{}, fmt.Errorf("constraint has no bounds: %w", model.ErrNoBounds)
	}
}
