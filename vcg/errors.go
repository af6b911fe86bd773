// SPDX-License-Identifier: MIT
// Package vcg: sentinel error set.
//
// Every error here is fatal for the instance being built: the transform is
// pure and deterministic, so a failure always reflects a model the VCG
// cannot represent, never a transient condition. No partial graph is ever
// returned alongside an error. Callers branch with errors.Is.

package vcg

import "errors"

var (
	// ErrNilModel indicates Build was called with a nil model.
	ErrNilModel = errors.New("vcg: nil model")

	// ErrUnrecognizedDomain indicates a variable's virtual-domain tag maps to
	// none of the three known buckets (continuous, integer, binary). This
	// signals a model-construction defect upstream.
	ErrUnrecognizedDomain = errors.New("vcg: unrecognized variable domain")

	// ErrRangedConstraint indicates a constraint with distinct finite lower
	// and upper bounds. Ranged constraints are a deliberate non-goal and are
	// never silently approximated.
	ErrRangedConstraint = errors.New("vcg: double-bounded constraints are not supported")

	// ErrVariableNotInConstraint indicates the objective references a variable
	// absent from every constraint. Such a variable has no constraint-side
	// neighbor and therefore cannot appear in a bipartite VCG.
	ErrVariableNotInConstraint = errors.New("vcg: objective variable participates in no constraint")
)
