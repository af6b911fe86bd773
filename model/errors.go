// SPDX-License-Identifier: MIT
// Package model: sentinel error set.
//
// Only package-level sentinels are exposed; callers branch with errors.Is.
// Implementations attach context by wrapping with fmt.Errorf("...: %w", ErrX).

package model

import "errors"

var (
	// ErrEmptyName indicates a variable, constraint, or model name was empty.
	ErrEmptyName = errors.New("model: name is empty")

	// ErrDuplicateName indicates a variable or constraint with the same name
	// already exists in the model.
	ErrDuplicateName = errors.New("model: duplicate name")

	// ErrNilExpr indicates a nil expression was supplied where a body is required.
	ErrNilExpr = errors.New("model: nil expression")

	// ErrNilVar indicates a nil variable was supplied to an expression term.
	ErrNilVar = errors.New("model: nil variable")

	// ErrForeignVar indicates an expression references a variable that belongs
	// to a different model.
	ErrForeignVar = errors.New("model: variable from another model")

	// ErrNoBounds indicates a constraint was added without a lower or an upper
	// bound; an unbounded constraint carries no information.
	ErrNoBounds = errors.New("model: constraint has no bounds")

	// ErrNoObjective indicates the model's objective was requested before one
	// was set.
	ErrNoObjective = errors.New("model: objective not set")

	// ErrObjectiveSet indicates a second objective was added; a model carries
	// exactly one.
	ErrObjectiveSet = errors.New("model: objective already set")
)
