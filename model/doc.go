// Package model provides a small in-memory modeling layer for linear and
// nonlinear constrained optimization programs.
//
// A Model is a set of named variables (each with a virtual Domain tag), an
// ordered list of constraints (each a body expression with an optional lower
// and/or upper bound), and exactly one objective with a minimize or maximize
// sense. Models are append-only while being built and treated as immutable
// once handed to downstream consumers; there is no randomness anywhere in
// this package.
//
// Expressions come in two flavors. LinearExpr carries an explicit ordered
// term list of (coefficient, variable) pairs, where a nil variable marks a
// constant term, and decomposes losslessly. NonlinearExpr is opaque: only
// the set of referenced variables and a textual rendering are available,
// mirroring the fact that coefficients cannot be extracted from nonlinear
// bodies.
//
// The package exposes exactly the introspection surface the VCG builder
// needs: per-constraint bound configuration, expression decomposition,
// referenced-variable enumeration, and stable declaration-order iteration.
package model
