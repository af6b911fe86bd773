// Package vcg constructs the canonical bipartite variable–constraint graph
// (VCG) of an optimization model.
//
// One node set is the model's variables, the other its constraints; an edge
// connects a variable to every constraint it participates in. Before graph
// construction every constraint is normalized to one of two canonical
// bounded forms:
//
//	expr <= bound   ("leq": upper-bounded, or lower-bounded after a sign flip)
//	expr == bound   ("eq":  lower and upper bounds present and equal)
//
// A lower-only constraint expr >= b is rewritten as -expr <= -b, so its
// linear coefficients and bound are negated relative to the source. A
// constraint with two distinct finite bounds (a ranged constraint) is not
// representable and fails fast with ErrRangedConstraint. Constant terms in
// linear bodies are absorbed into the bound.
//
// Variable nodes carry a three-way domain classification (continuous,
// integer, binary) derived from the variable's declared virtual-domain tag
// through a closed mapping table validated at package load. If the
// objective is linear, variable nodes additionally carry their objective
// coefficient, sign-normalized to minimize sense; a variable that appears
// in the objective but in no constraint makes the model unrepresentable
// and fails with ErrVariableNotInConstraint.
//
// Build is a pure, deterministic transform of an immutable model: it takes
// no locks, reads no global state, and either returns a complete graph or
// an error with no partial result.
package vcg
