// SPDX-License-Identifier: MIT
// Package model: expression types and linear decomposition.

package model

// Term is one (coefficient, variable) pair of a linear decomposition.
// A nil Var marks a constant term.
type Term struct {
	Coeff float64
	Var   *Var
}

// Expr is the body of a constraint or objective.
//
// Decompose returns (true, terms) for linear expressions, where terms is the
// ordered list of (coefficient, variable-or-nil) pairs, and (false, nil) for
// nonlinear ones, for which no coefficient extraction is possible.
//
// Variables enumerates every variable referenced anywhere in the expression,
// in order of first appearance, without duplicates.
type Expr interface {
	Decompose() (linear bool, terms []Term)
	Variables() []*Var
}

// LinearExpr is an ordered sum of scaled variables plus constant offsets.
// The zero value is the empty expression; Add* methods return the receiver
// so calls can be chained.
type LinearExpr struct {
	terms []Term
}

// NewLinearExpr creates a new empty linear expression.
func NewLinearExpr() *LinearExpr { return &LinearExpr{} }

// NewConstant creates a linear expression holding only the constant c.
func NewConstant(c float64) *LinearExpr {
	return NewLinearExpr().AddConstant(c)
}

// Add appends variable v with coefficient 1 and returns the receiver.
func (l *LinearExpr) Add(v *Var) *LinearExpr { return l.AddTerm(v, 1) }

// AddTerm appends variable v with coefficient c and returns the receiver.
// Terms are kept in insertion order; repeated variables are appended, not
// merged, so the decomposition reflects the expression as written.
func (l *LinearExpr) AddTerm(v *Var, c float64) *LinearExpr {
	l.terms = append(l.terms, Term{Coeff: c, Var: v})
	return l
}

// AddConstant appends the constant c as a nil-variable term and returns the
// receiver.
func (l *LinearExpr) AddConstant(c float64) *LinearExpr {
	l.terms = append(l.terms, Term{Coeff: c})
	return l
}

// AddSum appends every variable with coefficient 1 and returns the receiver.
func (l *LinearExpr) AddSum(vs ...*Var) *LinearExpr {
	for _, v := range vs {
		l.Add(v)
	}
	return l
}

// AddWeightedSum appends vs[i] with coefficient cs[i] and returns the
// receiver. Extra entries on either side are ignored.
func (l *LinearExpr) AddWeightedSum(vs []*Var, cs []float64) *LinearExpr {
	n := len(vs)
	if len(cs) < n {
		n = len(cs)
	}
	for i := 0; i < n; i++ {
		l.AddTerm(vs[i], cs[i])
	}
	return l
}

// Negate flips the sign of every term (constants included) and returns the
// receiver.
func (l *LinearExpr) Negate() *LinearExpr {
	for i := range l.terms {
		l.terms[i].Coeff = -l.terms[i].Coeff
	}
	return l
}

// Decompose reports the expression as linear with its ordered term list.
// The returned slice is the internal one; callers must not mutate it.
func (l *LinearExpr) Decompose() (bool, []Term) { return true, l.terms }

// Variables returns the referenced variables in order of first appearance.
func (l *LinearExpr) Variables() []*Var {
	seen := make(map[string]struct{}, len(l.terms))
	vars := make([]*Var, 0, len(l.terms))
	for _, t := range l.terms {
		if t.Var == nil {
			continue
		}
		if _, ok := seen[t.Var.name]; ok {
			continue
		}
		seen[t.Var.name] = struct{}{}
		vars = append(vars, t.Var)
	}
	return vars
}

// NonlinearExpr is an opaque nonlinear body. Only the referenced variables
// and a textual rendering (used by the GAMS writer) are available; no term
// decomposition exists.
type NonlinearExpr struct {
	text string
	vars []*Var
}

// NewNonlinearExpr creates a nonlinear expression from its textual form and
// the distinct variables it references, in order of first appearance.
func NewNonlinearExpr(text string, vars ...*Var) *NonlinearExpr {
	return &NonlinearExpr{text: text, vars: vars}
}

// Text returns the textual rendering of the expression.
func (n *NonlinearExpr) Text() string { return n.text }

// Decompose reports the expression as nonlinear; no terms are available.
func (n *NonlinearExpr) Decompose() (bool, []Term) { return false, nil }

// Variables returns the referenced variables in order of first appearance.
func (n *NonlinearExpr) Variables() []*Var {
	out := make([]*Var, len(n.vars))
	copy(out, n.vars)
	return out
}
