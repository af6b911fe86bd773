// SPDX-License-Identifier: MIT
// Package model: Model, Var, Constraint, and Objective types.
//
// Construction contract:
//   - Models are built by appending variables and constraints, then setting
//     the objective; every adder validates early and returns sentinel errors.
//   - Once built, a Model is immutable by convention: nothing in this module
//     mutates a model after construction, and no method reintroduces
//     randomness. Deterministic inputs yield a bit-identical model.
//   - Constraints are enumerated in declaration order, which is the stable
//     order every downstream transform relies on.

package model

import "fmt"

// Sense is the optimization direction of an objective.
type Sense int

const (
	// Minimize asks for the smallest objective value.
	Minimize Sense = iota
	// Maximize asks for the largest objective value.
	Maximize
)

// String returns "minimize" or "maximize".
func (s Sense) String() string {
	if s == Maximize {
		return "maximize"
	}
	return "minimize"
}

// Var is a decision variable. Vars are created through Model.NewVar and are
// only meaningful within the model that owns them.
type Var struct {
	name   string
	domain Domain
	owner  *Model
}

// Name returns the unique variable name. Indexed variables follow the
// "x[1]" convention.
func (v *Var) Name() string { return v.name }

// Domain returns the declared virtual-domain tag.
func (v *Var) Domain() Domain { return v.domain }

// Constraint is a body expression with an optional lower and/or upper bound.
// At least one bound is always present (enforced at construction).
type Constraint struct {
	name  string
	body  Expr
	lower *float64
	upper *float64
}

// Name returns the unique constraint name. Indexed constraints follow the
// "c[1]" convention.
func (c *Constraint) Name() string { return c.name }

// Body returns the constraint body expression.
func (c *Constraint) Body() Expr { return c.body }

// Bounds reports the bound configuration: presence flags and values. A value
// is only meaningful when its flag is true.
func (c *Constraint) Bounds() (hasLower, hasUpper bool, lower, upper float64) {
	if c.lower != nil {
		hasLower, lower = true, *c.lower
	}
	if c.upper != nil {
		hasUpper, upper = true, *c.upper
	}
	return hasLower, hasUpper, lower, upper
}

// Objective is an expression together with an optimization sense.
type Objective struct {
	body  Expr
	sense Sense
}

// Body returns the objective expression.
func (o *Objective) Body() Expr { return o.body }

// Sense returns the optimization direction.
func (o *Objective) Sense() Sense { return o.sense }

// IsMinimizing reports whether the objective minimizes.
func (o *Objective) IsMinimizing() bool { return o.sense == Minimize }

// Model is an ordered collection of variables and constraints with exactly
// one objective. Models are not safe for concurrent mutation; build them in
// one goroutine, then share freely (all read paths are lock-free).
type Model struct {
	name        string
	vars        []*Var
	varIndex    map[string]*Var
	constraints []*Constraint
	conIndex    map[string]struct{}
	objective   *Objective
}

// NewModel creates an empty model with the given name.
func NewModel(name string) *Model {
	return &Model{
		name:     name,
		varIndex: make(map[string]*Var),
		conIndex: make(map[string]struct{}),
	}
}

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// NewVar declares a variable with the given unique name and domain tag.
func (m *Model) NewVar(name string, domain Domain) (*Var, error) {
	if name == "" {
		return nil, fmt.Errorf("NewVar: %w", ErrEmptyName)
	}
	if !domain.Valid() {
		return nil, fmt.Errorf("NewVar(%s): domain tag %d out of range", name, int(domain))
	}
	if _, ok := m.varIndex[name]; ok {
		return nil, fmt.Errorf("NewVar(%s): %w", name, ErrDuplicateName)
	}
	v := &Var{name: name, domain: domain, owner: m}
	m.vars = append(m.vars, v)
	m.varIndex[name] = v
	return v, nil
}

// Var returns the variable with the given name, or nil if none exists.
func (m *Model) Var(name string) *Var { return m.varIndex[name] }

// Vars returns all variables in declaration order. The slice is fresh on
// each call.
func (m *Model) Vars() []*Var {
	out := make([]*Var, len(m.vars))
	copy(out, m.vars)
	return out
}

// AddConstraint appends a constraint with the given bound configuration.
// Either bound pointer may be nil (absent); both nil is rejected with
// ErrNoBounds. Bound values are copied, so callers may reuse the pointers.
func (m *Model) AddConstraint(name string, body Expr, lower, upper *float64) (*Constraint, error) {
	if name == "" {
		return nil, fmt.Errorf("AddConstraint: %w", ErrEmptyName)
	}
	if body == nil {
		return nil, fmt.Errorf("AddConstraint(%s): %w", name, ErrNilExpr)
	}
	if lower == nil && upper == nil {
		return nil, fmt.Errorf("AddConstraint(%s): %w", name, ErrNoBounds)
	}
	if _, ok := m.conIndex[name]; ok {
		return nil, fmt.Errorf("AddConstraint(%s): %w", name, ErrDuplicateName)
	}
	if err := m.checkOwnership(body); err != nil {
		return nil, fmt.Errorf("AddConstraint(%s): %w", name, err)
	}
	c := &Constraint{name: name, body: body}
	if lower != nil {
		l := *lower
		c.lower = &l
	}
	if upper != nil {
		u := *upper
		c.upper = &u
	}
	m.constraints = append(m.constraints, c)
	m.conIndex[name] = struct{}{}
	return c, nil
}

// AddConstraintLE appends "body <= bound".
func (m *Model) AddConstraintLE(name string, body Expr, bound float64) (*Constraint, error) {
	return m.AddConstraint(name, body, nil, &bound)
}

// AddConstraintGE appends "body >= bound".
func (m *Model) AddConstraintGE(name string, body Expr, bound float64) (*Constraint, error) {
	return m.AddConstraint(name, body, &bound, nil)
}

// AddConstraintEQ appends "body == bound".
func (m *Model) AddConstraintEQ(name string, body Expr, bound float64) (*Constraint, error) {
	return m.AddConstraint(name, body, &bound, &bound)
}

// Constraints returns all constraints in declaration order. The slice is
// fresh on each call.
func (m *Model) Constraints() []*Constraint {
	out := make([]*Constraint, len(m.constraints))
	copy(out, m.constraints)
	return out
}

// Minimize sets the objective to minimize body.
func (m *Model) Minimize(body Expr) error { return m.setObjective(body, Minimize) }

// Maximize sets the objective to maximize body.
func (m *Model) Maximize(body Expr) error { return m.setObjective(body, Maximize) }

func (m *Model) setObjective(body Expr, sense Sense) error {
	if body == nil {
		return fmt.Errorf("setObjective: %w", ErrNilExpr)
	}
	if m.objective != nil {
		return fmt.Errorf("setObjective: %w", ErrObjectiveSet)
	}
	if err := m.checkOwnership(body); err != nil {
		return fmt.Errorf("setObjective: %w", err)
	}
	m.objective = &Objective{body: body, sense: sense}
	return nil
}

// Objective returns the model objective, or ErrNoObjective if none was set.
func (m *Model) Objective() (*Objective, error) {
	if m.objective == nil {
		return nil, ErrNoObjective
	}
	return m.objective, nil
}

// checkOwnership rejects expressions referencing nil variables or variables
// belonging to a different model.
func (m *Model) checkOwnership(body Expr) error {
	for _, v := range body.Variables() {
		if v == nil {
			return ErrNilVar
		}
		if v.owner != m {
			return fmt.Errorf("variable %s: %w", v.name, ErrForeignVar)
		}
	}
	return nil
}
