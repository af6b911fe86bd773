// SPDX-License-Identifier: MIT
// Package model_test validates the builder surface: name uniqueness,
// ownership checks, bound configuration, declaration order, and the
// single-objective rule.

package model_test

import (
	"errors"
	"testing"

	"github.com/discretenet/discretenet/model"
)

func TestNewVar_Validation(t *testing.T) {
	m := model.NewModel("t")

	if _, err := m.NewVar("", model.Reals); !errors.Is(err, model.ErrEmptyName) {
		t.Fatalf("empty name: got %v, want ErrEmptyName", err)
	}

	if _, err := m.NewVar("x", model.Reals); err != nil {
		t.Fatalf("NewVar: %v", err)
	}
	if _, err := m.NewVar("x", model.Binary); !errors.Is(err, model.ErrDuplicateName) {
		t.Fatalf("duplicate name: got %v, want ErrDuplicateName", err)
	}

	if _, err := m.NewVar("bad", model.Domain(999)); err == nil {
		t.Fatal("out-of-range domain tag accepted")
	}
}

func TestAddConstraint_Validation(t *testing.T) {
	m := model.NewModel("t")
	x, err := m.NewVar("x", model.Reals)
	if err != nil {
		t.Fatalf("NewVar: %v", err)
	}
	body := model.NewLinearExpr().Add(x)

	if _, err = m.AddConstraint("c", body, nil, nil); !errors.Is(err, model.ErrNoBounds) {
		t.Fatalf("no bounds: got %v, want ErrNoBounds", err)
	}
	if _, err = m.AddConstraint("c", nil, nil, nil); !errors.Is(err, model.ErrNilExpr) {
		t.Fatalf("nil body: got %v, want ErrNilExpr", err)
	}

	if _, err = m.AddConstraintLE("c", body, 1); err != nil {
		t.Fatalf("AddConstraintLE: %v", err)
	}
	if _, err = m.AddConstraintGE("c", body, 0); !errors.Is(err, model.ErrDuplicateName) {
		t.Fatalf("duplicate constraint: got %v, want ErrDuplicateName", err)
	}
}

func TestAddConstraint_RejectsForeignVariables(t *testing.T) {
	m1 := model.NewModel("one")
	m2 := model.NewModel("two")
	x, err := m1.NewVar("x", model.Reals)
	if err != nil {
		t.Fatalf("NewVar: %v", err)
	}

	_, err = m2.AddConstraintLE("c", model.NewLinearExpr().Add(x), 1)
	if !errors.Is(err, model.ErrForeignVar) {
		t.Fatalf("foreign variable: got %v, want ErrForeignVar", err)
	}
}

func TestBounds_Configurations(t *testing.T) {
	m := model.NewModel("t")
	x, err := m.NewVar("x", model.Reals)
	if err != nil {
		t.Fatalf("NewVar: %v", err)
	}
	body := model.NewLinearExpr().Add(x)

	le, err := m.AddConstraintLE("le", body, 5)
	if err != nil {
		t.Fatalf("AddConstraintLE: %v", err)
	}
	hasLower, hasUpper, _, upper := le.Bounds()
	if hasLower || !hasUpper || upper != 5 {
		t.Fatalf("LE bounds = (%v, %v, _, %v)", hasLower, hasUpper, upper)
	}

	ge, err := m.AddConstraintGE("ge", body, 2)
	if err != nil {
		t.Fatalf("AddConstraintGE: %v", err)
	}
	hasLower, hasUpper, lower, _ := ge.Bounds()
	if !hasLower || hasUpper || lower != 2 {
		t.Fatalf("GE bounds = (%v, %v, %v, _)", hasLower, hasUpper, lower)
	}

	eq, err := m.AddConstraintEQ("eq", body, 3)
	if err != nil {
		t.Fatalf("AddConstraintEQ: %v", err)
	}
	hasLower, hasUpper, lower, upper = eq.Bounds()
	if !hasLower || !hasUpper || lower != 3 || upper != 3 {
		t.Fatalf("EQ bounds = (%v, %v, %v, %v)", hasLower, hasUpper, lower, upper)
	}
}

func TestBounds_ValuesAreCopied(t *testing.T) {
	m := model.NewModel("t")
	x, err := m.NewVar("x", model.Reals)
	if err != nil {
		t.Fatalf("NewVar: %v", err)
	}
	bound := 5.0
	c, err := m.AddConstraint("c", model.NewLinearExpr().Add(x), nil, &bound)
	if err != nil {
		t.Fatalf("AddConstraint: %v", err)
	}
	bound = 99
	if _, _, _, upper := c.Bounds(); upper != 5 {
		t.Fatalf("bound aliased caller pointer: got %v, want 5", upper)
	}
}

func TestConstraints_DeclarationOrder(t *testing.T) {
	m := model.NewModel("t")
	x, err := m.NewVar("x", model.Reals)
	if err != nil {
		t.Fatalf("NewVar: %v", err)
	}
	body := model.NewLinearExpr().Add(x)
	for _, name := range []string{"c[2]", "c[0]", "c[1]"} {
		if _, err := m.AddConstraintLE(name, body, 1); err != nil {
			t.Fatalf("AddConstraintLE(%s): %v", name, err)
		}
	}

	got := m.Constraints()
	want := []string{"c[2]", "c[0]", "c[1]"}
	for i, con := range got {
		if con.Name() != want[i] {
			t.Fatalf("constraint %d = %s, want %s", i, con.Name(), want[i])
		}
	}
}

func TestObjective_SingleAssignment(t *testing.T) {
	m := model.NewModel("t")
	x, err := m.NewVar("x", model.Reals)
	if err != nil {
		t.Fatalf("NewVar: %v", err)
	}

	if _, err := m.Objective(); !errors.Is(err, model.ErrNoObjective) {
		t.Fatalf("unset objective: got %v, want ErrNoObjective", err)
	}

	if err := m.Minimize(model.NewLinearExpr().Add(x)); err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	if err := m.Maximize(model.NewLinearExpr().Add(x)); !errors.Is(err, model.ErrObjectiveSet) {
		t.Fatalf("second objective: got %v, want ErrObjectiveSet", err)
	}

	obj, err := m.Objective()
	if err != nil {
		t.Fatalf("Objective: %v", err)
	}
	if !obj.IsMinimizing() {
		t.Fatal("objective sense changed by rejected second assignment")
	}
}

func TestLinearExpr_DecomposeKeepsInsertionOrder(t *testing.T) {
	m := model.NewModel("t")
	x, err := m.NewVar("x", model.Reals)
	if err != nil {
		t.Fatalf("NewVar: %v", err)
	}
	expr := model.NewLinearExpr().AddTerm(x, 2).AddConstant(7).AddTerm(x, 3)

	linear, terms := expr.Decompose()
	if !linear {
		t.Fatal("LinearExpr reported nonlinear")
	}
	if len(terms) != 3 {
		t.Fatalf("terms = %d, want 3 (repeated variables stay unmerged)", len(terms))
	}
	if terms[1].Var != nil || terms[1].Coeff != 7 {
		t.Fatalf("constant term = %+v", terms[1])
	}
}

func TestLinearExpr_VariablesDeduplicated(t *testing.T) {
	m := model.NewModel("t")
	x, err := m.NewVar("x", model.Reals)
	if err != nil {
		t.Fatalf("NewVar: %v", err)
	}
	y, err := m.NewVar("y", model.Reals)
	if err != nil {
		t.Fatalf("NewVar: %v", err)
	}
	expr := model.NewLinearExpr().Add(y).AddTerm(x, 2).AddTerm(y, 3)

	vars := expr.Variables()
	if len(vars) != 2 || vars[0].Name() != "y" || vars[1].Name() != "x" {
		t.Fatalf("Variables() order/dedup wrong: %v", vars)
	}
}

func TestNonlinearExpr(t *testing.T) {
	m := model.NewModel("t")
	x, err := m.NewVar("x", model.Reals)
	if err != nil {
		t.Fatalf("NewVar: %v", err)
	}
	expr := model.NewNonlinearExpr("x*x", x)

	linear, terms := expr.Decompose()
	if linear || terms != nil {
		t.Fatalf("nonlinear Decompose = (%v, %v)", linear, terms)
	}
	if expr.Text() != "x*x" {
		t.Fatalf("Text() = %q", expr.Text())
	}
	if vars := expr.Variables(); len(vars) != 1 || vars[0] != x {
		t.Fatalf("Variables() = %v", vars)
	}
}

func TestDomain_ClosedEnumeration(t *testing.T) {
	all := model.Domains()
	if len(all) == 0 {
		t.Fatal("Domains() empty")
	}
	for _, d := range all {
		if !d.Valid() {
			t.Fatalf("enumerated domain %v invalid", d)
		}
		if d.String() == "" {
			t.Fatalf("domain %d has empty name", int(d))
		}
	}
	if model.Domain(-1).Valid() || model.Domain(len(all)).Valid() {
		t.Fatal("out-of-range tag reported valid")
	}
}
