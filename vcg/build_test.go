// SPDX-License-Identifier: MIT
// Package vcg_test validates the model → graph transform: sign
// normalization, equality tie-break, ranged rejection, constant folding,
// coefficient accumulation, objective stamping, and idempotence.

package vcg_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/discretenet/discretenet/model"
	"github.com/discretenet/discretenet/vcg"
)

// fixtureModel builds the reference scenario:
//
//	c1: 2·x1 + 3·x2 <= 10
//	c2: x1 + x2 + y + 1 >= 2
//	c3: y + z == 3
//	maximize -(x1 + 2·x2 + 3·y + 4·z)
//
// with x1, x2 integer, y continuous, z binary.
func fixtureModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.NewModel("fixture")

	x1, err := m.NewVar("x[1]", model.Integers)
	require.NoError(t, err)
	x2, err := m.NewVar("x[2]", model.Integers)
	require.NoError(t, err)
	y, err := m.NewVar("y", model.Reals)
	require.NoError(t, err)
	z, err := m.NewVar("z", model.Binary)
	require.NoError(t, err)

	_, err = m.AddConstraintLE("c[1]", model.NewLinearExpr().AddTerm(x1, 2).AddTerm(x2, 3), 10)
	require.NoError(t, err)
	_, err = m.AddConstraintGE("c[2]", model.NewLinearExpr().Add(x1).Add(x2).Add(y).AddConstant(1), 2)
	require.NoError(t, err)
	_, err = m.AddConstraintEQ("c[3]", model.NewLinearExpr().Add(y).Add(z), 3)
	require.NoError(t, err)

	require.NoError(t, m.Maximize(
		model.NewLinearExpr().AddTerm(x1, 1).AddTerm(x2, 2).AddTerm(y, 3).AddTerm(z, 4).Negate()))
	return m
}

func TestBuild_NilModel(t *testing.T) {
	g, err := vcg.Build(nil)
	require.ErrorIs(t, err, vcg.ErrNilModel)
	require.Nil(t, g)
}

func TestBuild_FixtureScenario(t *testing.T) {
	g, err := vcg.Build(fixtureModel(t))
	require.NoError(t, err)

	require.Equal(t, 4, g.NumVariables())
	require.Equal(t, 3, g.NumConstraints())
	require.Equal(t, 7, g.NumEdges())

	c1 := g.Constraint("c[1]")
	require.Equal(t, vcg.KindLeq, c1.Kind)
	require.Equal(t, vcg.KindLeq, c1.OriginalKind)
	require.Equal(t, 10.0, c1.Bound)
	require.Equal(t, 2.0, g.Edge("x[1]", "c[1]").Coeff)
	require.Equal(t, 3.0, g.Edge("x[2]", "c[1]").Coeff)

	// c2 was >= 2 with a +1 body constant: flip to <=, fold the constant.
	c2 := g.Constraint("c[2]")
	require.Equal(t, vcg.KindLeq, c2.Kind)
	require.Equal(t, vcg.KindGeq, c2.OriginalKind)
	require.Equal(t, -1.0, c2.Bound)
	require.Equal(t, -1.0, g.Edge("x[1]", "c[2]").Coeff)
	require.Equal(t, -1.0, g.Edge("x[2]", "c[2]").Coeff)
	require.Equal(t, -1.0, g.Edge("y", "c[2]").Coeff)

	c3 := g.Constraint("c[3]")
	require.Equal(t, vcg.KindEq, c3.Kind)
	require.Equal(t, vcg.KindEq, c3.OriginalKind)
	require.Equal(t, 3.0, c3.Bound)

	// Maximize source: coefficients are flipped to minimize sense.
	for name, want := range map[string]float64{"x[1]": 1, "x[2]": 2, "y": 3, "z": 4} {
		node := g.Variable(name)
		require.True(t, node.HasObjCoeff, name)
		require.Equal(t, want, node.ObjCoeff, name)
	}

	require.Equal(t, vcg.DomainInteger, g.Variable("x[1]").Domain)
	require.Equal(t, vcg.DomainInteger, g.Variable("x[2]").Domain)
	require.Equal(t, vcg.DomainContinuous, g.Variable("y").Domain)
	require.Equal(t, vcg.DomainBinary, g.Variable("z").Domain)
}

func TestBuild_MinimizeKeepsSigns(t *testing.T) {
	m := model.NewModel("min")
	x, err := m.NewVar("x", model.Reals)
	require.NoError(t, err)
	_, err = m.AddConstraintLE("c", model.NewLinearExpr().Add(x), 1)
	require.NoError(t, err)
	require.NoError(t, m.Minimize(model.NewLinearExpr().AddTerm(x, 5)))

	g, err := vcg.Build(m)
	require.NoError(t, err)
	require.Equal(t, 5.0, g.Variable("x").ObjCoeff)
}

func TestBuild_EqualityTieBreak(t *testing.T) {
	m := model.NewModel("eq")
	x, err := m.NewVar("x", model.Reals)
	require.NoError(t, err)
	three := 3.0
	_, err = m.AddConstraint("c", model.NewLinearExpr().Add(x), &three, &three)
	require.NoError(t, err)
	require.NoError(t, m.Minimize(model.NewLinearExpr().Add(x)))

	g, err := vcg.Build(m)
	require.NoError(t, err)
	node := g.Constraint("c")
	require.Equal(t, vcg.KindEq, node.Kind)
	require.Equal(t, vcg.KindEq, node.OriginalKind)
	require.Equal(t, 3.0, node.Bound)
}

func TestBuild_RangedConstraintRejected(t *testing.T) {
	m := model.NewModel("ranged")
	x, err := m.NewVar("x", model.Reals)
	require.NoError(t, err)
	lo, hi := 1.0, 5.0
	_, err = m.AddConstraint("c", model.NewLinearExpr().Add(x), &lo, &hi)
	require.NoError(t, err)
	require.NoError(t, m.Minimize(model.NewLinearExpr().Add(x)))

	g, err := vcg.Build(m)
	require.ErrorIs(t, err, vcg.ErrRangedConstraint)
	require.Nil(t, g, "no partial graph may escape")
}

func TestBuild_RepeatedTermsSum(t *testing.T) {
	m := model.NewModel("repeat")
	x, err := m.NewVar("x", model.Reals)
	require.NoError(t, err)
	// x appears twice: 2·x + 3·x <= 10 must yield one edge with coeff 5.
	_, err = m.AddConstraintLE("c", model.NewLinearExpr().AddTerm(x, 2).AddTerm(x, 3), 10)
	require.NoError(t, err)
	require.NoError(t, m.Minimize(model.NewLinearExpr().Add(x)))

	g, err := vcg.Build(m)
	require.NoError(t, err)
	require.Equal(t, 1, g.NumEdges())
	require.Equal(t, 5.0, g.Edge("x", "c").Coeff)
}

func TestBuild_NonlinearEdgesCarryNoCoefficient(t *testing.T) {
	m := model.NewModel("nonlinear")
	x1, err := m.NewVar("x[1]", model.Reals)
	require.NoError(t, err)
	x2, err := m.NewVar("x[2]", model.Reals)
	require.NoError(t, err)
	_, err = m.AddConstraintLE("c", model.NewNonlinearExpr("2*x[1]*x[1] + x[2]", x1, x2), 10)
	require.NoError(t, err)
	require.NoError(t, m.Minimize(model.NewLinearExpr().Add(x1)))

	g, err := vcg.Build(m)
	require.NoError(t, err)
	require.False(t, g.Constraint("c").IsLinear)
	for _, name := range []string{"x[1]", "x[2]"} {
		e := g.Edge(name, "c")
		require.NotNil(t, e)
		require.False(t, e.IsLinear)
		require.Zero(t, e.Coeff)
	}
}

func TestBuild_NonlinearObjectiveStampsNothing(t *testing.T) {
	m := model.NewModel("nlobj")
	x, err := m.NewVar("x", model.Reals)
	require.NoError(t, err)
	_, err = m.AddConstraintLE("c", model.NewLinearExpr().Add(x), 1)
	require.NoError(t, err)
	require.NoError(t, m.Minimize(model.NewNonlinearExpr("x*x", x)))

	g, err := vcg.Build(m)
	require.NoError(t, err)
	require.False(t, g.Variable("x").HasObjCoeff)
}

func TestBuild_ObjectiveOnlyVariableFatal(t *testing.T) {
	m := model.NewModel("orphan")
	x, err := m.NewVar("x", model.Reals)
	require.NoError(t, err)
	free, err := m.NewVar("free", model.Reals)
	require.NoError(t, err)
	_, err = m.AddConstraintLE("c", model.NewLinearExpr().Add(x), 1)
	require.NoError(t, err)
	require.NoError(t, m.Minimize(model.NewLinearExpr().Add(x).Add(free)))

	_, err = vcg.Build(m)
	require.ErrorIs(t, err, vcg.ErrVariableNotInConstraint)
}

func TestBuild_RepeatedObjectiveTermsAccumulate(t *testing.T) {
	m := model.NewModel("objrepeat")
	x, err := m.NewVar("x", model.Reals)
	require.NoError(t, err)
	_, err = m.AddConstraintLE("c", model.NewLinearExpr().Add(x), 1)
	require.NoError(t, err)
	require.NoError(t, m.Minimize(model.NewLinearExpr().AddTerm(x, 2).AddTerm(x, 3)))

	g, err := vcg.Build(m)
	require.NoError(t, err)
	require.Equal(t, 5.0, g.Variable("x").ObjCoeff)
}

func TestBuild_Idempotent(t *testing.T) {
	m := fixtureModel(t)
	g1, err := vcg.Build(m)
	require.NoError(t, err)
	g2, err := vcg.Build(m)
	require.NoError(t, err)

	if !reflect.DeepEqual(g1.Variables(), g2.Variables()) {
		t.Fatal("variable nodes differ between builds")
	}
	if !reflect.DeepEqual(g1.Constraints(), g2.Constraints()) {
		t.Fatal("constraint nodes differ between builds")
	}
	if !reflect.DeepEqual(g1.Edges(), g2.Edges()) {
		t.Fatal("edges differ between builds")
	}
}

func TestBuild_WrapsModelErrors(t *testing.T) {
	m := model.NewModel("noobj")
	x, err := m.NewVar("x", model.Reals)
	require.NoError(t, err)
	_, err = m.AddConstraintLE("c", model.NewLinearExpr().Add(x), 1)
	require.NoError(t, err)

	_, err = vcg.Build(m)
	if !errors.Is(err, model.ErrNoObjective) {
		t.Fatalf("expected ErrNoObjective, got %v", err)
	}
}
