// SPDX-License-Identifier: MIT
// Package gisp_test validates parameter checking, determinism, and the
// structure of generated models.

package gisp_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/discretenet/discretenet/model"
	"github.com/discretenet/discretenet/problems/gisp"
	"github.com/discretenet/discretenet/vcg"
)

func testParams() gisp.Params {
	p := gisp.DefaultParams()
	// Dense enough that isolated nodes (which would make the objective
	// reference a constraint-free variable) are vanishingly unlikely.
	p.MinNodes = 12
	p.MaxNodes = 16
	p.EdgeProb = 0.6
	return p
}

func TestNew_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*gisp.Params)
		want   error
	}{
		{"inverted range", func(p *gisp.Params) { p.MinNodes, p.MaxNodes = 10, 5 }, gisp.ErrInvalidNodeRange},
		{"zero nodes", func(p *gisp.Params) { p.MinNodes = 0 }, gisp.ErrInvalidNodeRange},
		{"edge prob", func(p *gisp.Params) { p.EdgeProb = 1.5 }, gisp.ErrInvalidProbability},
		{"alpha", func(p *gisp.Params) { p.Alpha = -0.1 }, gisp.ErrInvalidProbability},
		{"set", func(p *gisp.Params) { p.WhichSet = "SET3" }, gisp.ErrUnknownSet},
		{"set param", func(p *gisp.Params) { p.SetParam = 0 }, gisp.ErrNonPositiveSetParam},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := gisp.DefaultParams()
			tc.mutate(&p)
			_, err := gisp.New(p)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	gen, err := gisp.New(testParams())
	require.NoError(t, err)

	p1, err := gen.Generate(rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	p2, err := gen.Generate(rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	require.Equal(t, p1.Name(), p2.Name())

	g1, err := vcg.Build(p1.Model())
	require.NoError(t, err)
	g2, err := vcg.Build(p2.Model())
	require.NoError(t, err)
	require.Equal(t, g1.NumVariables(), g2.NumVariables())
	require.Equal(t, g1.NumEdges(), g2.NumEdges())
	for _, e := range g1.Edges() {
		other := g2.Edge(e.Variable, e.Constraint)
		require.NotNil(t, other)
		require.Equal(t, e.Coeff, other.Coeff)
	}
}

func TestGenerate_ModelStructure(t *testing.T) {
	gen, err := gisp.New(testParams())
	require.NoError(t, err)

	p, err := gen.Generate(rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	require.True(t, p.IsLinear())
	require.True(t, strings.HasPrefix(p.Name(), "gisp_er_n="))

	m := p.Model()

	for _, v := range m.Vars() {
		require.Equal(t, model.Binary, v.Domain(), v.Name())
	}

	obj, err := m.Objective()
	require.NoError(t, err)
	require.False(t, obj.IsMinimizing())

	// Every constraint is "x_u + x_v (- y_uv) <= 1": two or three terms,
	// upper bound 1 only.
	for _, con := range m.Constraints() {
		hasLower, hasUpper, _, upper := con.Bounds()
		require.False(t, hasLower, con.Name())
		require.True(t, hasUpper, con.Name())
		require.Equal(t, 1.0, upper, con.Name())

		linear, terms := con.Body().Decompose()
		require.True(t, linear)
		require.GreaterOrEqual(t, len(terms), 2, con.Name())
		require.LessOrEqual(t, len(terms), 3, con.Name())
	}

	params := p.Parameters()
	require.Equal(t, "gisp", params["family"])
	nodes, ok := params["nodes"].(int)
	require.True(t, ok)
	require.GreaterOrEqual(t, nodes, 12)
	require.LessOrEqual(t, nodes, 16)
}

func TestGenerate_Set1Costs(t *testing.T) {
	p := testParams()
	p.WhichSet = gisp.Set1
	gen, err := gisp.New(p)
	require.NoError(t, err)

	prob, err := gen.Generate(rand.New(rand.NewSource(11)))
	require.NoError(t, err)

	// Removable edges carry negative objective coefficients; in SET1 they
	// are (rev_u + rev_v) / SetParam with integer revenues in [1, 100].
	obj, err := prob.Model().Objective()
	require.NoError(t, err)
	_, terms := obj.Body().Decompose()
	for _, term := range terms {
		if strings.HasPrefix(term.Var.Name(), "y[") {
			require.Negative(t, term.Coeff)
			require.GreaterOrEqual(t, -term.Coeff, 2.0/p.SetParam)
			require.LessOrEqual(t, -term.Coeff, 200.0/p.SetParam)
		} else {
			require.Positive(t, term.Coeff)
		}
	}
}

func TestGenerate_FeaturesComputable(t *testing.T) {
	gen, err := gisp.New(testParams())
	require.NoError(t, err)
	p, err := gen.Generate(rand.New(rand.NewSource(5)))
	require.NoError(t, err)

	g, err := vcg.Build(p.Model())
	require.NoError(t, err)
	require.Positive(t, g.NumVariables())
	require.Positive(t, g.NumEdges())

	// All-binary family: no continuous variables anywhere.
	for _, v := range g.Variables() {
		require.Equal(t, vcg.DomainBinary, v.Domain)
	}
}
