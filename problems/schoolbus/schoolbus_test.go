// SPDX-License-Identifier: MIT
// Package schoolbus_test validates parameter checking, determinism, and
// the structure of generated models.

package schoolbus_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/discretenet/discretenet/model"
	"github.com/discretenet/discretenet/problems/schoolbus"
	"github.com/discretenet/discretenet/vcg"
)

func testParams() schoolbus.Params {
	p := schoolbus.DefaultParams()
	p.NumSchools = 2
	p.NumRoutes = 2
	p.MaxTime = 8
	p.TimeWindow = 2
	p.RouteLengthAvg = 3
	p.RouteLengthStd = 1
	return p
}

func TestNew_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*schoolbus.Params)
		want   error
	}{
		{"zero schools", func(p *schoolbus.Params) { p.NumSchools = 0 }, schoolbus.ErrInvalidCount},
		{"zero routes", func(p *schoolbus.Params) { p.NumRoutes = 0 }, schoolbus.ErrInvalidCount},
		{"empty horizon", func(p *schoolbus.Params) { p.MaxTime = 1 }, schoolbus.ErrInvalidHorizon},
		{"negative window", func(p *schoolbus.Params) { p.TimeWindow = -1 }, schoolbus.ErrInvalidWindow},
		{"zero avg", func(p *schoolbus.Params) { p.RouteLengthAvg = 0 }, schoolbus.ErrInvalidRouteLength},
		{"negative std", func(p *schoolbus.Params) { p.RouteLengthStd = -1 }, schoolbus.ErrInvalidRouteLength},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := schoolbus.DefaultParams()
			tc.mutate(&p)
			_, err := schoolbus.New(p)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	gen, err := schoolbus.New(testParams())
	require.NoError(t, err)

	p1, err := gen.Generate(rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	p2, err := gen.Generate(rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	require.Equal(t, p1.Name(), p2.Name())
	require.Equal(t, p1.Parameters()["routes"], p2.Parameters()["routes"])

	g1, err := vcg.Build(p1.Model())
	require.NoError(t, err)
	g2, err := vcg.Build(p2.Model())
	require.NoError(t, err)
	require.Equal(t, g1.NumEdges(), g2.NumEdges())
	for _, e := range g1.Edges() {
		other := g2.Edge(e.Variable, e.Constraint)
		require.NotNil(t, other)
		require.Equal(t, e.Coeff, other.Coeff)
	}
}

func TestGenerate_ModelStructure(t *testing.T) {
	params := testParams()
	gen, err := schoolbus.New(params)
	require.NoError(t, err)

	p, err := gen.Generate(rand.New(rand.NewSource(4)))
	require.NoError(t, err)
	require.True(t, p.IsLinear())
	require.True(t, strings.HasPrefix(p.Name(), "S2_R2_T8_tw2_"))

	m := p.Model()
	last := params.MaxTime - 1
	slots := last * params.NumSchools

	// x per (slot, school, route), y per (slot, school), a single fleet
	// counter z.
	var numFinish, numStart, numFleet int
	for _, v := range m.Vars() {
		switch {
		case strings.HasPrefix(v.Name(), "x["):
			require.Equal(t, model.Binary, v.Domain(), v.Name())
			numFinish++
		case strings.HasPrefix(v.Name(), "y["):
			require.Equal(t, model.Binary, v.Domain(), v.Name())
			numStart++
		case v.Name() == "z":
			require.Equal(t, model.NonNegativeIntegers, v.Domain())
			numFleet++
		default:
			t.Fatalf("unexpected variable %s", v.Name())
		}
	}
	require.Equal(t, slots*params.NumRoutes, numFinish)
	require.Equal(t, slots, numStart)
	require.Equal(t, 1, numFleet)

	// One assignment equality per route and per school, one window and
	// one order row per (slot, route), one fleet row per slot.
	counts := map[string]int{}
	for _, con := range m.Constraints() {
		kind := con.Name()[:strings.IndexByte(con.Name(), '[')]
		counts[kind]++

		hasLower, hasUpper, lower, upper := con.Bounds()
		switch kind {
		case "assign", "start":
			require.True(t, hasLower && hasUpper, con.Name())
			require.Equal(t, 1.0, lower, con.Name())
			require.Equal(t, 1.0, upper, con.Name())
		case "window", "order", "fleet":
			require.False(t, hasLower, con.Name())
			require.True(t, hasUpper, con.Name())
			require.Equal(t, 0.0, upper, con.Name())
		default:
			t.Fatalf("unexpected constraint %s", con.Name())
		}
	}
	require.Equal(t, params.NumSchools*params.NumRoutes, counts["assign"])
	require.Equal(t, params.NumSchools, counts["start"])
	require.Equal(t, slots*params.NumRoutes, counts["window"])
	require.Equal(t, slots*params.NumRoutes, counts["order"])
	require.Equal(t, last, counts["fleet"])

	// The objective is the fleet size alone.
	obj, err := m.Objective()
	require.NoError(t, err)
	require.True(t, obj.IsMinimizing())
	_, terms := obj.Body().Decompose()
	require.Len(t, terms, 1)
	require.Equal(t, "z", terms[0].Var.Name())
	require.Equal(t, 1.0, terms[0].Coeff)
}

func TestGenerate_RouteLengthsClamped(t *testing.T) {
	p := testParams()
	// A wide distribution around a short mean produces negative draws,
	// which must come out as one-slot routes.
	p.RouteLengthAvg = 1
	p.RouteLengthStd = 10
	gen, err := schoolbus.New(p)
	require.NoError(t, err)

	prob, err := gen.Generate(rand.New(rand.NewSource(2)))
	require.NoError(t, err)
	for _, school := range prob.Parameters()["routes"].([][]int) {
		for _, length := range school {
			require.GreaterOrEqual(t, length, 1)
		}
	}
}

func TestGenerate_IntegerDomainPresent(t *testing.T) {
	gen, err := schoolbus.New(testParams())
	require.NoError(t, err)
	p, err := gen.Generate(rand.New(rand.NewSource(5)))
	require.NoError(t, err)

	g, err := vcg.Build(p.Model())
	require.NoError(t, err)

	// Mixed binary/integer family: the fleet counter classifies as a
	// general integer, everything else as binary.
	var binary, integer int
	for _, v := range g.Variables() {
		switch v.Domain {
		case vcg.DomainBinary:
			binary++
		case vcg.DomainInteger:
			integer++
		}
	}
	require.Positive(t, binary)
	require.Equal(t, 1, integer)
}
