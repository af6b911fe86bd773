// SPDX-License-Identifier: MIT
// Package gisp: generalized independent set instance generation.

package gisp

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/discretenet/discretenet/model"
	"github.com/discretenet/discretenet/problem"
)

var (
	// ErrInvalidNodeRange indicates MinNodes/MaxNodes do not form a valid
	// range of at least one node.
	ErrInvalidNodeRange = errors.New("gisp: invalid node count range")

	// ErrInvalidProbability indicates a probability parameter outside [0, 1].
	ErrInvalidProbability = errors.New("gisp: probability not in [0,1]")

	// ErrUnknownSet indicates a WhichSet value other than SET1 or SET2.
	ErrUnknownSet = errors.New("gisp: unknown parameter set")

	// ErrNonPositiveSetParam indicates SetParam is zero or negative; it is a
	// divisor in SET1 and a revenue in SET2.
	ErrNonPositiveSetParam = errors.New("gisp: set parameter must be positive")
)

// Parameter regimes for revenues and costs.
const (
	Set1 = "SET1"
	Set2 = "SET2"
)

// Params configures the generator.
type Params struct {
	// MinNodes and MaxNodes bound the sampled node count (inclusive).
	MinNodes int
	MaxNodes int
	// EdgeProb is the Erdős–Rényi edge probability.
	EdgeProb float64
	// WhichSet selects the revenue/cost regime, Set1 or Set2.
	WhichSet string
	// SetParam is the edge-cost divisor (Set1) or uniform node revenue (Set2).
	SetParam float64
	// Alpha is the probability that an edge is removable.
	Alpha float64
}

// DefaultParams returns the reference configuration: 100-node SET2 graphs
// at edge probability 0.1 with three quarters of the edges removable.
func DefaultParams() Params {
	return Params{
		MinNodes: 100,
		MaxNodes: 100,
		EdgeProb: 0.1,
		WhichSet: Set2,
		SetParam: 100.0,
		Alpha:    0.75,
	}
}

func (p Params) validate() error {
	if p.MinNodes < 1 || p.MaxNodes < p.MinNodes {
		return fmt.Errorf("min=%d max=%d: %w", p.MinNodes, p.MaxNodes, ErrInvalidNodeRange)
	}
	if p.EdgeProb < 0 || p.EdgeProb > 1 {
		return fmt.Errorf("edge probability %g: %w", p.EdgeProb, ErrInvalidProbability)
	}
	if p.Alpha < 0 || p.Alpha > 1 {
		return fmt.Errorf("alpha %g: %w", p.Alpha, ErrInvalidProbability)
	}
	if p.WhichSet != Set1 && p.WhichSet != Set2 {
		return fmt.Errorf("%q: %w", p.WhichSet, ErrUnknownSet)
	}
	if p.SetParam <= 0 {
		return fmt.Errorf("set param %g: %w", p.SetParam, ErrNonPositiveSetParam)
	}
	return nil
}

// edge is one undirected base-graph edge with u < v.
type edge struct {
	u, v      int
	cost      float64
	removable bool
}

// Generator samples GISP instances. Create with New; the zero value is not
// usable.
type Generator struct {
	params Params
}

// New validates params and returns a generator.
func New(params Params) (*Generator, error) {
	if err := params.validate(); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	return &Generator{params: params}, nil
}

// Family returns "gisp".
func (g *Generator) Family() string { return "gisp" }

// Generate samples one instance from rng.
//
// The draw order is fixed so that a seed fully determines the instance:
// node count, then one Bernoulli trial per unordered pair {i, j} with
// i < j in ascending order, then node revenues in node order, then one
// removability trial per edge in creation order, then the instance tag.
func (g *Generator) Generate(rng *rand.Rand) (problem.Problem, error) {
	p := g.params

	n := p.MinNodes + rng.Intn(p.MaxNodes-p.MinNodes+1)

	var edges []edge
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() <= p.EdgeProb {
				edges = append(edges, edge{u: i, v: j})
			}
		}
	}

	revenue := make([]float64, n)
	switch p.WhichSet {
	case Set1:
		for i := range revenue {
			revenue[i] = float64(1 + rng.Intn(100))
		}
		for k := range edges {
			edges[k].cost = (revenue[edges[k].u] + revenue[edges[k].v]) / p.SetParam
		}
	case Set2:
		for i := range revenue {
			revenue[i] = p.SetParam
		}
		for k := range edges {
			edges[k].cost = 1.0
		}
	}

	for k := range edges {
		edges[k].removable = rng.Float64() <= p.Alpha
	}

	tag := rng.Int63()
	name := fmt.Sprintf("gisp_er_n=%d_m=%d_p=%.2f_%s_setparam=%.2f_alpha=%.2f_%d",
		n, len(edges), p.EdgeProb, p.WhichSet, p.SetParam, p.Alpha, tag)

	m, err := buildModel(name, n, revenue, edges)
	if err != nil {
		return nil, fmt.Errorf("Generate: %w", err)
	}
	return &Problem{name: name, params: p, nodes: n, edges: len(edges), model: m}, nil
}

// buildModel assembles the binary program for one sampled graph.
func buildModel(name string, n int, revenue []float64, edges []edge) (*model.Model, error) {
	m := model.NewModel(name)

	x := make([]*model.Var, n)
	for i := range x {
		v, err := m.NewVar(fmt.Sprintf("x[%d]", i), model.Binary)
		if err != nil {
			return nil, err
		}
		x[i] = v
	}

	obj := model.NewLinearExpr()
	for i, v := range x {
		obj.AddTerm(v, revenue[i])
	}

	for k, e := range edges {
		body := model.NewLinearExpr().Add(x[e.u]).Add(x[e.v])
		if e.removable {
			y, err := m.NewVar(fmt.Sprintf("y[%d,%d]", e.u, e.v), model.Binary)
			if err != nil {
				return nil, err
			}
			body.AddTerm(y, -1)
			obj.AddTerm(y, -e.cost)
		}
		if _, err := m.AddConstraintLE(fmt.Sprintf("conflict[%d]", k), body, 1); err != nil {
			return nil, err
		}
	}

	if err := m.Maximize(obj); err != nil {
		return nil, err
	}
	return m, nil
}

// Problem is one generated GISP instance.
type Problem struct {
	name   string
	params Params
	nodes  int
	edges  int
	model  *model.Model
}

// Name returns the instance name.
func (p *Problem) Name() string { return p.name }

// Parameters returns the generator parameters plus the sampled graph size.
func (p *Problem) Parameters() map[string]any {
	return map[string]any{
		"family":    "gisp",
		"min_n":     p.params.MinNodes,
		"max_n":     p.params.MaxNodes,
		"er_prob":   p.params.EdgeProb,
		"which_set": p.params.WhichSet,
		"set_param": p.params.SetParam,
		"alpha":     p.params.Alpha,
		"nodes":     p.nodes,
		"edges":     p.edges,
	}
}

// Model returns the underlying model.
func (p *Problem) Model() *model.Model { return p.model }

// IsLinear reports true: GISP models are pure binary linear programs.
func (p *Problem) IsLinear() bool { return true }
