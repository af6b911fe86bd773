// SPDX-License-Identifier: MIT
// Package fcmnf: fixed-charge multicommodity network flow generation.

package fcmnf

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/discretenet/discretenet/model"
	"github.com/discretenet/discretenet/problem"
)

var (
	// ErrInvalidNodeRange indicates MinNodes/MaxNodes do not form a valid
	// range of at least two nodes.
	ErrInvalidNodeRange = errors.New("fcmnf: invalid node count range")

	// ErrInvalidProbability indicates an edge probability outside [0, 1].
	ErrInvalidProbability = errors.New("fcmnf: probability not in [0,1]")

	// ErrInvalidRange indicates an inverted or non-positive integer range
	// parameter.
	ErrInvalidRange = errors.New("fcmnf: invalid range parameter")

	// ErrNoCommodities indicates a non-positive commodity count.
	ErrNoCommodities = errors.New("fcmnf: commodity count must be positive")

	// ErrDisconnected indicates no connected origin/destination pair could be
	// sampled; the graph has no usable arcs.
	ErrDisconnected = errors.New("fcmnf: sampled graph admits no commodity path")
)

// Params configures the generator.
type Params struct {
	// MinNodes and MaxNodes bound the sampled node count (inclusive).
	MinNodes int
	MaxNodes int
	// EdgeProb is the probability of each ordered arc (i, j), i != j.
	EdgeProb float64
	// VarCostLo and VarCostHi bound the per-unit arc cost (inclusive).
	VarCostLo int
	VarCostHi int
	// QuantityLo and QuantityHi bound the commodity quantity (inclusive).
	QuantityLo int
	QuantityHi int
	// FixedToVariableRatio scales variable costs into fixed opening charges.
	FixedToVariableRatio int
	// EdgeUpper bounds how many commodities can fit on one arc; capacities
	// are EdgeUpper-scaled quantity draws.
	EdgeUpper int
	// NumCommodities is K, the number of origin/destination/quantity triples.
	NumCommodities int
}

// DefaultParams returns the reference configuration from the literature:
// 100 nodes, arc probability 0.1, 35 commodities.
func DefaultParams() Params {
	return Params{
		MinNodes:             100,
		MaxNodes:             100,
		EdgeProb:             0.1,
		VarCostLo:            11,
		VarCostHi:            50,
		QuantityLo:           10,
		QuantityHi:           100,
		FixedToVariableRatio: 100,
		EdgeUpper:            35,
		NumCommodities:       35,
	}
}

func (p Params) validate() error {
	if p.MinNodes < 2 || p.MaxNodes < p.MinNodes {
		return fmt.Errorf("min=%d max=%d: %w", p.MinNodes, p.MaxNodes, ErrInvalidNodeRange)
	}
	if p.EdgeProb < 0 || p.EdgeProb > 1 {
		return fmt.Errorf("edge probability %g: %w", p.EdgeProb, ErrInvalidProbability)
	}
	if p.VarCostLo < 1 || p.VarCostHi < p.VarCostLo {
		return fmt.Errorf("variable cost [%d,%d]: %w", p.VarCostLo, p.VarCostHi, ErrInvalidRange)
	}
	if p.QuantityLo < 1 || p.QuantityHi < p.QuantityLo {
		return fmt.Errorf("quantity [%d,%d]: %w", p.QuantityLo, p.QuantityHi, ErrInvalidRange)
	}
	if p.FixedToVariableRatio < 1 || p.EdgeUpper < 1 {
		return fmt.Errorf("ratio=%d edge upper=%d: %w", p.FixedToVariableRatio, p.EdgeUpper, ErrInvalidRange)
	}
	if p.NumCommodities < 1 {
		return fmt.Errorf("K=%d: %w", p.NumCommodities, ErrNoCommodities)
	}
	return nil
}

// arc is one directed arc with its sampled costs and capacity.
type arc struct {
	u, v      int
	varCost   float64
	fixedCost float64
	cap       float64
}

// commodity is one origin/destination/quantity triple.
type commodity struct {
	origin, dest int
	quantity     float64
}

// Generator samples FCMNF instances. Create with New; the zero value is
// not usable.
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

// Family returns "fcmnf".
func (g *Generator) Family() string { return "fcmnf" }

// Generate samples one instance from rng.
//
// The draw order is fixed: node count, one Bernoulli trial per ordered
// pair (i, j) with i != j in ascending (i, j) order, per-arc costs and
// capacities in arc order, commodity endpoint/quantity draws, then the
// instance tag.
func (g *Generator) Generate(rng *rand.Rand) (problem.Problem, error) {
	p := g.params

	n := p.MinNodes + rng.Intn(p.MaxNodes-p.MinNodes+1)

	var arcs []arc
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if rng.Float64() <= p.EdgeProb {
				arcs = append(arcs, arc{u: i, v: j})
			}
		}
	}

	intn := func(lo, hi int) float64 { return float64(lo + rng.Intn(hi-lo+1)) }
	for k := range arcs {
		arcs[k].varCost = intn(p.VarCostLo, p.VarCostHi)
		arcs[k].fixedCost = intn(p.FixedToVariableRatio*p.VarCostLo, p.FixedToVariableRatio*p.VarCostHi)
		arcs[k].cap = intn(1, p.EdgeUpper) * intn(p.QuantityLo, p.QuantityHi)
	}

	commodities, err := sampleCommodities(rng, p, n, arcs)
	if err != nil {
		return nil, fmt.Errorf("Generate: %w", err)
	}

	tag := rng.Int63()
	name := fmt.Sprintf("fcmnf_nc%d_er_n%d_m%d_p%g_vcr%d_%d_cqr%d_%d_fvr%d_eu%d_%d",
		p.NumCommodities, n, len(arcs), p.EdgeProb,
		p.VarCostLo, p.VarCostHi, p.QuantityLo, p.QuantityHi,
		p.FixedToVariableRatio, p.EdgeUpper, tag)

	m, err := buildModel(name, n, arcs, commodities)
	if err != nil {
		return nil, fmt.Errorf("Generate: %w", err)
	}
	return &Problem{name: name, params: p, nodes: n, arcs: len(arcs), model: m}, nil
}

// sampleCommodities draws K origin/destination/quantity triples whose
// endpoints are connected by a directed path. Each rejected pair still
// consumes its two endpoint draws, keeping the stream aligned with the
// documented order. Sampling aborts once every ordered pair has been seen
// connected-checked without success.
func sampleCommodities(rng *rand.Rand, p Params, n int, arcs []arc) ([]commodity, error) {
	succ := make([][]int, n)
	for _, a := range arcs {
		succ[a.u] = append(succ[a.u], a.v)
	}

	out := make([]commodity, 0, p.NumCommodities)
	misses := 0
	for len(out) < p.NumCommodities {
		i, j := rng.Intn(n), rng.Intn(n)
		if i == j || !reachable(succ, i, j) {
			misses++
			if misses > n*n {
				return nil, fmt.Errorf("after %d draws: %w", misses, ErrDisconnected)
			}
			continue
		}
		out = append(out, commodity{
			origin:   i,
			dest:     j,
			quantity: float64(p.QuantityLo + rng.Intn(p.QuantityHi-p.QuantityLo+1)),
		})
	}
	return out, nil
}

// reachable reports whether dst can be reached from src by a breadth-first
// walk over the successor lists.
func reachable(succ [][]int, src, dst int) bool {
	visited := make([]bool, len(succ))
	visited[src] = true
	queue := []int{src}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, next := range succ[node] {
			if next == dst {
				return true
			}
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}

// buildModel assembles the mixed binary/continuous program for one sampled
// network.
func buildModel(name string, n int, arcs []arc, commodities []commodity) (*model.Model, error) {
	m := model.NewModel(name)

	y := make([]*model.Var, len(arcs))
	for k, a := range arcs {
		v, err := m.NewVar(fmt.Sprintf("y[%d,%d]", a.u, a.v), model.Binary)
		if err != nil {
			return nil, err
		}
		y[k] = v
	}

	// x[k][a] routes the fraction of commodity k's quantity over arc a.
	x := make([][]*model.Var, len(commodities))
	for k := range commodities {
		x[k] = make([]*model.Var, len(arcs))
		for a, arc := range arcs {
			v, err := m.NewVar(fmt.Sprintf("x[%d,%d,%d]", arc.u, arc.v, k), model.UnitInterval)
			if err != nil {
				return nil, err
			}
			x[k][a] = v
		}
	}

	// Arc indices incident to each node, for conservation bodies.
	outArcs := make([][]int, n)
	inArcs := make([][]int, n)
	for a, arc := range arcs {
		outArcs[arc.u] = append(outArcs[arc.u], a)
		inArcs[arc.v] = append(inArcs[arc.v], a)
	}

	for k, com := range commodities {
		for node := 0; node < n; node++ {
			body := model.NewLinearExpr()
			for _, a := range outArcs[node] {
				body.Add(x[k][a])
			}
			for _, a := range inArcs[node] {
				body.AddTerm(x[k][a], -1)
			}
			switch node {
			case com.origin:
				body.AddConstant(-1)
			case com.dest:
				body.AddConstant(1)
			}
			if _, err := m.AddConstraintEQ(fmt.Sprintf("flow[%d,%d]", k, node), body, 0); err != nil {
				return nil, err
			}
		}
	}

	for a, arc := range arcs {
		body := model.NewLinearExpr()
		for k, com := range commodities {
			body.AddTerm(x[k][a], com.quantity)
		}
		body.AddTerm(y[a], -arc.cap)
		if _, err := m.AddConstraintLE(fmt.Sprintf("cap[%d,%d]", arc.u, arc.v), body, 0); err != nil {
			return nil, err
		}
	}

	obj := model.NewLinearExpr()
	for a, arc := range arcs {
		obj.AddTerm(y[a], arc.fixedCost)
	}
	for k, com := range commodities {
		for a, arc := range arcs {
			obj.AddTerm(x[k][a], arc.varCost*com.quantity)
		}
	}
	if err := m.Minimize(obj); err != nil {
		return nil, err
	}
	return m, nil
}

// Problem is one generated FCMNF instance.
type Problem struct {
	name   string
	params Params
	nodes  int
	arcs   int
	model  *model.Model
}

// Name returns the instance name.
func (p *Problem) Name() string { return p.name }

// Parameters returns the generator parameters plus the sampled graph size.
func (p *Problem) Parameters() map[string]any {
	return map[string]any{
		"family":                  "fcmnf",
		"min_n":                   p.params.MinNodes,
		"max_n":                   p.params.MaxNodes,
		"er_prob":                 p.params.EdgeProb,
		"var_cost_lo":             p.params.VarCostLo,
		"var_cost_hi":             p.params.VarCostHi,
		"quantity_lo":             p.params.QuantityLo,
		"quantity_hi":             p.params.QuantityHi,
		"fixed_to_variable_ratio": p.params.FixedToVariableRatio,
		"edge_upper":              p.params.EdgeUpper,
		"num_commodities":         p.params.NumCommodities,
		"nodes":                   p.nodes,
		"arcs":                    p.arcs,
	}
}

// Model returns the underlying model.
func (p *Problem) Model() *model.Model { return p.model }

// IsLinear reports true: FCMNF models are linear.
func (p *Problem) IsLinear() bool { return true }
