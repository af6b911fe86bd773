// SPDX-License-Identifier: MIT
// Package waterpipe: water pipe enhancement instance generation.

package waterpipe

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
	ErrInvalidNodeRange = errors.New("waterpipe: invalid node count range")

	// ErrInvalidProbability indicates an edge probability outside [0, 1].
	ErrInvalidProbability = errors.New("waterpipe: probability not in [0,1]")

	// ErrInvalidRate indicates a node role rate outside (0, 1].
	ErrInvalidRate = errors.New("waterpipe: role rate not in (0,1]")

	// ErrInvalidAreaSize indicates a non-positive housing area radius.
	ErrInvalidAreaSize = errors.New("waterpipe: housing area size must be positive")

	// ErrInvalidRange indicates an inverted or non-positive section
	// length range.
	ErrInvalidRange = errors.New("waterpipe: invalid length range")

	// ErrTooFewNodes indicates the sampled graph does not have enough
	// connected nodes to fill the three role sets.
	ErrTooFewNodes = errors.New("waterpipe: too few connected nodes for the role sets")
)

// Params configures the generator.
type Params struct {
	// MinNodes and MaxNodes bound the sampled node count (inclusive).
	MinNodes int
	MaxNodes int
	// EdgeProb is the Erdős–Rényi road section probability.
	EdgeProb float64
	// HousingAreaRate is the fraction of nodes that center a housing area.
	HousingAreaRate float64
	// HousingAreaSize is k: each housing area is the k-hop edge
	// neighborhood of its center.
	HousingAreaSize int
	// CriticalRate is the fraction of nodes that are critical customers.
	CriticalRate float64
	// WaterSourceRate is the fraction of nodes that are water sources.
	WaterSourceRate float64
	// LengthLo and LengthHi bound the sampled section length (inclusive),
	// the per-section enhancement cost.
	LengthLo int
	LengthHi int
}

// DefaultParams returns the reference configuration: 100-node road
// networks with one critical customer, one water source, and one
// three-hop housing area per hundred nodes.
func DefaultParams() Params {
	return Params{
		MinNodes:        100,
		MaxNodes:        100,
		EdgeProb:        0.1,
		HousingAreaRate: 0.01,
		HousingAreaSize: 3,
		CriticalRate:    0.01,
		WaterSourceRate: 0.005,
		LengthLo:        10,
		LengthHi:        1000,
	}
}

func (p Params) validate() error {
	if p.MinNodes < 2 || p.MaxNodes < p.MinNodes {
		return fmt.Errorf("min=%d max=%d: %w", p.MinNodes, p.MaxNodes, ErrInvalidNodeRange)
	}
	if p.EdgeProb < 0 || p.EdgeProb > 1 {
		return fmt.Errorf("edge probability %g: %w", p.EdgeProb, ErrInvalidProbability)
	}
	for _, rate := range []float64{p.HousingAreaRate, p.CriticalRate, p.WaterSourceRate} {
		if rate <= 0 || rate > 1 {
			return fmt.Errorf("rate %g: %w", rate, ErrInvalidRate)
		}
	}
	if p.HousingAreaSize < 1 {
		return fmt.Errorf("area size %d: %w", p.HousingAreaSize, ErrInvalidAreaSize)
	}
	if p.LengthLo < 1 || p.LengthHi < p.LengthLo {
		return fmt.Errorf("length [%d,%d]: %w", p.LengthLo, p.LengthHi, ErrInvalidRange)
	}
	return nil
}

// pipe is one undirected road section with u < v.
type pipe struct {
	u, v   int
	length float64
}

// Generator samples water pipe enhancement instances. Create with New;
// the zero value is not usable.
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

// Family returns "water_pipe_enhancement".
func (g *Generator) Family() string { return "water_pipe_enhancement" }

// Generate samples one instance from rng.
//
// The draw order is fixed: node count, one Bernoulli trial per unordered
// pair {i, j} with i < j in ascending order, section lengths in creation
// order, one node permutation for the role sets, then the instance tag.
// Role nodes are taken from the permutation in order, skipping isolated
// nodes: a critical customer or housing center without a road section
// would make its constraint unsatisfiable.
func (g *Generator) Generate(rng *rand.Rand) (problem.Problem, error) {
	p := g.params

	n := p.MinNodes + rng.Intn(p.MaxNodes-p.MinNodes+1)

	var pipes []pipe
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() <= p.EdgeProb {
				pipes = append(pipes, pipe{u: i, v: j})
			}
		}
	}
	for k := range pipes {
		pipes[k].length = float64(p.LengthLo + rng.Intn(p.LengthHi-p.LengthLo+1))
	}

	// Lexicographic discovery order leaves each adjacency list sorted.
	adj := make([][]int, n)
	for _, e := range pipes {
		adj[e.u] = append(adj[e.u], e.v)
		adj[e.v] = append(adj[e.v], e.u)
	}

	critical, sources, centers, err := sampleRoles(rng, p, n, adj)
	if err != nil {
		return nil, fmt.Errorf("Generate: %w", err)
	}

	areas := make([][][2]int, len(centers))
	for i, center := range centers {
		areas[i] = housingArea(adj, center, p.HousingAreaSize)
	}

	tag := rng.Int63()
	name := fmt.Sprintf("wpe_er_n%d_m%d_p%g_RR%g_rS%d_CR%g_TR%g_%d",
		n, len(pipes), p.EdgeProb,
		p.HousingAreaRate, p.HousingAreaSize, p.CriticalRate, p.WaterSourceRate, tag)

	m, err := buildModel(name, n, pipes, areas, critical, sources)
	if err != nil {
		return nil, fmt.Errorf("Generate: %w", err)
	}
	return &Problem{
		name: name, params: p, nodes: n, pipes: len(pipes),
		critical: len(critical), sources: len(sources), areas: len(areas),
		model: m,
	}, nil
}

// sampleRoles partitions a prefix of one node permutation into critical
// customers, water sources, and housing-area centers. Each role set has
// at least one node; isolated nodes are skipped.
func sampleRoles(rng *rand.Rand, p Params, n int, adj [][]int) (critical, sources, centers []int, err error) {
	cSize := max(1, int(float64(n)*p.CriticalRate))
	tSize := max(1, int(float64(n)*p.WaterSourceRate))
	rSize := max(1, int(float64(n)*p.HousingAreaRate))
	total := cSize + tSize + rSize

	eligible := make([]int, 0, total)
	for _, node := range rng.Perm(n) {
		if len(adj[node]) == 0 {
			continue
		}
		eligible = append(eligible, node)
		if len(eligible) == total {
			break
		}
	}
	if len(eligible) < total {
		return nil, nil, nil, fmt.Errorf("need %d, have %d: %w", total, len(eligible), ErrTooFewNodes)
	}
	return eligible[:cSize], eligible[cSize : cSize+tSize], eligible[cSize+tSize:], nil
}

// housingArea collects the k-hop edge neighborhood of center: a
// breadth-first expansion where each newly seen section extends the
// frontier, deduplicated across directions. Sections come out in
// traversal order with u < v.
func housingArea(adj [][]int, center, k int) [][2]int {
	seen := make(map[[2]int]bool)
	var area [][2]int
	level := []int{center}
	for hop := 0; hop < k && len(level) > 0; hop++ {
		var next []int
		inNext := make(map[int]bool)
		for _, node := range level {
			for _, nb := range adj[node] {
				key := [2]int{min(node, nb), max(node, nb)}
				if seen[key] {
					continue
				}
				seen[key] = true
				area = append(area, key)
				if !inNext[nb] {
					inNext[nb] = true
					next = append(next, nb)
				}
			}
		}
		level = next
	}
	return area
}

// buildModel assembles the enhancement program. Every section yields two
// arcs, one per direction, emitted in section order.
func buildModel(name string, n int, pipes []pipe, areas [][][2]int, critical, sources []int) (*model.Model, error) {
	m := model.NewModel(name)

	type arc struct {
		u, v   int
		length float64
	}
	arcs := make([]arc, 0, 2*len(pipes))
	arcIndex := make(map[[2]int]int, 2*len(pipes))
	for _, e := range pipes {
		arcIndex[[2]int{e.u, e.v}] = len(arcs)
		arcs = append(arcs, arc{u: e.u, v: e.v, length: e.length})
		arcIndex[[2]int{e.v, e.u}] = len(arcs)
		arcs = append(arcs, arc{u: e.v, v: e.u, length: e.length})
	}

	x := make([]*model.Var, len(arcs))
	for a, ar := range arcs {
		v, err := m.NewVar(fmt.Sprintf("x[%d,%d]", ar.u, ar.v), model.Binary)
		if err != nil {
			return nil, err
		}
		x[a] = v
	}
	y := make([]*model.Var, len(arcs))
	for a, ar := range arcs {
		v, err := m.NewVar(fmt.Sprintf("y[%d,%d]", ar.u, ar.v), model.Integers)
		if err != nil {
			return nil, err
		}
		y[a] = v
	}
	yT := make([]*model.Var, len(sources))
	for i, node := range sources {
		v, err := m.NewVar(fmt.Sprintf("yT[%d]", node), model.Integers)
		if err != nil {
			return nil, err
		}
		yT[i] = v
	}
	z, err := m.NewVar("z", model.Integers)
	if err != nil {
		return nil, err
	}

	isCritical := make(map[int]bool, len(critical))
	for _, node := range critical {
		isCritical[node] = true
	}
	sourceVar := make(map[int]*model.Var, len(sources))
	for i, node := range sources {
		sourceVar[node] = yT[i]
	}

	outArcs := make([][]int, n)
	inArcs := make([][]int, n)
	for a, ar := range arcs {
		outArcs[ar.u] = append(outArcs[ar.u], a)
		inArcs[ar.v] = append(inArcs[ar.v], a)
	}

	// Flow balance: source supply plus inbound paths covers outbound
	// enhancement and paths, with one unit consumed at each critical
	// customer.
	for node := 0; node < n; node++ {
		if len(outArcs[node]) == 0 && sourceVar[node] == nil {
			// Isolated nodes have nothing to balance.
			continue
		}
		body := model.NewLinearExpr()
		if v := sourceVar[node]; v != nil {
			body.Add(v)
		}
		for _, a := range inArcs[node] {
			body.Add(y[a])
		}
		for _, a := range outArcs[node] {
			body.AddTerm(x[a], -1).AddTerm(y[a], -1)
		}
		rhs := 0.0
		if isCritical[node] {
			rhs = 1.0
		}
		if _, err := m.AddConstraintEQ(fmt.Sprintf("balance[%d]", node), body, rhs); err != nil {
			return nil, err
		}
	}

	// A section is enhanced in at most one direction.
	for _, e := range pipes {
		body := model.NewLinearExpr().
			Add(x[arcIndex[[2]int{e.u, e.v}]]).
			Add(x[arcIndex[[2]int{e.v, e.u}]])
		if _, err := m.AddConstraintLE(fmt.Sprintf("direction[%d,%d]", e.u, e.v), body, 1); err != nil {
			return nil, err
		}
	}

	// Each housing area is reached by at least one enhanced section.
	for i, area := range areas {
		body := model.NewLinearExpr()
		for _, section := range area {
			body.Add(x[arcIndex[section]])
			body.Add(x[arcIndex[[2]int{section[1], section[0]}]])
		}
		if _, err := m.AddConstraintGE(fmt.Sprintf("coverage[%d]", i), body, 1); err != nil {
			return nil, err
		}
	}

	// Path counts are non-negative and only flow over enhanced arcs; the
	// big-M is the total arc and node count, an upper bound on any count.
	bigM := float64(len(arcs) + n)
	for a, ar := range arcs {
		if _, err := m.AddConstraintGE(fmt.Sprintf("flow_lb[%d,%d]", ar.u, ar.v),
			model.NewLinearExpr().Add(y[a]), 0); err != nil {
			return nil, err
		}
		if _, err := m.AddConstraintLE(fmt.Sprintf("flow_ub[%d,%d]", ar.u, ar.v),
			model.NewLinearExpr().Add(y[a]).AddTerm(x[a], -bigM), 0); err != nil {
			return nil, err
		}
	}

	// Total supply plus slack is fixed, and sources emit exactly one path
	// per enhanced section plus one per critical customer.
	supply := model.NewLinearExpr().Add(z)
	for _, v := range yT {
		supply.Add(v)
	}
	if _, err := m.AddConstraintEQ("supply", supply, bigM); err != nil {
		return nil, err
	}

	emitted := model.NewLinearExpr()
	for _, v := range yT {
		emitted.Add(v)
	}
	for _, v := range x {
		emitted.AddTerm(v, -1)
	}
	if _, err := m.AddConstraintEQ("sources", emitted, float64(len(critical))); err != nil {
		return nil, err
	}

	obj := model.NewLinearExpr()
	for a, ar := range arcs {
		obj.AddTerm(x[a], ar.length)
	}
	if err := m.Minimize(obj); err != nil {
		return nil, err
	}
	return m, nil
}

// Problem is one generated water pipe enhancement instance.
type Problem struct {
	name     string
	params   Params
	nodes    int
	pipes    int
	critical int
	sources  int
	areas    int
	model    *model.Model
}

// Name returns the instance name.
func (p *Problem) Name() string { return p.name }

// Parameters returns the generator parameters plus the sampled network
// and role set sizes.
func (p *Problem) Parameters() map[string]any {
	return map[string]any{
		"family":            "water_pipe_enhancement",
		"min_n":             p.params.MinNodes,
		"max_n":             p.params.MaxNodes,
		"er_prob":           p.params.EdgeProb,
		"housing_area_rate": p.params.HousingAreaRate,
		"housing_area_size": p.params.HousingAreaSize,
		"critical_rate":     p.params.CriticalRate,
		"water_source_rate": p.params.WaterSourceRate,
		"length_lo":         p.params.LengthLo,
		"length_hi":         p.params.LengthHi,
		"nodes":             p.nodes,
		"pipes":             p.pipes,
		"critical":          p.critical,
		"sources":           p.sources,
		"housing_areas":     p.areas,
	}
}

// Model returns the underlying model.
func (p *Problem) Model() *model.Model { return p.model }

// IsLinear reports true: the enhancement models are linear.
func (p *Problem) IsLinear() bool { return true }
