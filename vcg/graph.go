// SPDX-License-Identifier: MIT
// Package vcg: the bipartite graph type and its read-only accessors.
//
// Storage model (adapted from an adjacency-list graph core):
//   - node catalogs keyed by name, one per side of the bipartition;
//   - adjacency maps in both directions, variable→constraint and
//     constraint→variable, sharing *Edge values;
//   - at most one edge per (variable, constraint) pair; repeated linear
//     terms accumulate into the existing edge's coefficient.
//
// A Graph is immutable once Build returns, so accessors take no locks.
// All enumeration orders are deterministic: name-sorted.

package vcg

// Kind is the direction of a constraint, canonical or original.
type Kind string

const (
	// KindLeq marks an upper-bounded constraint (canonical "<=" form).
	KindLeq Kind = "leq"
	// KindGeq marks a lower-bounded source constraint (original form only;
	// normalization rewrites it to KindLeq).
	KindGeq Kind = "geq"
	// KindEq marks an equality constraint.
	KindEq Kind = "eq"
)

// VariableNode is one variable-side node of the VCG.
type VariableNode struct {
	// Name is the unique variable name.
	Name string
	// Domain is the three-way classification bucket.
	Domain Domain
	// ObjCoeff is the variable's coefficient in the objective, normalized to
	// minimize sense. Meaningful only when HasObjCoeff is true, which requires
	// a linear objective that references this variable.
	ObjCoeff    float64
	HasObjCoeff bool
}

// ConstraintNode is one constraint-side node of the VCG.
type ConstraintNode struct {
	// Name is the unique constraint name (indexed constraints include the
	// index, e.g. "c[1]").
	Name string
	// Kind is the canonical direction after normalization: leq or eq.
	Kind Kind
	// OriginalKind is the direction before normalization: leq, geq, or eq.
	OriginalKind Kind
	// IsLinear reports whether the constraint body decomposed as linear.
	IsLinear bool
	// Bound is the canonical right-hand side after sign normalization and
	// constant-term absorption.
	Bound float64
}

// Edge records a variable's participation in a constraint.
type Edge struct {
	// Variable and Constraint name the endpoints.
	Variable   string
	Constraint string
	// IsLinear mirrors the constraint's linearity.
	IsLinear bool
	// Coeff is the variable's coefficient in the canonical (sign-adjusted)
	// body. Meaningful only when IsLinear is true; nonlinear participation
	// carries no coefficient.
	Coeff float64
}

// Graph is a simple undirected bipartite graph over variable and constraint
// nodes. Construct one with Build; the zero value is not usable.
type Graph struct {
	variables   map[string]*VariableNode
	constraints map[string]*ConstraintNode

	// byVariable[var][constraint] and byConstraint[constraint][var] share
	// the same *Edge values.
	byVariable   map[string]map[string]*Edge
	byConstraint map[string]map[string]*Edge

	numEdges int
}

func newGraph() *Graph {
	return &Graph{
		variables:    make(map[string]*VariableNode),
		constraints:  make(map[string]*ConstraintNode),
		byVariable:   make(map[string]map[string]*Edge),
		byConstraint: make(map[string]map[string]*Edge),
	}
}

// NumVariables returns the number of variable nodes.
func (g *Graph) NumVariables() int { return len(g.variables) }

// NumConstraints returns the number of constraint nodes.
func (g *Graph) NumConstraints() int { return len(g.constraints) }

// NumEdges returns the number of (variable, constraint) participation edges.
func (g *Graph) NumEdges() int { return g.numEdges }

// Variable returns the variable node with the given name, or nil.
func (g *Graph) Variable(name string) *VariableNode { return g.variables[name] }

// Constraint returns the constraint node with the given name, or nil.
func (g *Graph) Constraint(name string) *ConstraintNode { return g.constraints[name] }

// Edge returns the edge between a variable and a constraint, or nil if the
// variable does not participate in the constraint.
func (g *Graph) Edge(variable, constraint string) *Edge {
	return g.byVariable[variable][constraint]
}

// Variables returns all variable nodes sorted by name.
func (g *Graph) Variables() []*VariableNode {
	out := make([]*VariableNode, 0, len(g.variables))
	for _, name := range sortedKeys(g.variables) {
		out = append(out, g.variables[name])
	}
	return out
}

// Constraints returns all constraint nodes sorted by name.
func (g *Graph) Constraints() []*ConstraintNode {
	out := make([]*ConstraintNode, 0, len(g.constraints))
	for _, name := range sortedKeys(g.constraints) {
		out = append(out, g.constraints[name])
	}
	return out
}

// Edges returns every edge sorted by (variable, constraint) name.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, 0, g.numEdges)
	for _, v := range sortedKeys(g.byVariable) {
		row := g.byVariable[v]
		for _, c := range sortedKeys(row) {
			out = append(out, row[c])
		}
	}
	return out
}

// VariableEdges returns the edges incident to a variable, sorted by
// constraint name. Unknown variables yield an empty slice.
func (g *Graph) VariableEdges(variable string) []*Edge {
	row := g.byVariable[variable]
	out := make([]*Edge, 0, len(row))
	for _, c := range sortedKeys(row) {
		out = append(out, row[c])
	}
	return out
}

// ConstraintEdges returns the edges incident to a constraint, sorted by
// variable name. Unknown constraints yield an empty slice.
func (g *Graph) ConstraintEdges(constraint string) []*Edge {
	row := g.byConstraint[constraint]
	out := make([]*Edge, 0, len(row))
	for _, v := range sortedKeys(row) {
		out = append(out, row[v])
	}
	return out
}

// VariableDegree returns the number of constraints a variable participates in.
func (g *Graph) VariableDegree(variable string) int {
	return len(g.byVariable[variable])
}

// ConstraintDegree returns the number of variables participating in a
// constraint.
func (g *Graph) ConstraintDegree(constraint string) int {
	return len(g.byConstraint[constraint])
}

// ConstraintDegreeWhere returns the number of participating variables whose
// node satisfies keep. It is the copy-free equivalent of pruning the
// complementary variable set from a graph copy and re-measuring degree.
func (g *Graph) ConstraintDegreeWhere(constraint string, keep func(*VariableNode) bool) int {
	n := 0
	for v := range g.byConstraint[constraint] {
		if keep(g.variables[v]) {
			n++
		}
	}
	return n
}

// addVariable creates the variable node on first sight and reuses it after.
func (g *Graph) addVariable(name string, domain Domain) *VariableNode {
	if n, ok := g.variables[name]; ok {
		return n
	}
	n := &VariableNode{Name: name, Domain: domain}
	g.variables[name] = n
	g.byVariable[name] = make(map[string]*Edge)
	return n
}

// addConstraint creates the constraint node; constraint names are unique in
// a model, so there is nothing to reuse.
func (g *Graph) addConstraint(n *ConstraintNode) {
	g.constraints[n.Name] = n
	g.byConstraint[n.Name] = make(map[string]*Edge)
}

// addLinearEdge records linear participation, accumulating the coefficient
// when the (variable, constraint) pair already has an edge.
func (g *Graph) addLinearEdge(variable, constraint string, coeff float64) {
	if e, ok := g.byVariable[variable][constraint]; ok {
		e.Coeff += coeff
		return
	}
	e := &Edge{Variable: variable, Constraint: constraint, IsLinear: true, Coeff: coeff}
	g.byVariable[variable][constraint] = e
	g.byConstraint[constraint][variable] = e
	g.numEdges++
}

// addNonlinearEdge records nonlinear participation; duplicates are no-ops.
func (g *Graph) addNonlinearEdge(variable, constraint string) {
	if _, ok := g.byVariable[variable][constraint]; ok {
		return
	}
	e := &Edge{Variable: variable, Constraint: constraint, IsLinear: false}
	g.byVariable[variable][constraint] = e
	g.byConstraint[constraint][variable] = e
	g.numEdges++
}
