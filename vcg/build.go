// SPDX-License-Identifier: MIT
// Package vcg: the model → graph transform.

package vcg

import (
	"fmt"
	"sort"

	"github.com/discretenet/discretenet/model"
)

// Build constructs the bipartite variable–constraint graph of m.
//
// Constraints are scanned in declaration order. For every constraint the
// body is decomposed, the bound configuration normalized (see
// normalizeBounds), and one constraint node emitted:
//
//   - linear bodies: each (coeff, var) term yields an edge carrying
//     coeff·multiplier; repeated terms for the same variable sum into one
//     edge; constant terms are absorbed into the bound
//     (bound -= coeff·multiplier);
//   - nonlinear bodies: every referenced variable yields a coefficient-free
//     edge recording participation only.
//
// After all constraints, a linear objective stamps each referenced variable
// node with its coefficient times the objective multiplier (+1 minimizing,
// -1 maximizing); constant objective terms are ignored. An objective
// variable never seen in any constraint is fatal. Nonlinear objectives add
// no coefficients.
//
// Build is pure: calling it twice on the same model yields graphs with
// identical node sets, edge sets, and attributes. Errors are fatal and
// return a nil graph; no partial result escapes.
func Build(m *model.Model) (*Graph, error) {
	if m == nil {
		return nil, ErrNilModel
	}

	g := newGraph()

	for _, con := range m.Constraints() {
		if err := g.buildConstraint(con); err != nil {
			return nil, fmt.Errorf("Build(%s): %w", con.Name(), err)
		}
	}

	if err := g.buildObjective(m); err != nil {
		return nil, fmt.Errorf("Build(%s): objective: %w", m.Name(), err)
	}

	return g, nil
}

// buildConstraint emits one constraint node and its incident edges.
func (g *Graph) buildConstraint(con *model.Constraint) error {
	linear, terms := con.Body().Decompose()

	norm, err := normalizeBounds(con.Bounds())
	if err != nil {
		return err
	}
	bound := norm.bound

	node := &ConstraintNode{
		Name:         con.Name(),
		Kind:         norm.kind,
		OriginalKind: norm.originalKind,
		IsLinear:     linear,
	}
	g.addConstraint(node)

	if !linear {
		// No coefficient extraction for nonlinear bodies; record participation
		// only. The referenced-variable set is order-independent.
		for _, v := range con.Body().Variables() {
			bucket, cErr := classifyDomain(v.Domain())
			if cErr != nil {
				return fmt.Errorf("variable %s: %w", v.Name(), cErr)
			}
			g.addVariable(v.Name(), bucket)
			g.addNonlinearEdge(v.Name(), node.Name)
		}
		node.Bound = bound
		return nil
	}

	for _, t := range terms {
		if t.Var == nil {
			// Constant term: fold into the canonical bound.
			bound -= t.Coeff * norm.multiplier
			continue
		}
		bucket, cErr := classifyDomain(t.Var.Domain())
		if cErr != nil {
			return fmt.Errorf("variable %s: %w", t.Var.Name(), cErr)
		}
		g.addVariable(t.Var.Name(), bucket)
		g.addLinearEdge(t.Var.Name(), node.Name, t.Coeff*norm.multiplier)
	}
	node.Bound = bound
	return nil
}

// buildObjective stamps variable nodes with minimize-normalized objective
// coefficients when the objective is linear.
func (g *Graph) buildObjective(m *model.Model) error {
	obj, err := m.Objective()
	if err != nil {
		return err
	}

	linear, terms := obj.Body().Decompose()
	if !linear {
		return nil
	}

	multiplier := 1.0
	if !obj.IsMinimizing() {
		multiplier = -1.0
	}

	for _, t := range terms {
		if t.Var == nil {
			// A constant objective offset carries no graph information.
			continue
		}
		node := g.variables[t.Var.Name()]
		if node == nil {
			return fmt.Errorf("variable %s: %w", t.Var.Name(), ErrVariableNotInConstraint)
		}
		if node.HasObjCoeff {
			// Repeated objective terms accumulate, matching edge semantics.
			node.ObjCoeff += t.Coeff * multiplier
			continue
		}
		node.ObjCoeff = t.Coeff * multiplier
		node.HasObjCoeff = true
	}
	return nil
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
