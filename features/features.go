// SPDX-License-Identifier: MIT
// Package features: the feature extractor.

package features

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/discretenet/discretenet/model"
	"github.com/discretenet/discretenet/vcg"
)

var (
	// ErrZeroVariables indicates a graph with no variable nodes; the fraction
	// features divide by the variable count and have no defined value.
	ErrZeroVariables = errors.New("features: graph has no variables")

	// ErrZeroConstraints indicates a graph with no constraint nodes.
	ErrZeroConstraints = errors.New("features: graph has no constraints")
)

// Features is a flat mapping from feature name to value. The key set is
// fixed for every valid input; empty distributions contribute 0.0 values,
// never missing keys.
type Features map[string]float64

// Names returns the feature names in ascending order.
func (f Features) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// selection is one of the three variable subsets every distribution is
// taken over. An empty label marks the all-variables selection, which is
// omitted from feature names.
type selection struct {
	label string
	keep  func(vcg.Domain) bool
}

func selections() []selection {
	return []selection{
		{label: "", keep: func(vcg.Domain) bool { return true }},
		{label: "continuous", keep: func(d vcg.Domain) bool { return d == vcg.DomainContinuous }},
		{label: "non_continuous", keep: func(d vcg.Domain) bool { return d != vcg.DomainContinuous }},
	}
}

// Compute derives the full feature vector from a built graph and its model.
// It never fails for a graph produced by vcg.Build on a well-formed model;
// the error paths guard hand-constructed graphs violating the invariants
// (zero variables or zero constraints).
func Compute(g *vcg.Graph, m *model.Model) (Features, error) {
	if g.NumVariables() == 0 {
		return nil, ErrZeroVariables
	}
	if g.NumConstraints() == 0 {
		return nil, ErrZeroConstraints
	}

	f := make(Features, 96)

	variables := g.Variables()
	constraints := g.Constraints()

	countFeatures(f, g, variables, constraints)

	for _, sel := range selections() {
		variableDegreeStats(f, g, variables, sel)
		constraintDegreeStats(f, g, constraints, sel)
		variableCoefficientSums(f, g, variables, sel)
		constraintCoefficientSums(f, g, constraints, sel)
		normalizedCoefficients(f, g, variables, sel)
	}

	objectiveFeatures(f, g, m)
	boundFeatures(f, constraints)

	return f, nil
}

// countFeatures fills the node, edge, and domain counting features plus the
// domain fractions.
func countFeatures(f Features, g *vcg.Graph, variables []*vcg.VariableNode, constraints []*vcg.ConstraintNode) {
	var numIneq, numEq, numLinear, numNonlinear int
	for _, c := range constraints {
		if c.Kind == vcg.KindLeq {
			numIneq++
		} else {
			numEq++
		}
		if c.IsLinear {
			numLinear++
		} else {
			numNonlinear++
		}
	}

	var numLinearEdges, numNonlinearEdges int
	for _, e := range g.Edges() {
		if e.IsLinear {
			numLinearEdges++
		} else {
			numNonlinearEdges++
		}
	}

	var numBinary, numInteger, numContinuous int
	for _, v := range variables {
		switch v.Domain {
		case vcg.DomainBinary:
			numBinary++
		case vcg.DomainInteger:
			numInteger++
		default:
			numContinuous++
		}
	}
	numVars := len(variables)

	f["num_variables"] = float64(numVars)
	f["num_constraints"] = float64(len(constraints))
	f["num_inequality_constraints"] = float64(numIneq)
	f["num_equality_constraints"] = float64(numEq)
	f["num_linear_constraints"] = float64(numLinear)
	f["num_nonlinear_constraints"] = float64(numNonlinear)
	f["num_vcg_edges"] = float64(g.NumEdges())
	f["num_linear_vcg_edges"] = float64(numLinearEdges)
	f["num_nonlinear_vcg_edges"] = float64(numNonlinearEdges)
	f["num_binary_variables"] = float64(numBinary)
	f["num_integer_variables"] = float64(numInteger)
	f["num_continuous_variables"] = float64(numContinuous)
	f["num_non_continuous_variables"] = float64(numBinary + numInteger)

	f["fraction_binary_variables"] = float64(numBinary) / float64(numVars)
	f["fraction_integer_variables"] = float64(numInteger) / float64(numVars)
	f["fraction_continuous_variables"] = float64(numContinuous) / float64(numVars)
	f["fraction_non_continuous_variables"] = float64(numBinary+numInteger) / float64(numVars)
}

// variableDegreeStats fills mean/median/cv/p90p10 of variable-node degree
// for one selection.
func variableDegreeStats(f Features, g *vcg.Graph, variables []*vcg.VariableNode, sel selection) {
	var degrees []float64
	for _, v := range variables {
		if sel.keep(v.Domain) {
			degrees = append(degrees, float64(g.VariableDegree(v.Name)))
		}
	}
	degreeBlock(f, prefixed("vcg", sel.label, "variable_node_degree"), degrees)
}

// constraintDegreeStats fills mean/median/cv/p90p10 of constraint-node
// degree, counting only neighbors in the selection. This matches pruning
// the complementary variables from a graph copy and re-measuring degree,
// without the copy.
func constraintDegreeStats(f Features, g *vcg.Graph, constraints []*vcg.ConstraintNode, sel selection) {
	degrees := make([]float64, 0, len(constraints))
	for _, c := range constraints {
		d := g.ConstraintDegreeWhere(c.Name, func(v *vcg.VariableNode) bool { return sel.keep(v.Domain) })
		degrees = append(degrees, float64(d))
	}
	degreeBlock(f, prefixed("vcg", sel.label, "constraint_node_degree"), degrees)
}

// variableCoefficientSums fills mean/cv of the per-variable sum of linear
// edge coefficients for one selection.
func variableCoefficientSums(f Features, g *vcg.Graph, variables []*vcg.VariableNode, sel selection) {
	var sums []float64
	for _, v := range variables {
		if !sel.keep(v.Domain) {
			continue
		}
		var coeffs []float64
		for _, e := range g.VariableEdges(v.Name) {
			if e.IsLinear {
				coeffs = append(coeffs, e.Coeff)
			}
		}
		sums = append(sums, floats.Sum(coeffs))
	}
	meanCVBlock(f, prefixed("", sel.label, "variable_coefficient_sum"), sums)
}

// constraintCoefficientSums fills mean/cv of the per-constraint sum of
// linear edge coefficients, restricted to variables in the selection.
func constraintCoefficientSums(f Features, g *vcg.Graph, constraints []*vcg.ConstraintNode, sel selection) {
	sums := make([]float64, 0, len(constraints))
	for _, c := range constraints {
		var coeffs []float64
		for _, e := range g.ConstraintEdges(c.Name) {
			if e.IsLinear && sel.keep(g.Variable(e.Variable).Domain) {
				coeffs = append(coeffs, e.Coeff)
			}
		}
		sums = append(sums, floats.Sum(coeffs))
	}
	meanCVBlock(f, prefixed("", sel.label, "constraint_coefficient_sum"), sums)
}

// normalizedCoefficients fills mean/cv of linear edge coefficients divided
// by their constraint's canonical bound, skipping bounds of exactly zero.
func normalizedCoefficients(f Features, g *vcg.Graph, variables []*vcg.VariableNode, sel selection) {
	var normalized []float64
	for _, v := range variables {
		if !sel.keep(v.Domain) {
			continue
		}
		for _, e := range g.VariableEdges(v.Name) {
			if !e.IsLinear {
				continue
			}
			bound := g.Constraint(e.Constraint).Bound
			if bound == 0 {
				continue
			}
			normalized = append(normalized, e.Coeff/bound)
		}
	}
	prefix := "normalized_constraint_coefficient"
	if sel.label != "" {
		prefix = sel.label + "_" + prefix
	}
	meanCVBlock(f, prefix, normalized)
}

// objectiveFeatures fills the absolute objective-coefficient statistics:
// raw, divided by the variable's constraint participation count, and
// divided by the square root of that count. A nonlinear objective has no
// extractable coefficients, so all eighteen statistics report 0.0.
func objectiveFeatures(f Features, g *vcg.Graph, m *model.Model) {
	type objCoeff struct {
		abs    float64
		domain vcg.Domain
		degree int
	}
	var objCoeffs []objCoeff

	if obj, err := m.Objective(); err == nil {
		if linear, terms := obj.Body().Decompose(); linear {
			for _, t := range terms {
				if t.Var == nil {
					continue
				}
				node := g.Variable(t.Var.Name())
				if node == nil {
					// Unreachable for graphs built from this model; skip to
					// keep Compute total on hand-constructed inputs.
					continue
				}
				objCoeffs = append(objCoeffs, objCoeff{
					abs:    math.Abs(t.Coeff),
					domain: node.Domain,
					degree: g.VariableDegree(node.Name),
				})
			}
		}
	}

	for _, sel := range selections() {
		var raw, byDegree, bySqrtDegree []float64
		for _, oc := range objCoeffs {
			if !sel.keep(oc.domain) {
				continue
			}
			raw = append(raw, oc.abs)
			if oc.degree > 0 {
				byDegree = append(byDegree, oc.abs/float64(oc.degree))
				bySqrtDegree = append(bySqrtDegree, oc.abs/math.Sqrt(float64(oc.degree)))
			}
		}

		rawPrefix := "abs_objective_function_coefficients"
		if sel.label != "" {
			rawPrefix = "abs_objective_function_" + sel.label + "_coefficients"
		}
		meanStdDevBlock(f, rawPrefix, raw)

		normPrefix := "normalized_abs_objective_function_coefficients"
		if sel.label != "" {
			normPrefix = "normalized_abs_objective_function_" + sel.label + "_coefficients"
		}
		meanStdDevBlock(f, normPrefix, byDegree)

		meanStdDevBlock(f, "sqrt_"+normPrefix, bySqrtDegree)
	}
}

// boundFeatures fills mean/stddev of canonical bounds, split by canonical
// constraint kind.
func boundFeatures(f Features, constraints []*vcg.ConstraintNode) {
	var leqBounds, eqBounds []float64
	for _, c := range constraints {
		if c.Kind == vcg.KindLeq {
			leqBounds = append(leqBounds, c.Bound)
		} else {
			eqBounds = append(eqBounds, c.Bound)
		}
	}
	meanStdDevBlock(f, "leq_constraint_bounds", leqBounds)
	meanStdDevBlock(f, "eq_constraint_bounds", eqBounds)
}

// prefixed joins an optional leading tag, the selection label, and the stem:
// ("vcg", "", s) → "vcg_s"; ("vcg", "continuous", s) → "vcg_continuous_s";
// ("", "non_continuous", s) → "non_continuous_s".
func prefixed(tag, label, stem string) string {
	out := stem
	if label != "" {
		out = label + "_" + out
	}
	if tag != "" {
		out = tag + "_" + out
	}
	return out
}

// degreeBlock fills the four degree statistics under prefix; empty
// distributions report 0.0 for all of them.
func degreeBlock(f Features, prefix string, degrees []float64) {
	if len(degrees) == 0 {
		f[prefix+"_mean"] = 0
		f[prefix+"_median"] = 0
		f[prefix+"_cv"] = 0
		f[prefix+"_p90p10"] = 0
		return
	}
	f[prefix+"_mean"] = mean(degrees)
	f[prefix+"_median"] = median(degrees)
	f[prefix+"_cv"] = cv(degrees)
	f[prefix+"_p90p10"] = p90p10(degrees)
}

// meanCVBlock fills mean and coefficient of variation under prefix.
func meanCVBlock(f Features, prefix string, xs []float64) {
	f[prefix+"_mean"] = mean(xs)
	f[prefix+"_cv"] = cv(xs)
}

// meanStdDevBlock fills mean and population stddev under prefix.
func meanStdDevBlock(f Features, prefix string, xs []float64) {
	f[prefix+"_mean"] = mean(xs)
	f[prefix+"_stddev"] = popStdDev(xs)
}
