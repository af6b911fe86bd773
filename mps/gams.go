// SPDX-License-Identifier: MIT
// Package mps: minimal GAMS scalar-model writer.

package mps

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/discretenet/discretenet/model"
	"github.com/discretenet/discretenet/vcg"
)

// objVar is the free variable the objective is assigned to in the listing.
const objVar = "objval"

// WriteGAMS writes m as a GAMS scalar-model listing. Linear bodies are
// rendered from their term lists; nonlinear bodies from their textual form.
// Variable names containing index brackets ("x[1]") are rewritten to GAMS
// identifiers ("x_1").
func WriteGAMS(w io.Writer, m *model.Model) error {
	obj, err := m.Objective()
	if err != nil {
		return fmt.Errorf("WriteGAMS: %w", err)
	}
	vars := m.Vars()
	if len(vars) == 0 {
		return fmt.Errorf("WriteGAMS: %w", ErrNoVariables)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "* model %s\n\n", m.Name())

	writeDeclarations(bw, vars)

	fmt.Fprintf(bw, "Equations objdef")
	for _, con := range m.Constraints() {
		fmt.Fprintf(bw, ", %s", ident(con.Name()))
	}
	fmt.Fprintln(bw, ";")
	fmt.Fprintln(bw)

	fmt.Fprintf(bw, "objdef.. %s =e= %s;\n", objVar, render(obj.Body()))

	for _, con := range m.Constraints() {
		line, cErr := constraintLine(con)
		if cErr != nil {
			return fmt.Errorf("WriteGAMS(%s): %w", con.Name(), cErr)
		}
		fmt.Fprintln(bw, line)
	}

	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "Model %s /all/;\n", ident(m.Name()))
	fmt.Fprintf(bw, "Solve %s using minlp %s %s;\n", ident(m.Name()), gamsSense(obj), objVar)
	return bw.Flush()
}

// writeDeclarations groups variables by class the way GAMS expects.
func writeDeclarations(bw *bufio.Writer, vars []*model.Var) {
	var free, positive, integer, binary []string
	free = append(free, objVar)
	for _, v := range vars {
		name := ident(v.Name())
		switch v.Domain() {
		case model.Boolean, model.Binary:
			binary = append(binary, name)
		case model.Integers, model.PositiveIntegers, model.NonPositiveIntegers, model.NegativeIntegers, model.NonNegativeIntegers:
			integer = append(integer, name)
		case model.NonNegativeReals, model.PositiveReals, model.PercentFraction, model.UnitInterval:
			positive = append(positive, name)
		default:
			free = append(free, name)
		}
	}
	fmt.Fprintf(bw, "Variables %s;\n", strings.Join(free, ", "))
	if len(positive) > 0 {
		fmt.Fprintf(bw, "Positive Variables %s;\n", strings.Join(positive, ", "))
	}
	if len(integer) > 0 {
		fmt.Fprintf(bw, "Integer Variables %s;\n", strings.Join(integer, ", "))
	}
	if len(binary) > 0 {
		fmt.Fprintf(bw, "Binary Variables %s;\n", strings.Join(binary, ", "))
	}
	fmt.Fprintln(bw)
}

// constraintLine renders one equation from the constraint's original bound
// direction.
func constraintLine(con *model.Constraint) (string, error) {
	hasLower, hasUpper, lower, upper := con.Bounds()
	var op string
	var rhs float64
	switch {
	case hasLower && !hasUpper:
		op, rhs = "=g=", lower
	case !hasLower && hasUpper:
		op, rhs = "=l=", upper
	case lower == upper:
		op, rhs = "=e=", upper
	default:
		return "", fmt.Errorf("lower=%g upper=%g: %w", lower, upper, vcg.ErrRangedConstraint)
	}
	return fmt.Sprintf("%s.. %s %s %g;", ident(con.Name()), render(con.Body()), op, rhs), nil
}

// render produces the GAMS expression text of a body.
func render(body model.Expr) string {
	linear, terms := body.Decompose()
	if !linear {
		nl, ok := body.(*model.NonlinearExpr)
		if !ok {
			return "0"
		}
		return identExpr(nl.Text())
	}

	var b strings.Builder
	first := true
	for _, t := range terms {
		coeff := t.Coeff
		if first {
			if coeff < 0 {
				b.WriteString("-")
				coeff = -coeff
			}
			first = false
		} else if coeff < 0 {
			b.WriteString(" - ")
			coeff = -coeff
		} else {
			b.WriteString(" + ")
		}
		if t.Var == nil {
			fmt.Fprintf(&b, "%g", coeff)
			continue
		}
		if coeff == 1 {
			b.WriteString(ident(t.Var.Name()))
			continue
		}
		fmt.Fprintf(&b, "%g*%s", coeff, ident(t.Var.Name()))
	}
	if first {
		return "0"
	}
	return b.String()
}

// ident rewrites an indexed name to a GAMS identifier: "x[1]" → "x_1",
// "flow[k,a]" → "flow_k_a".
func ident(name string) string {
	r := strings.NewReplacer("[", "_", "]", "", ",", "_", " ", "", "-", "_")
	return r.Replace(name)
}

// identExpr applies ident rewriting to every bracketed reference inside a
// textual expression.
func identExpr(text string) string {
	r := strings.NewReplacer("[", "_", "]", "")
	return r.Replace(text)
}

func gamsSense(obj *model.Objective) string {
	if obj.IsMinimizing() {
		return "minimizing"
	}
	return "maximizing"
}
