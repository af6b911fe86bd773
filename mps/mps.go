// SPDX-License-Identifier: MIT
// Package mps: fixed-format MPS writer.

package mps

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/discretenet/discretenet/model"
	"github.com/discretenet/discretenet/vcg"
)

var (
	// ErrNonlinearModel indicates a model with a nonlinear constraint or
	// objective was passed to the MPS writer; MPS carries linear programs only.
	ErrNonlinearModel = errors.New("mps: model is not linear")

	// ErrNoVariables indicates a model without variables; an MPS file without
	// columns is not meaningful.
	ErrNoVariables = errors.New("mps: model has no variables")
)

// objRow is the objective row name emitted in the ROWS section.
const objRow = "OBJ"

// rowSpec is one typed constraint row with its right-hand side.
type rowSpec struct {
	name string
	kind byte // 'L', 'G', or 'E'
	rhs  float64
}

// WriteModel writes m as fixed-format MPS. The model must be fully linear
// and have at least one variable and an objective.
func WriteModel(w io.Writer, m *model.Model) error {
	obj, err := m.Objective()
	if err != nil {
		return fmt.Errorf("WriteModel: %w", err)
	}
	objLinear, objTerms := obj.Body().Decompose()
	if !objLinear {
		return fmt.Errorf("WriteModel: objective: %w", ErrNonlinearModel)
	}
	vars := m.Vars()
	if len(vars) == 0 {
		return fmt.Errorf("WriteModel: %w", ErrNoVariables)
	}

	// Per-variable row coefficients, aggregated over repeated terms. The
	// inner maps are keyed by row name; objRow holds objective coefficients.
	columns := make(map[string]map[string]float64, len(vars))
	for _, v := range vars {
		columns[v.Name()] = make(map[string]float64)
	}

	rows := make([]rowSpec, 0, len(m.Constraints()))
	for _, con := range m.Constraints() {
		row, rErr := constraintRow(con, columns)
		if rErr != nil {
			return fmt.Errorf("WriteModel(%s): %w", con.Name(), rErr)
		}
		rows = append(rows, row)
	}

	for _, t := range objTerms {
		if t.Var == nil {
			// Constant objective offsets are not representable in COLUMNS.
			continue
		}
		columns[t.Var.Name()][objRow] += t.Coeff
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "NAME          %s\n", m.Name())
	fmt.Fprintf(bw, "OBJSENSE\n    %s\n", objSense(obj))

	fmt.Fprintln(bw, "ROWS")
	fmt.Fprintf(bw, " N  %s\n", objRow)
	for _, r := range rows {
		fmt.Fprintf(bw, " %c  %s\n", r.kind, r.name)
	}

	fmt.Fprintln(bw, "COLUMNS")
	writeColumns(bw, vars, rows, columns)

	fmt.Fprintln(bw, "RHS")
	for _, r := range rows {
		if r.rhs != 0 {
			fmt.Fprintf(bw, "    RHS       %-10s%g\n", r.name, r.rhs)
		}
	}

	fmt.Fprintln(bw, "BOUNDS")
	for _, v := range vars {
		writeBounds(bw, v)
	}

	fmt.Fprintln(bw, "ENDATA")
	return bw.Flush()
}

// constraintRow types one constraint from its original bound direction,
// folds body constants into the right-hand side, and records the body's
// linear coefficients into columns.
func constraintRow(con *model.Constraint, columns map[string]map[string]float64) (rowSpec, error) {
	linear, terms := con.Body().Decompose()
	if !linear {
		return rowSpec{}, ErrNonlinearModel
	}

	hasLower, hasUpper, lower, upper := con.Bounds()
	row := rowSpec{name: con.Name()}
	switch {
	case hasLower && !hasUpper:
		row.kind, row.rhs = 'G', lower
	case !hasLower && hasUpper:
		row.kind, row.rhs = 'L', upper
	case lower == upper:
		row.kind, row.rhs = 'E', upper
	default:
		return rowSpec{}, fmt.Errorf("lower=%g upper=%g: %w", lower, upper, vcg.ErrRangedConstraint)
	}

	for _, t := range terms {
		if t.Var == nil {
			row.rhs -= t.Coeff
			continue
		}
		columns[t.Var.Name()][row.name] += t.Coeff
	}
	return row, nil
}

// writeColumns emits one coefficient pair per line in declaration order,
// wrapping integer and binary variables in INTORG/INTEND marker blocks.
func writeColumns(bw *bufio.Writer, vars []*model.Var, rows []rowSpec, columns map[string]map[string]float64) {
	marker := 0
	inInteger := false
	for _, v := range vars {
		if integral(v.Domain()) != inInteger {
			inInteger = !inInteger
			state := "'INTORG'"
			if !inInteger {
				state = "'INTEND'"
			}
			fmt.Fprintf(bw, "    MARKER%d                 'MARKER'                 %s\n", marker, state)
			marker++
		}
		col := columns[v.Name()]
		if c, ok := col[objRow]; ok && c != 0 {
			fmt.Fprintf(bw, "    %-10s%-10s%g\n", v.Name(), objRow, c)
		}
		for _, r := range rows {
			if c, ok := col[r.name]; ok && c != 0 {
				fmt.Fprintf(bw, "    %-10s%-10s%g\n", v.Name(), r.name, c)
			}
		}
	}
	if inInteger {
		fmt.Fprintf(bw, "    MARKER%d                 'MARKER'                 'INTEND'\n", marker)
	}
}

// writeBounds emits the BOUNDS rows implied by a variable's domain tag.
// NonNegative real domains match the MPS default (0, +inf) and emit nothing.
func writeBounds(bw *bufio.Writer, v *model.Var) {
	name := v.Name()
	switch v.Domain() {
	case model.Boolean, model.Binary:
		fmt.Fprintf(bw, " BV BND       %s\n", name)
	case model.Reals, model.Any:
		fmt.Fprintf(bw, " FR BND       %s\n", name)
	case model.NonPositiveReals, model.NegativeReals:
		fmt.Fprintf(bw, " MI BND       %s\n", name)
		fmt.Fprintf(bw, " UP BND       %-10s0\n", name)
	case model.PercentFraction, model.UnitInterval:
		fmt.Fprintf(bw, " UP BND       %-10s1\n", name)
	case model.NonNegativeIntegers:
		fmt.Fprintf(bw, " LI BND       %-10s0\n", name)
	case model.PositiveIntegers:
		fmt.Fprintf(bw, " LI BND       %-10s1\n", name)
	case model.Integers:
		fmt.Fprintf(bw, " MI BND       %s\n", name)
	case model.NonPositiveIntegers:
		fmt.Fprintf(bw, " MI BND       %s\n", name)
		fmt.Fprintf(bw, " UI BND       %-10s0\n", name)
	case model.NegativeIntegers:
		fmt.Fprintf(bw, " MI BND       %s\n", name)
		fmt.Fprintf(bw, " UI BND       %-10s-1\n", name)
	}
}

func objSense(obj *model.Objective) string {
	if obj.IsMinimizing() {
		return "MIN"
	}
	return "MAX"
}

// integral reports whether a domain tag is integer- or binary-valued.
func integral(d model.Domain) bool {
	switch d {
	case model.Integers, model.PositiveIntegers, model.NonPositiveIntegers,
		model.NegativeIntegers, model.NonNegativeIntegers, model.Boolean, model.Binary:
		return true
	}
	return false
}
