// SPDX-License-Identifier: MIT
// Package schoolbus: school bus scheduling instance generation.

package schoolbus

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/discretenet/discretenet/model"
	"github.com/discretenet/discretenet/problem"
)

var (
	// ErrInvalidCount indicates a non-positive school or route count.
	ErrInvalidCount = errors.New("schoolbus: school and route counts must be positive")

	// ErrInvalidHorizon indicates a horizon too short for even one slot.
	ErrInvalidHorizon = errors.New("schoolbus: time horizon must allow at least one slot")

	// ErrInvalidWindow indicates a negative school start window.
	ErrInvalidWindow = errors.New("schoolbus: time window must be non-negative")

	// ErrInvalidRouteLength indicates a route length distribution that
	// cannot produce positive lengths.
	ErrInvalidRouteLength = errors.New("schoolbus: invalid route length distribution")
)

// Params configures the generator.
type Params struct {
	// NumSchools and NumRoutes size the instance; every school gets
	// NumRoutes bus routes.
	NumSchools int
	NumRoutes  int
	// MaxTime is the exclusive end of the planning horizon; slots run
	// from 1 to MaxTime-1.
	MaxTime int
	// TimeWindow is how many slots a school start may trail the
	// completion of its routes.
	TimeWindow int
	// RouteLengthAvg and RouteLengthStd parameterize the normal draw of
	// route lengths, in slots.
	RouteLengthAvg float64
	RouteLengthStd float64
}

// DefaultParams returns the reference configuration: five schools with
// six routes each over a 120-slot horizon.
func DefaultParams() Params {
	return Params{
		NumSchools:     5,
		NumRoutes:      6,
		MaxTime:        120,
		TimeWindow:     20,
		RouteLengthAvg: 30,
		RouteLengthStd: 10,
	}
}

func (p Params) validate() error {
	if p.NumSchools < 1 || p.NumRoutes < 1 {
		return fmt.Errorf("schools=%d routes=%d: %w", p.NumSchools, p.NumRoutes, ErrInvalidCount)
	}
	if p.MaxTime < 2 {
		return fmt.Errorf("max time %d: %w", p.MaxTime, ErrInvalidHorizon)
	}
	if p.TimeWindow < 0 {
		return fmt.Errorf("time window %d: %w", p.TimeWindow, ErrInvalidWindow)
	}
	if p.RouteLengthAvg < 1 || p.RouteLengthStd < 0 {
		return fmt.Errorf("avg=%g std=%g: %w", p.RouteLengthAvg, p.RouteLengthStd, ErrInvalidRouteLength)
	}
	return nil
}

// Generator samples school bus scheduling instances. Create with New;
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

// Family returns "school_bus_scheduling".
func (g *Generator) Family() string { return "school_bus_scheduling" }

// Generate samples one instance from rng.
//
// The draw order is fixed: one normal route-length draw per (school,
// route) pair with schools ascending and routes ascending within each
// school, then the instance tag. Lengths are truncated to int and
// clamped to at least one slot.
func (g *Generator) Generate(rng *rand.Rand) (problem.Problem, error) {
	p := g.params

	routes := make([][]int, p.NumSchools)
	for s := range routes {
		routes[s] = make([]int, p.NumRoutes)
		for r := range routes[s] {
			length := int(rng.NormFloat64()*p.RouteLengthStd + p.RouteLengthAvg)
			if length < 1 {
				length = 1
			}
			routes[s][r] = length
		}
	}

	tag := rng.Int63()
	name := fmt.Sprintf("S%d_R%d_T%d_tw%d_ravg%g_rstd%g_%d",
		p.NumSchools, p.NumRoutes, p.MaxTime, p.TimeWindow,
		p.RouteLengthAvg, p.RouteLengthStd, tag)

	m, err := buildModel(name, p, routes)
	if err != nil {
		return nil, fmt.Errorf("Generate: %w", err)
	}
	return &Problem{name: name, params: p, routes: routes, model: m}, nil
}

// buildModel assembles the scheduling program for one sampled route
// length matrix. Slot indices are 1-based; last is the final slot.
func buildModel(name string, p Params, routes [][]int) (*model.Model, error) {
	m := model.NewModel(name)
	last := p.MaxTime - 1

	// x[t][s][r]: route r of school s finishes in slot t.
	x := make([][][]*model.Var, last+1)
	for t := 1; t <= last; t++ {
		x[t] = make([][]*model.Var, p.NumSchools)
		for s := 0; s < p.NumSchools; s++ {
			x[t][s] = make([]*model.Var, p.NumRoutes)
			for r := 0; r < p.NumRoutes; r++ {
				v, err := m.NewVar(fmt.Sprintf("x[%d,%d,%d]", t, s, r), model.Binary)
				if err != nil {
					return nil, err
				}
				x[t][s][r] = v
			}
		}
	}

	// y[t][s]: school s starts in slot t.
	y := make([][]*model.Var, last+1)
	for t := 1; t <= last; t++ {
		y[t] = make([]*model.Var, p.NumSchools)
		for s := 0; s < p.NumSchools; s++ {
			v, err := m.NewVar(fmt.Sprintf("y[%d,%d]", t, s), model.Binary)
			if err != nil {
				return nil, err
			}
			y[t][s] = v
		}
	}

	z, err := m.NewVar("z", model.NonNegativeIntegers)
	if err != nil {
		return nil, err
	}

	// Every route finishes exactly once.
	for s := 0; s < p.NumSchools; s++ {
		for r := 0; r < p.NumRoutes; r++ {
			body := model.NewLinearExpr()
			for t := 1; t <= last; t++ {
				body.Add(x[t][s][r])
			}
			if _, err := m.AddConstraintEQ(fmt.Sprintf("assign[%d,%d]", s, r), body, 1); err != nil {
				return nil, err
			}
		}
	}

	// Every school starts exactly once.
	for s := 0; s < p.NumSchools; s++ {
		body := model.NewLinearExpr()
		for t := 1; t <= last; t++ {
			body.Add(y[t][s])
		}
		if _, err := m.AddConstraintEQ(fmt.Sprintf("start[%d]", s), body, 1); err != nil {
			return nil, err
		}
	}

	// A route finished by slot t forces its school to start by t plus
	// the window.
	for t := 1; t <= last; t++ {
		for s := 0; s < p.NumSchools; s++ {
			for r := 0; r < p.NumRoutes; r++ {
				body := model.NewLinearExpr()
				for tp := 1; tp <= t; tp++ {
					body.Add(x[tp][s][r])
				}
				for tp := 1; tp <= min(t+p.TimeWindow, last); tp++ {
					body.AddTerm(y[tp][s], -1)
				}
				if _, err := m.AddConstraintLE(fmt.Sprintf("window[%d,%d,%d]", t, s, r), body, 0); err != nil {
					return nil, err
				}
			}
		}
	}

	// A school may only start once all its routes have finished.
	for t := 1; t <= last; t++ {
		for s := 0; s < p.NumSchools; s++ {
			for r := 0; r < p.NumRoutes; r++ {
				body := model.NewLinearExpr()
				for tp := 1; tp <= t; tp++ {
					body.Add(y[tp][s]).AddTerm(x[tp][s][r], -1)
				}
				if _, err := m.AddConstraintLE(fmt.Sprintf("order[%d,%d,%d]", t, s, r), body, 0); err != nil {
					return nil, err
				}
			}
		}
	}

	// Routes running in slot t occupy buses: a route finishing in any
	// slot within its length from t is on the road during t.
	for t := 1; t <= last; t++ {
		body := model.NewLinearExpr()
		for s := 0; s < p.NumSchools; s++ {
			for r := 0; r < p.NumRoutes; r++ {
				for tp := t; tp <= min(t+routes[s][r]-1, last); tp++ {
					body.Add(x[tp][s][r])
				}
			}
		}
		body.AddTerm(z, -1)
		if _, err := m.AddConstraintLE(fmt.Sprintf("fleet[%d]", t), body, 0); err != nil {
			return nil, err
		}
	}

	if err := m.Minimize(model.NewLinearExpr().Add(z)); err != nil {
		return nil, err
	}
	return m, nil
}

// Problem is one generated school bus scheduling instance.
type Problem struct {
	name   string
	params Params
	routes [][]int
	model  *model.Model
}

// Name returns the instance name.
func (p *Problem) Name() string { return p.name }

// Parameters returns the generator parameters plus the sampled route
// length matrix.
func (p *Problem) Parameters() map[string]any {
	return map[string]any{
		"family":           "school_bus_scheduling",
		"num_schools":      p.params.NumSchools,
		"num_routes":       p.params.NumRoutes,
		"max_time":         p.params.MaxTime,
		"time_window":      p.params.TimeWindow,
		"route_length_avg": p.params.RouteLengthAvg,
		"route_length_std": p.params.RouteLengthStd,
		"routes":           p.routes,
	}
}

// Model returns the underlying model.
func (p *Problem) Model() *model.Model { return p.model }

// IsLinear reports true: the scheduling models are linear.
func (p *Problem) IsLinear() bool { return true }
