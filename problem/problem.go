// SPDX-License-Identifier: MIT
// Package problem: the Problem contract and the Instance lifecycle.

package problem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/discretenet/discretenet/features"
	"github.com/discretenet/discretenet/model"
	"github.com/discretenet/discretenet/mps"
	"github.com/discretenet/discretenet/vcg"
)

// Problem is one generated problem instance of some family.
//
// Implementations must be deterministic: the model is built once from the
// parameters, contains no randomness of its own, and is immutable after
// construction. Name must be derivable from the parameters alone (no path,
// no extension) so that files written for the same instance collide
// predictably.
type Problem interface {
	// Name returns the instance name used for file stems.
	Name() string
	// Parameters returns the parameters the instance was constructed from.
	// Re-running a family generator with these parameters must reproduce an
	// identical model.
	Parameters() map[string]any
	// Model returns the immutable underlying model.
	Model() *model.Model
	// IsLinear reports whether every constraint and the objective are linear.
	IsLinear() bool
}

// Instance owns a Problem and its derived artifacts. It is not safe for
// concurrent use; each instance belongs to exactly one goroutine at a time.
type Instance struct {
	prob Problem

	graph     *vcg.Graph
	graphDone bool

	feats     features.Features
	featsDone bool
}

// NewInstance wraps a generated problem.
func NewInstance(p Problem) *Instance { return &Instance{prob: p} }

// Problem returns the wrapped problem.
func (in *Instance) Problem() Problem { return in.prob }

// Graph returns the instance's variable–constraint graph, building it on
// first use. The graph is a pure function of the immutable model, so the
// cached value is returned on every later call.
func (in *Instance) Graph() (*vcg.Graph, error) {
	if in.graphDone {
		return in.graph, nil
	}
	g, err := vcg.Build(in.prob.Model())
	if err != nil {
		return nil, fmt.Errorf("Graph(%s): %w", in.prob.Name(), err)
	}
	in.graph = g
	in.graphDone = true
	return g, nil
}

// Features returns the instance's feature vector, computing it on first
// use. This is the most expensive operation on an instance; the cached
// value is returned on every later call.
func (in *Instance) Features() (features.Features, error) {
	if in.featsDone {
		return in.feats, nil
	}
	g, err := in.Graph()
	if err != nil {
		return nil, err
	}
	f, err := features.Compute(g, in.prob.Model())
	if err != nil {
		return nil, fmt.Errorf("Features(%s): %w", in.prob.Name(), err)
	}
	in.feats = f
	in.featsDone = true
	return f, nil
}

// SaveOption configures Instance.Save.
type SaveOption func(*saveConfig)

type saveConfig struct {
	parameters bool
	features   bool
}

// WithParameters asks Save to also write <name>_parameters.json.
func WithParameters() SaveOption {
	return func(c *saveConfig) { c.parameters = true }
}

// WithFeatures asks Save to also write <name>_features.json. Computing
// features can be slow for large models.
func WithFeatures() SaveOption {
	return func(c *saveConfig) { c.features = true }
}

// Save writes the instance under dir, creating it if needed. The model goes
// to <name>.mps when the problem is linear and <name>.gms otherwise;
// optional sidecars are controlled by opts. Any error aborts the whole
// save; features are computed before any file is created so a failing
// instance leaves no partial artifacts.
func (in *Instance) Save(dir string, opts ...SaveOption) error {
	var cfg saveConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var feats features.Features
	if cfg.features {
		f, err := in.Features()
		if err != nil {
			return fmt.Errorf("Save(%s): %w", in.prob.Name(), err)
		}
		feats = f
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("Save(%s): %w", in.prob.Name(), err)
	}
	stem := filepath.Join(dir, in.prob.Name())

	if err := in.writeModel(stem); err != nil {
		return fmt.Errorf("Save(%s): %w", in.prob.Name(), err)
	}

	if cfg.parameters {
		if err := writeJSON(stem+"_parameters.json", in.prob.Parameters()); err != nil {
			return fmt.Errorf("Save(%s): parameters: %w", in.prob.Name(), err)
		}
	}
	if cfg.features {
		if err := writeJSON(stem+"_features.json", feats); err != nil {
			return fmt.Errorf("Save(%s): features: %w", in.prob.Name(), err)
		}
	}
	return nil
}

// writeModel serializes the model next to stem with the format implied by
// linearity.
func (in *Instance) writeModel(stem string) error {
	path := stem + ".mps"
	write := mps.WriteModel
	if !in.prob.IsLinear() {
		path = stem + ".gms"
		write = mps.WriteGAMS
	}

	fd, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(fd, in.prob.Model()); err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}

// writeJSON marshals v and writes it atomically enough for our purposes:
// marshal first, then a single create-write-close.
func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
