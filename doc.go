// Package discretenet generates labeled instances of discrete (mixed-integer)
// optimization problems for machine-learning research on combinatorial
// optimization.
//
// For each problem family a generator samples random parameters and builds a
// mathematical program; every resulting instance can be serialized to a
// standard solver-input file and summarized by a fixed vector of structural
// features derived from a bipartite variable–constraint representation of
// the model.
//
// The module is organized as flat subpackages:
//
//	model/     — in-memory modeling layer: variables, linear expressions,
//	             one- or two-sided constraints, min/max objectives
//	vcg/       — canonical bipartite variable–constraint graph construction
//	             (bound normalization, sign flips, domain classification)
//	features/  — ~80 scalar statistics over the VCG and the objective
//	problem/   — problem instances with lazily computed graph and features,
//	             plus persistence to .mps/.gms and JSON sidecar files
//	mps/       — fixed-format MPS and minimal GAMS writers
//	generator/ — reproducible parallel batch generation with explicit seeds
//	problems/  — concrete problem families (gisp, fcmnf, schoolbus, waterpipe)
//
// The core transform (model → graph → features) is pure and deterministic:
// the same model always yields bit-identical graphs and feature vectors,
// which makes batches reproducible from a single root seed.
//
//	go get github.com/discretenet/discretenet
package discretenet
