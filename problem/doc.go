// Package problem defines the Problem contract implemented by every
// problem family and the Instance wrapper that owns one generated model
// together with its lazily computed graph and feature vector.
//
// A Problem exposes an immutable model, the parameters it was built from,
// a deterministic instance name, and a linearity flag. Instance adds the
// expensive derived artifacts: the variable–constraint graph and the
// feature vector are each computed at most once and cached for the
// instance's lifetime (both are pure functions of the immutable model, so
// a simple computed-or-not flag suffices; no general memoization is
// needed). Neither artifact is shared or mutated externally.
//
// Save persists the instance: the model as <name>.mps for linear problems
// or <name>.gms otherwise, and optionally <name>_parameters.json and
// <name>_features.json sidecar files. A failed instance never leaves a
// partial feature file behind: features are computed before any file is
// opened.
package problem
