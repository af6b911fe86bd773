// Package mps serializes models to solver-input text formats.
//
// WriteModel emits fixed-format MPS for linear models: an OBJSENSE section,
// ROWS typed from each constraint's original direction (L/G/E), COLUMNS
// with INTORG/INTEND integer markers, RHS with body constants folded in,
// and a BOUNDS section derived from each variable's virtual-domain tag.
// Ranged (two-sided, unequal) constraints and nonlinear bodies are not
// representable and fail fast.
//
// WriteGAMS emits a minimal GAMS scalar-model listing for nonlinear models,
// rendering linear bodies from their term lists and nonlinear bodies from
// their textual form.
//
// Both writers are thin, deterministic adapters over the modeling layer:
// same model in, byte-identical text out.
package mps
