// Package metrics computes scalar and per-slice descriptors of binary
// images and scalar fields: porosity, directional porosity profiles,
// field profiles, and summary statistics.
//
// All reductions run in a single deterministic pass over the flat
// buffer, so repeated calls on the same input produce identical
// results. Profiles are reported as one value per slice along the
// chosen axis, ordered from the minimum face to the maximum face.
package metrics
