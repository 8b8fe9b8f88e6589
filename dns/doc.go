// Package dns runs direct numerical simulations of diffusive transport
// through the void phase of binary images, reducing the steady-state
// solution to scalar transport metrics.
//
// Tortuosity is the entry point. Its pipeline:
//
//  1. Validate the axis against the image rank.
//  2. Trim void space that does not percolate between the two faces
//     perpendicular to the axis (isolated and dead-end-cluster voxels
//     cannot carry steady-state flux). A porosity drop is logged.
//  3. Build a cubic network on the surviving void voxels with unit
//     spacing and unit diffusive conductance.
//  4. Pin concentration 1 on the first void layer and 0 on the last,
//     then solve the steady-state balance (package fickian).
//  5. Check that inlet and outlet molar flows agree within tolerance;
//     disagreement means the solve is unreliable and is an error.
//  6. Reduce the inlet flow to effective diffusivity, formation
//     factor, and tortuosity:
//
//     Deff = rate_in · L / (A · ΔC)
//     F    = 1 / Deff
//     τ    = ε_eff / Deff
//
//     with L the image extent along the axis, A the mean cross-section
//     voxel count, and ε_eff the porosity after trimming.
//
// The network discretization measures transport over pore centers, so
// a fully open slab of length L reports τ = (L−1)/L rather than
// exactly 1; the bias vanishes as the image grows.
//
// Options follow the functional pattern: invalid values are recorded
// and surfaced as ErrOptionViolation before any work happens. The
// solver can be swapped wholesale through WithSolver, which tests use
// to inject failing kernels.
package dns
