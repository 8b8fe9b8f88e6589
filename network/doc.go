// Package network builds cubic pore networks from binary voxel
// templates: one pore per void voxel, one throat per face-adjacent
// pair of void voxels.
//
// What:
//
//   - Cubic: immutable pore/throat lists with per-throat diffusive
//     conductance and a template-index map back into image space.
//   - FromTemplate: deterministic construction (pores in ascending
//     flat-index order, throats emitted forward along +axis only).
//   - PoresOnFace: boundary pore selection for Dirichlet conditions.
//
// Why:
//
//   - Steady-state transport on the void phase reduces to a weighted
//     graph Laplacian over exactly this network.
//   - The template-index map lets solutions scatter back into the
//     original image geometry.
//
// Complexity:
//
//   - FromTemplate: O(n*rank) time over n voxels, O(p + t) memory for
//     p pores and t throats.
//   - PoresOnFace:  O(n / shape[axis]).
//
// Errors:
//
//   - ErrNilTemplate / ErrEmptyTemplate: nil image, or no void voxels.
//   - ErrBadSpacing / ErrBadConductance: non-positive parameters.
//   - ErrPoreIndex / ErrThroatIndex: out-of-range accessor argument.
//   - voxel.ErrAxisOutOfRange: face query on a bad axis.
package network
