// Package voxel provides rectangular 2D/3D voxel images used across the
// library: binary images (true marks the void phase of interest) and
// float64 fields (for reconstructed concentration maps).
//
// What:
//
//   - Image wraps a rank-2 or rank-3 binary grid with row-major layout.
//   - Field carries float64 data over the same geometry.
//   - Flat-index <-> coordinate helpers for hot loops (Index, Coordinate).
//   - Faces / Full neighbour connectivity with precomputed offsets.
//   - A small text codec plus 2D PNG encode/decode for CLI round trips.
//
// Why:
//
//   - Porous-media analysis: porosity bookkeeping, percolation filtering,
//     network templating all speak this type.
//   - One geometry implementation keeps index math out of the algorithms.
//
// Complexity:
//
//   - At/Set/Index/Coordinate: O(rank) = O(1) for rank <= 3.
//   - Porosity/Count/Clone:    O(n) over n voxels.
//
// Errors:
//
//   - ErrBadShape: rank outside [2,3] or a non-positive extent.
//   - ErrRagged: nested-slice constructor rows/slices of unequal length.
//   - ErrAxisOutOfRange: axis argument not in [0, rank).
//   - ErrIndexOutOfRange: coordinate or flat index outside the image.
//   - ErrNotBinary: text decode met a character other than 0/1.
//   - ErrRankMismatch: operation requires a different rank (PNG is 2D).
package voxel
