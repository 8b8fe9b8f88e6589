// Package filters provides connected-component analysis of binary
// voxel images and the percolation filters built on top of it.
//
// What:
//
//   - Label: flood-fill labeling of the true phase (1-based labels).
//   - TrimNonpercolatingPaths: keeps only void clusters spanning from
//     the inlet face to the outlet face; everything else turns solid.
//     This is the pre-conditioning step that keeps the downstream
//     diffusion system non-singular.
//   - FindDisconnectedVoxels: mask of void clusters touching no image
//     boundary (floating pores).
//   - FillBlindPores / TrimFloatingSolid: remove enclosed void or
//     enclosed solid respectively.
//
// Why:
//
//   - Transport simulation: isolated voxels produce singular matrices.
//   - Porosity bookkeeping: effective (connected) vs. total porosity.
//
// Complexity:
//
//   - All filters run one BFS labeling pass: O(n*d) time, O(n) memory,
//     where n is the voxel count and d the neighbour degree.
//
// Errors:
//
//   - ErrNilImage: a nil image was passed.
//   - voxel.ErrAxisOutOfRange: inlet or outlet axis outside the rank.
package filters
