// Package voxel defines the image/field types, connectivity enum, and
// sentinel errors shared by the filtering, networking, and simulation
// packages.
package voxel

import "errors"

// Sentinel errors for voxel operations.
var (
	// ErrBadShape indicates a rank outside [2,3] or a non-positive extent.
	ErrBadShape = errors.New("voxel: shape must be 2D or 3D with positive extents")
	// ErrRagged indicates nested-slice input with rows or slices of unequal length.
	ErrRagged = errors.New("voxel: ragged input, all rows and slices must have equal length")
	// ErrAxisOutOfRange indicates an axis argument outside [0, rank).
	ErrAxisOutOfRange = errors.New("voxel: axis out of range")
	// ErrIndexOutOfRange indicates a coordinate or flat index outside the image.
	ErrIndexOutOfRange = errors.New("voxel: index out of range")
	// ErrNotBinary indicates text input containing characters other than 0 and 1.
	ErrNotBinary = errors.New("voxel: input is not a binary image")
	// ErrRankMismatch indicates an operation applied to an image of the wrong rank.
	ErrRankMismatch = errors.New("voxel: operation requires a different rank")
)

// Connectivity selects which voxels count as neighbours.
type Connectivity int

const (
	// Faces connects voxels sharing a face: 4 neighbours in 2D, 6 in 3D.
	Faces Connectivity = iota
	// FullConnectivity also connects edge and corner neighbours: 8 in 2D, 26 in 3D.
	FullConnectivity
)

// Degree returns the neighbour count for the given rank.
// Complexity: O(1).
func (c Connectivity) Degree(rank int) int {
	if c == FullConnectivity {
		n := 1
		for i := 0; i < rank; i++ {
			n *= 3
		}
		return n - 1
	}
	return 2 * rank
}

// Offsets returns the neighbour coordinate offsets for the given rank,
// each of length rank, in a fixed deterministic order. Face offsets
// come first so callers that only care about faces can truncate.
// Complexity: O(3^rank).
func (c Connectivity) Offsets(rank int) [][]int {
	offs := make([][]int, 0, c.Degree(rank))
	// Face neighbours: -1/+1 along each axis, axis-ascending.
	for d := 0; d < rank; d++ {
		for _, s := range [2]int{-1, 1} {
			o := make([]int, rank)
			o[d] = s
			offs = append(offs, o)
		}
	}
	if c == Faces {
		return offs
	}
	// Remaining offsets of {-1,0,1}^rank with two or more non-zero entries.
	cur := make([]int, rank)
	var walk func(d, nonzero int)
	walk = func(d, nonzero int) {
		if d == rank {
			if nonzero >= 2 {
				o := make([]int, rank)
				copy(o, cur)
				offs = append(offs, o)
			}
			return
		}
		for _, v := range [3]int{-1, 0, 1} {
			cur[d] = v
			nz := nonzero
			if v != 0 {
				nz++
			}
			walk(d+1, nz)
		}
		cur[d] = 0
	}
	walk(0, 0)
	return offs
}

// Side names a face of the image along an axis.
type Side int

const (
	// Min is the face at coordinate 0 along the axis.
	Min Side = iota
	// Max is the face at coordinate shape[axis]-1 along the axis.
	Max
)

// Image is a rectangular rank-2 or rank-3 binary voxel image with
// row-major (C-order) layout. The true phase is the phase of interest
// (void space in porous-media terms). Shape never changes after
// construction.
type Image struct {
	shape  []int
	stride []int
	data   []bool
}

// Field carries float64 voxel data over the same geometry as Image.
// Used for concentration maps scattered back from network solutions.
type Field struct {
	shape  []int
	stride []int
	data   []float64
}
