package voxel

import (
	"fmt"
)

// newGeometry validates shape and derives row-major strides.
// Returns ErrBadShape on rank outside [2,3] or non-positive extents.
func newGeometry(shape []int) (shp, stride []int, size int, err error) {
	if len(shape) < 2 || len(shape) > 3 {
		return nil, nil, 0, fmt.Errorf("%w: rank %d", ErrBadShape, len(shape))
	}
	size = 1
	shp = make([]int, len(shape))
	for d, n := range shape {
		if n <= 0 {
			return nil, nil, 0, fmt.Errorf("%w: extent %d along axis %d", ErrBadShape, n, d)
		}
		shp[d] = n
		size *= n
	}
	// Row-major: last axis is contiguous.
	stride = make([]int, len(shp))
	s := 1
	for d := len(shp) - 1; d >= 0; d-- {
		stride[d] = s
		s *= shp[d]
	}
	return shp, stride, size, nil
}

// New returns an all-solid (all-false) image of the given shape.
// Complexity: O(n) zeroing by the runtime.
func New(shape ...int) (*Image, error) {
	shp, stride, size, err := newGeometry(shape)
	if err != nil {
		return nil, err
	}
	return &Image{shape: shp, stride: stride, data: make([]bool, size)}, nil
}

// Full returns a uniform image of the given shape. Full(true, ...) is
// the fully open slab used as the straight-diffusion reference.
// Complexity: O(n).
func Full(value bool, shape ...int) (*Image, error) {
	im, err := New(shape...)
	if err != nil {
		return nil, err
	}
	if value {
		for i := range im.data {
			im.data[i] = true
		}
	}
	return im, nil
}

// From2D constructs an image from a non-empty rectangular [][]bool,
// deep-copying the input. rows[y][x] maps to coordinate (y, x).
// Returns ErrBadShape for empty input, ErrRagged for uneven rows.
// Complexity: O(n).
func From2D(rows [][]bool) (*Image, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty 2D input", ErrBadShape)
	}
	w := len(rows[0])
	for _, r := range rows {
		if len(r) != w {
			return nil, ErrRagged
		}
	}
	im, err := New(len(rows), w)
	if err != nil {
		return nil, err
	}
	for y, r := range rows {
		copy(im.data[y*w:(y+1)*w], r)
	}
	return im, nil
}

// From3D constructs an image from a non-empty rectangular [][][]bool,
// deep-copying the input. slices[z][y][x] maps to coordinate (z, y, x).
// Returns ErrBadShape for empty input, ErrRagged for uneven content.
// Complexity: O(n).
func From3D(slices [][][]bool) (*Image, error) {
	if len(slices) == 0 || len(slices[0]) == 0 || len(slices[0][0]) == 0 {
		return nil, fmt.Errorf("%w: empty 3D input", ErrBadShape)
	}
	h, w := len(slices[0]), len(slices[0][0])
	for _, sl := range slices {
		if len(sl) != h {
			return nil, ErrRagged
		}
		for _, r := range sl {
			if len(r) != w {
				return nil, ErrRagged
			}
		}
	}
	im, err := New(len(slices), h, w)
	if err != nil {
		return nil, err
	}
	i := 0
	for _, sl := range slices {
		for _, r := range sl {
			copy(im.data[i:i+w], r)
			i += w
		}
	}
	return im, nil
}

// NDim reports the image rank (2 or 3).
func (im *Image) NDim() int { return len(im.shape) }

// Shape returns a copy of the image extents.
func (im *Image) Shape() []int {
	s := make([]int, len(im.shape))
	copy(s, im.shape)
	return s
}

// Dim returns the extent along one axis without copying.
// Panics on an out-of-range axis (programmer error).
func (im *Image) Dim(axis int) int { return im.shape[axis] }

// Strides returns a copy of the row-major strides. Flat-index walkers
// in sibling packages combine these with Connectivity offsets.
func (im *Image) Strides() []int {
	s := make([]int, len(im.stride))
	copy(s, im.stride)
	return s
}

// Size reports the total voxel count.
func (im *Image) Size() int { return len(im.data) }

// CheckAxis validates an axis argument against the image rank.
// Returns ErrAxisOutOfRange for axis < 0 or axis >= NDim().
func (im *Image) CheckAxis(axis int) error {
	if axis < 0 || axis >= len(im.shape) {
		return fmt.Errorf("%w: axis %d for rank %d", ErrAxisOutOfRange, axis, len(im.shape))
	}
	return nil
}

// Index maps a coordinate to its row-major flat index.
// Panics on rank mismatch; returns -1 when out of bounds.
// Complexity: O(rank).
func (im *Image) Index(coord ...int) int {
	if len(coord) != len(im.shape) {
		panic("voxel: coordinate rank mismatch")
	}
	idx := 0
	for d, c := range coord {
		if c < 0 || c >= im.shape[d] {
			return -1
		}
		idx += c * im.stride[d]
	}
	return idx
}

// Coordinate converts a flat index back to a coordinate.
// Complexity: O(rank).
func (im *Image) Coordinate(idx int) []int {
	c := make([]int, len(im.shape))
	im.CoordinateInto(idx, c)
	return c
}

// CoordinateInto is the allocation-free variant of Coordinate for hot
// loops; c must have length NDim().
func (im *Image) CoordinateInto(idx int, c []int) {
	for d := 0; d < len(im.shape); d++ {
		c[d] = idx / im.stride[d]
		idx -= c[d] * im.stride[d]
	}
}

// At reports the voxel value at the given coordinate.
// Panics on rank mismatch or out-of-bounds access (programmer error,
// matching slice semantics).
func (im *Image) At(coord ...int) bool {
	i := im.Index(coord...)
	if i < 0 {
		panic("voxel: coordinate out of range")
	}
	return im.data[i]
}

// Set assigns the voxel value at the given coordinate.
func (im *Image) Set(value bool, coord ...int) {
	i := im.Index(coord...)
	if i < 0 {
		panic("voxel: coordinate out of range")
	}
	im.data[i] = value
}

// Raw exposes the backing slice in row-major order. Mutating it
// mutates the image; hot loops in sibling packages rely on this.
func (im *Image) Raw() []bool { return im.data }

// Clone returns an independent deep copy.
// Complexity: O(n).
func (im *Image) Clone() *Image {
	cp := &Image{
		shape:  make([]int, len(im.shape)),
		stride: make([]int, len(im.stride)),
		data:   make([]bool, len(im.data)),
	}
	copy(cp.shape, im.shape)
	copy(cp.stride, im.stride)
	copy(cp.data, im.data)
	return cp
}

// Count reports the number of true voxels.
// Complexity: O(n).
func (im *Image) Count() int {
	n := 0
	for _, v := range im.data {
		if v {
			n++
		}
	}
	return n
}

// Porosity reports the true-phase volume fraction, Count()/Size().
// Complexity: O(n).
func (im *Image) Porosity() float64 {
	return float64(im.Count()) / float64(im.Size())
}

// FaceIndices returns the flat indices of every voxel on the named
// face, in ascending order. Returns ErrAxisOutOfRange for a bad axis.
// Complexity: O(n/shape[axis]).
func (im *Image) FaceIndices(axis int, side Side) ([]int, error) {
	if err := im.CheckAxis(axis); err != nil {
		return nil, err
	}
	fixed := 0
	if side == Max {
		fixed = im.shape[axis] - 1
	}
	out := make([]int, 0, len(im.data)/im.shape[axis])
	c := make([]int, len(im.shape))
	for idx := range im.data {
		im.CoordinateInto(idx, c)
		if c[axis] == fixed {
			out = append(out, idx)
		}
	}
	return out, nil
}

// SameShape reports whether other has identical extents.
func (im *Image) SameShape(other *Image) bool {
	if other == nil || len(im.shape) != len(other.shape) {
		return false
	}
	for d := range im.shape {
		if im.shape[d] != other.shape[d] {
			return false
		}
	}
	return true
}

// Slice extracts one 2D cross-section of a rank-3 image as rows[r][c],
// with the same cut convention as Field.Slice.
//
// Returns ErrRankMismatch for rank-2 images, ErrAxisOutOfRange or
// ErrIndexOutOfRange on bad arguments.
// Complexity: O(n/shape[axis]).
func (im *Image) Slice(axis, index int) ([][]bool, error) {
	if len(im.shape) != 3 {
		return nil, fmt.Errorf("%w: Slice requires rank 3", ErrRankMismatch)
	}
	if axis < 0 || axis >= 3 {
		return nil, fmt.Errorf("%w: axis %d for rank 3", ErrAxisOutOfRange, axis)
	}
	if index < 0 || index >= im.shape[axis] {
		return nil, fmt.Errorf("%w: slice index %d", ErrIndexOutOfRange, index)
	}
	var a, b int
	switch axis {
	case 0:
		a, b = 1, 2
	case 1:
		a, b = 0, 2
	default:
		a, b = 0, 1
	}
	out := make([][]bool, im.shape[a])
	c := make([]int, 3)
	c[axis] = index
	for i := 0; i < im.shape[a]; i++ {
		row := make([]bool, im.shape[b])
		c[a] = i
		for j := 0; j < im.shape[b]; j++ {
			c[b] = j
			row[j] = im.data[c[0]*im.stride[0]+c[1]*im.stride[1]+c[2]*im.stride[2]]
		}
		out[i] = row
	}
	return out, nil
}
