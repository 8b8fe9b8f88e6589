package voxel

import "fmt"

// NewField returns an all-zero float64 field of the given shape.
// Complexity: O(n).
func NewField(shape ...int) (*Field, error) {
	shp, stride, size, err := newGeometry(shape)
	if err != nil {
		return nil, err
	}
	return &Field{shape: shp, stride: stride, data: make([]float64, size)}, nil
}

// NDim reports the field rank (2 or 3).
func (f *Field) NDim() int { return len(f.shape) }

// Shape returns a copy of the field extents.
func (f *Field) Shape() []int {
	s := make([]int, len(f.shape))
	copy(s, f.shape)
	return s
}

// Dim returns the extent along one axis without copying.
func (f *Field) Dim(axis int) int { return f.shape[axis] }

// Strides returns a copy of the row-major strides.
func (f *Field) Strides() []int {
	s := make([]int, len(f.stride))
	copy(s, f.stride)
	return s
}

// Size reports the total voxel count.
func (f *Field) Size() int { return len(f.data) }

// CheckAxis validates that axis addresses a real dimension.
// Returns ErrAxisOutOfRange otherwise; negative axes are rejected.
func (f *Field) CheckAxis(axis int) error {
	if axis < 0 || axis >= len(f.shape) {
		return fmt.Errorf("%w: axis %d for rank %d", ErrAxisOutOfRange, axis, len(f.shape))
	}
	return nil
}

// Index maps a coordinate to its row-major flat index, -1 out of bounds.
func (f *Field) Index(coord ...int) int {
	if len(coord) != len(f.shape) {
		panic("voxel: coordinate rank mismatch")
	}
	idx := 0
	for d, c := range coord {
		if c < 0 || c >= f.shape[d] {
			return -1
		}
		idx += c * f.stride[d]
	}
	return idx
}

// At reports the value at the given coordinate.
func (f *Field) At(coord ...int) float64 {
	i := f.Index(coord...)
	if i < 0 {
		panic("voxel: coordinate out of range")
	}
	return f.data[i]
}

// Set assigns the value at the given coordinate.
func (f *Field) Set(value float64, coord ...int) {
	i := f.Index(coord...)
	if i < 0 {
		panic("voxel: coordinate out of range")
	}
	f.data[i] = value
}

// Raw exposes the backing slice in row-major order. The simulation
// pipeline scatters network solutions through it.
func (f *Field) Raw() []float64 { return f.data }

// SameShape reports whether the field and image share extents.
func (f *Field) SameShape(im *Image) bool {
	if im == nil || len(f.shape) != len(im.shape) {
		return false
	}
	for d := range f.shape {
		if f.shape[d] != im.shape[d] {
			return false
		}
	}
	return true
}

// Grid returns the whole rank-2 field as rows[r][c], deep-copied.
// Returns ErrRankMismatch for rank-3 fields (use Slice instead).
// Complexity: O(n).
func (f *Field) Grid() ([][]float64, error) {
	if len(f.shape) != 2 {
		return nil, fmt.Errorf("%w: Grid requires rank 2", ErrRankMismatch)
	}
	out := make([][]float64, f.shape[0])
	for r := 0; r < f.shape[0]; r++ {
		row := make([]float64, f.shape[1])
		copy(row, f.data[r*f.stride[0]:(r+1)*f.stride[0]])
		out[r] = row
	}
	return out, nil
}

// Slice extracts one 2D cross-section of a rank-3 field as rows[r][c].
// The cut is taken at coordinate index along axis; the remaining axes
// keep ascending order (an axis-0 cut yields rows over axis 1 and
// columns over axis 2).
//
// Returns ErrRankMismatch for rank-2 fields, ErrAxisOutOfRange or
// ErrIndexOutOfRange on bad arguments.
// Complexity: O(n/shape[axis]).
func (f *Field) Slice(axis, index int) ([][]float64, error) {
	if len(f.shape) != 3 {
		return nil, fmt.Errorf("%w: Slice requires rank 3", ErrRankMismatch)
	}
	if axis < 0 || axis >= 3 {
		return nil, fmt.Errorf("%w: axis %d for rank 3", ErrAxisOutOfRange, axis)
	}
	if index < 0 || index >= f.shape[axis] {
		return nil, fmt.Errorf("%w: slice index %d", ErrIndexOutOfRange, index)
	}
	// Remaining axes in ascending order.
	var a, b int
	switch axis {
	case 0:
		a, b = 1, 2
	case 1:
		a, b = 0, 2
	default:
		a, b = 0, 1
	}
	out := make([][]float64, f.shape[a])
	c := make([]int, 3)
	c[axis] = index
	for i := 0; i < f.shape[a]; i++ {
		row := make([]float64, f.shape[b])
		c[a] = i
		for j := 0; j < f.shape[b]; j++ {
			c[b] = j
			row[j] = f.data[c[0]*f.stride[0]+c[1]*f.stride[1]+c[2]*f.stride[2]]
		}
		out[i] = row
	}
	return out, nil
}
