package filters

import (
	"errors"
	"testing"

	"github.com/Daniel-olaO/porespy/voxel"
)

// im2D is shorthand for building a test image from 0/1 rows.
func im2D(t *testing.T, rows ...[]int) *voxel.Image {
	t.Helper()
	b := make([][]bool, len(rows))
	for y, r := range rows {
		b[y] = make([]bool, len(r))
		for x, v := range r {
			b[y][x] = v != 0
		}
	}
	im, err := voxel.From2D(b)
	if err != nil {
		t.Fatalf("From2D failed: %v", err)
	}
	return im
}

// TestLabel_Simple2D labels a 3x4 grid with two face-connected
// clusters:
//
//	0 1 1 0
//	1 1 0 0
//	0 0 1 1
//
// Expect 2 clusters of sizes 4 and 2.
func TestLabel_Simple2D(t *testing.T) {
	im := im2D(t,
		[]int{0, 1, 1, 0},
		[]int{1, 1, 0, 0},
		[]int{0, 0, 1, 1},
	)
	labels, n := Label(im, voxel.Faces)
	if n != 2 {
		t.Fatalf("got %d clusters; want 2", n)
	}
	sizes := map[int32]int{}
	for _, l := range labels {
		if l != 0 {
			sizes[l]++
		}
	}
	if sizes[1] != 4 || sizes[2] != 2 {
		t.Errorf("cluster sizes = %v; want {1:4, 2:2}", sizes)
	}
}

// TestLabel_FullConnectivity joins an X pattern of corner-touching
// voxels into one cluster under Full connectivity:
//
//	1 0 1
//	0 1 0
//	1 0 1
func TestLabel_FullConnectivity(t *testing.T) {
	im := im2D(t,
		[]int{1, 0, 1},
		[]int{0, 1, 0},
		[]int{1, 0, 1},
	)
	if _, n := Label(im, voxel.Faces); n != 5 {
		t.Errorf("Faces: got %d clusters; want 5", n)
	}
	if _, n := Label(im, voxel.FullConnectivity); n != 1 {
		t.Errorf("Full: got %d clusters; want 1", n)
	}
}

// TestLabel_3D checks face connectivity across slices of a 2x2x2
// image: two voxels stacked along axis 0 connect, a corner voxel
// stays separate.
func TestLabel_3D(t *testing.T) {
	im, err := voxel.New(2, 2, 2)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	im.Set(true, 0, 0, 0)
	im.Set(true, 1, 0, 0)
	im.Set(true, 1, 1, 1)
	labels, n := Label(im, voxel.Faces)
	if n != 2 {
		t.Fatalf("got %d clusters; want 2", n)
	}
	if labels[im.Index(0, 0, 0)] != labels[im.Index(1, 0, 0)] {
		t.Errorf("stacked voxels should share a label")
	}
	if labels[im.Index(1, 1, 1)] == labels[im.Index(0, 0, 0)] {
		t.Errorf("corner voxel should be its own cluster")
	}
}

// TestTrimNonpercolatingPaths_Channel trims an image percolating along
// axis 1 (left to right): the spanning top row survives, the floating
// island does not.
//
//	1 1 1 1
//	0 0 0 0
//	0 1 1 0
func TestTrimNonpercolatingPaths_Channel(t *testing.T) {
	im := im2D(t,
		[]int{1, 1, 1, 1},
		[]int{0, 0, 0, 0},
		[]int{0, 1, 1, 0},
	)
	out, err := TrimNonpercolatingPaths(im, 1, 1)
	if err != nil {
		t.Fatalf("trim failed: %v", err)
	}
	if got := out.Count(); got != 4 {
		t.Fatalf("kept %d voxels; want 4", got)
	}
	for x := 0; x < 4; x++ {
		if !out.At(0, x) {
			t.Errorf("spanning channel voxel (0,%d) was trimmed", x)
		}
	}
	if out.At(2, 1) || out.At(2, 2) {
		t.Errorf("floating island survived the trim")
	}
	// Input untouched.
	if im.Count() != 6 {
		t.Errorf("input image was mutated")
	}
}

// TestTrimNonpercolatingPaths_FullyPercolating returns an equal image
// when every void voxel already lies on a spanning cluster.
func TestTrimNonpercolatingPaths_FullyPercolating(t *testing.T) {
	im, err := voxel.Full(true, 3, 4, 5)
	if err != nil {
		t.Fatalf("Full failed: %v", err)
	}
	for axis := 0; axis < 3; axis++ {
		out, err := TrimNonpercolatingPaths(im, axis, axis)
		if err != nil {
			t.Fatalf("trim failed: %v", err)
		}
		if out.Count() != im.Count() {
			t.Errorf("axis %d: porosity changed on a fully percolating image", axis)
		}
	}
}

// TestTrimNonpercolatingPaths_NoSpan yields an all-solid image when a
// blocking wall prevents percolation:
//
//	1 0 1
//	1 0 1
func TestTrimNonpercolatingPaths_NoSpan(t *testing.T) {
	im := im2D(t,
		[]int{1, 0, 1},
		[]int{1, 0, 1},
	)
	out, err := TrimNonpercolatingPaths(im, 1, 1)
	if err != nil {
		t.Fatalf("trim failed: %v", err)
	}
	if out.Count() != 0 {
		t.Errorf("kept %d voxels; want 0", out.Count())
	}
}

// TestTrimNonpercolatingPaths_AxisValidation rejects out-of-range axes
// before doing any work.
func TestTrimNonpercolatingPaths_AxisValidation(t *testing.T) {
	im := im2D(t, []int{1, 1}, []int{1, 1})
	if _, err := TrimNonpercolatingPaths(im, 2, 0); !errors.Is(err, voxel.ErrAxisOutOfRange) {
		t.Errorf("inlet axis 2: got %v; want ErrAxisOutOfRange", err)
	}
	if _, err := TrimNonpercolatingPaths(im, 0, -1); !errors.Is(err, voxel.ErrAxisOutOfRange) {
		t.Errorf("outlet axis -1: got %v; want ErrAxisOutOfRange", err)
	}
	if _, err := TrimNonpercolatingPaths(nil, 0, 0); !errors.Is(err, ErrNilImage) {
		t.Errorf("nil image: got %v; want ErrNilImage", err)
	}
}

// TestFillBlindPores removes the enclosed centre pore:
//
//	0 0 0
//	0 1 0
//	0 0 0
func TestFillBlindPores(t *testing.T) {
	im := im2D(t,
		[]int{0, 0, 0},
		[]int{0, 1, 0},
		[]int{0, 0, 0},
	)
	mask, err := FindDisconnectedVoxels(im, voxel.Faces)
	if err != nil {
		t.Fatalf("FindDisconnectedVoxels failed: %v", err)
	}
	if !mask.At(1, 1) || mask.Count() != 1 {
		t.Fatalf("blind pore not detected")
	}
	out, err := FillBlindPores(im)
	if err != nil {
		t.Fatalf("FillBlindPores failed: %v", err)
	}
	if out.Count() != 0 {
		t.Errorf("blind pore survived: %d voxels", out.Count())
	}
}

// TestTrimFloatingSolid opens the enclosed solid grain:
//
//	1 1 1
//	1 0 1
//	1 1 1
func TestTrimFloatingSolid(t *testing.T) {
	im := im2D(t,
		[]int{1, 1, 1},
		[]int{1, 0, 1},
		[]int{1, 1, 1},
	)
	out, err := TrimFloatingSolid(im)
	if err != nil {
		t.Fatalf("TrimFloatingSolid failed: %v", err)
	}
	if out.Count() != 9 {
		t.Errorf("floating solid survived: %d void voxels; want 9", out.Count())
	}
}
