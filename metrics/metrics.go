package metrics

import (
	"errors"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Daniel-olaO/porespy/voxel"
)

// ErrNilImage is returned when a nil image is passed.
var ErrNilImage = errors.New("metrics: nil image")

// ErrNilField is returned when a nil field is passed.
var ErrNilField = errors.New("metrics: nil field")

// ErrEmptySample is returned by Describe for an empty sample.
var ErrEmptySample = errors.New("metrics: empty sample")

// Porosity reports the void fraction of the image: the number of true
// voxels divided by the total voxel count.
func Porosity(im *voxel.Image) (float64, error) {
	if im == nil {
		return 0, ErrNilImage
	}
	return im.Porosity(), nil
}

// PorosityProfile reports the void fraction of each slice
// perpendicular to axis, ordered from the minimum face to the maximum
// face. Complexity: O(voxels).
func PorosityProfile(im *voxel.Image, axis int) ([]float64, error) {
	if im == nil {
		return nil, ErrNilImage
	}
	if err := im.CheckAxis(axis); err != nil {
		return nil, err
	}

	shape := im.Shape()
	stride := im.Strides()[axis]
	extent := shape[axis]
	raw := im.Raw()

	counts := make([]int, extent)
	for i, v := range raw {
		if v {
			counts[(i/stride)%extent]++
		}
	}

	sliceSize := len(raw) / extent
	out := make([]float64, extent)
	for k, c := range counts {
		out[k] = float64(c) / float64(sliceSize)
	}
	return out, nil
}

// FieldProfile reports the mean field value of each slice
// perpendicular to axis, ordered from the minimum face to the maximum
// face. Complexity: O(voxels).
func FieldProfile(f *voxel.Field, axis int) ([]float64, error) {
	if f == nil {
		return nil, ErrNilField
	}
	if err := f.CheckAxis(axis); err != nil {
		return nil, err
	}

	shape := f.Shape()
	stride := f.Strides()[axis]
	extent := shape[axis]
	raw := f.Raw()

	sums := make([]float64, extent)
	for i, v := range raw {
		sums[(i/stride)%extent] += v
	}

	sliceSize := float64(len(raw) / extent)
	for k := range sums {
		sums[k] /= sliceSize
	}
	return sums, nil
}

// Summary bundles the descriptive statistics of one sample.
type Summary struct {
	N      int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Describe computes min, max, mean, and the sample standard deviation
// of xs. A single-element sample reports StdDev 0.
func Describe(xs []float64) (Summary, error) {
	if len(xs) == 0 {
		return Summary{}, ErrEmptySample
	}
	mean, std := stat.MeanStdDev(xs, nil)
	if len(xs) == 1 {
		std = 0
	}
	return Summary{
		N:      len(xs),
		Min:    floats.Min(xs),
		Max:    floats.Max(xs),
		Mean:   mean,
		StdDev: std,
	}, nil
}
