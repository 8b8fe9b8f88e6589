// SPDX-License-Identifier: MIT
// Package: porespy/generators
//
// blobs.go - correlated blob texture from blurred noise.
//
// Contract:
//   - shape follows the voxel rules (rank 2 or 3, positive extents).
//   - porosity ∈ (0,1); blobiness > 0 and finite.
//   - Correlation length: sigma = mean(shape) / (blobSigmaDivisor · blobiness);
//     larger blobiness means smaller blobs.
//
// Determinism:
//   - Fixed traversal order; every draw comes from the seeded source.
//
// Complexity:
//   - Time O(n·k) for the separable blur (k = kernel width) plus
//     O(n log n) for the quantile threshold. Space O(n).

package generators

import (
	"math"
	"sort"

	"github.com/Daniel-olaO/porespy/voxel"
)

const (
	// blobSigmaDivisor calibrates blobiness: blobiness 1 on a
	// 100-voxel cube gives sigma 2.5.
	blobSigmaDivisor = 40.0

	// kernelRadiusSigmas truncates the Gaussian kernel at 3σ.
	kernelRadiusSigmas = 3.0
)

// Blobs generates a blob texture of the given shape whose void
// fraction lands on the porosity quantile of the blurred noise field.
func Blobs(shape []int, porosity, blobiness float64, opts ...Option) (*voxel.Image, error) {
	if math.IsNaN(porosity) || porosity <= 0 || porosity >= 1 {
		return nil, ErrBadPorosity
	}
	if math.IsNaN(blobiness) || math.IsInf(blobiness, 0) || blobiness <= 0 {
		return nil, ErrBadBlobiness
	}

	f, err := voxel.NewField(shape...)
	if err != nil {
		return nil, err
	}
	cfg := gatherOptions(opts)

	// 1) Uniform noise.
	raw := f.Raw()
	for i := range raw {
		raw[i] = cfg.rng.Float64()
	}

	// 2) Separable Gaussian blur along every axis.
	var meanDim float64
	for _, d := range f.Shape() {
		meanDim += float64(d)
	}
	meanDim /= float64(f.NDim())
	blurSeparable(f, meanDim/(blobSigmaDivisor*blobiness))

	// 3) Threshold: the lowest porosity·n values become void.
	th := quantile(raw, porosity)
	im, err := voxel.New(shape...)
	if err != nil {
		return nil, err
	}
	data := im.Raw()
	for i, v := range raw {
		data[i] = v < th
	}
	return im, nil
}

// blurSeparable applies a normalized 1-D Gaussian of width sigma along
// each axis in turn. Sub-voxel sigmas degenerate to a no-op kernel.
func blurSeparable(f *voxel.Field, sigma float64) {
	r := int(math.Ceil(kernelRadiusSigmas * sigma))
	if r < 1 {
		return
	}

	// Symmetric half-kernel: w[0] is the center tap.
	w := make([]float64, r+1)
	total := 0.0
	for o := 0; o <= r; o++ {
		w[o] = math.Exp(-float64(o*o) / (2 * sigma * sigma))
		if o == 0 {
			total += w[o]
		} else {
			total += 2 * w[o]
		}
	}
	for o := range w {
		w[o] /= total
	}

	shape := f.Shape()
	strides := f.Strides()
	data := f.Raw()
	for axis := range shape {
		blurAxis(data, shape[axis], strides[axis], w)
	}
}

// blurAxis convolves every line running along one axis, with
// reflected boundaries.
func blurAxis(data []float64, extent, stride int, w []float64) {
	r := len(w) - 1
	line := make([]float64, extent)
	out := make([]float64, extent)

	for start := range data {
		// Line starts are the positions with coordinate 0 on this axis.
		if (start/stride)%extent != 0 {
			continue
		}
		for k := 0; k < extent; k++ {
			line[k] = data[start+k*stride]
		}
		for k := 0; k < extent; k++ {
			acc := w[0] * line[k]
			for o := 1; o <= r; o++ {
				acc += w[o] * (line[reflectIndex(k-o, extent)] + line[reflectIndex(k+o, extent)])
			}
			out[k] = acc
		}
		for k := 0; k < extent; k++ {
			data[start+k*stride] = out[k]
		}
	}
}

// reflectIndex folds i into [0, n) by mirroring across both ends, with
// the edge sample repeated: (c b a | a b c | c b a).
func reflectIndex(i, n int) int {
	for i < 0 || i >= n {
		if i < 0 {
			i = -i - 1
		}
		if i >= n {
			i = 2*n - i - 1
		}
	}
	return i
}

// quantile returns the q-th order statistic of vals without mutating
// the input.
func quantile(vals []float64, q float64) float64 {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	k := int(q * float64(len(sorted)))
	if k >= len(sorted) {
		k = len(sorted) - 1
	}
	return sorted[k]
}
