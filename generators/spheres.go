// SPDX-License-Identifier: MIT
// Package: porespy/generators
//
// spheres.go - Boolean model of overlapping solid spheres.
//
// Contract:
//   - shape follows the voxel rules (rank 2 or 3, positive extents).
//   - radius ≥ 1 voxel; porosity ∈ (0,1).
//   - Centers fall in the domain extended by radius on every face, so
//     boundary voxels see the same coverage statistics as the bulk.
//
// Determinism:
//   - Sphere count and every center come from the seeded source in a
//     fixed order.
//
// Complexity:
//   - Time O(n_spheres · radius^rank), Space O(1) beyond the image.

package generators

import (
	"math"

	"github.com/Daniel-olaO/porespy/voxel"
)

// OverlappingSpheres carves solid spheres of the given radius out of
// an all-void image. The sphere count follows Poisson coverage
// statistics, so the expected void fraction equals porosity:
//
//	porosity = exp(−λ·V_sphere), λ = sphere centers per unit volume.
//
// Small images land farther from the target because a single sphere
// moves the fraction by a large step.
func OverlappingSpheres(shape []int, radius, porosity float64, opts ...Option) (*voxel.Image, error) {
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius < 1 {
		return nil, ErrBadRadius
	}
	if math.IsNaN(porosity) || porosity <= 0 || porosity >= 1 {
		return nil, ErrBadPorosity
	}

	im, err := voxel.Full(true, shape...)
	if err != nil {
		return nil, err
	}
	cfg := gatherOptions(opts)
	rank := im.NDim()
	dims := im.Shape()

	var sphereVol float64
	if rank == 2 {
		sphereVol = math.Pi * radius * radius
	} else {
		sphereVol = 4.0 / 3.0 * math.Pi * radius * radius * radius
	}

	// Extended domain keeps edge coverage unbiased.
	extVol := 1.0
	for _, d := range dims {
		extVol *= float64(d) + 2*radius
	}
	lambda := -math.Log(porosity) / sphereVol
	count := int(math.Ceil(lambda * extVol))

	data := im.Raw()
	strides := im.Strides()
	center := make([]float64, rank)
	lo := make([]int, rank)
	hi := make([]int, rank)
	r2 := radius * radius

	for s := 0; s < count; s++ {
		for d := 0; d < rank; d++ {
			center[d] = cfg.rng.Float64()*(float64(dims[d])+2*radius) - radius
			lo[d] = clampInt(int(math.Floor(center[d]-radius)), 0, dims[d]-1)
			hi[d] = clampInt(int(math.Ceil(center[d]+radius)), 0, dims[d]-1)
		}
		if rank == 2 {
			carveDisk(data, strides, center, r2, lo, hi)
		} else {
			carveBall(data, strides, center, r2, lo, hi)
		}
	}
	return im, nil
}

// carveDisk marks the voxels of one disk solid. Voxel centers sit at
// coordinate + 0.5.
func carveDisk(data []bool, strides []int, center []float64, r2 float64, lo, hi []int) {
	for i := lo[0]; i <= hi[0]; i++ {
		di := float64(i) + 0.5 - center[0]
		for j := lo[1]; j <= hi[1]; j++ {
			dj := float64(j) + 0.5 - center[1]
			if di*di+dj*dj <= r2 {
				data[i*strides[0]+j*strides[1]] = false
			}
		}
	}
}

// carveBall is the rank-3 counterpart of carveDisk.
func carveBall(data []bool, strides []int, center []float64, r2 float64, lo, hi []int) {
	for i := lo[0]; i <= hi[0]; i++ {
		di := float64(i) + 0.5 - center[0]
		for j := lo[1]; j <= hi[1]; j++ {
			dj := float64(j) + 0.5 - center[1]
			dij := di*di + dj*dj
			if dij > r2 {
				continue
			}
			for k := lo[2]; k <= hi[2]; k++ {
				dk := float64(k) + 0.5 - center[2]
				if dij+dk*dk <= r2 {
					data[i*strides[0]+j*strides[1]+k*strides[2]] = false
				}
			}
		}
	}
}

// clampInt bounds v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
