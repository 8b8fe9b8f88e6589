// SPDX-License-Identifier: MIT
// Package: porespy/generators
//
// noise.go - uncorrelated Bernoulli noise at a target porosity.

package generators

import (
	"math"

	"github.com/Daniel-olaO/porespy/voxel"
)

// Noise fills an image of the given shape with independent voxels,
// each void with probability porosity.
func Noise(shape []int, porosity float64, opts ...Option) (*voxel.Image, error) {
	if math.IsNaN(porosity) || porosity <= 0 || porosity >= 1 {
		return nil, ErrBadPorosity
	}
	im, err := voxel.New(shape...)
	if err != nil {
		return nil, err
	}
	cfg := gatherOptions(opts)
	data := im.Raw()
	for i := range data {
		data[i] = cfg.rng.Float64() < porosity
	}
	return im, nil
}
