// Package generators builds synthetic binary microstructure images for
// testing and benchmarking transport simulations.
//
// Three generator families are provided:
//
//   - Noise: uncorrelated Bernoulli voxels at a target porosity. The
//     crudest texture, useful for percolation stress tests.
//   - Blobs: correlated blob texture made by blurring uniform noise
//     with a separable Gaussian and thresholding at the porosity
//     quantile. Blobiness controls the correlation length.
//   - OverlappingSpheres: a Boolean model of solid spheres at random
//     centers; the sphere count is derived from the target porosity
//     through Poisson coverage statistics.
//
// All generators are deterministic for a fixed seed: the default
// configuration uses a fixed seed, WithSeed swaps it, and WithRand
// injects a caller-owned source.
//
// Images follow the package voxel convention: true marks void space.
package generators
