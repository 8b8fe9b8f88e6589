// SPDX-License-Identifier: MIT
// Package: porespy/generators
//
// types.go - generator configuration and sentinel errors.
//
// Contract:
//   - Determinism is explicit: every generator draws from a seeded
//     source; DefaultSeed applies unless WithSeed/WithRand overrides.
//   - Returns only sentinel errors; never panics at runtime. The one
//     exception is WithRand(nil), a programmer error.

package generators

import (
	"errors"
	"math/rand"
)

// DefaultSeed seeds generator randomness when no option overrides it.
const DefaultSeed int64 = 1

var (
	// ErrBadPorosity is returned when the target porosity lies outside
	// the open interval (0, 1).
	ErrBadPorosity = errors.New("generators: porosity must be in (0, 1)")

	// ErrBadBlobiness is returned for a non-positive blobiness factor.
	ErrBadBlobiness = errors.New("generators: blobiness must be positive")

	// ErrBadRadius is returned for a sphere radius below one voxel.
	ErrBadRadius = errors.New("generators: radius must be at least 1")
)

// config carries the shared generator state.
type config struct {
	rng *rand.Rand
}

// Option adjusts generator configuration.
type Option func(*config)

// WithSeed makes the generator reproducible with the given seed.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand injects a caller-owned random source.
// Panics on nil; prefer WithSeed for reproducible runs.
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		if r == nil {
			panic("generators: WithRand(nil)")
		}
		c.rng = r
	}
}

// gatherOptions applies opts over the deterministic default source.
func gatherOptions(opts []Option) config {
	c := config{rng: rand.New(rand.NewSource(DefaultSeed))}
	for _, o := range opts {
		o(&c)
	}
	return c
}
