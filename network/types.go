// Package network defines the Cubic network type, construction
// options, and sentinel errors.
package network

import "errors"

// Sentinel errors for network construction and access.
var (
	// ErrNilTemplate indicates a nil template image.
	ErrNilTemplate = errors.New("network: template image is nil")
	// ErrEmptyTemplate indicates a template without any void voxels.
	ErrEmptyTemplate = errors.New("network: template has no void voxels")
	// ErrBadSpacing indicates a non-positive lattice spacing option.
	ErrBadSpacing = errors.New("network: spacing must be positive")
	// ErrBadConductance indicates a non-positive conductance option.
	ErrBadConductance = errors.New("network: conductance must be positive")
	// ErrPoreIndex indicates a pore index outside [0, NumPores).
	ErrPoreIndex = errors.New("network: pore index out of range")
	// ErrThroatIndex indicates a throat index outside [0, NumThroats).
	ErrThroatIndex = errors.New("network: throat index out of range")
)

// DefaultSpacing is the lattice spacing used when no option overrides
// it: one length unit per voxel.
const DefaultSpacing = 1.0

// DefaultConductance is the uniform diffusive conductance assigned to
// every throat when no option overrides it. The unit value makes the
// solved system a plain graph Laplacian, which is what image-based
// tortuosity needs.
const DefaultConductance = 1.0

// Option configures FromTemplate via functional arguments. Invalid
// values are recorded and surfaced when FromTemplate runs.
type Option func(*options)

type options struct {
	spacing     float64
	conductance float64
	err         error
}

func defaultOptions() options {
	return options{
		spacing:     DefaultSpacing,
		conductance: DefaultConductance,
	}
}

// WithSpacing overrides the lattice spacing (length per voxel edge).
// Non-positive values surface ErrBadSpacing from FromTemplate.
func WithSpacing(s float64) Option {
	return func(o *options) {
		if s <= 0 {
			o.err = ErrBadSpacing
			return
		}
		o.spacing = s
	}
}

// WithConductance overrides the uniform diffusive conductance assigned
// to every throat. Non-positive values surface ErrBadConductance.
func WithConductance(g float64) Option {
	return func(o *options) {
		if g <= 0 {
			o.err = ErrBadConductance
			return
		}
		o.conductance = g
	}
}

// Cubic is a pore network on a cubic lattice carved from a template
// image. Pores and throats are index-addressed; construction order is
// deterministic for identical templates.
type Cubic struct {
	shape   []int
	spacing float64

	// coords holds rank ints per pore, flattened.
	coords []int
	rank   int

	// template[i] is the flat voxel index of pore i; lookup is the
	// inverse (-1 for solid voxels).
	template []int
	lookup   []int32

	throats     [][2]int
	conductance []float64
}
