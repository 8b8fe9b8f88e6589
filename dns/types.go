package dns

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/Daniel-olaO/porespy/solver"
	"github.com/Daniel-olaO/porespy/voxel"
)

// Sentinel errors for simulation runs.
var (
	// ErrNilImage is returned if a nil image pointer is passed.
	ErrNilImage = errors.New("dns: image is nil")

	// ErrShortAxis is returned when the image is a single voxel thick
	// along the simulation axis: the inlet and outlet faces coincide
	// and no gradient can be imposed.
	ErrShortAxis = errors.New("dns: image must be at least 2 voxels along the axis")

	// ErrNoPercolation is returned when no void path spans the image
	// along the chosen axis after trimming.
	ErrNoPercolation = errors.New("dns: no percolating void path along axis")

	// ErrRateMismatch is returned when inlet and outlet molar flows
	// disagree beyond tolerance after the solve.
	ErrRateMismatch = errors.New("dns: inlet and outlet rates do not match")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("dns: invalid option supplied")
)

// Boundary concentrations imposed across the simulation axis.
const (
	concentrationIn  = 1.0
	concentrationOut = 0.0
)

// Rate agreement defaults, interpreted as
// |−rate_out − rate_in| ≤ atol + rtol·|rate_in|.
const (
	DefaultRateRTol = 1e-5
	DefaultRateATol = 1e-8
)

// Option configures a simulation via functional arguments.
// If an Option is invalid (e.g. negative tolerance), it is recorded
// internally and surfaced as ErrOptionViolation when Tortuosity runs.
type Option func(*Options)

// Options holds the tunable parameters of a simulation.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// ReturnConcentration requests the voxel concentration field in
	// the result. Off by default; the field costs one float64 per
	// voxel.
	ReturnConcentration bool

	// Family selects the linear kernel when no Solver is injected.
	Family solver.Family

	// Tolerance is the relative residual target for iterative solves.
	Tolerance float64

	// MaxIterations bounds iterative solves; 0 means the kernel
	// default.
	MaxIterations int

	// RateRTol and RateATol govern the inlet/outlet agreement check.
	RateRTol float64
	RateATol float64

	// Solver, when non-nil, replaces the kernel built from Family,
	// Tolerance, and MaxIterations.
	Solver solver.Solver

	// Logger receives the porosity-drop warning.
	Logger *slog.Logger

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns an Options with sane defaults:
//   - context.Background()
//   - no concentration field
//   - automatic solver family at the default tolerance
//   - rate agreement at DefaultRateRTol/DefaultRateATol
//   - the process-default logger.
func DefaultOptions() Options {
	return Options{
		Ctx:       context.Background(),
		Family:    solver.Auto,
		Tolerance: solver.DefaultTolerance,
		RateRTol:  DefaultRateRTol,
		RateATol:  DefaultRateATol,
		Logger:    slog.Default(),
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithConcentration requests the reconstructed concentration field in
// the result.
func WithConcentration() Option {
	return func(o *Options) {
		o.ReturnConcentration = true
	}
}

// WithSolverFamily selects the linear kernel family.
func WithSolverFamily(f solver.Family) Option {
	return func(o *Options) {
		o.Family = f
	}
}

// WithTolerance sets the iterative solve target.
// Non-positive or non-finite values are invalid.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if tol <= 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
			o.err = fmt.Errorf("%w: tolerance must be positive and finite (%g)", ErrOptionViolation, tol)
			return
		}
		o.Tolerance = tol
	}
}

// WithMaxIterations bounds the iterative solve.
//
//	n > 0: limit to n iterations
//	n == 0: explicit kernel default
//	n < 0: invalid option → ErrOptionViolation
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxIterations cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxIterations = n
	}
}

// WithRateTolerance adjusts the inlet/outlet agreement check.
// Both tolerances must be non-negative and finite.
func WithRateTolerance(rtol, atol float64) Option {
	return func(o *Options) {
		if rtol < 0 || atol < 0 || math.IsNaN(rtol) || math.IsNaN(atol) ||
			math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
			o.err = fmt.Errorf("%w: rate tolerances must be non-negative and finite (rtol=%g, atol=%g)",
				ErrOptionViolation, rtol, atol)
			return
		}
		o.RateRTol = rtol
		o.RateATol = atol
	}
}

// WithSolver injects a complete linear solver, overriding Family,
// Tolerance, and MaxIterations. Nil is ignored.
func WithSolver(sv solver.Solver) Option {
	return func(o *Options) {
		if sv != nil {
			o.Solver = sv
		}
	}
}

// WithLogger routes simulation warnings. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Result bundles the outputs of one simulation.
type Result struct {
	// Tortuosity is ε_eff / Deff.
	Tortuosity float64

	// EffectiveDiffusivity is the flux-derived Deff, normalized so an
	// unobstructed domain approaches 1.
	EffectiveDiffusivity float64

	// FormationFactor is 1 / Deff.
	FormationFactor float64

	// OriginalPorosity is the void fraction before trimming.
	OriginalPorosity float64

	// EffectivePorosity is the void fraction of the percolating void.
	EffectivePorosity float64

	// RateIn and RateOut are the net diffusion rates across the inlet
	// and outlet faces. They balance within the rate tolerance:
	// RateIn > 0, RateOut < 0, RateIn ≈ -RateOut.
	RateIn  float64
	RateOut float64

	// SolveStats reports what the linear kernel did.
	SolveStats solver.Stats

	// Concentration holds the steady-state field mapped back onto the
	// image grid, zero on solid and trimmed voxels. Nil unless
	// requested via WithConcentration.
	Concentration *voxel.Field
}
