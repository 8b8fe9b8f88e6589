package fickian

import (
	"errors"

	"github.com/Daniel-olaO/porespy/solver"
)

// ErrNilNetwork is returned when New receives a nil network.
var ErrNilNetwork = errors.New("fickian: nil network")

// ErrPoreIndex is returned when a pore index lies outside the network.
var ErrPoreIndex = errors.New("fickian: pore index out of range")

// ErrBadValue is returned for a NaN or infinite boundary value.
var ErrBadValue = errors.New("fickian: boundary value must be finite")

// ErrConflictBC is returned when a pore already carries a different
// boundary value. Re-applying the same value is a no-op.
var ErrConflictBC = errors.New("fickian: conflicting boundary value")

// ErrNoBoundaries is returned by Run when no boundary conditions were
// set; the balance equations alone admit no unique solution.
var ErrNoBoundaries = errors.New("fickian: no boundary conditions set")

// ErrNotRun is returned by result accessors before a successful Run.
var ErrNotRun = errors.New("fickian: algorithm has not run")

// Options configures the diffusion algorithm.
//   - Solver: linear kernel for the assembled system; nil selects the
//     default family dispatch (see package solver).
type Options struct {
	Solver solver.Solver
}

// DefaultOptions returns production-safe defaults.
func DefaultOptions() Options {
	return Options{Solver: solver.New(solver.DefaultOptions())}
}

// normalize fills zero-valued fields with defaults.
func (o *Options) normalize() {
	if o.Solver == nil {
		o.Solver = solver.New(solver.DefaultOptions())
	}
}
