// SPDX-License-Identifier: MIT
// Package solver: sentinel error set, solver families, and options.
// This file defines ONLY the package-level sentinel errors, the Family
// enumeration, and the Options/Stats types shared by all kernels.
// Algorithms MUST return these sentinels and tests MUST check them via
// errors.Is.

package solver

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Every message is prefixed with "solver: ..." for consistency and to
// allow easy grepping across logs. Kernels return sentinels directly;
// facades may wrap with fmt.Errorf("op: %w", ErrX) and callers still
// match via errors.Is.
var (
	// ErrEmptySystem is returned when a system has zero unknowns.
	ErrEmptySystem = errors.New("solver: empty system")

	// ErrShapeMismatch indicates incompatible dimensions between a
	// matrix and a vector (rhs or destination).
	ErrShapeMismatch = errors.New("solver: dimension mismatch")

	// ErrIndexOutOfRange indicates a row or column index outside
	// [0, n) during assembly.
	ErrIndexOutOfRange = errors.New("solver: index out of range")

	// ErrNotFinite signals a NaN or ±Inf value where finite values are
	// required (assembly and right-hand sides).
	ErrNotFinite = errors.New("solver: value is not finite")

	// ErrNotPositiveDefinite signals that a factorization or CG step
	// detected an indefinite or singular matrix.
	ErrNotPositiveDefinite = errors.New("solver: matrix is not positive definite")

	// ErrNotConverged is returned when conjugate gradient exhausts its
	// iteration budget before reaching the requested tolerance.
	ErrNotConverged = errors.New("solver: did not converge within iteration budget")

	// ErrBadTolerance is returned for a non-positive or non-finite
	// convergence tolerance.
	ErrBadTolerance = errors.New("solver: tolerance must be positive and finite")

	// ErrBadMaxIterations is returned for a negative iteration budget.
	ErrBadMaxIterations = errors.New("solver: max iterations must be non-negative")

	// ErrUnknownFamily is returned by ParseFamily for unrecognized names.
	ErrUnknownFamily = errors.New("solver: unknown solver family")
)

// Family selects which kernel Solve dispatches to.
type Family int

const (
	// Auto picks Cholesky for systems up to autoDenseCutoff unknowns
	// and conjugate gradient beyond that.
	Auto Family = iota
	// CG selects the Jacobi-preconditioned conjugate-gradient kernel.
	CG
	// Cholesky selects the dense Cholesky factorization.
	Cholesky
)

// autoDenseCutoff is the largest system Auto still solves densely.
// Beyond this, the O(n²) memory of the dense path dominates and CG wins.
const autoDenseCutoff = 512

// String returns the canonical lower-case name of the family.
func (f Family) String() string {
	switch f {
	case Auto:
		return "auto"
	case CG:
		return "cg"
	case Cholesky:
		return "cholesky"
	default:
		return fmt.Sprintf("family(%d)", int(f))
	}
}

// ParseFamily maps a case-insensitive name to a Family.
// Accepted names: "auto", "cg", "cholesky".
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return Auto, nil
	case "cg":
		return CG, nil
	case "cholesky", "direct":
		return Cholesky, nil
	default:
		return Auto, fmt.Errorf("%w: %q", ErrUnknownFamily, s)
	}
}

// Default numeric policy.
const (
	// DefaultTolerance is the relative residual target for CG:
	// ‖b − A·x‖₂ ≤ DefaultTolerance · ‖b‖₂.
	DefaultTolerance = 1e-10
)

// Options configures Solve.
//   - Family: kernel selection; Auto sizes the choice to the system.
//   - Tolerance: relative residual target (CG only).
//   - MaxIterations: CG budget; 0 means 10·n.
type Options struct {
	Family        Family
	Tolerance     float64
	MaxIterations int
}

// DefaultOptions returns production-safe defaults.
func DefaultOptions() Options {
	return Options{
		Family:        Auto,
		Tolerance:     DefaultTolerance,
		MaxIterations: 0,
	}
}

// validate enforces option invariants before any kernel runs.
func (o Options) validate() error {
	if o.Tolerance <= 0 || math.IsInf(o.Tolerance, 0) || math.IsNaN(o.Tolerance) {
		return ErrBadTolerance
	}
	if o.MaxIterations < 0 {
		return ErrBadMaxIterations
	}
	return nil
}

// Stats reports what a solve actually did.
//   - Family: the kernel that ran (Auto is resolved before solving).
//   - Iterations: CG iterations performed; 0 for Cholesky.
//   - Residual: final relative residual; 0 for Cholesky.
type Stats struct {
	Family     Family
	Iterations int
	Residual   float64
}
