package config

import "errors"

// Validation errors returned by Config.Validate. Sentinels so callers
// can branch with errors.Is while the message stays self-explanatory.
var (
	// ErrInvalidSolver is returned for a solver name the solver
	// package does not recognize.
	ErrInvalidSolver = errors.New("invalid solver: must be auto, cg or cholesky")

	// ErrInvalidTolerance is returned when the tolerance is not positive.
	ErrInvalidTolerance = errors.New("invalid tolerance: must be positive")

	// ErrInvalidMaxIterations is returned for a negative iteration cap.
	// Use 0 to let the solver pick its own budget.
	ErrInvalidMaxIterations = errors.New("invalid max iterations: must be non-negative")

	// ErrInvalidRateTolerance is returned when either rate mismatch
	// bound is negative.
	ErrInvalidRateTolerance = errors.New("invalid rate tolerance: must be non-negative")

	// ErrInvalidReportFormat is returned for an unknown report format.
	ErrInvalidReportFormat = errors.New("invalid report format: must be simple, json or markdown")
)
