// SPDX-License-Identifier: MIT
// Package solver: public solve facade and kernel dispatch.

package solver

import (
	"context"
	"fmt"
	"math"
)

// Solver abstracts a linear solve so simulations can swap kernels,
// most usefully with instrumented or failing stand-ins in tests.
type Solver interface {
	Solve(ctx context.Context, m *CSR, rhs []float64) ([]float64, Stats, error)
}

// Func adapts a plain function to the Solver interface.
type Func func(ctx context.Context, m *CSR, rhs []float64) ([]float64, Stats, error)

// Solve implements Solver.
func (f Func) Solve(ctx context.Context, m *CSR, rhs []float64) ([]float64, Stats, error) {
	return f(ctx, m, rhs)
}

// New returns a Solver that applies opts on every call.
func New(opts Options) Solver {
	return Func(func(ctx context.Context, m *CSR, rhs []float64) ([]float64, Stats, error) {
		return Solve(ctx, m, rhs, opts)
	})
}

// Solve validates the system, resolves the Auto family by size, and
// dispatches to the chosen kernel. The returned Stats always name the
// kernel that actually ran.
func Solve(ctx context.Context, m *CSR, rhs []float64, opts Options) ([]float64, Stats, error) {
	if m == nil || m.Dim() == 0 {
		return nil, Stats{}, ErrEmptySystem
	}
	if err := opts.validate(); err != nil {
		return nil, Stats{}, err
	}
	if len(rhs) != m.Dim() {
		return nil, Stats{}, ErrShapeMismatch
	}
	for i, v := range rhs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, Stats{}, fmt.Errorf("%w: rhs[%d]", ErrNotFinite, i)
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, Stats{}, err
	}

	fam := opts.Family
	if fam == Auto {
		if m.Dim() <= autoDenseCutoff {
			fam = Cholesky
		} else {
			fam = CG
		}
	}

	switch fam {
	case Cholesky:
		return solveCholesky(m, rhs)
	case CG:
		return solveCG(ctx, m, rhs, opts)
	default:
		return nil, Stats{}, fmt.Errorf("%w: %d", ErrUnknownFamily, int(fam))
	}
}
