// SPDX-License-Identifier: MIT
// Package solver: dense Cholesky kernel (gonum-backed).
// Intended for small systems where O(n²) memory is acceptable; Auto
// routes systems above autoDenseCutoff to conjugate gradient instead.

package solver

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// solveCholesky densifies m into a symmetric matrix, factorizes, and
// back-substitutes. Only the upper triangle of m is read; a symmetric
// CSR stores the mirror entries and writing both would be redundant.
func solveCholesky(m *CSR, rhs []float64) ([]float64, Stats, error) {
	n := m.Dim()
	if len(rhs) != n {
		return nil, Stats{Family: Cholesky}, ErrShapeMismatch
	}

	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			if j := m.colIdx[k]; j >= i {
				sym.SetSym(i, j, m.vals[k])
			}
		}
	}

	var ch mat.Cholesky
	if ok := ch.Factorize(sym); !ok {
		return nil, Stats{Family: Cholesky}, ErrNotPositiveDefinite
	}

	var x mat.VecDense
	if err := ch.SolveVecTo(&x, mat.NewVecDense(n, rhs)); err != nil {
		return nil, Stats{Family: Cholesky}, fmt.Errorf("solver: cholesky back-substitution: %w", err)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = x.AtVec(i)
	}
	return out, Stats{Family: Cholesky}, nil
}
