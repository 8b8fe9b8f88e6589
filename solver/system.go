// SPDX-License-Identifier: MIT
// Package solver: sparse assembly and compressed-sparse-row storage.
// This file defines:
//   - Builder, a coordinate-format (COO) accumulator with fail-fast
//     validation on indices and values,
//   - CSR, the compressed-sparse-row matrix consumed by the kernels,
//   - Compress, the deterministic COO→CSR conversion (row counting,
//     prefix sums, per-row column sort, duplicate merge).

package solver

import (
	"math"
	"sort"
)

// Builder accumulates matrix entries in coordinate form. Duplicate
// (row, col) entries are legal and are summed during Compress, which
// lets assembly loops add stencil contributions independently.
type Builder struct {
	n    int
	rows []int
	cols []int
	vals []float64
}

// NewBuilder returns an empty accumulator for an n×n system.
// Returns ErrEmptySystem when n <= 0.
func NewBuilder(n int) (*Builder, error) {
	if n <= 0 {
		return nil, ErrEmptySystem
	}
	return &Builder{n: n}, nil
}

// Dim reports the number of unknowns n.
func (b *Builder) Dim() int { return b.n }

// Add records the entry a[i,j] += v.
// Returns ErrIndexOutOfRange for indices outside [0, n) and
// ErrNotFinite for NaN or infinite v.
func (b *Builder) Add(i, j int, v float64) error {
	if i < 0 || i >= b.n || j < 0 || j >= b.n {
		return ErrIndexOutOfRange
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrNotFinite
	}
	b.rows = append(b.rows, i)
	b.cols = append(b.cols, j)
	b.vals = append(b.vals, v)
	return nil
}

// Compress converts the accumulated triplets to CSR form.
// Entries sharing (row, col) are summed; within each row, columns come
// out strictly ascending. The Builder remains valid afterwards.
//
// Complexity: O(nnz·log nnz) time for the per-row sorts, O(nnz) space.
func (b *Builder) Compress() (*CSR, error) {
	nnz := len(b.vals)

	// Step 1: count entries per row, then exclusive prefix sums give
	// the provisional row starts.
	rowPtr := make([]int, b.n+1)
	for _, r := range b.rows {
		rowPtr[r+1]++
	}
	for i := 0; i < b.n; i++ {
		rowPtr[i+1] += rowPtr[i]
	}

	// Step 2: scatter triplets into their row segment.
	colIdx := make([]int, nnz)
	vals := make([]float64, nnz)
	next := make([]int, b.n)
	copy(next, rowPtr[:b.n])
	for k, r := range b.rows {
		p := next[r]
		colIdx[p] = b.cols[k]
		vals[p] = b.vals[k]
		next[r] = p + 1
	}

	// Step 3: sort each row by column and merge duplicates in place.
	// The write cursor w never overtakes the read cursor, so the
	// compaction is safe on the shared slices.
	outPtr := make([]int, b.n+1)
	w := 0
	for i := 0; i < b.n; i++ {
		lo, hi := rowPtr[i], rowPtr[i+1]
		sort.Sort(rowSegment{cols: colIdx[lo:hi], vals: vals[lo:hi]})
		outPtr[i] = w
		for k := lo; k < hi; k++ {
			if w > outPtr[i] && colIdx[w-1] == colIdx[k] {
				vals[w-1] += vals[k]
				continue
			}
			colIdx[w] = colIdx[k]
			vals[w] = vals[k]
			w++
		}
	}
	outPtr[b.n] = w

	return &CSR{n: b.n, rowPtr: outPtr, colIdx: colIdx[:w], vals: vals[:w]}, nil
}

// rowSegment sorts one CSR row's columns and values in lockstep.
type rowSegment struct {
	cols []int
	vals []float64
}

func (s rowSegment) Len() int           { return len(s.cols) }
func (s rowSegment) Less(i, j int) bool { return s.cols[i] < s.cols[j] }
func (s rowSegment) Swap(i, j int) {
	s.cols[i], s.cols[j] = s.cols[j], s.cols[i]
	s.vals[i], s.vals[j] = s.vals[j], s.vals[i]
}

// CSR is a square sparse matrix in compressed-sparse-row form.
// Row i occupies colIdx[rowPtr[i]:rowPtr[i+1]] with matching vals;
// columns are strictly ascending within a row.
type CSR struct {
	n      int
	rowPtr []int
	colIdx []int
	vals   []float64
}

// Dim reports the matrix order n.
func (m *CSR) Dim() int { return m.n }

// NNZ reports the number of stored entries.
func (m *CSR) NNZ() int { return len(m.vals) }

// MulVec computes dst = m·x.
// Returns ErrShapeMismatch unless len(dst) == len(x) == n.
func (m *CSR) MulVec(dst, x []float64) error {
	if len(dst) != m.n || len(x) != m.n {
		return ErrShapeMismatch
	}
	for i := 0; i < m.n; i++ {
		var sum float64
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			sum += m.vals[k] * x[m.colIdx[k]]
		}
		dst[i] = sum
	}
	return nil
}

// Diagonal writes the main diagonal into dst. Absent entries read 0.
// Returns ErrShapeMismatch unless len(dst) == n.
func (m *CSR) Diagonal(dst []float64) error {
	if len(dst) != m.n {
		return ErrShapeMismatch
	}
	for i := 0; i < m.n; i++ {
		dst[i] = 0
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			if m.colIdx[k] == i {
				dst[i] = m.vals[k]
				break
			}
		}
	}
	return nil
}

// At reads a[i,j], with absent entries reading 0.
// Returns ErrIndexOutOfRange for indices outside [0, n).
func (m *CSR) At(i, j int) (float64, error) {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		return 0, ErrIndexOutOfRange
	}
	lo, hi := m.rowPtr[i], m.rowPtr[i+1]
	seg := m.colIdx[lo:hi]
	k := sort.SearchInts(seg, j)
	if k < len(seg) && seg[k] == j {
		return m.vals[lo+k], nil
	}
	return 0, nil
}
