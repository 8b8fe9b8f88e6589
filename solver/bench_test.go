// Package solver_test provides benchmarks for sparse assembly and the
// conjugate-gradient kernel on tridiagonal model systems.
package solver_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/Daniel-olaO/porespy/solver"
)

// benchSizes are the system orders to benchmark.
var benchSizes = []int{1 << 10, 1 << 13, 1 << 16}

// sinks to defeat dead-code elimination
var (
	sinkCSR *solver.CSR
	sinkVec []float64
)

func benchSystem(b *testing.B, n int) (*solver.CSR, []float64) {
	b.Helper()
	bl, err := solver.NewBuilder(n)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < n; i++ {
		if err = bl.Add(i, i, 4); err != nil {
			b.Fatal(err)
		}
		if i+1 < n {
			if err = bl.Add(i, i+1, -1); err != nil {
				b.Fatal(err)
			}
			if err = bl.Add(i+1, i, -1); err != nil {
				b.Fatal(err)
			}
		}
	}
	m, err := bl.Compress()
	if err != nil {
		b.Fatal(err)
	}
	rhs := make([]float64, n)
	for i := range rhs {
		rhs[i] = float64(i%13) - 6
	}
	return m, rhs
}

func BenchmarkCompress(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			bl, err := solver.NewBuilder(n)
			if err != nil {
				b.Fatal(err)
			}
			for i := 0; i < n; i++ {
				_ = bl.Add(i, i, 4)
				if i+1 < n {
					_ = bl.Add(i, i+1, -1)
					_ = bl.Add(i+1, i, -1)
				}
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := bl.Compress()
				if err != nil {
					b.Fatal(err)
				}
				sinkCSR = m
			}
		})
	}
}

func BenchmarkSolveCG(b *testing.B) {
	b.ReportAllocs()
	opts := solver.DefaultOptions()
	opts.Family = solver.CG
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			m, rhs := benchSystem(b, n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				x, _, err := solver.Solve(context.Background(), m, rhs, opts)
				if err != nil {
					b.Fatal(err)
				}
				sinkVec = x
			}
		})
	}
}
