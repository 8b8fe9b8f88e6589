// Package solver_test contains unit tests for sparse assembly,
// kernel dispatch, and both solve kernels.
package solver_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/Daniel-olaO/porespy/solver"
)

// MustBuilder constructs an n-unknown accumulator or fails the test.
func MustBuilder(t *testing.T, n int) *solver.Builder {
	t.Helper()
	b, err := solver.NewBuilder(n)
	if err != nil {
		t.Fatalf("NewBuilder(%d): %v", n, err)
	}
	return b
}

// MustAdd records one entry or fails the test.
func MustAdd(t *testing.T, b *solver.Builder, i, j int, v float64) {
	t.Helper()
	if err := b.Add(i, j, v); err != nil {
		t.Fatalf("Add(%d,%d,%g): %v", i, j, v, err)
	}
}

// MustCompress converts to CSR or fails the test.
func MustCompress(t *testing.T, b *solver.Builder) *solver.CSR {
	t.Helper()
	m, err := b.Compress()
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	return m
}

// tridiagonal assembles the n×n matrix with the given diagonal d and
// off-diagonal o on both neighbors.
func tridiagonal(t *testing.T, n int, d, o float64) *solver.CSR {
	t.Helper()
	b := MustBuilder(t, n)
	for i := 0; i < n; i++ {
		MustAdd(t, b, i, i, d)
		if i+1 < n {
			MustAdd(t, b, i, i+1, o)
			MustAdd(t, b, i+1, i, o)
		}
	}
	return MustCompress(t, b)
}

func TestBuilderValidation(t *testing.T) {
	t.Parallel()

	if _, err := solver.NewBuilder(0); !errors.Is(err, solver.ErrEmptySystem) {
		t.Errorf("NewBuilder(0): got %v", err)
	}

	b := MustBuilder(t, 2)
	if err := b.Add(2, 0, 1); !errors.Is(err, solver.ErrIndexOutOfRange) {
		t.Errorf("Add(2,0): got %v", err)
	}
	if err := b.Add(0, -1, 1); !errors.Is(err, solver.ErrIndexOutOfRange) {
		t.Errorf("Add(0,-1): got %v", err)
	}
	if err := b.Add(0, 0, math.NaN()); !errors.Is(err, solver.ErrNotFinite) {
		t.Errorf("Add NaN: got %v", err)
	}
	if err := b.Add(0, 0, math.Inf(1)); !errors.Is(err, solver.ErrNotFinite) {
		t.Errorf("Add +Inf: got %v", err)
	}
}

// TestCompressMergesDuplicates adds stencil contributions out of order
// and checks the compressed form sums and sorts them.
func TestCompressMergesDuplicates(t *testing.T) {
	t.Parallel()

	b := MustBuilder(t, 3)
	MustAdd(t, b, 1, 2, 0.5)
	MustAdd(t, b, 1, 0, -1)
	MustAdd(t, b, 1, 2, 0.5)
	MustAdd(t, b, 1, 1, 2)
	MustAdd(t, b, 0, 0, 1)
	m := MustCompress(t, b)

	if got := m.NNZ(); got != 4 {
		t.Fatalf("NNZ = %d; want 4 after duplicate merge", got)
	}
	for _, tc := range []struct {
		i, j int
		want float64
	}{
		{0, 0, 1},
		{1, 0, -1},
		{1, 1, 2},
		{1, 2, 1},
		{2, 2, 0},
	} {
		got, err := m.At(tc.i, tc.j)
		if err != nil {
			t.Fatalf("At(%d,%d): %v", tc.i, tc.j, err)
		}
		if got != tc.want {
			t.Errorf("At(%d,%d) = %g; want %g", tc.i, tc.j, got, tc.want)
		}
	}
}

func TestMulVecAndDiagonal(t *testing.T) {
	t.Parallel()

	m := tridiagonal(t, 3, 2, -1)

	x := []float64{1, 2, 3}
	dst := make([]float64, 3)
	if err := m.MulVec(dst, x); err != nil {
		t.Fatalf("MulVec: %v", err)
	}
	// [2 -1 0; -1 2 -1; 0 -1 2]·[1 2 3] = [0, 0, 4].
	want := []float64{0, 0, 4}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("MulVec[%d] = %g; want %g", i, dst[i], want[i])
		}
	}

	diag := make([]float64, 3)
	if err := m.Diagonal(diag); err != nil {
		t.Fatalf("Diagonal: %v", err)
	}
	for i, d := range diag {
		if d != 2 {
			t.Errorf("diag[%d] = %g; want 2", i, d)
		}
	}

	if err := m.MulVec(dst, []float64{1}); !errors.Is(err, solver.ErrShapeMismatch) {
		t.Errorf("MulVec short x: got %v", err)
	}
}

// TestSolveKnownSolution checks both kernels against the analytic
// inverse of the 3×3 Dirichlet Laplacian: x = [0.75, 0.5, 0.25].
func TestSolveKnownSolution(t *testing.T) {
	t.Parallel()

	m := tridiagonal(t, 3, 2, -1)
	rhs := []float64{1, 0, 0}
	want := []float64{0.75, 0.5, 0.25}

	for _, fam := range []solver.Family{solver.Cholesky, solver.CG} {
		opts := solver.DefaultOptions()
		opts.Family = fam
		x, stats, err := solver.Solve(context.Background(), m, rhs, opts)
		if err != nil {
			t.Fatalf("Solve(%v): %v", fam, err)
		}
		if stats.Family != fam {
			t.Errorf("stats.Family = %v; want %v", stats.Family, fam)
		}
		for i := range want {
			if math.Abs(x[i]-want[i]) > 1e-8 {
				t.Errorf("%v: x[%d] = %g; want %g", fam, i, x[i], want[i])
			}
		}
	}
}

// TestSolveLargeCG solves a well-conditioned 2000-unknown system and
// verifies the residual it reports against a recomputed one.
func TestSolveLargeCG(t *testing.T) {
	t.Parallel()

	const n = 2000
	m := tridiagonal(t, n, 4, -1)
	rhs := make([]float64, n)
	for i := range rhs {
		rhs[i] = float64(i%7) - 3
	}

	opts := solver.DefaultOptions()
	opts.Family = solver.CG
	x, stats, err := solver.Solve(context.Background(), m, rhs, opts)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if stats.Iterations == 0 {
		t.Error("stats.Iterations = 0; want > 0")
	}

	// Recompute ‖rhs − m·x‖ / ‖rhs‖ independently of the kernel.
	ax := make([]float64, n)
	if err = m.MulVec(ax, x); err != nil {
		t.Fatalf("MulVec: %v", err)
	}
	var rr, bb float64
	for i := range rhs {
		d := rhs[i] - ax[i]
		rr += d * d
		bb += rhs[i] * rhs[i]
	}
	if rel := math.Sqrt(rr / bb); rel > opts.Tolerance*10 {
		t.Errorf("recomputed relative residual = %.3e; want <= %.3e", rel, opts.Tolerance*10)
	}
}

// TestAutoFamilySelection checks the size-based dispatch on both sides
// of the dense cutoff.
func TestAutoFamilySelection(t *testing.T) {
	t.Parallel()

	small := tridiagonal(t, 8, 4, -1)
	_, stats, err := solver.Solve(context.Background(), small, make([]float64, 8), solver.DefaultOptions())
	if err != nil {
		t.Fatalf("Solve small: %v", err)
	}
	if stats.Family != solver.Cholesky {
		t.Errorf("small system family = %v; want Cholesky", stats.Family)
	}

	big := tridiagonal(t, 600, 4, -1)
	rhs := make([]float64, 600)
	rhs[0] = 1
	_, stats, err = solver.Solve(context.Background(), big, rhs, solver.DefaultOptions())
	if err != nil {
		t.Fatalf("Solve big: %v", err)
	}
	if stats.Family != solver.CG {
		t.Errorf("big system family = %v; want CG", stats.Family)
	}
}

func TestSolveErrors(t *testing.T) {
	t.Parallel()

	m := tridiagonal(t, 3, 2, -1)
	ctx := context.Background()

	if _, _, err := solver.Solve(ctx, nil, nil, solver.DefaultOptions()); !errors.Is(err, solver.ErrEmptySystem) {
		t.Errorf("nil matrix: got %v", err)
	}
	if _, _, err := solver.Solve(ctx, m, []float64{1}, solver.DefaultOptions()); !errors.Is(err, solver.ErrShapeMismatch) {
		t.Errorf("short rhs: got %v", err)
	}
	if _, _, err := solver.Solve(ctx, m, []float64{1, math.NaN(), 0}, solver.DefaultOptions()); !errors.Is(err, solver.ErrNotFinite) {
		t.Errorf("NaN rhs: got %v", err)
	}

	bad := solver.DefaultOptions()
	bad.Tolerance = 0
	if _, _, err := solver.Solve(ctx, m, []float64{1, 0, 0}, bad); !errors.Is(err, solver.ErrBadTolerance) {
		t.Errorf("zero tolerance: got %v", err)
	}

	neg := solver.DefaultOptions()
	neg.MaxIterations = -1
	if _, _, err := solver.Solve(ctx, m, []float64{1, 0, 0}, neg); !errors.Is(err, solver.ErrBadMaxIterations) {
		t.Errorf("negative budget: got %v", err)
	}
}

func TestCGNotConverged(t *testing.T) {
	t.Parallel()

	m := tridiagonal(t, 3, 2, -1)
	opts := solver.DefaultOptions()
	opts.Family = solver.CG
	opts.MaxIterations = 1

	_, stats, err := solver.Solve(context.Background(), m, []float64{1, 0, 0}, opts)
	if !errors.Is(err, solver.ErrNotConverged) {
		t.Fatalf("got %v; want ErrNotConverged", err)
	}
	if stats.Iterations != 1 {
		t.Errorf("stats.Iterations = %d; want 1", stats.Iterations)
	}
	if stats.Residual <= 0 {
		t.Errorf("stats.Residual = %g; want > 0", stats.Residual)
	}
}

func TestNotPositiveDefinite(t *testing.T) {
	t.Parallel()

	// Indefinite: eigenvalues 3 and -1.
	b := MustBuilder(t, 2)
	MustAdd(t, b, 0, 0, 1)
	MustAdd(t, b, 0, 1, 2)
	MustAdd(t, b, 1, 0, 2)
	MustAdd(t, b, 1, 1, 1)
	m := MustCompress(t, b)

	opts := solver.DefaultOptions()
	opts.Family = solver.Cholesky
	if _, _, err := solver.Solve(context.Background(), m, []float64{1, 1}, opts); !errors.Is(err, solver.ErrNotPositiveDefinite) {
		t.Errorf("cholesky on indefinite: got %v", err)
	}

	// Negative diagonal trips the CG precondition check.
	b2 := MustBuilder(t, 2)
	MustAdd(t, b2, 0, 0, -1)
	MustAdd(t, b2, 1, 1, 2)
	m2 := MustCompress(t, b2)

	opts.Family = solver.CG
	if _, _, err := solver.Solve(context.Background(), m2, []float64{1, 1}, opts); !errors.Is(err, solver.ErrNotPositiveDefinite) {
		t.Errorf("cg on negative diagonal: got %v", err)
	}
}

func TestCGContextCancellation(t *testing.T) {
	t.Parallel()

	m := tridiagonal(t, 100, 4, -1)
	rhs := make([]float64, 100)
	rhs[0] = 1

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := solver.DefaultOptions()
	opts.Family = solver.CG
	if _, _, err := solver.Solve(ctx, m, rhs, opts); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled solve: got %v", err)
	}
}

func TestParseFamily(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		in   string
		want solver.Family
		ok   bool
	}{
		{"auto", solver.Auto, true},
		{"", solver.Auto, true},
		{"cg", solver.CG, true},
		{"CG", solver.CG, true},
		{" Cholesky ", solver.Cholesky, true},
		{"direct", solver.Cholesky, true},
		{"pyamg", solver.Auto, false},
	} {
		got, err := solver.ParseFamily(tc.in)
		if tc.ok && err != nil {
			t.Errorf("ParseFamily(%q): unexpected error %v", tc.in, err)
			continue
		}
		if !tc.ok {
			if !errors.Is(err, solver.ErrUnknownFamily) {
				t.Errorf("ParseFamily(%q): got %v; want ErrUnknownFamily", tc.in, err)
			}
			continue
		}
		if got != tc.want {
			t.Errorf("ParseFamily(%q) = %v; want %v", tc.in, got, tc.want)
		}
	}
}

// TestSolverInterface exercises the Func adapter and New wrapper.
func TestSolverInterface(t *testing.T) {
	t.Parallel()

	m := tridiagonal(t, 3, 2, -1)
	rhs := []float64{1, 0, 0}

	var sv solver.Solver = solver.New(solver.DefaultOptions())
	x, _, err := sv.Solve(context.Background(), m, rhs)
	if err != nil {
		t.Fatalf("Solve via interface: %v", err)
	}
	if math.Abs(x[0]-0.75) > 1e-8 {
		t.Errorf("x[0] = %g; want 0.75", x[0])
	}

	called := false
	stub := solver.Func(func(ctx context.Context, m *solver.CSR, rhs []float64) ([]float64, solver.Stats, error) {
		called = true
		return make([]float64, m.Dim()), solver.Stats{}, nil
	})
	if _, _, err = stub.Solve(context.Background(), m, rhs); err != nil {
		t.Fatalf("stub solve: %v", err)
	}
	if !called {
		t.Error("Func adapter did not invoke the wrapped function")
	}
}
