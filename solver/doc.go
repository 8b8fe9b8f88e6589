// Package solver provides direct and iterative solvers for the sparse
// symmetric positive-definite linear systems produced by transport
// simulations on pore networks.
//
// The package provides:
//
//   - Builder, a coordinate-format accumulator for assembling sparse
//     matrices entry by entry, and CSR, the compressed-sparse-row form
//     the kernels consume.
//   - A preconditioned conjugate-gradient kernel (Jacobi/diagonal
//     preconditioner) for large systems, with O(nnz) work per
//     iteration and O(n) extra memory.
//   - A dense Cholesky factorization (via gonum) for small systems,
//     O(n³) time and O(n²) memory, exact up to rounding.
//   - Family selection: callers pick CG or Cholesky explicitly, or use
//     Auto to let the system size decide.
//
// Solve is the entry point; New wraps a fixed Options into the Solver
// interface so downstream code can swap implementations in tests.
//
// All routines fail fast: dimension mismatches, non-finite values, and
// indefinite matrices surface as sentinel errors matched with errors.Is.
package solver
