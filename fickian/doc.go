// Package fickian implements steady-state Fickian diffusion on cubic
// pore networks. It computes the concentration field that balances
// diffusive exchange through every throat, given fixed-value
// (Dirichlet) boundary conditions on chosen pores, and reports molar
// flow rates through arbitrary pore sets.
//
// # Model
//
// Each throat t connecting pores i and j carries the flux
//
//	q_t = g_t · (c_i − c_j)
//
// where g_t is the throat's diffusive conductance. At steady state the
// net flux out of every non-boundary pore is zero, which yields one
// linear balance equation per unknown concentration. Boundary pores
// have their concentration pinned instead; their equations reduce to
// identities and their neighbor couplings move to the right-hand side,
// keeping the assembled system symmetric positive-definite so both
// solver kernels apply.
//
// Every connected component of the network must contain at least one
// boundary pore; otherwise its block of the system is singular and the
// solve fails with a solver error.
//
// # Usage
//
//	alg, err := fickian.New(net, fickian.DefaultOptions())
//	// handle err
//	_ = alg.SetValueBC(inlets, 1.0)
//	_ = alg.SetValueBC(outlets, 0.0)
//	if err = alg.Run(ctx); err != nil { ... }
//	conc, _ := alg.Concentration()
//	rateIn, _ := alg.Rate(inlets)
//
// Rate follows the outward-flux convention: Rate(P) sums g·(c_in −
// c_out) over throats crossing the boundary of P, so the high-
// concentration face reports a positive rate and the low-concentration
// face the matching negative one.
//
// # Complexity
//
// Assembly is O(pores + throats); the solve cost depends on the
// configured solver family (see package solver).
package fickian
