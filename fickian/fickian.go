package fickian

import (
	"context"
	"fmt"
	"math"

	"github.com/Daniel-olaO/porespy/network"
	"github.com/Daniel-olaO/porespy/solver"
)

// Algorithm holds the boundary conditions and results of one
// steady-state diffusion simulation on a fixed cubic network.
// The zero value is not usable; construct with New.
type Algorithm struct {
	net     *network.Cubic
	opts    Options
	bcValue map[int]float64
	conc    []float64
	stats   solver.Stats
	ran     bool
}

// New binds a diffusion algorithm to net.
// Returns ErrNilNetwork when net is nil.
func New(net *network.Cubic, opts Options) (*Algorithm, error) {
	if net == nil {
		return nil, ErrNilNetwork
	}
	opts.normalize()
	return &Algorithm{
		net:     net,
		opts:    opts,
		bcValue: make(map[int]float64),
	}, nil
}

// SetValueBC pins the concentration of every pore in pores to value.
// The call is atomic: all pores are validated before any is applied,
// so a failed call leaves the algorithm unchanged.
//
// Returns:
//   - ErrBadValue for NaN or infinite value,
//   - ErrPoreIndex when any index lies outside the network,
//   - ErrConflictBC when any pore already holds a different value.
func (a *Algorithm) SetValueBC(pores []int, value float64) error {
	// 1) Validate the value itself.
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return ErrBadValue
	}

	// 2) Validate every index and check for conflicts before mutating.
	n := a.net.NumPores()
	for _, p := range pores {
		if p < 0 || p >= n {
			return fmt.Errorf("%w: %d (network has %d pores)", ErrPoreIndex, p, n)
		}
		if prev, ok := a.bcValue[p]; ok && prev != value {
			return fmt.Errorf("%w: pore %d holds %g, refusing %g", ErrConflictBC, p, prev, value)
		}
	}

	// 3) Apply. Results from a previous Run are stale now.
	for _, p := range pores {
		a.bcValue[p] = value
	}
	a.ran = false
	return nil
}

// Run assembles the flux-balance system and solves for the
// concentration field. Boundary pores keep their pinned values
// exactly; every other pore receives the balancing concentration.
//
// Returns ErrNoBoundaries when no boundary condition was set, or the
// solver's error (wrapped) when the system cannot be solved.
func (a *Algorithm) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// 1) Preconditions.
	if len(a.bcValue) == 0 {
		return ErrNoBoundaries
	}
	n := a.net.NumPores()

	// 2) Assemble. Boundary rows become identities; their couplings
	// move to the right-hand side. The reduced system stays symmetric
	// positive-definite, which both kernels require.
	b, err := solver.NewBuilder(n)
	if err != nil {
		return fmt.Errorf("fickian: assemble: %w", err)
	}
	rhs := make([]float64, n)
	for p, v := range a.bcValue {
		if err = b.Add(p, p, 1); err != nil {
			return fmt.Errorf("fickian: assemble: %w", err)
		}
		rhs[p] = v
	}

	throats := a.net.Throats()
	conds := a.net.Conductances()
	for t, pair := range throats {
		i, j := pair[0], pair[1]
		g := conds[t]
		_, iBC := a.bcValue[i]
		_, jBC := a.bcValue[j]
		switch {
		case !iBC && !jBC:
			err = addStencil(b, i, j, g)
		case iBC && !jBC:
			err = b.Add(j, j, g)
			rhs[j] += g * a.bcValue[i]
		case !iBC && jBC:
			err = b.Add(i, i, g)
			rhs[i] += g * a.bcValue[j]
		default:
			// Both ends pinned: the throat carries flux but adds no
			// unknown coupling.
		}
		if err != nil {
			return fmt.Errorf("fickian: assemble throat %d: %w", t, err)
		}
	}

	m, err := b.Compress()
	if err != nil {
		return fmt.Errorf("fickian: assemble: %w", err)
	}

	// 3) Solve.
	x, stats, err := a.opts.Solver.Solve(ctx, m, rhs)
	if err != nil {
		return fmt.Errorf("fickian: solve: %w", err)
	}
	if len(x) != n {
		return fmt.Errorf("fickian: solve: %w: solver returned %d values for %d pores",
			solver.ErrShapeMismatch, len(x), n)
	}

	// 4) Record results. Boundary pores carry their exact pinned
	// values regardless of the iterative tolerance.
	for p, v := range a.bcValue {
		x[p] = v
	}
	a.conc = x
	a.stats = stats
	a.ran = true
	return nil
}

// addStencil writes the four entries of one interior throat coupling.
func addStencil(b *solver.Builder, i, j int, g float64) error {
	if err := b.Add(i, i, g); err != nil {
		return err
	}
	if err := b.Add(j, j, g); err != nil {
		return err
	}
	if err := b.Add(i, j, -g); err != nil {
		return err
	}
	return b.Add(j, i, -g)
}

// Concentration returns a copy of the per-pore concentration field.
// Returns ErrNotRun before a successful Run.
func (a *Algorithm) Concentration() ([]float64, error) {
	if !a.ran {
		return nil, ErrNotRun
	}
	out := make([]float64, len(a.conc))
	copy(out, a.conc)
	return out, nil
}

// Rate reports the net outward molar flow from the pore set:
// the sum of g·(c_in − c_out) over throats with exactly one end in
// pores. Duplicate indices are collapsed.
//
// Returns ErrNotRun before a successful Run and ErrPoreIndex for
// indices outside the network.
func (a *Algorithm) Rate(pores []int) (float64, error) {
	if !a.ran {
		return 0, ErrNotRun
	}
	n := a.net.NumPores()
	inSet := make([]bool, n)
	for _, p := range pores {
		if p < 0 || p >= n {
			return 0, fmt.Errorf("%w: %d (network has %d pores)", ErrPoreIndex, p, n)
		}
		inSet[p] = true
	}

	throats := a.net.Throats()
	conds := a.net.Conductances()
	var q float64
	for t, pair := range throats {
		i, j := pair[0], pair[1]
		switch {
		case inSet[i] && !inSet[j]:
			q += conds[t] * (a.conc[i] - a.conc[j])
		case inSet[j] && !inSet[i]:
			q += conds[t] * (a.conc[j] - a.conc[i])
		}
	}
	return q, nil
}

// Stats reports what the last successful Run's solve did.
// The zero value is returned before any Run.
func (a *Algorithm) Stats() solver.Stats { return a.stats }
