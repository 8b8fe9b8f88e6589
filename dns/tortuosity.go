package dns

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/Daniel-olaO/porespy/fickian"
	"github.com/Daniel-olaO/porespy/filters"
	"github.com/Daniel-olaO/porespy/network"
	"github.com/Daniel-olaO/porespy/solver"
	"github.com/Daniel-olaO/porespy/voxel"
)

// Tortuosity simulates steady-state diffusion through the void phase
// of im along axis and reduces the solution to transport metrics.
//
// It returns:
//   - Result: tortuosity, effective diffusivity, formation factor,
//     porosities, solve statistics, and optionally the concentration
//     field (see WithConcentration)
//   - err: ErrNilImage, ErrShortAxis, voxel.ErrAxisOutOfRange,
//     ErrNoPercolation, ErrRateMismatch, ErrOptionViolation, a wrapped
//     solver error, or context cancellation
//
// Steps:
//  1. Validate options, image, and axis (fail fast, before any work).
//  2. Record the original porosity, trim non-percolating void, and
//     warn through the configured logger if the porosity dropped.
//  3. Build the unit cubic network on the surviving void.
//  4. Pin concentration 1 on the first layer along axis and 0 on the
//     last, then solve the flux balance.
//  5. Verify inlet/outlet flow agreement within the rate tolerances.
//  6. Derive Deff, formation factor, and tortuosity from the inlet
//     flow; optionally scatter the concentration back onto the grid.
//
// Complexity: O(voxels) outside the solve; the solve cost depends on
// the kernel (see package solver).
func Tortuosity(im *voxel.Image, axis int, opts ...Option) (Result, error) {
	// 1) Options first: a recorded violation beats all other work.
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return Result{}, o.err
	}
	if im == nil {
		return Result{}, ErrNilImage
	}
	if err := im.CheckAxis(axis); err != nil {
		return Result{}, fmt.Errorf("dns: %w", err)
	}
	if im.Dim(axis) < 2 {
		return Result{}, ErrShortAxis
	}

	// 2) Porosity bookkeeping around the percolation trim.
	eps0 := im.Porosity()
	trimmed, err := filters.TrimNonpercolatingPaths(im, axis, axis)
	if err != nil {
		return Result{}, fmt.Errorf("dns: trim: %w", err)
	}
	eps := trimmed.Porosity()
	if eps == 0 {
		return Result{}, ErrNoPercolation
	}
	if eps < eps0 {
		o.Logger.Warn("trimmed non-percolating void regions",
			slog.Int("axis", axis),
			slog.Float64("original_porosity", eps0),
			slog.Float64("effective_porosity", eps))
	}

	// 3) Unit cubic network on the percolating void.
	net, err := network.FromTemplate(trimmed)
	if err != nil {
		return Result{}, fmt.Errorf("dns: network: %w", err)
	}

	// 4) Boundary conditions on the first and last void layers.
	inlets, err := net.PoresOnFace(axis, voxel.Min)
	if err != nil {
		return Result{}, fmt.Errorf("dns: %w", err)
	}
	outlets, err := net.PoresOnFace(axis, voxel.Max)
	if err != nil {
		return Result{}, fmt.Errorf("dns: %w", err)
	}

	sv := o.Solver
	if sv == nil {
		sv = solver.New(solver.Options{
			Family:        o.Family,
			Tolerance:     o.Tolerance,
			MaxIterations: o.MaxIterations,
		})
	}
	alg, err := fickian.New(net, fickian.Options{Solver: sv})
	if err != nil {
		return Result{}, fmt.Errorf("dns: %w", err)
	}
	if err = alg.SetValueBC(inlets, concentrationIn); err != nil {
		return Result{}, fmt.Errorf("dns: %w", err)
	}
	if err = alg.SetValueBC(outlets, concentrationOut); err != nil {
		return Result{}, fmt.Errorf("dns: %w", err)
	}
	if err = alg.Run(o.Ctx); err != nil {
		return Result{}, fmt.Errorf("dns: %w", err)
	}

	// 5) Conservation check: what enters must leave.
	rateIn, err := alg.Rate(inlets)
	if err != nil {
		return Result{}, fmt.Errorf("dns: %w", err)
	}
	rateOut, err := alg.Rate(outlets)
	if err != nil {
		return Result{}, fmt.Errorf("dns: %w", err)
	}
	if math.Abs(-rateOut-rateIn) > o.RateATol+o.RateRTol*math.Abs(rateIn) {
		return Result{}, fmt.Errorf("%w: inlet %.6e, outlet %.6e", ErrRateMismatch, rateIn, rateOut)
	}

	// 6) Flux to transport metrics.
	length := float64(im.Dim(axis))
	area := float64(im.Size()) / length
	deff := rateIn * length / (area * (concentrationIn - concentrationOut))

	res := Result{
		Tortuosity:           eps / deff,
		EffectiveDiffusivity: deff,
		FormationFactor:      1 / deff,
		OriginalPorosity:     eps0,
		EffectivePorosity:    eps,
		RateIn:               rateIn,
		RateOut:              rateOut,
		SolveStats:           alg.Stats(),
	}

	if o.ReturnConcentration {
		conc, cerr := alg.Concentration()
		if cerr != nil {
			return Result{}, fmt.Errorf("dns: %w", cerr)
		}
		field, ferr := voxel.NewField(im.Shape()...)
		if ferr != nil {
			return Result{}, fmt.Errorf("dns: %w", ferr)
		}
		raw := field.Raw()
		for p, idx := range net.TemplateIndices() {
			raw[idx] = conc[p]
		}
		res.Concentration = field
	}
	return res, nil
}
