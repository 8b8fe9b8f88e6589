package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Daniel-olaO/porespy/dns"
	"github.com/Daniel-olaO/porespy/internal/rundb"
)

// ErrNilReport is returned when a writer receives a nil report.
var ErrNilReport = errors.New("report: report is nil")

// Report is the run record the writers render: the sample identity
// plus the metrics the simulation produced. Field names are the
// stable JSON contract.
type Report struct {
	Image                string    `json:"image"`
	Axis                 int       `json:"axis"`
	Shape                string    `json:"shape"`
	Tortuosity           float64   `json:"tortuosity"`
	EffectiveDiffusivity float64   `json:"effective_diffusivity"`
	FormationFactor      float64   `json:"formation_factor"`
	OriginalPorosity     float64   `json:"original_porosity"`
	EffectivePorosity    float64   `json:"effective_porosity"`
	RateIn               float64   `json:"rate_in"`
	RateOut              float64   `json:"rate_out"`
	Solver               string    `json:"solver"`
	Iterations           int       `json:"iterations"`
	Residual             float64   `json:"residual"`
	DurationMS           int64     `json:"duration_ms"`
	CreatedAt            time.Time `json:"created_at"`
}

// New assembles a Report from the pipeline output. CreatedAt is set
// to the current time; overwrite it for reproducible output.
func New(image string, axis int, shape []int, res dns.Result, duration time.Duration) *Report {
	return &Report{
		Image:                image,
		Axis:                 axis,
		Shape:                FormatShape(shape),
		Tortuosity:           res.Tortuosity,
		EffectiveDiffusivity: res.EffectiveDiffusivity,
		FormationFactor:      res.FormationFactor,
		OriginalPorosity:     res.OriginalPorosity,
		EffectivePorosity:    res.EffectivePorosity,
		RateIn:               res.RateIn,
		RateOut:              res.RateOut,
		Solver:               res.SolveStats.Family.String(),
		Iterations:           res.SolveStats.Iterations,
		Residual:             res.SolveStats.Residual,
		DurationMS:           duration.Milliseconds(),
		CreatedAt:            time.Now(),
	}
}

// FromRun rebuilds a Report from a stored run record so history
// entries render through the same writers as fresh runs. The store
// keeps the formation factor only; the diffusivity is its inverse.
func FromRun(run *rundb.Run) *Report {
	if run == nil {
		return nil
	}
	deff := 0.0
	if run.FormationFactor > 0 {
		deff = 1 / run.FormationFactor
	}
	return &Report{
		Image:                run.Image,
		Axis:                 run.Axis,
		Shape:                run.Shape,
		Tortuosity:           run.Tortuosity,
		EffectiveDiffusivity: deff,
		FormationFactor:      run.FormationFactor,
		OriginalPorosity:     run.OriginalPorosity,
		EffectivePorosity:    run.EffectivePorosity,
		RateIn:               run.RateIn,
		RateOut:              run.RateOut,
		Solver:               run.Solver,
		Iterations:           run.Iterations,
		Residual:             run.Residual,
		DurationMS:           run.Duration.Milliseconds(),
		CreatedAt:            run.CreatedAt,
	}
}

// ToRun converts the report to a storable run record. The database
// assigns ID and CreatedAt on insert.
func (r *Report) ToRun() *rundb.Run {
	return &rundb.Run{
		Image:             r.Image,
		Axis:              r.Axis,
		Shape:             r.Shape,
		OriginalPorosity:  r.OriginalPorosity,
		EffectivePorosity: r.EffectivePorosity,
		Tortuosity:        r.Tortuosity,
		FormationFactor:   r.FormationFactor,
		RateIn:            r.RateIn,
		RateOut:           r.RateOut,
		Solver:            r.Solver,
		Iterations:        r.Iterations,
		Residual:          r.Residual,
		Duration:          r.Duration(),
	}
}

// Duration returns the stored wall time as a time.Duration.
func (r *Report) Duration() time.Duration {
	return time.Duration(r.DurationMS) * time.Millisecond
}

// FormatShape renders extents as "100x100x50".
func FormatShape(shape []int) string {
	parts := make([]string, len(shape))
	for i, d := range shape {
		parts[i] = fmt.Sprintf("%d", d)
	}
	return strings.Join(parts, "x")
}
