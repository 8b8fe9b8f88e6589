package report

import (
	"fmt"
	"io"
	"strings"
)

// SimpleWriter outputs aligned human-readable text for the terminal.
// Plain ASCII only, so output pipes cleanly into files and pagers.
type SimpleWriter struct {
	baseWriter
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given
// writer.
func NewSimpleWriter(output io.Writer) *SimpleWriter {
	return &SimpleWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(r *Report) (int, error) {
	if r == nil {
		return 0, ErrNilReport
	}

	var sb strings.Builder
	w.writeHeader(&sb, r)
	w.writeMetrics(&sb, r)
	w.writeSolver(&sb, r)
	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, r *Report) {
	bar := strings.Repeat("=", 70)
	sb.WriteString("\n")
	sb.WriteString(bar)
	sb.WriteString("\n")
	sb.WriteString("                       PORESPY TORTUOSITY REPORT\n")
	sb.WriteString(bar)
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Image:  %s\n", r.Image)
	fmt.Fprintf(sb, "Axis:   %d\n", r.Axis)
	fmt.Fprintf(sb, "Shape:  %s\n", r.Shape)
	if !r.CreatedAt.IsZero() {
		fmt.Fprintf(sb, "Date:   %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeMetrics(sb *strings.Builder, r *Report) {
	w.writeSection(sb, "TRANSPORT METRICS")

	fmt.Fprintf(sb, "Tortuosity:             %.4f\n", r.Tortuosity)
	fmt.Fprintf(sb, "Effective diffusivity:  %.4f\n", r.EffectiveDiffusivity)
	fmt.Fprintf(sb, "Formation factor:       %.4f\n", r.FormationFactor)
	fmt.Fprintf(sb, "Original porosity:      %.4f\n", r.OriginalPorosity)
	fmt.Fprintf(sb, "Effective porosity:     %.4f\n", r.EffectivePorosity)
	fmt.Fprintf(sb, "Inlet rate:             %.6e\n", r.RateIn)
	fmt.Fprintf(sb, "Outlet rate:            %.6e\n", r.RateOut)

	if r.EffectivePorosity < r.OriginalPorosity {
		sb.WriteString("\nNote: isolated void regions were trimmed before the solve.\n")
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeSolver(sb *strings.Builder, r *Report) {
	w.writeSection(sb, "SOLVER")

	fmt.Fprintf(sb, "Family:      %s\n", r.Solver)
	fmt.Fprintf(sb, "Iterations:  %d\n", r.Iterations)
	fmt.Fprintf(sb, "Residual:    %.3e\n", r.Residual)
	fmt.Fprintf(sb, "Duration:    %s\n", r.Duration())
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeSection(sb *strings.Builder, title string) {
	bar := strings.Repeat("-", 70)
	sb.WriteString(bar)
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(bar)
	sb.WriteString("\n\n")
}
