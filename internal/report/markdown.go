package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
)

// MarkdownWriter outputs reports as GitHub-flavored Markdown, for
// documentation and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the
// given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(r *Report) (int, error) {
	if r == nil {
		return 0, ErrNilReport
	}

	md := markdown.NewMarkdown(w.output)
	w.writeHeader(md, r)
	w.writeMetrics(md, r)
	w.writeSolver(md, r)
	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, r *Report) {
	md.H1("Tortuosity Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Image", "`" + r.Image + "`"},
			{"Axis", strconv.Itoa(r.Axis)},
			{"Shape", r.Shape},
			{"Date", r.CreatedAt.Format("2006-01-02 15:04:05")},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeMetrics(md *markdown.Markdown, r *Report) {
	md.H2("Transport Metrics")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Tortuosity", fmt.Sprintf("%.4f", r.Tortuosity)},
			{"Effective diffusivity", fmt.Sprintf("%.4f", r.EffectiveDiffusivity)},
			{"Formation factor", fmt.Sprintf("%.4f", r.FormationFactor)},
			{"Original porosity", fmt.Sprintf("%.4f", r.OriginalPorosity)},
			{"Effective porosity", fmt.Sprintf("%.4f", r.EffectivePorosity)},
			{"Inlet rate", fmt.Sprintf("%.6e", r.RateIn)},
			{"Outlet rate", fmt.Sprintf("%.6e", r.RateOut)},
		},
	})
	md.PlainText("")

	if r.EffectivePorosity < r.OriginalPorosity {
		md.Note(fmt.Sprintf("Isolated void regions were trimmed before the solve: porosity dropped from %.4f to %.4f.",
			r.OriginalPorosity, r.EffectivePorosity))
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeSolver(md *markdown.Markdown, r *Report) {
	md.H2("Solver")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Family", r.Solver},
			{"Iterations", strconv.Itoa(r.Iterations)},
			{"Residual", fmt.Sprintf("%.3e", r.Residual)},
			{"Duration", r.Duration().String()},
		},
	})
	md.PlainText("")
}
