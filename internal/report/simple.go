package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/nao1215/telscan/internal/model"
)

// SimpleWriter outputs a human-readable listing for terminal display.
// Verdict labels are colored when the output is a terminal.
type SimpleWriter struct {
	baseWriter

	// colorize enables ANSI colors for verdict labels.
	colorize bool

	// palette maps row styles to colors.
	palette map[model.Style]*color.Color
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithColor forces colored output on or off.
func WithColor(enabled bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.colorize = enabled
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		colorize:   isTerminal(output),
		palette: map[model.Style]*color.Color{
			model.StyleAffirmative: color.New(color.FgGreen, color.Bold),
			model.StyleCaution:     color.New(color.FgYellow, color.Bold),
			model.StyleAlert:       color.New(color.FgRed, color.Bold),
		},
	}

	for _, opt := range opts {
		opt(w)
	}

	for _, c := range w.palette {
		if w.colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return w
}

// isTerminal reports whether output is an interactive terminal.
func isTerminal(output io.Writer) bool {
	if color.NoColor {
		return false
	}
	f, ok := output.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Write outputs the table in human-readable format.
func (w *SimpleWriter) Write(table *Table) (int, error) {
	table = orEmpty(table)
	var sb strings.Builder

	if table.IsEmpty() {
		sb.WriteString("No phone links found.\n")
		return io.WriteString(w.output, sb.String())
	}

	fmt.Fprintf(&sb, "Found %d phone link(s).\n\n", len(table.Rows))

	for _, row := range table.Rows {
		w.writeRow(&sb, row)
	}

	w.writeSummary(&sb, table.Summary)

	return io.WriteString(w.output, sb.String())
}

// writeRow writes one link block.
func (w *SimpleWriter) writeRow(sb *strings.Builder, row Row) {
	fmt.Fprintf(sb, "  Outer HTML: %s\n", row.Cells[ColumnMarkup])
	fmt.Fprintf(sb, "  Text Content: %s\n", row.Cells[ColumnDisplayed])
	fmt.Fprintf(sb, "  HREF Value: %s\n", row.Cells[ColumnTarget])
	fmt.Fprintf(sb, "  Normalized Text: %s\n", row.Cells[ColumnNormalizedDisplayed])
	fmt.Fprintf(sb, "  Normalized HREF: %s\n", row.Cells[ColumnNormalizedTarget])
	fmt.Fprintf(sb, "  Status: %s\n", w.label(row.Style, row.Cells[ColumnStatus]))
	if row.Verdict.HasMatch() {
		fmt.Fprintf(sb, "  Matched Master #: %s\n", row.Cells[ColumnMatchedReference])
	}
	sb.WriteString(strings.Repeat("-", 20))
	sb.WriteString("\n")
}

// writeSummary writes the per-verdict counts.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, s model.Summary) {
	sb.WriteString("\nSummary\n")
	fmt.Fprintf(sb, "  %s: %d\n", w.label(model.StyleAffirmative, model.VerdictPass.String()), s.Pass)
	fmt.Fprintf(sb, "  %s: %d\n", w.label(model.StyleCaution, model.VerdictWarning.String()), s.Warning)
	fmt.Fprintf(sb, "  %s: %d\n", w.label(model.StyleAlert, model.VerdictCriticalMistake.String()), s.CriticalMistake)
	if s.Unclassified > 0 {
		fmt.Fprintf(sb, "  %s: %d\n", model.VerdictUnclassified.String(), s.Unclassified)
	}
	fmt.Fprintf(sb, "  Total: %d\n", s.Total)
}

// label colors text according to style.
func (w *SimpleWriter) label(style model.Style, text string) string {
	c, ok := w.palette[style]
	if !ok {
		return text
	}
	return c.Sprint(text)
}
