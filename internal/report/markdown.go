package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/telscan/internal/model"
)

// MarkdownWriter outputs the table as GitHub Flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the table in Markdown format.
func (w *MarkdownWriter) Write(table *Table) (int, error) {
	table = orEmpty(table)
	md := markdown.NewMarkdown(w.output)

	md.H1("Phone Link Audit")
	md.PlainText("")

	w.writeSummary(md, table.Summary)
	w.writeLinks(md, table)

	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [telscan](https://github.com/nao1215/telscan)*")

	return len(md.String()), md.Build()
}

// writeSummary writes the verdict count table and an alert.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, s model.Summary) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Status", "Count"},
		Rows: [][]string{
			{"🟢 " + model.VerdictPass.String(), strconv.Itoa(s.Pass)},
			{"🟡 " + model.VerdictWarning.String(), strconv.Itoa(s.Warning)},
			{"🔴 " + model.VerdictCriticalMistake.String(), strconv.Itoa(s.CriticalMistake)},
			{"⚪ " + model.VerdictUnclassified.String(), strconv.Itoa(s.Unclassified)},
			{"**Total**", "**" + strconv.Itoa(s.Total) + "**"},
		},
	})
	md.PlainText("")

	switch {
	case s.CriticalMistake > 0:
		md.Cautionf("%d phone link(s) dial a number that is not in the reference list.", s.CriticalMistake)
	case s.Warning > 0:
		md.Warningf("%d phone link(s) show text that differs from the number they dial.", s.Warning)
	case s.Total == 0:
		md.Note("No phone links found.")
	case s.Unclassified == s.Total:
		md.Note("No reference numbers were given, so links were not classified.")
	default:
		md.Tip("All phone links match the reference numbers.")
	}
	md.PlainText("")
}

// writeLinks writes one table row per link.
func (w *MarkdownWriter) writeLinks(md *markdown.Markdown, table *Table) {
	md.H2("Links")
	md.PlainText("")

	if table.IsEmpty() {
		md.PlainText("No phone links found.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(table.Rows))
	for i, row := range table.Rows {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			cell(row.Cells[ColumnDisplayed]),
			cell(row.Cells[ColumnTarget]),
			cell(row.Cells[ColumnNormalizedDisplayed]),
			cell(row.Cells[ColumnNormalizedTarget]),
			styleMark(row.Style) + row.Cells[ColumnStatus],
			cell(row.Cells[ColumnMatchedReference]),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"#", "Text", "href", "Normalized Text", "Normalized href", "Status", "Matched"},
		Rows:   rows,
	})
	md.PlainText("")
}

// styleMark returns the emoji prefix for a row style.
func styleMark(s model.Style) string {
	switch s {
	case model.StyleAffirmative:
		return "🟢 "
	case model.StyleCaution:
		return "🟡 "
	case model.StyleAlert:
		return "🔴 "
	default:
		return "⚪ "
	}
}

// cell escapes table separators and replaces empty values with "-".
func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", "\\|")
}
