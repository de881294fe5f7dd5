package report

import "github.com/nao1215/telscan/internal/model"

// Column headers of the audit table, in order.
var Headers = []string{
	"outerHTML",
	"textContent",
	"href Value",
	"Normalized textContent",
	"Normalized href Value",
	"Status",
	"Matched Master Number",
}

// Column indexes into Row.Cells.
const (
	ColumnMarkup = iota
	ColumnDisplayed
	ColumnTarget
	ColumnNormalizedDisplayed
	ColumnNormalizedTarget
	ColumnStatus
	ColumnMatchedReference
	columnCount
)

// Row is one audited link.
type Row struct {
	// Cells holds the column values in Headers order.
	Cells [columnCount]string `json:"cells"`

	// Style is the presentation hint for the whole row.
	Style model.Style `json:"-"`

	// Verdict is the classification the row was built from.
	Verdict model.Verdict `json:"-"`
}

// Table is the presentation-ready audit result.
type Table struct {
	// Headers are the column titles.
	Headers []string `json:"headers"`

	// Rows are in the order the links were discovered.
	Rows []Row `json:"rows"`

	// Links are the classified links the rows were built from.
	Links []model.ClassifiedLink `json:"links"`

	// Summary counts rows per verdict.
	Summary model.Summary `json:"summary"`
}

// Build creates a Table from links. Order is preserved; nothing is sorted
// or de-duplicated. An empty input produces a header-only table.
func Build(links []model.ClassifiedLink) *Table {
	t := &Table{
		Headers: append([]string(nil), Headers...),
		Rows:    make([]Row, 0, len(links)),
		Links:   append([]model.ClassifiedLink(nil), links...),
		Summary: model.Summarize(links),
	}

	for _, l := range links {
		var matched string
		if l.HasMatch {
			matched = l.MatchedReference
		}
		t.Rows = append(t.Rows, Row{
			Cells: [columnCount]string{
				l.MarkupSnippet,
				l.DisplayedText,
				l.DialableTarget,
				l.NormalizedDisplayed,
				l.NormalizedTarget,
				l.Verdict.String(),
				matched,
			},
			Style:   l.Verdict.Style(),
			Verdict: l.Verdict,
		})
	}

	return t
}

// BuildFromAudits concatenates the links of audits in order and builds one table.
func BuildFromAudits(audits []*model.PageAudit) *Table {
	links := make([]model.ClassifiedLink, 0)
	for _, a := range audits {
		if a == nil {
			continue
		}
		links = append(links, a.Links...)
	}
	return Build(links)
}

// IsEmpty reports whether the table has no rows.
func (t *Table) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0
}

// orEmpty returns t, or a header-only table when t is nil.
func orEmpty(t *Table) *Table {
	if t == nil {
		return Build(nil)
	}
	return t
}
