package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/telscan/internal/model"
	"github.com/xuri/excelize/v2"
)

// sampleLinks returns one link per verdict, in a fixed order.
func sampleLinks() []model.ClassifiedLink {
	mk := func(text, href, nText, nHref string, v model.Verdict, matched string) model.ClassifiedLink {
		return model.NewClassifiedLink(model.NormalizedLink{
			RawLink: model.RawLink{
				DisplayedText:  text,
				DialableTarget: href,
				MarkupSnippet:  `<a href="` + href + `">` + text + `</a>`,
			},
			NormalizedDisplayed: nText,
			NormalizedTarget:    nHref,
		}, v, matched)
	}

	return []model.ClassifiedLink{
		mk("01-2345-6789", "tel:0123456789", "0123456789", "0123456789", model.VerdictPass, "0123456789"),
		mk("Call us", "tel:0123456789", "", "0123456789", model.VerdictWarning, "0123456789"),
		mk("080-8516-3944", "tel:090−9800−5776", "08085163944", "09098005776", model.VerdictCriticalMistake, ""),
		mk("0120", "tel:0120", "0120", "0120", model.VerdictUnclassified, ""),
	}
}

// TestBuild tests table construction.
func TestBuild(t *testing.T) {
	t.Parallel()

	t.Run("one row per link in order", func(t *testing.T) {
		t.Parallel()

		links := sampleLinks()
		table := Build(links)

		if len(table.Rows) != len(links) {
			t.Fatalf("expected %d rows, got %d", len(links), len(table.Rows))
		}
		for i, row := range table.Rows {
			if row.Cells[ColumnTarget] != links[i].DialableTarget {
				t.Errorf("row %d: got target %q, expected %q", i, row.Cells[ColumnTarget], links[i].DialableTarget)
			}
		}
	})

	t.Run("styles follow verdicts", func(t *testing.T) {
		t.Parallel()

		table := Build(sampleLinks())
		expected := []model.Style{model.StyleAffirmative, model.StyleCaution, model.StyleAlert, model.StyleDefault}
		for i, style := range expected {
			if table.Rows[i].Style != style {
				t.Errorf("row %d: got style %v, expected %v", i, table.Rows[i].Style, style)
			}
		}
	})

	t.Run("status and matched columns", func(t *testing.T) {
		t.Parallel()

		table := Build(sampleLinks())
		if table.Rows[0].Cells[ColumnStatus] != "Pass" || table.Rows[0].Cells[ColumnMatchedReference] != "0123456789" {
			t.Errorf("unexpected pass row: %v", table.Rows[0].Cells)
		}
		if table.Rows[2].Cells[ColumnStatus] != "Critical Mistake" || table.Rows[2].Cells[ColumnMatchedReference] != "" {
			t.Errorf("unexpected critical row: %v", table.Rows[2].Cells)
		}
		if table.Rows[3].Cells[ColumnStatus] != "N/A" {
			t.Errorf("unexpected N/A row: %v", table.Rows[3].Cells)
		}
	})

	t.Run("duplicates are kept", func(t *testing.T) {
		t.Parallel()

		links := sampleLinks()
		table := Build(append(links, links[0]))
		if len(table.Rows) != len(links)+1 {
			t.Errorf("expected %d rows, got %d", len(links)+1, len(table.Rows))
		}
	})

	t.Run("empty input has headers only", func(t *testing.T) {
		t.Parallel()

		table := Build(nil)
		if !table.IsEmpty() {
			t.Error("expected empty table")
		}
		if len(table.Headers) != 7 {
			t.Errorf("expected 7 headers, got %d", len(table.Headers))
		}
	})

	t.Run("BuildFromAudits concatenates in order", func(t *testing.T) {
		t.Parallel()

		links := sampleLinks()
		a := model.NewPageAudit("https://a.example")
		a.Links = links[:2]
		b := model.NewPageAudit("https://b.example")
		b.Links = links[2:]

		table := BuildFromAudits([]*model.PageAudit{a, nil, b})
		if len(table.Rows) != len(links) {
			t.Fatalf("expected %d rows, got %d", len(links), len(table.Rows))
		}
		if table.Rows[2].Verdict != model.VerdictCriticalMistake {
			t.Errorf("expected third row from second audit, got %v", table.Rows[2].Verdict)
		}
	})
}

// TestXLSXWriter tests spreadsheet output.
func TestXLSXWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes headers rows and fills", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "output", "phone_link_analysis.xlsx")
		n, err := NewXLSXWriter(path).Write(Build(sampleLinks()))
		if err != nil {
			t.Fatalf("failed to write: %v", err)
		}
		if n <= 0 {
			t.Errorf("expected positive size, got %d", n)
		}

		f, err := excelize.OpenFile(path)
		if err != nil {
			t.Fatalf("failed to open workbook: %v", err)
		}
		defer f.Close()

		rows, err := f.GetRows(DefaultSheet)
		if err != nil {
			t.Fatalf("failed to read rows: %v", err)
		}
		if len(rows) != 5 {
			t.Fatalf("expected 5 rows including header, got %d", len(rows))
		}
		if rows[0][0] != "outerHTML" || rows[0][6] != "Matched Master Number" {
			t.Errorf("unexpected header row: %v", rows[0])
		}
		if rows[1][5] != "Pass" || rows[3][5] != "Critical Mistake" {
			t.Errorf("unexpected status cells: %q, %q", rows[1][5], rows[3][5])
		}

		passStyle, err := f.GetCellStyle(DefaultSheet, "A2")
		if err != nil {
			t.Fatalf("failed to read style: %v", err)
		}
		passStyleEnd, err := f.GetCellStyle(DefaultSheet, "G2")
		if err != nil {
			t.Fatalf("failed to read style: %v", err)
		}
		warnStyle, err := f.GetCellStyle(DefaultSheet, "A3")
		if err != nil {
			t.Fatalf("failed to read style: %v", err)
		}
		alertStyle, err := f.GetCellStyle(DefaultSheet, "A4")
		if err != nil {
			t.Fatalf("failed to read style: %v", err)
		}
		naStyle, err := f.GetCellStyle(DefaultSheet, "A5")
		if err != nil {
			t.Fatalf("failed to read style: %v", err)
		}

		if passStyle == 0 || warnStyle == 0 || alertStyle == 0 {
			t.Errorf("expected styled rows, got %d/%d/%d", passStyle, warnStyle, alertStyle)
		}
		if passStyle != passStyleEnd {
			t.Errorf("expected whole row styled, got %d and %d", passStyle, passStyleEnd)
		}
		if passStyle == warnStyle || warnStyle == alertStyle || passStyle == alertStyle {
			t.Errorf("expected distinct styles, got %d/%d/%d", passStyle, warnStyle, alertStyle)
		}
		if naStyle != 0 {
			t.Errorf("expected default style for N/A row, got %d", naStyle)
		}
	})

	t.Run("empty table writes header only", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "empty.xlsx")
		if _, err := NewXLSXWriter(path).Write(Build(nil)); err != nil {
			t.Fatalf("failed to write: %v", err)
		}

		f, err := excelize.OpenFile(path)
		if err != nil {
			t.Fatalf("failed to open workbook: %v", err)
		}
		defer f.Close()

		rows, err := f.GetRows(DefaultSheet)
		if err != nil {
			t.Fatalf("failed to read rows: %v", err)
		}
		if len(rows) != 1 {
			t.Errorf("expected header row only, got %d rows", len(rows))
		}
	})

	t.Run("skip empty returns ErrNothingToWrite", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "skipped.xlsx")
		_, err := NewXLSXWriter(path, WithSkipEmpty(true)).Write(Build(nil))
		if !errors.Is(err, ErrNothingToWrite) {
			t.Errorf("expected ErrNothingToWrite, got %v", err)
		}
		if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
			t.Error("expected no file to be created")
		}
	})

	t.Run("custom sheet name", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "named.xlsx")
		if _, err := NewXLSXWriter(path, WithSheet("Audit")).Write(Build(sampleLinks())); err != nil {
			t.Fatalf("failed to write: %v", err)
		}

		f, err := excelize.OpenFile(path)
		if err != nil {
			t.Fatalf("failed to open workbook: %v", err)
		}
		defer f.Close()

		rows, err := f.GetRows("Audit")
		if err != nil {
			t.Fatalf("failed to read rows: %v", err)
		}
		if len(rows) != 5 {
			t.Errorf("expected 5 rows, got %d", len(rows))
		}
	})

	t.Run("unwritable location returns error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		blocker := filepath.Join(dir, "file")
		if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
			t.Fatalf("failed to create blocker: %v", err)
		}

		_, err := NewXLSXWriter(filepath.Join(blocker, "out.xlsx")).Write(Build(sampleLinks()))
		if err == nil {
			t.Error("expected error when the directory is a file")
		}
	})
}

// TestSimpleWriter tests the terminal listing.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("lists each link", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithColor(false)).Write(Build(sampleLinks())); err != nil {
			t.Fatalf("failed to write: %v", err)
		}

		out := buf.String()
		for _, want := range []string{
			"Found 4 phone link(s).",
			"  HREF Value: tel:0123456789",
			"  Status: Pass",
			"  Status: Critical Mistake",
			"  Matched Master #: 0123456789",
			"  Total: 4",
			"  N/A: 1",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q\n%s", want, out)
			}
		}
		if strings.Contains(out, "\x1b[") {
			t.Error("expected no ANSI escapes when color is disabled")
		}
		if strings.Count(out, "Matched Master #") != 2 {
			t.Errorf("expected matched line only for Pass and Warning, got %d", strings.Count(out, "Matched Master #"))
		}
	})

	t.Run("colors verdicts when enabled", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithColor(true)).Write(Build(sampleLinks())); err != nil {
			t.Fatalf("failed to write: %v", err)
		}
		if !strings.Contains(buf.String(), "\x1b[") {
			t.Error("expected ANSI escapes when color is enabled")
		}
	})

	t.Run("empty table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(Build(nil)); err != nil {
			t.Fatalf("failed to write: %v", err)
		}
		if !strings.Contains(buf.String(), "No phone links found.") {
			t.Errorf("unexpected output: %q", buf.String())
		}
	})
}

// TestMarkdownWriter tests Markdown output.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes summary and links", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(Build(sampleLinks())); err != nil {
			t.Fatalf("failed to write: %v", err)
		}

		out := buf.String()
		for _, want := range []string{"# Phone Link Audit", "## Summary", "## Links", "[!CAUTION]", "tel:0123456789"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q\n%s", want, out)
			}
		}
	})

	t.Run("empty table notes no links", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(nil); err != nil {
			t.Fatalf("failed to write: %v", err)
		}
		if !strings.Contains(buf.String(), "No phone links found.") {
			t.Errorf("unexpected output: %q", buf.String())
		}
	})
}

// TestJSONWriter tests JSON output.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("round trips summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(Build(sampleLinks())); err != nil {
			t.Fatalf("failed to write: %v", err)
		}

		var decoded struct {
			Summary model.Summary `json:"summary"`
			Links   []struct {
				Verdict          string `json:"verdict"`
				NormalizedTarget string `json:"normalized_target"`
			} `json:"links"`
		}
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.Summary.Total != 4 || decoded.Summary.CriticalMistake != 1 {
			t.Errorf("unexpected summary: %+v", decoded.Summary)
		}
		if len(decoded.Links) != 4 || decoded.Links[2].Verdict != "Critical Mistake" {
			t.Errorf("unexpected links: %+v", decoded.Links)
		}
		if decoded.Links[2].NormalizedTarget != "09098005776" {
			t.Errorf("unexpected normalized target %q", decoded.Links[2].NormalizedTarget)
		}
	})

	t.Run("empty table has empty links array", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(Build(nil)); err != nil {
			t.Fatalf("failed to write: %v", err)
		}
		if !strings.Contains(buf.String(), `"links":[]`) {
			t.Errorf("expected empty links array, got %s", buf.String())
		}
	})
}

// failingWriter always returns an error.
type failingWriter struct{}

func (failingWriter) Write(*Table) (int, error) {
	return 0, errors.New("boom")
}

// TestMultiWriter tests fan-out and error propagation.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var a, b bytes.Buffer
		mw := NewMultiWriter(NewJSONWriter(&a), NewSimpleWriter(&b, WithColor(false)))
		n, err := mw.Write(Build(sampleLinks()))
		if err != nil {
			t.Fatalf("failed to write: %v", err)
		}
		if n != a.Len()+b.Len() {
			t.Errorf("expected %d bytes, got %d", a.Len()+b.Len(), n)
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		mw := NewMultiWriter(failingWriter{}, NewJSONWriter(&buf))
		if _, err := mw.Write(Build(nil)); err == nil {
			t.Error("expected error")
		}
		if buf.Len() != 0 {
			t.Error("expected later writers to be skipped")
		}
	})
}
