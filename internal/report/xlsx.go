package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/telscan/internal/model"
	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the sheet the audit table is written to.
const DefaultSheet = "Sheet1"

// Row fill colors (ARGB without the alpha byte, as excelize expects).
const (
	FillAffirmative = "00FF00"
	FillCaution     = "FFFF00"
	FillAlert       = "FF0000"
)

// ErrNothingToWrite is returned by XLSXWriter when the table is empty and
// SkipEmpty is set.
var ErrNothingToWrite = errors.New("no rows to write")

// XLSXWriter saves the table as a spreadsheet file.
type XLSXWriter struct {
	path      string
	sheet     string
	skipEmpty bool
}

// XLSXWriterOption configures an XLSXWriter.
type XLSXWriterOption func(*XLSXWriter)

// WithSheet sets the sheet name.
func WithSheet(name string) XLSXWriterOption {
	return func(w *XLSXWriter) {
		if name != "" {
			w.sheet = name
		}
	}
}

// WithSkipEmpty makes Write return ErrNothingToWrite instead of saving a
// header-only workbook.
func WithSkipEmpty(skip bool) XLSXWriterOption {
	return func(w *XLSXWriter) {
		w.skipEmpty = skip
	}
}

// NewXLSXWriter creates a writer that saves to path.
func NewXLSXWriter(path string, opts ...XLSXWriterOption) *XLSXWriter {
	w := &XLSXWriter{
		path:  path,
		sheet: DefaultSheet,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Path returns the destination file path.
func (w *XLSXWriter) Path() string {
	return w.path
}

// Write saves the table. Containing directories are created as needed and
// the file is replaced atomically under a lock on path+LockSuffix.
// The returned size is the size of the saved file.
func (w *XLSXWriter) Write(table *Table) (int, error) {
	table = orEmpty(table)
	if w.skipEmpty && table.IsEmpty() {
		return 0, ErrNothingToWrite
	}

	dir := filepath.Dir(w.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return 0, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if w.sheet != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, w.sheet); err != nil {
			return 0, fmt.Errorf("failed to rename sheet: %w", err)
		}
	}

	if err := w.fill(f, table); err != nil {
		return 0, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return 0, fmt.Errorf("failed to encode workbook: %w", err)
	}

	if err := lockAndWrite(w.path, buf.Bytes()); err != nil {
		return 0, fmt.Errorf("failed to save %s: %w", w.path, err)
	}
	return buf.Len(), nil
}

// fill writes headers, rows and row styles into the sheet.
func (w *XLSXWriter) fill(f *excelize.File, table *Table) error {
	header := make([]interface{}, len(table.Headers))
	for i, h := range table.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(w.sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	styles, err := newFillStyles(f)
	if err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(table.Headers))
	if err != nil {
		return err
	}

	for i, row := range table.Rows {
		rowNum := i + 2
		values := make([]interface{}, len(row.Cells))
		for j, c := range row.Cells {
			values[j] = c
		}

		start := fmt.Sprintf("A%d", rowNum)
		if err := f.SetSheetRow(w.sheet, start, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", rowNum, err)
		}

		styleID, ok := styles[row.Style]
		if !ok {
			continue
		}
		end := fmt.Sprintf("%s%d", lastCol, rowNum)
		if err := f.SetCellStyle(w.sheet, start, end, styleID); err != nil {
			return fmt.Errorf("failed to style row %d: %w", rowNum, err)
		}
	}

	return nil
}

// newFillStyles registers one solid fill style per colored row style.
// StyleDefault has no entry and keeps the default cell style.
func newFillStyles(f *excelize.File) (map[model.Style]int, error) {
	colors := map[model.Style]string{
		model.StyleAffirmative: FillAffirmative,
		model.StyleCaution:     FillCaution,
		model.StyleAlert:       FillAlert,
	}

	styles := make(map[model.Style]int, len(colors))
	for style, color := range colors {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create %s style: %w", style, err)
		}
		styles[style] = id
	}
	return styles, nil
}
