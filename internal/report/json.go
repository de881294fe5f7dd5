package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/telscan/internal/model"
)

// JSONWriter outputs the audited links and summary as JSON.
type JSONWriter struct {
	baseWriter

	// indentString is the indentation string; empty means compact output.
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// jsonReport is the serialized form of a Table.
type jsonReport struct {
	Summary model.Summary          `json:"summary"`
	Links   []model.ClassifiedLink `json:"links"`
}

// Write outputs the table as a JSON document.
func (w *JSONWriter) Write(table *Table) (int, error) {
	table = orEmpty(table)
	doc := jsonReport{Summary: table.Summary, Links: table.Links}
	if doc.Links == nil {
		doc.Links = []model.ClassifiedLink{}
	}

	var data []byte
	var err error
	if w.indentString != "" {
		data, err = json.MarshalIndent(doc, "", w.indentString)
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}
