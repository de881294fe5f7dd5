// Package report builds the audit table and writes it to various sinks.
//
// Build turns classified links into a Table: fixed headers, one row per link
// in discovery order, and a style hint per row derived from the verdict.
//
// Writers render a Table:
//   - XLSXWriter: Spreadsheet with green, yellow and red row fills
//   - SimpleWriter: Human-readable terminal output with colored verdicts
//   - MarkdownWriter: GitHub Flavored Markdown summary and link table
//   - JSONWriter: Structured JSON for tool integration
//
// Writers implement the Writer interface and can be combined with
// MultiWriter.
package report
