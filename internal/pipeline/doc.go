// Package pipeline runs the audit of a page as a sequence of steps:
// fetch the page, extract its tel: links, and classify them against the
// reference numbers.
//
// Each step receives the PageAudit built so far and adds to it. A
// BatchProcessor runs one pipeline per URL with bounded concurrency.
package pipeline
