// Package model defines the core data structures used throughout telscan.
//
// This package contains the following main types:
//   - RawLink: A tel: anchor as discovered on a page
//   - NormalizedLink: A RawLink with canonical digit strings for both fields
//   - ClassifiedLink: A NormalizedLink with its verdict and matched reference
//   - ReferenceSet: The ordered, de-duplicated list of correct numbers
//   - PageAudit: The result of auditing a single page
//
// Models live in their own package so that the phone, crawler, pipeline and
// report packages can share them without import cycles. Values are built once
// and never modified in place after construction.
package model
