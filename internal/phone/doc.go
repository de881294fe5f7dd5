// Package phone implements phone-number normalization and link classification.
//
// Normalize reduces decorated phone text (full-width digits, separators,
// labels such as "TEL：") to a canonical ASCII digit string. Classify compares
// a normalized link against the reference numbers and assigns a verdict.
//
// The dialable target drives matching because it is what actually gets
// called. The displayed text only decides between Pass and Warning once the
// target has matched a reference.
//
// Both functions are pure and safe for concurrent use.
package phone
