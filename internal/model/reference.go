package model

import (
	"errors"
	"slices"
)

// Reference input errors. Both are recoverable: the entry is skipped and
// collection continues.
var (
	// ErrEmptyReference is returned when an entry has no digits at all.
	ErrEmptyReference = errors.New("reference number has no digits")

	// ErrDuplicateReference is returned when an entry normalizes to a number
	// already in the set.
	ErrDuplicateReference = errors.New("duplicate reference number")
)

// NormalizeFunc reduces raw phone text to a canonical digit string.
// It is injected so that model does not depend on the phone package.
type NormalizeFunc func(string) string

// ReferenceSet is the ordered list of correct phone numbers for a session.
// Insertion order is preserved because classification is first-match-wins.
//
// The zero value is an empty set that stores entries as given, without
// normalization. Use NewReferenceSet (or phone.NewReferenceSet) to get a
// set that canonicalizes raw input in Add.
type ReferenceSet struct {
	// normalize canonicalizes raw input in Add. Nil means identity.
	normalize NormalizeFunc

	// values holds canonical entries in insertion order.
	values []string

	// seen indexes values for duplicate detection and Contains.
	seen map[string]struct{}
}

// NewReferenceSet creates an empty set that normalizes entries with fn.
func NewReferenceSet(fn NormalizeFunc) *ReferenceSet {
	return &ReferenceSet{
		normalize: fn,
		values:    make([]string, 0),
		seen:      make(map[string]struct{}),
	}
}

// Add normalizes raw and appends it. It returns the canonical value even
// when the entry is rejected, so callers can report what was skipped.
func (r *ReferenceSet) Add(raw string) (string, error) {
	canonical := raw
	if r.normalize != nil {
		canonical = r.normalize(raw)
	}
	if canonical == "" {
		return canonical, ErrEmptyReference
	}
	return canonical, r.AddCanonical(canonical)
}

// AddCanonical appends an already-canonical value without the empty check.
// An empty string is accepted here; it can then match links whose target
// has no digits.
func (r *ReferenceSet) AddCanonical(canonical string) error {
	if r.seen == nil {
		r.seen = make(map[string]struct{})
	}
	if _, ok := r.seen[canonical]; ok {
		return ErrDuplicateReference
	}
	r.seen[canonical] = struct{}{}
	r.values = append(r.values, canonical)
	return nil
}

// Values returns a copy of the references in insertion order.
func (r *ReferenceSet) Values() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.values)
}

// Len returns the number of references.
func (r *ReferenceSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.values)
}

// Contains reports whether canonical is in the set.
func (r *ReferenceSet) Contains(canonical string) bool {
	if r == nil {
		return false
	}
	_, ok := r.seen[canonical]
	return ok
}
