package phone

import (
	"strings"

	"github.com/nao1215/telscan/internal/model"
	"golang.org/x/text/width"
)

// TelPrefix is the dialable-scheme prefix of phone links.
const TelPrefix = "tel:"

// Normalize converts phone-like text into a canonical digit string.
//
// The steps are:
//  1. strip a leading "tel:" prefix
//  2. fold full-width runes (digits, hyphen, parentheses, ideographic space)
//     to their ASCII forms
//  3. drop hyphens, parentheses and whitespace
//  4. drop every remaining rune that is not an ASCII digit
//
// The result may be empty. Normalize is idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = strings.TrimPrefix(text, TelPrefix)
	text = width.Narrow.String(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isSeparator(r) {
			continue
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isSeparator reports whether r is a hyphen, parenthesis or whitespace.
func isSeparator(r rune) bool {
	switch r {
	case '-', '(', ')', ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// NormalizeLink derives a NormalizedLink from raw.
func NormalizeLink(raw model.RawLink) model.NormalizedLink {
	return model.NormalizedLink{
		RawLink:             raw,
		NormalizedDisplayed: Normalize(raw.DisplayedText),
		NormalizedTarget:    Normalize(raw.DialableTarget),
	}
}

// NewReferenceSet creates a reference set that normalizes with Normalize.
func NewReferenceSet() *model.ReferenceSet {
	return model.NewReferenceSet(Normalize)
}
