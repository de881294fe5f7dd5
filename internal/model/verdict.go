package model

// Verdict is the outcome of comparing a phone link with the reference set.
type Verdict int

const (
	// VerdictUnclassified means no reference numbers were supplied, so no
	// comparison was possible.
	VerdictUnclassified Verdict = iota

	// VerdictCriticalMistake means the dialable target does not match any
	// reference number. Visitors who tap the link call a wrong number.
	VerdictCriticalMistake

	// VerdictWarning means the dialable target matches a reference number but
	// the displayed text does not. The call goes through, but the page shows
	// something else.
	VerdictWarning

	// VerdictPass means the dialable target and the displayed text both equal
	// the same reference number.
	VerdictPass
)

// String returns the label used in reports.
func (v Verdict) String() string {
	switch v {
	case VerdictUnclassified:
		return "N/A"
	case VerdictCriticalMistake:
		return "Critical Mistake"
	case VerdictWarning:
		return "Warning"
	case VerdictPass:
		return "Pass"
	default:
		return "UNKNOWN"
	}
}

// HasMatch reports whether a verdict carries a matched reference number.
func (v Verdict) HasMatch() bool {
	return v == VerdictPass || v == VerdictWarning
}

// Style is a presentation hint derived from a verdict.
// Sinks decide how to render it (cell fill, terminal color, emoji).
type Style int

const (
	// StyleDefault leaves the row unstyled.
	StyleDefault Style = iota
	// StyleAffirmative marks a row as correct (green).
	StyleAffirmative
	// StyleCaution marks a row that needs review (yellow).
	StyleCaution
	// StyleAlert marks a row that is wrong (red).
	StyleAlert
)

// Style returns the row style for the verdict.
func (v Verdict) Style() Style {
	switch v {
	case VerdictPass:
		return StyleAffirmative
	case VerdictWarning:
		return StyleCaution
	case VerdictCriticalMistake:
		return StyleAlert
	default:
		return StyleDefault
	}
}

// String returns the style name.
func (s Style) String() string {
	switch s {
	case StyleAffirmative:
		return "affirmative"
	case StyleCaution:
		return "caution"
	case StyleAlert:
		return "alert"
	default:
		return "default"
	}
}
