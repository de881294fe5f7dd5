package model

// RawLink is a tel: anchor exactly as it was found on the page.
// Links are produced in document order.
type RawLink struct {
	// DisplayedText is the trimmed visible text of the anchor.
	DisplayedText string `json:"displayed_text"`

	// DialableTarget is the full href value, including the tel: prefix.
	DialableTarget string `json:"dialable_target"`

	// MarkupSnippet is the serialized anchor element.
	MarkupSnippet string `json:"markup_snippet"`
}

// NormalizedLink is a RawLink with canonical digit strings for the
// displayed text and the dialable target.
type NormalizedLink struct {
	RawLink

	// NormalizedDisplayed is DisplayedText reduced to ASCII digits.
	NormalizedDisplayed string `json:"normalized_displayed"`

	// NormalizedTarget is DialableTarget reduced to ASCII digits.
	NormalizedTarget string `json:"normalized_target"`
}

// ClassifiedLink is the unit handed to the report builder.
//
// MatchedReference is meaningful only when HasMatch is true. An empty
// MatchedReference with HasMatch set is a legal match against an empty
// reference string.
type ClassifiedLink struct {
	NormalizedLink

	// Verdict is the classification result.
	Verdict Verdict `json:"-"`

	// VerdictText is Verdict.String(), kept for serialization.
	VerdictText string `json:"verdict"`

	// MatchedReference is the reference number the target matched.
	MatchedReference string `json:"matched_reference,omitempty"`

	// HasMatch is true iff Verdict is Pass or Warning.
	HasMatch bool `json:"has_match"`
}

// NewClassifiedLink builds a ClassifiedLink, keeping MatchedReference and
// HasMatch consistent with the verdict.
func NewClassifiedLink(link NormalizedLink, verdict Verdict, matched string) ClassifiedLink {
	c := ClassifiedLink{
		NormalizedLink: link,
		Verdict:        verdict,
		VerdictText:    verdict.String(),
	}
	if verdict.HasMatch() {
		c.MatchedReference = matched
		c.HasMatch = true
	}
	return c
}
