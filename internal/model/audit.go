package model

import "time"

// PageAudit holds everything collected while auditing one page.
type PageAudit struct {
	// URL is the page address as given by the user.
	URL string `json:"url"`

	// DateScanned is when the audit started.
	DateScanned time.Time `json:"date_scanned"`

	// Markup is the fetched page body. It is not serialized.
	Markup string `json:"-"`

	// RawLinks are the extracted tel: anchors in document order.
	RawLinks []RawLink `json:"-"`

	// Links are the classified links in document order.
	Links []ClassifiedLink `json:"links"`

	// FetchError is set when the page could not be retrieved.
	// The audit still completes with zero links.
	FetchError string `json:"fetch_error,omitempty"`

	// Error is the message of the last step that failed.
	Error string `json:"error,omitempty"`

	// TimedOut is true if the audit was cancelled before all steps ran.
	TimedOut bool `json:"timed_out"`

	// PerformedSteps lists the pipeline steps that ran.
	PerformedSteps []string `json:"performed_steps"`
}

// NewPageAudit creates an empty audit for url.
func NewPageAudit(url string) *PageAudit {
	return &PageAudit{
		URL:            url,
		DateScanned:    time.Now(),
		RawLinks:       make([]RawLink, 0),
		Links:          make([]ClassifiedLink, 0),
		PerformedSteps: make([]string, 0),
	}
}

// Summary counts links per verdict.
type Summary struct {
	Total           int `json:"total"`
	Pass            int `json:"pass"`
	Warning         int `json:"warning"`
	CriticalMistake int `json:"critical_mistake"`
	Unclassified    int `json:"unclassified"`
}

// Summarize counts the verdicts in links.
func Summarize(links []ClassifiedLink) Summary {
	s := Summary{Total: len(links)}
	for _, l := range links {
		switch l.Verdict {
		case VerdictPass:
			s.Pass++
		case VerdictWarning:
			s.Warning++
		case VerdictCriticalMistake:
			s.CriticalMistake++
		default:
			s.Unclassified++
		}
	}
	return s
}

// Summary counts the verdicts of this page.
func (a *PageAudit) Summary() Summary {
	return Summarize(a.Links)
}
