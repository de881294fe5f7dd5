package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"net"

	"github.com/nao1215/telscan/internal/crawler"
	"github.com/nao1215/telscan/internal/model"
	"github.com/nao1215/telscan/internal/phone"
)

// Step names recorded in PageAudit.PerformedSteps.
const (
	StepFetch    = "fetch"
	StepExtract  = "extract"
	StepClassify = "classify"
)

// PageFetcher retrieves a page. *crawler.Fetcher satisfies it.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*crawler.Page, error)
}

// LinkExtractor finds tel: links in markup. *crawler.Extractor satisfies it.
type LinkExtractor interface {
	Extract(markup string) ([]model.RawLink, error)
}

// FetchStep downloads the page body into the audit.
type FetchStep struct {
	fetcher PageFetcher
	logger  *slog.Logger
}

// FetchStepOption configures a FetchStep.
type FetchStepOption func(*FetchStep)

// WithFetchLogger sets a custom logger for the fetch step.
func WithFetchLogger(logger *slog.Logger) FetchStepOption {
	return func(s *FetchStep) {
		s.logger = logger
	}
}

// NewFetchStep creates a fetch step using fetcher.
func NewFetchStep(fetcher PageFetcher, opts ...FetchStepOption) *FetchStep {
	s := &FetchStep{
		fetcher: fetcher,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return StepFetch
}

// Do fetches audit.URL. Any failure to retrieve the page is recorded in
// FetchError and leaves the markup empty; it is not returned.
//
// A page that was fetched but has an empty body is not a failure: the
// audit simply ends up with no links. TimedOut is set when the failure
// came from a deadline, either the request timeout or ctx.
func (s *FetchStep) Do(ctx context.Context, audit *model.PageAudit) error {
	page, err := s.fetcher.Fetch(ctx, audit.URL)
	if err != nil {
		s.logger.Warn("failed to fetch page", "url", audit.URL, "error", err)
		audit.FetchError = err.Error()
		audit.TimedOut = isTimeout(err)
		return nil
	}

	s.logger.Debug("page fetched",
		"url", page.URL,
		"status", page.StatusCode,
		"content_type", page.ContentType,
		"bytes", len(page.Body),
	)
	audit.Markup = page.Body
	return nil
}

// isTimeout reports whether err came from a deadline.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// ExtractStep parses the fetched markup for tel: links.
type ExtractStep struct {
	extractor LinkExtractor
	logger    *slog.Logger
}

// ExtractStepOption configures an ExtractStep.
type ExtractStepOption func(*ExtractStep)

// WithExtractLogger sets a custom logger for the extract step.
func WithExtractLogger(logger *slog.Logger) ExtractStepOption {
	return func(s *ExtractStep) {
		s.logger = logger
	}
}

// NewExtractStep creates an extract step using extractor.
func NewExtractStep(extractor LinkExtractor, opts ...ExtractStepOption) *ExtractStep {
	s := &ExtractStep{
		extractor: extractor,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *ExtractStep) Name() string {
	return StepExtract
}

// Do extracts links from audit.Markup. A page that failed to fetch has no
// links.
func (s *ExtractStep) Do(_ context.Context, audit *model.PageAudit) error {
	if audit.FetchError != "" || audit.Markup == "" {
		audit.RawLinks = audit.RawLinks[:0]
		return nil
	}

	links, err := s.extractor.Extract(audit.Markup)
	if err != nil {
		return err
	}

	s.logger.Debug("links extracted", "url", audit.URL, "count", len(links))
	audit.RawLinks = links
	return nil
}

// ClassifyStep normalizes and classifies the extracted links.
type ClassifyStep struct {
	references *model.ReferenceSet
}

// NewClassifyStep creates a classify step comparing against references.
// A nil or empty set classifies every link as N/A.
func NewClassifyStep(references *model.ReferenceSet) *ClassifyStep {
	return &ClassifyStep{references: references}
}

// Name returns the step name.
func (s *ClassifyStep) Name() string {
	return StepClassify
}

// Do fills audit.Links from audit.RawLinks, keeping document order.
func (s *ClassifyStep) Do(_ context.Context, audit *model.PageAudit) error {
	audit.Links = phone.ClassifyAll(audit.RawLinks, s.references)
	return nil
}

// DefaultPipeline creates the fetch, extract and classify pipeline.
func DefaultPipeline(fetcher PageFetcher, extractor LinkExtractor, references *model.ReferenceSet, opts ...Option) *Pipeline {
	p := New(opts...)

	p.AddSteps(
		NewFetchStep(fetcher, WithFetchLogger(p.logger)),
		NewExtractStep(extractor, WithExtractLogger(p.logger)),
		NewClassifyStep(references),
	)

	return p
}
