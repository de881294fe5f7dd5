package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/telscan/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages audited at once when no limit
// is configured.
const DefaultConcurrency = 4

// Factory builds the pipeline for one URL, so that per-site settings can
// differ between URLs of the same batch.
type Factory func(url string) *Pipeline

// BatchProcessor audits several URLs concurrently, one fresh pipeline per
// URL.
//
// Pages share no state while they are audited. Results are collected by
// index and aggregated only after every audit finished, so report sinks
// never see concurrent writes.
type BatchProcessor struct {
	// pipelineFactory builds a fresh pipeline for each URL.
	pipelineFactory Factory

	// concurrency is the maximum number of audits running at once.
	concurrency int

	// logger is used for batch-level progress logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
// If not set, slog.Default is used.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent audits.
// Non-positive values keep DefaultConcurrency. Values above the number of
// URLs are harmless; errgroup only starts as many goroutines as there are
// URLs.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor. pipelineFactory is called
// once per URL.
func NewBatchProcessor(pipelineFactory Factory, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch audits urls and returns one audit per URL in input order.
// A failed audit is still returned with its error recorded; only
// cancellation of ctx is reported as an error.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, urls []string) ([]*model.PageAudit, error) {
	bp.logger.Debug("starting batch",
		"total_urls", len(urls),
		"concurrency", bp.concurrency,
	)
	start := time.Now()

	// Each goroutine writes only its own index.
	results := make([]*model.PageAudit, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, url := range urls {
		g.Go(func() error {
			audit := model.NewPageAudit(url)
			results[i] = audit

			if err := ctx.Err(); err != nil {
				audit.TimedOut = true
				return err
			}

			if err := bp.pipelineFactory(url).Execute(ctx, audit); err != nil {
				bp.logger.Warn("audit failed", "url", url, "error", err)
			}
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Debug("batch complete",
		"total_urls", len(urls),
		"elapsed", time.Since(start),
	)

	return results, err
}
