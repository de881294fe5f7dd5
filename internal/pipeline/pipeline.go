package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/telscan/internal/model"
)

// Step is one stage of a page audit.
// Steps run in sequence, and each one sees the audit as left by the steps
// before it: FetchStep fills Markup, ExtractStep fills RawLinks and
// ClassifyStep fills Links.
//
// Design decision: steps are an interface rather than plain functions so
// a step can carry its own collaborators (fetcher, extractor, reference
// set) and report a Name for logs and PerformedSteps.
type Step interface {
	// Do executes the step against audit.
	// It receives the context for cancellation and the audit to modify.
	// Non-fatal problems, such as a page that could not be fetched, are
	// recorded on the audit and nil is returned. A returned error is
	// recorded in audit.Error by the Pipeline.
	Do(ctx context.Context, audit *model.PageAudit) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline executes steps in the order they were added.
// A Pipeline audits one page; BatchProcessor runs one per URL.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError determines whether later steps run after one
	// fails. If false, Execute stops at the first error.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to keep executing steps
// after one fails. The error is still recorded on the audit, and the
// failed step is still listed in PerformedSteps.
//
// The CLI enables it: an audit always finishes and reports whatever it
// could determine about a page.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
// Steps are added with AddStep or AddSteps after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in sequence against audit.
//
// Cancellation is checked before each step rather than during it; steps
// bound their own blocking work with ctx. A cancelled audit is marked
// TimedOut and ctx.Err() is returned.
//
// It returns the first step error unless continueOnError is set, in which
// case it returns nil and the last error is kept in audit.Error.
func (p *Pipeline) Execute(ctx context.Context, audit *model.PageAudit) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"url", audit.URL,
				"reason", err,
			)
			audit.TimedOut = true
			return err
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"url", audit.URL,
		)

		if err := step.Do(ctx, audit); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"url", audit.URL,
				"error", err,
			)
			audit.Error = err.Error()

			if !p.continueOnError {
				return err
			}
		}

		audit.PerformedSteps = append(audit.PerformedSteps, step.Name())
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
