package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/cribdrag/internal/model"
)

// Step defines one stage of crib evaluation.
type Step interface {
	// Do runs the step against the attempt, filling in its fields.
	Do(ctx context.Context, attempt *model.Attempt) error

	// Name returns the step's name for logging and Attempt.Steps.
	Name() string
}

// Skipper is implemented by steps that only apply to some attempts.
type Skipper interface {
	// Skip reports whether the step should not run for attempt.
	Skip(attempt *model.Attempt) bool
}

// Pipeline runs steps in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates an empty Pipeline with the given options.
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
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs every step in order and stops at the first error.
// Cancellation is checked before each step.
func (p *Pipeline) Execute(ctx context.Context, attempt *model.Attempt) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", err,
			)
			return err
		}

		if s, ok := step.(Skipper); ok && s.Skip(attempt) {
			p.logger.Debug("step skipped",
				"step", step.Name(),
				"seq", attempt.Seq,
			)
			continue
		}

		if err := step.Do(ctx, attempt); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"seq", attempt.Seq,
				"error", err,
			)
			return err
		}

		p.logger.Debug("step completed",
			"step", step.Name(),
			"seq", attempt.Seq,
		)
		attempt.Steps = append(attempt.Steps, step.Name())
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
