package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/cribdrag/internal/mixer"
	"github.com/nao1215/cribdrag/internal/model"
	"github.com/nao1215/cribdrag/internal/render"
)

// Step names recorded in Attempt.Steps.
const (
	StepCompute    = "compute"
	StepSolveCheck = "solve-check"
	StepRender     = "render"
	StepDictionary = "dictionary"
)

// WordMatcher looks up the trailing partial word of a rendered guess.
// *dictionary.Matcher satisfies it.
type WordMatcher interface {
	Search(ctx context.Context, rendered string) (model.MatchResult, error)
}

// ComputeStep XORs the attempt's crib against the combined ciphertext.
type ComputeStep struct {
	combined model.BitVector
}

// NewComputeStep creates a ComputeStep for the combined ciphertext.
func NewComputeStep(combined model.BitVector) *ComputeStep {
	return &ComputeStep{combined: combined}
}

// Do sets attempt.Guess.
func (s *ComputeStep) Do(_ context.Context, attempt *model.Attempt) error {
	attempt.Guess = mixer.Guess(attempt.Crib, s.combined)
	return nil
}

// Name returns "compute".
func (s *ComputeStep) Name() string { return StepCompute }

// SolveCheckStep compares the guess with both known plaintexts.
type SolveCheckStep struct {
	fixture model.Fixture
}

// NewSolveCheckStep creates a SolveCheckStep for the fixture.
func NewSolveCheckStep(fixture model.Fixture) *SolveCheckStep {
	return &SolveCheckStep{fixture: fixture}
}

// Do marks the attempt solved when the guess, rendered against either
// plaintext's length, equals that plaintext ignoring case.
func (s *SolveCheckStep) Do(_ context.Context, attempt *model.Attempt) error {
	switch {
	case render.Matches(attempt.Guess, s.fixture.Plaintext1):
		attempt.Solved = true
		attempt.SolvedMessage = 1
	case render.Matches(attempt.Guess, s.fixture.Plaintext2):
		attempt.Solved = true
		attempt.SolvedMessage = 2
	}
	return nil
}

// Name returns "solve-check".
func (s *SolveCheckStep) Name() string { return StepSolveCheck }

// RenderStep produces the display text against the key length.
type RenderStep struct {
	key string
}

// NewRenderStep creates a RenderStep for the key.
func NewRenderStep(key string) *RenderStep {
	return &RenderStep{key: key}
}

// Do sets attempt.Rendered.
func (s *RenderStep) Do(_ context.Context, attempt *model.Attempt) error {
	attempt.Rendered = render.Render(attempt.Guess, s.key)
	return nil
}

// Name returns "render".
func (s *RenderStep) Name() string { return StepRender }

// DictionaryStep searches the word list for the rendered guess.
type DictionaryStep struct {
	matcher WordMatcher
}

// NewDictionaryStep creates a DictionaryStep using matcher.
func NewDictionaryStep(matcher WordMatcher) *DictionaryStep {
	return &DictionaryStep{matcher: matcher}
}

// Skip reports true for solved attempts.
func (s *DictionaryStep) Skip(attempt *model.Attempt) bool {
	return attempt.Solved
}

// Do sets attempt.Match.
func (s *DictionaryStep) Do(ctx context.Context, attempt *model.Attempt) error {
	match, err := s.matcher.Search(ctx, attempt.Rendered)
	if err != nil {
		return err
	}
	attempt.Match = match
	return nil
}

// Name returns "dictionary".
func (s *DictionaryStep) Name() string { return StepDictionary }

// NewEvaluation builds the standard evaluation pipeline for a fixture.
func NewEvaluation(fixture model.Fixture, combined model.BitVector, matcher WordMatcher, logger *slog.Logger) *Pipeline {
	p := New(WithLogger(logger))
	p.AddSteps(
		NewComputeStep(combined),
		NewSolveCheckStep(fixture),
		NewRenderStep(fixture.Key),
		NewDictionaryStep(matcher),
	)
	return p
}
