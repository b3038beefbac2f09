package pipeline

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/nao1215/cribdrag/internal/mixer"
	"github.com/nao1215/cribdrag/internal/model"
)

// stubMatcher returns a fixed result and counts lookups.
type stubMatcher struct {
	result   model.MatchResult
	err      error
	calls    int
	rendered []string
}

// Search implements WordMatcher.Search.
func (s *stubMatcher) Search(_ context.Context, rendered string) (model.MatchResult, error) {
	s.calls++
	s.rendered = append(s.rendered, rendered)
	return s.result, s.err
}

// evaluate runs the standard pipeline for crib against fixture.
func evaluate(t *testing.T, fixture model.Fixture, matcher WordMatcher, crib string) *model.Attempt {
	t.Helper()

	combined := mixer.Combine(mixer.Encrypt(fixture))
	p := NewEvaluation(fixture, combined, matcher, nil)

	attempt := model.NewAttempt(1, crib)
	if err := p.Execute(context.Background(), attempt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return attempt
}

// TestNewEvaluation tests the standard step order.
func TestNewEvaluation(t *testing.T) {
	t.Parallel()

	p := NewEvaluation(model.DefaultFixture(), nil, &stubMatcher{}, nil)
	want := []string{StepCompute, StepSolveCheck, StepRender, StepDictionary}
	if got := p.StepNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

// TestEvaluationSolves tests that a crib equal to a plaintext solves the attempt.
func TestEvaluationSolves(t *testing.T) {
	t.Parallel()

	fixture := model.Fixture{Plaintext1: "cat", Plaintext2: "dog", Key: "xyz"}

	tests := []struct {
		name        string
		crib        string
		wantMessage int
		wantShown   string
	}{
		{name: "crib equal to plaintext1 reveals plaintext2", crib: "cat", wantMessage: 2, wantShown: "dog"},
		{name: "crib equal to plaintext2 reveals plaintext1", crib: "dog", wantMessage: 1, wantShown: "cat"},
		{name: "crib compare ignores case", crib: "CAT", wantMessage: 2, wantShown: "DOG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			matcher := &stubMatcher{result: model.Found("unused")}
			attempt := evaluate(t, fixture, matcher, tt.crib)

			if !attempt.Solved {
				t.Fatal("expected attempt to be solved")
			}
			if attempt.SolvedMessage != tt.wantMessage {
				t.Errorf("expected solved message %d, got %d", tt.wantMessage, attempt.SolvedMessage)
			}
			if attempt.Rendered != tt.wantShown {
				t.Errorf("expected rendered %q, got %q", tt.wantShown, attempt.Rendered)
			}
			if matcher.calls != 0 {
				t.Errorf("expected no dictionary lookup, got %d", matcher.calls)
			}
			wantSteps := []string{StepCompute, StepSolveCheck, StepRender}
			if !reflect.DeepEqual(attempt.Steps, wantSteps) {
				t.Errorf("expected steps %v, got %v", wantSteps, attempt.Steps)
			}
		})
	}
}

// TestEvaluationPartialCrib tests an unsolved attempt with a short crib.
func TestEvaluationPartialCrib(t *testing.T) {
	t.Parallel()

	fixture := model.DefaultFixture()
	matcher := &stubMatcher{result: model.Found("this")}
	attempt := evaluate(t, fixture, matcher, "Hello th")

	if attempt.Solved {
		t.Fatal("expected attempt to be unsolved")
	}
	wantRendered := "this is " + strings.Repeat("?", len(fixture.Key)-len("Hello th"))
	if attempt.Rendered != wantRendered {
		t.Errorf("expected rendered %q, got %q", wantRendered, attempt.Rendered)
	}
	if matcher.calls != 1 || matcher.rendered[0] != wantRendered {
		t.Errorf("expected one lookup of the rendered guess, got %v", matcher.rendered)
	}
	if attempt.Match != model.Found("this") {
		t.Errorf("expected match to be recorded, got %v", attempt.Match)
	}
}

// TestEvaluationDictionaryError tests that lookup failures propagate.
func TestEvaluationDictionaryError(t *testing.T) {
	t.Parallel()

	lookupErr := errors.New("word list vanished")
	fixture := model.DefaultFixture()
	combined := mixer.Combine(mixer.Encrypt(fixture))
	p := NewEvaluation(fixture, combined, &stubMatcher{err: lookupErr}, nil)

	err := p.Execute(context.Background(), model.NewAttempt(1, "abc"))
	if !errors.Is(err, lookupErr) {
		t.Errorf("expected %v, got %v", lookupErr, err)
	}
}
