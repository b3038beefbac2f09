package pipeline

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/nao1215/cribdrag/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, attempt *model.Attempt) error
	skipFunc  func(attempt *model.Attempt) bool
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, attempt *model.Attempt) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, attempt)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

// skippingStep adds Skipper to mockStep.
type skippingStep struct {
	*mockStep
}

// Skip implements Skipper.Skip.
func (s skippingStep) Skip(attempt *model.Attempt) bool {
	return s.skipFunc(attempt)
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates pipeline with default settings", func(t *testing.T) {
		t.Parallel()

		p := New()
		if p == nil {
			t.Fatal("expected non-nil pipeline")
		}
		if p.StepCount() != 0 {
			t.Errorf("expected 0 steps, got %d", p.StepCount())
		}
		if p.logger == nil {
			t.Error("expected default logger")
		}
	})
}

// TestPipelineAddStep tests adding steps to the pipeline.
func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	p := New()
	p.AddStep(&mockStep{name: "one"})
	p.AddSteps(&mockStep{name: "two"}, &mockStep{name: "three"})

	want := []string{"one", "two", "three"}
	if got := p.StepNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

// TestPipelineExecute tests step execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("runs steps in order and records names", func(t *testing.T) {
		t.Parallel()

		var order []string
		record := func(name string) *mockStep {
			return &mockStep{name: name, doFunc: func(_ context.Context, _ *model.Attempt) error {
				order = append(order, name)
				return nil
			}}
		}

		p := New()
		p.AddSteps(record("a"), record("b"), record("c"))

		attempt := model.NewAttempt(1, "crib")
		if err := p.Execute(context.Background(), attempt); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"a", "b", "c"}
		if !reflect.DeepEqual(order, want) {
			t.Errorf("expected execution order %v, got %v", want, order)
		}
		if !reflect.DeepEqual(attempt.Steps, want) {
			t.Errorf("expected recorded steps %v, got %v", want, attempt.Steps)
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		failErr := errors.New("boom")
		failing := &mockStep{name: "fail", doFunc: func(context.Context, *model.Attempt) error { return failErr }}
		after := &mockStep{name: "after"}

		p := New()
		p.AddSteps(failing, after)

		err := p.Execute(context.Background(), model.NewAttempt(1, ""))
		if !errors.Is(err, failErr) {
			t.Errorf("expected %v, got %v", failErr, err)
		}
		if after.callCount != 0 {
			t.Error("expected later step not to run")
		}
	})

	t.Run("skips steps that decline", func(t *testing.T) {
		t.Parallel()

		skipped := skippingStep{&mockStep{name: "skipped", skipFunc: func(*model.Attempt) bool { return true }}}
		ran := &mockStep{name: "ran"}

		p := New()
		p.AddSteps(skipped, ran)

		attempt := model.NewAttempt(1, "")
		if err := p.Execute(context.Background(), attempt); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if skipped.callCount != 0 {
			t.Error("expected skipped step not to run")
		}
		if !reflect.DeepEqual(attempt.Steps, []string{"ran"}) {
			t.Errorf("expected only ran to be recorded, got %v", attempt.Steps)
		}
	})

	t.Run("respects cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		step := &mockStep{name: "never"}
		p := New()
		p.AddStep(step)

		if err := p.Execute(ctx, model.NewAttempt(1, "")); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if step.callCount != 0 {
			t.Error("expected step not to run")
		}
	})
}
