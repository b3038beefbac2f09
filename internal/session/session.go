package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/nao1215/cribdrag/internal/mixer"
	"github.com/nao1215/cribdrag/internal/model"
	"github.com/nao1215/cribdrag/internal/pipeline"
	"github.com/nao1215/cribdrag/internal/render"
)

// AffirmativeToken is the only reply that accepts a dictionary match.
// Any other reply, including an empty line, rejects it.
const AffirmativeToken = "y"

// IsAffirmative reports whether reply accepts a match.
func IsAffirmative(reply string) bool {
	return reply == AffirmativeToken
}

// Interactor is the analyst side of a session.
type Interactor interface {
	// ReadCrib asks for the next crib. io.EOF ends the session.
	ReadCrib(ctx context.Context) (string, error)

	// ShowCrib echoes the crib about to be tested.
	ShowCrib(crib string)

	// ShowResult displays the rendered guess.
	ShowResult(rendered string)

	// ShowNoMatch reports that the dictionary had no completion.
	ShowNoMatch()

	// ConfirmMatch presents a dictionary word and returns the raw reply.
	ConfirmMatch(ctx context.Context, word string) (string, error)

	// ShowSolved reports that a plaintext was recovered.
	ShowSolved()
}

// Session is one analyst session against a fixture.
type Session struct {
	// fixture holds the known plaintexts and key.
	fixture model.Fixture

	// state is the mutable loop state.
	state model.SessionState

	// combined is ciphertext1 XOR ciphertext2, computed once.
	combined model.BitVector

	// phase is the current state machine phase.
	phase Phase

	// evaluation runs the compute/solve-check/render/dictionary steps.
	evaluation *pipeline.Pipeline

	// transcript records every attempt.
	transcript *model.Transcript

	// logger is used for structured logging.
	logger *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used by the session and its pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// New encrypts the fixture and returns a session awaiting its first crib.
func New(fixture model.Fixture, matcher pipeline.WordMatcher, opts ...Option) *Session {
	s := &Session{
		fixture: fixture,
		phase:   AwaitingCrib,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	c1, c2 := mixer.Encrypt(fixture)
	s.state = model.SessionState{
		Ciphertext1: c1,
		Ciphertext2: c2,
		Running:     true,
	}
	s.combined = mixer.Combine(c1, c2)
	s.evaluation = pipeline.NewEvaluation(fixture, s.combined, matcher, s.logger)
	s.transcript = model.NewTranscript(model.Fingerprint(c1, c2))

	s.logger.Debug("session created",
		"transcript_id", s.transcript.ID,
		"fingerprint", s.transcript.Fingerprint,
		"plaintext1", fixture.Plaintext1,
		"plaintext2", fixture.Plaintext2,
		"key", fixture.Key,
	)

	return s
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// State returns a copy of the session state.
func (s *Session) State() model.SessionState {
	return s.state
}

// Combined returns ciphertext1 XOR ciphertext2.
func (s *Session) Combined() model.BitVector {
	return s.combined
}

// Transcript returns the record of the session so far.
func (s *Session) Transcript() *model.Transcript {
	return s.transcript
}

// NextCrib returns the composed crib when the previous iteration accepted
// a match, and clears the reuse flag. ok is false when a new crib must be
// requested from the analyst.
func (s *Session) NextCrib() (crib string, ok bool) {
	if !s.state.ReuseCribword {
		return "", false
	}
	s.state.ReuseCribword = false
	return s.state.Cribword, true
}

// Evaluate tests crib against the combined ciphertext.
//
// On return the phase is Solved when the guess equals a known plaintext,
// NoMatchPrompt when the dictionary had no completion, or
// AwaitingMatchDecision when a word awaits Decide.
func (s *Session) Evaluate(ctx context.Context, crib string) (*model.Attempt, error) {
	switch s.phase {
	case Solved:
		return nil, ErrSessionSolved
	case AwaitingMatchDecision:
		return nil, ErrDecisionPending
	}

	s.state.Cribword = crib
	s.state.ReuseCribword = false

	attempt := model.NewAttempt(len(s.transcript.Attempts)+1, crib)

	s.phase = Computing
	if err := s.evaluation.Execute(ctx, attempt); err != nil {
		s.phase = AwaitingCrib
		return nil, fmt.Errorf("failed to evaluate crib: %w", err)
	}
	s.phase = Evaluating

	s.transcript.AddAttempt(attempt)

	switch {
	case attempt.Solved:
		s.phase = Solved
		s.state.Running = false
		s.transcript.Finish()
		s.logger.Info("session solved",
			"transcript_id", s.transcript.ID,
			"attempts", len(s.transcript.Attempts),
			"message", attempt.SolvedMessage,
		)
	case attempt.Match.Found:
		s.phase = AwaitingMatchDecision
	default:
		s.phase = NoMatchPrompt
	}

	s.logger.Debug("crib evaluated",
		"seq", attempt.Seq,
		"crib", crib,
		"rendered", attempt.Rendered,
		"match", attempt.Match.String(),
		"phase", s.phase.String(),
	)

	return attempt, nil
}

// Decide answers the pending match. An affirmative reply composes the next
// crib from the rendered guess and the word and flags it for reuse; any
// other reply rejects the match. Either way the session returns to
// AwaitingCrib.
func (s *Session) Decide(reply string) error {
	if s.phase != AwaitingMatchDecision {
		return ErrNoPendingMatch
	}

	attempt := s.transcript.LastAttempt()
	if IsAffirmative(reply) {
		attempt.Accepted = true
		s.state.Cribword = render.ComposeCrib(attempt.Rendered, attempt.Match.Word)
		s.state.ReuseCribword = true
		s.logger.Debug("match accepted",
			"word", attempt.Match.Word,
			"next_crib", s.state.Cribword,
		)
	}

	s.phase = AwaitingCrib
	return nil
}

// Run loops until the session is solved or ends. The returned transcript is
// finished in every case. Input ending with io.EOF ends the session without
// an error.
func (s *Session) Run(ctx context.Context, ui Interactor) (*model.Transcript, error) {
	defer s.transcript.Finish()

	for s.state.Running {
		if err := ctx.Err(); err != nil {
			return s.transcript, err
		}

		crib, reuse := s.NextCrib()
		if !reuse {
			var err error
			crib, err = ui.ReadCrib(ctx)
			if errors.Is(err, io.EOF) {
				s.logger.Info("input closed, ending session", "transcript_id", s.transcript.ID)
				return s.transcript, nil
			}
			if err != nil {
				return s.transcript, fmt.Errorf("failed to read crib: %w", err)
			}
		}
		ui.ShowCrib(crib)

		attempt, err := s.Evaluate(ctx, crib)
		if err != nil {
			return s.transcript, err
		}
		if s.phase == Solved {
			ui.ShowSolved()
		}
		ui.ShowResult(attempt.Rendered)

		switch s.phase {
		case NoMatchPrompt:
			ui.ShowNoMatch()
			s.phase = AwaitingCrib
		case AwaitingMatchDecision:
			reply, err := ui.ConfirmMatch(ctx, attempt.Match.Word)
			if errors.Is(err, io.EOF) {
				reply = ""
			} else if err != nil {
				return s.transcript, fmt.Errorf("failed to read decision: %w", err)
			}
			if err := s.Decide(reply); err != nil {
				return s.transcript, err
			}
		}
	}

	return s.transcript, nil
}
