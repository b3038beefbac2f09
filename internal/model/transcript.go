package model

import (
	"time"

	"github.com/google/uuid"
)

// Attempt records one iteration of a session: the crib tried, what it
// revealed and how the analyst responded.
type Attempt struct {
	// Seq is the 1-based iteration number within the session.
	Seq int `json:"seq"`

	// Crib is the candidate text that was tested.
	Crib string `json:"crib"`

	// Guess is the crib XORed with the combined ciphertext.
	// It is not serialized; Rendered carries the displayable form.
	Guess BitVector `json:"-"`

	// Rendered is Guess decoded against the key length, with a placeholder
	// for every byte the crib did not cover.
	Rendered string `json:"rendered"`

	// Solved is true when the guess equals one of the known plaintexts.
	Solved bool `json:"solved"`

	// SolvedMessage is 1 or 2 for the plaintext that was recovered, 0 otherwise.
	SolvedMessage int `json:"solved_message,omitempty"`

	// Match is the dictionary lookup result for the rendered guess.
	Match MatchResult `json:"match"`

	// Accepted is true when the analyst took the match into the next crib.
	Accepted bool `json:"accepted"`

	// Steps lists the evaluation steps that ran, in order.
	Steps []string `json:"steps,omitempty"`
}

// NewAttempt creates an attempt for the given iteration and crib.
func NewAttempt(seq int, crib string) *Attempt {
	return &Attempt{
		Seq:   seq,
		Crib:  crib,
		Steps: make([]string, 0, 4),
	}
}

// Transcript is the full record of a session.
type Transcript struct {
	// ID uniquely identifies the session.
	ID string `json:"id"`

	// Fingerprint identifies the ciphertext pair under attack.
	Fingerprint string `json:"fingerprint"`

	// StartedAt is when the session was created.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the session ended. Zero while it is running.
	FinishedAt time.Time `json:"finished_at,omitzero"`

	// Solved is true when a plaintext was recovered.
	Solved bool `json:"solved"`

	// Attempts lists every iteration in order.
	Attempts []*Attempt `json:"attempts"`
}

// NewTranscript creates an empty transcript for the given ciphertext fingerprint.
func NewTranscript(fingerprint string) *Transcript {
	return &Transcript{
		ID:          uuid.NewString(),
		Fingerprint: fingerprint,
		StartedAt:   time.Now(),
		Attempts:    make([]*Attempt, 0),
	}
}

// AddAttempt appends an attempt and marks the transcript solved if it was.
func (t *Transcript) AddAttempt(a *Attempt) {
	t.Attempts = append(t.Attempts, a)
	if a.Solved {
		t.Solved = true
	}
}

// Finish stamps the end time. Calling it again keeps the first time.
func (t *Transcript) Finish() {
	if t.FinishedAt.IsZero() {
		t.FinishedAt = time.Now()
	}
}

// LastAttempt returns the most recent attempt, or nil if there is none.
func (t *Transcript) LastAttempt() *Attempt {
	if len(t.Attempts) == 0 {
		return nil
	}
	return t.Attempts[len(t.Attempts)-1]
}

// AcceptedCount returns how many dictionary matches were accepted.
func (t *Transcript) AcceptedCount() int {
	n := 0
	for _, a := range t.Attempts {
		if a.Accepted {
			n++
		}
	}
	return n
}

// Duration returns how long the session ran. For an unfinished session it
// is the time elapsed so far.
func (t *Transcript) Duration() time.Duration {
	if t.FinishedAt.IsZero() {
		return time.Since(t.StartedAt)
	}
	return t.FinishedAt.Sub(t.StartedAt)
}
