package report

import (
	"io"
	"time"

	"github.com/nao1215/cribdrag/internal/model"
)

// Writer defines the interface for transcript output.
type Writer interface {
	// Write outputs the transcript to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(transcript *model.Transcript) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// Summary is the condensed view of a transcript that every format leads with.
type Summary struct {
	ID          string        `json:"id"`
	Fingerprint string        `json:"fingerprint"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration_ns"`
	Attempts    int           `json:"attempts"`
	Accepted    int           `json:"accepted"`
	NoMatch     int           `json:"no_match"`
	Solved      bool          `json:"solved"`

	// Recovered is the plaintext that solved the session, if any.
	Recovered string `json:"recovered,omitempty"`
}

// NewSummary condenses a transcript.
func NewSummary(t *model.Transcript) *Summary {
	s := &Summary{
		ID:          t.ID,
		Fingerprint: t.Fingerprint,
		StartedAt:   t.StartedAt,
		Duration:    t.Duration(),
		Attempts:    len(t.Attempts),
		Accepted:    t.AcceptedCount(),
		Solved:      t.Solved,
	}

	for _, a := range t.Attempts {
		if a.Solved {
			s.Recovered = a.Rendered
		}
		if !a.Solved && !a.Match.Found {
			s.NoMatch++
		}
	}

	return s
}

// Rejected returns how many matches were offered and declined.
func (s *Summary) Rejected() int {
	rejected := s.Attempts - s.Accepted - s.NoMatch
	if s.Solved {
		rejected--
	}
	return max(rejected, 0)
}

// outcome describes what happened on one attempt.
func outcome(a *model.Attempt) string {
	switch {
	case a.Solved:
		return "solved"
	case !a.Match.Found:
		return "no match"
	case a.Accepted:
		return "accepted"
	default:
		return "rejected"
	}
}

// truncateString truncates a string to maxLen bytes with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
