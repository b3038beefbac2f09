package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/cribdrag/internal/model"
)

// SimpleWriter outputs human-readable text transcripts.
type SimpleWriter struct {
	baseWriter

	// verbose adds the evaluation steps of each attempt.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the transcript in human-readable format.
func (w *SimpleWriter) Write(transcript *model.Transcript) (int, error) {
	var sb strings.Builder
	summary := NewSummary(transcript)

	w.writeHeader(&sb, summary)
	w.writeAttempts(&sb, transcript)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the transcript header with session information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, s *Summary) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                      CRIB DRAG TRANSCRIPT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Session:     %s\n", s.ID)
	fmt.Fprintf(sb, "Ciphertexts: %s\n", s.Fingerprint)
	fmt.Fprintf(sb, "Started:     %s\n", s.StartedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Attempts:    %d (accepted %d, rejected %d, no match %d)\n",
		s.Attempts, s.Accepted, s.Rejected(), s.NoMatch)

	if s.Solved {
		fmt.Fprintf(sb, "Status:      SOLVED - %s\n", s.Recovered)
	} else {
		sb.WriteString("Status:      Unsolved\n")
	}

	sb.WriteString("\n")
}

// writeAttempts writes one block per attempt.
func (w *SimpleWriter) writeAttempts(sb *strings.Builder, t *model.Transcript) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("ATTEMPTS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(t.Attempts) == 0 {
		sb.WriteString("  No cribs were tried\n\n")
		return
	}

	for _, a := range t.Attempts {
		fmt.Fprintf(sb, "  #%d [%s]\n", a.Seq, outcome(a))
		fmt.Fprintf(sb, "    Crib:   %s\n", a.Crib)
		fmt.Fprintf(sb, "    Result: %s\n", a.Rendered)
		if a.Match.Found {
			fmt.Fprintf(sb, "    Match:  %s\n", a.Match)
		}
		if w.verbose && len(a.Steps) > 0 {
			fmt.Fprintf(sb, "    Steps:  %s\n", strings.Join(a.Steps, " -> "))
		}
	}
	sb.WriteString("\n")
}

// writeFooter writes the transcript footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Transcript generated by cribdrag\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
