package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/cribdrag/internal/model"
)

// MarkdownWriter outputs transcripts in Markdown format.
// This format is designed for notes and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the transcript in Markdown format.
func (w *MarkdownWriter) Write(transcript *model.Transcript) (int, error) {
	md := markdown.NewMarkdown(w.output)
	summary := NewSummary(transcript)

	w.writeHeader(md, summary)
	w.writeOutcome(md, summary)
	w.writeAttempts(md, transcript)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the header with session information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, s *Summary) {
	md.H1("Crib Drag Transcript")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Session", "`" + s.ID + "`"},
			{"Ciphertexts", "`" + truncateString(s.Fingerprint, 16) + "`"},
			{"Started", s.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", s.Duration.Round(1e9).String()},
			{"Attempts", strconv.Itoa(s.Attempts)},
		},
	})
	md.PlainText("")
}

// writeOutcome writes the alert and the outcome chart.
func (w *MarkdownWriter) writeOutcome(md *markdown.Markdown, s *Summary) {
	md.H2("Outcome")
	md.PlainText("")

	if s.Solved {
		md.Tip(fmt.Sprintf("Solved after %d attempt(s): `%s`", s.Attempts, escapeCell(s.Recovered)))
	} else if s.Attempts == 0 {
		md.Note("No cribs were tried.")
	} else {
		md.Importantf("Unsolved after %d attempt(s).", s.Attempts)
	}
	md.PlainText("")

	if s.Attempts > 0 {
		w.writePieChart(md, s)
	}
}

// writePieChart writes a mermaid pie chart of attempt outcomes.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, s *Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Attempt Outcomes"),
		piechart.WithShowData(true),
	)

	if s.Solved {
		chart.LabelAndIntValue("Solved", 1)
	}
	if s.Accepted > 0 {
		chart.LabelAndIntValue("Accepted", uint64(s.Accepted))
	}
	if rejected := s.Rejected(); rejected > 0 {
		chart.LabelAndIntValue("Rejected", uint64(rejected))
	}
	if s.NoMatch > 0 {
		chart.LabelAndIntValue("No match", uint64(s.NoMatch))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAttempts writes a table with one row per attempt.
func (w *MarkdownWriter) writeAttempts(md *markdown.Markdown, t *model.Transcript) {
	md.H2("Attempts")
	md.PlainText("")

	if len(t.Attempts) == 0 {
		md.PlainText("No cribs were tried.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(t.Attempts))
	for i, a := range t.Attempts {
		match := "-"
		if a.Match.Found {
			match = "`" + escapeCell(a.Match.Word) + "`"
		}
		rows[i] = []string{
			strconv.Itoa(a.Seq),
			"`" + escapeCell(a.Crib) + "`",
			"`" + escapeCell(a.Rendered) + "`",
			match,
			outcome(a),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"#", "Crib", "Result", "Match", "Outcome"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the transcript footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Transcript generated by cribdrag*")
}

// escapeCell makes text safe inside a table cell code span.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "`", "'")
	return strings.ReplaceAll(s, "\n", " ")
}
