package dictionary

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/cribdrag/internal/model"
	"github.com/nao1215/cribdrag/internal/render"
)

// maxLineSize bounds a single word-list line.
const maxLineSize = 1024 * 1024

// Matcher looks up partial words in a word list.
type Matcher struct {
	// source provides the word list for every lookup.
	source Source

	// logger is used for debug output of lookups.
	logger *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithLogger sets the logger used by the matcher.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) {
		m.logger = logger
	}
}

// NewMatcher creates a Matcher over source.
func NewMatcher(source Source, opts ...Option) *Matcher {
	m := &Matcher{source: source}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m
}

// TrailingToken returns the partial word at the end of a rendered guess:
// the text after the last space (or all of it when there is no space),
// with placeholders removed.
func TrailingToken(rendered string) string {
	token := rendered
	if i := strings.LastIndexByte(rendered, ' '); i >= 0 {
		token = rendered[i+1:]
	}
	return render.StripPlaceholders(token)
}

// Search returns the first word-list line whose lowercase form starts with
// the lowercase trailing token of rendered. The line is returned verbatim,
// including any trailing whitespace. An empty token matches nothing and
// does not touch the source.
func (m *Matcher) Search(ctx context.Context, rendered string) (model.MatchResult, error) {
	token := TrailingToken(rendered)
	if token == "" {
		m.logger.Debug("dictionary lookup skipped", "reason", "empty token")
		return model.NotFound, nil
	}

	lower := cases.Lower(language.Und)
	prefix := lower.String(token)

	rc, err := m.source.Open()
	if err != nil {
		return model.NotFound, fmt.Errorf("failed to open word list %s: %w", m.source.Name(), err)
	}
	defer rc.Close()

	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

	lines := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return model.NotFound, err
		}
		lines++

		line := scanner.Text()
		if strings.HasPrefix(lower.String(line), prefix) {
			m.logger.Debug("dictionary match",
				"suffix", token,
				"word", line,
				"lines_scanned", lines,
			)
			return model.Found(line), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return model.NotFound, fmt.Errorf("failed to read word list %s: %w", m.source.Name(), err)
	}

	m.logger.Debug("dictionary miss", "suffix", token, "lines_scanned", lines)
	return model.NotFound, nil
}
