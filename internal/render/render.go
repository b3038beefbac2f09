// Package render turns guess bits into text for comparison and display,
// and builds the next crib from an accepted dictionary match.
package render

import (
	"strings"

	"github.com/nao1215/cribdrag/internal/codec"
	"github.com/nao1215/cribdrag/internal/model"
)

// Render decodes guess against the byte length of reference. Bytes the
// guess does not cover are shown as codec.Placeholder.
func Render(guess model.BitVector, reference string) string {
	return codec.Decode(guess, len(reference))
}

// Matches reports whether guess renders to reference, ignoring case.
func Matches(guess model.BitVector, reference string) bool {
	return strings.EqualFold(Render(guess, reference), reference)
}

// StripPlaceholders removes every placeholder character from s.
func StripPlaceholders(s string) string {
	return strings.ReplaceAll(s, string(codec.Placeholder), "")
}

// ComposeCrib builds the crib that follows an accepted match.
//
// Placeholders are removed from rendered, then the partial last word is cut
// at the last space and replaced by word:
//
//	ComposeCrib("this is anot??", "another") == "this is another"
//
// When the known text has no space, word is dropped and the known text is
// kept with a trailing space so the next crib stays aligned at offset 0:
//
//	ComposeCrib("this??????", "thistle") == "this "
func ComposeCrib(rendered, word string) string {
	known := StripPlaceholders(rendered)
	i := strings.LastIndexByte(known, ' ')
	if i < 0 {
		return known + " "
	}
	return known[:i] + " " + word
}
