package dictionary

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed words.txt
var embeddedWords string

// ErrWordListNotFound is returned when a word-list file does not exist or
// cannot be opened.
var ErrWordListNotFound = errors.New("word list not found")

// Source provides a fresh reader over a word list, one entry per line.
type Source interface {
	// Open returns a reader positioned at the first line.
	// The caller closes it.
	Open() (io.ReadCloser, error)

	// Name describes the source for logs.
	Name() string
}

// FileSource reads a word list from a file.
type FileSource struct {
	path string
}

// NewFileSource returns a FileSource for path after checking that the file
// exists and can be opened. A missing or unreadable file yields an error
// wrapping ErrWordListNotFound.
func NewFileSource(path string) (*FileSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWordListNotFound, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrWordListNotFound, path)
	}

	src := &FileSource{path: path}
	rc, err := src.Open()
	if err != nil {
		return nil, err
	}
	_ = rc.Close() //nolint:errcheck // opened only to check readability

	return src, nil
}

// Open opens the file for reading.
func (s *FileSource) Open() (io.ReadCloser, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWordListNotFound, s.path, err)
	}
	return f, nil
}

// Name returns the file path.
func (s *FileSource) Name() string {
	return s.path
}

// StringSource serves a word list held in memory.
type StringSource struct {
	name string
	text string
}

// NewStringSource returns a source over text, one entry per line.
func NewStringSource(name, text string) *StringSource {
	return &StringSource{name: name, text: text}
}

// Open returns a reader over the text.
func (s *StringSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(s.text)), nil
}

// Name returns the name given at construction.
func (s *StringSource) Name() string {
	return s.name
}

// EmbeddedSource returns the built-in English word list.
func EmbeddedSource() *StringSource {
	return NewStringSource("embedded", embeddedWords)
}

// OpenSource returns a FileSource for path, or the embedded list when path
// is empty.
func OpenSource(path string) (Source, error) {
	if path == "" {
		return EmbeddedSource(), nil
	}
	return NewFileSource(path)
}
