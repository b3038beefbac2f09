package config

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/nao1215/cribdrag/internal/model"
	"github.com/nao1215/cribdrag/internal/pipeline"
)

const (
	// AppName is the application name used for XDG directory paths.
	AppName = "cribdrag"

	// DefaultConcurrency is the number of offsets the drag command
	// evaluates at once.
	DefaultConcurrency = pipeline.DefaultDragConcurrency
)

// Config holds all configuration options for cribdrag.
// It is populated from defaults, the config file, the environment and CLI
// flags, in that order, and passed explicitly to the commands.
type Config struct {
	// Fixture holds the two plaintexts and the shared key.
	Fixture model.Fixture

	// DictionaryPath is the word-list file. Empty selects the embedded list.
	DictionaryPath string

	// Strict rejects a key shorter than either plaintext. When false the
	// mixer's space-fill behaviour applies silently.
	Strict bool

	// History stores finished sessions in the SQLite history database.
	History bool

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory (~/.local/share/cribdrag on Linux).
	DBDir string

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the path given with --config. Empty means search.
	ConfigFilePath string

	// JSONReport writes the transcript as JSON.
	JSONReport bool

	// MarkdownReport writes the transcript as Markdown.
	MarkdownReport bool

	// ReportFile is where the transcript is written at the end of a session.
	// Empty means no transcript is written.
	ReportFile string

	// Concurrency is the number of offsets the drag command evaluates at once.
	Concurrency int

	// PrintableOnly makes the drag command drop non-printable fragments.
	PrintableOnly bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Fixture:     model.DefaultFixture(),
		DBDir:       XDGDataDir(),
		Concurrency: DefaultConcurrency,
	}
}

// XDGDataDir returns the XDG data directory for cribdrag.
// On Linux: ~/.local/share/cribdrag
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for cribdrag.
// On Linux: ~/.config/cribdrag
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if c.Fixture.Plaintext1 == "" || c.Fixture.Plaintext2 == "" {
		return ErrEmptyPlaintext
	}

	if c.Fixture.Key == "" {
		return ErrEmptyKey
	}

	if c.Strict && len(c.Fixture.Key) < c.Fixture.MaxPlaintextLen() {
		return ErrKeyTooShort
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	return nil
}

// ApplyFile overlays the values set in f.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if !f.Fixture.IsZero() {
		c.Fixture = f.Fixture
	}
	if f.Dictionary != "" {
		c.DictionaryPath = f.Dictionary
	}
	if f.Strict {
		c.Strict = true
	}
	if f.History {
		c.History = true
	}
	if f.Concurrency > 0 {
		c.Concurrency = f.Concurrency
	}
}

// ApplyEnv overlays the values set in e.
func (c *Config) ApplyEnv(e *Env) {
	if e == nil {
		return
	}
	if e.Dictionary != "" {
		c.DictionaryPath = e.Dictionary
	}
	if e.DBDir != "" {
		c.DBDir = e.DBDir
	}
	if e.Strict {
		c.Strict = true
	}
	if e.History {
		c.History = true
	}
	if e.Verbose {
		c.Verbose = true
	}
}
