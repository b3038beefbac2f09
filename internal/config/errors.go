package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrEmptyPlaintext is returned when either fixture plaintext is empty.
	ErrEmptyPlaintext = errors.New("invalid fixture: both plaintexts must be non-empty")

	// ErrEmptyKey is returned when the fixture key is empty.
	ErrEmptyKey = errors.New("invalid fixture: key must be non-empty")

	// ErrKeyTooShort is returned in strict mode when the key is shorter
	// than either plaintext.
	ErrKeyTooShort = errors.New("invalid fixture: key is shorter than a plaintext")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidConcurrency is returned when the drag concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")
)
