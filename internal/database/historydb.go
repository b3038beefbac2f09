package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/cribdrag/internal/model"
)

// FileName is the name of the history database inside its directory.
const FileName = "cribdrag.db"

// ErrNilTranscript is returned when SaveTranscript is called without a transcript.
var ErrNilTranscript = errors.New("transcript is nil")

// HistoryDB provides SQLite-based storage for finished sessions.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Sessions store complete transcripts as JSON
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		fingerprint TEXT NOT NULL,
		started_at TEXT NOT NULL,
		finished_at TEXT,
		solved INTEGER NOT NULL DEFAULT 0,
		attempts INTEGER NOT NULL DEFAULT 0,
		accepted INTEGER NOT NULL DEFAULT 0,
		transcript_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_fingerprint ON sessions(fingerprint);
	CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at);

	-- Attempts store every crib tried, one row per iteration
	CREATE TABLE IF NOT EXISTS attempts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		crib TEXT NOT NULL,
		rendered TEXT NOT NULL,
		matched_word TEXT,
		accepted INTEGER NOT NULL DEFAULT 0,
		solved INTEGER NOT NULL DEFAULT 0,
		UNIQUE(session_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_attempts_session ON attempts(session_id);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveTranscript stores a transcript and its attempts in one transaction.
// Saving a transcript with an existing ID replaces the earlier copy.
func (hdb *HistoryDB) SaveTranscript(ctx context.Context, t *model.Transcript) (err error) {
	if t == nil {
		return ErrNilTranscript
	}

	transcriptJSON, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to serialize transcript: %w", err)
	}

	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var finishedAt sql.NullString
	if !t.FinishedAt.IsZero() {
		finishedAt = sql.NullString{String: formatTimestamp(t.FinishedAt), Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
	INSERT INTO sessions (id, fingerprint, started_at, finished_at, solved, attempts, accepted, transcript_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		finished_at = excluded.finished_at,
		solved = excluded.solved,
		attempts = excluded.attempts,
		accepted = excluded.accepted,
		transcript_json = excluded.transcript_json
	`,
		t.ID,
		t.Fingerprint,
		formatTimestamp(t.StartedAt),
		finishedAt,
		t.Solved,
		len(t.Attempts),
		t.AcceptedCount(),
		string(transcriptJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM attempts WHERE session_id = ?`, t.ID); err != nil {
		return fmt.Errorf("failed to clear attempts: %w", err)
	}

	for _, a := range t.Attempts {
		_, err = tx.ExecContext(ctx, `
		INSERT INTO attempts (session_id, seq, crib, rendered, matched_word, accepted, solved)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			t.ID,
			a.Seq,
			a.Crib,
			a.Rendered,
			a.Match.Word,
			a.Accepted,
			a.Solved,
		)
		if err != nil {
			return fmt.Errorf("failed to save attempt %d: %w", a.Seq, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetTranscript retrieves a transcript by its session ID.
// It returns nil, nil when no session has that ID.
func (hdb *HistoryDB) GetTranscript(ctx context.Context, id string) (*model.Transcript, error) {
	var transcriptJSON string
	err := hdb.db.QueryRowContext(ctx,
		`SELECT transcript_json FROM sessions WHERE id = ?`, id,
	).Scan(&transcriptJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transcript: %w", err)
	}

	var t model.Transcript
	if err := json.Unmarshal([]byte(transcriptJSON), &t); err != nil {
		return nil, fmt.Errorf("failed to parse transcript: %w", err)
	}

	return &t, nil
}

// SessionMetadata contains summary information about a stored session.
// This is used for listing history without loading full transcripts.
type SessionMetadata struct {
	// ID is the session's transcript ID.
	ID string

	// Fingerprint identifies the ciphertext pair.
	Fingerprint string

	// StartedAt is when the session began.
	StartedAt time.Time

	// FinishedAt is when the session ended. Zero if it was never finished.
	FinishedAt time.Time

	// Solved is true when a plaintext was recovered.
	Solved bool

	// Attempts is the number of cribs tried.
	Attempts int

	// Accepted is the number of dictionary matches taken into the next crib.
	Accepted int
}

// ListSessions returns session metadata, newest first.
// An empty fingerprint lists every session.
func (hdb *HistoryDB) ListSessions(ctx context.Context, fingerprint string) ([]SessionMetadata, error) {
	query := `
	SELECT id, fingerprint, started_at, finished_at, solved, attempts, accepted
	FROM sessions
	WHERE 1=1
	`
	args := make([]any, 0, 1)

	if fingerprint != "" {
		query += " AND fingerprint = ?"
		args = append(args, fingerprint)
	}

	query += " ORDER BY started_at DESC"

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var results []SessionMetadata
	for rows.Next() {
		var meta SessionMetadata
		var startedAt string
		var finishedAt sql.NullString

		if err := rows.Scan(
			&meta.ID,
			&meta.Fingerprint,
			&startedAt,
			&finishedAt,
			&meta.Solved,
			&meta.Attempts,
			&meta.Accepted,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}

		meta.StartedAt = parseTimestamp(startedAt)
		if finishedAt.Valid {
			meta.FinishedAt = parseTimestamp(finishedAt.String)
		}

		results = append(results, meta)
	}

	return results, rows.Err()
}

// CribRecord is one crib tried against a ciphertext pair.
type CribRecord struct {
	SessionID string
	Seq       int
	Crib      string
	Rendered  string
	Match     string
	Accepted  bool
	Solved    bool
}

// ListCribs returns every crib tried against the ciphertext pair with the
// given fingerprint, oldest session first and in attempt order.
func (hdb *HistoryDB) ListCribs(ctx context.Context, fingerprint string) ([]CribRecord, error) {
	query := `
	SELECT a.session_id, a.seq, a.crib, a.rendered, a.matched_word, a.accepted, a.solved
	FROM attempts a
	JOIN sessions s ON s.id = a.session_id
	WHERE s.fingerprint = ?
	ORDER BY s.started_at, a.seq
	`

	rows, err := hdb.db.QueryContext(ctx, query, fingerprint)
	if err != nil {
		return nil, fmt.Errorf("failed to list cribs: %w", err)
	}
	defer rows.Close()

	var results []CribRecord
	for rows.Next() {
		var rec CribRecord
		var match sql.NullString

		if err := rows.Scan(
			&rec.SessionID,
			&rec.Seq,
			&rec.Crib,
			&rec.Rendered,
			&match,
			&rec.Accepted,
			&rec.Solved,
		); err != nil {
			return nil, fmt.Errorf("failed to scan crib: %w", err)
		}
		rec.Match = match.String

		results = append(results, rec)
	}

	return results, rows.Err()
}

// timestampLayout is the layout used when writing timestamps.
// It sorts lexically in time order for UTC values.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// formatTimestamp formats t in UTC with a fixed width.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// timestampFormats contains the timestamp formats that may be stored.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	timestampLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
