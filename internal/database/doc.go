// Package database provides SQLite-based storage for cribdrag session history.
//
// The HistoryDB stores:
//   - One row per finished session, keyed by transcript ID, with the full
//     transcript as JSON
//   - One row per attempt, so the cribs tried against a ciphertext pair can
//     be queried without decoding transcripts
//
// Sessions are grouped by ciphertext fingerprint. Running the same fixture
// twice yields the same fingerprint, which lets an analyst see which cribs
// were already tried against it.
//
// The plaintexts and key are never written to the database. Only the
// fingerprint, the cribs and the rendered guesses are stored.
package database
