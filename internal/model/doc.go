// Package model defines the data structures shared across cribdrag.
//
// This package contains the following main types:
//   - BitVector: bits of byte-encoded text, most-significant bit first
//   - Fixture: the two plaintexts and the shared key of a session
//   - SessionState: the mutable state of a running session
//   - MatchResult: the outcome of a dictionary lookup
//   - Attempt and Transcript: the record of a session's iterations
//   - DragResult: one offset of a crib sweep
//
// Models live in their own package so that the codec, mixer, pipeline,
// session, database and report packages can share them without import
// cycles. Transcript and its parts serialize to JSON for reports and the
// history database.
package model
