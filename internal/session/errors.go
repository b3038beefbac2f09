package session

import "errors"

var (
	// ErrSessionSolved is returned by Evaluate once the session is solved.
	ErrSessionSolved = errors.New("session already solved")

	// ErrNoPendingMatch is returned by Decide when no match awaits a decision.
	ErrNoPendingMatch = errors.New("no dictionary match awaiting a decision")

	// ErrDecisionPending is returned by Evaluate while a match still awaits
	// a decision.
	ErrDecisionPending = errors.New("dictionary match awaiting a decision")
)
