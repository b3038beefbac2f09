// Package session drives one crib-dragging session against a fixed pair of
// ciphertexts.
//
// A Session is a small state machine:
//
//	AwaitingCrib -> Computing -> Evaluating -> Solved
//	                                        -> AwaitingMatchDecision -> AwaitingCrib
//	                                        -> NoMatchPrompt -> AwaitingCrib
//
// Evaluate moves a session from AwaitingCrib through Computing and
// Evaluating. Decide answers a pending dictionary match. Run loops over both
// using an Interactor for input and output until the session is solved,
// the input ends, or the context is cancelled.
//
// All mutable state lives in the Session's model.SessionState; nothing is
// shared between sessions.
package session
