package model

// SessionState is the mutable state of one crib-dragging session.
// The ciphertexts are set once at session start and never modified.
type SessionState struct {
	// Cribword is the crib used by the current or next iteration.
	Cribword string

	// Ciphertext1 is plaintext1 XOR key.
	Ciphertext1 BitVector

	// Ciphertext2 is plaintext2 XOR key.
	Ciphertext2 BitVector

	// Running is false once the session has reached a terminal state.
	Running bool

	// ReuseCribword is set after an accepted dictionary match. The next
	// iteration then uses Cribword instead of asking for a new crib.
	ReuseCribword bool
}
