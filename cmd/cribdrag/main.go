// Package main provides the entry point for the cribdrag CLI.
//
// cribdrag is an interactive two-time pad teaching tool. Two messages are
// encrypted with the same key, and the analyst recovers them by dragging
// guessed words (cribs) across the XOR of the two ciphertexts.
//
// Usage:
//
//	cribdrag session
//	cribdrag drag <crib>
//	cribdrag history
//
// See --help for all available options.
package main

// main is the entry point for cribdrag.
func main() {
	Execute()
}
