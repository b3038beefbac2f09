// Package pipeline evaluates cribs against the combined ciphertext.
//
// One session iteration runs an ordered list of Steps over a model.Attempt:
// compute the guess bits, check them against the known plaintexts, render
// the display text and look up the trailing partial word. Each step that
// runs is recorded in Attempt.Steps. A step that implements Skipper can
// decline to run for a given attempt; the dictionary step does so once the
// attempt is solved.
//
// The Dragger slides one crib over every byte offset of the combined
// ciphertext and evaluates the offsets concurrently with an errgroup.
package pipeline
