package session

// Phase is a state of the session state machine.
type Phase int

const (
	// AwaitingCrib waits for the next crib (or reuses a composed one).
	AwaitingCrib Phase = iota
	// Computing XORs the crib against the combined ciphertext.
	Computing
	// Evaluating checks the guess and looks up the trailing word.
	Evaluating
	// AwaitingMatchDecision waits for the analyst to accept or reject a match.
	AwaitingMatchDecision
	// NoMatchPrompt reports that the dictionary had nothing.
	NoMatchPrompt
	// Solved is terminal: a plaintext was recovered.
	Solved
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case AwaitingCrib:
		return "awaiting-crib"
	case Computing:
		return "computing"
	case Evaluating:
		return "evaluating"
	case AwaitingMatchDecision:
		return "awaiting-match-decision"
	case NoMatchPrompt:
		return "no-match"
	case Solved:
		return "solved"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further iterations can follow.
func (p Phase) Terminal() bool {
	return p == Solved
}
