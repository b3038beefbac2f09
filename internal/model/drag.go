package model

// DragResult is the plaintext fragment revealed by placing a crib at one
// byte offset of the combined ciphertext.
type DragResult struct {
	// Offset is the byte position the crib was placed at.
	Offset int `json:"offset"`

	// Fragment is the decoded text of the other message at Offset.
	Fragment string `json:"fragment"`

	// Printable is true when every byte of Fragment is printable ASCII.
	Printable bool `json:"printable"`
}

// IsPrintable reports whether s consists only of bytes in 0x20..0x7e.
func IsPrintable(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}
