package model

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Fixture is the pair of messages and the shared key a session attacks.
// The values are supplied once when a session starts and never change.
//
// Key should be at least as long as each plaintext. Shorter keys are
// accepted unless strict validation is enabled; the mixer then space-fills
// the uncovered bytes of each ciphertext.
type Fixture struct {
	// Plaintext1 is the first known message.
	Plaintext1 string `json:"plaintext1" yaml:"plaintext1"`

	// Plaintext2 is the second known message.
	Plaintext2 string `json:"plaintext2" yaml:"plaintext2"`

	// Key is the stream key reused for both messages.
	Key string `json:"key" yaml:"key"`
}

// DefaultFixture returns the messages and key of the reference session.
func DefaultFixture() Fixture {
	return Fixture{
		Plaintext1: "Hello this is the first secret",
		Plaintext2: "this is another secret message",
		Key:        "supersecretmessagessupersecret",
	}
}

// IsZero reports whether no field of the fixture is set.
func (f Fixture) IsZero() bool {
	return f.Plaintext1 == "" && f.Plaintext2 == "" && f.Key == ""
}

// MaxPlaintextLen returns the length in bytes of the longer plaintext.
func (f Fixture) MaxPlaintextLen() int {
	return max(len(f.Plaintext1), len(f.Plaintext2))
}

// Fingerprint identifies a pair of ciphertexts without revealing them.
// It is the hex SHA3-256 digest over each vector prefixed by its bit length,
// so different splits of the same bits never collide.
func Fingerprint(ciphertexts ...BitVector) string {
	h := sha3.New256()
	var size [8]byte
	for _, c := range ciphertexts {
		binary.BigEndian.PutUint64(size[:], uint64(len(c)))
		_, _ = h.Write(size[:]) //nolint:errcheck // hash.Hash never returns an error
		_, _ = h.Write(c)       //nolint:errcheck // hash.Hash never returns an error
	}
	return hex.EncodeToString(h.Sum(nil))
}
