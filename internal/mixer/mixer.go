// Package mixer implements the XOR combination of bit vectors and the
// encryption of a fixture under its shared key.
//
// When the two inputs of XOR differ in length the output follows the
// length of the first input. Positions covered by both inputs are XORed.
// Positions of the first input beyond the end of the second are replaced,
// one whole byte at a time, by the bits of a space character; a remainder
// that does not fill a byte is dropped. This keeps every output aligned to
// byte boundaries and is never reported as an error.
package mixer

import (
	"github.com/nao1215/cribdrag/internal/codec"
	"github.com/nao1215/cribdrag/internal/model"
)

// spaceBlock is the bit pattern of ' ' (0x20).
var spaceBlock = [8]uint8{0, 0, 1, 0, 0, 0, 0, 0}

// XOR combines a and b bit by bit.
//
// The result has len(b) bits when a is at least as long as b, plus one
// space block for every full byte of a beyond len(b). When a is shorter
// than b the result has len(a) bits and the rest of b is ignored.
func XOR(a, b model.BitVector) model.BitVector {
	n := min(len(a), len(b))
	out := make(model.BitVector, n, n+(len(a)-n)/8*8)
	for i := 0; i < n; i++ {
		out[i] = a[i] ^ b[i]
	}
	for blocks := (len(a) - n) / 8; blocks > 0; blocks-- {
		out = append(out, spaceBlock[:]...)
	}
	return out
}

// Encrypt returns the ciphertexts of both fixture messages under the key.
func Encrypt(f model.Fixture) (ciphertext1, ciphertext2 model.BitVector) {
	key := codec.Encode(f.Key)
	return XOR(codec.Encode(f.Plaintext1), key), XOR(codec.Encode(f.Plaintext2), key)
}

// Combine XORs the two ciphertexts. For equal-length messages under one
// key, the key cancels and the result is plaintext1 XOR plaintext2.
func Combine(ciphertext1, ciphertext2 model.BitVector) model.BitVector {
	return XOR(ciphertext1, ciphertext2)
}

// Guess XORs a crib against the combined ciphertext. Where the crib lines
// up with one message, the result is the other message.
//
// An empty crib acts as all-zero bits: the combined ciphertext passes
// through unchanged.
func Guess(crib string, combined model.BitVector) model.BitVector {
	if crib == "" {
		return append(model.BitVector(nil), combined...)
	}
	return XOR(codec.Encode(crib), combined)
}
