// Package codec converts text to and from bit vectors.
//
// Text is treated as a sequence of single bytes. Each byte becomes 8 bits,
// most-significant bit first. Multi-byte character encodings are not
// interpreted: a UTF-8 rune simply contributes one group of 8 bits per byte.
package codec

import "github.com/nao1215/cribdrag/internal/model"

// Placeholder marks a byte of a rendered guess that is not yet known.
const Placeholder = '?'

// Encode returns the bits of text, 8 per byte, most-significant bit first.
// The empty string encodes to an empty vector.
func Encode(text string) model.BitVector {
	bits := make(model.BitVector, 0, len(text)*8)
	for i := 0; i < len(text); i++ {
		b := text[i]
		for shift := 7; shift >= 0; shift-- {
			bits = append(bits, (b>>shift)&1)
		}
	}
	return bits
}

// Decode groups bits into bytes and returns them as a string.
// A trailing group shorter than 8 bits is discarded. If fewer than
// referenceLength bytes were decoded, the result is padded with Placeholder
// up to referenceLength. The result is never truncated.
func Decode(bits model.BitVector, referenceLength int) string {
	n := bits.ByteLen()
	buf := make([]byte, 0, max(n, referenceLength))
	for i := 0; i < n; i++ {
		var b byte
		for _, bit := range bits[i*8 : i*8+8] {
			b = b<<1 | bit&1
		}
		buf = append(buf, b)
	}
	for len(buf) < referenceLength {
		buf = append(buf, Placeholder)
	}
	return string(buf)
}

// Display maps every byte of s to the character with that code point, so a
// decoded guess holding bytes 0x80..0xff prints as valid UTF-8. The result
// is for output only; its byte length differs from s when such bytes occur.
func Display(s string) string {
	runes := make([]rune, len(s))
	for i := 0; i < len(s); i++ {
		runes[i] = rune(s[i])
	}
	return string(runes)
}
