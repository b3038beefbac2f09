package model

// BitVector is an ordered sequence of bits, one element per bit.
// Every element is either 0 or 1. A vector derived from text always has a
// length that is a multiple of 8, most-significant bit of each byte first.
type BitVector []uint8

// ByteLen returns the number of complete 8-bit groups in the vector.
// Trailing bits that do not fill a byte are not counted.
func (v BitVector) ByteLen() int {
	return len(v) / 8
}

// Equal reports whether v and other hold the same bits in the same order.
func (v BitVector) Equal(other BitVector) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if v[i] != other[i] {
			return false
		}
	}
	return true
}

// Slice returns the bits covering bytes [from, to) of the vector.
// The returned vector shares storage with v.
func (v BitVector) Slice(from, to int) BitVector {
	return v[from*8 : to*8]
}
