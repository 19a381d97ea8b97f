package hmi

import "math/bits"

// wordBits is the number of bits per bitset word.
const wordBits = 64

// bitset is a fixed-capacity bit vector packed into 64-bit words. All bitsets
// produced by one engine share the same word length, so the element-wise
// operations below assume equal lengths.
type bitset []uint64

// newBitset returns a zeroed bitset able to hold n bits.
func newBitset(n int) bitset {
	return make(bitset, (n+wordBits-1)/wordBits)
}

// set marks bit i.
func (b bitset) set(i int) {
	b[i/wordBits] |= 1 << (i % wordBits)
}

// and returns a new bitset holding the intersection of b and other.
func (b bitset) and(other bitset) bitset {
	out := make(bitset, len(b))
	for i := range b {
		out[i] = b[i] & other[i]
	}

	return out
}

// count returns the number of set bits.
func (b bitset) count() int {
	total := 0
	for _, w := range b {
		total += bits.OnesCount64(w)
	}

	return total
}

// andCount returns the number of set bits in the intersection of b and other,
// without allocating.
func (b bitset) andCount(other bitset) int {
	total := 0
	for i := range b {
		total += bits.OnesCount64(b[i] & other[i])
	}

	return total
}
