package poly

import (
	"falcon-signer/pkg/field"
	"falcon-signer/pkg/hash"
)

// hashBound is K*Q with K = floor(2^16 / Q); 16-bit candidates at or above it
// are rejected so that value mod Q is unbiased.
const hashBound = (1 << 16) / field.Q * field.Q

// HashToPoint derives a ring element of length n with coefficients in [0, Q)
// from SHAKE-256(salt || message). Each candidate is two output bytes read
// big-endian.
//
// A candidate is accepted with probability 61445/65536 (about 0.9376), so the
// loop reads about 1.07 candidates per coefficient on average. It has no fixed
// bound; running k candidates past the expected count has probability
// decaying geometrically in k.
func HashToPoint(message, salt []byte, n int) []uint32 {
	out, _ := hashToPoint(message, salt, n)
	return out
}

// hashToPoint also returns the number of candidates drawn.
func hashToPoint(message, salt []byte, n int) ([]uint32, int) {
	xof := hash.NewStreamingXOF256(salt, message)
	out := make([]uint32, n)
	draws := 0
	for i := 0; i < n; draws++ {
		b0, b1 := xof.Read2()
		elt := uint32(b0)<<8 | uint32(b1)
		if elt < hashBound {
			out[i] = elt % field.Q
			i++
		}
	}
	return out, draws
}
