// Package field provides finite field arithmetic for the Falcon kernel.
//
// The field is Z_Q where Q = 12*1024 + 1 = 12289.
package field

const (
	// Q is the prime modulus: 12*1024 + 1
	Q = 12289

	// Inv2 is the modular inverse of 2: (Q+1)/2
	Inv2 = 6145

	// TwoAdicity is the exponent of the largest power of two dividing Q-1
	// (Q-1 = 2^12 * 3), which bounds the NTT length at 2^11.
	TwoAdicity = 12
)

// Mod returns x mod Q, handling negative values correctly.
func Mod(x int64) uint32 {
	x = x % Q
	if x < 0 {
		x += Q
	}
	return uint32(x)
}

// Add returns (a + b) mod Q.
func Add(a, b uint32) uint32 {
	sum := a + b
	if sum >= Q {
		sum -= Q
	}
	return sum
}

// Sub returns (a - b) mod Q.
func Sub(a, b uint32) uint32 {
	if a >= b {
		return a - b
	}
	return Q - b + a
}

// Mul returns (a * b) mod Q. Both inputs must be reduced; the product of
// two residues fits in 28 bits.
func Mul(a, b uint32) uint32 {
	return (a * b) % Q
}

// Neg returns (-a) mod Q = Q - a for a != 0.
func Neg(a uint32) uint32 {
	if a == 0 {
		return 0
	}
	return Q - a
}

// Exp returns a^e mod Q using binary exponentiation.
func Exp(a uint32, e uint32) uint32 {
	result := uint32(1)
	base := a % Q
	for e > 0 {
		if e&1 == 1 {
			result = Mul(result, base)
		}
		base = Mul(base, base)
		e >>= 1
	}
	return result
}

// Inv returns the modular inverse of a using Fermat's little theorem: a^(Q-2) mod Q.
func Inv(a uint32) uint32 {
	if a == 0 {
		return 0 // Undefined, but 0 is safe return
	}
	return Exp(a, Q-2)
}

// BatchInv computes the modular inverse of each element in place.
// Uses Montgomery's trick: n inversions with 1 inversion + 3(n-1) multiplications.
// Elements that are 0 remain 0 (since 0^(-1) is undefined, we treat it as 0).
func BatchInv(xs []uint32) {
	n := len(xs)
	if n == 0 {
		return
	}

	// prods[i] = xs[0] * ... * xs[i], zeros counted as 1
	prods := make([]uint32, n)
	prods[0] = xs[0]
	if prods[0] == 0 {
		prods[0] = 1
	}
	for i := 1; i < n; i++ {
		if xs[i] == 0 {
			prods[i] = prods[i-1]
		} else {
			prods[i] = Mul(prods[i-1], xs[i])
		}
	}

	inv := Inv(prods[n-1])

	for i := n - 1; i > 0; i-- {
		if xs[i] == 0 {
			continue
		}
		oldXi := xs[i]
		xs[i] = Mul(inv, prods[i-1])
		inv = Mul(inv, oldXi)
	}
	if xs[0] != 0 {
		xs[0] = inv
	}
}

// PrimitiveRoot returns the smallest generator of the multiplicative group.
func PrimitiveRoot() uint32 {
	// Q-1 = 2^12 * 3: g generates iff g^((Q-1)/2) != 1 and g^((Q-1)/3) != 1.
	for g := uint32(2); g < Q; g++ {
		if Exp(g, (Q-1)/2) != 1 && Exp(g, (Q-1)/3) != 1 {
			return g
		}
	}
	panic("field: no primitive root")
}

// Center maps a residue to its representative in (-Q/2, Q/2].
func Center(a uint32) int32 {
	if a > Q/2 {
		return int32(a) - Q
	}
	return int32(a)
}
