package ntt

import (
	"github.com/pkg/errors"

	"falcon-signer/pkg/field"
	"falcon-signer/pkg/tables"
)

// ErrNoInverse is returned when dividing by a polynomial that has a zero
// coefficient in NTT representation.
var ErrNoInverse = errors.New("ntt: divisor has no inverse")

// Add computes a + b componentwise. Addition is the same in both domains.
func Add(a, b Poly) Poly {
	checkPair(a, b)
	r := make(Poly, len(a))
	for i := range a {
		r[i] = field.Add(a[i], b[i])
	}
	return r
}

// Sub computes a - b componentwise.
func Sub(a, b Poly) Poly {
	checkPair(a, b)
	r := make(Poly, len(a))
	for i := range a {
		r[i] = field.Sub(a[i], b[i])
	}
	return r
}

// Neg computes -a componentwise.
func Neg(a Poly) Poly {
	r := make(Poly, len(a))
	for i := range a {
		r[i] = field.Neg(a[i])
	}
	return r
}

// AddNTT adds two polynomials in NTT representation.
func AddNTT(a, b Poly) Poly { return Add(a, b) }

// SubNTT subtracts two polynomials in NTT representation.
func SubNTT(a, b Poly) Poly { return Sub(a, b) }

// NegNTT negates a polynomial in NTT representation.
func NegNTT(a Poly) Poly { return Neg(a) }

// MulNTT performs componentwise multiplication of two polynomials in NTT domain.
func MulNTT(a, b Poly) Poly {
	checkPair(a, b)
	r := make(Poly, len(a))
	for i := range a {
		r[i] = field.Mul(a[i], b[i])
	}
	return r
}

// DivNTT performs componentwise division in NTT domain. It fails with
// ErrNoInverse if any coefficient of b is zero.
func DivNTT(a, b Poly) (Poly, error) {
	checkPair(a, b)
	r := make(Poly, len(a))
	for i := range a {
		if b[i] == 0 {
			return nil, errors.Wrapf(ErrNoInverse, "zero at NTT index %d", i)
		}
		r[i] = field.Mul(a[i], tables.InvModQ(b[i]))
	}
	return r, nil
}

// Mul multiplies two polynomials in coefficient representation.
func Mul(a, b Poly) Poly {
	return INTT(MulNTT(NTT(a), NTT(b)))
}

// Div divides a by b in coefficient representation. It fails with
// ErrNoInverse if b is not invertible mod (x^n + 1, Q).
func Div(a, b Poly) (Poly, error) {
	q, err := DivNTT(NTT(a), NTT(b))
	if err != nil {
		return nil, err
	}
	return INTT(q), nil
}

// IsInvertible reports whether f has an inverse mod (x^n + 1, Q).
func IsInvertible(f Poly) bool {
	for _, c := range NTT(f) {
		if c == 0 {
			return false
		}
	}
	return true
}

// FromInts reduces signed integer coefficients mod Q.
func FromInts(f []int) Poly {
	r := make(Poly, len(f))
	for i, c := range f {
		r[i] = field.Mod(int64(c))
	}
	return r
}
