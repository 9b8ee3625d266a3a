package fft

import "math/cmplx"

// Add returns a + b. Addition is the same in both domains.
func Add(a, b Poly) Poly {
	checkPair(a, b)
	r := make(Poly, len(a))
	for i := range a {
		r[i] = a[i] + b[i]
	}
	return r
}

// Sub returns a - b. Subtraction is the same in both domains.
func Sub(a, b Poly) Poly {
	checkPair(a, b)
	r := make(Poly, len(a))
	for i := range a {
		r[i] = a[i] - b[i]
	}
	return r
}

// Neg returns -a. Negation is the same in both domains.
func Neg(a Poly) Poly {
	r := make(Poly, len(a))
	for i := range a {
		r[i] = -a[i]
	}
	return r
}

// AddFFT adds two polynomials in FFT representation.
func AddFFT(a, b Poly) Poly { return Add(a, b) }

// SubFFT subtracts two polynomials in FFT representation.
func SubFFT(a, b Poly) Poly { return Sub(a, b) }

// NegFFT negates a polynomial in FFT representation.
func NegFFT(a Poly) Poly { return Neg(a) }

// MulFFT multiplies two polynomials in FFT representation.
func MulFFT(a, b Poly) Poly {
	checkPair(a, b)
	r := make(Poly, len(a))
	for i := range a {
		r[i] = a[i] * b[i]
	}
	return r
}

// DivFFT divides two polynomials in FFT representation. A zero coefficient
// of b yields an infinite or NaN result; callers divide by polynomials known
// to be invertible.
func DivFFT(a, b Poly) Poly {
	checkPair(a, b)
	r := make(Poly, len(a))
	for i := range a {
		r[i] = a[i] / b[i]
	}
	return r
}

// AdjFFT computes the adjoint of a polynomial in FFT representation.
func AdjFFT(a Poly) Poly {
	r := make(Poly, len(a))
	for i := range a {
		r[i] = cmplx.Conj(a[i])
	}
	return r
}

// Mul multiplies two polynomials in coefficient representation.
func Mul(a, b Poly) Poly {
	return IFFT(MulFFT(FFT(a), FFT(b)))
}

// Div divides two polynomials in coefficient representation.
func Div(a, b Poly) Poly {
	return IFFT(DivFFT(FFT(a), FFT(b)))
}

// Adj computes the adjoint of a polynomial in coefficient representation.
// For a real polynomial f, adj(f)(x) = f(1/x) mod (x^n + 1).
func Adj(a Poly) Poly {
	return IFFT(AdjFFT(FFT(a)))
}

// FromInts lifts integer coefficients to a complex polynomial.
func FromInts(f []int) Poly {
	r := make(Poly, len(f))
	for i, c := range f {
		r[i] = complex(float64(c), 0)
	}
	return r
}
