// Package fft implements the complex Fourier transform over C[x]/(x^n+1).
//
// The transform of f is the vector of its evaluations at the n roots of
// x^n + 1, ordered as in tables.ComplexRoots(n). Multiplication, division and
// adjoint are pointwise in that domain, so Mul is negacyclic convolution up to
// floating-point rounding.
package fft

import (
	"fmt"
	"math/cmplx"

	"falcon-signer/pkg/poly"
	"falcon-signer/pkg/tables"
)

// Poly is a ring element over the complex numbers, in either domain.
type Poly []complex128

// FFT computes the Fourier transform of f.
func FFT(f Poly) Poly {
	n := len(f)
	checkLen(n)
	if n == 2 {
		return Poly{f[0] + 1i*f[1], f[0] - 1i*f[1]}
	}
	f0, f1 := poly.Split(f)
	return MergeFFT(FFT(f0), FFT(f1))
}

// IFFT computes the inverse Fourier transform of F.
func IFFT(F Poly) Poly {
	n := len(F)
	checkLen(n)
	if n == 2 {
		return Poly{(F[0] + F[1]) / 2, (F[0] - F[1]) * -0.5i}
	}
	F0, F1 := SplitFFT(F)
	return poly.Merge(IFFT(F0), IFFT(F1))
}

// SplitFFT maps the transform of f to the transforms of f0 and f1, where
// f(x) = f0(x^2) + x*f1(x^2).
func SplitFFT(F Poly) (F0, F1 Poly) {
	n := len(F)
	checkLen(n)
	w := tables.ComplexRoots(n)
	F0 = make(Poly, n/2)
	F1 = make(Poly, n/2)
	for i := 0; i < n/2; i++ {
		F0[i] = 0.5 * (F[2*i] + F[2*i+1])
		F1[i] = 0.5 * (F[2*i] - F[2*i+1]) * cmplx.Conj(w[2*i])
	}
	return F0, F1
}

// MergeFFT is the inverse of SplitFFT.
func MergeFFT(F0, F1 Poly) Poly {
	if len(F0) != len(F1) {
		panic(fmt.Sprintf("fft: merge of lengths %d and %d", len(F0), len(F1)))
	}
	n := 2 * len(F0)
	w := tables.ComplexRoots(n)
	F := make(Poly, n)
	for i := 0; i < n/2; i++ {
		t := w[2*i] * F1[i]
		F[2*i] = F0[i] + t
		F[2*i+1] = F0[i] - t
	}
	return F
}

func checkLen(n int) {
	if !poly.IsPowerOfTwo(n) || n > tables.MaxN {
		panic(fmt.Sprintf("fft: unsupported length %d", n))
	}
}

func checkPair(a, b Poly) {
	if len(a) != len(b) {
		panic(fmt.Sprintf("fft: length mismatch %d != %d", len(a), len(b)))
	}
}
