// Package ntt implements the number-theoretic transform over
// Z_Q[x]/(x^n+1), Q = 12289.
//
// The transform has the same recursive shape as the complex one in package
// fft: split into even and odd halves, transform each, and merge with the
// roots from tables.ModRoots. All arithmetic is exact.
package ntt

import (
	"fmt"

	"falcon-signer/pkg/field"
	"falcon-signer/pkg/poly"
	"falcon-signer/pkg/tables"
)

// Poly is a ring element with coefficients in [0, Q), in either domain.
type Poly []uint32

// NTT computes the Number Theoretic Transform of f.
// Input: coefficients in standard order.
// Output: evaluations at tables.ModRoots(len(f)).
func NTT(f Poly) Poly {
	n := len(f)
	checkLen(n)
	if n == 2 {
		t := field.Mul(tables.SqrtMinusOne(), f[1])
		return Poly{field.Add(f[0], t), field.Sub(f[0], t)}
	}
	f0, f1 := poly.Split(f)
	return MergeNTT(NTT(f0), NTT(f1))
}

// INTT computes the inverse Number Theoretic Transform of F.
func INTT(F Poly) Poly {
	n := len(F)
	checkLen(n)
	if n == 2 {
		invS := tables.InvModQ(tables.SqrtMinusOne())
		return Poly{
			field.Mul(field.Inv2, field.Add(F[0], F[1])),
			field.Mul(field.Mul(field.Inv2, invS), field.Sub(F[0], F[1])),
		}
	}
	F0, F1 := SplitNTT(F)
	return poly.Merge(INTT(F0), INTT(F1))
}

// SplitNTT maps the transform of f to the transforms of f0 and f1, where
// f(x) = f0(x^2) + x*f1(x^2).
func SplitNTT(F Poly) (F0, F1 Poly) {
	n := len(F)
	checkLen(n)
	w := tables.ModRoots(n)
	F0 = make(Poly, n/2)
	F1 = make(Poly, n/2)
	for i := 0; i < n/2; i++ {
		F0[i] = field.Mul(field.Inv2, field.Add(F[2*i], F[2*i+1]))
		d := field.Mul(field.Inv2, field.Sub(F[2*i], F[2*i+1]))
		F1[i] = field.Mul(d, tables.InvModQ(w[2*i]))
	}
	return F0, F1
}

// MergeNTT is the inverse of SplitNTT.
func MergeNTT(F0, F1 Poly) Poly {
	if len(F0) != len(F1) {
		panic(fmt.Sprintf("ntt: merge of lengths %d and %d", len(F0), len(F1)))
	}
	n := 2 * len(F0)
	w := tables.ModRoots(n)
	F := make(Poly, n)
	for i := 0; i < n/2; i++ {
		t := field.Mul(w[2*i], F1[i])
		F[2*i] = field.Add(F0[i], t)
		F[2*i+1] = field.Sub(F0[i], t)
	}
	return F
}

func checkLen(n int) {
	if !poly.IsPowerOfTwo(n) || n > tables.MaxN {
		panic(fmt.Sprintf("ntt: unsupported length %d", n))
	}
}

func checkPair(a, b Poly) {
	if len(a) != len(b) {
		panic(fmt.Sprintf("ntt: length mismatch %d != %d", len(a), len(b)))
	}
}
