// Package poly provides ring element helpers shared by both transforms.
//
// A ring element is a coefficient slice whose index i holds the coefficient
// of x^i in Z[x]/(x^n+1) or Z_Q[x]/(x^n+1).
package poly

import (
	"fmt"

	"falcon-signer/pkg/field"
)

// Split deinterleaves f into its even- and odd-indexed coefficients, so that
// f(x) = f0(x^2) + x*f1(x^2).
func Split[T any](f []T) (f0, f1 []T) {
	if len(f)%2 != 0 {
		panic(fmt.Sprintf("poly: split of odd length %d", len(f)))
	}
	half := len(f) / 2
	f0 = make([]T, half)
	f1 = make([]T, half)
	for i := 0; i < half; i++ {
		f0[i] = f[2*i]
		f1[i] = f[2*i+1]
	}
	return f0, f1
}

// Merge interleaves f0 and f1, then appends whatever remains of the longer
// one. It is the inverse of Split for equal lengths.
func Merge[T any](f0, f1 []T) []T {
	f := make([]T, 0, len(f0)+len(f1))
	i := 0
	for ; i < len(f0) && i < len(f1); i++ {
		f = append(f, f0[i], f1[i])
	}
	f = append(f, f0[i:]...)
	f = append(f, f1[i:]...)
	return f
}

// IsPowerOfTwo reports whether n is a power of two no smaller than 2.
func IsPowerOfTwo(n int) bool {
	return n >= 2 && n&(n-1) == 0
}

// SchoolbookMul computes a * b mod (x^n + 1, Q) by direct convolution.
func SchoolbookMul(a, b []uint32) []uint32 {
	n := len(a)
	if len(b) != n {
		panic("poly: length mismatch")
	}
	s := make([]int64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			p := int64(a[i]) * int64(b[j])
			// x^n = -1
			if i+j < n {
				s[i+j] += p
			} else {
				s[i+j-n] -= p
			}
		}
	}
	r := make([]uint32, n)
	for i := range s {
		r[i] = field.Mod(s[i])
	}
	return r
}

// SchoolbookMulComplex computes a * b mod (x^n + 1) over the complex numbers
// by direct convolution.
func SchoolbookMulComplex(a, b []complex128) []complex128 {
	n := len(a)
	if len(b) != n {
		panic("poly: length mismatch")
	}
	r := make([]complex128, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i+j < n {
				r[i+j] += a[i] * b[j]
			} else {
				r[i+j-n] -= a[i] * b[j]
			}
		}
	}
	return r
}

// Center maps residues to their representatives in (-Q/2, Q/2].
func Center(f []uint32) []int {
	r := make([]int, len(f))
	for i, c := range f {
		r[i] = int(field.Center(c))
	}
	return r
}

// SqNorm returns the squared Euclidean norm of the concatenation of vs.
func SqNorm(vs ...[]int) int64 {
	var s int64
	for _, v := range vs {
		for _, c := range v {
			s += int64(c) * int64(c)
		}
	}
	return s
}
