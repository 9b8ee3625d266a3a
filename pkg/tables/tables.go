// Package tables provides the precomputed roots of unity and modular
// inverses used by the complex and modular transforms.
//
// Roots for recursion length m are the m roots of x^m + 1, laid out in pairs
// [r, -r] such that roots(m)[2i]^2 == roots(m/2)[i]. Both domains derive them
// from a primitive 4096th root of unity psi, storing a root as an exponent of
// psi: the square root of psi^e is psi^(e/2) and its negation psi^(e+2048).
//
// The tables are built once, on first use, and are read-only afterwards.
package tables

import (
	"fmt"
	"math"
	"sync"

	"falcon-signer/pkg/field"
)

const (
	// MaxLogN is log2 of the largest supported recursion length.
	MaxLogN = 10

	// MaxN is the largest supported recursion length.
	MaxN = 1 << MaxLogN

	// order of psi in both domains; psi^(order/2) = -1
	order = 4096
)

var (
	once sync.Once

	// indexed by log2(m), entry 0 unused
	complexRoots [MaxLogN + 1][]complex128
	modRoots     [MaxLogN + 1][]uint32

	invModQ []uint32
)

func build() {
	if order > 1<<field.TwoAdicity {
		panic(fmt.Sprintf("tables: Q-1 has no element of order %d", order))
	}
	var psiQ [order]uint32
	g := field.PrimitiveRoot()
	w := field.Exp(g, (field.Q-1)/order)
	psiQ[0] = 1
	for e := 1; e < order; e++ {
		psiQ[e] = field.Mul(psiQ[e-1], w)
	}

	exps := []int{order / 4, 3 * order / 4}
	for logm := 1; logm <= MaxLogN; logm++ {
		if logm > 1 {
			next := make([]int, 0, 2*len(exps))
			for _, e := range exps {
				next = append(next, e/2, e/2+order/2)
			}
			exps = next
		}
		cr := make([]complex128, len(exps))
		mr := make([]uint32, len(exps))
		for i, e := range exps {
			sin, cos := math.Sincos(2 * math.Pi * float64(e) / order)
			cr[i] = complex(cos, sin)
			mr[i] = psiQ[e]
		}
		complexRoots[logm] = cr
		modRoots[logm] = mr
	}

	invModQ = make([]uint32, field.Q)
	for i := range invModQ {
		invModQ[i] = uint32(i)
	}
	field.BatchInv(invModQ)
}

func logOf(m int) int {
	if m < 2 || m > MaxN || m&(m-1) != 0 {
		panic(fmt.Sprintf("tables: unsupported length %d", m))
	}
	l := 0
	for 1<<l < m {
		l++
	}
	return l
}

// ComplexRoots returns the m complex roots of x^m + 1 in transform order.
// The returned slice is shared and must not be modified.
func ComplexRoots(m int) []complex128 {
	once.Do(build)
	return complexRoots[logOf(m)]
}

// ModRoots returns the m roots of x^m + 1 modulo Q in transform order.
// The returned slice is shared and must not be modified.
func ModRoots(m int) []uint32 {
	once.Do(build)
	return modRoots[logOf(m)]
}

// InvModQ returns the inverse of x modulo Q, and 0 for x == 0.
func InvModQ(x uint32) uint32 {
	once.Do(build)
	return invModQ[x%field.Q]
}

// SqrtMinusOne returns the square root of -1 mod Q used by the NTT base case.
func SqrtMinusOne() uint32 {
	return ModRoots(2)[0]
}
