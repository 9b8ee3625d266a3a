// Package ldl implements the LDL tree over FFT-domain polynomials that
// drives fast Fourier sampling.
package ldl

import (
	"fmt"
	"math"

	"falcon-signer/pkg/fft"
)

// Tree is a node of an LDL tree. A branch holds the off-diagonal term L of
// an LDL decomposition and two exclusively owned children; a leaf holds a
// diagonal pair.
type Tree struct {
	L           fft.Poly
	Left, Right *Tree

	Pair [2]complex128

	// raw leaf variance, captured the first time the leaf is normalized
	variance   float64
	normalized bool
}

// NewBranch returns a branch node.
func NewBranch(l fft.Poly, left, right *Tree) *Tree {
	if left == nil || right == nil {
		panic("ldl: branch needs two children")
	}
	return &Tree{L: l, Left: left, Right: right}
}

// NewLeaf returns a leaf holding the diagonal pair [v0, v1].
func NewLeaf(v0, v1 complex128) *Tree {
	return &Tree{Pair: [2]complex128{v0, v1}}
}

// IsLeaf reports whether t is a leaf.
func (t *Tree) IsLeaf() bool {
	return t.Left == nil && t.Right == nil
}

// Normalize replaces every leaf [v0, v1] by [sigma/sqrt(real(v0)), 0],
// turning leaf variances into sampling standard deviations. Branches are
// walked but not modified.
//
// The variance of a leaf is remembered on its first normalization, so
// normalizing again recomputes from the original variance: the result only
// reflects the last sigma. Normalize must not run concurrently on one tree.
func (t *Tree) Normalize(sigma float64) {
	if !t.IsLeaf() {
		t.Left.Normalize(sigma)
		t.Right.Normalize(sigma)
		return
	}
	if !t.normalized {
		t.variance = real(t.Pair[0])
		t.normalized = true
	}
	t.Pair = [2]complex128{complex(sigma/math.Sqrt(t.variance), 0), 0}
}

// Leaves returns the leaves from left to right.
func (t *Tree) Leaves() []*Tree {
	if t.IsLeaf() {
		return []*Tree{t}
	}
	return append(t.Left.Leaves(), t.Right.Leaves()...)
}

// Depth returns the number of branch levels above the leaves.
func (t *Tree) Depth() int {
	if t.IsLeaf() {
		return 0
	}
	return 1 + t.Left.Depth()
}

// FromGram builds the LDL tree of the self-adjoint 2x2 Gram matrix
// [[g00, g01], [adj(g01), g11]] given in FFT representation.
func FromGram(g00, g01, g11 fft.Poly) *Tree {
	n := len(g00)
	if len(g01) != n || len(g11) != n {
		panic(fmt.Sprintf("ldl: gram lengths %d, %d, %d", n, len(g01), len(g11)))
	}
	l10, d00, d11 := decompose(g00, g01, g11)
	if n == 2 {
		return NewBranch(l10, NewLeaf(d00[0], d00[1]), NewLeaf(d11[0], d11[1]))
	}
	d00a, d00b := fft.SplitFFT(d00)
	d11a, d11b := fft.SplitFFT(d11)
	return NewBranch(l10,
		FromGram(d00a, d00b, d00a),
		FromGram(d11a, d11b, d11a))
}

// decompose computes G = L D L* with L = [[1, 0], [l10, 1]] and
// D = diag(d00, d11).
func decompose(g00, g01, g11 fft.Poly) (l10, d00, d11 fft.Poly) {
	g10 := fft.AdjFFT(g01)
	l10 = fft.DivFFT(g10, g00)
	d00 = g00
	d11 = fft.SubFFT(g11, fft.MulFFT(fft.MulFFT(l10, fft.AdjFFT(l10)), g00))
	return l10, d00, d11
}
