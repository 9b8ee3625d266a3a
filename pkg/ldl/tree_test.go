package ldl

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"falcon-signer/pkg/fft"
)

func randomFFT(r *rand.Rand, n int) fft.Poly {
	f := make(fft.Poly, n)
	for i := range f {
		f[i] = complex(float64(r.Intn(41)-20), 0)
	}
	return fft.FFT(f)
}

// gram returns B*adj(B) for the basis [[a, b], [c, d]].
func gram(a, b, c, d fft.Poly) (g00, g01, g11 fft.Poly) {
	g00 = fft.AddFFT(fft.MulFFT(a, fft.AdjFFT(a)), fft.MulFFT(b, fft.AdjFFT(b)))
	g01 = fft.AddFFT(fft.MulFFT(a, fft.AdjFFT(c)), fft.MulFFT(b, fft.AdjFFT(d)))
	g11 = fft.AddFFT(fft.MulFFT(c, fft.AdjFFT(c)), fft.MulFFT(d, fft.AdjFFT(d)))
	return
}

func randomTree(t *testing.T, n int) (*Tree, [3]fft.Poly) {
	t.Helper()
	r := rand.New(rand.NewSource(int64(n)))
	g00, g01, g11 := gram(randomFFT(r, n), randomFFT(r, n), randomFFT(r, n), randomFFT(r, n))
	return FromGram(g00, g01, g11), [3]fft.Poly{g00, g01, g11}
}

func TestFromGramShape(t *testing.T) {
	for _, n := range []int{2, 4, 64, 512} {
		tree, _ := randomTree(t, n)
		require.Len(t, tree.Leaves(), n, "n=%d", n)
		require.Equal(t, int(math.Log2(float64(n))), tree.Depth(), "n=%d", n)
		require.Len(t, tree.L, n)
	}
}

func TestFromGramDecomposition(t *testing.T) {
	tree, g := randomTree(t, 32)
	// l10 * g00 = adj(g01)
	lhs := fft.MulFFT(tree.L, g[0])
	rhs := fft.AdjFFT(g[1])
	for i := range lhs {
		require.InDelta(t, 0, cmplx.Abs(lhs[i]-rhs[i]), 1e-6, "index %d", i)
	}
}

// A positive definite Gram matrix has positive real leaf variances.
func TestLeafVariancesPositive(t *testing.T) {
	tree, _ := randomTree(t, 128)
	for i, leaf := range tree.Leaves() {
		require.Greater(t, real(leaf.Pair[0]), 0.0, "leaf %d", i)
		require.InDelta(t, 0, imag(leaf.Pair[0]), 1e-6, "leaf %d", i)
	}
}

func TestNormalize(t *testing.T) {
	tree := NewBranch(fft.Poly{1, 2},
		NewLeaf(4, 7),
		NewBranch(fft.Poly{3, 4}, NewLeaf(16, 1), NewLeaf(complex(25, 3), 2)))
	tree.Normalize(2)

	want := []float64{1, 0.5, 0.4}
	for i, leaf := range tree.Leaves() {
		require.InDelta(t, want[i], real(leaf.Pair[0]), 1e-12, "leaf %d", i)
		require.Equal(t, complex128(0), leaf.Pair[1], "leaf %d", i)
	}
	// branches untouched
	require.Equal(t, fft.Poly{1, 2}, tree.L)
	require.Equal(t, fft.Poly{3, 4}, tree.Right.L)
}

// Normalizing again only reflects the last sigma.
func TestNormalizeTwice(t *testing.T) {
	a, _ := randomTree(t, 64)
	b, _ := randomTree(t, 64)

	a.Normalize(1.5)
	a.Normalize(1.5)
	b.Normalize(1.5)
	for i, leaf := range a.Leaves() {
		require.Equal(t, b.Leaves()[i].Pair, leaf.Pair, "idempotent leaf %d", i)
	}

	a.Normalize(3)
	c, _ := randomTree(t, 64)
	c.Normalize(3)
	for i, leaf := range a.Leaves() {
		require.Equal(t, c.Leaves()[i].Pair, leaf.Pair, "last sigma leaf %d", i)
	}
}

func TestBranchNeedsChildren(t *testing.T) {
	require.Panics(t, func() { NewBranch(fft.Poly{1, 2}, NewLeaf(1, 0), nil) })
}
