package tables

import (
	"math"
	"math/cmplx"
	"sync"
	"testing"

	"falcon-signer/pkg/field"
)

func TestLevelTwo(t *testing.T) {
	cr := ComplexRoots(2)
	if cmplx.Abs(cr[0]-1i) > 1e-15 || cmplx.Abs(cr[1]+1i) > 1e-15 {
		t.Errorf("ComplexRoots(2) = %v, want [i, -i]", cr)
	}
	s := SqrtMinusOne()
	if field.Mul(s, s) != field.Q-1 {
		t.Errorf("SqrtMinusOne()^2 = %d, want Q-1", field.Mul(s, s))
	}
	if mr := ModRoots(2); mr[1] != field.Neg(mr[0]) {
		t.Errorf("ModRoots(2) = %v, want [s, -s]", mr)
	}
}

// Each root at length m squares to the root it was expanded from.
func TestRootsSquareToParent(t *testing.T) {
	for m := 4; m <= MaxN; m *= 2 {
		cr, parentC := ComplexRoots(m), ComplexRoots(m/2)
		mr, parentM := ModRoots(m), ModRoots(m/2)
		if len(cr) != m || len(mr) != m {
			t.Fatalf("length %d tables have %d/%d entries", m, len(cr), len(mr))
		}
		for i := 0; i < m/2; i++ {
			if cmplx.Abs(cr[2*i]*cr[2*i]-parentC[i]) > 1e-12 {
				t.Errorf("complex m=%d: roots[%d]^2 != parent[%d]", m, 2*i, i)
			}
			if cmplx.Abs(cr[2*i+1]+cr[2*i]) > 1e-12 {
				t.Errorf("complex m=%d: roots[%d] != -roots[%d]", m, 2*i+1, 2*i)
			}
			if field.Mul(mr[2*i], mr[2*i]) != parentM[i] {
				t.Errorf("mod m=%d: roots[%d]^2 != parent[%d]", m, 2*i, i)
			}
			if mr[2*i+1] != field.Neg(mr[2*i]) {
				t.Errorf("mod m=%d: roots[%d] != -roots[%d]", m, 2*i+1, 2*i)
			}
		}
	}
}

// Every root at length m is a root of x^m + 1 and the roots are distinct.
func TestRootsOfCyclotomic(t *testing.T) {
	for _, m := range []int{2, 8, 64, 512, 1024} {
		seen := make(map[uint32]bool, m)
		for i, r := range ModRoots(m) {
			if field.Exp(r, uint32(m)) != field.Q-1 {
				t.Errorf("mod m=%d: roots[%d]^m != -1", m, i)
			}
			if seen[r] {
				t.Errorf("mod m=%d: duplicate root %d", m, r)
			}
			seen[r] = true
		}
		for i, r := range ComplexRoots(m) {
			if cmplx.Abs(cmplx.Pow(r, complex(float64(m), 0))+1) > 1e-9 {
				t.Errorf("complex m=%d: roots[%d]^m != -1", m, i)
			}
			if math.Abs(cmplx.Abs(r)-1) > 1e-15 {
				t.Errorf("complex m=%d: |roots[%d]| != 1", m, i)
			}
		}
	}
}

func TestInvModQ(t *testing.T) {
	if InvModQ(0) != 0 {
		t.Errorf("InvModQ(0) = %d, want 0", InvModQ(0))
	}
	for x := uint32(1); x < field.Q; x++ {
		if field.Mul(x, InvModQ(x)) != 1 {
			t.Fatalf("InvModQ(%d) = %d is not an inverse", x, InvModQ(x))
		}
	}
}

func TestUnsupportedLengthPanics(t *testing.T) {
	for _, m := range []int{0, 1, 3, 6, 2 * MaxN} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("ComplexRoots(%d) did not panic", m)
				}
			}()
			ComplexRoots(m)
		}()
	}
}

// Concurrent first use must observe one fully built table set.
func TestConcurrentAccess(t *testing.T) {
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := 2; m <= MaxN; m *= 2 {
				if len(ModRoots(m)) != m || len(ComplexRoots(m)) != m {
					t.Errorf("length %d table incomplete", m)
				}
			}
		}()
	}
	wg.Wait()
}

// The root tower needs an element of order 4*MaxN modulo Q.
func TestOrderFitsField(t *testing.T) {
	if order != 4*MaxN {
		t.Errorf("order = %d, want 4*MaxN = %d", order, 4*MaxN)
	}
	if order > 1<<field.TwoAdicity || (field.Q-1)%order != 0 {
		t.Errorf("order %d does not divide Q-1 = %d", order, field.Q-1)
	}
}
