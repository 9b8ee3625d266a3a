package ntt

import (
	"github.com/tuneinsight/lattigo/v4/ring"

	"falcon-signer/pkg/field"
)

// NewLattigoRing builds a single-modulus lattigo ring for Z_Q[x]/(x^n+1).
func NewLattigoRing(n int) (*ring.Ring, error) {
	checkLen(n)
	return ring.NewRing(n, []uint64{field.Q})
}

// ToLattigo copies coefficient-domain f into a new lattigo polynomial.
func ToLattigo(r *ring.Ring, f Poly) *ring.Poly {
	p := r.NewPoly()
	for i, c := range f {
		p.Coeffs[0][i] = uint64(c)
	}
	return p
}

// FromLattigo copies the first limb of p back into a Poly.
func FromLattigo(p *ring.Poly) Poly {
	f := make(Poly, len(p.Coeffs[0]))
	for i, c := range p.Coeffs[0] {
		f[i] = uint32(c % field.Q)
	}
	return f
}

// MulLattigo multiplies a and b in coefficient representation through
// lattigo's Montgomery NTT. It agrees with Mul and lets callers holding
// lattigo polynomials stay in that representation.
func MulLattigo(r *ring.Ring, a, b Poly) Poly {
	checkPair(a, b)
	pa := ToLattigo(r, a)
	pb := ToLattigo(r, b)
	r.MForm(pa, pa)
	r.MForm(pb, pb)
	r.NTT(pa, pa)
	r.NTT(pb, pb)
	res := r.NewPoly()
	r.MulCoeffsMontgomery(pa, pb, res)
	r.InvNTT(res, res)
	r.InvMForm(res, res)
	return FromLattigo(res)
}
