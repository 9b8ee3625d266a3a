// Package sampling provides the discrete Gaussian sampler used for
// trapdoor sampling.
//
// All functions draw randomness from an io.Reader, which must be a
// cryptographically secure source (see package rng). Each rejection
// iteration of SamplerZ consumes exactly IterationBytes bytes.
package sampling

import (
	"encoding/binary"
	"io"
	"math"
	"math/bits"

	"github.com/pkg/errors"
)

const (
	// SigmaMax is the standard deviation of the base half-Gaussian.
	SigmaMax = 1.8205

	// IterationBytes is the randomness consumed by one SamplerZ iteration:
	// 9 for the base sampler, 1 for the sign bit, 7 for the Bernoulli test.
	IterationBytes = 9 + 1 + 7

	ln2    = 0.69314718055994530941
	invLn2 = 1.44269504088896340736
)

var (
	// ErrInvalidSigma is returned when sigma or sigmin is outside
	// 0 < sigmin <= sigma <= SigmaMax.
	ErrInvalidSigma = errors.New("sampling: invalid standard deviation")

	// ErrInvalidMean is returned for a mean that is not a finite value
	// representable after flooring.
	ErrInvalidMean = errors.New("sampling: invalid mean")
)

// inv2SigmaMax2 = 1 / (2 * SigmaMax^2)
var inv2SigmaMax2 = 1 / (2 * SigmaMax * SigmaMax)

// Reverse cumulative distribution of the base half-Gaussian, expressed in
// base 2^24 (three limbs per 72-bit entry, most significant first).
var rcdtLimbs = [...]uint32{
	10745844, 3068844, 3741698,
	5559083, 1580863, 8248194,
	2260429, 13669192, 2736639,
	708981, 4421575, 10046180,
	169348, 7122675, 4136815,
	30538, 13063405, 7650655,
	4132, 14505003, 7826148,
	417, 16768101, 11363290,
	31, 8444042, 8086568,
	1, 12844466, 265321,
	0, 1232676, 13644283,
	0, 38047, 9111839,
	0, 870, 6138264,
	0, 14, 12545723,
	0, 0, 3104126,
	0, 0, 28824,
	0, 0, 198,
	0, 0, 1,
}

// u72 is a 72-bit unsigned value.
type u72 struct {
	hi uint64 // top 8 bits
	lo uint64
}

var rcdt = func() [len(rcdtLimbs) / 3]u72 {
	var t [len(rcdtLimbs) / 3]u72
	for i := range t {
		l0, l1, l2 := uint64(rcdtLimbs[3*i]), uint64(rcdtLimbs[3*i+1]), uint64(rcdtLimbs[3*i+2])
		t[i] = u72{hi: l0 >> 16, lo: (l0&0xFFFF)<<48 | l1<<24 | l2}
	}
	return t
}()

// Coefficients of the polynomial approximation of exp(-x), scaled by 2^63,
// highest degree first (FACCT).
var expCoeffs = [13]uint64{
	0x00000004741183A3,
	0x00000036548CFC06,
	0x0000024FDCBF140A,
	0x0000171D939DE045,
	0x0000D00CF58F6F84,
	0x000680681CF796E3,
	0x002D82D8305B0FEA,
	0x011111110E066FD0,
	0x0555555555070F00,
	0x155555555581FF00,
	0x400000000002B400,
	0x7FFFFFFFFFFF4800,
	0x8000000000000000,
}

// BaseSampler reads 9 bytes as a little-endian 72-bit value u and returns
// the number of RCDT entries strictly greater than u. The result follows a
// half-Gaussian of standard deviation SigmaMax; it lies in [0, 17] except
// for u == 0 (probability 2^-72), where all 18 entries exceed u.
//
// The whole table is always scanned.
func BaseSampler(rnd io.Reader) (int, error) {
	var buf [9]byte
	if _, err := io.ReadFull(rnd, buf[:]); err != nil {
		return 0, errors.Wrap(err, "sampling: read base sample")
	}
	u := u72{hi: uint64(buf[8]), lo: binary.LittleEndian.Uint64(buf[:8])}
	z := 0
	for _, e := range rcdt {
		// borrow out of u - e is 1 iff u < e
		_, b := bits.Sub64(u.lo, e.lo, 0)
		_, b = bits.Sub64(u.hi, e.hi, b)
		z += int(b)
	}
	return z, nil
}

// ApproxExp returns an approximation of ccs * exp(-x) * 2^63 for
// 0 <= x < ln(2) and 0 <= ccs <= 1. Every Horner step multiplies to 128
// bits and keeps bits 63..126.
func ApproxExp(x, ccs float64) uint64 {
	y := expCoeffs[0]
	z := uint64(x * (1 << 63))
	for _, c := range expCoeffs[1:] {
		hi, lo := bits.Mul64(z, y)
		y = c - (hi<<1 | lo>>63)
	}
	w := uint64(ccs * (1 << 63))
	hi, lo := bits.Mul64(w, y)
	return hi<<1 | lo>>63
}

// BerExp returns true with probability close to ccs * exp(-x), for x >= 0.
//
// With x = s*ln(2) + r, the probability ApproxExp(r, ccs) / 2^s is brought to
// a 2^64 scale as p = (2*ApproxExp - 1) >> s (s capped at 63). Seven random
// bytes are then compared with the seven most significant bytes of p, most
// significant first; the first differing byte decides and a full match
// rejects. The least significant byte of p does not take part, which biases
// the acceptance probability down by less than 2^-56.
func BerExp(x, ccs float64, rnd io.Reader) (bool, error) {
	var buf [7]byte
	if _, err := io.ReadFull(rnd, buf[:]); err != nil {
		return false, errors.Wrap(err, "sampling: read bernoulli bytes")
	}
	if x < 0 {
		x = 0
	}
	s := uint(x * invLn2)
	r := x - float64(s)*ln2
	if s > 63 {
		s = 63
	}
	var p uint64
	if e := ApproxExp(r, ccs); e > 0 {
		p = ((e << 1) - 1) >> s
	}
	for i, shift := 0, 56; shift >= 8; i, shift = i+1, shift-8 {
		w, b := buf[i], byte(p>>uint(shift))
		if w != b {
			return w < b, nil
		}
	}
	return false, nil
}

// SamplerZ draws an integer from the discrete Gaussian of center mu and
// standard deviation sigma, with 0 < sigmin <= sigma <= SigmaMax. The
// result is signed; negative centers yield negative samples.
//
// The loop accepts each iteration with probability at least
// sigmin/sigma * sigma/(SigmaMax*sqrt(2*pi)) * sqrt(2*pi)/2 ~ sigmin/(2*SigmaMax)
// (about 0.33 for the standard parameter sets), so the number of iterations
// is geometric with a small mean. There is no hard bound.
func SamplerZ(mu, sigma, sigmin float64, rnd io.Reader) (int, error) {
	if !(sigmin > 0 && sigmin <= sigma && sigma <= SigmaMax) {
		return 0, errors.Wrapf(ErrInvalidSigma, "sigma=%g sigmin=%g", sigma, sigmin)
	}
	if math.IsNaN(mu) || math.Abs(mu) >= 1<<52 {
		return 0, errors.Wrapf(ErrInvalidMean, "mu=%g", mu)
	}
	s := math.Floor(mu)
	r := mu - s
	dss := 1 / (2 * sigma * sigma)
	ccs := sigmin / sigma

	var sign [1]byte
	for {
		z0, err := BaseSampler(rnd)
		if err != nil {
			return 0, err
		}
		if _, err := io.ReadFull(rnd, sign[:]); err != nil {
			return 0, errors.Wrap(err, "sampling: read sign bit")
		}
		b := int(sign[0] & 1)
		z := b + (2*b-1)*z0

		// target exp(-(z-r)^2/(2 sigma^2)) over proposal exp(-z0^2/(2 SigmaMax^2))
		d := float64(z) - r
		x := d*d*dss - float64(z0*z0)*inv2SigmaMax2
		ok, err := BerExp(x, ccs, rnd)
		if err != nil {
			return 0, err
		}
		if ok {
			return z + int(s), nil
		}
	}
}

// Sampler binds a minimum standard deviation and a randomness source.
type Sampler struct {
	SigMin float64
	Rand   io.Reader
}

// NewSampler returns a Sampler drawing from rnd.
func NewSampler(sigmin float64, rnd io.Reader) *Sampler {
	return &Sampler{SigMin: sigmin, Rand: rnd}
}

// Sample draws one integer around mu with standard deviation sigma.
func (s *Sampler) Sample(mu, sigma float64) (int, error) {
	return SamplerZ(mu, sigma, s.SigMin, s.Rand)
}

// SampleVec draws one integer per center in mus.
func (s *Sampler) SampleVec(mus []float64, sigma float64) ([]int, error) {
	out := make([]int, len(mus))
	for i, mu := range mus {
		z, err := s.Sample(mu, sigma)
		if err != nil {
			return nil, errors.Wrapf(err, "coefficient %d", i)
		}
		out[i] = z
	}
	return out, nil
}
