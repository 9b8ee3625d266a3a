// Package params defines the Falcon parameter sets.
package params

import "github.com/pkg/errors"

const (
	// SaltLen is the length of the per-signature nonce.
	SaltLen = 40

	// HeaderLen is the length of the signature header.
	HeaderLen = 1

	// headerTag marks a compressed-format signature; the low nibble holds logn.
	headerTag = 0x30
)

// ErrUnknownSet is returned by the lookup functions.
var ErrUnknownSet = errors.New("params: unknown parameter set")

// Set is an immutable parameter set. Operations take it by value.
type Set struct {
	Name       string
	N          int
	LogN       uint
	Sigma      float64
	SigMin     float64
	SigBound   int64
	SigByteLen int
}

// The standard parameter sets. They are read-only: callers that need a
// variant copy the value and change the copy.
var (
	// Falcon512 is the degree-512 set.
	Falcon512 = Set{
		Name:       "falcon512",
		N:          512,
		LogN:       9,
		Sigma:      165.7366171829776,
		SigMin:     1.2778336969128337,
		SigBound:   34034726,
		SigByteLen: 666,
	}

	// Falcon1024 is the degree-1024 set.
	Falcon1024 = Set{
		Name:       "falcon1024",
		N:          1024,
		LogN:       10,
		Sigma:      168.38857144654395,
		SigMin:     1.298280334344292,
		SigBound:   70265242,
		SigByteLen: 1280,
	}
)

// All lists the standard sets in increasing degree.
func All() []Set {
	return []Set{Falcon512, Falcon1024}
}

// ByName looks a set up by its name ("falcon512", "falcon1024").
func ByName(name string) (Set, error) {
	for _, s := range All() {
		if s.Name == name {
			return s, nil
		}
	}
	return Set{}, errors.Wrapf(ErrUnknownSet, "name %q", name)
}

// ByDegree looks a set up by its ring degree.
func ByDegree(n int) (Set, error) {
	for _, s := range All() {
		if s.N == n {
			return s, nil
		}
	}
	return Set{}, errors.Wrapf(ErrUnknownSet, "degree %d", n)
}

// Header returns the signature header byte.
func (s Set) Header() byte {
	return headerTag | byte(s.LogN)
}

// ContentBudget is the maximum compressed content length in bytes.
func (s Set) ContentBudget() int {
	return s.SigByteLen - HeaderLen - SaltLen
}

// AcceptsNorm reports whether a squared norm is within the signature bound.
func (s Set) AcceptsNorm(sqnorm int64) bool {
	return sqnorm <= s.SigBound
}
