// Package rng provides the randomness sources consumed by the sampler.
//
// Every source is an io.Reader. System is the one to use for signing; the
// seeded sources are deterministic and meant for reproducible runs.
package rng

import (
	"crypto/rand"
	"io"

	"github.com/pkg/errors"
	"github.com/tuneinsight/lattigo/v4/utils"
	"golang.org/x/crypto/chacha20"
)

// SeedLen is the seed length of NewChaCha20.
const SeedLen = chacha20.KeySize

// System returns the operating system CSPRNG.
func System() io.Reader {
	return rand.Reader
}

type chachaReader struct {
	c *chacha20.Cipher
}

// NewChaCha20 returns the ChaCha20 keystream for seed (zero nonce).
func NewChaCha20(seed [SeedLen]byte) io.Reader {
	c, err := chacha20.NewUnauthenticatedCipher(seed[:], make([]byte, chacha20.NonceSize))
	if err != nil {
		// key and nonce sizes are fixed above
		panic(err)
	}
	return &chachaReader{c: c}
}

func (r *chachaReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	r.c.XORKeyStream(p, p)
	return len(p), nil
}

// NewKeyed returns lattigo's keyed PRNG, so that a seed can be shared with
// lattigo-based tooling.
func NewKeyed(key []byte) (io.Reader, error) {
	prng, err := utils.NewKeyedPRNG(key)
	if err != nil {
		return nil, errors.Wrap(err, "rng: keyed prng")
	}
	return prng, nil
}

// CountingReader counts the bytes read through it.
type CountingReader struct {
	r io.Reader
	n int64
}

// Counting wraps r.
func Counting(r io.Reader) *CountingReader {
	return &CountingReader{r: r}
}

func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// N returns the number of bytes read so far.
func (c *CountingReader) N() int64 {
	return c.n
}
