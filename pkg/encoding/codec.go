// Package encoding implements the compressed signature format: a
// sign-magnitude coefficient codec with a unary high part, and the
// header/salt/content signature record.
package encoding

import "github.com/pkg/errors"

const (
	// MaxAbs is the largest coefficient magnitude the codec represents,
	// the range of a 16-bit signed coefficient.
	MaxAbs = 1<<15 - 1

	lowBits = 7
	lowMask = 1<<lowBits - 1
)

var (
	// ErrBudgetExceeded is returned when data does not fit the byte budget.
	ErrBudgetExceeded = errors.New("encoding: byte budget exceeded")

	// ErrMalformed is returned for truncated or non-canonical input.
	ErrMalformed = errors.New("encoding: malformed data")

	// ErrOutOfRange is returned by Compress for a magnitude above MaxAbs.
	ErrOutOfRange = errors.New("encoding: coefficient out of range")
)

// Compress encodes v into exactly budget bytes. Each coefficient c becomes
// its sign bit, the 7 low bits of |c|, |c|>>7 one bits and a zero bit. The
// stream is padded with zero bits.
func Compress(v []int, budget int) ([]byte, error) {
	if budget < 0 {
		return nil, errors.Wrapf(ErrBudgetExceeded, "negative budget %d", budget)
	}
	w := bitWriter{buf: make([]byte, budget)}
	for i, c := range v {
		if c > MaxAbs || c < -MaxAbs {
			return nil, errors.Wrapf(ErrOutOfRange, "coefficient %d is %d", i, c)
		}
		a, sign := c, uint(0)
		if c < 0 {
			a, sign = -c, 1
		}
		ok := w.write(sign<<7|uint(a&lowMask), 8)
		for k := a >> lowBits; ok && k > 0; k-- {
			ok = w.write(1, 1)
		}
		if !ok || !w.write(0, 1) {
			return nil, errors.Wrapf(ErrBudgetExceeded, "at coefficient %d of %d, budget %d", i, len(v), budget)
		}
	}
	return w.buf, nil
}

// Decompress decodes n coefficients from b. The encoding is canonical:
// a negative zero, a magnitude above MaxAbs, or any nonzero bit after the
// last coefficient is rejected with ErrMalformed.
func Decompress(b []byte, budget, n int) ([]int, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrMalformed, "negative coefficient count %d", n)
	}
	if len(b) > budget {
		return nil, errors.Wrapf(ErrBudgetExceeded, "%d bytes, budget %d", len(b), budget)
	}
	// every coefficient takes at least 9 bits
	if n > len(b)*8/9 {
		return nil, errors.Wrapf(ErrMalformed, "%d bytes cannot hold %d coefficients", len(b), n)
	}
	r := bitReader{buf: b}
	v := make([]int, n)
	for i := range v {
		head, ok := r.read(8)
		if !ok {
			return nil, errors.Wrapf(ErrMalformed, "truncated at coefficient %d", i)
		}
		a := int(head & lowMask)
		for {
			bit, ok := r.read(1)
			if !ok {
				return nil, errors.Wrapf(ErrMalformed, "truncated at coefficient %d", i)
			}
			if bit == 0 {
				break
			}
			if a += 1 << lowBits; a > MaxAbs {
				return nil, errors.Wrapf(ErrMalformed, "coefficient %d exceeds %d", i, MaxAbs)
			}
		}
		if head>>7 == 1 {
			if a == 0 {
				return nil, errors.Wrapf(ErrMalformed, "negative zero at coefficient %d", i)
			}
			a = -a
		}
		v[i] = a
	}
	if !r.restZero() {
		return nil, errors.Wrap(ErrMalformed, "nonzero padding")
	}
	return v, nil
}

// bitWriter writes big-endian bit fields into a zeroed, fixed-size buffer.
type bitWriter struct {
	buf []byte
	pos uint // in bits
}

func (w *bitWriter) write(x, width uint) bool {
	if w.pos+width > uint(len(w.buf))*8 {
		return false
	}
	for i := width; i > 0; i-- {
		if x>>(i-1)&1 == 1 {
			w.buf[w.pos/8] |= 0x80 >> (w.pos % 8)
		}
		w.pos++
	}
	return true
}

// bitReader reads big-endian bit fields from a byte slice.
type bitReader struct {
	buf []byte
	pos uint // in bits
}

func (r *bitReader) read(width uint) (uint, bool) {
	if r.pos+width > uint(len(r.buf))*8 {
		return 0, false
	}
	var x uint
	for i := uint(0); i < width; i++ {
		p := r.pos + i
		x = x<<1 | uint(r.buf[p/8]>>(7-p%8))&1
	}
	r.pos += width
	return x, true
}

func (r *bitReader) restZero() bool {
	for r.pos%8 != 0 {
		if bit, _ := r.read(1); bit != 0 {
			return false
		}
	}
	for _, c := range r.buf[r.pos/8:] {
		if c != 0 {
			return false
		}
	}
	return true
}
