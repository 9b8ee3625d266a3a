// Package hash provides the SHAKE-256 streams used by the Falcon kernel.
package hash

import (
	"golang.org/x/crypto/sha3"
)

// StreamingXOF256 provides incremental SHAKE-256 output.
type StreamingXOF256 struct {
	h   sha3.ShakeHash
	buf [136]byte // SHAKE256 rate
	pos int
	end int
}

// NewStreamingXOF256 creates a streaming XOF over the concatenation of parts.
func NewStreamingXOF256(parts ...[]byte) *StreamingXOF256 {
	x := &StreamingXOF256{h: sha3.NewShake256()}
	x.absorb(parts)
	return x
}

func (x *StreamingXOF256) absorb(parts [][]byte) {
	for _, p := range parts {
		x.h.Write(p)
	}
	x.pos = 0
	x.end = 0
}

func (x *StreamingXOF256) refill(need int) {
	if x.pos+need <= x.end {
		return
	}
	// Copy leftover bytes to beginning
	leftover := x.end - x.pos
	if leftover > 0 {
		copy(x.buf[:leftover], x.buf[x.pos:x.end])
	}
	n, _ := x.h.Read(x.buf[leftover:])
	x.pos = 0
	x.end = leftover + n
}

// Read2 returns the next 2 bytes from the XOF.
func (x *StreamingXOF256) Read2() (b0, b1 byte) {
	x.refill(2)
	b0, b1 = x.buf[x.pos], x.buf[x.pos+1]
	x.pos += 2
	return
}

// Read fills p with the next len(p) bytes of output. It never fails, which
// makes the stream usable as a deterministic randomness source.
func (x *StreamingXOF256) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		x.refill(1)
		c := copy(p[n:], x.buf[x.pos:x.end])
		x.pos += c
		n += c
	}
	return n, nil
}
