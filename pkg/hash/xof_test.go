package hash

import (
	"bytes"
	"encoding/hex"
	"testing"

	"golang.org/x/crypto/sha3"
)

func shake(msg []byte, length int) []byte {
	out := make([]byte, length)
	sha3.ShakeSum256(out, msg)
	return out
}

// Test the stream against a known SHAKE-256 value
func TestKnownOutput(t *testing.T) {
	got := make([]byte, 32)
	NewStreamingXOF256([]byte("test")).Read(got)
	expected, _ := hex.DecodeString("b54ff7255705a71ee2925e4a3e30e41aed489a579d5595e0df13e32e1e4dd202")
	if !bytes.Equal(got, expected) {
		t.Errorf("SHAKE-256('test', 32) = %x, want %x", got, expected)
	}
}

// Streaming output must match one-shot output across block boundaries.
func TestStreamingMatchesOneShot(t *testing.T) {
	want := shake([]byte("test"), 1000)

	x := NewStreamingXOF256([]byte("te"), []byte("st"))
	got := make([]byte, 0, 1000)
	for len(got) < 1000 {
		b0, b1 := x.Read2()
		got = append(got, b0, b1)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Read2 stream diverges from SHAKE-256")
	}

	x = NewStreamingXOF256([]byte("test"))
	buf := make([]byte, 1000)
	// odd-sized reads straddle the 136-byte rate
	for off := 0; off < len(buf); off += 37 {
		end := off + 37
		if end > len(buf) {
			end = len(buf)
		}
		if n, err := x.Read(buf[off:end]); err != nil || n != end-off {
			t.Fatalf("Read returned (%d, %v)", n, err)
		}
	}
	if !bytes.Equal(buf, want) {
		t.Errorf("Read stream diverges from SHAKE-256")
	}
}

func TestMixedReads(t *testing.T) {
	want := shake([]byte("mixed"), 300)
	x := NewStreamingXOF256([]byte("mixed"))
	var got []byte
	one := make([]byte, 1)
	for len(got) < 300 {
		x.Read(one)
		got = append(got, one[0])
		if len(got) < 299 {
			b0, b1 := x.Read2()
			got = append(got, b0, b1)
		}
	}
	if !bytes.Equal(got[:300], want) {
		t.Errorf("interleaved Read/Read2 diverge from SHAKE-256")
	}
}
