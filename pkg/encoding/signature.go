package encoding

import (
	"github.com/pkg/errors"

	"falcon-signer/pkg/params"
)

var (
	// ErrShortSignature is returned for a buffer shorter than header and salt.
	ErrShortSignature = errors.New("encoding: signature too short")

	// ErrHeader is returned when the header does not match the parameter set.
	ErrHeader = errors.New("encoding: bad signature header")
)

// Signature is a parsed signature record:
// [1 header byte][40-byte salt][compressed content].
type Signature struct {
	Header  byte
	Salt    [params.SaltLen]byte
	Content []byte
}

// NewSignature compresses s2 into a signature record for set.
func NewSignature(set params.Set, salt [params.SaltLen]byte, s2 []int) (*Signature, error) {
	if len(s2) != set.N {
		return nil, errors.Errorf("encoding: %d coefficients for degree %d", len(s2), set.N)
	}
	content, err := Compress(s2, set.ContentBudget())
	if err != nil {
		return nil, err
	}
	return &Signature{Header: set.Header(), Salt: salt, Content: content}, nil
}

// Bytes returns the encoded record.
func (s *Signature) Bytes() []byte {
	out := make([]byte, 0, params.HeaderLen+params.SaltLen+len(s.Content))
	out = append(out, s.Header)
	out = append(out, s.Salt[:]...)
	return append(out, s.Content...)
}

// EncodeSignature checks sig against set and returns its encoding.
func EncodeSignature(sig *Signature, set params.Set) ([]byte, error) {
	if sig.Header != set.Header() {
		return nil, errors.Wrapf(ErrHeader, "header 0x%02x, want 0x%02x", sig.Header, set.Header())
	}
	if len(sig.Content) > set.ContentBudget() {
		return nil, errors.Wrapf(ErrBudgetExceeded, "content %d bytes, budget %d", len(sig.Content), set.ContentBudget())
	}
	return sig.Bytes(), nil
}

// ParseSignature splits b into header, salt and content. The content is
// copied; it is not decompressed (see Coefficients).
func ParseSignature(b []byte, set params.Set) (*Signature, error) {
	if len(b) < params.HeaderLen+params.SaltLen {
		return nil, errors.Wrapf(ErrShortSignature, "%d bytes", len(b))
	}
	if b[0] != set.Header() {
		return nil, errors.Wrapf(ErrHeader, "header 0x%02x, want 0x%02x", b[0], set.Header())
	}
	content := b[params.HeaderLen+params.SaltLen:]
	if len(content) > set.ContentBudget() {
		return nil, errors.Wrapf(ErrBudgetExceeded, "content %d bytes, budget %d", len(content), set.ContentBudget())
	}
	sig := &Signature{Header: b[0], Content: append([]byte(nil), content...)}
	copy(sig.Salt[:], b[params.HeaderLen:])
	return sig, nil
}

// Coefficients decompresses the content into set.N signed coefficients.
func (s *Signature) Coefficients(set params.Set) ([]int, error) {
	return Decompress(s.Content, set.ContentBudget(), set.N)
}
