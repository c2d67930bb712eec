// Package deriv implements derivation codes for self-addressing
// identifiers: the static code/size table, the digest registry, and the
// fully-qualified Base64URL (qb64) encoding of raw digests.
package deriv

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"
)

// Code is a one-character derivation code naming a digest algorithm
// together with its qualified encoding shape.
type Code string

const (
	Blake3  Code = "E" // Blake3-256
	Blake2b Code = "F" // Blake2b-256
	SHA3    Code = "H" // SHA3-256
	SHA2    Code = "I" // SHA2-256
)

// Sizes is the per-code size quadruple. Hard is the character count of
// the fixed code prefix, Soft the character count of a variable suffix
// (always 0 here), Lead the count of zero bytes prepended to the raw
// digest before Base64 conversion, and Full the total character count
// of code plus encoded value.
type Sizes struct {
	Hard int
	Soft int
	Lead int
	Full int
}

var (
	ErrEmptyCode    = errors.New("deriv: empty derivation code")
	ErrUnknownCode  = errors.New("deriv: unsupported derivation code")
	ErrVariableSize = errors.New("deriv: variable-size codes are not supported")
	ErrPadding      = errors.New("deriv: code size incompatible with pad size")
	ErrShortRaw     = errors.New("deriv: insufficient raw bytes")
)

// sizeTable holds the size quadruple for every supported code. All
// entries satisfy Full%4 == 0 and Full%4 != 3, which the qb64 padding
// arithmetic depends on.
var sizeTable = map[Code]Sizes{
	Blake3:  {Hard: 1, Soft: 0, Lead: 0, Full: 44},
	Blake2b: {Hard: 1, Soft: 0, Lead: 0, Full: 44},
	SHA3:    {Hard: 1, Soft: 0, Lead: 0, Full: 44},
	SHA2:    {Hard: 1, Soft: 0, Lead: 0, Full: 44},
}

// digestTable maps each code to its 32-byte digest function.
var digestTable = map[Code]func([]byte) []byte{
	Blake3: func(b []byte) []byte {
		sum := blake3.Sum256(b)
		return sum[:]
	},
	Blake2b: func(b []byte) []byte {
		sum := blake2b.Sum256(b)
		return sum[:]
	},
	SHA3: func(b []byte) []byte {
		sum := sha3.Sum256(b)
		return sum[:]
	},
	SHA2: func(b []byte) []byte {
		sum := sha256.Sum256(b)
		return sum[:]
	},
}

func init() {
	// The size table and the digest registry must cover exactly the
	// same code set; a mismatch is a table-maintenance bug.
	for c := range sizeTable {
		if _, ok := digestTable[c]; !ok {
			panic(fmt.Sprintf("deriv: code %q has sizes but no digest", c))
		}
	}
	for c := range digestTable {
		if _, ok := sizeTable[c]; !ok {
			panic(fmt.Sprintf("deriv: code %q has digest but no sizes", c))
		}
	}
}

// Codes returns every supported derivation code.
func Codes() []Code {
	out := make([]Code, 0, len(sizeTable))
	for c := range sizeTable {
		out = append(out, c)
	}
	return out
}

// SizeOf returns the size quadruple for code.
func SizeOf(code Code) (Sizes, error) {
	if code == "" {
		return Sizes{}, ErrEmptyCode
	}
	sz, ok := sizeTable[code]
	if !ok {
		return Sizes{}, fmt.Errorf("%w: %q", ErrUnknownCode, code)
	}
	return sz, nil
}

// Digest runs the digest function registered for code over data.
func Digest(code Code, data []byte) ([]byte, error) {
	if code == "" {
		return nil, ErrEmptyCode
	}
	fn, ok := digestTable[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCode, code)
	}
	return fn(data), nil
}

// RawSize returns the raw digest byte length implied by the code's size
// quadruple: the Base64 value characters shrunk by the 4:3 expansion
// ratio, minus the lead bytes.
func RawSize(code Code) (int, error) {
	sz, err := SizeOf(code)
	if err != nil {
		return 0, err
	}
	if sz.Full < 0 {
		return 0, fmt.Errorf("%w: %q", ErrVariableSize, code)
	}
	cs := sz.Hard + sz.Soft
	return (sz.Full-cs)*3/4 - sz.Lead, nil
}

// ValidateRawSize returns the first RawSize(code) bytes of raw, or
// ErrShortRaw when raw is shorter than that.
func ValidateRawSize(raw []byte, code Code) ([]byte, error) {
	n, err := RawSize(code)
	if err != nil {
		return nil, err
	}
	if len(raw) < n {
		return nil, fmt.Errorf("%w: have %d, need %d for code %q", ErrShortRaw, len(raw), n, code)
	}
	return raw[:n], nil
}
