// Package b64 converts non-negative integers to and from fixed-width
// Base64URL digit strings.
//
// This is positional notation over the URL-safe Base64 alphabet, not a
// byte-stream Base64 codec: each character is one digit base 64, most
// significant first, and "A" is the zero digit used for left padding.
package b64

import "fmt"

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// revAlphabet maps an ASCII byte to its Base64URL digit value, or -1.
var revAlphabet [256]int8

func init() {
	for i := range revAlphabet {
		revAlphabet[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		revAlphabet[alphabet[i]] = int8(i)
	}
}

// IntToB64 encodes n as Base64URL digits, left-padded with "A" to at
// least l characters. n must be non-negative.
func IntToB64(n, l int) string {
	if n < 0 {
		n = 0
	}
	var digits []byte
	for n > 0 {
		digits = append(digits, alphabet[n%64])
		n /= 64
	}
	for len(digits) < l {
		digits = append(digits, 'A')
	}
	// Digits were produced least significant first.
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}

// B64ToInt decodes a Base64URL digit string produced by IntToB64.
// It fails on an empty string and on any character outside the
// 64-symbol alphabet.
func B64ToInt(s string) (int, error) {
	if s == "" {
		return 0, &DecodeError{Input: s, Message: "empty Base64 string"}
	}
	n := 0
	for i := 0; i < len(s); i++ {
		v := revAlphabet[s[i]]
		if v < 0 {
			return 0, &DecodeError{Input: s, Message: fmt.Sprintf("invalid Base64 character %q", s[i])}
		}
		n = n*64 + int(v)
	}
	return n, nil
}

// DecodeError reports a malformed Base64URL digit string.
type DecodeError struct {
	Input   string
	Message string
}

func (e *DecodeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return "b64: " + e.Message
}
