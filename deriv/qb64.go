package deriv

import (
	"encoding/base64"
	"fmt"
)

// QB64B converts a raw digest into the fully-qualified Base64URL form
// for code, as bytes.
//
// The pad size ps brings ps+Lead+len(raw) to a multiple of 3 so the
// Base64 conversion emits no trailing "=" characters. The first ps
// output characters carry only zero pad bits and are replaced by the
// code prefix, which supplies equivalent leading bits. The size table
// guarantees cs%4 == ps-Lead for every code; that identity is what
// makes the substitution bit-exact, so it is re-checked here.
func QB64B(raw []byte, code Code) ([]byte, error) {
	sz, err := SizeOf(code)
	if err != nil {
		return nil, err
	}
	raw, err = ValidateRawSize(raw, code)
	if err != nil {
		return nil, err
	}
	cs := sz.Hard + sz.Soft
	ps := (3 - ((len(raw) + sz.Lead) % 3)) % 3
	if cs%4 != ps-sz.Lead {
		return nil, fmt.Errorf("%w: code %q cs=%d ps=%d ls=%d", ErrPadding, code, cs, ps, sz.Lead)
	}

	prepad := make([]byte, ps+sz.Lead+len(raw))
	copy(prepad[ps+sz.Lead:], raw)
	enc := base64.URLEncoding.EncodeToString(prepad)

	full := make([]byte, 0, sz.Full)
	full = append(full, code...)
	full = append(full, enc[ps:]...)
	if len(full) != sz.Full {
		return nil, fmt.Errorf("%w: code %q produced %d characters, want %d", ErrPadding, code, len(full), sz.Full)
	}
	return full, nil
}

// QB64 is QB64B as a string.
func QB64(raw []byte, code Code) (string, error) {
	b, err := QB64B(raw, code)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
