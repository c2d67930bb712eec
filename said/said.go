// Package said derives and verifies self-addressing identifiers
// (SAIDs): digests of a data structure embedded back into the structure
// itself at a designated field.
//
// Derivation replaces the field with a fixed-width placeholder, sizes
// and serializes the structure, digests the bytes, and encodes the
// digest in fully-qualified Base64URL form. Because the placeholder and
// the final identifier occupy the same character count, the digested
// bytes have the same length as the published structure, and
// verification can reproduce them exactly.
package said

import (
	"errors"
	"fmt"
	"strings"

	"xdao.co/said/codec"
	"xdao.co/said/deriv"
	"xdao.co/said/sad"
	"xdao.co/said/version"
)

const (
	// DefaultLabel is the conventional SAID field key.
	DefaultLabel = "d"

	// Placeholder is the character filling the label field while the
	// digest is computed.
	Placeholder = "#"
)

// DefaultCode is the derivation code used when none is given.
const DefaultCode = deriv.Blake3

// DefaultKind is the serialization kind used when none is given.
const DefaultKind = version.JSON

// Options selects the label key, derivation code, and serialization
// kind for derivation. Zero values mean DefaultLabel, DefaultCode, and
// DefaultKind.
type Options struct {
	Label string
	Code  deriv.Code
	Kind  version.Kind
}

func (o Options) withDefaults() Options {
	if o.Label == "" {
		o.Label = DefaultLabel
	}
	if o.Code == "" {
		o.Code = DefaultCode
	}
	if o.Kind == "" {
		o.Kind = DefaultKind
	}
	return o
}

// Derive computes the raw SAID digest for m and returns it together
// with the derived structure: a clone of m whose label field holds the
// placeholder and whose version preamble, when present, has been
// resized to match the serialization.
//
// m itself is never mutated.
func Derive(m *sad.Map, opts Options) ([]byte, *sad.Map, error) {
	opts = opts.withDefaults()

	if !m.Has(opts.Label) {
		return nil, nil, newError(KindLabel, "SAID-DRV-001", fmt.Sprintf("data has no label field %q", opts.Label))
	}
	clone := m.Clone()

	sz, err := deriv.SizeOf(opts.Code)
	if err != nil {
		return nil, nil, wrapError(KindCode, "SAID-DRV-002", fmt.Sprintf("unusable derivation code %q", opts.Code), err)
	}
	clone.Set(opts.Label, strings.Repeat(Placeholder, sz.Full))

	kind := opts.Kind
	if clone.Has(codec.VersionField) {
		// Size the preamble with the placeholder in place: the real
		// SAID occupies the same character count, so the recorded size
		// already matches the published structure.
		sized, err := codec.Sizeify(clone, kind)
		if err != nil {
			if errors.Is(err, codec.ErrUnsupportedKind) {
				return nil, nil, wrapError(KindKind, "SAID-DRV-004", "cannot serialize data", err)
			}
			return nil, nil, wrapError(KindVersion, "SAID-DRV-003", "cannot size version preamble", err)
		}
		clone = sized.Data
		kind = sized.Kind
	}

	ser, err := codec.Encode(clone, kind)
	if err != nil {
		return nil, nil, wrapError(KindKind, "SAID-DRV-004", "cannot serialize data", err)
	}

	raw, err := deriv.Digest(opts.Code, ser)
	if err != nil {
		return nil, nil, wrapError(KindCode, "SAID-DRV-002", fmt.Sprintf("unusable derivation code %q", opts.Code), err)
	}
	want, err := deriv.RawSize(opts.Code)
	if err != nil {
		return nil, nil, wrapError(KindCode, "SAID-DRV-002", fmt.Sprintf("unusable derivation code %q", opts.Code), err)
	}
	if len(raw) != want {
		return nil, nil, newError(KindDigest, "SAID-DRV-005", "insufficient digest length")
	}
	return raw, clone, nil
}

// Saidify computes the qualified SAID for m and returns it together
// with the SAD: the derived structure with the SAID written into the
// label field.
func Saidify(m *sad.Map, opts Options) (string, *sad.Map, error) {
	opts = opts.withDefaults()
	raw, derived, err := Derive(m, opts)
	if err != nil {
		return "", nil, err
	}
	qb, err := deriv.QB64(raw, opts.Code)
	if err != nil {
		return "", nil, wrapError(KindCode, "SAID-ENC-001", "cannot encode qualified SAID", err)
	}
	derived.Set(opts.Label, qb)
	return qb, derived, nil
}

// VerifyOptions configures Verify. SAID, when non-empty, is the
// externally expected identifier. Prefixed additionally requires the
// embedded label value to equal SAID. Versioned additionally requires
// the embedded version preamble to equal the re-derived one.
type VerifyOptions struct {
	SAID      string
	Label     string
	Code      deriv.Code
	Kind      version.Kind
	Prefixed  bool
	Versioned bool
}

// Verify recomputes the SAID of m and compares. The result is false
// for a legitimate mismatch; an error is returned only for
// structurally invalid input.
func Verify(m *sad.Map, opts VerifyOptions) (bool, error) {
	d := Options{Label: opts.Label, Code: opts.Code, Kind: opts.Kind}.withDefaults()

	embeddedVal, ok := m.Get(d.Label)
	if !ok {
		return false, newError(KindVerify, "SAID-VFY-001", fmt.Sprintf("data has no digest field %q", d.Label))
	}
	embedded, _ := embeddedVal.(string)

	raw, derived, err := Derive(m, d)
	if err != nil {
		return false, err
	}
	computed, err := deriv.QB64(raw, d.Code)
	if err != nil {
		return false, wrapError(KindCode, "SAID-ENC-001", "cannot encode qualified SAID", err)
	}

	if opts.Prefixed && opts.SAID != "" && embedded != opts.SAID {
		return false, nil
	}
	if opts.Versioned && m.Has(codec.VersionField) {
		have, _ := m.Get(codec.VersionField)
		want, _ := derived.Get(codec.VersionField)
		if have != want {
			return false, nil
		}
	}
	if opts.SAID != "" {
		return opts.SAID == computed, nil
	}
	return embedded == computed, nil
}
