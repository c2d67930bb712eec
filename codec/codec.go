// Package codec serializes self-addressing data by kind and keeps the
// embedded version preamble's size field consistent with the bytes it
// describes.
package codec

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"xdao.co/said/sad"
	"xdao.co/said/version"
)

// VersionField is the key holding the version preamble.
const VersionField = "v"

var (
	ErrUnsupportedKind = errors.New("codec: unsupported serialization kind")
	ErrMissingVersion  = errors.New("codec: missing version field")
)

// Encode serializes m with the given kind. JSON is compact UTF-8 with
// insertion order preserved; CBOR and MGPK delegate to their codecs.
func Encode(m *sad.Map, kind version.Kind) ([]byte, error) {
	switch kind {
	case version.JSON:
		return m.MarshalJSON()
	case version.CBOR:
		return m.MarshalCBOR()
	case version.MGPK:
		return msgpack.Marshal(m)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}
}

// Sized is the result of Sizeify: the final serialization together with
// the preamble fields it was sized under.
type Sized struct {
	Raw     []byte
	Proto   version.Protocol
	Kind    version.Kind
	Data    *sad.Map
	Version version.Version
}

// Sizeify parses the version preamble at VersionField, serializes m to
// measure it, regenerates the preamble with the measured size, and
// re-serializes. The returned bytes are final: the size recorded in the
// preamble equals len(Raw).
//
// kind overrides the kind parsed from the preamble; pass "" to keep the
// parsed one. m is not mutated; the rewritten structure is returned in
// Data.
func Sizeify(m *sad.Map, kind version.Kind) (Sized, error) {
	vVal, ok := m.Get(VersionField)
	if !ok {
		return Sized{}, ErrMissingVersion
	}
	vs, ok := vVal.(string)
	if !ok {
		return Sized{}, fmt.Errorf("%w: field %q is %T, not string", version.ErrInvalid, VersionField, vVal)
	}
	proto, ver, parsedKind, _, err := version.Deversify(vs)
	if err != nil {
		return Sized{}, err
	}
	eff := kind
	if eff == "" {
		eff = parsedKind
	}
	if !version.KnownKind(eff) {
		return Sized{}, fmt.Errorf("%w: %q", ErrUnsupportedKind, eff)
	}

	out := m.Clone()
	// First pass measures; the preamble has the same span in both
	// passes because the dialect is fixed by the major version.
	measured, err := Encode(out, eff)
	if err != nil {
		return Sized{}, err
	}
	vs2, err := version.Versify(proto, ver, eff, len(measured))
	if err != nil {
		return Sized{}, err
	}
	out.Set(VersionField, vs2)
	raw, err := Encode(out, eff)
	if err != nil {
		return Sized{}, err
	}
	if len(raw) != len(measured) {
		return Sized{}, fmt.Errorf("codec: sizeify did not converge: measured %d, final %d", len(measured), len(raw))
	}
	return Sized{Raw: raw, Proto: proto, Kind: eff, Data: out, Version: ver}, nil
}
