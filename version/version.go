// Package version parses and generates the version preamble embedded at
// key "v" of self-addressing data: protocol tag, major.minor version,
// serialization kind, and the byte size of the serialized structure.
//
// Two grammars exist. Dialect 1 (protocol major < 2) encodes version
// and size in hexadecimal and terminates with "_", 17 characters total.
// Dialect 2 encodes them as Base64URL digits and terminates with ".",
// 16 characters total. A string belongs to exactly one dialect,
// recognized by its length and terminator.
package version

import (
	"errors"
	"fmt"
	"strconv"

	"xdao.co/said/b64"
)

// Protocol is the 4-character protocol tag opening a version string.
type Protocol string

const (
	KERI Protocol = "KERI"
	ACDC Protocol = "ACDC"
)

// Kind is the 4-character serialization kind tag.
type Kind string

const (
	JSON Kind = "JSON"
	CBOR Kind = "CBOR"
	MGPK Kind = "MGPK"
)

// Version is a protocol major.minor version.
type Version struct {
	Major int
	Minor int
}

const (
	// V1FullSpan and V2FullSpan are the total character counts of the
	// two dialects; V1Term and V2Term their terminators.
	V1FullSpan = 17
	V1Term     = '_'
	V2FullSpan = 16
	V2Term     = '.'

	// MaxV1Size is the largest serialized size dialect 1 can express
	// in its 6 hex digits; MaxV2Size the largest for dialect 2's 4
	// Base64 digits.
	MaxV1Size = 1<<24 - 1
	MaxV2Size = 1<<24 - 1
)

// ErrInvalid reports a version string that matches neither dialect or
// carries an unknown protocol, kind, or malformed field.
var ErrInvalid = errors.New("version: invalid version string")

func knownProtocol(p Protocol) bool {
	switch p {
	case KERI, ACDC:
		return true
	}
	return false
}

// KnownKind reports whether k names a supported serialization kind.
func KnownKind(k Kind) bool {
	switch k {
	case JSON, CBOR, MGPK:
		return true
	}
	return false
}

// Versify renders the version string for the tuple. Major versions
// below 2 use dialect 1, all others dialect 2.
func Versify(proto Protocol, v Version, kind Kind, size int) (string, error) {
	if !knownProtocol(proto) {
		return "", fmt.Errorf("%w: unknown protocol %q", ErrInvalid, proto)
	}
	if !KnownKind(kind) {
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalid, kind)
	}
	if v.Major < 0 || v.Minor < 0 {
		return "", fmt.Errorf("%w: negative version %d.%d", ErrInvalid, v.Major, v.Minor)
	}
	if size < 0 {
		return "", fmt.Errorf("%w: negative size %d", ErrInvalid, size)
	}
	if v.Major < 2 {
		if v.Major > 0xf || v.Minor > 0xf {
			return "", fmt.Errorf("%w: version %d.%d overflows dialect 1", ErrInvalid, v.Major, v.Minor)
		}
		if size > MaxV1Size {
			return "", fmt.Errorf("%w: size %d overflows dialect 1", ErrInvalid, size)
		}
		return fmt.Sprintf("%s%x%x%s%06x%c", proto, v.Major, v.Minor, kind, size, V1Term), nil
	}
	if v.Major > 63 || v.Minor > 64*64-1 {
		return "", fmt.Errorf("%w: version %d.%d overflows dialect 2", ErrInvalid, v.Major, v.Minor)
	}
	if size > MaxV2Size {
		return "", fmt.Errorf("%w: size %d overflows dialect 2", ErrInvalid, size)
	}
	return string(proto) + b64.IntToB64(v.Major, 1) + b64.IntToB64(v.Minor, 2) +
		string(kind) + b64.IntToB64(size, 4) + string(V2Term), nil
}

// Deversify parses either dialect, recognized by total length and
// terminator character.
func Deversify(vs string) (Protocol, Version, Kind, int, error) {
	switch {
	case len(vs) == V1FullSpan && vs[V1FullSpan-1] == V1Term:
		return deversify1(vs)
	case len(vs) == V2FullSpan && vs[V2FullSpan-1] == V2Term:
		return deversify2(vs)
	}
	return "", Version{}, "", 0, fmt.Errorf("%w: %q matches neither dialect", ErrInvalid, vs)
}

func deversify1(vs string) (Protocol, Version, Kind, int, error) {
	proto := Protocol(vs[0:4])
	if !knownProtocol(proto) {
		return "", Version{}, "", 0, fmt.Errorf("%w: unknown protocol %q", ErrInvalid, proto)
	}
	major, err := strconv.ParseUint(vs[4:5], 16, 8)
	if err != nil {
		return "", Version{}, "", 0, fmt.Errorf("%w: bad major %q", ErrInvalid, vs[4:5])
	}
	minor, err := strconv.ParseUint(vs[5:6], 16, 8)
	if err != nil {
		return "", Version{}, "", 0, fmt.Errorf("%w: bad minor %q", ErrInvalid, vs[5:6])
	}
	kind := Kind(vs[6:10])
	if !KnownKind(kind) {
		return "", Version{}, "", 0, fmt.Errorf("%w: unknown kind %q", ErrInvalid, kind)
	}
	size, err := strconv.ParseUint(vs[10:16], 16, 32)
	if err != nil {
		return "", Version{}, "", 0, fmt.Errorf("%w: bad size %q", ErrInvalid, vs[10:16])
	}
	return proto, Version{Major: int(major), Minor: int(minor)}, kind, int(size), nil
}

func deversify2(vs string) (Protocol, Version, Kind, int, error) {
	proto := Protocol(vs[0:4])
	if !knownProtocol(proto) {
		return "", Version{}, "", 0, fmt.Errorf("%w: unknown protocol %q", ErrInvalid, proto)
	}
	major, err := b64.B64ToInt(vs[4:5])
	if err != nil {
		return "", Version{}, "", 0, fmt.Errorf("%w: bad major %q", ErrInvalid, vs[4:5])
	}
	// Dialect 2 exists for major >= 2 only; a Base64 string claiming an
	// earlier major is malformed, not a legacy preamble.
	if major < 2 {
		return "", Version{}, "", 0, fmt.Errorf("%w: major %d below dialect 2 minimum", ErrInvalid, major)
	}
	minor, err := b64.B64ToInt(vs[5:7])
	if err != nil {
		return "", Version{}, "", 0, fmt.Errorf("%w: bad minor %q", ErrInvalid, vs[5:7])
	}
	kind := Kind(vs[7:11])
	if !KnownKind(kind) {
		return "", Version{}, "", 0, fmt.Errorf("%w: unknown kind %q", ErrInvalid, kind)
	}
	size, err := b64.B64ToInt(vs[11:15])
	if err != nil {
		return "", Version{}, "", 0, fmt.Errorf("%w: bad size %q", ErrInvalid, vs[11:15])
	}
	return proto, Version{Major: major, Minor: minor}, kind, size, nil
}
