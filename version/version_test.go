package version

import (
	"errors"
	"testing"
)

func TestVersify_LiteralVectors(t *testing.T) {
	got, err := Versify(KERI, Version{Major: 1, Minor: 0}, JSON, 0)
	if err != nil {
		t.Fatalf("Versify: %v", err)
	}
	if got != "KERI10JSON000000_" {
		t.Fatalf("dialect 1 = %q, want %q", got, "KERI10JSON000000_")
	}
	if len(got) != V1FullSpan {
		t.Fatalf("dialect 1 length %d, want %d", len(got), V1FullSpan)
	}

	got, err = Versify(KERI, Version{Major: 2, Minor: 0}, JSON, 0)
	if err != nil {
		t.Fatalf("Versify: %v", err)
	}
	if got != "KERICAAJSONAAAA." {
		t.Fatalf("dialect 2 = %q, want %q", got, "KERICAAJSONAAAA.")
	}
	if len(got) != V2FullSpan {
		t.Fatalf("dialect 2 length %d, want %d", len(got), V2FullSpan)
	}
}

func TestVersify_SizeFields(t *testing.T) {
	got, err := Versify(ACDC, Version{Major: 1, Minor: 0}, CBOR, 0x123abc)
	if err != nil {
		t.Fatalf("Versify: %v", err)
	}
	if got != "ACDC10CBOR123abc_" {
		t.Fatalf("got %q", got)
	}

	got, err = Versify(ACDC, Version{Major: 2, Minor: 1}, MGPK, 65)
	if err != nil {
		t.Fatalf("Versify: %v", err)
	}
	// 65 = 1*64 + 1 -> "AABB" left-padded to 4 digits.
	if got != "ACDCCABMGPKAABB." {
		t.Fatalf("got %q", got)
	}
}

func TestRoundTrip_BothDialects(t *testing.T) {
	tuples := []struct {
		proto Protocol
		v     Version
		kind  Kind
		size  int
	}{
		{KERI, Version{1, 0}, JSON, 0},
		{KERI, Version{1, 0}, JSON, 123},
		{KERI, Version{0, 15}, CBOR, MaxV1Size},
		{ACDC, Version{1, 2}, MGPK, 98765},
		{KERI, Version{2, 0}, JSON, 0},
		{KERI, Version{2, 3}, CBOR, 456},
		{ACDC, Version{63, 4095}, MGPK, MaxV2Size},
	}
	for _, tc := range tuples {
		vs, err := Versify(tc.proto, tc.v, tc.kind, tc.size)
		if err != nil {
			t.Fatalf("Versify(%+v): %v", tc, err)
		}
		proto, v, kind, size, err := Deversify(vs)
		if err != nil {
			t.Fatalf("Deversify(%q): %v", vs, err)
		}
		if proto != tc.proto || v != tc.v || kind != tc.kind || size != tc.size {
			t.Fatalf("round trip mismatch for %q: got (%s %+v %s %d)", vs, proto, v, kind, size)
		}
	}
}

func TestDeversify_Rejects(t *testing.T) {
	bad := []string{
		"",
		"KERI10JSON000000",   // dialect 1 missing terminator
		"KERI10JSON00000_",   // 16 chars but dialect 1 terminator
		"KERICAAJSONAAAA_",   // dialect 2 span, wrong terminator
		"XXXX10JSON000000_",  // unknown protocol
		"KERI10YAML000000_",  // unknown kind
		"KERI1xJSON000000_",  // non-hex minor
		"KERI10JSON00zz00_",  // non-hex size
		"KERIBAAJSONAAAA.",   // dialect 2 with major 1
		"KERIAAAJSONAAAA.",   // dialect 2 with major 0
		"XXXXCAAJSONAAAA.",   // dialect 2 unknown protocol
		"KERICAAYAMLAAAA.",   // dialect 2 unknown kind
		"KERICAAJSONAA=A.",   // non-Base64 size
		"KERI10JSON000000_x", // trailing garbage changes span
	}
	for _, vs := range bad {
		if _, _, _, _, err := Deversify(vs); !errors.Is(err, ErrInvalid) {
			t.Fatalf("Deversify(%q): got %v, want ErrInvalid", vs, err)
		}
	}
}

func TestVersify_Rejects(t *testing.T) {
	cases := []struct {
		proto Protocol
		v     Version
		kind  Kind
		size  int
	}{
		{"NOPE", Version{1, 0}, JSON, 0},
		{KERI, Version{1, 0}, "YAML", 0},
		{KERI, Version{-1, 0}, JSON, 0},
		{KERI, Version{1, 0}, JSON, -1},
		{KERI, Version{1, 0}, JSON, MaxV1Size + 1},
		{KERI, Version{1, 16}, JSON, 0},
		{KERI, Version{64, 0}, JSON, 0},
		{KERI, Version{2, 0}, JSON, MaxV2Size + 1},
	}
	for _, tc := range cases {
		if _, err := Versify(tc.proto, tc.v, tc.kind, tc.size); !errors.Is(err, ErrInvalid) {
			t.Fatalf("Versify(%+v): got %v, want ErrInvalid", tc, err)
		}
	}
}
