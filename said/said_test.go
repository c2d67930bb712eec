package said

import (
	"strings"
	"testing"

	"xdao.co/said/codec"
	"xdao.co/said/deriv"
	"xdao.co/said/sad"
	"xdao.co/said/version"
)

func TestSaidify_ConformanceVector_Attrs(t *testing.T) {
	m := sad.FromPairs(
		sad.Pair{Key: "d", Val: ""},
		sad.Pair{Key: "attr1", Val: "value1"},
		sad.Pair{Key: "attr2", Val: "value2"},
		sad.Pair{Key: "attr3", Val: "value3"},
	)
	got, out, err := Saidify(m, Options{})
	if err != nil {
		t.Fatalf("Saidify: %v", err)
	}
	const want = "EHSOlNZzwiekacJenXM3qPNU9-07ic_G0ejn8hrA2lKQ"
	if got != want {
		t.Fatalf("SAID = %q, want %q", got, want)
	}
	if v, _ := out.Get("d"); v != want {
		t.Fatalf("SAD label = %v, want %q", v, want)
	}
}

func TestSaidify_ConformanceVector_ABD(t *testing.T) {
	m := sad.FromPairs(
		sad.Pair{Key: "a", Val: 1},
		sad.Pair{Key: "b", Val: 2},
		sad.Pair{Key: "d", Val: ""},
	)
	got, out, err := Saidify(m, Options{})
	if err != nil {
		t.Fatalf("Saidify: %v", err)
	}
	const want = "ELLbizIr2FJLHexNkiLZpsTWfhwUmZUicuhmoZ9049Hz"
	if got != want {
		t.Fatalf("SAID = %q, want %q", got, want)
	}

	ok, err := Verify(out, VerifyOptions{SAID: want})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("Verify returned false for the conformance vector")
	}
}

func TestSaidify_DoesNotMutateInput(t *testing.T) {
	m := sad.FromPairs(sad.Pair{Key: "d", Val: "before"}, sad.Pair{Key: "x", Val: 1})
	if _, _, err := Saidify(m, Options{}); err != nil {
		t.Fatalf("Saidify: %v", err)
	}
	if v, _ := m.Get("d"); v != "before" {
		t.Fatalf("input mutated: d = %v", v)
	}
}

func TestSaidify_MissingLabel(t *testing.T) {
	m := sad.FromPairs(sad.Pair{Key: "x", Val: 1})
	_, _, err := Saidify(m, Options{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsKind(err, KindLabel) {
		t.Fatalf("expected KindLabel, got %v", err)
	}
	if RuleID(err) != "SAID-DRV-001" {
		t.Fatalf("expected SAID-DRV-001, got %s", RuleID(err))
	}
}

func TestSaidify_AllCodesProduce44Chars(t *testing.T) {
	for _, code := range deriv.Codes() {
		m := sad.FromPairs(sad.Pair{Key: "d", Val: ""}, sad.Pair{Key: "x", Val: "y"})
		got, out, err := Saidify(m, Options{Code: code})
		if err != nil {
			t.Fatalf("Saidify(%q): %v", code, err)
		}
		if len(got) != 44 {
			t.Fatalf("Saidify(%q): length %d, want 44", code, len(got))
		}
		if !strings.HasPrefix(got, string(code)) {
			t.Fatalf("Saidify(%q): SAID %q lacks its code prefix", code, got)
		}
		ok, err := Verify(out, VerifyOptions{Code: code})
		if err != nil {
			t.Fatalf("Verify(%q): %v", code, err)
		}
		if !ok {
			t.Fatalf("Verify(%q): false for freshly derived SAID", code)
		}
	}
}

func TestDerive_PlaceholderWidthEqualsFullSize(t *testing.T) {
	m := sad.FromPairs(sad.Pair{Key: "d", Val: ""})
	_, derived, err := Derive(m, Options{})
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	v, _ := derived.Get("d")
	if v != strings.Repeat(Placeholder, 44) {
		t.Fatalf("placeholder = %v", v)
	}
}

func TestSaidify_DigestSensitivity(t *testing.T) {
	base := sad.FromPairs(sad.Pair{Key: "d", Val: ""}, sad.Pair{Key: "attr", Val: "value"})
	said1, _, err := Saidify(base, Options{})
	if err != nil {
		t.Fatalf("Saidify: %v", err)
	}
	changed := sad.FromPairs(sad.Pair{Key: "d", Val: ""}, sad.Pair{Key: "attr", Val: "valuf"})
	said2, _, err := Saidify(changed, Options{})
	if err != nil {
		t.Fatalf("Saidify: %v", err)
	}
	if said1 == said2 {
		t.Fatalf("distinct payloads produced the same SAID %q", said1)
	}

	reordered := sad.FromPairs(sad.Pair{Key: "attr", Val: "value"}, sad.Pair{Key: "d", Val: ""})
	said3, _, err := Saidify(reordered, Options{})
	if err != nil {
		t.Fatalf("Saidify: %v", err)
	}
	if said1 == said3 {
		t.Fatalf("key order change did not change the SAID")
	}
}

func TestSaidify_ConstructionPathIrrelevantForBinaryKinds(t *testing.T) {
	built := sad.FromPairs(sad.Pair{Key: "d", Val: ""}, sad.Pair{Key: "n", Val: 7})
	parsed, err := sad.FromJSON([]byte(`{"d":"","n":7}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	for _, kind := range []version.Kind{version.CBOR, version.MGPK} {
		sa, _, err := Saidify(built, Options{Kind: kind})
		if err != nil {
			t.Fatalf("Saidify(built, %s): %v", kind, err)
		}
		sb, _, err := Saidify(parsed, Options{Kind: kind})
		if err != nil {
			t.Fatalf("Saidify(parsed, %s): %v", kind, err)
		}
		if sa != sb {
			t.Fatalf("%s SAID depends on construction path: %q vs %q", kind, sa, sb)
		}
	}
}

func TestSaidify_PriorLabelValueIsIrrelevant(t *testing.T) {
	a := sad.FromPairs(sad.Pair{Key: "d", Val: ""}, sad.Pair{Key: "x", Val: 1})
	b := sad.FromPairs(sad.Pair{Key: "d", Val: "EAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"}, sad.Pair{Key: "x", Val: 1})
	sa, _, err := Saidify(a, Options{})
	if err != nil {
		t.Fatalf("Saidify: %v", err)
	}
	sb, _, err := Saidify(b, Options{})
	if err != nil {
		t.Fatalf("Saidify: %v", err)
	}
	if sa != sb {
		t.Fatalf("prior label value leaked into the digest: %q vs %q", sa, sb)
	}
}

func versionedInput(t *testing.T) *sad.Map {
	t.Helper()
	vs, err := version.Versify(version.KERI, version.Version{Major: 1}, version.JSON, 0)
	if err != nil {
		t.Fatalf("Versify: %v", err)
	}
	return sad.FromPairs(
		sad.Pair{Key: "v", Val: vs},
		sad.Pair{Key: "d", Val: ""},
		sad.Pair{Key: "i", Val: "issuer"},
	)
}

func TestSaidify_Versioned_SizeMatchesFinalBytes(t *testing.T) {
	m := versionedInput(t)
	saidStr, out, err := Saidify(m, Options{})
	if err != nil {
		t.Fatalf("Saidify: %v", err)
	}
	final, err := codec.Encode(out, version.JSON)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	vVal, _ := out.Get("v")
	_, _, _, size, err := version.Deversify(vVal.(string))
	if err != nil {
		t.Fatalf("Deversify: %v", err)
	}
	if size != len(final) {
		t.Fatalf("preamble size %d, final SAD bytes %d", size, len(final))
	}

	ok, err := Verify(out, VerifyOptions{SAID: saidStr, Prefixed: true, Versioned: true})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("strict Verify failed for a freshly saidified versioned SAD")
	}
}

func TestVerify_FalseOnTamperedData(t *testing.T) {
	m := sad.FromPairs(sad.Pair{Key: "d", Val: ""}, sad.Pair{Key: "x", Val: "orig"})
	saidStr, out, err := Saidify(m, Options{})
	if err != nil {
		t.Fatalf("Saidify: %v", err)
	}
	tampered := out.Clone()
	tampered.Set("x", "evil")
	ok, err := Verify(tampered, VerifyOptions{SAID: saidStr})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("Verify accepted tampered data")
	}
}

func TestVerify_PrefixedCrossCheck(t *testing.T) {
	m := sad.FromPairs(sad.Pair{Key: "d", Val: ""}, sad.Pair{Key: "x", Val: 1})
	saidStr, out, err := Saidify(m, Options{})
	if err != nil {
		t.Fatalf("Saidify: %v", err)
	}
	// Embedded value disagrees with the supplied SAID: prefixed mode
	// must fail even though the supplied SAID is itself correct.
	lying := out.Clone()
	lying.Set("d", "EAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	ok, err := Verify(lying, VerifyOptions{SAID: saidStr, Prefixed: true})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("prefixed Verify trusted a mismatched embedded value")
	}
}

func TestVerify_VersionedMismatch(t *testing.T) {
	m := versionedInput(t)
	saidStr, out, err := Saidify(m, Options{})
	if err != nil {
		t.Fatalf("Saidify: %v", err)
	}
	stale := out.Clone()
	vs, err := version.Versify(version.KERI, version.Version{Major: 1}, version.JSON, 1)
	if err != nil {
		t.Fatalf("Versify: %v", err)
	}
	stale.Set("v", vs)
	ok, err := Verify(stale, VerifyOptions{SAID: saidStr, Versioned: true})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatalf("versioned Verify accepted a stale preamble")
	}
}

func TestVerify_MissingDigestField(t *testing.T) {
	m := sad.FromPairs(sad.Pair{Key: "x", Val: 1})
	_, err := Verify(m, VerifyOptions{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsKind(err, KindVerify) {
		t.Fatalf("expected KindVerify, got %v", err)
	}
	if RuleID(err) != "SAID-VFY-001" {
		t.Fatalf("expected SAID-VFY-001, got %s", RuleID(err))
	}
}

func TestVerify_EmbeddedFieldOnly(t *testing.T) {
	m := sad.FromPairs(sad.Pair{Key: "d", Val: ""}, sad.Pair{Key: "x", Val: 1})
	_, out, err := Saidify(m, Options{})
	if err != nil {
		t.Fatalf("Saidify: %v", err)
	}
	ok, err := Verify(out, VerifyOptions{})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("Verify against embedded field failed")
	}
}

func TestSaidify_CustomLabel(t *testing.T) {
	m := sad.FromPairs(sad.Pair{Key: "id", Val: ""}, sad.Pair{Key: "x", Val: 1})
	saidStr, out, err := Saidify(m, Options{Label: "id"})
	if err != nil {
		t.Fatalf("Saidify: %v", err)
	}
	if v, _ := out.Get("id"); v != saidStr {
		t.Fatalf("label field = %v, want %q", v, saidStr)
	}
	ok, err := Verify(out, VerifyOptions{Label: "id"})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("Verify with custom label failed")
	}
}
