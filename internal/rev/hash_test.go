package rev

import (
	"strings"
	"testing"
)

func TestContentChecksum_Deterministic(t *testing.T) {
	a := ContentChecksum([]byte("def sq(x):\n    return x * x\n"))
	b := ContentChecksum([]byte("def sq(x):\n    return x * x\n"))
	if a != b {
		t.Errorf("same content, different checksums: %s vs %s", a, b)
	}
	if len(a) != 64 || strings.ToLower(a) != a {
		t.Errorf("checksum %q is not lowercase hex sha256", a)
	}
}

func TestContentChecksum_DiffersOnContent(t *testing.T) {
	a := ContentChecksum([]byte("x = 1\n"))
	b := ContentChecksum([]byte("x = 2\n"))
	if a == b {
		t.Error("different content produced the same checksum")
	}
}

func TestContentChecksum_NFCNormalization(t *testing.T) {
	// U+00E9 (precomposed) vs U+0065 U+0301 (decomposed): identical text,
	// different byte encodings.
	composed := ContentChecksum([]byte("# caf\u00e9\n"))
	decomposed := ContentChecksum([]byte("# cafe\u0301\n"))
	if composed != decomposed {
		t.Errorf("NFC-equivalent content hashed differently: %s vs %s", composed, decomposed)
	}
}

func TestContentChecksum_EmptyContent(t *testing.T) {
	// Empty content still yields a domain-bound checksum, not the bare
	// sha256 of the empty string.
	got := ContentChecksum(nil)
	const bareEmpty = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got == bareEmpty {
		t.Error("checksum of empty content is not domain-separated")
	}
	if got != ContentChecksum([]byte{}) {
		t.Error("nil and empty slice hashed differently")
	}
}
