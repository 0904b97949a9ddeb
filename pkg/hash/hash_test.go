package hash

import "testing"

func TestSHA256Hex(t *testing.T) {
	// Known SHA256 of "hello"
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	got := SHA256Hex("hello")
	if got != want {
		t.Errorf("SHA256Hex(\"hello\") = %s, want %s", got, want)
	}
}

func TestSHA256Hex_Empty(t *testing.T) {
	// SHA256 of empty string
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	got := SHA256Hex("")
	if got != want {
		t.Errorf("SHA256Hex(\"\") = %s, want %s", got, want)
	}
}

func TestIP(t *testing.T) {
	ip := "192.168.1.1"
	salt := "random-salt-value"
	h := IP(ip, salt)

	// Should be 64 hex chars
	if len(h) != 64 {
		t.Errorf("IP hash length = %d, want 64", len(h))
	}

	// Deterministic
	if h != IP(ip, salt) {
		t.Error("IP hash should be deterministic")
	}

	// Different salt should produce different hash
	if h == IP(ip, "different-salt") {
		t.Error("different salts should produce different hashes")
	}

	// Different IP should produce different hash
	if h == IP("10.0.0.1", salt) {
		t.Error("different IPs should produce different hashes")
	}
}

func TestShortIP(t *testing.T) {
	short := ShortIP("192.168.1.1", "salt")
	if len(short) != 12 {
		t.Errorf("ShortIP length = %d, want 12", len(short))
	}
	if short != IP("192.168.1.1", "salt")[:12] {
		t.Error("ShortIP should be a prefix of the full hash")
	}
}
