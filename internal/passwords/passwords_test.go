package passwords

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	h, err := Hash("secret1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if h == "secret1" || h == "" {
		t.Fatalf("hash must not equal or leak the plaintext")
	}
	if !strings.HasPrefix(h, "$2") {
		t.Fatalf("expected a bcrypt hash, got %q", h)
	}
	if !Verify("secret1", h) {
		t.Fatalf("Verify should accept the original plaintext")
	}
	if Verify("secret2", h) {
		t.Fatalf("Verify should reject a wrong password")
	}
}

func TestHashIsSalted(t *testing.T) {
	h1, err := Hash("secret1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	h2, err := Hash("secret1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same plaintext must differ (salt)")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	if Verify("secret1", "not-a-bcrypt-hash") {
		t.Fatalf("malformed hash must read as mismatch")
	}
	if Verify("secret1", "") {
		t.Fatalf("empty hash must read as mismatch")
	}
}
