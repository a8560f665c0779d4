package tokens

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fintrack/fintrack/backend/go-services/internal/config"
)

func testManager(secret string, ttl time.Duration) *Manager {
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	cfg.JWT.AccessTokenTTL = ttl
	return NewManager(cfg)
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	m := testManager("test-secret-32-bytes-should-be-long", 2*time.Minute)

	tok, err := m.Issue(123, "ann@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	id, err := m.Verify(context.Background(), tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if id.UserID != 123 {
		t.Fatalf("unexpected subject: got=%d want=123", id.UserID)
	}
	if id.Email != "ann@x.com" {
		t.Fatalf("unexpected email claim: %q", id.Email)
	}
}

func TestVerify_Expired(t *testing.T) {
	m := testManager("another-secret-32-bytes-longgggg", 1*time.Second)
	tok, err := m.Issue(7, "x@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	time.Sleep(2 * time.Second)
	_, err = m.Verify(context.Background(), tok)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := testManager("secret-one-32-bytes-xxxxxxxxxxxx", 2*time.Minute)
	verifier := testManager("different-secret-xxxxxxxxxxxxxxx", 2*time.Minute)
	tok, err := issuer.Issue(9, "bob@example.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	_, err = verifier.Verify(context.Background(), tok)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong secret, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	m := testManager("secret-one-32-bytes-xxxxxxxxxxxx", 2*time.Minute)
	_, err := m.Verify(context.Background(), "not.a.jwt")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for malformed input, got %v", err)
	}
}

func TestVerify_AlgNoneRejected(t *testing.T) {
	m := testManager("secret-one-32-bytes-xxxxxxxxxxxx", 2*time.Minute)
	headerEnc := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none"}`))
	payloadEnc := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"1","exp":9999999999}`))
	tok := headerEnc + "." + payloadEnc + "."
	_, err := m.Verify(context.Background(), tok)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for alg=none, got %v", err)
	}
}

func TestVerify_TamperedPayload(t *testing.T) {
	m := testManager("tamper-test-secret-32-bytes-xxxx", 5*time.Minute)
	tok, err := m.Issue(42, "t@example.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token parts")
	}
	payloadBytes, _ := base64.RawURLEncoding.DecodeString(parts[1])
	payloadStr := strings.Replace(string(payloadBytes), `"sub":"42"`, `"sub":"43"`, 1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(payloadStr))
	_, err = m.Verify(context.Background(), strings.Join(parts, "."))
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected signature verification to fail for tampered token, got %v", err)
	}
}

func TestVerify_NonNumericSubject(t *testing.T) {
	m := testManager("subject-test-secret-32-bytes-xxx", 2*time.Minute)
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "not-a-number",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("subject-test-secret-32-bytes-xxx"))
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	_, err = m.Verify(context.Background(), raw)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for non-numeric subject, got %v", err)
	}
}
