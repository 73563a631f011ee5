package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/itemvault/backend/internal/config"
)

func testCodec(t *testing.T) *TokenCodec {
	t.Helper()
	codec, err := NewTokenCodec(config.AuthConfig{
		SecretKey:            "test-secret",
		Algorithm:            "HS256",
		AccessTokenExpireMin: "30",
	})
	if err != nil {
		t.Fatalf("NewTokenCodec error: %v", err)
	}
	return codec
}

func TestIssueAndVerify(t *testing.T) {
	codec := testCodec(t)

	token, err := codec.Issue("alice", 30*time.Minute)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, ok := codec.Verify(token)
	if !ok {
		t.Fatalf("expected issued token to verify")
	}
	if sub, _ := claims["sub"].(string); sub != "alice" {
		t.Fatalf("sub mismatch: got %q want %q", sub, "alice")
	}
	if typ, _ := claims["type"].(string); typ != "access" {
		t.Fatalf("type mismatch: got %q", typ)
	}
	if jti, _ := claims["jti"].(string); jti == "" {
		t.Fatalf("expected jti claim")
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	codec := testCodec(t)

	token, err := codec.Issue("alice", 0)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Flip a byte in the signature segment.
	tampered := []byte(token)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	if _, ok := codec.Verify(string(tampered)); ok {
		t.Fatalf("expected tampered token to fail verification")
	}
}

func TestVerifyExpired(t *testing.T) {
	codec := testCodec(t)

	token, err := codec.Issue("alice", -1*time.Second)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, ok := codec.Verify(token); ok {
		t.Fatalf("expected already-expired token to fail verification")
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	codec := testCodec(t)

	other, err := NewTokenCodec(config.AuthConfig{
		SecretKey:            "another-secret",
		Algorithm:            "HS256",
		AccessTokenExpireMin: "30",
	})
	if err != nil {
		t.Fatalf("NewTokenCodec error: %v", err)
	}

	token, err := other.Issue("alice", 0)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, ok := codec.Verify(token); ok {
		t.Fatalf("expected token signed with a different secret to fail")
	}
}

func TestVerifyMalformed(t *testing.T) {
	codec := testCodec(t)
	if _, ok := codec.Verify("not.a.jwt"); ok {
		t.Fatalf("expected malformed token to fail verification")
	}
	if _, ok := codec.Verify(""); ok {
		t.Fatalf("expected empty token to fail verification")
	}
}

func TestVerifyRejectsNonAccessType(t *testing.T) {
	codec := testCodec(t)

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "alice",
		"type": "refresh",
		"exp":  jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}

	if _, ok := codec.Verify(raw); ok {
		t.Fatalf("expected non-access token to fail verification")
	}
}

func TestVerifyRejectsAlgorithmMismatch(t *testing.T) {
	codec := testCodec(t)

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub":  "alice",
		"type": "access",
		"exp":  jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}

	if _, ok := codec.Verify(raw); ok {
		t.Fatalf("expected token signed with a different algorithm to fail")
	}
}

func TestNewTokenCodecConfig(t *testing.T) {
	if _, err := NewTokenCodec(config.AuthConfig{Algorithm: "HS256", AccessTokenExpireMin: "30"}); err == nil {
		t.Fatalf("expected error for missing secret")
	}
	if _, err := NewTokenCodec(config.AuthConfig{SecretKey: "k", Algorithm: "none", AccessTokenExpireMin: "30"}); err == nil {
		t.Fatalf("expected error for unsupported algorithm")
	}
	if _, err := NewTokenCodec(config.AuthConfig{SecretKey: "k", Algorithm: "HS256", AccessTokenExpireMin: "abc"}); err == nil {
		t.Fatalf("expected error for invalid expire minutes")
	}

	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		codec, err := NewTokenCodec(config.AuthConfig{SecretKey: "k", Algorithm: alg, AccessTokenExpireMin: "30"})
		if err != nil {
			t.Fatalf("NewTokenCodec(%s) error: %v", alg, err)
		}
		token, err := codec.Issue("bob", 0)
		if err != nil {
			t.Fatalf("Issue(%s) error: %v", alg, err)
		}
		if _, ok := codec.Verify(token); !ok {
			t.Fatalf("roundtrip failed for %s", alg)
		}
	}
}

func TestIssueDefaultTTL(t *testing.T) {
	codec := testCodec(t)
	if codec.DefaultTTL() != 30*time.Minute {
		t.Fatalf("DefaultTTL mismatch: got %v", codec.DefaultTTL())
	}

	token, err := codec.Issue("alice", 0)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	claims, ok := codec.Verify(token)
	if !ok {
		t.Fatalf("expected default-TTL token to verify")
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		t.Fatalf("expected exp claim: %v", err)
	}
	remaining := time.Until(exp.Time)
	if remaining < 29*time.Minute || remaining > 31*time.Minute {
		t.Fatalf("expected ~30m ttl, got %v", remaining)
	}
}
