package jwt

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"testing"
	"time"

	gjwt "github.com/golang-jwt/jwt/v5"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func newHSManager(t *testing.T, issuer string, now func() time.Time) *Manager {
	t.Helper()
	m, err := NewManager(Config{
		AccessTTL:     time.Minute,
		SigningMethod: MethodHS256,
		PrivateKey:    testKey,
		Issuer:        issuer,
		Now:           now,
	})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return m
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewManagerRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"zero ttl", Config{SigningMethod: MethodHS256, PrivateKey: testKey, Issuer: "x"}},
		{"empty issuer", Config{AccessTTL: time.Minute, SigningMethod: MethodHS256, PrivateKey: testKey, Issuer: "  "}},
		{"missing hs key", Config{AccessTTL: time.Minute, SigningMethod: MethodHS256, Issuer: "x"}},
		{"unknown method", Config{AccessTTL: time.Minute, SigningMethod: "rs512", PrivateKey: testKey, Issuer: "x"}},
		{"ed25519 without keys", Config{AccessTTL: time.Minute, SigningMethod: MethodEd25519, Issuer: "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewManager(tc.cfg); err == nil {
				t.Fatal("expected config error")
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	issued := time.Unix(1_700_000_000, 0)
	m := newHSManager(t, "tokenauth", fixedClock(issued))

	token, err := m.Encode("user-1", "ADMIN")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	claims, err := m.Decode(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.Subject != "user-1" || claims.Role != "ADMIN" || claims.Issuer != "tokenauth" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if !claims.IssuedAt.Time.Equal(issued) {
		t.Fatalf("iat = %v, want %v", claims.IssuedAt.Time, issued)
	}
	if got := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time); got != time.Minute {
		t.Fatalf("exp - iat = %v, want 1m", got)
	}
}

func TestDecodeClassifiesFailures(t *testing.T) {
	m := newHSManager(t, "tokenauth", nil)

	if _, err := m.Decode("not.a.jwt"); !errors.Is(err, ErrMalformedToken) {
		t.Fatalf("expected ErrMalformedToken, got %v", err)
	}
	if _, err := m.Decode(""); !errors.Is(err, ErrMalformedToken) {
		t.Fatalf("expected ErrMalformedToken for empty input, got %v", err)
	}

	other, err := NewManager(Config{
		AccessTTL:     time.Minute,
		SigningMethod: MethodHS256,
		PrivateKey:    []byte("another-secret-another-secret-00"),
		Issuer:        "tokenauth",
	})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	foreign, err := other.Encode("user-1", "USER")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := m.Decode(foreign); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestDecodeDoesNotEnforceExpiry(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	issuer := newHSManager(t, "tokenauth", fixedClock(past))
	token, err := issuer.Encode("user-1", "USER")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	m := newHSManager(t, "tokenauth", nil)
	if _, err := m.Decode(token); err != nil {
		t.Fatalf("expired token should still decode: %v", err)
	}
	if m.IsValid(token) {
		t.Fatal("expired token must not be valid")
	}
}

func TestIsValidChecksIssuerAndStrictExpiry(t *testing.T) {
	issued := time.Unix(1_700_000_000, 0)
	m := newHSManager(t, "tokenauth", fixedClock(issued))
	token, err := m.Encode("user-1", "USER")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if !m.IsValid(token) {
		t.Fatal("fresh token should be valid")
	}

	atExpiry := newHSManager(t, "tokenauth", fixedClock(issued.Add(time.Minute)))
	if atExpiry.IsValid(token) {
		t.Fatal("token whose exp equals now must be invalid")
	}

	justBefore := newHSManager(t, "tokenauth", fixedClock(issued.Add(time.Minute-time.Millisecond)))
	if !justBefore.IsValid(token) {
		t.Fatal("token should be valid just before exp")
	}

	otherIssuer := newHSManager(t, "someone-else", fixedClock(issued))
	if otherIssuer.IsValid(token) {
		t.Fatal("token from a different issuer must be invalid")
	}

	if m.IsValid("garbage") {
		t.Fatal("garbage must be invalid")
	}
}

func TestIsValidRejectsMissingExpiry(t *testing.T) {
	m := newHSManager(t, "tokenauth", nil)
	raw := gjwt.NewWithClaims(gjwt.SigningMethodHS256, Claims{
		Role: "USER",
		RegisteredClaims: gjwt.RegisteredClaims{
			Subject: "user-1",
			Issuer:  "tokenauth",
		},
	})
	token, err := raw.SignedString(testKey)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if m.IsValid(token) {
		t.Fatal("token without exp must be invalid")
	}
}

func TestDecodeRejectsWrongAlgorithm(t *testing.T) {
	m := newHSManager(t, "tokenauth", nil)
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate ed25519 key: %v", err)
	}
	raw := gjwt.NewWithClaims(gjwt.SigningMethodEdDSA, Claims{
		RegisteredClaims: gjwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    "tokenauth",
			ExpiresAt: gjwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	token, err := raw.SignedString(priv)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := m.Decode(token); err == nil {
		t.Fatal("expected wrong algorithm to be rejected")
	}
	if m.IsValid(token) {
		t.Fatal("wrong algorithm must be invalid")
	}
}

func TestSubjectOf(t *testing.T) {
	m := newHSManager(t, "tokenauth", nil)
	token, err := m.Encode("user-42", "USER")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	sub, err := m.SubjectOf(token)
	if err != nil {
		t.Fatalf("subject: %v", err)
	}
	if sub != "user-42" {
		t.Fatalf("subject = %q", sub)
	}
	if _, err := m.SubjectOf("x.y.z"); err == nil {
		t.Fatal("expected subject error for malformed token")
	}
}

func TestEd25519RoundTripAndKid(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate ed25519 key: %v", err)
	}
	signer, err := NewManager(Config{
		AccessTTL:     time.Minute,
		SigningMethod: MethodEd25519,
		PrivateKey:    priv,
		Issuer:        "tokenauth",
		KeyID:         "k1",
	})
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	verifier, err := NewManager(Config{
		AccessTTL:     time.Minute,
		SigningMethod: MethodEd25519,
		PublicKey:     pub,
		Issuer:        "tokenauth",
		KeyID:         "k1",
	})
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}

	token, err := signer.Encode("user-1", "USER")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !verifier.IsValid(token) {
		t.Fatal("expected ed25519 token to verify with public key")
	}
	if _, err := verifier.Encode("user-1", "USER"); err == nil {
		t.Fatal("verify-only manager must not sign")
	}

	otherKid, err := NewManager(Config{
		AccessTTL:     time.Minute,
		SigningMethod: MethodEd25519,
		PublicKey:     pub,
		Issuer:        "tokenauth",
		KeyID:         "k2",
	})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if otherKid.IsValid(token) {
		t.Fatal("expected kid mismatch to be rejected")
	}
}
