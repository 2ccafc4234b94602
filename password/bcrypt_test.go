package password

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHashAndMatch(t *testing.T) {
	h, err := NewBcrypt(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewBcrypt error: %v", err)
	}
	hash, err := h.Hash("password1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Fatalf("unexpected bcrypt prefix: %s", hash)
	}
	if !h.Matches("password1", hash) {
		t.Fatal("expected bcrypt match")
	}
	if h.Matches("password2", hash) {
		t.Fatal("expected bcrypt mismatch")
	}
	if h.Matches("password1", "not-a-hash") {
		t.Fatal("malformed hash must not match")
	}
}

func TestBcryptRejectsShortPassword(t *testing.T) {
	h, err := NewBcrypt(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewBcrypt error: %v", err)
	}
	if _, err := h.Hash("abc123"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestBcryptLongPasswordTruncated(t *testing.T) {
	h, err := NewBcrypt(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewBcrypt error: %v", err)
	}
	long := strings.Repeat("a1", 50)
	hash, err := h.Hash(long)
	if err != nil {
		t.Fatalf("100-char password must hash: %v", err)
	}
	if !h.Matches(long, hash) {
		t.Fatal("expected long password to match")
	}
}

func TestBcryptCostValidation(t *testing.T) {
	if _, err := NewBcrypt(bcrypt.MaxCost + 1); err == nil {
		t.Fatal("expected cost error")
	}
	h, err := NewBcrypt(0)
	if err != nil {
		t.Fatalf("zero cost should select default: %v", err)
	}
	if h.cost != bcrypt.DefaultCost {
		t.Fatalf("cost = %d", h.cost)
	}
}

func TestBcryptNeedsUpgrade(t *testing.T) {
	weak, err := NewBcrypt(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewBcrypt error: %v", err)
	}
	hash, err := weak.Hash("password1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	strong, err := NewBcrypt(bcrypt.MinCost + 1)
	if err != nil {
		t.Fatalf("NewBcrypt error: %v", err)
	}
	up, err := strong.NeedsUpgrade(hash)
	if err != nil || !up {
		t.Fatalf("expected upgrade, got %v / %v", up, err)
	}
}
