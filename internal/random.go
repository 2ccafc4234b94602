package internal

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// TokenIDSize is the number of random bytes behind every refresh token id.
const TokenIDSize = 32

var errTokenIDSize = errors.New("invalid token id size")

// NewTokenID returns 32 bytes from crypto/rand encoded as base64url
// without padding (43 characters).
func NewTokenID() (string, error) {
	var raw [TokenIDSize]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw[:]), nil
}

// ParseTokenID decodes a token id produced by NewTokenID.
func ParseTokenID(id string) ([TokenIDSize]byte, error) {
	var out [TokenIDSize]byte

	raw, err := base64.RawURLEncoding.DecodeString(id)
	if err != nil {
		return out, err
	}
	if len(raw) != TokenIDSize {
		return out, errTokenIDSize
	}
	copy(out[:], raw)
	return out, nil
}

// ValidTokenID reports whether id has the shape of a generated token id.
// Used to short-circuit lookups for values that could never have been issued.
func ValidTokenID(id string) bool {
	if len(id) != base64.RawURLEncoding.EncodedLen(TokenIDSize) {
		return false
	}
	_, err := ParseTokenID(id)
	return err == nil
}
