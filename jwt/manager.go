package jwt

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformedToken is returned by Decode when the token cannot be parsed.
	ErrMalformedToken = errors.New("malformed access token")
	// ErrInvalidSignature is returned by Decode when the signature does not verify.
	ErrInvalidSignature = errors.New("invalid access token signature")
)

// SigningMethod selects the JWS algorithm used for access tokens.
type SigningMethod string

const (
	// MethodHS256 signs with a shared HMAC-SHA256 secret.
	MethodHS256 SigningMethod = "hs256"
	// MethodEd25519 signs with an Ed25519 private key and verifies with its public key.
	MethodEd25519 SigningMethod = "ed25519"
)

// Config configures a [Manager]. It is read once by NewManager.
type Config struct {
	AccessTTL     time.Duration
	SigningMethod SigningMethod
	// PrivateKey is the HMAC secret for HS256, or the Ed25519 private key
	// (raw 64 bytes or PEM) for Ed25519.
	PrivateKey []byte
	// PublicKey is only used by Ed25519. It is derived from PrivateKey when empty.
	PublicKey []byte
	Issuer    string
	KeyID     string
	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time
}

// Claims is the access-token claim set: sub, iss, iat, exp and role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Manager encodes and verifies access tokens with a single process-wide key.
// It holds no mutable state and is safe for concurrent use.
type Manager struct {
	config    Config
	method    jwt.SigningMethod
	signKey   any
	verifyKey any
	now       func() time.Time
}

// NewManager validates cfg and resolves the signing material once.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.AccessTTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	cfg.Issuer = strings.TrimSpace(cfg.Issuer)
	if cfg.Issuer == "" {
		return nil, errors.New("issuer required")
	}
	cfg.KeyID = strings.TrimSpace(cfg.KeyID)
	if cfg.SigningMethod == "" {
		cfg.SigningMethod = MethodHS256
	}

	m := &Manager{config: cfg, now: cfg.Now}
	if m.now == nil {
		m.now = time.Now
	}

	switch cfg.SigningMethod {
	case MethodHS256:
		if len(cfg.PrivateKey) == 0 {
			return nil, errors.New("hs256 requires private key")
		}
		key := append([]byte(nil), cfg.PrivateKey...)
		m.method = jwt.SigningMethodHS256
		m.signKey = key
		m.verifyKey = key
	case MethodEd25519:
		m.method = jwt.SigningMethodEdDSA
		if len(cfg.PrivateKey) > 0 {
			priv, err := parseEdPrivateKey(cfg.PrivateKey)
			if err != nil {
				return nil, err
			}
			m.signKey = priv
			m.verifyKey = priv.Public().(ed25519.PublicKey)
		}
		if len(cfg.PublicKey) > 0 {
			pub, err := parseEdPublicKey(cfg.PublicKey)
			if err != nil {
				return nil, err
			}
			m.verifyKey = pub
		}
		if m.verifyKey == nil {
			return nil, errors.New("ed25519 requires private or public key")
		}
	default:
		return nil, errors.New("unsupported signing method")
	}

	return m, nil
}

// Issuer returns the configured issuer string.
func (m *Manager) Issuer() string {
	return m.config.Issuer
}

// AccessTTL returns the lifetime stamped on every issued token.
func (m *Manager) AccessTTL() time.Duration {
	return m.config.AccessTTL
}

// Encode issues a signed access token for userID with iat=now and
// exp=now+AccessTTL.
func (m *Manager) Encode(userID, role string) (string, error) {
	if m.signKey == nil {
		return "", errors.New("manager has no signing key")
	}
	now := m.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    m.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.AccessTTL)),
		},
	}

	token := jwt.NewWithClaims(m.method, claims)
	if m.config.KeyID != "" {
		token.Header["kid"] = m.config.KeyID
	}
	return token.SignedString(m.signKey)
}

// Decode verifies the signature and structure of tokenStr and returns its
// claims. Expiry and issuer are not enforced here; see IsValid.
//
// The returned error wraps ErrMalformedToken or ErrInvalidSignature.
func (m *Manager) Decode(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{m.method.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	claims := &Claims{}
	_, err := parser.ParseWithClaims(tokenStr, claims, m.keyFunc)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		default:
			return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
		}
	}
	return claims, nil
}

// IsValid reports whether tokenStr decodes, carries the configured issuer,
// and expires strictly after now. It never returns an error.
func (m *Manager) IsValid(tokenStr string) (valid bool) {
	defer func() {
		if recover() != nil {
			valid = false
		}
	}()

	claims, err := m.Decode(tokenStr)
	if err != nil {
		return false
	}
	if claims.Issuer != m.config.Issuer {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Time.After(m.now())
}

// SubjectOf decodes tokenStr and returns its subject. Callers are expected
// to have checked IsValid first.
func (m *Manager) SubjectOf(tokenStr string) (string, error) {
	claims, err := m.Decode(tokenStr)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrMalformedToken)
	}
	return claims.Subject, nil
}

func (m *Manager) keyFunc(t *jwt.Token) (any, error) {
	if t.Method.Alg() != m.method.Alg() {
		return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
	}
	if m.config.KeyID != "" {
		kid, _ := t.Header["kid"].(string)
		if kid != m.config.KeyID {
			return nil, errors.New("unknown kid")
		}
	}
	return m.verifyKey, nil
}

func parseEdPrivateKey(key []byte) (ed25519.PrivateKey, error) {
	if len(key) == ed25519.PrivateKeySize {
		return ed25519.PrivateKey(key), nil
	}
	parsed, err := jwt.ParseEdPrivateKeyFromPEM(key)
	if err != nil {
		return nil, errors.New("invalid ed25519 private key")
	}
	edKey, ok := parsed.(ed25519.PrivateKey)
	if !ok {
		return nil, errors.New("invalid ed25519 private key type")
	}
	return edKey, nil
}

func parseEdPublicKey(key []byte) (ed25519.PublicKey, error) {
	if len(key) == ed25519.PublicKeySize {
		return ed25519.PublicKey(key), nil
	}
	parsed, err := jwt.ParseEdPublicKeyFromPEM(key)
	if err != nil {
		return nil, errors.New("invalid ed25519 public key")
	}
	edKey, ok := parsed.(ed25519.PublicKey)
	if !ok {
		return nil, errors.New("invalid ed25519 public key type")
	}
	return edKey, nil
}
