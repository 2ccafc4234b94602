package tokenAuth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/MrEthical07/tokenAuth/session"
)

// Config is the complete Engine configuration. Start from [DefaultConfig] and
// override fields; the Builder clones it so later mutation has no effect.
type Config struct {
	JWT      JWTConfig
	Refresh  RefreshConfig
	Cookie   CookieConfig
	Password PasswordConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

/*
====================================
JWT CONFIG
====================================
*/

// JWTConfig controls access token signing.
type JWTConfig struct {
	AccessTTL     time.Duration
	SigningMethod string // "hs256" (default) or "ed25519"
	PrivateKey    []byte
	PublicKey     []byte
	Issuer        string
	KeyID         string
}

/*
====================================
REFRESH CONFIG
====================================
*/

// RefreshConfig controls refresh session lifetime and Redis layout.
type RefreshConfig struct {
	TTL         time.Duration
	RedisPrefix string
}

// CookieConfig describes the refresh token cookie written by the HTTP layer.
type CookieConfig struct {
	Name     string
	Path     string
	Secure   bool
	SameSite http.SameSite
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig selects the default hasher when none is injected.
type PasswordConfig struct {
	Algorithm  string // "bcrypt" (default) or "argon2id"
	BcryptCost int
}

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls in-process counters.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the production defaults: 15 minute access tokens,
// 30 day refresh sessions, secure strict cookies.
func DefaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			AccessTTL:     900 * time.Second,
			SigningMethod: "hs256",
			Issuer:        "tokenauth",
		},
		Refresh: RefreshConfig{
			TTL:         2592000 * time.Second,
			RedisPrefix: session.DefaultPrefix,
		},
		Cookie: CookieConfig{
			Name:     "refreshToken",
			Path:     "/api/auth",
			Secure:   true,
			SameSite: http.SameSiteStrictMode,
		},
		Password: PasswordConfig{
			Algorithm:  "bcrypt",
			BcryptCost: 10,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.JWT.PrivateKey = cloneBytes(cfg.JWT.PrivateKey)
	out.JWT.PublicKey = cloneBytes(cfg.JWT.PublicKey)
	return out
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	// JWT
	if c.JWT.AccessTTL <= 0 {
		return errors.New("JWT AccessTTL must be > 0")
	}
	if strings.TrimSpace(c.JWT.Issuer) == "" {
		return errors.New("JWT Issuer must not be empty")
	}
	switch c.JWT.SigningMethod {
	case "hs256":
		if len(c.JWT.PrivateKey) == 0 {
			return errors.New("hs256 requires PrivateKey")
		}
		if len(c.JWT.PrivateKey) < 32 {
			return errors.New("hs256 PrivateKey must be at least 32 bytes")
		}
	case "ed25519":
		if len(c.JWT.PrivateKey) == 0 && len(c.JWT.PublicKey) == 0 {
			return errors.New("ed25519 requires PrivateKey or PublicKey")
		}
	default:
		return errors.New("unsupported JWT signing method")
	}

	// Refresh
	if c.Refresh.TTL <= 0 {
		return errors.New("Refresh TTL must be > 0")
	}
	if c.Refresh.TTL <= c.JWT.AccessTTL {
		return errors.New("Refresh TTL must be longer than JWT AccessTTL")
	}

	// Cookie
	if strings.TrimSpace(c.Cookie.Name) == "" {
		return errors.New("Cookie Name must not be empty")
	}
	if !strings.HasPrefix(c.Cookie.Path, "/") {
		return errors.New("Cookie Path must start with /")
	}
	if c.Cookie.SameSite == http.SameSiteNoneMode && !c.Cookie.Secure {
		return errors.New("Cookie SameSite=None requires Secure")
	}

	// Password
	switch c.Password.Algorithm {
	case "", "bcrypt", "argon2id":
	default:
		return errors.New("Password Algorithm must be 'bcrypt' or 'argon2id'")
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when enabled")
	}

	return nil
}
