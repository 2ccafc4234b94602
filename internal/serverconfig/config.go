// Package serverconfig reads the tokenauth-server settings from the
// environment, after loading an optional .env file.
package serverconfig

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tokenAuth "github.com/MrEthical07/tokenAuth"
	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	HTTPAddr string
	LogLevel string

	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	SecureCookies bool
	JWTSecret     string
	JWTIssuer     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	UserStore   string
	PostgresDSN string

	MetricsEnabled bool
	AuditEnabled   bool
}

// Load reads files with godotenv (missing files are skipped; existing
// variables win) and then parses the environment.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	var errs []error
	cfg := Config{
		HTTPAddr:      GetEnv("HTTP_ADDR", ":8080"),
		LogLevel:      strings.ToLower(GetEnv("LOG_LEVEL", "info")),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTIssuer:     GetEnv("JWT_ISSUER", "tokenauth"),
		RedisAddr:     GetEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		UserStore:     strings.ToLower(GetEnv("USER_STORE", StoreMemory)),
		PostgresDSN:   os.Getenv("POSTGRES_DSN"),
	}

	access, err := GetEnvAsInt("ACCESS_TOKEN_DURATION_SECONDS", 900)
	errs = append(errs, err)
	refresh, err := GetEnvAsInt("REFRESH_TOKEN_DURATION_SECONDS", 2592000)
	errs = append(errs, err)
	cfg.AccessTTL = time.Duration(access) * time.Second
	cfg.RefreshTTL = time.Duration(refresh) * time.Second

	cfg.RedisDB, err = GetEnvAsInt("REDIS_DB", 0)
	errs = append(errs, err)
	cfg.SecureCookies, err = GetEnvAsBool("SECURE_COOKIES", true)
	errs = append(errs, err)
	cfg.MetricsEnabled, err = GetEnvAsBool("METRICS_ENABLED", true)
	errs = append(errs, err)
	cfg.AuditEnabled, err = GetEnvAsBool("AUDIT_ENABLED", false)
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.UserStore {
	case StoreMemory:
	case StorePostgres:
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required when USER_STORE=postgres")
		}
	default:
		return fmt.Errorf("USER_STORE must be %q or %q, got %q", StoreMemory, StorePostgres, c.UserStore)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}

// Engine maps the server settings onto an engine configuration.
func (c Config) Engine() tokenAuth.Config {
	cfg := tokenAuth.DefaultConfig()
	cfg.JWT.AccessTTL = c.AccessTTL
	cfg.JWT.PrivateKey = []byte(c.JWTSecret)
	cfg.JWT.Issuer = c.JWTIssuer
	cfg.Refresh.TTL = c.RefreshTTL
	cfg.Cookie.Secure = c.SecureCookies
	cfg.Metrics.Enabled = c.MetricsEnabled
	cfg.Metrics.EnableLatencyHistograms = c.MetricsEnabled
	cfg.Audit.Enabled = c.AuditEnabled
	return cfg
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", key, value)
	}
	return n, nil
}

func GetEnvAsBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %q is not a boolean", key, value)
	}
	return b, nil
}
