package serverconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.RefreshTTL)
	assert.True(t, cfg.SecureCookies)
	assert.Equal(t, "tokenauth", cfg.JWTIssuer)
	assert.Equal(t, StoreMemory, cfg.UserStore)
	assert.Equal(t, ":8080", cfg.HTTPAddr)

	eng := cfg.Engine()
	require.NoError(t, eng.Validate())
	assert.Equal(t, cfg.AccessTTL, eng.JWT.AccessTTL)
	assert.Equal(t, cfg.RefreshTTL, eng.Refresh.TTL)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("ACCESS_TOKEN_DURATION_SECONDS", "60")
	t.Setenv("REFRESH_TOKEN_DURATION_SECONDS", "3600")
	t.Setenv("SECURE_COOKIES", "false")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("USER_STORE", "Postgres")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/tokenauth")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.AccessTTL)
	assert.Equal(t, time.Hour, cfg.RefreshTTL)
	assert.False(t, cfg.SecureCookies)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, StorePostgres, cfg.UserStore)
	assert.False(t, cfg.Engine().Cookie.Secure)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("ACCESS_TOKEN_DURATION_SECONDS", "soon")
	t.Setenv("SECURE_COOKIES", "maybe")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ACCESS_TOKEN_DURATION_SECONDS")
	assert.Contains(t, err.Error(), "SECURE_COOKIES")
}

func TestValidate(t *testing.T) {
	base := Config{UserStore: StoreMemory, JWTSecret: "s"}
	assert.NoError(t, base.Validate())

	noSecret := base
	noSecret.JWTSecret = ""
	assert.Error(t, noSecret.Validate())

	pgNoDSN := base
	pgNoDSN.UserStore = StorePostgres
	assert.Error(t, pgNoDSN.Validate())

	unknown := base
	unknown.UserStore = "mongo"
	assert.Error(t, unknown.Validate())
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=from-file-from-file-from-file-123\nHTTP_ADDR=:9999\n"), 0o600))
	t.Setenv("JWT_SECRET", "")
	t.Setenv("HTTP_ADDR", "")
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("HTTP_ADDR")

	cfg, err := Load(path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, "from-file-from-file-from-file-123", cfg.JWTSecret)
}
