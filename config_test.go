package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/ftechlab/playauth"
)

func TestLoadConfig(t *testing.T) {
	t.Run("fails without a signing secret", func(t *testing.T) {
		t.Setenv("AUTH_SIGNING_SECRET", "")

		_, err := auth.LoadConfig()
		require.Error(t, err)
	})

	t.Run("defaults apply when only the secret is set", func(t *testing.T) {
		t.Setenv("AUTH_SIGNING_SECRET", testSecret())

		cfg, err := auth.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, testSecret(), cfg.GetSigningSecret())
		assert.Equal(t, 30*time.Minute, cfg.GetAccessTokenTTL())
		assert.Equal(t, 7*24*time.Hour, cfg.GetRefreshTokenTTL())
		assert.Equal(t, "cookie:accessToken", cfg.GetTokenLookup())
		assert.Equal(t, "Bearer", cfg.GetAuthScheme())
		assert.Equal(t, "accessToken", cfg.GetCookieName())
		assert.Equal(t, 24*time.Hour, cfg.GetCookieDuration())
		assert.Equal(t, ":8080", cfg.GetHTTPAddr())
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("AUTH_SIGNING_SECRET", testSecret())
		t.Setenv("AUTH_ACCESS_TOKEN_TTL_MS", "60000")
		t.Setenv("AUTH_REFRESH_TOKEN_TTL_MS", "120000")
		t.Setenv("AUTH_TOKEN_LOOKUP", "header:Authorization")
		t.Setenv("AUTH_AUTH_SCHEME", "Token")
		t.Setenv("AUTH_COOKIE_NAME", "session")
		t.Setenv("AUTH_HTTP_ADDR", ":9090")
		t.Setenv("AUTH_DB_DSN", "file:test.db")

		cfg, err := auth.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, time.Minute, cfg.GetAccessTokenTTL())
		assert.Equal(t, 2*time.Minute, cfg.GetRefreshTokenTTL())
		assert.Equal(t, "header:Authorization", cfg.GetTokenLookup())
		assert.Equal(t, "Token", cfg.GetAuthScheme())
		assert.Equal(t, "session", cfg.GetCookieName())
		assert.Equal(t, ":9090", cfg.GetHTTPAddr())
		assert.Equal(t, "file:test.db", cfg.GetDatabaseDSN())
	})

	t.Run("non positive ttl overrides are ignored", func(t *testing.T) {
		t.Setenv("AUTH_SIGNING_SECRET", testSecret())
		t.Setenv("AUTH_ACCESS_TOKEN_TTL_MS", "0")

		cfg, err := auth.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 30*time.Minute, cfg.GetAccessTokenTTL())
	})
}
