package auth

import (
	"strings"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces every configuration variable, e.g.
// AUTH_SIGNING_SECRET or AUTH_ACCESS_TOKEN_TTL_MS.
const envPrefix = "AUTH_"

// EnvConfig is the environment backed Config implementation. TTL
// variables are milliseconds to stay wire compatible with the original
// configuration surface.
type EnvConfig struct {
	SigningSecret   string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	TokenLookup     string
	AuthScheme      string
	ContextKey      string
	CookieName      string
	CookieDuration  time.Duration
	HTTPAddr        string
	DatabaseDSN     string
}

var _ Config = (*EnvConfig)(nil)

// DefaultConfig returns the configuration defaults before environment
// overrides. The signing secret has no default on purpose.
func DefaultConfig() *EnvConfig {
	return &EnvConfig{
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		TokenLookup:     "cookie:accessToken",
		AuthScheme:      "Bearer",
		ContextKey:      "identity",
		CookieName:      "accessToken",
		CookieDuration:  24 * time.Hour,
		HTTPAddr:        ":8080",
		DatabaseDSN:     "file:playauth.db?cache=shared",
	}
}

// LoadConfig reads AUTH_* environment variables over the defaults.
func LoadConfig() (*EnvConfig, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to read environment configuration")
	}

	cfg := DefaultConfig()

	cfg.SigningSecret = k.String("signing_secret")

	if ms := k.Int64("access_token_ttl_ms"); ms > 0 {
		cfg.AccessTokenTTL = time.Duration(ms) * time.Millisecond
	}
	if ms := k.Int64("refresh_token_ttl_ms"); ms > 0 {
		cfg.RefreshTokenTTL = time.Duration(ms) * time.Millisecond
	}

	if v := k.String("token_lookup"); v != "" {
		cfg.TokenLookup = v
	}
	if v := k.String("auth_scheme"); v != "" {
		cfg.AuthScheme = v
	}
	if v := k.String("cookie_name"); v != "" {
		cfg.CookieName = v
	}
	if v := k.String("http_addr"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := k.String("db_dsn"); v != "" {
		cfg.DatabaseDSN = v
	}

	if strings.TrimSpace(cfg.SigningSecret) == "" {
		return nil, errors.New("AUTH_SIGNING_SECRET is required", errors.CategoryValidation).
			WithTextCode("CONFIG_SIGNING_SECRET")
	}

	return cfg, nil
}

func (c *EnvConfig) GetSigningSecret() string { return c.SigningSecret }

func (c *EnvConfig) GetAccessTokenTTL() time.Duration { return c.AccessTokenTTL }

func (c *EnvConfig) GetRefreshTokenTTL() time.Duration { return c.RefreshTokenTTL }

func (c *EnvConfig) GetTokenLookup() string { return c.TokenLookup }

func (c *EnvConfig) GetAuthScheme() string { return c.AuthScheme }

func (c *EnvConfig) GetContextKey() string { return c.ContextKey }

func (c *EnvConfig) GetCookieName() string { return c.CookieName }

func (c *EnvConfig) GetCookieDuration() time.Duration { return c.CookieDuration }

func (c *EnvConfig) GetHTTPAddr() string { return c.HTTPAddr }

func (c *EnvConfig) GetDatabaseDSN() string { return c.DatabaseDSN }
