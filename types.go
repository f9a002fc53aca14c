package auth

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Identity is the minimal user-identifying structure attached to an
// authenticated request. It carries no authorities.
type Identity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
	Refresh(ctx context.Context, staleAccessToken string) (string, error)
}

// CredentialStore resolves an email/password pair into an Identity.
type CredentialStore interface {
	VerifyCredentials(ctx context.Context, email, password string) (Identity, error)
}

// AccountRegistrar handles new account registrations.
type AccountRegistrar interface {
	Register(ctx context.Context, name, email, password string) (*Account, error)
}

// TokenSessions maps a refresh token identifier to its raw value.
// Get must return ErrSessionNotFound for unknown ids.
type TokenSessions interface {
	Put(ctx context.Context, refreshID, refreshToken string) error
	Get(ctx context.Context, refreshID string) (string, error)
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// PasswordVerifier authenticates passwords. Implementations must treat
// any mismatch as an error so callers can map it to a fixed
// user-facing failure.
type PasswordVerifier interface {
	Hash(password string) (string, error)
	Compare(password, stored string) error
}

// Config holds auth options
type Config interface {
	GetSigningSecret() string
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
	GetTokenLookup() string
	GetAuthScheme() string
	GetContextKey() string
	GetCookieName() string
	GetCookieDuration() time.Duration
}

// DefaultLogger returns the stdout fallback logger.
func DefaultLogger() Logger {
	return defLogger{}
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
