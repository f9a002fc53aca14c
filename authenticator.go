package auth

import (
	"context"

	"github.com/goliatone/go-errors"
)

// Auther wires credential verification, token minting, and the refresh
// session registry together.
type Auther struct {
	creds    CredentialStore
	sessions TokenSessions
	tokens   *TokenService
	logger   Logger
}

var _ Authenticator = (*Auther)(nil)

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(creds CredentialStore, sessions TokenSessions, tokens *TokenService) *Auther {
	return &Auther{
		creds:    creds,
		sessions: sessions,
		tokens:   tokens,
		logger:   defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// Login verifies credentials, persists a refresh session, and returns
// an access token bound to that session.
func (s *Auther) Login(ctx context.Context, email, password string) (string, error) {
	identity, err := s.creds.VerifyCredentials(ctx, email, password)
	if err != nil {
		s.logger.Error("login verify credentials: %v", err)
		return "", err
	}

	refreshToken, refreshID, err := s.tokens.IssueRefresh(identity)
	if err != nil {
		s.logger.Error("login issue refresh token: %v", err)
		return "", err
	}

	if err := s.sessions.Put(ctx, refreshID, refreshToken); err != nil {
		s.logger.Error("login persist refresh session: %v", err)
		return "", err
	}

	accessToken, err := s.tokens.IssueAccess(identity, refreshID)
	if err != nil {
		s.logger.Error("login issue access token: %v", err)
		return "", err
	}

	return accessToken, nil
}

// Refresh recovers the identity from a stale access token, checks the
// correlated refresh session, and mints a fresh access token. The
// expiry bypass is narrow: an invalid signature still fails.
func (s *Auther) Refresh(ctx context.Context, staleAccessToken string) (string, error) {
	claims, err := s.tokens.ExpiredClaims(staleAccessToken)
	if err != nil {
		s.logger.Error("refresh parse stale token: %v", err)
		return "", err
	}

	if !claims.HasAccessClaims() || claims.RefreshID == "" {
		return "", ErrSessionNotFound
	}

	refreshToken, err := s.sessions.Get(ctx, claims.RefreshID)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			s.logger.Error("refresh session lookup: %v", err)
		}
		return "", err
	}

	// The stored refresh token bounds the session lifetime. Once it no
	// longer classifies as valid the session is dead.
	if status := s.tokens.Classify(refreshToken); status != TokenStatusPass {
		s.logger.Info("refresh session %s rejected, stored token classified %s", claims.RefreshID, status)
		return "", ErrSessionNotFound
	}

	accessToken, err := s.tokens.IssueAccess(claims.Identity(), claims.RefreshID)
	if err != nil {
		s.logger.Error("refresh issue access token: %v", err)
		return "", err
	}

	return accessToken, nil
}
