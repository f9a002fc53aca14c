package auth

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// minSigningKeyBytes is the HMAC-SHA-256 key size floor.
const minSigningKeyBytes = 32

// TokenService issues and validates HS256 signed tokens. The signing
// key is decoded once at construction and is read-only afterwards, so
// a single instance is safe for concurrent use.
type TokenService struct {
	signingKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     Logger
	timeFunc   func() time.Time
}

// NewTokenService decodes the base64 signing secret and fails fast if
// it is missing or shorter than 256 bits. This is a configuration
// error; callers should treat it as fatal.
func NewTokenService(cfg Config, logger Logger) (*TokenService, error) {
	if logger == nil {
		logger = defLogger{}
	}

	secret := strings.TrimSpace(cfg.GetSigningSecret())
	if secret == "" {
		return nil, errors.New("signing secret is required", errors.CategoryValidation).
			WithTextCode("CONFIG_SIGNING_SECRET")
	}

	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "signing secret is not valid base64").
			WithTextCode("CONFIG_SIGNING_SECRET")
	}

	if len(key) < minSigningKeyBytes {
		return nil, errors.New(
			fmt.Sprintf("signing secret must decode to at least %d bytes for HS256, got %d", minSigningKeyBytes, len(key)),
			errors.CategoryValidation,
		).WithTextCode("CONFIG_SIGNING_SECRET")
	}

	return &TokenService{
		signingKey: key,
		accessTTL:  cfg.GetAccessTokenTTL(),
		refreshTTL: cfg.GetRefreshTokenTTL(),
		logger:     logger,
		timeFunc:   time.Now,
	}, nil
}

func (ts *TokenService) WithLogger(logger Logger) *TokenService {
	ts.logger = logger
	return ts
}

// WithTimeFunc overrides the clock used for issuance and expiry checks.
func (ts *TokenService) WithTimeFunc(fn func() time.Time) *TokenService {
	if fn != nil {
		ts.timeFunc = fn
	}
	return ts
}

// IssueAccess mints an access token bound to the given identity. The
// refreshID correlates it with a persisted refresh session and may be
// empty when no session registry is in play.
func (ts *TokenService) IssueAccess(identity Identity, refreshID string) (string, error) {
	now := ts.timeFunc()
	claims := &AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Name,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.accessTTL)),
		},
		UID:       identity.ID,
		Name:      identity.Name,
		RefreshID: refreshID,
	}

	return ts.sign(claims)
}

// IssueRefresh mints a refresh token with a freshly generated id. The
// returned id is the session registry lookup key.
func (ts *TokenService) IssueRefresh(identity Identity) (string, string, error) {
	now := ts.timeFunc()
	refreshID := uuid.NewString()
	claims := &jwt.RegisteredClaims{
		Subject:   identity.Name,
		ID:        refreshID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ts.refreshTTL)),
	}

	token, err := ts.sign(claims)
	if err != nil {
		return "", "", err
	}

	return token, refreshID, nil
}

func (ts *TokenService) sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign token")
	}

	return signed, nil
}

// Classify verifies signature and expiry and reports one of the fixed
// token statuses. It never returns an error; every parse failure folds
// into a status.
func (ts *TokenService) Classify(raw string) TokenStatus {
	if strings.TrimSpace(raw) == "" {
		return TokenStatusInvalid
	}

	_, err := ts.parse(raw, false)
	if err == nil {
		return TokenStatusPass
	}

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		ts.logger.Debug("token classify: expired: %v", err)
		return TokenStatusExpired
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		ts.logger.Debug("token classify: unsupported: %v", err)
		return TokenStatusUnsupported
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenMalformed):
		ts.logger.Debug("token classify: invalid: %v", err)
		return TokenStatusInvalid
	default:
		ts.logger.Debug("token classify: invalid: %v", err)
		return TokenStatusInvalid
	}
}

// Claims strictly parses the token. Callers must not reach for this
// without first confirming a Pass classification, or accepting an
// expiry failure explicitly.
func (ts *TokenService) Claims(raw string) (*AccessClaims, error) {
	claims, err := ts.parse(raw, false)
	if err != nil {
		return nil, ts.claimsError(err)
	}
	return claims, nil
}

// ExpiredClaims verifies the signature but disables the expiry check.
// Only the refresh flow uses it, to recover the identity from a stale
// access token. A bad signature still fails.
func (ts *TokenService) ExpiredClaims(raw string) (*AccessClaims, error) {
	claims, err := ts.parse(raw, true)
	if err != nil {
		return nil, ts.claimsError(err)
	}
	return claims, nil
}

func (ts *TokenService) parse(raw string, allowExpired bool) (*AccessClaims, error) {
	opts := []jwt.ParserOption{jwt.WithTimeFunc(ts.timeFunc)}
	if allowExpired {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	token, err := jwt.ParseWithClaims(raw, &AccessClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, opts...)

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// claimsError folds raw jwt parse failures into the package taxonomy
// so no library errors cross the component boundary.
func (ts *TokenService) claimsError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrTokenUnsupported
	default:
		ts.logger.Debug("token parse failed: %v", err)
		return ErrTokenInvalid
	}
}
