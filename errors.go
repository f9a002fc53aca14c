package auth

import (
	"github.com/goliatone/go-errors"
)

// Text codes for token failures. The filter and the frontend agree on
// these exact values, keep them stable.
const (
	TextCodeTokenMissing    = "TOKEN-E-001"
	TextCodeTokenExpired    = "TOKEN-E-002"
	TextCodeTokenInvalid    = "TOKEN-E-003"
	TextCodeRefreshRequired = "TOKEN-E-004"
)

// ErrInvalidCredentials is returned on a login credential mismatch. The
// message is deliberately fixed so it never leaks which field was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password", errors.CategoryAuth).
	WithTextCode("AUTH-E-001").
	WithCode(errors.CodeUnauthorized)

// ErrTokenMissing is the failure for requests that carry no token at all.
var ErrTokenMissing = errors.New("authentication token is missing", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMissing).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired marks an authentic token whose expiry has passed.
var ErrTokenExpired = errors.New("access token has expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenInvalid covers signature mismatches and malformed structures.
var ErrTokenInvalid = errors.New("invalid authentication token", errors.CategoryAuth).
	WithTextCode(TextCodeTokenInvalid).
	WithCode(errors.CodeUnauthorized)

// ErrTokenUnsupported marks tokens signed with an algorithm we do not
// accept. Responds like ErrTokenInvalid.
var ErrTokenUnsupported = errors.New("unsupported authentication token", errors.CategoryAuth).
	WithTextCode(TextCodeTokenInvalid).
	WithCode(errors.CodeUnauthorized)

// ErrRefreshRequired signals that the caller must go through the
// refresh flow before retrying.
var ErrRefreshRequired = errors.New("a refresh token is required", errors.CategoryAuth).
	WithTextCode(TextCodeRefreshRequired).
	WithCode(errors.CodeUnauthorized)

// ErrSessionNotFound signals an unrecognized or revoked refresh
// session. It is a client error, never a server error.
var ErrSessionNotFound = errors.New("unrecognized refresh session", errors.CategoryAuth).
	WithTextCode("AUTH-E-002").
	WithCode(errors.CodeUnauthorized)

// ErrAccountExists is returned when registering an email that is
// already taken.
var ErrAccountExists = errors.New("email is already registered", errors.CategoryConflict).
	WithTextCode("ACCOUNT-E-001").
	WithCode(errors.CodeConflict)

// IsAuthError reports whether err maps to a client authentication
// failure rather than a server fault.
func IsAuthError(err error) bool {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.Category == errors.CategoryAuth || richErr.Category == errors.CategoryAuthz
}
