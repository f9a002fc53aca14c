package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the claim set carried by access tokens. Refresh
// tokens reuse the registered claims only; their jti doubles as the
// session registry key.
type AccessClaims struct {
	jwt.RegisteredClaims
	UID       int64  `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	RefreshID string `json:"refreshId,omitempty"`
}

// Identity rebuilds the identity the token was minted for.
func (c *AccessClaims) Identity() Identity {
	return Identity{ID: c.UID, Name: c.Name}
}

// HasAccessClaims reports whether the claim set carries the access
// token payload. A signature-valid token without it is a refresh token
// presented on the access path.
func (c *AccessClaims) HasAccessClaims() bool {
	return c.UID != 0
}

// Expires returns the expiration time
func (c *AccessClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *AccessClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
