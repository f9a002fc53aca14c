// Package jwtware is the per-request authentication filter. It
// extracts a token, classifies it, and either rejects the request with
// a structured body or attaches the resolved identity to the request
// context before handing off to the next handler.
package jwtware

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	auth "github.com/ftechlab/playauth"
)

// TokenClassifier is the slice of the token service the filter needs.
type TokenClassifier interface {
	Classify(raw string) auth.TokenStatus
	Claims(raw string) (*auth.AccessClaims, error)
}

type Config struct {
	// Filter skips the middleware when it returns true.
	Filter func(*fiber.Ctx) bool
	// Service classifies and parses tokens. Required.
	Service TokenClassifier
	// TokenLookup follows the "source:name" grammar, e.g.
	// "cookie:accessToken" or "header:Authorization".
	TokenLookup string
	AuthScheme  string
	// ContextKey is where the identity lands in fiber Locals.
	ContextKey string
	Logger     auth.Logger
}

// Pseudo statuses the filter derives on top of the validator's
// cryptographic classification.
const (
	statusMissing         auth.TokenStatus = "MISSING"
	statusRefreshRequired auth.TokenStatus = "REQUIRED_REFRESH_TOKEN"
)

type responsePolicy struct {
	HTTPStatus int
	Code       string
	Message    string
}

// responsePolicies maps every terminal status to its response shape in
// one auditable place. EXPIRED and REQUIRED_REFRESH_TOKEN deliberately
// answer 200 with a failure body so clients can start the refresh flow
// without treating the miss as a hard auth failure.
var responsePolicies = map[auth.TokenStatus]responsePolicy{
	statusMissing: {
		HTTPStatus: http.StatusUnauthorized,
		Code:       auth.TextCodeTokenMissing,
		Message:    "authentication token is missing",
	},
	auth.TokenStatusInvalid: {
		HTTPStatus: http.StatusUnauthorized,
		Code:       auth.TextCodeTokenInvalid,
		Message:    "invalid authentication token",
	},
	auth.TokenStatusUnsupported: {
		HTTPStatus: http.StatusUnauthorized,
		Code:       auth.TextCodeTokenInvalid,
		Message:    "invalid authentication token",
	},
	auth.TokenStatusExpired: {
		HTTPStatus: http.StatusOK,
		Code:       auth.TextCodeTokenExpired,
		Message:    "access token has expired",
	},
	statusRefreshRequired: {
		HTTPStatus: http.StatusOK,
		Code:       auth.TextCodeRefreshRequired,
		Message:    "a refresh token is required",
	},
}

// New builds the filter handler. Panics on a missing Service since that
// is a wiring error, not a runtime condition.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		raw, err := auth.TokenFromRequest(c, cfg.TokenLookup, cfg.AuthScheme)
		if err != nil {
			return respond(c, responsePolicies[statusMissing])
		}

		status := cfg.Service.Classify(raw)
		if status != auth.TokenStatusPass {
			return respond(c, responsePolicies[status])
		}

		claims, err := cfg.Service.Claims(raw)
		if err != nil {
			// Unreachable after a Pass classification; never swallow it.
			cfg.Logger.Error("claims extraction failed after pass classification: %v", err)
			return c.Status(http.StatusInternalServerError).
				JSON(auth.FailureResponse("an unexpected server error occurred", ""))
		}

		// A signature-valid refresh token on the access path is an
		// endpoint policy miss, not a cryptographic failure.
		if !claims.HasAccessClaims() {
			return respond(c, responsePolicies[statusRefreshRequired])
		}

		identity := claims.Identity()
		c.Locals(cfg.ContextKey, identity)
		c.SetUserContext(auth.WithIdentity(c.UserContext(), identity))

		return c.Next()
	}
}

// IdentityFromCtx reads the identity the filter stored in fiber Locals.
func IdentityFromCtx(c *fiber.Ctx, contextKey string) (auth.Identity, bool) {
	identity, ok := c.Locals(contextKey).(auth.Identity)
	return identity, ok
}

func respond(c *fiber.Ctx, policy responsePolicy) error {
	return c.Status(policy.HTTPStatus).JSON(auth.FailureResponse(policy.Message, policy.Code))
}

func configDefault(config ...Config) Config {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Service == nil {
		panic("AUTH: JWT middleware configuration: Service is required.")
	}

	if cfg.TokenLookup == "" {
		cfg.TokenLookup = "cookie:accessToken"
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "identity"
	}

	if cfg.Logger == nil {
		cfg.Logger = auth.DefaultLogger()
	}

	return cfg
}
