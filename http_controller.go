package auth

import (
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// APIResponse is the envelope every JSON endpoint answers with. The
// shape is part of the client contract, including failures delivered
// with a success HTTP status.
type APIResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	MessageCode string `json:"messageCode,omitempty"`
	Data        any    `json:"data,omitempty"`
}

// SuccessResponse builds a success envelope.
func SuccessResponse(data any, message string) APIResponse {
	return APIResponse{Success: true, Message: message, Data: data}
}

// FailureResponse builds a failure envelope with a stable message code.
func FailureResponse(message, messageCode string) APIResponse {
	return APIResponse{Success: false, Message: message, MessageCode: messageCode}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 72)),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

// AuthController exposes the HTTP surface: register, login, refresh,
// and the protected dashboard.
type AuthController struct {
	auth      Authenticator
	registrar AccountRegistrar
	cfg       Config
	logger    Logger
}

func NewAuthController(auther Authenticator, registrar AccountRegistrar, cfg Config) *AuthController {
	return &AuthController{
		auth:      auther,
		registrar: registrar,
		cfg:       cfg,
		logger:    defLogger{},
	}
}

func (a *AuthController) WithLogger(logger Logger) *AuthController {
	a.logger = logger
	return a
}

// RegisterRoutes mounts the API. The guard protects routes that require
// a resolved identity.
func (a *AuthController) RegisterRoutes(app fiber.Router, guard fiber.Handler) {
	app.Post("/api/v1/account/register", a.Register)
	app.Post("/api/v1/auth/login", a.Login)
	app.Post("/api/v1/auth/refresh", a.RefreshToken)
	app.Get("/api/v1/hello", a.Hello)
	app.Get("/api/v1/dashboard", guard, a.Dashboard)
}

func (a *AuthController) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return a.respondError(c, errors.Wrap(err, errors.CategoryBadInput, "unable to parse request body").
			WithCode(errors.CodeBadRequest))
	}

	if err := req.Validate(); err != nil {
		return a.respondError(c, errors.Wrap(err, errors.CategoryValidation, err.Error()).
			WithCode(errors.CodeBadRequest))
	}

	if _, err := a.registrar.Register(c.UserContext(), req.Name, req.Email, req.Password); err != nil {
		return a.respondError(c, err)
	}

	return c.JSON(SuccessResponse(nil, "registration complete"))
}

func (a *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return a.respondError(c, errors.Wrap(err, errors.CategoryBadInput, "unable to parse request body").
			WithCode(errors.CodeBadRequest))
	}

	if err := req.Validate(); err != nil {
		return a.respondError(c, errors.Wrap(err, errors.CategoryValidation, err.Error()).
			WithCode(errors.CodeBadRequest))
	}

	token, err := a.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return a.respondError(c, err)
	}

	// Clients that cannot reach the response body rely on the cookie,
	// so the token travels both ways.
	a.setTokenCookie(c, token)

	return c.JSON(SuccessResponse(LoginResponse{AccessToken: token}, "login succeeded"))
}

// RefreshToken reads the access token even when expired and answers
// with a freshly minted one.
func (a *AuthController) RefreshToken(c *fiber.Ctx) error {
	raw, err := TokenFromRequest(c, a.cfg.GetTokenLookup(), a.cfg.GetAuthScheme())
	if err != nil {
		return a.respondError(c, err)
	}

	token, err := a.auth.Refresh(c.UserContext(), raw)
	if err != nil {
		return a.respondError(c, err)
	}

	a.setTokenCookie(c, token)

	return c.JSON(SuccessResponse(LoginResponse{AccessToken: token}, "token refreshed"))
}

// Dashboard is the protected resource. The guard has already resolved
// the identity into the request context.
func (a *AuthController) Dashboard(c *fiber.Ctx) error {
	identity, ok := IdentityFromContext(c.UserContext())
	if !ok {
		// Unreachable behind the guard; treat as a server fault.
		return a.respondError(c, errors.New("no identity in request context", errors.CategoryInternal).
			WithCode(errors.CodeInternal))
	}

	a.logger.Info("dashboard request for account %d", identity.ID)

	return c.JSON(SuccessResponse(identity, "dashboard"))
}

func (a *AuthController) Hello(c *fiber.Ctx) error {
	return c.SendString("Hello World!")
}

func (a *AuthController) setTokenCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     a.cfg.GetCookieName(),
		Value:    token,
		Expires:  time.Now().Add(a.cfg.GetCookieDuration()),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

func (a *AuthController) respondError(c *fiber.Ctx, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "an unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	status := richErr.Code
	if status == 0 {
		status = http.StatusInternalServerError
	}

	if !IsAuthError(richErr) {
		a.logger.Error("request failed: %v", err)
	}

	return c.Status(status).JSON(FailureResponse(richErr.Message, richErr.TextCode))
}
