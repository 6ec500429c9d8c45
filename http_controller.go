package authkit

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
)

// SignUpRequest carries the sign-up payload
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates the request
func (r SignUpRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 128)),
	)
}

// ConfirmEmailRequest carries the emailed confirmation token
type ConfirmEmailRequest struct {
	ConfirmationToken string `json:"confirmationToken"`
}

// Validate validates the request
func (r ConfirmEmailRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ConfirmationToken, validation.Required),
	)
}

// SignInRequest carries the credentials payload. Identifier accepts a user id
// or an email address.
type SignInRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Validate validates the request
func (r SignInRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Identifier, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// ForgotPasswordRequest carries the email to send a reset token to
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// Validate validates the request
func (r ForgotPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// ResetPasswordRequest carries the emailed reset token and the new password
type ResetPasswordRequest struct {
	ResetToken string `json:"resetToken"`
	Password   string `json:"password"`
}

// Validate validates the request
func (r ResetPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ResetToken, validation.Required),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 128)),
	)
}

// UpdatePasswordRequest carries the current and replacement passwords
type UpdatePasswordRequest struct {
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}

// Validate validates the request
func (r UpdatePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(8, 128)),
	)
}

// AuthController wires the auth flows to HTTP under /api/auth. Refresh tokens
// ride the signed cookie; every other exchange is JSON over the body.
type AuthController struct {
	service *AuthService
	cookie  *RefreshCookie
	logger  Logger
}

// NewAuthController creates a new AuthController instance
func NewAuthController(service *AuthService, cookie *RefreshCookie, logger Logger) *AuthController {
	if logger == nil {
		logger = defLogger{}
	}
	return &AuthController{service: service, cookie: cookie, logger: logger}
}

// RegisterRoutes mounts the auth endpoints on the app.
func (ac *AuthController) RegisterRoutes(app *fiber.App, guard *Guard) {
	public := guard.Protect(RoutePolicy{Public: true})
	authed := guard.Protect(RoutePolicy{})

	r := app.Group("/api/auth")
	r.Post("/sign-up", public, ac.SignUp)
	r.Post("/confirm-email", public, ac.ConfirmEmail)
	r.Post("/sign-in", public, ac.SignIn)
	r.Post("/refresh-access", public, ac.RefreshAccess)
	r.Post("/logout", authed, ac.Logout)
	r.Post("/forgot-password", public, ac.ForgotPassword)
	r.Post("/reset-password", public, ac.ResetPassword)
	r.Patch("/update-password", authed, ac.UpdatePassword)
	r.Get("/me", authed, ac.Me)
}

// SignUp handles POST /api/auth/sign-up
func (ac *AuthController) SignUp(c *fiber.Ctx) error {
	var req SignUpRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	user, err := ac.service.SignUp(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return ac.fail(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"user":    user,
		"message": "confirmation email sent",
	})
}

// ConfirmEmail handles POST /api/auth/confirm-email
func (ac *AuthController) ConfirmEmail(c *fiber.Ctx) error {
	var req ConfirmEmailRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	result, err := ac.service.ConfirmEmail(c.UserContext(), req.ConfirmationToken, audience(c))
	if err != nil {
		return ac.fail(c, err)
	}

	ac.cookie.Write(c, result.RefreshToken)
	return c.JSON(result)
}

// SignIn handles POST /api/auth/sign-in
func (ac *AuthController) SignIn(c *fiber.Ctx) error {
	var req SignInRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	result, err := ac.service.SignIn(c.UserContext(), req.Identifier, req.Password, audience(c))
	if err != nil {
		return ac.fail(c, err)
	}

	ac.cookie.Write(c, result.RefreshToken)
	return c.JSON(result)
}

// RefreshAccess handles POST /api/auth/refresh-access. The refresh token
// comes from the signed cookie, never the body.
func (ac *AuthController) RefreshAccess(c *fiber.Ctx) error {
	token, err := ac.cookie.Read(c)
	if err != nil {
		return ac.fail(c, err)
	}

	result, err := ac.service.RefreshAccess(c.UserContext(), token, audience(c))
	if err != nil {
		return ac.fail(c, err)
	}

	ac.cookie.Write(c, result.RefreshToken)
	return c.JSON(result)
}

// Logout handles POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	token, err := ac.cookie.Read(c)
	if err != nil {
		return ac.fail(c, err)
	}

	if err := ac.service.Logout(c.UserContext(), token); err != nil {
		return ac.fail(c, err)
	}

	ac.cookie.Clear(c)
	return c.JSON(fiber.Map{"message": "logout successful"})
}

// ForgotPassword handles POST /api/auth/forgot-password. The response never
// reveals whether the address exists.
func (ac *AuthController) ForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	ac.service.SendPasswordResetEmail(c.UserContext(), req.Email, audience(c))

	return c.JSON(fiber.Map{"message": "password reset email sent"})
}

// ResetPassword handles POST /api/auth/reset-password
func (ac *AuthController) ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	if err := ac.service.ResetPassword(c.UserContext(), req.ResetToken, req.Password); err != nil {
		return ac.fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "password reset successful"})
}

// UpdatePassword handles PATCH /api/auth/update-password
func (ac *AuthController) UpdatePassword(c *fiber.Ctx) error {
	user, ok := CurrentUser(c)
	if !ok {
		return ac.fail(c, ErrUnauthorized)
	}

	var req UpdatePasswordRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	result, err := ac.service.UpdatePassword(c.UserContext(), user.ID.String(), req.Password, req.NewPassword, audience(c))
	if err != nil {
		return ac.fail(c, err)
	}

	ac.cookie.Write(c, result.RefreshToken)
	return c.JSON(result)
}

// Me handles GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	user, ok := CurrentUser(c)
	if !ok {
		return ac.fail(c, ErrUnauthorized)
	}
	return c.JSON(user)
}

func (ac *AuthController) fail(c *fiber.Ctx, err error) error {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		ac.logger.Error("auth request failed: %v", err)
		return c.Status(status).JSON(fiber.Map{"message": "internal server error"})
	}
	return c.Status(status).JSON(fiber.Map{"message": err.Error()})
}

func parseBody(c *fiber.Ctx, req interface{ Validate() error }) error {
	if err := c.BodyParser(req); err != nil {
		return errors.New("invalid request body")
	}
	return req.Validate()
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
}

func audience(c *fiber.Ctx) string {
	return c.Get(fiber.HeaderOrigin)
}
