package handlers

import (
	"time"

	"github.com/KhuramMirza/e-commerce-backend-api/internal/apperr"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/middleware"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for user accounts and authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/register", h.HandleRegister)
	userRoutes.Post("/login", h.HandleLogin)
	userRoutes.Get("/logout", h.HandleLogout)
	userRoutes.Post("/forgotPassword", h.HandleForgotPassword)
	userRoutes.Patch("/resetPassword/:token", h.HandleResetPassword)
	userRoutes.Patch("/updateMe", authRequired, h.HandleUpdateMe)
	userRoutes.Patch("/updateMyPassword", authRequired, h.HandleUpdateMyPassword)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=100"`
	AdminSecret string `json:"adminSecret" validate:"omitempty"`
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(err)
	}

	user, err := h.authService.Register(req.Name, req.Email, req.Password, req.AdminSecret)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(err)
	}

	token, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"data":    user,
	})
}

// HandleLogout clears the client-side token cookie. Authentication is
// stateless, so this is a cosmetic signal, not a capability revocation.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:    "jwt",
		Value:   "",
		Expires: time.Now().Add(-time.Hour),
	})
	return c.JSON(fiber.Map{
		"success": true,
		"message": "logged out",
	})
}

// UpdateMeRequest represents the request body for profile updates.
// Password fields are deliberately absent; sending them is an error.
type UpdateMeRequest struct {
	Name     string `json:"name" validate:"omitempty,min=3,max=100"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
}

// HandleUpdateMe updates the caller's profile.
func (h *AuthHandler) HandleUpdateMe(c *fiber.Ctx) error {
	var req UpdateMeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if req.Password != "" {
		return apperr.BadRequest("this route is not for password updates, use /updateMyPassword")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(err)
	}

	user, err := h.authService.UpdateMe(middleware.UserID(c), req.Name, req.Email)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

// UpdateMyPasswordRequest represents the request body for password changes.
type UpdateMyPasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent" validate:"required"`
	PasswordNew     string `json:"passwordNew" validate:"required,min=8,max=100"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=PasswordNew"`
}

// HandleUpdateMyPassword changes the caller's password.
func (h *AuthHandler) HandleUpdateMyPassword(c *fiber.Ctx) error {
	var req UpdateMyPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(err)
	}

	if err := h.authService.UpdateMyPassword(middleware.UserID(c), req.PasswordCurrent, req.PasswordNew); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "password updated",
	})
}

// ForgotPasswordRequest represents the request body for reset-token
// requests.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleForgotPassword issues a password-reset token by email.
func (h *AuthHandler) HandleForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(err)
	}

	if err := h.authService.ForgotPassword(req.Email); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "reset token sent to email",
	})
}

// ResetPasswordRequest represents the request body for redeeming a reset
// token.
type ResetPasswordRequest struct {
	Password        string `json:"password" validate:"required,min=8,max=100"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// HandleResetPassword redeems a reset token from the URL and sets a new
// password.
func (h *AuthHandler) HandleResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(err)
	}

	if err := h.authService.ResetPassword(c.Params("token"), req.Password); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "password has been reset",
	})
}
