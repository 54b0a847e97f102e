package middleware

import (
	"strings"

	"github.com/KhuramMirza/e-commerce-backend-api/internal/apperr"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/models"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Locals keys carrying the authenticated identity.
const (
	LocalUserID   = "user_id"
	LocalUserRole = "user_role"
)

// AuthRequired is a Fiber middleware to check for a valid JWT bearer token.
// On success the decoded identity (id, role) is attached to the request
// context for downstream handlers.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return apperr.Unauthorized("authorization header is required")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return apperr.Unauthorized("authorization header format must be 'Bearer <token>'")
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			return apperr.Unauthorized("invalid or expired token")
		}

		userID, _ := claims["id"].(string)
		role, _ := claims["role"].(string)
		if userID == "" {
			return apperr.Unauthorized("invalid or expired token")
		}

		c.Locals(LocalUserID, userID)
		c.Locals(LocalUserRole, role)

		return c.Next()
	}
}

// AdminOnly rejects requests whose authenticated role is not admin. It must
// run after AuthRequired.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if UserRole(c) != models.RoleAdmin {
			return apperr.Forbidden("not authorized as an admin")
		}
		return c.Next()
	}
}

// UserID returns the authenticated user's ID, or "" when unauthenticated.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}

// UserRole returns the authenticated user's role, or "" when
// unauthenticated.
func UserRole(c *fiber.Ctx) string {
	role, _ := c.Locals(LocalUserRole).(string)
	return role
}
