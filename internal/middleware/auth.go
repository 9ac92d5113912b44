package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docuseek/internal/services"
)

// UserIDKey is the locals key under which RequireAuth stores the caller's ID.
const UserIDKey = "userID"

// RequireAuth resolves the bearer token to a user ID for this request. The
// session is request-scoped on purpose: no shared current-user state exists.
func RequireAuth(sessions services.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing bearer token",
			})
		}

		userID, err := sessions.Resolve(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired session",
			})
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// UserID returns the authenticated caller's ID set by RequireAuth.
func UserID(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals(UserIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
