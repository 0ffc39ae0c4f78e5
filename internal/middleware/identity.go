package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// UserIDHeader carries the authenticated user id set by the identity provider
// in front of this service.
const UserIDHeader = "X-User-Id"

const userIDKey = "userID"

// Identity rejects requests without an authenticated user.
func Identity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := strings.TrimSpace(c.Get(UserIDHeader))
		if userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}
		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// UserID returns the id stored by Identity, or "".
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}
