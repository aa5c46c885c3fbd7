package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seu-repo/sigep-parking/internal/domain"
)

// RequireRoles gates a route to the given roles. Must run after AuthRequired,
// which stores the authenticated user's role in locals.
func RequireRoles(roles ...domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("user_role").(domain.UserRole)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing authentication"})
		}

		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Insufficient permissions"})
	}
}
