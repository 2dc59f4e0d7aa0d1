package middleware

import (
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// RequireRole returns a middleware that gates a route by role.
// Admins pass every gate.
func RequireRole(requiredRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok || role == "" {
			return JsonResponse(c, fiber.StatusForbidden, false, "Forbidden", nil)
		}

		if role == models.RoleAdmin {
			return c.Next()
		}

		if role != requiredRole {
			return JsonResponse(c, fiber.StatusForbidden, false, "Forbidden", nil)
		}

		return c.Next()
	}
}
