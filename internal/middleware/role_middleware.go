package middleware

import (
	"payroll-backend/internal/apperr"
	"payroll-backend/internal/model"

	"github.com/gofiber/fiber/v2"
)

func Role(allowedRoles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Role is set by the Auth middleware
		userRole, ok := c.Locals("role").(string)
		if !ok {
			return fail(c, apperr.Wrap(apperr.ErrForbidden, "no role in token"))
		}

		for _, role := range allowedRoles {
			if string(role) == userRole {
				return c.Next()
			}
		}

		return fail(c, apperr.Wrap(apperr.ErrForbidden, "role %s not allowed", userRole))
	}
}
