package middleware

import (
	"strings"

	"payroll-backend/internal/apperr"
	"payroll-backend/internal/model"
	"payroll-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

// Auth verifies the bearer access token and stores its claims in the request locals.
func Auth(secret string) fiber.Handler {
	key := []byte(secret)
	return func(c *fiber.Ctx) error {
		// 1. Read the token from the Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fail(c, apperr.Wrap(apperr.ErrInvalidToken, "missing bearer token"))
		}

		// Header format: "Bearer <token>"
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		// 2. Parse and validate
		claims, err := usecase.ParseToken(tokenString, key, usecase.TokenTypeAccess)
		if err != nil {
			return fail(c, err)
		}
		userID, ok := claims["user_id"].(float64)
		if !ok {
			return fail(c, apperr.ErrInvalidToken)
		}

		// 3. Keep the caller in the context for the handlers
		c.Locals("user_id", uint(userID))
		c.Locals("email", claims["email"])
		c.Locals("role", claims["role"])
		c.Locals("tenant", claims["tenant"])

		return c.Next()
	}
}

// ActorFrom rebuilds the authenticated caller from the locals set by Auth.
func ActorFrom(c *fiber.Ctx) usecase.Actor {
	actor := usecase.Actor{}
	actor.UserID, _ = c.Locals("user_id").(uint)
	actor.Email, _ = c.Locals("email").(string)
	if role, ok := c.Locals("role").(string); ok {
		actor.Role = model.Role(role)
	}
	actor.Tenant, _ = c.Locals("tenant").(string)
	return actor
}

func fail(c *fiber.Ctx, err error) error {
	body := fiber.Map{"error": err.Error()}
	if ae, ok := apperr.As(err); ok {
		body["code"] = ae.Code
	}
	return c.Status(apperr.HTTPStatus(err)).JSON(body)
}
