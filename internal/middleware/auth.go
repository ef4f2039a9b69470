package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"meetowner_crm/pkg/apperror"
	"meetowner_crm/pkg/utils/jwt"
)

const userKey = "user"

// AuthMiddleware verifies the bearer token and stores its claims under
// c.Locals("user").
func AuthMiddleware(signer *jwt.Signer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return apperror.Unauthorized("Missing bearer token")
		}

		claims, err := signer.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			return apperror.Unauthorized("Invalid or expired token")
		}

		c.Locals(userKey, claims)
		return c.Next()
	}
}

// Claims returns the verified claims, or nil outside AuthMiddleware.
func Claims(c *fiber.Ctx) *jwt.Claims {
	claims, _ := c.Locals(userKey).(*jwt.Claims)
	return claims
}
