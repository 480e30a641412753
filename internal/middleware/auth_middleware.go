package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"baketrack-backend/pkg/jwt"
)

// RequireAuth validates the session JWT and sets profile info in context.
// There is no server-side user store to double-check against; the token
// itself is the session.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// Set profile info in context for downstream handlers
		c.Locals("user_email", claims.Email)
		c.Locals("user_name", claims.Name)

		return c.Next()
	}
}
