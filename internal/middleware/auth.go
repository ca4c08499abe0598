package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Marufhossain07/fit-sync-backend/internal/models"
	"github.com/Marufhossain07/fit-sync-backend/pkg/utils"
)

// RoleDirectory is the authoritative email-to-role lookup. Guards never
// trust a role carried in the token.
type RoleDirectory interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

func AuthRequired(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authorization header",
			})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		tokenString := parts[1]
		claims, err := utils.ValidateToken(tokenString, secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals("email", claims.Email)

		return c.Next()
	}
}

// RequireRole gates the request on the caller's stored role. It must run
// after AuthRequired.
func RequireRole(directory RoleDirectory, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, ok := c.Locals("email").(string)
		if !ok || email == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		user, err := directory.GetByEmail(c.Context(), email)
		if err != nil || user.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden",
			})
		}

		return c.Next()
	}
}

func RequireAdmin(directory RoleDirectory) fiber.Handler {
	return RequireRole(directory, "admin")
}

func RequireTrainer(directory RoleDirectory) fiber.Handler {
	return RequireRole(directory, "trainer")
}
