package middleware

import (
	"mentorin/server/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates JWT token from cookie
func AuthMiddleware(c *fiber.Ctx) error {
	// Get token from cookie
	tokenString := c.Cookies("token")
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized - No token provided",
		})
	}

	// Validate token
	claims, err := utils.ValidateToken(tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized - Invalid token",
		})
	}

	// Store user info in context
	c.Locals("userID", claims.UserID)
	c.Locals("email", claims.Email)
	c.Locals("name", claims.Name)
	c.Locals("role", claims.Role)

	return c.Next()
}

// GetUserID gets user ID from context
func GetUserID(c *fiber.Ctx) string {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return ""
	}
	return userID
}

// GetUserName gets user display name from context
func GetUserName(c *fiber.Ctx) string {
	name, ok := c.Locals("name").(string)
	if !ok {
		return ""
	}
	return name
}

// GetUserRole gets user role from context
func GetUserRole(c *fiber.Ctx) string {
	role, ok := c.Locals("role").(string)
	if !ok {
		return ""
	}
	return role
}
