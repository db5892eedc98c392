package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimiter creates a rate limiting middleware
func RateLimiter(max int, expiration time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: expiration,
		KeyGenerator: func(c *fiber.Ctx) string {
			// Use user ID if authenticated, otherwise use IP
			userID := c.Locals("userID")
			if userID != nil {
				return userID.(string)
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "Too many requests, please try again later",
			})
		},
	})
}

// StrictRateLimiter for sensitive endpoints (e.g., auth)
func StrictRateLimiter() fiber.Handler {
	return RateLimiter(5, 15*time.Minute) // 5 requests per 15 minutes
}

// SendRateLimiter for message sending
func SendRateLimiter() fiber.Handler {
	return RateLimiter(30, 1*time.Minute) // 30 messages per minute
}
