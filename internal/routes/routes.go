package routes

import (
	"mentorin/server/internal/handlers"
	"mentorin/server/internal/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes
func SetupRoutes(app *fiber.App) {
	// API v1 group
	api := app.Group("/api/v1")

	// Health check (public)
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Mentorin API is running",
		})
	})

	// Auth routes (public)
	auth := api.Group("/auth")
	auth.Post("/register", middleware.StrictRateLimiter(), handlers.Register)
	auth.Post("/login", middleware.StrictRateLimiter(), handlers.Login)
	auth.Post("/logout", middleware.AuthMiddleware, handlers.Logout)
	auth.Get("/me", middleware.AuthMiddleware, handlers.GetMe)

	// User directory (protected)
	users := api.Group("/users", middleware.AuthMiddleware)
	users.Get("/search", handlers.SearchUsers)

	// Message routes (protected)
	messages := api.Group("/messages", middleware.AuthMiddleware)
	messages.Get("/conversations", handlers.GetConversations)
	messages.Get("/unread-count", handlers.GetUnreadCount)
	messages.Post("/", middleware.SendRateLimiter(), handlers.SendMessage)
	messages.Get("/:userId", handlers.GetThread)

	// WebSocket route (protected)
	api.Get("/ws", middleware.AuthMiddleware, handlers.WebSocketUpgrade, websocket.New(handlers.WebSocketHandler))

	// WebSocket stats (protected, for debugging)
	api.Get("/ws/stats", middleware.AuthMiddleware, handlers.GetWebSocketStats)
}
