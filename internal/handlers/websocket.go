package handlers

import (
	"log"

	"mentorin/server/internal/realtime"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

var (
	// WSHub is the global WebSocket hub instance
	WSHub *realtime.Hub
)

// InitRealtime initializes the WebSocket hub. When natsURL is non-empty,
// events fan out across instances over NATS.
func InitRealtime(natsURL string) (*realtime.Hub, error) {
	WSHub = realtime.NewHub()

	if natsURL != "" {
		bridge, err := realtime.NewBridge(natsURL, WSHub)
		if err != nil {
			return nil, err
		}
		WSHub.AttachBridge(bridge)
		log.Println("✅ NATS bridge connected")
	}

	go WSHub.Run()
	log.Println("✅ WebSocket Hub initialized")
	return WSHub, nil
}

// WebSocketUpgrade checks if the request should be upgraded to WebSocket
func WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}

	return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{
		"success": false,
		"error":   "WebSocket upgrade required",
	})
}

// WebSocketHandler handles WebSocket connections
func WebSocketHandler(c *websocket.Conn) {
	// Get user info from context (set by auth middleware)
	userID := c.Locals("userID").(string)
	name, _ := c.Locals("name").(string)

	client := realtime.NewClient(userID, name, c, WSHub)

	WSHub.Register <- client

	// Start read and write pumps in separate goroutines
	go client.WritePump()
	client.ReadPump() // This blocks until connection closes
}

// GetWebSocketStats returns WebSocket connection statistics
func GetWebSocketStats(c *fiber.Ctx) error {
	if WSHub == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"error":   "WebSocket hub not initialized",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"onlineUsers": WSHub.GetOnlineCount(),
			"userIds":     WSHub.GetOnlineUsers(),
		},
	})
}
