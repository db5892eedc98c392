package main

import (
	"log"
	"os"

	"mentorin/server/internal/database"
	"mentorin/server/internal/handlers"
	"mentorin/server/internal/messaging"
	"mentorin/server/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Connect to database
	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Realtime hub (NATS fanout when NATS_URL is set)
	hub, err := handlers.InitRealtime(os.Getenv("NATS_URL"))
	if err != nil {
		log.Fatalf("Failed to initialize realtime hub: %v", err)
	}

	// Messaging subsystem
	repo := messaging.NewPostgresRepository(database.Pool)
	handlers.InitMessaging(messaging.NewService(repo, hub))

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Mentorin API v1.0",
	})

	// Middleware
	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:3000"
	}
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigin,
		AllowCredentials: true,
	}))

	// Setup routes
	routes.SetupRoutes(app)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
