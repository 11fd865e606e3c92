package main

import (
	"log"

	"eurolens/backend/cache"
	"eurolens/backend/config"
	"eurolens/backend/europarl"
	"eurolens/backend/middleware"
	"eurolens/backend/routes"
	"eurolens/backend/store"
	"eurolens/backend/summarize"
	"eurolens/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Guest progress store
	guestStore, err := store.NewGuestStore(cfg.GuestDBPath, logger)
	if err != nil {
		log.Fatalf("Error opening guest store: %v", err)
	}

	// Legislative data aggregator with an instrumented response cache
	responseCache := cache.NewInstrumented(cache.New())
	client := europarl.NewClient(cfg.EuroparlBaseURL, responseCache, logger)
	legislative := europarl.NewService(client, logger)

	// AI summary provider
	generator := summarize.NewGeminiGenerator(cfg.GeminiAPIKey)

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(middleware.SiteGate(cfg))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Guest-ID",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, guestStore, legislative, generator, cfg, logger)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
