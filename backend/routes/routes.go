package routes

import (
	"log"
	"time"

	"eurolens/backend/config"
	"eurolens/backend/controllers"
	"eurolens/backend/europarl"
	"eurolens/backend/middleware"
	"eurolens/backend/ratelimit"
	"eurolens/backend/store"
	"eurolens/backend/summarize"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Summary requests per client IP per fixed window
const (
	summarizeLimit  = 10
	summarizeWindow = time.Minute
)

func SetupRoutes(app *fiber.App, db *gorm.DB, guestStore *store.GuestStore, legislative *europarl.Service, generator summarize.Generator, cfg *config.Config, logger *log.Logger) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	summarizeLimiter := middleware.RateLimitMiddleware(ratelimit.New(summarizeLimit, summarizeWindow))

	// Account surface. GET endpoints fail open for anonymous callers, so the
	// auth middleware only guards the mutating routes.
	profileController := controllers.NewProfileController(db, cfg)
	app.Get("/api/me/profile", profileController.GetProfile)
	app.Patch("/api/me/profile", authMiddleware, profileController.UpdateProfile)

	positionsController := controllers.NewPositionsController(db, cfg)
	app.Get("/api/me/positions", positionsController.GetPositions)
	app.Post("/api/me/positions", authMiddleware, positionsController.SavePosition)

	actionsController := controllers.NewActionsController(db, cfg)
	app.Post("/api/me/actions", authMiddleware, actionsController.RecordAction)
	app.Post("/api/me/views", authMiddleware, actionsController.RecordView)
	app.Post("/api/me/summaries", authMiddleware, actionsController.RecordSummary)

	alertsController := controllers.NewAlertsController(db, cfg)
	app.Get("/api/me/alerts", alertsController.GetAlerts)
	app.Post("/api/me/alerts", authMiddleware, alertsController.CreateAlert)
	app.Delete("/api/me/alerts", authMiddleware, alertsController.DeleteAlert)

	mergeController := controllers.NewMergeController(db, cfg)
	app.Post("/api/me/merge-guest", authMiddleware, mergeController.MergeGuest)

	// Guest surface, keyed by X-Guest-ID
	guestController := controllers.NewGuestController(guestStore, cfg)
	guest := app.Group("/api/guest")
	guest.Get("/profile", guestController.GetProfile)
	guest.Patch("/profile", guestController.UpdateProfile)
	guest.Get("/positions", guestController.GetPositions)
	guest.Post("/positions", guestController.SavePosition)
	guest.Post("/actions", guestController.RecordAction)
	guest.Post("/views", guestController.RecordView)
	guest.Post("/summaries", guestController.RecordSummary)

	// Public leaderboard
	leaderboardController := controllers.NewLeaderboardController(db, cfg)
	app.Get("/api/leaderboard", leaderboardController.GetLeaderboard)

	// Legislative data
	proceduresController := controllers.NewProceduresController(legislative, cfg)
	app.Get("/api/procedures/in-progress", proceduresController.GetInProgress)
	app.Get("/api/procedures/recently-decided", proceduresController.GetRecentlyDecided)
	app.Get("/api/sessions/upcoming", proceduresController.GetUpcomingSessions)
	app.Get("/api/procedure/:reference", proceduresController.GetProcedure)
	app.Get("/api/procedure/:reference/votes", proceduresController.GetProcedureVotes)

	// AI summaries
	summarizeController := controllers.NewSummarizeController(generator, cfg, logger)
	app.Post("/api/summarize", summarizeLimiter, summarizeController.Summarize)

	// Operational endpoints
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
