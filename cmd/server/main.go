package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/truematch/truematch-api/internal/ai/gemini"
	"github.com/truematch/truematch-api/internal/config"
	"github.com/truematch/truematch-api/internal/database"
	"github.com/truematch/truematch-api/internal/handlers"
	"github.com/truematch/truematch-api/internal/logger"
	"github.com/truematch/truematch-api/internal/middleware"
	"github.com/truematch/truematch-api/internal/services"
	"go.uber.org/zap"

	_ "github.com/truematch/truematch-api/docs/api" // Swagger docs
)

// @title TrueMatch API
// @version 1.0.0
// @description Value-based matchmaking service with LLM-assisted compatibility scoring
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/truematch/truematch-api

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		zlog.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Build the Gemini collaborator
	generator, err := gemini.NewGenerator(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		zlog.Fatal("Failed to create Gemini client", zap.Error(err))
	}
	collaborator := gemini.NewCollaborator(generator, zlog, 0)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{AllowCredentials: true, AllowOriginsFunc: func(string) bool { return true }}))
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("truematch")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		result := services.HealthCheck(cfg, db)
		status := fiber.StatusOK
		if result.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(result)
	})

	// Create handlers
	profileHandler := &handlers.ProfileHandler{DB: db, AI: collaborator, Log: zlog, AITimeout: cfg.AITimeout}
	matchHandler := &handlers.MatchHandler{DB: db, Log: zlog}
	messageHandler := &handlers.MessageHandler{DB: db, AI: collaborator, Log: zlog, AITimeout: cfg.AITimeout}

	// API routes under /api (all require user authentication)
	api := app.Group("/api")

	api.Post("/submit-profile", middleware.AuthUser(cfg), profileHandler.SubmitProfile)

	api.Get("/matches", middleware.AuthUser(cfg), matchHandler.ListMatches)
	api.Get("/matches/:matchId/messages", middleware.AuthUser(cfg), messageHandler.GetThread)
	api.Post("/send-message", middleware.AuthUser(cfg), messageHandler.SendMessage)

	// Admin-only match administration
	api.Post("/matches", middleware.AuthAdmin(cfg), matchHandler.CreateMatch)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Authorizer initialization happens lazily, on the first
	// authenticated request, because the redirect URL depends on the
	// request host.
	zlog.Info("Authorizer will be initialized on first authenticated request")

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		zlog.Info("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	zlog.Info("Starting server", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("Failed to start server", zap.Error(err))
	}

	zlog.Info("Server stopped")
}

// customErrorHandler keeps unexpected errors in the API's single error
// shape and never leaks internals to clients.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}
