package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sarkaridekho/examinfo/internal/api"
	"github.com/sarkaridekho/examinfo/internal/cache"
	"github.com/sarkaridekho/examinfo/internal/config"
	"github.com/sarkaridekho/examinfo/internal/logger"
	"github.com/sarkaridekho/examinfo/internal/media"
	"github.com/sarkaridekho/examinfo/internal/middleware"
	"github.com/sarkaridekho/examinfo/internal/repository/postgres"
	"github.com/sarkaridekho/examinfo/internal/web"
)

func main() {
	// Load and validate configuration
	cfg := config.Load()

	// Initialize logger
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: "stdout",
		Pretty: cfg.Env == "development",
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().Msg("Starting application...")

	// Run schema migrations before opening the pool
	if err := postgres.Migrate(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize the database pool; created once, reused for every request
	ctx := context.Background()
	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Postgres")
	}
	defer func() {
		log.Info().Msg("Closing database pool...")
		pool.Close()
	}()

	posts := postgres.NewPostRepository(pool)

	// Initialize the Redis page cache
	pages, err := cache.NewRedisCache(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Redis page cache")
	}
	defer func() {
		log.Info().Msg("Closing Redis client...")
		if err := pages.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing Redis client")
		}
	}()

	// Initialize the S3 media store
	mediaStore, err := media.NewS3Store(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize S3 media store")
	}

	// Parse page templates
	templates, err := web.NewTemplateRegistry("web/templates")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load templates")
	}

	// Create Fiber app with custom config
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: middleware.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New()) // Recover from panics
	app.Use(middleware.RequestLogger())

	// Static assets
	app.Static("/static", "./web/static")

	// Routes: JSON API first, then rendered pages (the category catch-all
	// must come last)
	api.SetupRoutes(app, api.NewHandlers(cfg, posts, pages, mediaStore))
	web.SetupRoutes(app, web.NewHandlers(cfg, posts, pages, templates))

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Create a deadline for graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	// Shutdown the server
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
