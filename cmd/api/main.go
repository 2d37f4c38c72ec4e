package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"crm/internal/config"
	"crm/internal/database"
	"crm/internal/logging"
	"crm/internal/server"
	"crm/internal/storage"
	"crm/internal/websocket"

	"github.com/gin-gonic/gin"
)

// @title           CRM API
// @version         1.0
// @description     Customer records and activity timelines for a B2B sales team.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		// the logger is configured from cfg, so fall back to a default one
		fallback := logging.NewLogger(config.Config{})
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := logging.NewLogger(cfg)
	gin.SetMode(cfg.GinMode)

	db, err := database.NewConnection(cfg.Database, logging.GormLevel(cfg.LogLevel))
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error().Err(err).Msg("failed to close database")
		}
	}()
	logger.Info().Str("driver", cfg.Database.Driver).Msg("connected to database")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Set up WebSocket Hub
	wsHub := websocket.NewHub(logger)
	go wsHub.Run(ctx)

	deps := server.Deps{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Hub:    wsHub,
	}
	if cfg.S3.Enabled() {
		deps.Store = storage.NewS3Storage(logger, cfg.S3)
		logger.Info().Str("bucket", cfg.S3.Bucket).Msg("attachment uploads enabled")
	}

	router, err := server.NewRouter(deps)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build router")
	}

	if err := server.Run(ctx, logger, ":"+cfg.Port, router, cfg.ShutdownTimeout); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		return
	}
	logger.Info().Msg("server stopped")
}
