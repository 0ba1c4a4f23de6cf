package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/task-manager/internal/api"
	"github.com/task-manager/internal/auth"
	"github.com/task-manager/internal/config"
	"github.com/task-manager/internal/middleware"
	"github.com/task-manager/internal/service"
	"github.com/task-manager/internal/storage"

	_ "github.com/task-manager/docs" // swagger docs
)

// @title Task Manager API
// @version 1.0
// @description Multi-tenant task tracker with JWT authentication and owner/admin authorization.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter your JWT token with the `Bearer ` prefix, e.g. "Bearer eyJhbGci..."

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Load configuration; missing JWT settings are fatal here, never at
	// request time.
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Connect to database
	logger.Info().Msg("connecting to database")
	db, err := storage.NewDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	logger.Info().Msg("running migrations")
	if err := db.RunMigrations(); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Initialize repositories
	userRepo := storage.NewUserRepository(db)
	taskRepo := storage.NewTaskRepository(db)

	// Seed initial accounts when the users table is empty
	ctx := context.Background()
	if err := storage.SeedUsers(ctx, userRepo, cfg.Seed, logger); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed users")
	}

	// Initialize services
	tokenService := auth.NewTokenService(cfg.JWT)
	authService := service.NewAuthService(userRepo, tokenService, logger)
	taskService := service.NewTaskService(taskRepo, logger)

	// Initialize middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(tokenService, logger)
	handler := api.NewHandler(authService, taskService, logger)

	// Setup router
	router := api.NewRouter(handler, authMiddleware, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown error")
	}

	logger.Info().Msg("server stopped")
}
