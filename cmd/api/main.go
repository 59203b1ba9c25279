package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gustavopprado/sistema-reservas/internal/calendar"
	"github.com/gustavopprado/sistema-reservas/internal/config"
	"github.com/gustavopprado/sistema-reservas/internal/connect"
	"github.com/gustavopprado/sistema-reservas/internal/container"
	"github.com/gustavopprado/sistema-reservas/internal/mailer"
	"github.com/gustavopprado/sistema-reservas/internal/routes"
	"github.com/gustavopprado/sistema-reservas/internal/services"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	_ = godotenv.Load(".env.local")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg)
	logger.Info("Starting room booking API server", "environment", cfg.Environment)

	mongoClient, err := connect.MongoDBConnect()
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to MongoDB successfully")

	smtpMailer := mailer.NewSMTPMailer(cfg, logger)

	var eventCreator services.EventCreator = calendar.Disabled{}
	if cfg.GoogleCredentialsFile != "" && cfg.GoogleCalendarID != "" {
		gc, err := calendar.NewGoogleCalendar(context.Background(), cfg.GoogleCredentialsFile, cfg.GoogleCalendarID, cfg.TimeZone)
		if err != nil {
			// Calendar sync is best-effort; the API still runs without it.
			logger.Error("Failed to initialize Google Calendar, continuing without it", "error", err)
		} else {
			eventCreator = gc
			logger.Info("Google Calendar sync enabled", "calendar_id", cfg.GoogleCalendarID)
		}
	}

	// Initialize dependency container
	appContainer := container.NewContainer(logger, cfg, mongoClient, smtpMailer, eventCreator)

	// Setup routes
	router := routes.SetupRoutes(appContainer)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	if err := connect.MongoDBDisconnect(); err != nil {
		logger.Error("Error disconnecting from MongoDB", "error", err)
	}

	logger.Info("Server exited")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	if cfg.IsProduction() {
		// JSON logging for production
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		// Human-readable logging for development
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	return slog.New(handler)
}
