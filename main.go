package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"wayfindr-map/config"
	"wayfindr-map/database"
	"wayfindr-map/handlers"
	"wayfindr-map/mqtt"
	"wayfindr-map/persistence"
	"wayfindr-map/redis"
	"wayfindr-map/services"
	"wayfindr-map/store"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()
	logger := newLogger(cfg.LogLevel)

	// Initialize the persistence gateway and restore durable state. A
	// corrupt document is a fatal configuration error, never repaired.
	gateway := persistence.NewGateway(cfg.MapDataPath, cfg.SaveRetries, logger)
	mapStore := store.NewMapStore()

	doc, err := gateway.Load()
	if err != nil {
		logger.Error("Failed to load persisted map state", slog.Any("error", err))
		os.Exit(1)
	}
	if doc != nil {
		if err := mapStore.Restore(doc); err != nil {
			logger.Error("Persisted map state violates invariants", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Map state restored", "path", gateway.Path(), "floors", len(doc.Floors))
	} else {
		logger.Info("No persisted map state found, starting empty", "path", gateway.Path())
	}

	// Optional collaborators
	var notifier services.Notifier
	if cfg.MQTTEnabled {
		mqttNotifier, err := mqtt.NewNotifier(cfg, logger)
		if err != nil {
			logger.Error("Failed to initialize MQTT notifier", slog.Any("error", err))
			os.Exit(1)
		}
		defer mqttNotifier.Disconnect()
		notifier = mqttNotifier
	}

	var presence services.PresenceTracker
	if cfg.RedisEnabled {
		tracker, err := redis.NewPresenceTracker(cfg)
		if err != nil {
			logger.Error("Failed to initialize Redis presence tracker", slog.Any("error", err))
			os.Exit(1)
		}
		defer tracker.Close()
		presence = tracker
	}

	var audit services.AuditRecorder
	if cfg.AuditDBEnabled {
		auditLog, err := database.NewAuditLog(cfg, logger)
		if err != nil {
			logger.Error("Failed to initialize audit database", slog.Any("error", err))
			os.Exit(1)
		}
		defer auditLog.Close()
		audit = auditLog
	}

	// Initialize service and handlers
	mapService := services.NewMapService(mapStore, gateway, notifier, presence, audit, logger)
	mapHandler := handlers.NewMapHandler(mapService)
	navHandler := handlers.NewNavigationHandler(mapService)

	// Setup HTTP server
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(logger)
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("Request handled",
				"method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))

	handlers.RegisterRoutes(e, mapHandler, navHandler)

	// Start server in goroutine
	go func() {
		logger.Info("Starting HTTP server", "port", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", slog.Any("error", err))
	}

	logger.Info("Server stopped")
}

func newLogger(level string) *slog.Logger {
	var slogLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel}))
}
