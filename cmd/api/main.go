package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"task-api/configs"
	"task-api/internal/api"
	"task-api/internal/config"
	"task-api/internal/repository"
	"task-api/pkg/database"
	"task-api/pkg/logger"
	"time"

	"go.uber.org/zap"
)

func main() {
	// Load config
	cfg := configs.LoadConfig()

	// Inisialisasi logger
	if err := logger.InitLoggers(cfg.LogDir); err != nil {
		log.Fatalf("Cannot initialise loggers: %v", err)
	}
	defer logger.SyncLoggers()
	logger.SystemLogger.Info("Starting application", zap.String("time", time.Now().Format(time.RFC3339)))

	if err := cfg.Validate(); err != nil {
		fatal("Invalid configuration", err)
	}

	// Database harus terhubung sebelum server listen
	manager := database.NewManager(cfg)
	db, err := manager.Connect(context.Background())
	if err != nil {
		fatal("Database connection failed", err)
	}
	defer manager.Close()
	logger.SystemLogger.Info("Database Connected", zap.String("driver", cfg.DBDriver))

	if cfg.DBCreateSchema {
		if err := repository.CreateTableIfNotExists(context.Background(), db, cfg.DBDriver); err != nil {
			fatal("Schema bootstrap failed", err)
		}
	}

	deps := config.NewDependencies(db, cfg.DBDriver)
	app := api.NewApp(deps, cfg.CORSOrigin)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.SystemLogger.Info("Shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.ErrorLogger.Error("Shutdown error", zap.Error(err))
		}
	}()

	logger.SystemLogger.Info("Application ready", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		fatal("Application failed to start", err)
	}
}

// fatal logs err and exits non-zero. Deferred cleanup does not run.
func fatal(msg string, err error) {
	logger.ErrorLogger.Error(msg, zap.Error(err))
	logger.SyncLoggers()
	log.Fatalf("%s: %v", msg, err)
}
