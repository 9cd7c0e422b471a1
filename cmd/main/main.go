package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"kanji/strokes/internal/config"
	"kanji/strokes/internal/container"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.Info("Starting kanji stroke order service...")

	// Load configuration using viper
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg.Log.ConfigureLogger()
	log.Info("Configuration loaded successfully")

	// Initialize container with all dependencies
	app, err := container.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Run the application
	runErr := app.Run(ctx)
	if err := app.Close(); err != nil {
		log.Errorf("Failed to close container: %v", err)
	}
	if runErr != nil {
		log.Fatalf("Application exited with error: %v", runErr)
	}

	log.Info("Application finished successfully")
}
