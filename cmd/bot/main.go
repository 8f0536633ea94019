// Package main — service entry point.
// Loads the configuration, initializes the application and runs the bot,
// the HTTP API and the scheduler. Supports graceful shutdown on
// SIGINT/SIGTERM.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/wheelproject/wheel-backend/internal/app"
	"github.com/wheelproject/wheel-backend/internal/config"
)

func main() {
	setupLogging()

	log.Info("=== Wheel backend starting ===")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	if level, err := log.ParseLevel(cfg.AppLogLevel); err == nil {
		log.SetLevel(level)
	}

	// Cancellable context drives graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize application")
	}
	defer application.DB.Close()

	if application.Scheduler != nil {
		application.Scheduler.Start(ctx)
		defer application.Scheduler.Stop()
	}

	// Handle stop signals (Ctrl+C, docker stop)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go application.Bot.Start(ctx)
	go application.Server.Start(ctx)

	log.Info("=== Wheel backend ready ===")

	sig := <-quit
	log.Infof("Received signal %s, shutting down...", sig)

	// Cancelling the context winds down the bot, the server and the jobs
	cancel()

	log.Info("=== Wheel backend stopped ===")
}

// setupLogging configures the log format.
func setupLogging() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.DebugLevel)
}
