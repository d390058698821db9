package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/markdave123-py/docsum/internal/app"
	"github.com/markdave123-py/docsum/internal/config"
)

const shutdownGrace = 15 * time.Second

func main() {
	cfg := config.LoadConfig()
	logger := config.NewLogger(cfg, os.Stdout)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Handle SIGINT/SIGTERM for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	serverErr := make(chan error, 1)
	go func() { serverErr <- application.Server.Start() }()

	logger.Info("docsum is running", "addr", application.Server.Addr())

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("server error", "error", err)
		}
		return
	case <-ctx.Done():
	}

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := application.Server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
