package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"felmel/internal/api"
	"felmel/internal/api/handlers"
	"felmel/internal/bootstrap"
	"felmel/internal/catalog"
	"felmel/internal/config"
	"felmel/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize catalog stack
	components := bootstrap.Build(ctx, cfg, logger)
	defer components.Close(logger)

	var history handlers.ExportHistory
	if components.Database != nil {
		history = components.Database
	}

	// Initialize API server
	server := api.New(cfg, logger, api.Dependencies{
		Service:  components.Service,
		Session:  catalog.NewSession(),
		Pipeline: components.Pipeline,
		History:  history,
	})

	// Start server
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed: %v", err)
	}
}
