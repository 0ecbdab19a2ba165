package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"felmel/internal/bootstrap"
	"felmel/internal/config"
	"felmel/internal/events"
	"felmel/internal/logger"
	"felmel/internal/worker"
	"felmel/internal/worker/processors"
	"felmel/internal/worker/processors/export"
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

	if len(events.SplitBrokers(cfg.KafkaBrokers)) == 0 {
		logger.Fatal("KAFKA_BROKERS is required for the worker")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	components := bootstrap.Build(ctx, cfg, logger)
	defer components.Close(logger)

	var history export.History
	if components.Database != nil {
		history = components.Database
	}

	// Initialize worker
	exporter := export.New(cfg, logger, components.Service, components.Pipeline, history)
	w := worker.New(cfg, logger, processors.NewEventProcessor(cfg, logger, exporter))

	// Start worker
	logger.Info("Starting worker...")
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")
	cancel()
	<-done
	w.Stop()
}
