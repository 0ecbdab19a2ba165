package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"felmel/internal/config"
	"felmel/internal/events"
	"felmel/internal/logger"

	"github.com/segmentio/kafka-go"
)

// Processor handles one decoded event.
type Processor interface {
	Process(ctx context.Context, event events.Event) error
}

type Worker struct {
	config    *config.Config
	logger    *logger.Logger
	reader    *kafka.Reader
	processor Processor
}

func New(cfg *config.Config, logger *logger.Logger, processor Processor) *Worker {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        events.SplitBrokers(cfg.KafkaBrokers),
		GroupID:        "felmel-export-worker",
		Topic:          cfg.KafkaTopic,
		MinBytes:       1,
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	return &Worker{
		config:    cfg,
		logger:    logger.With("component", "export-worker", "topic", cfg.KafkaTopic),
		reader:    reader,
		processor: processor,
	}
}

// Start reads events until ctx is cancelled or the reader is closed.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Worker started, listening on %s...", w.config.KafkaTopic)

	for {
		message, err := w.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				w.logger.Info("Worker stopped")
				return
			}
			w.logger.Error("Failed to read message: %v", err)
			continue
		}

		w.logger.Debug("Received message: %s", string(message.Value))

		if err := w.handle(ctx, message.Value); err != nil {
			w.logger.Error("Failed to process event: %v", err)
			continue
		}

		w.logger.Debug("Event processed successfully")
	}
}

func (w *Worker) handle(ctx context.Context, value []byte) error {
	var event events.Event
	if err := json.Unmarshal(value, &event); err != nil {
		return err
	}
	return w.processor.Process(ctx, event)
}

func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	if err := w.reader.Close(); err != nil {
		w.logger.Warn("Failed to close reader: %v", err)
	}
}
