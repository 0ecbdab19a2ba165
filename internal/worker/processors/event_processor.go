package processors

import (
	"context"
	"fmt"

	"felmel/internal/config"
	"felmel/internal/events"
	"felmel/internal/logger"
	"felmel/internal/worker/processors/export"
	"felmel/internal/worker/processors/validation"
)

type EventProcessor struct {
	config    *config.Config
	logger    *logger.Logger
	validator *validation.Validator
	exporter  *export.Exporter
}

func NewEventProcessor(cfg *config.Config, logger *logger.Logger, exporter *export.Exporter) *EventProcessor {
	return &EventProcessor{
		config:    cfg,
		logger:    logger,
		validator: validation.New(cfg, logger),
		exporter:  exporter,
	}
}

// Process handles export requests. Other event types share the topic and are skipped.
func (ep *EventProcessor) Process(ctx context.Context, event events.Event) error {
	switch event.Type {
	case events.TypeExportRequested:
		return ep.processExport(ctx, event)
	default:
		ep.logger.Debug("Ignoring %s event %s", event.Type, event.ID)
		return nil
	}
}

func (ep *EventProcessor) processExport(ctx context.Context, event events.Event) error {
	var req events.ExportRequest
	if err := event.Decode(&req); err != nil {
		return fmt.Errorf("failed to decode export request %s: %w", event.ID, err)
	}
	req = req.Normalized()

	if err := ep.validator.ValidateExportRequest(req); err != nil {
		return err
	}

	result, err := ep.exporter.Export(ctx, req)
	if err != nil {
		return fmt.Errorf("export request %s failed: %w", event.ID, err)
	}

	ep.logger.Info("Export request %s produced %s", event.ID, result.Filename)
	return nil
}
