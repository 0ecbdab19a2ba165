package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"felmel/internal/catalog"
	"felmel/internal/config"
	"felmel/internal/events"
	"felmel/internal/export"
	"felmel/internal/logger"
	"felmel/internal/models"
)

// History stores produced exports.
type History interface {
	RecordExport(ctx context.Context, record *models.ExportRecord) error
}

// Result describes one document written by the worker.
type Result struct {
	Path         string
	Filename     string
	ProductCount int
}

// Exporter runs a load, applies the requested view and writes the document to disk.
type Exporter struct {
	config   *config.Config
	logger   *logger.Logger
	service  *catalog.Service
	pipeline *export.Pipeline
	history  History
}

func New(cfg *config.Config, logger *logger.Logger, service *catalog.Service, pipeline *export.Pipeline, history History) *Exporter {
	return &Exporter{
		config:   cfg,
		logger:   logger,
		service:  service,
		pipeline: pipeline,
		history:  history,
	}
}

// Export handles one validated request in a fresh session.
func (e *Exporter) Export(ctx context.Context, req events.ExportRequest) (*Result, error) {
	req = req.Normalized()

	format, ok := export.ParseFormat(req.Format)
	if !ok {
		return nil, fmt.Errorf("unsupported export format %q", req.Format)
	}
	mode, ok := models.ParseLoadMode(req.Mode)
	if !ok {
		return nil, fmt.Errorf("unsupported load mode %q", req.Mode)
	}

	session := catalog.NewSession()
	if _, err := e.service.Load(ctx, session, catalog.LoadOptions{Mode: mode, PageSizeHint: req.PageSizeHint}); err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	filterStats := session.SetFilter(req.Filters)
	if req.Sort != nil {
		session.SetSort(*req.Sort)
	}

	doc, err := e.pipeline.Export(format, export.Request{
		Products:    session.View(),
		TotalLoaded: filterStats.Total,
		FilterStats: filterStats,
		FastLoad:    session.FastLoad(),
	})
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(e.config.ExportDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(e.config.ExportDir, doc.Name)
	if err := os.WriteFile(path, doc.Content, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}

	if e.history != nil {
		err := e.history.RecordExport(ctx, &models.ExportRecord{
			Format:         string(format),
			Filename:       doc.Name,
			ProductCount:   filterStats.Filtered,
			FiltersApplied: filterStats.ActiveFilterCount > 0,
			Source:         "worker",
		})
		if err != nil {
			e.logger.Warn("Failed to record export %s: %v", doc.Name, err)
		}
	}

	e.service.Announce(ctx, events.TypeCatalogExported, events.ExportedPayload{
		Format:       string(format),
		Filename:     doc.Name,
		ProductCount: filterStats.Filtered,
		Source:       "worker",
	})

	e.logger.Info("Wrote %s with %d products", path, filterStats.Filtered)
	return &Result{Path: path, Filename: doc.Name, ProductCount: filterStats.Filtered}, nil
}
