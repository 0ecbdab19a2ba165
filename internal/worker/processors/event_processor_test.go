package processors

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"felmel/internal/catalog"
	"felmel/internal/config"
	"felmel/internal/events"
	pipeline "felmel/internal/export"
	"felmel/internal/logger"
	"felmel/internal/models"
	"felmel/internal/worker/processors/export"
	"felmel/internal/worker/processors/validation"
)

type oneProductLoader struct {
	calls int
}

func (l *oneProductLoader) LoadCatalog(_ context.Context, mode models.LoadMode, _ int) (*models.LoadResult, error) {
	l.calls++
	p := models.Product{ID: "1", SKU: "AN-1", Name: "Anillo", Category: "Anillos", Material: "Oro", Price: decimal.NewFromInt(100)}
	return &models.LoadResult{Success: true, Products: []models.Product{p}, Total: 1, Mode: mode, Pages: 1, PageSize: 100}, nil
}

func (l *oneProductLoader) LoadMore(context.Context, int, int) (*models.LoadResult, error) {
	return &models.LoadResult{Success: true, Mode: models.LoadModeMore, PageSize: 100}, nil
}

func newTestProcessor(t *testing.T) (*EventProcessor, *oneProductLoader, string) {
	t.Helper()
	log := logger.NewNop()
	cfg := config.Default()
	cfg.ExportDir = t.TempDir()

	loader := &oneProductLoader{}
	service := catalog.NewService(loader, nil, nil, log)
	exporter := export.New(cfg, log, service, pipeline.NewPipeline(pipeline.OptionsFromConfig(cfg), log), nil)
	return NewEventProcessor(cfg, log, exporter), loader, cfg.ExportDir
}

func TestProcessExportRequest(t *testing.T) {
	ep, loader, dir := newTestProcessor(t)

	event, err := events.NewEvent(events.TypeExportRequested, events.ExportRequest{Format: "stats"})
	require.NoError(t, err)
	require.NoError(t, ep.Process(context.Background(), event))

	assert.Equal(t, 1, loader.calls)
	files, err := filepath.Glob(filepath.Join(dir, "estadisticas_felmel_*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	info, err := os.Stat(files[0])
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}

func TestProcessRejectsInvalidRequest(t *testing.T) {
	ep, loader, _ := newTestProcessor(t)

	event, err := events.NewEvent(events.TypeExportRequested, events.ExportRequest{Format: "pdf", Mode: "full"})
	require.NoError(t, err)

	err = ep.Process(context.Background(), event)
	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))
	assert.Zero(t, loader.calls)
}

func TestProcessIgnoresOtherEvents(t *testing.T) {
	ep, loader, _ := newTestProcessor(t)

	event, err := events.NewEvent(events.TypeCatalogLoaded, events.LoadedPayload{Mode: "fast", Total: 3})
	require.NoError(t, err)
	assert.NoError(t, ep.Process(context.Background(), event))
	assert.Zero(t, loader.calls)
}

func TestProcessRejectsEventWithoutData(t *testing.T) {
	ep, _, _ := newTestProcessor(t)
	err := ep.Process(context.Background(), events.Event{ID: "x", Type: events.TypeExportRequested})
	assert.Error(t, err)
}
