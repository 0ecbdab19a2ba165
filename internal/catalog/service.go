package catalog

import (
	"context"
	"errors"
	"fmt"

	"felmel/internal/cache"
	"felmel/internal/events"
	"felmel/internal/logger"
	"felmel/internal/models"
)

// ErrNoBroker is returned when a job is queued without a configured event bus.
var ErrNoBroker = errors.New("no event broker configured")

// Loader fetches and normalizes catalog pages.
type Loader interface {
	LoadCatalog(ctx context.Context, mode models.LoadMode, pageSizeHint int) (*models.LoadResult, error)
	LoadMore(ctx context.Context, page, pageSize int) (*models.LoadResult, error)
}

type LoadOptions struct {
	Mode         models.LoadMode
	PageSizeHint int
	// Refresh drops cached pages before loading.
	Refresh bool
}

// Service runs loads against a Session and announces them.
type Service struct {
	loader    Loader
	cache     cache.PageCache
	publisher events.Publisher
	logger    *logger.Logger
}

func NewService(loader Loader, pageCache cache.PageCache, publisher events.Publisher, logger *logger.Logger) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		loader:    loader,
		cache:     pageCache,
		publisher: publisher,
		logger:    logger,
	}
}

// Load replaces the session's products. Filters and sort are reset on success; on failure
// the previous products stay in place.
func (s *Service) Load(ctx context.Context, session *Session, opts LoadOptions) (*models.LoadResult, error) {
	if err := session.BeginLoad(); err != nil {
		return nil, err
	}
	defer session.EndLoad()

	if opts.Mode == "" {
		opts.Mode = models.LoadModeFast
	}

	if opts.Refresh && s.cache != nil {
		if err := s.cache.Clear(ctx); err != nil {
			s.logger.Warn("Failed to clear page cache before load: %v", err)
		}
	}

	s.logger.Info("Loading catalog (%s)", opts.Mode)
	result, err := s.loader.LoadCatalog(ctx, opts.Mode, opts.PageSizeHint)
	if err != nil {
		s.logger.Error("Catalog load failed: %v", err)
		return nil, err
	}

	hasMore := result.Mode == models.LoadModeFast && result.Total+result.Dropped >= result.PageSize
	session.Replace(result, hasMore)

	s.publish(ctx, events.TypeCatalogLoaded, events.LoadedPayload{
		Mode:    string(result.Mode),
		Total:   result.Total,
		Pages:   result.Pages,
		Dropped: result.Dropped,
	})
	return result, nil
}

// LoadMore appends the next page to the session. The active filter and sort are kept.
func (s *Service) LoadMore(ctx context.Context, session *Session) (*models.LoadResult, error) {
	if err := session.BeginLoad(); err != nil {
		return nil, err
	}
	defer session.EndLoad()

	page := session.NextPage()
	result, err := s.loader.LoadMore(ctx, page, session.PageSize())
	if err != nil {
		s.logger.Error("Loading page %d failed: %v", page, err)
		return nil, fmt.Errorf("failed to load page %d: %w", page, err)
	}

	hasMore := result.PageSize > 0 && result.Total+result.Dropped >= result.PageSize
	session.Append(result.Products, page, hasMore)

	if result.Total == 0 {
		s.logger.Info("No more products to load after page %d", page-1)
	} else {
		s.logger.Info("Loaded %d additional products from page %d", result.Total, page)
	}
	return result, nil
}

// ClearCache drops every cached page.
func (s *Service) ClearCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Clear(ctx)
}

func (s *Service) CacheStats() cache.Stats {
	if s.cache == nil {
		return cache.Stats{Backend: "none"}
	}
	return s.cache.Stats()
}

// EnqueueExport queues an export job for the worker.
func (s *Service) EnqueueExport(ctx context.Context, req events.ExportRequest) error {
	if _, ok := s.publisher.(events.NopPublisher); ok {
		return ErrNoBroker
	}
	if err := s.publisher.Publish(ctx, events.TypeExportRequested, req); err != nil {
		return fmt.Errorf("failed to queue export: %w", err)
	}
	s.logger.Info("Queued %s export (%s load)", req.Format, req.Mode)
	return nil
}

// Announce publishes an event; failures are logged and otherwise ignored.
func (s *Service) Announce(ctx context.Context, eventType string, payload interface{}) {
	s.publish(ctx, eventType, payload)
}

func (s *Service) publish(ctx context.Context, eventType string, payload interface{}) {
	if err := s.publisher.Publish(ctx, eventType, payload); err != nil {
		s.logger.Warn("Failed to publish %s: %v", eventType, err)
	}
}
