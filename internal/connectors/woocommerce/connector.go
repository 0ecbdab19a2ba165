package woocommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"felmel/internal/cache"
	"felmel/internal/config"
	"felmel/internal/logger"
	"felmel/internal/models"
	woo "felmel/internal/services/woocommerce"
)

// PageSource returns one raw page of products. The upstream client implements it.
type PageSource interface {
	FetchPage(ctx context.Context, page, perPage int) ([]json.RawMessage, error)
}

// Options bounds how the connector walks the upstream catalog.
type Options struct {
	PageSize      int
	MaxPageSize   int
	MaxPages      int
	FastLoadLimit int
	ThrottleEvery int
	ThrottlePause time.Duration
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		PageSize:      cfg.PageSize,
		MaxPageSize:   cfg.MaxPageSize,
		MaxPages:      cfg.MaxPages,
		FastLoadLimit: cfg.FastLoadLimit,
		ThrottleEvery: cfg.ThrottleEvery,
		ThrottlePause: cfg.ThrottlePause,
	}
}

// EmptyCatalogError means a load finished without a single usable product.
type EmptyCatalogError struct {
	Mode    models.LoadMode
	Dropped int
}

func (e *EmptyCatalogError) Error() string {
	if e.Dropped > 0 {
		return fmt.Sprintf("no products found (%s load, %d records could not be normalized)", e.Mode, e.Dropped)
	}
	return fmt.Sprintf("no products found (%s load)", e.Mode)
}

type WooCommerceConnector struct {
	source      PageSource
	cache       cache.PageCache
	transformer *woo.Transformer
	opts        Options
	sleep       func(ctx context.Context, d time.Duration) error
	logger      *logger.Logger
}

// New builds a connector; pageCache may be nil to always hit the source.
func New(opts Options, source PageSource, pageCache cache.PageCache, transformer *woo.Transformer, logger *logger.Logger) *WooCommerceConnector {
	return &WooCommerceConnector{
		source:      source,
		cache:       pageCache,
		transformer: transformer,
		opts:        opts,
		sleep:       sleepContext,
		logger:      logger,
	}
}

// WithSleep replaces the throttle pause, mostly for tests.
func (wc *WooCommerceConnector) WithSleep(sleep func(ctx context.Context, d time.Duration) error) *WooCommerceConnector {
	wc.sleep = sleep
	return wc
}

// LoadCatalog runs a fast (single page) or full (every page) load and normalizes the result.
// pageSizeHint only applies to fast loads.
func (wc *WooCommerceConnector) LoadCatalog(ctx context.Context, mode models.LoadMode, pageSizeHint int) (*models.LoadResult, error) {
	start := time.Now()

	var (
		records []json.RawMessage
		pages   int
		size    int
		err     error
	)

	switch mode {
	case models.LoadModeFull:
		size = wc.opts.MaxPageSize
		records, pages, err = wc.fetchAll(ctx)
	case models.LoadModeFast:
		size = wc.opts.FastLoadLimit
		if pageSizeHint > 0 && pageSizeHint <= wc.opts.MaxPageSize {
			size = pageSizeHint
		}
		records, err = wc.fetchPage(ctx, 1, size)
		pages = 1
	default:
		return nil, fmt.Errorf("unsupported load mode %q", mode)
	}
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, &EmptyCatalogError{Mode: mode}
	}

	normalized := wc.transformer.Normalize(records)
	if len(normalized.Products) == 0 {
		return nil, &EmptyCatalogError{Mode: mode, Dropped: normalized.Dropped}
	}

	wc.logger.Info("%s load finished: %d products from %d pages in %s", mode, len(normalized.Products), pages, time.Since(start))

	return &models.LoadResult{
		Success:  true,
		Products: normalized.Products,
		Total:    len(normalized.Products),
		Mode:     mode,
		Pages:    pages,
		PageSize: size,
		Dropped:  normalized.Dropped,
	}, nil
}

// LoadMore fetches a single page. pageSize must match the load the page continues; zero
// falls back to the regular page size. An empty page is not an error.
func (wc *WooCommerceConnector) LoadMore(ctx context.Context, page, pageSize int) (*models.LoadResult, error) {
	if page < 1 {
		return nil, fmt.Errorf("invalid page %d", page)
	}
	if pageSize <= 0 {
		pageSize = wc.opts.PageSize
	}
	if pageSize > wc.opts.MaxPageSize {
		return nil, fmt.Errorf("page size %d exceeds %d", pageSize, wc.opts.MaxPageSize)
	}

	records, err := wc.fetchPage(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	normalized := wc.transformer.NormalizeFrom(records, (page-1)*pageSize)

	return &models.LoadResult{
		Success:  true,
		Products: normalized.Products,
		Total:    len(normalized.Products),
		Mode:     models.LoadModeMore,
		Pages:    1,
		PageSize: pageSize,
		Dropped:  normalized.Dropped,
	}, nil
}

// fetchAll walks pages sequentially. It stops after two consecutive empty pages, after a
// non-empty page shorter than the page size, at MaxPages, or on a failure. Only a failure
// on the first page is returned; later failures keep what was collected.
func (wc *WooCommerceConnector) fetchAll(ctx context.Context) ([]json.RawMessage, int, error) {
	size := wc.opts.MaxPageSize
	var all []json.RawMessage
	fetched := 0
	emptyStreak := 0

	for page := 1; page <= wc.opts.MaxPages; page++ {
		if fetched > 0 && wc.opts.ThrottleEvery > 0 && fetched%wc.opts.ThrottleEvery == 0 {
			if err := wc.sleep(ctx, wc.opts.ThrottlePause); err != nil {
				wc.logger.Warn("Full load interrupted before page %d: %v", page, err)
				break
			}
		}

		records, err := wc.fetchPage(ctx, page, size)
		if err != nil {
			if page == 1 {
				return nil, 0, err
			}
			wc.logger.Warn("Stopping full load at page %d, keeping %d records: %v", page, len(all), err)
			break
		}
		fetched++

		if len(records) == 0 {
			emptyStreak++
			if emptyStreak >= 2 {
				break
			}
			continue
		}
		emptyStreak = 0
		all = append(all, records...)

		// A short page is taken as the last one even though the upstream may still have more.
		if len(records) < size {
			break
		}
	}

	return all, fetched, nil
}

func (wc *WooCommerceConnector) fetchPage(ctx context.Context, page, size int) ([]json.RawMessage, error) {
	if wc.cache != nil {
		if records, ok := wc.cache.Get(ctx, page, size); ok {
			return records, nil
		}
	}

	wc.logger.Debug("Fetching page %d (size %d)", page, size)
	records, err := wc.source.FetchPage(ctx, page, size)
	if err != nil {
		return nil, err
	}

	if wc.cache != nil {
		wc.cache.Put(ctx, page, size, records)
	}
	return records, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
