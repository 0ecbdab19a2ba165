// Package bootstrap wires the catalog stack shared by the API and the worker.
package bootstrap

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"felmel/internal/cache"
	"felmel/internal/catalog"
	"felmel/internal/config"
	connector "felmel/internal/connectors/woocommerce"
	"felmel/internal/database"
	"felmel/internal/events"
	"felmel/internal/export"
	"felmel/internal/logger"
	"felmel/internal/services/woocommerce"
)

// Components are the long-lived collaborators built from one Config.
type Components struct {
	Service   *catalog.Service
	Pipeline  *export.Pipeline
	Database  *database.Database
	Publisher events.Publisher
	Cache     cache.PageCache

	closers []func() error
}

// Build connects the optional infrastructure and assembles the catalog service.
// Redis, Kafka and the database degrade to in-process fallbacks when unavailable.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger) *Components {
	decimal.MarshalJSONWithoutQuotes = true

	c := &Components{}
	c.Cache = c.pageCache(ctx, cfg, log)

	client := woocommerce.NewClient(cfg.UpstreamURL, cfg.ConsumerKey, cfg.ConsumerSecret, cfg.RequestTimeout, log)
	transformer := woocommerce.NewTransformer(woocommerce.TransformerOptions{
		DiscountPercent: cfg.DiscountPercent,
		DisplayLayout:   cfg.DisplayDateLayout,
		Location:        time.Local,
	}, log)
	loader := connector.New(connector.OptionsFromConfig(cfg), client, c.Cache, transformer, log)

	if brokers := events.SplitBrokers(cfg.KafkaBrokers); len(brokers) > 0 {
		publisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		c.Publisher = publisher
		c.closers = append(c.closers, publisher.Close)
		log.Info("Publishing catalog events to %s", cfg.KafkaTopic)
	} else {
		c.Publisher = events.NopPublisher{}
	}

	db, err := database.New(cfg.DatabaseURL, cfg.LogLevel == "debug")
	if err != nil {
		log.Warn("Export history disabled: %v", err)
	} else {
		c.Database = db
		c.closers = append(c.closers, db.Close)
	}

	c.Service = catalog.NewService(loader, c.Cache, c.Publisher, log)
	c.Pipeline = export.NewPipeline(export.OptionsFromConfig(cfg), log)
	return c
}

func (c *Components) pageCache(ctx context.Context, cfg *config.Config, log *logger.Logger) cache.PageCache {
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL, cfg.CacheTTL, log)
		if err == nil {
			c.closers = append(c.closers, redisCache.Close)
			log.Info("Using redis page cache")
			return redisCache
		}
		log.Warn("Falling back to memory cache: %v", err)
	}

	memoryCache := cache.NewMemoryCache(cfg.CacheTTL, log)
	memoryCache.StartSweeper(ctx, cfg.CacheSweepInterval)
	return memoryCache
}

// Close releases every connection opened by Build.
func (c *Components) Close(log *logger.Logger) {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			log.Warn("Failed to close component: %v", err)
		}
	}
}
