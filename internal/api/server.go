package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"felmel/internal/api/handlers"
	"felmel/internal/api/middleware"
	"felmel/internal/catalog"
	"felmel/internal/config"
	"felmel/internal/export"
	"felmel/internal/logger"
	"felmel/internal/worker/processors/validation"
)

// Dependencies are the collaborators the HTTP layer serves. History may be nil.
type Dependencies struct {
	Service  *catalog.Service
	Session  *catalog.Session
	Pipeline *export.Pipeline
	History  handlers.ExportHistory
}

type Server struct {
	config *config.Config
	logger *logger.Logger
	router *gin.Engine
	server *http.Server
}

func New(cfg *config.Config, logger *logger.Logger, deps Dependencies) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS(cfg.CORSOrigins))

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(deps.Service, deps.Session, logger)
	productHandler := handlers.NewProductHandler(deps.Session, logger)
	filterHandler := handlers.NewFilterHandler(deps.Session, logger)
	exportHandler := handlers.NewExportHandler(deps.Service, deps.Session, deps.Pipeline, deps.History, validation.New(cfg, logger), logger)
	cacheHandler := handlers.NewCacheHandler(deps.Service, logger)

	router.GET("/health", handlers.Health(cfg.AppVersion))

	// Routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.Health(cfg.AppVersion))

		// Catalog loading
		catalogRoutes := v1.Group("/catalog")
		{
			catalogRoutes.POST("/load", catalogHandler.Load)
			catalogRoutes.POST("/load-more", catalogHandler.LoadMore)
			catalogRoutes.GET("/status", catalogHandler.Status)
		}

		// Products
		products := v1.Group("/products")
		{
			products.GET("", productHandler.List)
			products.GET("/search", productHandler.Search)
		}
		v1.GET("/categories", productHandler.Categories)
		v1.GET("/stats", productHandler.Stats)

		// Filters and sort
		filters := v1.Group("/filters")
		{
			filters.PUT("", filterHandler.Set)
			filters.DELETE("", filterHandler.Clear)
			filters.GET("/stats", filterHandler.Stats)
		}
		v1.POST("/sort", filterHandler.Sort)

		// Exports
		v1.GET("/export/:format", exportHandler.Export)
		v1.GET("/exports", exportHandler.List)
		v1.GET("/exports/last", exportHandler.Last)
		v1.POST("/exports/jobs", exportHandler.Enqueue)

		// Page cache
		cacheRoutes := v1.Group("/cache")
		{
			cacheRoutes.GET("/stats", cacheHandler.Stats)
			cacheRoutes.DELETE("", cacheHandler.Clear)
		}
	}

	return &Server{
		config: cfg,
		logger: logger,
		router: router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	// Full loads can take many upstream round trips.
	writeTimeout := time.Duration(s.config.MaxPages+1)*s.config.RequestTimeout + 15*time.Second

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

// Router exposes the engine for tests and embedding.
func (s *Server) Router() *gin.Engine {
	return s.router
}
