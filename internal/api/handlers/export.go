package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"felmel/internal/catalog"
	"felmel/internal/events"
	"felmel/internal/export"
	"felmel/internal/logger"
	"felmel/internal/models"
	"felmel/internal/worker/processors/validation"
)

// ExportHistory stores produced exports.
type ExportHistory interface {
	RecordExport(ctx context.Context, record *models.ExportRecord) error
	LastExport(ctx context.Context) (*models.ExportRecord, error)
	ListExports(ctx context.Context, limit int) ([]models.ExportRecord, error)
}

type ExportHandler struct {
	service   *catalog.Service
	session   *catalog.Session
	pipeline  *export.Pipeline
	history   ExportHistory
	validator *validation.Validator
	logger    *logger.Logger
}

func NewExportHandler(service *catalog.Service, session *catalog.Session, pipeline *export.Pipeline, history ExportHistory, validator *validation.Validator, logger *logger.Logger) *ExportHandler {
	return &ExportHandler{
		service:   service,
		session:   session,
		pipeline:  pipeline,
		history:   history,
		validator: validator,
		logger:    logger,
	}
}

// Export serves the current view as a csv, json or stats download.
func (h *ExportHandler) Export(c *gin.Context) {
	format, ok := export.ParseFormat(c.Param("format"))
	if !ok {
		badRequest(c, "format must be csv, json or stats")
		return
	}

	filterStats := h.session.FilterStats()
	doc, err := h.pipeline.Export(format, export.Request{
		Products:    h.session.View(),
		TotalLoaded: filterStats.Total,
		FilterStats: filterStats,
		FastLoad:    h.session.FastLoad(),
	})
	if err != nil {
		h.logger.Warn("Export %s rejected: %v", format, err)
		respondError(c, err)
		return
	}

	h.record(c.Request.Context(), format, doc, filterStats)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Name))
	c.Data(http.StatusOK, doc.MIMEType, doc.Content)
}

func (h *ExportHandler) record(ctx context.Context, format export.Format, doc *export.Document, filterStats models.FilterStats) {
	if h.history != nil {
		err := h.history.RecordExport(ctx, &models.ExportRecord{
			Format:         string(format),
			Filename:       doc.Name,
			ProductCount:   filterStats.Filtered,
			FiltersApplied: filterStats.ActiveFilterCount > 0,
			Source:         "api",
		})
		if err != nil {
			h.logger.Warn("Failed to record export %s: %v", doc.Name, err)
		}
	}

	h.service.Announce(ctx, events.TypeCatalogExported, events.ExportedPayload{
		Format:       string(format),
		Filename:     doc.Name,
		ProductCount: filterStats.Filtered,
		Source:       "api",
	})
	h.logger.Info("Export completed: %s", doc.Name)
}

// Last returns the most recent export record.
func (h *ExportHandler) Last(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "export history is not configured"})
		return
	}

	record, err := h.history.LastExport(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": record})
}

// Enqueue queues a background export that the worker writes to disk.
func (h *ExportHandler) Enqueue(c *gin.Context) {
	var req events.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	req = req.Normalized()
	if err := h.validator.ValidateExportRequest(req); err != nil {
		respondError(c, err)
		return
	}

	if err := h.service.EnqueueExport(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"success": true, "format": req.Format, "mode": req.Mode})
}

// List returns recent export records, newest first. ?limit= caps the count (default 20).
func (h *ExportHandler) List(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "export history is not configured"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			badRequest(c, "limit must be a positive integer")
			return
		}
		limit = n
	}

	records, err := h.history.ListExports(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": records, "count": len(records)})
}
