package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"felmel/internal/catalog"
	"felmel/internal/logger"
	"felmel/internal/models"
)

type CatalogHandler struct {
	service *catalog.Service
	session *catalog.Session
	logger  *logger.Logger
}

func NewCatalogHandler(service *catalog.Service, session *catalog.Session, logger *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		session: session,
		logger:  logger,
	}
}

type loadRequest struct {
	Mode         string `json:"mode"`
	PageSizeHint int    `json:"page_size_hint"`
	Refresh      bool   `json:"refresh"`
}

// Load runs a fast or full load and replaces the session's products.
func (h *CatalogHandler) Load(c *gin.Context) {
	var req loadRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err.Error())
		return
	}

	mode, ok := models.ParseLoadMode(req.Mode)
	if !ok {
		badRequest(c, "mode must be fast or full")
		return
	}
	if req.PageSizeHint < 0 {
		badRequest(c, "page_size_hint must not be negative")
		return
	}

	result, err := h.service.Load(c.Request.Context(), h.session, catalog.LoadOptions{
		Mode:         mode,
		PageSizeHint: req.PageSizeHint,
		Refresh:      req.Refresh,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  result.Success,
		"products": result.Products,
		"total":    result.Total,
		"mode":     result.Mode,
		"pages":    result.Pages,
		"dropped":  result.Dropped,
		"has_more": h.session.Status().HasMore,
	})
}

// LoadMore appends the next page to the session.
func (h *CatalogHandler) LoadMore(c *gin.Context) {
	result, err := h.service.LoadMore(c.Request.Context(), h.session)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  result.Success,
		"products": result.Products,
		"total":    result.Total,
		"mode":     result.Mode,
		"dropped":  result.Dropped,
		"has_more": h.session.Status().HasMore,
	})
}

func (h *CatalogHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.Status())
}
