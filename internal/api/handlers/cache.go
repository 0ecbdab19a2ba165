package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"felmel/internal/catalog"
	"felmel/internal/logger"
)

type CacheHandler struct {
	service *catalog.Service
	logger  *logger.Logger
}

func NewCacheHandler(service *catalog.Service, logger *logger.Logger) *CacheHandler {
	return &CacheHandler{
		service: service,
		logger:  logger,
	}
}

func (h *CacheHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.CacheStats())
}

func (h *CacheHandler) Clear(c *gin.Context) {
	if err := h.service.ClearCache(c.Request.Context()); err != nil {
		h.logger.Error("Failed to clear cache: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cache"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": h.service.CacheStats()})
}
