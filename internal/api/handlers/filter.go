package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"felmel/internal/catalog"
	"felmel/internal/logger"
	"felmel/internal/models"
)

type FilterHandler struct {
	session *catalog.Session
	logger  *logger.Logger
}

func NewFilterHandler(session *catalog.Session, logger *logger.Logger) *FilterHandler {
	return &FilterHandler{
		session: session,
		logger:  logger,
	}
}

type filterRequest struct {
	SKU      string           `json:"sku"`
	Name     string           `json:"name"`
	Category string           `json:"category"`
	Material string           `json:"material"`
	MaxPrice *decimal.Decimal `json:"max_price"`
}

// Set replaces the filter state. A zero max_price means no bound.
func (h *FilterHandler) Set(c *gin.Context) {
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	state := models.FilterState{
		SKU:      req.SKU,
		Name:     req.Name,
		Category: req.Category,
		Material: req.Material,
	}
	if req.MaxPrice != nil {
		if req.MaxPrice.IsNegative() {
			badRequest(c, "max_price must not be negative")
			return
		}
		if !req.MaxPrice.IsZero() {
			state.MaxPrice = req.MaxPrice
		}
	}

	stats := h.session.SetFilter(state)
	h.logger.Debug("Filters applied: %d of %d products", stats.Filtered, stats.Total)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"filter":   h.session.Filter(),
		"stats":    stats,
		"products": h.session.View(),
	})
}

func (h *FilterHandler) Clear(c *gin.Context) {
	stats := h.session.ClearFilter()
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"stats":    stats,
		"products": h.session.View(),
	})
}

func (h *FilterHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.FilterStats())
}

type sortRequest struct {
	Field string `json:"field" binding:"required"`
}

// Sort toggles the ordering on a column.
func (h *FilterHandler) Sort(c *gin.Context) {
	var req sortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	field, ok := models.ParseField(req.Field)
	if !ok {
		badRequest(c, "unknown sort field "+req.Field)
		return
	}

	state := h.session.SortBy(field)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"sort":     state,
		"products": h.session.View(),
	})
}
