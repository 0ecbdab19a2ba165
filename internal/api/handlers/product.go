package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"felmel/internal/catalog"
	"felmel/internal/logger"
)

type ProductHandler struct {
	session *catalog.Session
	logger  *logger.Logger
}

func NewProductHandler(session *catalog.Session, logger *logger.Logger) *ProductHandler {
	return &ProductHandler{
		session: session,
		logger:  logger,
	}
}

// List returns the current filtered and sorted view.
func (h *ProductHandler) List(c *gin.Context) {
	view := h.session.View()
	status := h.session.Status()

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": view,
		"total":    len(view),
		"loaded":   status.Total,
		"mode":     status.Mode,
	})
}

// Search fuzzy-matches q against the current view.
func (h *ProductHandler) Search(c *gin.Context) {
	term := c.Query("q")
	matches := catalog.Search(h.session.View(), term)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"query":    term,
		"products": matches,
		"total":    len(matches),
	})
}

// Categories lists the distinct categories across every loaded product.
func (h *ProductHandler) Categories(c *gin.Context) {
	categories := catalog.Categories(h.session.Products())
	if categories == nil {
		categories = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// Stats summarizes the current view.
func (h *ProductHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.Summarize(h.session.View()))
}
