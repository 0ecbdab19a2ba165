package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"felmel/internal/catalog"
	connector "felmel/internal/connectors/woocommerce"
	"felmel/internal/database"
	"felmel/internal/export"
	"felmel/internal/services/woocommerce"
	"felmel/internal/worker/processors/validation"
)

// respondError maps domain errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var (
		fetchErr  *woocommerce.FetchError
		emptyErr  *connector.EmptyCatalogError
		noDataErr *export.NoDataError
	)

	switch {
	case errors.As(err, &fetchErr):
		c.JSON(http.StatusBadGateway, gin.H{
			"success":         false,
			"error":           fetchErr.Error(),
			"page":            fetchErr.Page,
			"upstream_status": fetchErr.Status,
			"timeout":         fetchErr.Timeout,
		})
	case errors.As(err, &emptyErr):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": emptyErr.Error()})
	case errors.As(err, &noDataErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": noDataErr.Error()})
	case validation.IsValidationError(err):
		badRequest(c, err.Error())
	case errors.Is(err, catalog.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, catalog.ErrNoBroker):
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, database.ErrNoExports):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
}
