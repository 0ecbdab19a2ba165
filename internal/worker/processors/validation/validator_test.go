package validation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"felmel/internal/config"
	"felmel/internal/events"
	"felmel/internal/logger"
	"felmel/internal/models"
)

func TestValidateExportRequest(t *testing.T) {
	v := New(config.Default(), logger.NewNop())

	assert.NoError(t, v.ValidateExportRequest(events.ExportRequest{Format: "csv", Mode: "full"}))
	assert.NoError(t, v.ValidateExportRequest(events.ExportRequest{
		Format: "stats",
		Mode:   "fast",
		Sort:   &models.SortState{Field: models.FieldPrice, Direction: models.Descending},
	}))
}

func TestValidateExportRequestListsEveryProblem(t *testing.T) {
	v := New(config.Default(), logger.NewNop())
	negative := decimal.NewFromInt(-5)

	err := v.ValidateExportRequest(events.ExportRequest{
		Format:       "xlsx",
		Mode:         "everything",
		PageSizeHint: 500,
		Filters:      models.FilterState{MaxPrice: &negative},
		Sort:         &models.SortState{Field: "color", Direction: "sideways"},
	})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Len(t, vErr.Problems, 6)
	assert.Contains(t, err.Error(), `unknown format "xlsx"`)
	assert.Contains(t, err.Error(), "page_size_hint exceeds 100")
}

func TestValidateNegativeHint(t *testing.T) {
	v := New(config.Default(), logger.NewNop())
	err := v.ValidateExportRequest(events.ExportRequest{Format: "json", Mode: "fast", PageSizeHint: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page_size_hint is negative")
}
