package events

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"felmel/internal/models"
)

func TestNewEventRoundTripsPayload(t *testing.T) {
	event, err := NewEvent(TypeCatalogLoaded, LoadedPayload{Mode: "full", Total: 237, Pages: 3})
	require.NoError(t, err)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, TypeCatalogLoaded, event.Type)
	assert.False(t, event.Timestamp.IsZero())

	var payload LoadedPayload
	require.NoError(t, event.Decode(&payload))
	assert.Equal(t, 237, payload.Total)
	assert.Equal(t, "full", payload.Mode)
}

func TestDecodeWithoutData(t *testing.T) {
	var payload LoadedPayload
	assert.Error(t, Event{ID: "x"}.Decode(&payload))
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, SplitBrokers(" a:9092, ,b:9092 "))
	assert.Nil(t, SplitBrokers(""))
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), TypeCatalogExported, nil))
	assert.NoError(t, p.Close())
}

func TestExportRequestNormalized(t *testing.T) {
	zero := decimal.Zero
	bound := decimal.NewFromInt(40)

	req := ExportRequest{
		Format:  "csv",
		Filters: models.FilterState{MaxPrice: &zero},
		Sort:    &models.SortState{Field: "modified_at", Direction: models.Descending},
	}
	got := req.Normalized()

	assert.Equal(t, "fast", got.Mode)
	assert.Nil(t, got.Filters.MaxPrice)
	require.NotNil(t, got.Sort)
	assert.Equal(t, models.FieldModifiedAt, got.Sort.Field)
	assert.Equal(t, models.Field("modified_at"), req.Sort.Field)

	got = ExportRequest{Mode: "full", Filters: models.FilterState{MaxPrice: &bound}, Sort: &models.SortState{Field: "color"}}.Normalized()
	assert.Equal(t, "full", got.Mode)
	assert.True(t, got.Filters.MaxPrice.Equal(bound))
	assert.Equal(t, models.Field("color"), got.Sort.Field)
}
