package woocommerce

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"felmel/internal/logger"
	"felmel/internal/models"
)

var fixedNow = time.Date(2025, 3, 1, 9, 15, 0, 0, time.UTC)

func newTestTransformer() *Transformer {
	return NewTransformer(TransformerOptions{
		DiscountPercent: 35,
		Location:        time.UTC,
		Now:             func() time.Time { return fixedNow },
	}, logger.NewNop())
}

func rawRecords(t *testing.T, docs ...string) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, len(docs))
	for i, d := range docs {
		out[i] = json.RawMessage(d)
	}
	return out
}

func TestNormalizeFullRecord(t *testing.T) {
	records := rawRecords(t, `{
		"id": 42,
		"name": "Anillo Solitario",
		"sku": "AN-42",
		"price": "120000",
		"regular_price": "150000",
		"categories": [{"id": 1, "name": "Anillos"}, {"id": 2, "name": "Oro"}],
		"attributes": [{"name": "Talla", "options": ["7"]}, {"name": "Material", "options": ["Oro 18k"]}],
		"date_created": "2024-01-01T08:00:00",
		"date_modified": "2024-01-15T10:30:00"
	}`)

	result := newTestTransformer().Normalize(records)
	require.Len(t, result.Products, 1)
	assert.Zero(t, result.Dropped)

	p := result.Products[0]
	assert.Equal(t, "42", p.ID)
	assert.Equal(t, "AN-42", p.SKU)
	assert.Equal(t, "Anillo Solitario", p.Name)
	assert.Equal(t, "Anillos, Oro", p.Category)
	assert.Equal(t, "Oro 18k", p.Material)
	assert.Equal(t, "120000", p.Price.String())
	assert.Equal(t, "78000", p.DiscountedPrice.String())
	assert.True(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC).Equal(p.ModifiedAt))
	assert.Equal(t, "15/01/2024, 10:30", p.ModifiedAtDisplay)
}

func TestNormalizeFallbacks(t *testing.T) {
	records := rawRecords(t,
		`{"id": 7}`,
		`{"regular_price": 19.9, "date_created": "2023-05-02"}`,
		`{"price": "", "regular_price": "no price"}`,
	)

	result := newTestTransformer().NormalizeFrom(records, 100)
	require.Len(t, result.Products, 3)

	first := result.Products[0]
	assert.Equal(t, "7", first.ID)
	assert.Equal(t, "PROD-7", first.SKU)
	assert.Equal(t, models.UnnamedProduct, first.Name)
	assert.Equal(t, models.UncategorizedProduct, first.Category)
	assert.Equal(t, models.NoMaterial, first.Material)
	assert.True(t, first.Price.IsZero())
	assert.True(t, fixedNow.Equal(first.ModifiedAt))

	second := result.Products[1]
	assert.Equal(t, "101", second.ID)
	assert.Equal(t, "PROD-101", second.SKU)
	assert.Equal(t, "19.9", second.Price.String())
	assert.True(t, time.Date(2023, 5, 2, 0, 0, 0, 0, time.UTC).Equal(second.ModifiedAt))

	third := result.Products[2]
	assert.True(t, third.Price.IsZero())
	assert.True(t, third.DiscountedPrice.IsZero())
}

func TestNormalizeDropsMalformedRecords(t *testing.T) {
	records := rawRecords(t,
		`{"id": 1, "sku": "OK-1"}`,
		`{"id": 2, "categories": "not-a-list"}`,
		`{"id": 3, "attributes": [{"name": "Material", "options": "Oro"}]}`,
		`not json`,
		`{"id": {"nested": true}}`,
		`{"id": 6, "sku": "OK-6"}`,
	)

	result := newTestTransformer().Normalize(records)

	assert.Equal(t, len(records), len(result.Products)+result.Dropped)
	assert.Equal(t, 4, result.Dropped)
	require.Len(t, result.Errors, 4)
	assert.Equal(t, 1, result.Errors[0].Index)

	skus := []string{result.Products[0].SKU, result.Products[1].SKU}
	assert.Equal(t, []string{"OK-1", "OK-6"}, skus)
}

func TestNormalizeIsDeterministic(t *testing.T) {
	records := rawRecords(t, `{"id": "abc", "name": "Cadena", "price": "10", "date_modified": "2024-02-02T02:02:02"}`)
	tr := newTestTransformer()

	first := tr.Normalize(records)
	second := tr.Normalize(records)
	assert.Equal(t, first.Products, second.Products)
}

func TestNormalizeEmptyBatch(t *testing.T) {
	result := newTestTransformer().Normalize(nil)
	assert.Empty(t, result.Products)
	assert.Zero(t, result.Dropped)
}
