package catalog

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"felmel/internal/models"
)

func product(sku string, price int64) models.Product {
	return models.Product{
		ID:         sku,
		SKU:        sku,
		Name:       "Producto " + sku,
		Category:   models.UncategorizedProduct,
		Material:   models.NoMaterial,
		Price:      decimal.NewFromInt(price),
		ModifiedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func skus(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.SKU
	}
	return out
}

func bound(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestApplyMaxPrice(t *testing.T) {
	products := []models.Product{product("A1", 10), product("B2", 50)}

	got := Apply(products, models.FilterState{MaxPrice: bound(20)})
	assert.Equal(t, []string{"A1"}, skus(got))

	// the bound is inclusive
	got = Apply(products, models.FilterState{MaxPrice: bound(50)})
	assert.Equal(t, []string{"A1", "B2"}, skus(got))
}

func TestApplyPredicates(t *testing.T) {
	ring := product("AN-001", 100)
	ring.Name = "Anillo Solitario"
	ring.Category = "Anillos, Oro"
	ring.Material = "Oro 18k"

	chain := product("CD-002", 80)
	chain.Name = "Cadena Veneciana"
	chain.Category = "Cadenas"
	chain.Material = "Plata 925"

	products := []models.Product{ring, chain}

	tests := []struct {
		name  string
		state models.FilterState
		want  []string
	}{
		{"empty state keeps all", models.FilterState{}, []string{"AN-001", "CD-002"}},
		{"sku case insensitive", models.FilterState{SKU: "an-"}, []string{"AN-001"}},
		{"name trimmed", models.FilterState{Name: "  cadena "}, []string{"CD-002"}},
		{"category substring", models.FilterState{Category: "Oro"}, []string{"AN-001"}},
		{"category is case sensitive", models.FilterState{Category: "oro"}, []string{}},
		{"material", models.FilterState{Material: "PLATA"}, []string{"CD-002"}},
		{"all predicates must hold", models.FilterState{SKU: "an", Material: "plata"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, skus(Apply(products, tt.state)))
		})
	}
}

func TestApplyIsIdempotentAndPure(t *testing.T) {
	products := []models.Product{product("C", 5), product("A", 30), product("B", 15)}
	original := append([]models.Product(nil), products...)
	state := models.FilterState{MaxPrice: bound(20)}

	once := Apply(products, state)
	twice := Apply(once, state)

	assert.Equal(t, skus(once), skus(twice))
	assert.Equal(t, []string{"C", "B"}, skus(once))
	assert.Equal(t, original, products)
}

func TestCategories(t *testing.T) {
	a := product("A", 1)
	a.Category = "Oro, Anillos"
	b := product("B", 1)
	b.Category = "Aretes, Oro"
	c := product("C", 1)
	d := product("D", 1)
	d.Category = "Ñandutí, Eslabones"

	got := Categories([]models.Product{a, b, c, d})
	assert.Equal(t, []string{"Anillos", "Aretes", "Eslabones", "Ñandutí", "Oro"}, got)
}

func TestFilterSummary(t *testing.T) {
	stats := FilterSummary(3, 1, models.FilterState{SKU: "a", MaxPrice: bound(10)})
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Filtered)
	assert.Equal(t, "33.3", stats.PercentageShown)
	assert.Equal(t, 2, stats.ActiveFilterCount)

	empty := FilterSummary(0, 0, models.FilterState{})
	assert.Equal(t, "0", empty.PercentageShown)
	assert.Zero(t, empty.ActiveFilterCount)
}

func TestSearch(t *testing.T) {
	ring := product("AN-001", 100)
	ring.Name = "Anillo Compromiso"
	ring.Material = "Oro blanco"
	chain := product("CD-002", 80)
	chain.Name = "Cadena"
	chain.Category = "Colección Verano"

	products := []models.Product{ring, chain}

	assert.Equal(t, []string{"AN-001"}, skus(Search(products, "compromiso")))
	assert.Equal(t, []string{"CD-002"}, skus(Search(products, "coleccion")))
	assert.Equal(t, []string{"AN-001"}, skus(Search(products, "BLANCO")))
	require.Len(t, Search(products, ""), 2)
	assert.Empty(t, Search(products, "zzz"))
}

func TestSummarize(t *testing.T) {
	a := product("A", 100)
	a.Category = "Anillos"
	a.Material = "Oro"
	b := product("B", 50)
	b.Category = "Anillos"
	b.Material = "Plata"
	c := product("C", 0)

	stats := Summarize([]models.Product{a, b, c})
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 75.0, stats.AveragePrice)
	assert.Equal(t, 100.0, stats.MaxPrice)
	assert.Equal(t, 50.0, stats.MinPrice)
	assert.Equal(t, 1, stats.Categories)
	assert.Equal(t, 2, stats.Materials)

	assert.Equal(t, models.TableStats{}, Summarize(nil))
}
