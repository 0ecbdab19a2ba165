package catalog

import (
	"github.com/shopspring/decimal"

	"felmel/internal/models"
)

// Summarize computes the table summary for a view. Only positive prices count toward the
// price figures; sentinel categories and materials are not counted as distinct values.
func Summarize(products []models.Product) models.TableStats {
	stats := models.TableStats{Total: len(products)}
	if len(products) == 0 {
		return stats
	}

	categories := make(map[string]struct{})
	materials := make(map[string]struct{})
	sum := decimal.Zero
	var maxPrice, minPrice decimal.Decimal
	priced := 0

	for _, p := range products {
		if p.Category != "" && p.Category != models.UncategorizedProduct {
			categories[p.Category] = struct{}{}
		}
		if p.Material != "" && p.Material != models.NoMaterial {
			materials[p.Material] = struct{}{}
		}

		if !p.Price.IsPositive() {
			continue
		}
		if priced == 0 || p.Price.GreaterThan(maxPrice) {
			maxPrice = p.Price
		}
		if priced == 0 || p.Price.LessThan(minPrice) {
			minPrice = p.Price
		}
		sum = sum.Add(p.Price)
		priced++
	}

	if priced > 0 {
		stats.AveragePrice = sum.Div(decimal.NewFromInt(int64(priced))).InexactFloat64()
		stats.MaxPrice = maxPrice.InexactFloat64()
		stats.MinPrice = minPrice.InexactFloat64()
	}
	stats.Categories = len(categories)
	stats.Materials = len(materials)
	return stats
}
