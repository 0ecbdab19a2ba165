package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FilterState holds the current predicate values. The zero value filters nothing.
type FilterState struct {
	SKU      string           `json:"sku"`
	Name     string           `json:"name"`
	Category string           `json:"category"`
	Material string           `json:"material"`
	MaxPrice *decimal.Decimal `json:"max_price,omitempty"`
}

// Normalized trims every value and lowercases the case-insensitive ones.
func (f FilterState) Normalized() FilterState {
	return FilterState{
		SKU:      strings.ToLower(strings.TrimSpace(f.SKU)),
		Name:     strings.ToLower(strings.TrimSpace(f.Name)),
		Category: strings.TrimSpace(f.Category),
		Material: strings.ToLower(strings.TrimSpace(f.Material)),
		MaxPrice: f.MaxPrice,
	}
}

// ActiveCount is the number of predicates that can reject a product.
func (f FilterState) ActiveCount() int {
	n := f.Normalized()
	count := 0
	for _, v := range []string{n.SKU, n.Name, n.Category, n.Material} {
		if v != "" {
			count++
		}
	}
	if n.MaxPrice != nil {
		count++
	}
	return count
}

func (f FilterState) IsActive() bool {
	return f.ActiveCount() > 0
}

// FilterStats summarizes a filtered view against the loaded set.
type FilterStats struct {
	Total             int    `json:"total"`
	Filtered          int    `json:"filtered"`
	PercentageShown   string `json:"percentage_filtered"`
	ActiveFilterCount int    `json:"active_filters"`
}

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortState is the single active sort key.
type SortState struct {
	Field     Field     `json:"field"`
	Direction Direction `json:"direction"`
}

// Toggle flips the direction when the same field is selected again and starts a new
// field in ascending order. A nil receiver yields an ascending state.
func (s *SortState) Toggle(field Field) SortState {
	if s != nil && s.Field == field && s.Direction == Ascending {
		return SortState{Field: field, Direction: Descending}
	}
	return SortState{Field: field, Direction: Ascending}
}
