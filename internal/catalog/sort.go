package catalog

import (
	"fmt"
	"sort"
	"strings"

	"felmel/internal/models"
)

// Sort returns a stably ordered copy of products. Descending is the exact reversal of the
// ascending comparator, so missing values come last ascending and first descending.
func Sort(products []models.Product, field models.Field, direction models.Direction) []models.Product {
	out := append([]models.Product(nil), products...)

	sign := 1
	if direction == models.Descending {
		sign = -1
	}

	sort.SliceStable(out, func(i, j int) bool {
		return sign*compareValues(out[i].Field(field), out[j].Field(field)) < 0
	})
	return out
}

// compareValues orders two tagged values ascending: numbers numerically, dates
// chronologically, everything else as case-insensitive text. Null is greater than any value.
func compareValues(a, b models.Value) int {
	switch {
	case a.IsNull() && b.IsNull():
		return 0
	case a.IsNull():
		return 1
	case b.IsNull():
		return -1
	}

	if a.Kind == b.Kind {
		switch a.Kind {
		case models.KindNumber:
			return compareFloat(a.Number, b.Number)
		case models.KindDate:
			return a.Date.Compare(b.Date)
		}
	}

	return strings.Compare(strings.ToLower(valueText(a)), strings.ToLower(valueText(b)))
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func valueText(v models.Value) string {
	switch v.Kind {
	case models.KindNumber:
		return fmt.Sprint(v.Number)
	case models.KindDate:
		return v.Date.String()
	}
	return v.Text
}
