// Package catalog holds the loaded product set and derives filtered and sorted views of it.
package catalog

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"felmel/internal/models"
)

// Apply returns the products that satisfy every active predicate, in input order.
// The input slice is never modified.
func Apply(products []models.Product, state models.FilterState) []models.Product {
	f := state.Normalized()
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matches(p, f) {
			out = append(out, p)
		}
	}
	return out
}

// matches expects an already normalized state.
func matches(p models.Product, f models.FilterState) bool {
	if f.SKU != "" && !strings.Contains(strings.ToLower(p.SKU), f.SKU) {
		return false
	}
	if f.Name != "" && !strings.Contains(strings.ToLower(p.Name), f.Name) {
		return false
	}
	if f.Category != "" && !strings.Contains(p.Category, f.Category) {
		return false
	}
	if f.Material != "" && !strings.Contains(strings.ToLower(p.Material), f.Material) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}

// Categories lists the distinct category names found in the products, split out of the
// joined field and ordered with Spanish collation. The uncategorized sentinel is skipped.
func Categories(products []models.Product) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range products {
		for _, name := range strings.Split(p.Category, ",") {
			name = strings.TrimSpace(name)
			if name == "" || name == models.UncategorizedProduct {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}

	collate.New(language.Spanish).SortStrings(out)
	return out
}

// FilterSummary compares a filtered view against the full set.
func FilterSummary(total, filtered int, state models.FilterState) models.FilterStats {
	percentage := "0"
	if total > 0 {
		percentage = fmt.Sprintf("%.1f", float64(filtered)/float64(total)*100)
	}
	return models.FilterStats{
		Total:             total,
		Filtered:          filtered,
		PercentageShown:   percentage,
		ActiveFilterCount: state.ActiveCount(),
	}
}

// Search does a fuzzy, accent and case insensitive match of term against the text columns.
// An empty term returns every product.
func Search(products []models.Product, term string) []models.Product {
	term = strings.TrimSpace(term)
	if term == "" {
		return append([]models.Product(nil), products...)
	}

	out := make([]models.Product, 0)
	for _, p := range products {
		for _, candidate := range []string{p.SKU, p.Name, p.Category, p.Material} {
			if fuzzy.MatchNormalizedFold(term, candidate) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
