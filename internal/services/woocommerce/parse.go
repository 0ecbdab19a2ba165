package woocommerce

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"felmel/internal/models"
)

var (
	priceNoise  = regexp.MustCompile(`[^\d.\-]`)
	priceNumber = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)
)

// materialKeywords are matched against accent-folded, lowercased attribute names.
var materialKeywords = []string{"material", "composicion", "composition", "metal", "tipo", "type"}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParsePrice strips everything but digits, dots and minus signs and reads the leading
// number. Anything unreadable or negative is zero.
func ParsePrice(raw string) decimal.Decimal {
	cleaned := priceNoise.ReplaceAllString(raw, "")
	match := priceNumber.FindString(cleaned)
	if match == "" {
		return decimal.Zero
	}
	match = strings.TrimSuffix(match, ".")

	price, err := decimal.NewFromString(match)
	if err != nil || price.IsNegative() {
		return decimal.Zero
	}
	return price
}

// JoinCategories joins category names with ", ", skipping blank names.
func JoinCategories(categories []Category) string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		if name := strings.TrimSpace(c.Name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return models.UncategorizedProduct
	}
	return strings.Join(names, ", ")
}

// ExtractMaterial returns the options of the first attribute whose name mentions a
// material keyword. The search stops at that attribute even when it has no options.
func ExtractMaterial(attributes []Attribute) string {
	for _, attr := range attributes {
		if !isMaterialAttribute(attr.Name) {
			continue
		}
		if len(attr.Options) == 0 {
			return models.NoMaterial
		}
		return strings.Join(attr.Options, ", ")
	}
	return models.NoMaterial
}

func isMaterialAttribute(name string) bool {
	folded := FoldText(name)
	for _, keyword := range materialKeywords {
		if strings.Contains(folded, keyword) {
			return true
		}
	}
	return false
}

// FoldText lowercases s and removes combining marks, so "Composición" reads "composicion".
func FoldText(s string) string {
	decomposed := norm.NFD.String(strings.ToLower(s))

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParseTimestamp reads the store's timestamp formats. Values without a zone are read in loc.
func ParseTimestamp(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
