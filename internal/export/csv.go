package export

import (
	"strings"

	"felmel/internal/models"
)

const (
	utf8BOM     = "\uFEFF"
	csvMIMEType = "text/csv;charset=utf-8"
)

// ToCSV writes a BOM-prefixed document with the configured header labels and one fully
// quoted row per product.
func (p *Pipeline) ToCSV(products []models.Product) (*Document, error) {
	if len(products) == 0 {
		return nil, &NoDataError{Format: FormatCSV}
	}

	delim := p.opts.Delimiter
	rows := make([]string, 0, len(products)+1)

	headers := make([]string, len(p.opts.Headers))
	for i, h := range p.opts.Headers {
		headers[i] = p.headerLabel(h)
	}
	rows = append(rows, strings.Join(headers, delim))

	for _, product := range products {
		rows = append(rows, strings.Join([]string{
			quote(product.SKU),
			quote(product.Name),
			quote(product.Category),
			quote(product.Material),
			quote("$" + p.formatPrice(product.Price.InexactFloat64())),
			quote("$" + p.formatPrice(product.DiscountedPrice.InexactFloat64())),
			quote(product.ModifiedAtDisplay),
		}, delim))
	}

	p.logger.Debug("CSV generated: %d rows", len(rows))

	return &Document{
		Name:     p.documentName(p.opts.Filename, "csv"),
		MIMEType: csvMIMEType,
		Content:  []byte(utf8BOM + strings.Join(rows, "\n")),
	}, nil
}

// headerLabel leaves labels bare unless they would break the row.
func (p *Pipeline) headerLabel(label string) string {
	if strings.Contains(label, p.opts.Delimiter) || strings.ContainsAny(label, "\"\n\r") {
		return quote(label)
	}
	return label
}

func quote(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
