package woocommerce

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"felmel/internal/logger"
	"felmel/internal/models"
)

type TransformerOptions struct {
	DiscountPercent float64
	DisplayLayout   string
	Location        *time.Location
	Now             func() time.Time
}

// Transformer turns raw WooCommerce records into canonical products.
type Transformer struct {
	discountMultiplier decimal.Decimal
	displayLayout      string
	location           *time.Location
	now                func() time.Time
	logger             *logger.Logger
}

// NormalizeResult carries the products and how many records were excluded.
type NormalizeResult struct {
	Products []models.Product
	Dropped  int
	Errors   []*NormalizationError
}

func NewTransformer(opts TransformerOptions, logger *logger.Logger) *Transformer {
	if opts.DisplayLayout == "" {
		opts.DisplayLayout = "02/01/2006, 15:04"
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	multiplier := decimal.NewFromInt(100).
		Sub(decimal.NewFromFloat(opts.DiscountPercent)).
		Div(decimal.NewFromInt(100))

	return &Transformer{
		discountMultiplier: multiplier,
		displayLayout:      opts.DisplayLayout,
		location:           opts.Location,
		now:                opts.Now,
		logger:             logger,
	}
}

// Normalize converts a batch of raw records starting at position zero.
func (t *Transformer) Normalize(records []json.RawMessage) NormalizeResult {
	return t.NormalizeFrom(records, 0)
}

// NormalizeFrom converts records independently; offset is the position of the first
// record in the whole catalog and seeds fallback ids. A failing record is logged,
// counted and left out.
func (t *Transformer) NormalizeFrom(records []json.RawMessage, offset int) NormalizeResult {
	start := time.Now()
	result := NormalizeResult{Products: make([]models.Product, 0, len(records))}

	for i, raw := range records {
		product, err := t.transformRecord(raw, offset+i)
		if err != nil {
			t.logger.Error("Failed to normalize product %d: %v", offset+i, err)
			result.Errors = append(result.Errors, err)
			result.Dropped++
			continue
		}
		result.Products = append(result.Products, product)
	}

	t.logger.Info("Normalized %d products in %s (%d dropped)", len(result.Products), time.Since(start), result.Dropped)
	return result
}

func (t *Transformer) transformRecord(raw json.RawMessage, position int) (product models.Product, nerr *NormalizationError) {
	defer func() {
		if r := recover(); r != nil {
			nerr = &NormalizationError{Index: position, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	var record Product
	if err := json.Unmarshal(raw, &record); err != nil {
		return models.Product{}, &NormalizationError{Index: position, Err: err}
	}

	product = t.TransformProduct(&record, position)
	if err := product.Validate(); err != nil {
		return models.Product{}, &NormalizationError{Index: position, Err: err}
	}
	return product, nil
}

// TransformProduct maps one decoded record; position is used when the record has no id.
func (t *Transformer) TransformProduct(record *Product, position int) models.Product {
	id := strings.TrimSpace(record.ID.Value)
	if !record.ID.Valid || id == "" || id == "0" {
		id = strconv.Itoa(position)
	}

	sku := strings.TrimSpace(record.SKU)
	if sku == "" {
		sku = "PROD-" + id
	}

	name := strings.TrimSpace(record.Name)
	if name == "" {
		name = models.UnnamedProduct
	}

	rawPrice := record.Price.Value
	if strings.TrimSpace(rawPrice) == "" {
		rawPrice = record.RegularPrice.Value
	}
	price := ParsePrice(rawPrice)

	modifiedAt, ok := ParseTimestamp(record.DateModified, t.location)
	if !ok {
		modifiedAt, ok = ParseTimestamp(record.DateCreated, t.location)
	}
	if !ok {
		modifiedAt = t.now().In(t.location)
	}

	return models.Product{
		ID:                id,
		SKU:               sku,
		Name:              name,
		Category:          JoinCategories(record.Categories),
		Material:          ExtractMaterial(record.Attributes),
		Price:             price,
		DiscountedPrice:   price.Mul(t.discountMultiplier),
		ModifiedAt:        modifiedAt,
		ModifiedAtDisplay: modifiedAt.Format(t.displayLayout),
	}
}
