package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	UnnamedProduct       = "Sin nombre"
	UncategorizedProduct = "Sin categoría"
	NoMaterial           = "N/A"
)

// Product is the canonical catalog entry every downstream component works on.
type Product struct {
	ID                string          `json:"id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Material          string          `json:"material"`
	Price             decimal.Decimal `json:"price"`
	DiscountedPrice   decimal.Decimal `json:"discounted_price"`
	ModifiedAt        time.Time       `json:"modified_at"`
	ModifiedAtDisplay string          `json:"modified_at_display"`
}

// Field names a sortable Product column.
type Field string

const (
	FieldSKU             Field = "sku"
	FieldName            Field = "name"
	FieldCategory        Field = "category"
	FieldMaterial        Field = "material"
	FieldPrice           Field = "price"
	FieldDiscountedPrice Field = "discountedPrice"
	FieldModifiedAt      Field = "modifiedAt"
)

// ParseField accepts the canonical names plus the snake_case spellings used on the wire.
func ParseField(s string) (Field, bool) {
	switch s {
	case "sku":
		return FieldSKU, true
	case "name":
		return FieldName, true
	case "category":
		return FieldCategory, true
	case "material":
		return FieldMaterial, true
	case "price":
		return FieldPrice, true
	case "discountedPrice", "discounted_price":
		return FieldDiscountedPrice, true
	case "modifiedAt", "modified_at":
		return FieldModifiedAt, true
	}
	return "", false
}

// Field returns the tagged value of the named column; unknown or empty values are Null.
func (p Product) Field(f Field) Value {
	switch f {
	case FieldSKU:
		return TextValue(p.SKU)
	case FieldName:
		return TextValue(p.Name)
	case FieldCategory:
		return TextValue(p.Category)
	case FieldMaterial:
		return TextValue(p.Material)
	case FieldPrice:
		return NumberValue(p.Price.InexactFloat64())
	case FieldDiscountedPrice:
		return NumberValue(p.DiscountedPrice.InexactFloat64())
	case FieldModifiedAt:
		return DateValue(p.ModifiedAt)
	}
	return NullValue()
}
