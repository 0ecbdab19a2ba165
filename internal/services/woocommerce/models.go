package woocommerce

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Product is a WooCommerce REST v3 product as far as the catalog needs it.
type Product struct {
	ID           FlexString  `json:"id"`
	Name         string      `json:"name"`
	SKU          string      `json:"sku"`
	Price        FlexString  `json:"price"`
	RegularPrice FlexString  `json:"regular_price"`
	Categories   []Category  `json:"categories"`
	Attributes   []Attribute `json:"attributes"`
	DateCreated  string      `json:"date_created"`
	DateModified string      `json:"date_modified"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Attribute struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// FlexString accepts a JSON string, number or null. Stores disagree on whether ids and
// prices are quoted.
type FlexString struct {
	Value string
	Valid bool
}

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = FlexString{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString{Value: s, Valid: s != ""}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(data))
	}
	*f = FlexString{Value: n.String(), Valid: true}
	return nil
}

func (f FlexString) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
