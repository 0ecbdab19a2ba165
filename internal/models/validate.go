package models

import (
	"errors"
	"strings"
)

// Validate checks the invariants every canonical product must hold.
func (p Product) Validate() error {
	switch {
	case strings.TrimSpace(p.SKU) == "":
		return errors.New("sku is empty")
	case strings.TrimSpace(p.Name) == "":
		return errors.New("name is empty")
	case strings.TrimSpace(p.Category) == "":
		return errors.New("category is empty")
	case strings.TrimSpace(p.Material) == "":
		return errors.New("material is empty")
	case p.Price.IsNegative():
		return errors.New("price is negative")
	}
	return nil
}
