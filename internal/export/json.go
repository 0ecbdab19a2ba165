package export

import (
	"encoding/json"
	"fmt"
	"time"

	"felmel/internal/catalog"
	"felmel/internal/models"
)

const jsonMIMEType = "application/json"

type jsonMetadata struct {
	ExportedAt     time.Time `json:"exported_at"`
	TotalProducts  int       `json:"total_products"`
	FiltersApplied bool      `json:"filters_applied"`
	Format         string    `json:"format"`
	Version        string    `json:"version"`
}

type jsonProduct struct {
	SKU                string  `json:"sku"`
	Name               string  `json:"name"`
	Category           string  `json:"category"`
	Material           string  `json:"material"`
	Price              float64 `json:"price"`
	DiscountedPrice    float64 `json:"discounted_price"`
	DiscountPercentage float64 `json:"discount_percentage"`
	LastModified       string  `json:"last_modified"`
	ID                 string  `json:"id"`
}

type jsonDocument struct {
	Metadata jsonMetadata  `json:"metadata"`
	Products []jsonProduct `json:"products"`
}

// ToJSON wraps the products with export metadata.
func (p *Pipeline) ToJSON(products []models.Product, filtersApplied bool) (*Document, error) {
	if len(products) == 0 {
		return nil, &NoDataError{Format: FormatJSON}
	}

	doc := jsonDocument{
		Metadata: jsonMetadata{
			ExportedAt:     p.opts.Now().UTC(),
			TotalProducts:  len(products),
			FiltersApplied: filtersApplied,
			Format:         string(FormatJSON),
			Version:        p.opts.Version,
		},
		Products: make([]jsonProduct, len(products)),
	}
	for i, product := range products {
		doc.Products[i] = jsonProduct{
			SKU:                product.SKU,
			Name:               product.Name,
			Category:           product.Category,
			Material:           product.Material,
			Price:              product.Price.InexactFloat64(),
			DiscountedPrice:    product.DiscountedPrice.InexactFloat64(),
			DiscountPercentage: p.opts.DiscountPercent,
			LastModified:       product.ModifiedAtDisplay,
			ID:                 product.ID,
		}
	}

	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode json export: %w", err)
	}

	return &Document{
		Name:     p.documentName(p.opts.Filename, "json"),
		MIMEType: jsonMIMEType,
		Content:  content,
	}, nil
}

type statsSummary struct {
	ExportedAt         time.Time `json:"fecha_exportacion"`
	TotalLoaded        int       `json:"total_productos_sistema"`
	Shown              int       `json:"productos_mostrados"`
	PercentageFiltered string    `json:"porcentaje_filtrado"`
	ActiveFilters      int       `json:"filtros_activos"`
}

type statsPrices struct {
	Average string `json:"promedio"`
	Max     string `json:"maximo"`
	Min     string `json:"minimo"`
}

type statsCategories struct {
	UniqueCategories int `json:"total_unicas"`
	UniqueMaterials  int `json:"materiales_unicos"`
}

type statsSettings struct {
	Discount string `json:"descuento_aplicado"`
	FastLoad bool   `json:"carga_rapida"`
	Version  string `json:"version_app"`
}

type statsDocument struct {
	Summary    statsSummary    `json:"resumen"`
	Prices     statsPrices     `json:"precios"`
	Categories statsCategories `json:"categorias"`
	Settings   statsSettings   `json:"configuracion"`
}

// ToStats summarizes the view against the loaded set. An empty view is allowed as long as
// something was loaded.
func (p *Pipeline) ToStats(products []models.Product, totalLoaded int, filterStats models.FilterStats, fastLoad bool) (*Document, error) {
	if totalLoaded == 0 {
		return nil, &NoDataError{Format: FormatStats}
	}

	table := catalog.Summarize(products)
	doc := statsDocument{
		Summary: statsSummary{
			ExportedAt:         p.opts.Now().UTC(),
			TotalLoaded:        totalLoaded,
			Shown:              table.Total,
			PercentageFiltered: filterStats.PercentageShown + "%",
			ActiveFilters:      filterStats.ActiveFilterCount,
		},
		Prices: statsPrices{
			Average: p.formatPrice(table.AveragePrice),
			Max:     p.formatPrice(table.MaxPrice),
			Min:     p.formatPrice(table.MinPrice),
		},
		Categories: statsCategories{
			UniqueCategories: table.Categories,
			UniqueMaterials:  table.Materials,
		},
		Settings: statsSettings{
			Discount: fmt.Sprintf("%g%%", p.opts.DiscountPercent),
			FastLoad: fastLoad,
			Version:  p.opts.Version,
		},
	}

	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode statistics export: %w", err)
	}

	return &Document{
		Name:     fmt.Sprintf("%s_%s.json", p.opts.StatsFilename, p.opts.Now().Format("2006-01-02")),
		MIMEType: jsonMIMEType,
		Content:  content,
	}, nil
}
