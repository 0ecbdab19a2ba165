package models

type LoadMode string

const (
	LoadModeFast LoadMode = "fast"
	LoadModeFull LoadMode = "full"
	LoadModeMore LoadMode = "more"
)

func ParseLoadMode(s string) (LoadMode, bool) {
	switch LoadMode(s) {
	case LoadModeFast, LoadModeFull:
		return LoadMode(s), true
	case "":
		return LoadModeFast, true
	}
	return "", false
}

// LoadResult is what a load operation reports to the presentation layer.
type LoadResult struct {
	Success  bool      `json:"success"`
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Mode     LoadMode  `json:"mode"`
	Pages    int       `json:"pages"`
	PageSize int       `json:"page_size"`
	Dropped  int       `json:"dropped"`
}

// TableStats mirrors the summary line shown under the product table.
type TableStats struct {
	Total        int     `json:"total"`
	AveragePrice float64 `json:"average_price"`
	MaxPrice     float64 `json:"max_price"`
	MinPrice     float64 `json:"min_price"`
	Categories   int     `json:"categories"`
	Materials    int     `json:"materials"`
}
