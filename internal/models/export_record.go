package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExportRecord remembers one produced export document.
type ExportRecord struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	Format         string    `json:"format" gorm:"not null"`
	Filename       string    `json:"filename" gorm:"not null"`
	ProductCount   int       `json:"product_count"`
	FiltersApplied bool      `json:"filters_applied"`
	Source         string    `json:"source"`
	CreatedAt      time.Time `json:"created_at"`
}

func (r *ExportRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
