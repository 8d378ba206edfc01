package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Category struct {
	BaseModel
	Name     string    `json:"name"`
	Slug     string    `gorm:"uniqueIndex" json:"slug"`
	Products []Product `json:"products,omitempty"`
}

type Product struct {
	BaseModel
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Price         float64        `json:"price"`
	Image         string         `json:"image"`
	GalleryImages pq.StringArray `gorm:"type:text[]" json:"gallery_images"`
	CategoryID    *uuid.UUID     `gorm:"type:uuid" json:"category_id"`
	Category      *Category      `json:"category,omitempty"`
	Active        bool           `gorm:"default:true" json:"active"`
	Featured      bool           `json:"featured"`
	// StockQuantity is nil for products whose inventory is not tracked.
	StockQuantity *int `json:"stock_quantity"`
}
