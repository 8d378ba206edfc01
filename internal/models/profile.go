package models

import (
	"github.com/google/uuid"
)

type SavedAddress struct {
	BaseModel
	UserID     uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Label      string    `json:"label"`
	Recipient  string    `json:"recipient"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	PostalCode string    `json:"postal_code"`
	Country    string    `json:"country"`
	Phone      string    `json:"phone"`
	IsDefault  bool      `json:"is_default"`
}

// Cart mirrors the client-local cart for an authenticated user.
// Last write wins; no merge logic.
type Cart struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	Items  []byte    `gorm:"type:jsonb" json:"items"`
}

type WishlistItem struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_wishlist_user_product" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_wishlist_user_product" json:"product_id"`
	Product   *Product  `json:"product,omitempty"`
}

type EmailPreference struct {
	BaseModel
	UserID       uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	OrderUpdates bool      `gorm:"default:true" json:"order_updates"`
	Promotions   bool      `json:"promotions"`
	Newsletter   bool      `json:"newsletter"`
}
