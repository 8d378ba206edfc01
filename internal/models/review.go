package models

import "github.com/google/uuid"

// Review holds one rating per (product, user) pair; repeated submissions
// overwrite rating and comment via upsert.
type Review struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_reviews_product_user" json:"product_id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_reviews_product_user" json:"user_id"`
	User      *User     `json:"user,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
}
