package models

import "time"

// Coupon discount types.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Coupon codes are stored upper-case and matched case-insensitively.
type Coupon struct {
	BaseModel
	Code         string     `gorm:"uniqueIndex" json:"code"`
	DiscountType string     `json:"discount_type"`
	Value        float64    `json:"value"`
	MinPurchase  *float64   `json:"min_purchase"`
	MaxDiscount  *float64   `json:"max_discount"`
	ValidFrom    *time.Time `json:"valid_from"`
	ValidUntil   *time.Time `json:"valid_until"`
	UsageLimit   *int       `json:"usage_limit"`
	UsedCount    int        `json:"used_count"`
	Active       bool       `gorm:"default:true" json:"active"`
}

type ShippingMethod struct {
	BaseModel
	Name          string  `json:"name"`
	Cost          float64 `json:"cost"`
	EstimatedDays string  `json:"estimated_days"`
	Active        bool    `gorm:"default:true" json:"active"`
}
