package models

import (
	"github.com/google/uuid"
)

// Order status values. Transitions are one-directional except
// cancellation, which is reachable from pending or paid only.
const (
	StatusPending    = "pending"
	StatusPaid       = "paid"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusRefunded   = "refunded"
)

type Order struct {
	BaseModel
	OrderNumber string     `gorm:"uniqueIndex" json:"order_number"`
	UserID      *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User        *User      `json:"user,omitempty"`

	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`

	ShippingStreet     string `json:"shipping_street"`
	ShippingCity       string `json:"shipping_city"`
	ShippingPostalCode string `json:"shipping_postal_code"`
	ShippingCountry    string `json:"shipping_country"`

	Items          []OrderItem `json:"items,omitempty"`
	Total          float64     `json:"total"`
	ShippingCost   float64     `json:"shipping_cost"`
	DiscountAmount float64     `json:"discount_amount"`
	CouponCode     string      `json:"coupon_code"`
	Status         string      `gorm:"index" json:"status"`
	Notes          string      `json:"notes"`
	Archived       bool        `json:"archived"`
}

// OrderItem is a snapshot of a product at purchase time. Name and unit
// price are frozen here, decoupled from later catalog changes.
type OrderItem struct {
	BaseModel
	OrderID     uuid.UUID  `gorm:"type:uuid;index" json:"order_id"`
	ProductID   *uuid.UUID `gorm:"type:uuid" json:"product_id"`
	ProductName string     `json:"product_name"`
	UnitPrice   float64    `json:"unit_price"`
	Quantity    int        `json:"quantity"`
}
