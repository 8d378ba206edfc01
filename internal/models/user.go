package models

// User represents a registered customer.
type User struct {
	BaseModel
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	Email        string         `gorm:"uniqueIndex" json:"email"`
	Phone        string         `json:"phone"`
	PasswordHash string         `json:"-"`
	Addresses    []SavedAddress `json:"addresses,omitempty"`
	Orders       []Order        `json:"orders,omitempty"`
}
