package domain

import "time"

// Business is the slug-keyed record owning the mutable credit balance.
type Business struct {
	Slug           string    `gorm:"primaryKey" json:"slug"`
	Name           string    `gorm:"not null" json:"name"`
	Category       string    `json:"category"`
	City           string    `json:"city"`
	Contact        string    `json:"contact"`
	PlaceID        string    `gorm:"column:place_id" json:"place_id,omitempty"`
	CreditBalance  int64     `gorm:"not null;default:0" json:"credit_balance"`
	PricePerCredit int64     `gorm:"not null;default:0" json:"price_per_credit"`
	Active         bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Business) TableName() string { return "businesses" }
