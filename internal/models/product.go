package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Name           string          `gorm:"not null;index" json:"name"`
	Description    string          `json:"description"`
	SKU            string          `gorm:"index" json:"sku"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	QuantityOnHand int             `gorm:"not null;default:0" json:"quantity"`
	CategoryID     *uint           `gorm:"index" json:"category_id"`
	Category       *Category       `json:"category,omitempty"`
	ImageURL       string          `json:"image_url"`
	IsActive       bool            `gorm:"not null" json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
