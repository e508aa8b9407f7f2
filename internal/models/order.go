package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const OrderStatusCompleted = "completed"

// Order is written once by checkout and never mutated afterwards,
// except for Status.
type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Reference     string          `gorm:"size:36;uniqueIndex;not null" json:"reference"`
	CustomerID    uint            `gorm:"index" json:"customer_id"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Tax           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"tax"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	PaymentMethod string          `gorm:"size:20;not null;default:cash" json:"payment_method"`
	Status        string          `gorm:"size:20;not null;default:completed" json:"status"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
	Lines         []OrderLine     `gorm:"foreignKey:OrderID" json:"lines,omitempty"`
}

// OrderLine freezes the product name and unit price at settlement time.
// ProductID is a loose reference: the product row may be deleted later
// without breaking order retrieval, so there is no association here.
type OrderLine struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     uint            `gorm:"index;not null" json:"order_id"`
	ProductID   uint            `gorm:"index;not null" json:"product_id"`
	ProductName string          `gorm:"not null" json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	CreatedAt   time.Time       `gorm:"index" json:"created_at"`
}
