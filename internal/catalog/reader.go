package catalog

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Paphonsan-l/POS-CRUD/internal/models"
)

// ProductInfo is the read-only view of a product the sales path needs.
// Checkout never mutates catalog metadata through this package.
type ProductInfo struct {
	ID             uint
	Name           string
	UnitPrice      decimal.Decimal
	QuantityOnHand int
	IsActive       bool
}

type Reader struct {
	db *gorm.DB
}

func NewReader(db *gorm.DB) *Reader {
	return &Reader{db: db}
}

// Get returns the current catalog state of one product.
// A missing product surfaces as gorm.ErrRecordNotFound.
func (r *Reader) Get(ctx context.Context, productID uint) (*ProductInfo, error) {
	var product models.Product

	err := r.db.WithContext(ctx).
		Select("id", "name", "price", "quantity_on_hand", "is_active").
		First(&product, productID).Error
	if err != nil {
		return nil, err
	}

	return &ProductInfo{
		ID:             product.ID,
		Name:           product.Name,
		UnitPrice:      product.Price,
		QuantityOnHand: product.QuantityOnHand,
		IsActive:       product.IsActive,
	}, nil
}
