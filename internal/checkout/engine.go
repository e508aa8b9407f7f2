package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Paphonsan-l/POS-CRUD/internal/catalog"
	"github.com/Paphonsan-l/POS-CRUD/internal/models"
	"github.com/Paphonsan-l/POS-CRUD/internal/pricing"
	"github.com/Paphonsan-l/POS-CRUD/internal/stock"
)

// Receipt is returned to the caller after a successful settlement.
type Receipt struct {
	OrderID    uint            `json:"order_id"`
	Reference  string          `json:"reference"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
	ItemsCount int             `json:"items_count"`
}

// Engine settles a cart into an immutable order. The whole write sequence
// runs in one database transaction: stock re-validation, order header, line
// snapshots and stock decrements commit together or not at all.
type Engine struct {
	db      *gorm.DB
	guard   *stock.Guard
	taxRate decimal.Decimal
	timeout time.Duration
}

func NewEngine(db *gorm.DB, taxRate decimal.Decimal, timeout time.Duration) *Engine {
	return &Engine{
		db:      db,
		guard:   stock.NewGuard(catalog.NewReader(db)),
		taxRate: taxRate,
		timeout: timeout,
	}
}

// Checkout converts cart into a committed order and decrements stock.
//
// The guard pre-check fails fast without opening a transaction, but it can
// race with concurrent checkouts. Inside the transaction every product row
// is re-read in ascending id order (locked FOR UPDATE on postgres) and the
// decrement itself is guarded by quantity_on_hand >= requested, so two
// concurrent checkouts can never drive stock below zero on any dialect.
//
// Prices and names are snapshotted from the in-transaction read; later
// catalog edits never alter a settled order.
func (e *Engine) Checkout(ctx context.Context, customerID uint, cart []stock.CartLine, paymentMethod string) (*Receipt, error) {
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}
	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	demand, productIDs, err := stock.AggregateDemand(cart)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	// Advisory fast-fail before taking a connection for the write.
	if err := e.guard.Validate(ctx, cart); err != nil {
		if isValidationError(err) {
			return nil, err
		}
		return nil, &CheckoutFailedError{Err: err}
	}

	var receipt *Receipt

	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products, err := lockProducts(tx, productIDs, demand)
		if err != nil {
			return err
		}

		lines := make([]pricing.Line, 0, len(cart))
		for _, cartLine := range cart {
			lines = append(lines, pricing.Line{
				UnitPrice: products[cartLine.ProductID].Price,
				Quantity:  cartLine.Quantity,
			})
		}
		totals := pricing.Price(lines, e.taxRate)

		order := models.Order{
			Reference:     uuid.NewString(),
			CustomerID:    customerID,
			Subtotal:      totals.Subtotal,
			Tax:           totals.Tax,
			Total:         totals.Total,
			PaymentMethod: paymentMethod,
			Status:        models.OrderStatusCompleted,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		orderLines := make([]models.OrderLine, 0, len(cart))
		for _, cartLine := range cart {
			product := products[cartLine.ProductID]
			orderLines = append(orderLines, models.OrderLine{
				OrderID:     order.ID,
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    cartLine.Quantity,
				UnitPrice:   product.Price,
				Subtotal:    pricing.LineSubtotal(product.Price, cartLine.Quantity),
			})
		}
		if err := tx.CreateInBatches(&orderLines, len(orderLines)).Error; err != nil {
			return err
		}

		for _, id := range productIDs {
			if err := decrementStock(tx, products[id], demand[id]); err != nil {
				return err
			}
		}

		receipt = &Receipt{
			OrderID:    order.ID,
			Reference:  order.Reference,
			Subtotal:   totals.Subtotal,
			Tax:        totals.Tax,
			Total:      totals.Total,
			ItemsCount: len(cart),
		}
		return nil
	})

	if err != nil {
		if isValidationError(err) {
			return nil, err
		}
		return nil, &CheckoutFailedError{Err: err}
	}

	return receipt, nil
}

// lockProducts re-reads every product inside the transaction and re-runs the
// availability check against the aggregated demand. Ids arrive in ascending
// order so two multi-item carts cannot deadlock on each other's rows.
func lockProducts(tx *gorm.DB, productIDs []uint, demand map[uint]int) (map[uint]*models.Product, error) {
	products := make(map[uint]*models.Product, len(productIDs))

	for _, id := range productIDs {
		query := tx
		// sqlite has no FOR UPDATE; its single-writer lock plus the guarded
		// decrement keeps the invariant there.
		if tx.Dialector.Name() == "postgres" {
			query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var product models.Product
		if err := query.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &stock.ProductNotFoundError{ProductID: id}
			}
			return nil, err
		}

		if !product.IsActive {
			return nil, &stock.ProductInactiveError{ProductID: id, Name: product.Name}
		}

		if product.QuantityOnHand < demand[id] {
			return nil, &stock.InsufficientStockError{
				ProductID: id,
				Name:      product.Name,
				Available: product.QuantityOnHand,
				Requested: demand[id],
			}
		}

		products[id] = &product
	}

	return products, nil
}

// decrementStock applies the guarded decrement. The quantity_on_hand >= ?
// predicate is the authoritative no-oversell gate: if another transaction
// got there first, zero rows match and the whole checkout rolls back.
func decrementStock(tx *gorm.DB, product *models.Product, quantity int) error {
	result := tx.Model(&models.Product{}).
		Where("id = ? AND quantity_on_hand >= ?", product.ID, quantity).
		UpdateColumn("quantity_on_hand", gorm.Expr("quantity_on_hand - ?", quantity))

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected != 1 {
		return &stock.InsufficientStockError{
			ProductID: product.ID,
			Name:      product.Name,
			Available: product.QuantityOnHand,
			Requested: quantity,
		}
	}

	return nil
}
