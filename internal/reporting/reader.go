package reporting

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Paphonsan-l/POS-CRUD/internal/models"
)

const topProductsLimit = 5

// Reader aggregates committed orders. It never touches the write path and
// tolerates slightly stale reads; it only ever sees fully committed orders
// because settlement makes nothing visible before commit.
type Reader struct {
	db *gorm.DB
}

func NewReader(db *gorm.DB) *Reader {
	return &Reader{db: db}
}

type TodaySales struct {
	TransactionCount   int64           `json:"transaction_count"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	AverageTransaction decimal.Decimal `json:"average_transaction"`
}

type TopProduct struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	TotalSold   int64           `json:"total_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

type SalesStats struct {
	Today       TodaySales   `json:"today"`
	TopProducts []TopProduct `json:"top_products"`
}

// Stats returns today's totals plus the best sellers over a trailing window
// of windowDays days (defaults to 7).
func (r *Reader) Stats(ctx context.Context, windowDays int) (*SalesStats, error) {
	if windowDays <= 0 {
		windowDays = 7
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var today TodaySales
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("COUNT(*) AS transaction_count, COALESCE(SUM(total), 0) AS total_revenue, COALESCE(AVG(total), 0) AS average_transaction").
		Where("created_at >= ? AND status = ?", startOfDay, models.OrderStatusCompleted).
		Scan(&today).Error
	if err != nil {
		return nil, err
	}
	today.AverageTransaction = today.AverageTransaction.Round(2)

	since := now.AddDate(0, 0, -windowDays)

	// Grouped on the line snapshots, not the products table, so a product
	// deleted from the catalog still shows up in historical rankings.
	var topProducts []TopProduct
	err = r.db.WithContext(ctx).
		Model(&models.OrderLine{}).
		Select("product_id, MAX(product_name) AS product_name, SUM(quantity) AS total_sold, COALESCE(SUM(subtotal), 0) AS revenue").
		Where("created_at >= ?", since).
		Group("product_id").
		Order("total_sold DESC").
		Limit(topProductsLimit).
		Scan(&topProducts).Error
	if err != nil {
		return nil, err
	}

	return &SalesStats{Today: today, TopProducts: topProducts}, nil
}
