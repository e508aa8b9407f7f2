package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Paphonsan-l/POS-CRUD/internal/checkout"
	"github.com/Paphonsan-l/POS-CRUD/internal/db"
	"github.com/Paphonsan-l/POS-CRUD/internal/handlers"
	"github.com/Paphonsan-l/POS-CRUD/internal/models"
	"github.com/Paphonsan-l/POS-CRUD/internal/stock"
)

func setupTransactionTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}

	err = testDB.AutoMigrate(&models.Category{}, &models.Product{}, &models.Customer{}, &models.Order{}, &models.OrderLine{})
	if err != nil {
		t.Fatalf("failed to auto-migrate models: %v", err)
	}

	originalDB := db.DB
	db.SetTestDB(testDB)

	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		api.GET("/transactions", handlers.ListTransactions)
		api.GET("/transactions/:id", handlers.GetTransaction)
		api.GET("/stats", handlers.GetSalesStats)
	}

	t.Cleanup(func() {
		db.SetTestDB(originalDB)
	})

	return r, testDB
}

func settleTestOrder(t *testing.T, testDB *gorm.DB, product models.Product, quantity int) *checkout.Receipt {
	t.Helper()

	taxRate, _ := decimal.NewFromString("0.08")
	engine := checkout.NewEngine(testDB, taxRate, 5*time.Second)

	receipt, err := engine.Checkout(context.Background(), 1,
		[]stock.CartLine{{ProductID: product.ID, Quantity: quantity}}, "cash")
	if err != nil {
		t.Fatalf("failed to settle test order: %v", err)
	}
	return receipt
}

func TestTransactionHandlers(t *testing.T) {

	router, testDB := setupTransactionTestRouter(t)

	widget := seedCheckoutProduct(t, testDB, "Widget", "10.00", 20, true)

	first := settleTestOrder(t, testDB, widget, 2)
	second := settleTestOrder(t, testDB, widget, 1)

	t.Run("Lists transactions newest first", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/transactions", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)

		var response struct {
			Data []models.Order `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Len(t, response.Data, 2)
	})

	t.Run("Honors limit and offset", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/transactions?limit=1&offset=1", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)

		var response struct {
			Data []models.Order `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Len(t, response.Data, 1)
	})

	t.Run("Returns one transaction with its lines", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/transactions/%d", first.OrderID), nil))

		assert.Equal(t, http.StatusOK, recorder.Code)

		var response struct {
			Data models.Order `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, first.OrderID, response.Data.ID)
		assert.Len(t, response.Data.Lines, 1)
		assert.Equal(t, "Widget", response.Data.Lines[0].ProductName)
		assert.Equal(t, 2, response.Data.Lines[0].Quantity)
	})

	t.Run("Retrieval survives product deletion", func(t *testing.T) {
		assert.NoError(t, testDB.Delete(&models.Product{}, widget.ID).Error)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/transactions/%d", second.OrderID), nil))

		assert.Equal(t, http.StatusOK, recorder.Code)

		var response struct {
			Data models.Order `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, "Widget", response.Data.Lines[0].ProductName, "snapshot keeps resolving")
	})

	t.Run("Returns 404 for unknown transaction", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/transactions/99999", nil))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("Returns sales stats", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)

		var response struct {
			Data struct {
				Today struct {
					TransactionCount int64           `json:"transaction_count"`
					TotalRevenue     decimal.Decimal `json:"total_revenue"`
				} `json:"today"`
				TopProducts []struct {
					ProductID uint  `json:"product_id"`
					TotalSold int64 `json:"total_sold"`
				} `json:"top_products"`
			} `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, int64(2), response.Data.Today.TransactionCount)
		assert.Equal(t, "32.40", response.Data.Today.TotalRevenue.StringFixed(2))
		assert.Len(t, response.Data.TopProducts, 1)
		assert.Equal(t, widget.ID, response.Data.TopProducts[0].ProductID)
		assert.Equal(t, int64(3), response.Data.TopProducts[0].TotalSold)
	})
}
