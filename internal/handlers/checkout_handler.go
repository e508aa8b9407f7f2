package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	config "github.com/Paphonsan-l/POS-CRUD/configs"
	"github.com/Paphonsan-l/POS-CRUD/internal/checkout"
	"github.com/Paphonsan-l/POS-CRUD/internal/db"
	"github.com/Paphonsan-l/POS-CRUD/internal/metrics"
	"github.com/Paphonsan-l/POS-CRUD/internal/models"
	"github.com/Paphonsan-l/POS-CRUD/internal/notifier"
	"github.com/Paphonsan-l/POS-CRUD/internal/stock"
)

type CheckoutItem struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gte=1"`
}

type CheckoutRequest struct {
	Items         []CheckoutItem `json:"items" binding:"required,dive"`
	PaymentMethod string         `json:"payment_method"`
}

// Checkout settles a cart into an order. The malformed-input checks live
// here at the boundary; everything past binding is a typed cart.
func Checkout(c *gin.Context) {

	sess := sessions.Default(c)
	custID, ok := sess.Get("customer_id").(uint)

	if !ok || custID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req CheckoutRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		return
	}

	var customer models.Customer
	if err := db.DB.First(&customer, custID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer not found"})
		return
	}

	cart := make([]stock.CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		cart = append(cart, stock.CartLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	cfg := config.LoadCheckoutConfig()
	engine := checkout.NewEngine(db.DB, cfg.TaxRate, cfg.Timeout)

	receipt, err := engine.Checkout(c.Request.Context(), customer.ID, cart, req.PaymentMethod)
	if err != nil {
		status, outcome := checkoutErrorStatus(err)
		metrics.ObserveCheckout(outcome)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	metrics.ObserveCheckout(metrics.OutcomeCompleted)

	go func(customer models.Customer, receipt checkout.Receipt) {

		if err := notifier.SendReceiptSMS(customer.Phone, receipt.Reference, receipt.Total); err != nil {
			log.Printf("Failed to send receipt SMS for order %d to %s: %v", receipt.OrderID, customer.Phone, err)
		}
	}(customer, *receipt)

	go func(customer models.Customer, receipt checkout.Receipt) {

		if err := notifier.SendReceiptEmail(customer.Email, customer.Name, receipt.Reference, receipt.Total); err != nil {
			log.Printf("Failed to send receipt email for order %d to %s: %v", receipt.OrderID, customer.Email, err)
		}
	}(customer, *receipt)

	c.JSON(http.StatusCreated, gin.H{
		"message":     "transaction completed successfully",
		"transaction": receipt,
	})
}

func checkoutErrorStatus(err error) (int, string) {
	var notFound *stock.ProductNotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound, metrics.OutcomeRejected
	}

	var inactive *stock.ProductInactiveError
	var insufficient *stock.InsufficientStockError
	var invalidQty *stock.InvalidQuantityError
	if errors.Is(err, checkout.ErrEmptyCart) ||
		errors.As(err, &inactive) ||
		errors.As(err, &insufficient) ||
		errors.As(err, &invalidQty) {
		return http.StatusBadRequest, metrics.OutcomeRejected
	}

	return http.StatusInternalServerError, metrics.OutcomeFailed
}
