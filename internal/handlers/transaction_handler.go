package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Paphonsan-l/POS-CRUD/internal/db"
	"github.com/Paphonsan-l/POS-CRUD/internal/models"
	"github.com/Paphonsan-l/POS-CRUD/internal/reporting"
)

// ListTransactions returns committed orders, newest first.
func ListTransactions(c *gin.Context) {
	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	var orders []models.Order
	err := db.DB.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": orders})
}

// GetTransaction returns one order with its lines. Lines carry their own
// name/price snapshots, so this works even if a product was deleted since.
func GetTransaction(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}

	var order models.Order
	if err := db.DB.Preload("Lines").First(&order, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": order})
}

// GetSalesStats returns today's totals and the trailing-window top sellers.
func GetSalesStats(c *gin.Context) {
	window := queryInt(c, "window", 7)

	stats, err := reporting.NewReader(db.DB).Stats(c.Request.Context(), window)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
