package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Paphonsan-l/POS-CRUD/internal/catalog"
	"github.com/Paphonsan-l/POS-CRUD/internal/db"
	"github.com/Paphonsan-l/POS-CRUD/internal/models"
)

type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	SKU         string          `json:"sku"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	CategoryID  *uint           `json:"category_id"`
	ImageURL    string          `json:"image_url"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	SKU         *string          `json:"sku"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
	CategoryID  *uint            `json:"category_id"`
	ImageURL    *string          `json:"image_url"`
	IsActive    *bool            `json:"is_active"`
}

func CreateProduct(c *gin.Context) {
	var req CreateProductRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.Price.IsPositive() || req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, price, and quantity are required"})
		return
	}

	if req.CategoryID != nil {
		var category models.Category
		if err := db.DB.First(&category, *req.CategoryID).Error; err != nil {

			errorMessage := fmt.Sprintf("Category not found with ID: %d", *req.CategoryID)

			c.JSON(http.StatusNotFound, gin.H{"error": errorMessage})
			return
		}
	}

	product := models.Product{
		Name:           req.Name,
		Description:    req.Description,
		SKU:            req.SKU,
		Price:          req.Price,
		QuantityOnHand: req.Quantity,
		CategoryID:     req.CategoryID,
		ImageURL:       req.ImageURL,
		IsActive:       true,
	}

	if err := db.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"data":    product,
	})
}

// ListProducts returns active products ordered by name, optionally filtered
// by category.
func ListProducts(c *gin.Context) {
	query := db.DB.Preload("Category").Where("is_active = ?", true).Order("name")

	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
			return
		}
		query = query.Where("category_id = ?", uint(categoryID))
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": products})
}

func GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var product models.Product
	if err := db.DB.Preload("Category").First(&product, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}

func UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be positive"})
			return
		}
		updates["price"] = *req.Price
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must not be negative"})
			return
		}
		updates["quantity_on_hand"] = *req.Quantity
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	result := db.DB.Model(&models.Product{}).Where("id = ?", uint(id)).Updates(updates)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
}

// DeleteProduct deactivates a product. Rows are never removed so historical
// order lines keep resolving.
func DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	result := db.DB.Model(&models.Product{}).Where("id = ?", uint(id)).Update("is_active", false)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// CheckStock reports whether a requested quantity is currently available.
// Advisory only; checkout re-validates inside its transaction.
func CheckStock(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	quantity := queryInt(c, "quantity", 1)

	info, err := catalog.NewReader(db.DB).Get(c.Request.Context(), uint(id))
	if err != nil || !info.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"available":     info.QuantityOnHand >= quantity,
		"current_stock": info.QuantityOnHand,
		"product_name":  info.Name,
	})
}
