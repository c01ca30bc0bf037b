package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/peermart/marketplace-api/models"
	"gorm.io/gorm"
)

type StockAdjustRequest struct {
	Amount int `json:"amount" binding:"required"`
}

// PUT /api/products/:id/stock/increment
func IncrementStock(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if !fetchOwnedProduct(c, db, &product) {
			return
		}

		var req StockAdjustRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be a positive number"})
			return
		}

		if err := db.Model(&models.Product{}).
			Where("id = ?", product.ID).
			Update("stock", gorm.Expr("stock + ?", req.Amount)).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
			return
		}

		var updated models.Product
		db.First(&updated, product.ID)
		c.JSON(http.StatusOK, gin.H{"message": "Stock updated", "stock": updated.Stock})
	}
}

// PUT /api/products/:id/stock/decrement
// The decrement is a conditional update so two concurrent requests can never
// drive stock below zero.
func DecrementStock(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if !fetchOwnedProduct(c, db, &product) {
			return
		}

		var req StockAdjustRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be a positive number"})
			return
		}

		result := db.Model(&models.Product{}).
			Where("id = ? AND stock >= ?", product.ID, req.Amount).
			Update("stock", gorm.Expr("stock - ?", req.Amount))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient stock"})
			return
		}

		var updated models.Product
		db.First(&updated, product.ID)
		c.JSON(http.StatusOK, gin.H{"message": "Stock updated", "stock": updated.Stock})
	}
}
